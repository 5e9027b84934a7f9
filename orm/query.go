package orm

import (
	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/errors"
)

// queryHandler exposes all keys under a prefix. The prefix is stripped
// from the keys returned.
type queryHandler struct {
	prefix []byte
}

var _ feevault.QueryHandler = queryHandler{}

func (q queryHandler) Query(db feevault.ReadOnlyKVStore, mod string, data []byte) ([]feevault.Model, error) {
	switch mod {
	case feevault.KeyQueryMod:
		key := append(append([]byte{}, q.prefix...), data...)
		value, err := db.Get(key)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		if value == nil {
			return nil, nil
		}
		return []feevault.Model{feevault.Pair(data, value)}, nil
	case feevault.PrefixQueryMod:
		start := append(append([]byte{}, q.prefix...), data...)
		it, err := db.Iterator(start, PrefixEnd(start))
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		res, err := ConsumeIterator(it)
		if err != nil {
			return nil, err
		}
		for i := range res {
			res[i].Key = res[i].Key[len(q.prefix):]
		}
		return res, nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
}

// ConsumeIterator reads all remaining data into a slice and closes the
// iterator.
func ConsumeIterator(it feevault.Iterator) ([]feevault.Model, error) {
	defer it.Close()

	var res []feevault.Model
	for it.Valid() {
		res = append(res, feevault.Pair(it.Key(), it.Value()))
		if err := it.Next(); err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
	return res, nil
}

// PrefixEnd returns the first key that does not start with the given
// prefix, or nil if there is no such key.
func PrefixEnd(prefix []byte) []byte {
	end := append([]byte{}, prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
