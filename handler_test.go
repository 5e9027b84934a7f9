package feevault

import (
	"testing"

	"github.com/iov-one/feevault/errors"
	"github.com/iov-one/feevault/weavetest/assert"
)

func TestReadOptions(t *testing.T) {
	opts := Options{
		"feerecv": []byte(`{"percentage": 30}`),
		"broken":  []byte(`{"percentage": `),
	}

	var conf struct {
		Percentage int `json:"percentage"`
	}
	assert.Nil(t, opts.ReadOptions("feerecv", &conf))
	assert.Equal(t, 30, conf.Percentage)

	conf.Percentage = 5
	assert.Nil(t, opts.ReadOptions("missing", &conf))
	assert.Equal(t, 5, conf.Percentage)

	assert.IsErr(t, errors.ErrInput, opts.ReadOptions("broken", &conf))
}

type initFunc func(Options, KVStore) error

func (fn initFunc) FromGenesis(opts Options, db KVStore) error { return fn(opts, db) }

func TestMultiInitStopsOnFailure(t *testing.T) {
	var calls int
	ok := initFunc(func(Options, KVStore) error { calls++; return nil })
	fail := initFunc(func(Options, KVStore) error { calls++; return errors.ErrState })

	err := MultiInit{ok, fail, ok}.FromGenesis(nil, nil)
	assert.IsErr(t, errors.ErrState, err)
	assert.Equal(t, 2, calls)
}
