package orm

import (
	"fmt"
	"reflect"
	"regexp"

	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Model is implemented by any entity that can be stored using a
// ModelBucket.
type Model interface {
	feevault.Persistent
	Validate() error
}

// ModelBucket stores models of a single type under a common prefix.
type ModelBucket interface {
	// One queries the database for a single model instance, looked up
	// by its primary key. The result is loaded into dest.
	// It returns ErrNotFound if the entity does not exist and ErrType if
	// dest cannot contain the stored entity.
	One(db feevault.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with the given key exists and
	// ErrNotFound otherwise.
	Has(db feevault.ReadOnlyKVStore, key []byte) error

	// Put validates and saves given model in the database, replacing
	// any previous value.
	Put(db feevault.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the
	// database. It returns ErrNotFound if the entity does not exist.
	Delete(db feevault.KVStore, key []byte) error

	// Register exposes the bucket content on the query router under
	// /name, or under the bucket name if name is empty.
	Register(name string, r feevault.QueryRouter)
}

// NewModelBucket returns a ModelBucket that stores instances of the
// type of model. Bucket name must be unique within the application.
func NewModelBucket(name string, model Model) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket name: %q", name))
	}
	t := reflect.TypeOf(model)
	if t.Kind() != reflect.Ptr {
		panic(fmt.Sprintf("model must be a pointer, got %T", model))
	}
	return &modelBucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		model:  t.Elem(),
	}
}

type modelBucket struct {
	name   string
	prefix []byte
	model  reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) dbKey(key []byte) []byte {
	return append(append([]byte{}, mb.prefix...), key...)
}

func (mb *modelBucket) One(db feevault.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != reflect.PtrTo(mb.model) {
		return errors.Wrapf(errors.ErrType, "%s cannot be represented as %T", mb.model, dest)
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.model)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal %s", mb.model)
	}
	return nil
}

func (mb *modelBucket) Has(db feevault.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.model)
	}
	return nil
}

func (mb *modelBucket) Put(db feevault.KVStore, key []byte, m Model) error {
	if reflect.TypeOf(m) != reflect.PtrTo(mb.model) {
		return errors.Wrapf(errors.ErrType, "cannot store %T in a %s bucket", m, mb.model)
	}
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal")
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (mb *modelBucket) Delete(db feevault.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	if err := db.Delete(mb.dbKey(key)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (mb *modelBucket) Register(name string, r feevault.QueryRouter) {
	if name == "" {
		name = mb.name
	}
	r.Register("/"+name, queryHandler{prefix: mb.prefix})
}
