package store

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	"github.com/iov-one/feevault/weavetest/assert"
)

// TestSuite provides test methods that are generic to the KVStore
// interface. Each implementation only provides the constructor of the
// store being tested.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a fresh store and a function that releases
// its resources.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

// NewTestSuite returns a suite running against stores built by the given
// constructor.
func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{makeBase: constructor}
}

// GetSet does basic sanity checks of the store and its cache wraps.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	k, v := []byte("french"), []byte("fry")
	s.AssertGetHas(t, base, k, nil, false)
	assert.Nil(t, base.Set(k, v))
	s.AssertGetHas(t, base, k, v, true)

	// A cache wrap sees the data of the base.
	cache := base.CacheWrap()
	s.AssertGetHas(t, cache, k, v, true)

	// Writing more data is only visible in the cache.
	k2, v2 := []byte("LA"), []byte("Dodgers")
	assert.Nil(t, cache.Set(k2, v2))
	s.AssertGetHas(t, cache, k2, v2, true)
	s.AssertGetHas(t, base, k2, nil, false)

	// The cache can be written to the base layer.
	assert.Nil(t, cache.Write())
	s.AssertGetHas(t, base, k, v, true)
	s.AssertGetHas(t, base, k2, v2, true)

	// A discarded cache leaves no trace.
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	assert.Nil(t, c2.Set(k3, v3))
	assert.Nil(t, c2.Delete(k))
	c2.Discard()
	s.AssertGetHas(t, base, k, v, true)
	s.AssertGetHas(t, base, k3, nil, false)

	// A delete is propagated on write.
	c3 := base.CacheWrap()
	assert.Nil(t, c3.Delete(k))
	s.AssertGetHas(t, c3, k, nil, false)
	s.AssertGetHas(t, base, k, v, true)
	assert.Nil(t, c3.Write())
	s.AssertGetHas(t, base, k, nil, false)
	s.AssertGetHas(t, base, k2, v2, true)
}

// NestedCache ensures that cache wraps can be layered and are written
// one level at a time.
func (s *TestSuite) NestedCache(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	outer := base.CacheWrap()
	inner := outer.CacheWrap()
	k, v := []byte("vault"), []byte("share")
	assert.Nil(t, inner.Set(k, v))

	s.AssertGetHas(t, outer, k, nil, false)
	assert.Nil(t, inner.Write())
	s.AssertGetHas(t, outer, k, v, true)
	s.AssertGetHas(t, base, k, nil, false)
	assert.Nil(t, outer.Write())
	s.AssertGetHas(t, base, k, v, true)
}

// Iteration checks that iterators combine the cache with the base and
// honor the range and order.
func (s *TestSuite) Iteration(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	models := randModels(20, 8, 16)
	for _, m := range models {
		assert.Nil(t, base.Set(m.Key, m.Value))
	}
	sorted := sortModels(models)

	cache := base.CacheWrap()
	// Delete the first, overwrite the second and add a new one.
	assert.Nil(t, cache.Delete(sorted[0].Key))
	updated := Model{Key: sorted[1].Key, Value: []byte("updated")}
	assert.Nil(t, cache.Set(updated.Key, updated.Value))
	added := Model{Key: append([]byte{0xff}, randBytes(7)...), Value: []byte("added")}
	assert.Nil(t, cache.Set(added.Key, added.Value))

	want := append([]Model{updated}, sorted[2:]...)
	want = sortModels(append(want, added))

	cases := map[string]struct {
		store   ReadOnlyKVStore
		start   []byte
		end     []byte
		reverse bool
		want    []Model
	}{
		"base, full range": {
			store: base,
			want:  sorted,
		},
		"base, reverse": {
			store:   base,
			reverse: true,
			want:    reverse(sorted),
		},
		"base, bounded": {
			store: base,
			start: sorted[3].Key,
			end:   sorted[7].Key,
			want:  sorted[3:7],
		},
		"cache, full range": {
			store: cache,
			want:  want,
		},
		"cache, reverse": {
			store:   cache,
			reverse: true,
			want:    reverse(want),
		},
		"cache, open end": {
			store: cache,
			start: sorted[10].Key,
			want:  want[9:],
		},
		"cache, open start": {
			store: cache,
			end:   sorted[5].Key,
			want:  want[:4],
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var (
				it  Iterator
				err error
			)
			if tc.reverse {
				it, err = tc.store.ReverseIterator(tc.start, tc.end)
			} else {
				it, err = tc.store.Iterator(tc.start, tc.end)
			}
			assert.Nil(t, err)
			defer it.Close()

			var got []Model
			for ; it.Valid(); err = it.Next() {
				assert.Nil(t, err)
				got = append(got, Model{Key: it.Key(), Value: it.Value()})
			}
			assert.Equal(t, len(tc.want), len(got))
			for i := range got {
				assert.Equal(t, tc.want[i], got[i])
			}
		})
	}
}

// AssertGetHas makes sure that both Get and Has of the store return the
// expected values.
func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	if _, err := rand.Read(res); err != nil {
		panic(err)
	}
	return res
}

// randModels returns models with keys that never start with 0xff, so
// that tests can add keys that sort last.
func randModels(count, keySize, valueSize int) []Model {
	res := make([]Model, count)
	for i := range res {
		key := randBytes(keySize)
		key[0] = byte(i)
		res[i] = Model{Key: key, Value: randBytes(valueSize)}
	}
	return res
}

func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

func sortModels(models []Model) []Model {
	res := make([]Model, len(models))
	copy(res, models)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}
