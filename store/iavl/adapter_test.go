package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/feevault/store"
	"github.com/iov-one/feevault/weavetest/assert"
)

func makeCommitStore(t testing.TB) (CommitStore, string, func()) {
	t.Helper()
	dir, err := ioutil.TempDir("", "iavl-adapter-")
	assert.Nil(t, err)
	commit, err := NewCommitStore(dir, "base")
	assert.Nil(t, err)
	return commit, dir, func() {
		commit.Close()
		os.RemoveAll(dir)
	}
}

func suite() *store.TestSuite {
	return store.NewTestSuite(func() (store.CacheableKVStore, func()) {
		commit := NewMemCommitStore()
		return commit.Adapter(), commit.Close
	})
}

func TestAdapterGetSet(t *testing.T) {
	suite().GetSet(t)
}

func TestAdapterNestedCache(t *testing.T) {
	suite().NestedCache(t)
}

func TestAdapterIteration(t *testing.T) {
	suite().Iteration(t)
}

func TestCommitAndReload(t *testing.T) {
	commit, dir, cleanup := makeCommitStore(t)
	defer cleanup()

	k, v := []byte("vault"), []byte("balance")

	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set(k, v))
	assert.Nil(t, cache.Write())

	// Not committed yet.
	got, err := commit.Get(k)
	assert.Nil(t, err)
	assert.Nil(t, got)

	id, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)
	if len(id.Hash) == 0 {
		t.Fatal("commit must produce a hash")
	}

	got, err = commit.Get(k)
	assert.Nil(t, err)
	assert.Equal(t, v, got)

	// A second commit without changes keeps the hash.
	id2, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(2), id2.Version)
	assert.Equal(t, id.Hash, id2.Hash)

	// Reopen the database and load the persisted state.
	commit.Close()
	reopened, err := NewCommitStore(dir, "base")
	assert.Nil(t, err)
	defer reopened.Close()
	assert.Nil(t, reopened.LoadLatestVersion())

	latest, err := reopened.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, id2, latest)
	got, err = reopened.Get(k)
	assert.Nil(t, err)
	assert.Equal(t, v, got)
}
