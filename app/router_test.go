package app

import (
	"context"
	"testing"

	"github.com/iov-one/feevault/errors"
	"github.com/iov-one/feevault/store"
	"github.com/iov-one/feevault/weavetest"
	"github.com/stretchr/testify/assert"
)

func TestRouter(t *testing.T) {
	r := NewRouter()

	counter := &weavetest.Handler{}
	r.Handle("good/path", counter)
	r.Handle("bad/path", &weavetest.Handler{DeliverErr: errors.ErrHuman})

	// make sure invalid registrations panic
	assert.Panics(t, func() { r.Handle("good/path", counter) })
	assert.Panics(t, func() { r.Handle("l:7", counter) })

	ctx := context.Background()
	db := store.MemStore()
	txFor := func(path string) *weavetest.Tx {
		return &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: path}}
	}

	_, err := r.Check(ctx, db, txFor("good/path"))
	assert.NoError(t, err)
	_, err = r.Deliver(ctx, db, txFor("good/path"))
	assert.NoError(t, err)
	assert.Equal(t, 2, counter.CallCount())

	_, err = r.Deliver(ctx, db, txFor("bad/path"))
	assert.True(t, errors.ErrHuman.Is(err))

	_, err = r.Deliver(ctx, db, txFor("missing/path"))
	assert.True(t, errors.ErrNotFound.Is(err))
	_, err = r.Check(ctx, db, txFor("missing/path"))
	assert.True(t, errors.ErrNotFound.Is(err))

	_, err = r.Deliver(ctx, db, &weavetest.Tx{})
	assert.True(t, errors.ErrMsg.Is(err))
	_, err = r.Deliver(ctx, db, &weavetest.Tx{Err: errors.ErrInput})
	assert.True(t, errors.ErrInput.Is(err))

	assert.Equal(t, 2, counter.CallCount())
}
