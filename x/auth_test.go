package x_test

import (
	"context"
	"testing"

	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/weavetest"
	"github.com/iov-one/feevault/weavetest/assert"
	"github.com/iov-one/feevault/x"
)

func TestAuth(t *testing.T) {
	a := weavetest.NewCondition()
	b := weavetest.NewCondition()
	c := weavetest.NewCondition()
	stranger := weavetest.NewCondition()

	ctxAuth := &weavetest.CtxAuth{Key: "auth"}
	ctx := ctxAuth.SetConditions(context.Background(), a, b)
	static := &weavetest.Auth{Signers: []feevault.Condition{b, c}}

	chain := x.ChainAuth(ctxAuth, static)

	// Duplicates are reported once, in order.
	assert.Equal(t, []feevault.Condition{a, b, c}, chain.GetConditions(ctx))
	assert.Equal(t, a, x.MainSigner(ctx, chain))
	assert.Equal(t, []feevault.Address{a.Address(), b.Address(), c.Address()}, x.GetAddresses(ctx, chain))

	assert.Equal(t, true, chain.HasAddress(ctx, c.Address()))
	assert.Equal(t, false, ctxAuth.HasAddress(ctx, c.Address()))
	assert.Equal(t, false, chain.HasAddress(ctx, stranger.Address()))

	all := []feevault.Address{a.Address(), c.Address()}
	assert.Equal(t, true, x.HasAllAddresses(ctx, chain, all))
	assert.Equal(t, false, x.HasAllAddresses(ctx, chain, append(all, stranger.Address())))

	empty := x.ChainAuth()
	assert.Nil(t, x.MainSigner(ctx, empty))
}
