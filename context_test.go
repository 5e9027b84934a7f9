package feevault

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/feevault/weavetest/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContextHeight(t *testing.T) {
	ctx := context.Background()
	_, ok := GetHeight(ctx)
	assert.Equal(t, false, ok)

	ctx = WithHeight(ctx, 7)
	h, ok := GetHeight(ctx)
	assert.Equal(t, true, ok)
	assert.Equal(t, int64(7), h)

	assert.Panics(t, func() { WithHeight(ctx, 8) })
}

func TestContextBlockTime(t *testing.T) {
	now := time.Date(2019, 4, 1, 12, 0, 0, 0, time.UTC)
	ctx := WithBlockTime(context.Background(), now)
	got, ok := BlockTime(ctx)
	assert.Equal(t, true, ok)
	assert.Equal(t, now, got)
	assert.Panics(t, func() { WithBlockTime(ctx, now) })
}

func TestContextChainID(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", GetChainID(ctx))

	assert.Panics(t, func() { WithChainID(ctx, "bad") })

	ctx = WithChainID(ctx, "feevault-test")
	assert.Equal(t, "feevault-test", GetChainID(ctx))
	assert.Panics(t, func() { WithChainID(ctx, "another-chain") })
}

func TestContextLogger(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, DefaultLogger, GetLogger(ctx))

	logger := log.NewNopLogger().With("module", "test")
	ctx = WithLogger(ctx, logger)
	assert.Equal(t, logger, GetLogger(ctx))

	ctx = WithLogInfo(ctx, "height", 5)
	if GetLogger(ctx) == nil {
		t.Fatal("logger must be set")
	}
}
