package utils_test

import (
	"context"
	"testing"

	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/app"
	"github.com/iov-one/feevault/errors"
	"github.com/iov-one/feevault/store"
	"github.com/iov-one/feevault/weavetest"
	"github.com/iov-one/feevault/weavetest/assert"
	"github.com/iov-one/feevault/x/utils"
	"github.com/tendermint/tendermint/libs/common"
)

func stringTag(key, value string) common.KVPair {
	return common.KVPair{
		Key:   []byte(key),
		Value: []byte(value),
	}
}

func TestActionTagger(t *testing.T) {
	cases := map[string]struct {
		stack feevault.Handler
		tx    feevault.Tx
		err   *errors.Error
		tags  []common.KVPair
	}{
		"simple call": {
			stack: app.ChainDecorators(utils.NewActionTagger()).WithHandler(
				&weavetest.Handler{},
			),
			tx:   &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "feerecv/recover_tokens"}},
			tags: []common.KVPair{stringTag(utils.ActionKey, "feerecv/recover_tokens")},
		},
		"passes through error": {
			stack: app.ChainDecorators(utils.NewActionTagger()).WithHandler(
				&weavetest.Handler{DeliverErr: errors.ErrHuman},
			),
			tx:  &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "feerecv/recover_tokens"}},
			err: errors.ErrHuman,
		},
		"message error is returned early": {
			stack: app.ChainDecorators(utils.NewActionTagger()).WithHandler(
				&weavetest.Handler{},
			),
			tx:  &weavetest.Tx{Err: errors.ErrInput},
			err: errors.ErrInput,
		},
		"tags are additive": {
			stack: app.ChainDecorators(utils.NewActionTagger()).WithHandler(
				&weavetest.Handler{
					DeliverResult: feevault.DeliverResult{Tags: []common.KVPair{stringTag(utils.ActionKey, "random")}},
				},
			),
			tx:   &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "cash/send"}},
			tags: []common.KVPair{stringTag(utils.ActionKey, "random"), stringTag(utils.ActionKey, "cash/send")},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			db := store.MemStore()

			// Check is passed through untouched.
			_, err := tc.stack.Check(ctx, db, tc.tx)
			assert.Nil(t, err)

			res, err := tc.stack.Deliver(ctx, db, tc.tx)
			assert.IsErr(t, tc.err, err)
			if tc.err == nil {
				assert.Equal(t, tc.tags, res.Tags)
			}
		})
	}
}
