package gconf

import (
	"context"
	"testing"

	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/coin"
	"github.com/iov-one/feevault/errors"
	"github.com/iov-one/feevault/store"
	"github.com/iov-one/feevault/weavetest"
	"github.com/iov-one/feevault/weavetest/assert"
)

func TestUpdateConfigurationHandler(t *testing.T) {
	cond := weavetest.NewCondition()
	admin := weavetest.NewCondition()
	newOwner := weavetest.NewCondition()

	cases := map[string]struct {
		// If Init is provided, initialize the database before running
		// handler code. Use nil to not provide initial state.
		Init      ValidMarshaler
		InitAdmin func(feevault.ReadOnlyKVStore) (feevault.Address, error)

		Msg            feevault.Msg
		MsgConditions  []feevault.Condition
		WantCheckErr   *errors.Error
		WantDeliverErr *errors.Error

		// When not nil database state will be tested to contain the
		// exact version of the configuration.
		WantConfig *myconfig
	}{
		"success": {
			Init: &myconfig{Owner: cond.Address(), Num: 5125, Str: "foobar", Cn: coin.NewCoin(10, 409, "IOV")},
			Msg: &myconfigMsg{
				Patch: &myconfig{Owner: cond.Address(), Num: 333, Str: "boing!", Cn: coin.NewCoin(4, 4, "XYZ")},
			},
			MsgConditions: []feevault.Condition{cond},
			WantConfig:    &myconfig{Owner: cond.Address(), Num: 333, Str: "boing!", Cn: coin.NewCoin(4, 4, "XYZ")},
		},
		"owner can transfer the ownership": {
			Init: &myconfig{Owner: cond.Address(), Num: 1, Cn: coin.NewCoin(1, 0, "IOV")},
			Msg: &myconfigMsg{
				Patch: &myconfig{Owner: newOwner.Address(), Cn: coin.NewCoin(1, 0, "IOV")},
			},
			MsgConditions: []feevault.Condition{cond},
			WantConfig:    &myconfig{Owner: newOwner.Address(), Num: 1, Cn: coin.NewCoin(1, 0, "IOV")},
		},
		"message must be signed by the configuration owner": {
			Init: &myconfig{Owner: cond.Address(), Num: 5125, Str: "foobar", Cn: coin.NewCoin(10, 409, "IOV")},
			Msg: &myconfigMsg{
				Patch: &myconfig{Owner: newOwner.Address(), Cn: coin.NewCoin(1, 0, "IOV")},
			},
			MsgConditions:  []feevault.Condition{weavetest.NewCondition()},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
			WantConfig:     &myconfig{Owner: cond.Address(), Num: 5125, Str: "foobar", Cn: coin.NewCoin(10, 409, "IOV")},
		},
		"zero values are not updating the configuration": {
			Init: &myconfig{Owner: cond.Address(), Num: 5125, Str: "foobar", Cn: coin.NewCoin(10, 409, "IOV")},
			Msg: &myconfigMsg{
				Patch: &myconfig{Owner: cond.Address(), Cn: coin.NewCoin(0, 4, "IOV")},
			},
			MsgConditions: []feevault.Condition{cond},
			WantConfig:    &myconfig{Owner: cond.Address(), Num: 5125, Str: "foobar", Cn: coin.NewCoin(0, 4, "IOV")},
		},
		"invalid configuration is not accepted": {
			Init: &myconfig{Owner: cond.Address(), Num: 5125, Str: "foobar", Cn: coin.NewCoin(10, 409, "IOV")},
			Msg: &myconfigMsg{
				// Missing ticker.
				Patch: &myconfig{Owner: cond.Address(), Num: 123, Str: "foo", Cn: coin.NewCoin(4, 0, "")},
			},
			MsgConditions:  []feevault.Condition{cond},
			WantCheckErr:   errors.ErrCurrency,
			WantDeliverErr: errors.ErrCurrency,
		},
		"missing configuration cannot be created without an admin": {
			Msg: &myconfigMsg{
				Patch: &myconfig{Owner: cond.Address(), Cn: coin.NewCoin(1, 0, "IOV")},
			},
			MsgConditions:  []feevault.Condition{cond},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
		},
		"missing configuration can be created by the admin": {
			InitAdmin: func(feevault.ReadOnlyKVStore) (feevault.Address, error) { return admin.Address(), nil },
			Msg: &myconfigMsg{
				Patch: &myconfig{Owner: cond.Address(), Cn: coin.NewCoin(1, 0, "IOV")},
			},
			MsgConditions: []feevault.Condition{admin},
			WantConfig:    &myconfig{Owner: cond.Address(), Cn: coin.NewCoin(1, 0, "IOV")},
		},
		"message without a patch": {
			Init:           &myconfig{Owner: cond.Address(), Cn: coin.NewCoin(1, 0, "IOV")},
			Msg:            &weavetest.Msg{RoutePath: "myconfig"},
			MsgConditions:  []feevault.Condition{cond},
			WantCheckErr:   errors.ErrInput,
			WantDeliverErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()

			if tc.Init != nil {
				if err := Save(db, "mypkg", tc.Init); err != nil {
					t.Fatalf("cannot save initial configuration: %s", err)
				}
			}

			auth := &weavetest.CtxAuth{Key: "auth"}
			handler := NewUpdateConfigurationHandler("mypkg", &myconfig{}, auth, tc.InitAdmin)

			ctx := feevault.WithHeight(context.Background(), 999)
			ctx = feevault.WithChainID(ctx, "mychain-123")
			ctx = auth.SetConditions(ctx, tc.MsgConditions...)

			tx := &weavetest.Tx{Msg: tc.Msg}

			cache := db.CacheWrap()
			_, err := handler.Check(ctx, cache, tx)
			assert.IsErr(t, tc.WantCheckErr, err)
			cache.Discard()

			_, err = handler.Deliver(ctx, db, tx)
			assert.IsErr(t, tc.WantDeliverErr, err)

			if tc.WantConfig != nil {
				var got myconfig
				if err := Load(db, "mypkg", &got); err != nil {
					t.Fatalf("cannot load configuration from the database: %s", err)
				}
				assert.Equal(t, tc.WantConfig, &got)
			}
		})
	}
}
