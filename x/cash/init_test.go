package cash

import (
	"encoding/json"
	"testing"

	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/coin"
	"github.com/iov-one/feevault/errors"
	"github.com/iov-one/feevault/store"
	"github.com/iov-one/feevault/weavetest/assert"
)

func TestGenesisInitializer(t *testing.T) {
	const genesis = `
		{
			"cash": [
				{
					"address": "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0",
					"coins": ["5 ETH", "3.000000001 IOV", {"whole": 1, "ticker": "ETH"}]
				}
			]
		}
	`
	var opts feevault.Options
	assert.Nil(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	addr, err := feevault.ParseAddress("E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0")
	assert.Nil(t, err)
	coins, err := NewController(NewBucket()).Balance(db, addr)
	assert.Nil(t, err)

	want := coin.Coins{coin.NewCoinp(6, 0, "ETH"), coin.NewCoinp(3, 1, "IOV")}
	if !coins.Equals(want) {
		t.Fatalf("want %v, got %v", want, coins)
	}
}

func TestGenesisInitializerErrors(t *testing.T) {
	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
	}{
		"missing section is not an error": {
			genesis: `{}`,
		},
		"invalid address": {
			genesis: `{"cash": [{"address": "", "coins": ["1 IOV"]}]}`,
			wantErr: errors.ErrInput,
		},
		"invalid coin": {
			genesis: `{"cash": [{"address": "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0", "coins": ["1 invalid"]}]}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts feevault.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.genesis), &opts))
			err := Initializer{}.FromGenesis(opts, store.MemStore())
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}
