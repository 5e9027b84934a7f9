package cash

import (
	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/coin"
	"github.com/iov-one/feevault/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file. Address is
// any format ParseAddress accepts, coins are in human format.
type GenesisAccount struct {
	Address feevault.Address `json:"address"`
	Coins   []coin.Coin      `json:"coins"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ feevault.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis and save it to
// the database.
func (Initializer) FromGenesis(opts feevault.Options, db feevault.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	bucket := NewBucket()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		coins, err := coin.CombineCoins(acct.Coins...)
		if err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		w := Wallet{
			Metadata: &feevault.Metadata{Schema: 1},
			Coins:    coins,
		}
		if err := bucket.Put(db, acct.Address, &w); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
