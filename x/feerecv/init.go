package feerecv

import (
	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/errors"
	"github.com/iov-one/feevault/gconf"
)

// Initializer fulfils the Initializer interface to load the configuration
// and the registered fee receivers from the genesis file.
type Initializer struct{}

var _ feevault.Initializer = Initializer{}

// GenesisFeeReceiver is a fee receiver registered at genesis.
type GenesisFeeReceiver struct {
	Address          feevault.Address `json:"address"`
	SecondaryAddress feevault.Address `json:"secondary_address"`
	VaultPercentage  int32            `json:"vault_percentage"`
}

// FromGenesis stores the configuration found under conf.feerecv and all
// fee receivers listed under feerecv.
func (Initializer) FromGenesis(opts feevault.Options, db feevault.KVStore) error {
	conf := Configuration{Metadata: &feevault.Metadata{Schema: 1}}
	if err := gconf.InitConfig(db, opts, confPkg, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var receivers []GenesisFeeReceiver
	if err := opts.ReadOptions("feerecv", &receivers); err != nil {
		return errors.Wrap(err, "cannot load fee receivers")
	}
	bucket := NewFeeReceiverBucket()
	for i, r := range receivers {
		if err := r.Address.Validate(); err != nil {
			return errors.Wrapf(err, "fee receiver #%d address", i)
		}
		rec := FeeReceiver{
			Metadata:         &feevault.Metadata{Schema: 1},
			Authorized:       true,
			SecondaryAddress: r.SecondaryAddress,
			VaultPercentage:  r.VaultPercentage,
		}
		if err := bucket.Put(db, r.Address, &rec); err != nil {
			return errors.Wrapf(err, "cannot store fee receiver #%d", i)
		}
	}
	return nil
}
