package feerecv

import (
	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/errors"
	"github.com/iov-one/feevault/gconf"
)

const confPkg = "feerecv"

// Configuration holds the owner of the registry.
type Configuration struct {
	Metadata *feevault.Metadata `json:"metadata"`
	// Owner can register fee receivers and recover all tokens.
	Owner feevault.Address `json:"owner"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) GetOwner() feevault.Address {
	return c.Owner
}

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	return errs
}

// CurrentOwner returns the owner of the registry.
func CurrentOwner(db gconf.ReadStore) (feevault.Address, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return conf.Owner, nil
}
