package feerecv

import (
	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/errors"
	"github.com/iov-one/feevault/orm"
)

// FeeReceiver is the registration of an account allowed to recover the
// tokens of the registry. It is stored under the receiver address.
type FeeReceiver struct {
	Metadata *feevault.Metadata
	// Authorized is set on registration. A record with Authorized false
	// does not allow recovering tokens.
	Authorized bool
	// SecondaryAddress receives what is left after the vault share.
	SecondaryAddress feevault.Address
	// VaultPercentage is the percentage of the balance sent to the
	// destination chosen by the receiver.
	VaultPercentage int32
}

var _ orm.Model = (*FeeReceiver)(nil)

func (r *FeeReceiver) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", r.Metadata.Validate())
	errs = errors.AppendField(errs, "SecondaryAddress", r.SecondaryAddress.Validate())
	errs = errors.AppendField(errs, "VaultPercentage", validatePercentage(r.VaultPercentage))
	return errs
}

func validatePercentage(p int32) error {
	if p < 0 || p > 100 {
		return errors.Wrapf(ErrPercentage, "%d not in [0, 100]", p)
	}
	return nil
}

// NewFeeReceiverBucket returns the bucket holding all fee receivers, keyed
// by the receiver address.
func NewFeeReceiverBucket() orm.ModelBucket {
	return orm.NewModelBucket("feerecv", &FeeReceiver{})
}

// GetFeeReceiver returns the registration of the receiver. It fails with
// ErrNotFound if the address was never registered.
func GetFeeReceiver(db feevault.ReadOnlyKVStore, bucket orm.ModelBucket, receiver feevault.Address) (*FeeReceiver, error) {
	var r FeeReceiver
	if err := bucket.One(db, receiver, &r); err != nil {
		return nil, errors.Wrapf(err, "fee receiver %s", receiver)
	}
	return &r, nil
}

// RegistryAccount returns the address of the account holding the tokens
// that can be recovered.
func RegistryAccount() feevault.Address {
	return feevault.NewCondition("feerecv", "registry", nil).Address()
}
