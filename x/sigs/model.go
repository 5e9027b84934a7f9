package sigs

import (
	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/codec"
	"github.com/iov-one/feevault/crypto"
	"github.com/iov-one/feevault/errors"
	"github.com/iov-one/feevault/orm"
)

// UserData is the state kept for every public key that ever signed a
// transaction. It is stored under the signer address.
type UserData struct {
	Metadata *feevault.Metadata
	PubKey   *crypto.PublicKey
	// Sequence is the sequence number expected in the next signature.
	Sequence int64
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", u.Metadata.Validate())
	errs = errors.AppendField(errs, "PubKey", u.PubKey.Validate())
	if u.Sequence < 0 {
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	}
	return errs
}

func (u *UserData) Marshal() ([]byte, error) {
	var e codec.Encoder
	if u.Metadata != nil {
		if err := e.Message(1, u.Metadata); err != nil {
			return nil, err
		}
	}
	if u.PubKey != nil {
		if err := e.Message(2, u.PubKey); err != nil {
			return nil, err
		}
	}
	e.Int(3, u.Sequence)
	return e.Data(), nil
}

func (u *UserData) Unmarshal(raw []byte) error {
	*u = UserData{}
	d := codec.NewDecoder(raw)
	for {
		field, wire, ok, err := d.Next()
		if err != nil || !ok {
			return err
		}
		switch field {
		case 1:
			u.Metadata = &feevault.Metadata{}
			err = d.Message(wire, u.Metadata)
		case 2:
			u.PubKey = &crypto.PublicKey{}
			err = d.Message(wire, u.PubKey)
		case 3:
			u.Sequence, err = d.Int(wire)
		default:
			err = d.Skip(wire)
		}
		if err != nil {
			return err
		}
	}
}

// NewBucket returns the bucket holding the UserData of all signers.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("sigs", &UserData{})
}

// RegisterQuery exposes the signers state under /auth.
func RegisterQuery(qr feevault.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// NextSequence returns the sequence number the next signature of the
// given key must use.
func NextSequence(db feevault.ReadOnlyKVStore, pub *crypto.PublicKey) (int64, error) {
	var user UserData
	switch err := NewBucket().One(db, pub.Address(), &user); {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, err
	default:
		return user.Sequence, nil
	}
}
