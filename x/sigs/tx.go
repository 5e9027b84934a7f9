package sigs

import (
	"github.com/iov-one/feevault/codec"
	"github.com/iov-one/feevault/crypto"
	"github.com/iov-one/feevault/errors"
)

// SignedTx represents a transaction that contains signatures, which can
// be verified by the Decorator.
type SignedTx interface {
	// GetSignBytes returns the canonical byte representation of the
	// transaction without its signatures.
	GetSignBytes() ([]byte, error)

	// GetSignatures returns the signatures of all signers.
	GetSignatures() []*StdSignature
}

// StdSignature is the signature of a transaction together with the key
// it can be verified with.
type StdSignature struct {
	Sequence  int64
	PubKey    *crypto.PublicKey
	Signature *crypto.Signature
}

// Validate ensures the StdSignature meets basic standards.
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if s.PubKey == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if s.Signature == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

func (s *StdSignature) Marshal() ([]byte, error) {
	var e codec.Encoder
	e.Int(1, s.Sequence)
	if s.PubKey != nil {
		if err := e.Message(2, s.PubKey); err != nil {
			return nil, err
		}
	}
	if s.Signature != nil {
		if err := e.Message(3, s.Signature); err != nil {
			return nil, err
		}
	}
	return e.Data(), nil
}

func (s *StdSignature) Unmarshal(raw []byte) error {
	*s = StdSignature{}
	d := codec.NewDecoder(raw)
	for {
		field, wire, ok, err := d.Next()
		if err != nil || !ok {
			return err
		}
		switch field {
		case 1:
			s.Sequence, err = d.Int(wire)
		case 2:
			s.PubKey = &crypto.PublicKey{}
			err = d.Message(wire, s.PubKey)
		case 3:
			s.Signature = &crypto.Signature{}
			err = d.Message(wire, s.Signature)
		default:
			err = d.Skip(wire)
		}
		if err != nil {
			return err
		}
	}
}
