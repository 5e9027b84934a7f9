/*
Package crypto holds the keys used to sign transactions. Only the ed25519
scheme is supported. The binary layout keeps the scheme as a field number
so that other schemes can be added later.
*/
package crypto

import (
	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/codec"
	"github.com/iov-one/feevault/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the conditions we get from signatures.
const ExtensionName = "sigs"

const fieldEd25519 = 1

// PublicKey identifies a signer.
type PublicKey struct {
	Ed25519 []byte `json:"ed25519"`
}

// Verify returns true if the signature was created for this message with
// the matching private key.
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if p == nil || sig == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig.Ed25519)
}

// Condition encodes the public key into a condition.
//    p.Condition().Address()
// returns the address of the signer.
func (p *PublicKey) Condition() feevault.Condition {
	return feevault.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address returns the address of the signer.
func (p *PublicKey) Address() feevault.Address {
	return p.Condition().Address()
}

func (p *PublicKey) Validate() error {
	if p == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return errors.Wrap(errors.ErrInput, "invalid ed25519 public key")
	}
	return nil
}

func (p *PublicKey) Marshal() ([]byte, error) {
	return marshalKey(p.Ed25519), nil
}

func (p *PublicKey) Unmarshal(raw []byte) error {
	b, err := unmarshalKey(raw)
	p.Ed25519 = b
	return err
}

// PrivateKey signs messages. It must never leave the client.
type PrivateKey struct {
	Ed25519 []byte `json:"ed25519"`
}

// GenPrivKeyEd25519 returns a new random private key.
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed deterministically generates a private key from
// a 32 byte seed. Use it with a strong source of external randomness, or
// for deterministic keys in tests.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}

// Sign returns a matching signature for this private key.
func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "invalid ed25519 private key")
	}
	sig := ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message)
	return &Signature{Ed25519: sig}, nil
}

// PublicKey returns the corresponding PublicKey.
func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

func (p *PrivateKey) Marshal() ([]byte, error) {
	return marshalKey(p.Ed25519), nil
}

func (p *PrivateKey) Unmarshal(raw []byte) error {
	b, err := unmarshalKey(raw)
	p.Ed25519 = b
	return err
}

// Signature is the result of signing a message.
type Signature struct {
	Ed25519 []byte `json:"ed25519"`
}

func (s *Signature) Validate() error {
	if s == nil || len(s.Ed25519) != ed25519.SignatureSize {
		return errors.Wrap(errors.ErrInput, "invalid ed25519 signature")
	}
	return nil
}

func (s *Signature) Marshal() ([]byte, error) {
	return marshalKey(s.Ed25519), nil
}

func (s *Signature) Unmarshal(raw []byte) error {
	b, err := unmarshalKey(raw)
	s.Ed25519 = b
	return err
}

func marshalKey(b []byte) []byte {
	var e codec.Encoder
	e.Bytes(fieldEd25519, b)
	return e.Data()
}

func unmarshalKey(raw []byte) ([]byte, error) {
	var res []byte
	d := codec.NewDecoder(raw)
	for {
		field, wire, ok, err := d.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return res, nil
		}
		if field != fieldEd25519 {
			return nil, errors.Wrapf(errors.ErrInput, "unsupported key scheme %d", field)
		}
		if res, err = d.Bytes(wire); err != nil {
			return nil, err
		}
	}
}
