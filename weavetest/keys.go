package weavetest

import (
	"crypto/rand"
	"testing"

	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/crypto"
)

// NewKey returns a new random signing key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the condition of a new random signing key.
func NewCondition() feevault.Condition {
	return NewKey().PublicKey().Condition()
}

// RandomAddr returns a valid random address.
func RandomAddr(t testing.TB) feevault.Address {
	t.Helper()
	raw := make([]byte, feevault.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("cannot generate a random address: %s", err)
	}
	return feevault.Address(raw)
}

// ParseAddress decodes an address in any of the supported human readable
// formats and fails the test if it is not valid.
func ParseAddress(t testing.TB, encoded string) feevault.Address {
	t.Helper()
	addr, err := feevault.ParseAddress(encoded)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encoded, err)
	}
	return addr
}
