package sigs

import (
	"context"

	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/x"
)

type contextKey int

const (
	contextKeySigners contextKey = iota
)

// withSigners is private, only this package can add signers.
func withSigners(ctx feevault.Context, signers []feevault.Condition) feevault.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate reads the signers verified by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns who signed the current context. May be empty.
func (a Authenticate) GetConditions(ctx feevault.Context) []feevault.Condition {
	val, _ := ctx.Value(contextKeySigners).([]feevault.Condition)
	return val
}

// HasAddress returns true if the address signed the current context.
func (a Authenticate) HasAddress(ctx feevault.Context, addr feevault.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
