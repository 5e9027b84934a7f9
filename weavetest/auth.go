package weavetest

import (
	"context"
	"fmt"

	feevault "github.com/iov-one/feevault"
)

// Auth is a static mock implementing the x.Authenticator interface. It
// authenticates the Signer and all of the Signers.
type Auth struct {
	// Signer is a shortcut for authenticating a single condition.
	Signer feevault.Condition

	// Signers represents an authentication of multiple signers.
	Signers []feevault.Condition
}

func (a *Auth) GetConditions(feevault.Context) []feevault.Condition {
	if a.Signer != nil {
		return append(append([]feevault.Condition{}, a.Signers...), a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx feevault.Context, addr feevault.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing the x.Authenticator interface using the
// context to store and retrieve conditions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context.
	Key string
}

func (a *CtxAuth) SetConditions(ctx feevault.Context, conds ...feevault.Condition) feevault.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx feevault.Context) []feevault.Condition {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	conds, ok := val.([]feevault.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []feevault.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx feevault.Context, addr feevault.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
