package x

import (
	feevault "github.com/iov-one/feevault"
)

// Authenticator extracts authentication info from the context. It is
// passed into the constructor of handlers, so that another authentication
// system can be plugged in.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled.
	GetConditions(feevault.Context) []feevault.Condition
	// HasAddress checks if any condition matches this address.
	HasAddress(feevault.Context, feevault.Address) bool
}

// MultiAuth chains together many Authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticators.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines the Conditions of all Authenticators, without
// duplicates.
func (m MultiAuth) GetConditions(ctx feevault.Context) []feevault.Condition {
	var res []feevault.Condition
	for _, impl := range m.impls {
		for _, c := range impl.GetConditions(ctx) {
			if !hasCondition(res, c) {
				res = append(res, c)
			}
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator supports this address.
func (m MultiAuth) HasAddress(ctx feevault.Context, addr feevault.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses returns the addresses of all authenticated conditions, in
// the order the Authenticator returns them.
func GetAddresses(ctx feevault.Context, auth Authenticator) []feevault.Address {
	conds := auth.GetConditions(ctx)
	addrs := make([]feevault.Address, len(conds))
	for i, c := range conds {
		addrs[i] = c.Address()
	}
	return addrs
}

// MainSigner returns the first condition if any, otherwise nil.
func MainSigner(ctx feevault.Context, auth Authenticator) feevault.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllAddresses returns true if all required addresses are
// authenticated.
func HasAllAddresses(ctx feevault.Context, auth Authenticator, required []feevault.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

func hasCondition(conds []feevault.Condition, c feevault.Condition) bool {
	for _, x := range conds {
		if x.Equals(c) {
			return true
		}
	}
	return false
}
