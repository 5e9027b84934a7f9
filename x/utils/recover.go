package utils

import (
	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors.
type Recovery struct{}

var _ feevault.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator.
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors.
func (r Recovery) Check(ctx feevault.Context, store feevault.KVStore, tx feevault.Tx, next feevault.Checker) (_ *feevault.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors.
func (r Recovery) Deliver(ctx feevault.Context, store feevault.KVStore, tx feevault.Tx, next feevault.Deliverer) (_ *feevault.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
