package feerecv

import "github.com/iov-one/feevault/errors"

var (
	// ErrPercentage is returned when a vault percentage is outside of the
	// [0, 100] range.
	ErrPercentage = errors.Register(1200, "invalid percentage")

	// ErrTransfer is returned when the ledger refuses to move the
	// recovered tokens.
	ErrTransfer = errors.Register(1201, "transfer failure")
)
