package sigs

import "github.com/iov-one/feevault/errors"

// ErrInvalidSequence is returned when a signature carries a sequence
// number that is not the next one expected for its key.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")
