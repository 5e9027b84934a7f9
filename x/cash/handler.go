package cash

import (
	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/errors"
	"github.com/iov-one/feevault/x"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r feevault.Registry, auth x.Authenticator, control Controller) {
	r.Handle(SendMsg{}.Path(), NewSendHandler(auth, control))
}

// RegisterQuery will register the wallets bucket as "/wallets".
func RegisterQuery(qr feevault.QueryRouter) {
	NewBucket().Register("wallets", qr)
}

// SendHandler will handle sending coins.
type SendHandler struct {
	auth    x.Authenticator
	control CoinMover
}

var _ feevault.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg.
func NewSendHandler(auth x.Authenticator, control CoinMover) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and authorized.
func (h SendHandler) Check(ctx feevault.Context, db feevault.KVStore, tx feevault.Tx) (*feevault.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &feevault.CheckResult{}, nil
}

// Deliver moves the tokens from source to destination if all
// preconditions are met.
func (h SendHandler) Deliver(ctx feevault.Context, db feevault.KVStore, tx feevault.Tx) (*feevault.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Source, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	return &feevault.DeliverResult{Log: "sent " + msg.Amount.String()}, nil
}

func (h SendHandler) validate(ctx feevault.Context, tx feevault.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := feevault.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, nil
}
