package feerecv

import (
	"fmt"

	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/errors"
	"github.com/iov-one/feevault/gconf"
	"github.com/iov-one/feevault/orm"
	"github.com/iov-one/feevault/x"
	"github.com/tendermint/tendermint/libs/common"
)

// Tag keys set on the results of the handlers.
const (
	TagReceiver       = "feerecv.receiver"
	TagVaultShare     = "feerecv.vault_share"
	TagSecondaryShare = "feerecv.secondary_share"
)

// RegisterQuery registers the fee receivers bucket as "/feereceivers".
func RegisterQuery(qr feevault.QueryRouter) {
	NewFeeReceiverBucket().Register("feereceivers", qr)
}

// RegisterRoutes registers handlers for feerecv message processing.
func RegisterRoutes(r feevault.Registry, auth x.Authenticator, cash CashController) {
	bucket := NewFeeReceiverBucket()
	r.Handle(pathAddFeeReceiverMsg, &addFeeReceiverHandler{auth: auth, bucket: bucket})
	r.Handle(pathRecoverTokensMsg, &recoverTokensHandler{auth: auth, recovery: NewRecovery(bucket, cash)})
	r.Handle(pathUpdateConfigurationMsg, NewConfigHandler(auth))
}

// NewConfigHandler returns a handler of UpdateConfigurationMsg. Only the
// current owner can change the configuration.
func NewConfigHandler(auth x.Authenticator) feevault.Handler {
	return gconf.NewUpdateConfigurationHandler(confPkg, &Configuration{}, auth, nil)
}

type addFeeReceiverHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ feevault.Handler = (*addFeeReceiverHandler)(nil)

func (h *addFeeReceiverHandler) Check(ctx feevault.Context, db feevault.KVStore, tx feevault.Tx) (*feevault.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &feevault.CheckResult{}, nil
}

func (h *addFeeReceiverHandler) Deliver(ctx feevault.Context, db feevault.KVStore, tx feevault.Tx) (*feevault.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	rec := FeeReceiver{
		Metadata:         &feevault.Metadata{Schema: 1},
		Authorized:       true,
		SecondaryAddress: msg.SecondaryAddress,
		VaultPercentage:  msg.VaultPercentage,
	}
	if err := h.bucket.Put(db, msg.Receiver, &rec); err != nil {
		return nil, errors.Wrap(err, "cannot store fee receiver")
	}

	feevault.GetLogger(ctx).Info("fee receiver added",
		"receiver", msg.Receiver,
		"secondary", msg.SecondaryAddress,
		"vault_percentage", msg.VaultPercentage)
	return &feevault.DeliverResult{
		Data: msg.Receiver,
		Log:  fmt.Sprintf("fee receiver %s added", msg.Receiver),
		Tags: []common.KVPair{
			{Key: []byte(TagReceiver), Value: []byte(msg.Receiver.String())},
		},
	}, nil
}

// validate authenticates the owner before the vault percentage is
// checked.
func (h *addFeeReceiverHandler) validate(ctx feevault.Context, db feevault.KVStore, tx feevault.Tx) (*AddFeeReceiverMsg, error) {
	var msg AddFeeReceiverMsg
	if err := feevault.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	owner, err := CurrentOwner(db)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature required")
	}
	if err := validatePercentage(msg.VaultPercentage); err != nil {
		return nil, err
	}
	return &msg, nil
}

type recoverTokensHandler struct {
	auth     x.Authenticator
	recovery Recovery
}

var _ feevault.Handler = (*recoverTokensHandler)(nil)

func (h *recoverTokensHandler) Check(ctx feevault.Context, db feevault.KVStore, tx feevault.Tx) (*feevault.CheckResult, error) {
	var msg RecoverTokensMsg
	if err := feevault.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.recovery.authorize(ctx, db, h.auth); err != nil {
		return nil, err
	}
	return &feevault.CheckResult{}, nil
}

func (h *recoverTokensHandler) Deliver(ctx feevault.Context, db feevault.KVStore, tx feevault.Tx) (*feevault.DeliverResult, error) {
	var msg RecoverTokensMsg
	if err := feevault.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	report, err := h.recovery.RecoverTokens(ctx, db, h.auth, msg.Ticker, msg.Destination)
	if err != nil {
		return nil, err
	}

	res := feevault.DeliverResult{
		Log: fmt.Sprintf("recovered %s through %s path in %d transfers",
			report.Balance, report.Path, report.Transfers),
		Tags: []common.KVPair{
			{Key: []byte(TagVaultShare), Value: []byte(report.VaultShare.String())},
			{Key: []byte(TagSecondaryShare), Value: []byte(report.SecondaryShare.String())},
		},
	}
	if report.Receiver != nil {
		res.Tags = append(res.Tags, common.KVPair{Key: []byte(TagReceiver), Value: []byte(report.Receiver.String())})
	}
	return &res, nil
}
