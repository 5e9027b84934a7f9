package feerecv

import (
	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/coin"
	"github.com/iov-one/feevault/errors"
)

const (
	pathAddFeeReceiverMsg      = "feerecv/add_fee_receiver"
	pathRecoverTokensMsg       = "feerecv/recover_tokens"
	pathUpdateConfigurationMsg = "feerecv/update_configuration"
)

// AddFeeReceiverMsg registers a fee receiver, replacing any previous
// registration of the same address.
type AddFeeReceiverMsg struct {
	Metadata         *feevault.Metadata
	Receiver         feevault.Address
	SecondaryAddress feevault.Address
	// VaultPercentage range is checked by the handler, after the owner is
	// authenticated.
	VaultPercentage int32
}

var _ feevault.Msg = (*AddFeeReceiverMsg)(nil)

func (AddFeeReceiverMsg) Path() string {
	return pathAddFeeReceiverMsg
}

func (m *AddFeeReceiverMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Receiver", m.Receiver.Validate())
	errs = errors.AppendField(errs, "SecondaryAddress", m.SecondaryAddress.Validate())
	return errs
}

// RecoverTokensMsg sweeps the registry balance of a single currency.
type RecoverTokensMsg struct {
	Metadata    *feevault.Metadata
	Ticker      string
	Destination feevault.Address
}

var _ feevault.Msg = (*RecoverTokensMsg)(nil)

func (RecoverTokensMsg) Path() string {
	return pathRecoverTokensMsg
}

func (m *RecoverTokensMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if !coin.IsCC(m.Ticker) {
		errs = errors.AppendField(errs, "Ticker", errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", m.Ticker))
	}
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	return errs
}

// UpdateConfigurationMsg changes the configuration. Zero value fields of
// the patch are left unchanged.
type UpdateConfigurationMsg struct {
	Metadata *feevault.Metadata
	Patch    *Configuration
}

var _ feevault.Msg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

func (m *UpdateConfigurationMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if m.Patch == nil {
		return errors.AppendField(errs, "Patch", errors.ErrEmpty)
	}
	// Zero fields of a patch are left unchanged, only set ones are checked.
	var patchErrs error
	if m.Patch.Metadata != nil {
		patchErrs = errors.AppendField(patchErrs, "Metadata", m.Patch.Metadata.Validate())
	}
	if len(m.Patch.Owner) != 0 {
		patchErrs = errors.AppendField(patchErrs, "Owner", m.Patch.Owner.Validate())
	}
	return errors.Append(errs, errors.NestField("Patch", patchErrs))
}
