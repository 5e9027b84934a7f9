package app

import (
	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/codec"
	"github.com/iov-one/feevault/errors"
	"github.com/iov-one/feevault/x/cash"
	"github.com/iov-one/feevault/x/feerecv"
	"github.com/iov-one/feevault/x/sigs"
)

// Wire field numbers of the message a transaction carries. Exactly one
// of them is set.
const (
	fieldSignatures             = 1
	fieldSendMsg                = 10
	fieldAddFeeReceiverMsg      = 20
	fieldRecoverTokensMsg       = 21
	fieldUpdateConfigurationMsg = 22
)

// Tx is the transaction of the fee vault application. It carries a single
// message together with the signatures of all signers.
type Tx struct {
	Signatures []*sigs.StdSignature
	Msg        feevault.Msg
}

// make sure tx fulfills all interfaces
var _ feevault.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it.
func TxDecoder(bz []byte) (feevault.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetMsg returns the message carried by the transaction.
func (tx *Tx) GetMsg() (feevault.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "transaction without a message")
	}
	return tx.Msg, nil
}

// GetSignatures returns the signatures of the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the serialized transaction without signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	signatures := tx.Signatures
	tx.Signatures = nil
	bz, err := tx.Marshal()
	tx.Signatures = signatures
	return bz, err
}

// msgField returns the wire field number of the message type.
func msgField(msg feevault.Msg) (int, error) {
	switch msg.(type) {
	case *cash.SendMsg:
		return fieldSendMsg, nil
	case *feerecv.AddFeeReceiverMsg:
		return fieldAddFeeReceiverMsg, nil
	case *feerecv.RecoverTokensMsg:
		return fieldRecoverTokensMsg, nil
	case *feerecv.UpdateConfigurationMsg:
		return fieldUpdateConfigurationMsg, nil
	}
	return 0, errors.Wrapf(errors.ErrType, "unsupported message %T", msg)
}

// newMsg returns an empty message for the wire field, or nil if the field
// does not carry a message.
func newMsg(field int) feevault.Msg {
	switch field {
	case fieldSendMsg:
		return &cash.SendMsg{}
	case fieldAddFeeReceiverMsg:
		return &feerecv.AddFeeReceiverMsg{}
	case fieldRecoverTokensMsg:
		return &feerecv.RecoverTokensMsg{}
	case fieldUpdateConfigurationMsg:
		return &feerecv.UpdateConfigurationMsg{}
	}
	return nil
}

func (tx *Tx) Marshal() ([]byte, error) {
	var e codec.Encoder
	for _, s := range tx.Signatures {
		if err := e.Message(fieldSignatures, s); err != nil {
			return nil, errors.Wrap(err, "signature")
		}
	}
	if tx.Msg != nil {
		field, err := msgField(tx.Msg)
		if err != nil {
			return nil, err
		}
		if err := e.Message(field, tx.Msg); err != nil {
			return nil, errors.Wrap(err, "message")
		}
	}
	return e.Data(), nil
}

func (tx *Tx) Unmarshal(raw []byte) error {
	*tx = Tx{}
	d := codec.NewDecoder(raw)
	for {
		field, wire, ok, err := d.Next()
		if err != nil || !ok {
			return err
		}
		if field == fieldSignatures {
			var s sigs.StdSignature
			if err := d.Message(wire, &s); err != nil {
				return err
			}
			tx.Signatures = append(tx.Signatures, &s)
			continue
		}
		msg := newMsg(field)
		if msg == nil {
			if err := d.Skip(wire); err != nil {
				return err
			}
			continue
		}
		if tx.Msg != nil {
			return errors.Wrap(errors.ErrMsg, "more than one message")
		}
		if err := d.Message(wire, msg); err != nil {
			return errors.Wrap(err, "message")
		}
		tx.Msg = msg
	}
}
