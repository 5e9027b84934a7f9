package cash

import (
	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/codec"
	"github.com/iov-one/feevault/coin"
	"github.com/iov-one/feevault/errors"
)

const maxMemoSize int = 128

// SendMsg moves coins from the source to the destination account.
type SendMsg struct {
	Metadata    *feevault.Metadata
	Source      feevault.Address
	Destination feevault.Address
	Amount      *coin.Coin
	// Memo is an optional human readable message.
	Memo string
}

var _ feevault.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message.
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible.
func (m *SendMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	switch {
	case m.Amount == nil:
		errs = errors.AppendField(errs, "Amount", errors.ErrEmpty)
	case !m.Amount.IsPositive():
		errs = errors.AppendField(errs, "Amount", errors.Wrapf(errors.ErrAmount, "non-positive: %s", m.Amount))
	default:
		errs = errors.AppendField(errs, "Amount", m.Amount.Validate())
	}
	if len(m.Memo) > maxMemoSize {
		errs = errors.AppendField(errs, "Memo", errors.Wrap(errors.ErrInput, "memo too long"))
	}
	return errs
}

func (m *SendMsg) Marshal() ([]byte, error) {
	var e codec.Encoder
	if m.Metadata != nil {
		if err := e.Message(1, m.Metadata); err != nil {
			return nil, err
		}
	}
	e.Bytes(2, m.Source)
	e.Bytes(3, m.Destination)
	if m.Amount != nil {
		if err := e.Message(4, m.Amount); err != nil {
			return nil, err
		}
	}
	e.String(5, m.Memo)
	return e.Data(), nil
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	*m = SendMsg{}
	d := codec.NewDecoder(raw)
	for {
		field, wire, ok, err := d.Next()
		if err != nil || !ok {
			return err
		}
		switch field {
		case 1:
			m.Metadata = &feevault.Metadata{}
			err = d.Message(wire, m.Metadata)
		case 2:
			m.Source, err = d.Bytes(wire)
		case 3:
			m.Destination, err = d.Bytes(wire)
		case 4:
			m.Amount = &coin.Coin{}
			err = d.Message(wire, m.Amount)
		case 5:
			m.Memo, err = d.String(wire)
		default:
			err = d.Skip(wire)
		}
		if err != nil {
			return err
		}
	}
}
