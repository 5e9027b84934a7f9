package cash

import (
	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/codec"
	"github.com/iov-one/feevault/coin"
	"github.com/iov-one/feevault/errors"
	"github.com/iov-one/feevault/orm"
)

// BucketName is where we store the balances.
const BucketName = "cash"

// Wallet is the set of coins owned by a single address. It is stored
// under that address.
type Wallet struct {
	Metadata *feevault.Metadata
	Coins    coin.Coins
}

var _ orm.Model = (*Wallet)(nil)

// Validate requires that all coins are in alphabetical order, unique and
// non zero.
func (w *Wallet) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", w.Metadata.Validate())
	errs = errors.AppendField(errs, "Coins", w.Coins.Validate())
	if !w.Coins.IsNonNegative() {
		errs = errors.AppendField(errs, "Coins", errors.Wrap(errors.ErrAmount, "negative balance"))
	}
	return errs
}

func (w *Wallet) Marshal() ([]byte, error) {
	var e codec.Encoder
	if w.Metadata != nil {
		if err := e.Message(1, w.Metadata); err != nil {
			return nil, err
		}
	}
	for _, c := range w.Coins {
		if c == nil {
			continue
		}
		if err := e.Message(2, c); err != nil {
			return nil, err
		}
	}
	return e.Data(), nil
}

func (w *Wallet) Unmarshal(raw []byte) error {
	*w = Wallet{}
	d := codec.NewDecoder(raw)
	for {
		field, wire, ok, err := d.Next()
		if err != nil || !ok {
			return err
		}
		switch field {
		case 1:
			w.Metadata = &feevault.Metadata{}
			err = d.Message(wire, w.Metadata)
		case 2:
			var c coin.Coin
			if err = d.Message(wire, &c); err == nil {
				w.Coins = append(w.Coins, &c)
			}
		default:
			err = d.Skip(wire)
		}
		if err != nil {
			return err
		}
	}
}

// NewBucket returns the bucket that holds all wallets, keyed by the owner
// address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Wallet{})
}
