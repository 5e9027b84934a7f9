package cash

import (
	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/coin"
	"github.com/iov-one/feevault/errors"
	"github.com/iov-one/feevault/orm"
)

// Balancer returns the holdings of an account.
type Balancer interface {
	Balance(feevault.ReadOnlyKVStore, feevault.Address) (coin.Coins, error)
}

// CoinMover moves coins between two accounts.
type CoinMover interface {
	MoveCoins(feevault.KVStore, feevault.Address, feevault.Address, coin.Coin) error
}

// CoinMinter creates new coins.
type CoinMinter interface {
	CoinMint(feevault.KVStore, feevault.Address, coin.Coin) error
}

// Controller is the functionality needed by cash.Handler and other
// extensions that operate on the ledger.
type Controller interface {
	Balancer
	CoinMover
	CoinMinter
}

// BaseController is the default implementation of the Controller.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller that stores wallets in the given
// bucket.
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the coins held by the address. It fails with
// ErrNotFound when no wallet exists.
func (c BaseController) Balance(db feevault.ReadOnlyKVStore, addr feevault.Address) (coin.Coins, error) {
	var w Wallet
	if err := c.bucket.One(db, addr, &w); err != nil {
		return nil, errors.Wrapf(err, "wallet %s", addr)
	}
	return w.Coins, nil
}

// MoveCoins moves the given amount from src to dest. Moving a zero amount
// succeeds without changing any state. If src does not have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db feevault.KVStore, src, dest feevault.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if amount.IsZero() {
		return nil
	}
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount: %s", amount)
	}

	sender, err := c.wallet(db, src)
	if err != nil {
		return err
	}
	if !sender.Coins.Contains(amount) {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds: %s", sender.Coins.Balance(amount.Ticker))
	}
	if sender.Coins, err = sender.Coins.Subtract(amount); err != nil {
		return err
	}
	if err := c.bucket.Put(db, src, sender); err != nil {
		return errors.Wrap(err, "cannot save sender")
	}

	// The recipient is loaded after the sender is saved, so that moving
	// coins to self does not create coins.
	recipient, err := c.wallet(db, dest)
	if err != nil {
		return err
	}
	if recipient.Coins, err = recipient.Coins.Add(amount); err != nil {
		return err
	}
	if err := c.bucket.Put(db, dest, recipient); err != nil {
		return errors.Wrap(err, "cannot save recipient")
	}
	return nil
}

// CoinMint attempts to add the given amount of coins to the destination
// address. Fails if it overflows the wallet.
func (c BaseController) CoinMint(db feevault.KVStore, dest feevault.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount: %s", amount)
	}
	w, err := c.wallet(db, dest)
	if err != nil {
		return err
	}
	if w.Coins, err = w.Coins.Add(amount); err != nil {
		return err
	}
	return c.bucket.Put(db, dest, w)
}

// wallet returns the wallet of the address or a new empty one.
func (c BaseController) wallet(db feevault.ReadOnlyKVStore, addr feevault.Address) (*Wallet, error) {
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	var w Wallet
	switch err := c.bucket.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{Metadata: &feevault.Metadata{Schema: 1}}, nil
	default:
		return nil, errors.Wrap(err, "cannot load wallet")
	}
}
