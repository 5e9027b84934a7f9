package feerecv

import (
	"fmt"

	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/coin"
	"github.com/iov-one/feevault/errors"
	"github.com/iov-one/feevault/orm"
	"github.com/iov-one/feevault/x"
)

// CashController is the ledger the registry account tokens are held in.
type CashController interface {
	Balance(feevault.ReadOnlyKVStore, feevault.Address) (coin.Coins, error)
	MoveCoins(feevault.KVStore, feevault.Address, feevault.Address, coin.Coin) error
}

// authorization is the outcome of authenticating the recovery caller. It
// is either an ownerOverride or a receiverSplit.
type authorization interface {
	// transfers returns the movements of the swept balance.
	transfers(balance coin.Coin, destination feevault.Address) ([]transfer, error)
	path() string
}

// ownerOverride sends the whole balance to the destination.
type ownerOverride struct{}

func (ownerOverride) path() string { return "owner" }

func (ownerOverride) transfers(balance coin.Coin, destination feevault.Address) ([]transfer, error) {
	return []transfer{{dst: destination, amount: balance}}, nil
}

// receiverSplit divides the balance between the destination and the
// secondary address of the receiver.
type receiverSplit struct {
	receiver feevault.Address
	record   *FeeReceiver
}

func (receiverSplit) path() string { return "receiver" }

func (s receiverSplit) transfers(balance coin.Coin, destination feevault.Address) ([]transfer, error) {
	vault, secondary, err := split(balance, s.record.VaultPercentage)
	if err != nil {
		return nil, err
	}
	// Both transfers are issued even if one of the amounts is zero.
	return []transfer{
		{dst: destination, amount: vault},
		{dst: s.record.SecondaryAddress, amount: secondary},
	}, nil
}

type transfer struct {
	dst    feevault.Address
	amount coin.Coin
}

// split returns the vault share, rounded down in the smallest unit of the
// coin, and the remainder.
func split(balance coin.Coin, percentage int32) (vault, secondary coin.Coin, err error) {
	if err := validatePercentage(percentage); err != nil {
		return vault, secondary, err
	}
	vault, err = balance.Share(int64(percentage), 100)
	if err != nil {
		return vault, secondary, errors.Wrap(err, "vault share")
	}
	secondary, err = balance.Subtract(vault)
	if err != nil {
		return vault, secondary, errors.Wrap(err, "secondary share")
	}
	return vault, secondary, nil
}

// Recovery sweeps the tokens held by the registry account.
type Recovery struct {
	bucket orm.ModelBucket
	cash   CashController
}

// NewRecovery returns a recovery engine using the given registry of fee
// receivers and ledger.
func NewRecovery(bucket orm.ModelBucket, cash CashController) Recovery {
	return Recovery{bucket: bucket, cash: cash}
}

// RecoveryReport describes the outcome of a recovery.
type RecoveryReport struct {
	// Path is either "owner" or "receiver".
	Path string
	// Receiver is the authorized fee receiver, nil on the owner path.
	Receiver       feevault.Address
	Balance        coin.Coin
	VaultShare     coin.Coin
	SecondaryShare coin.Coin
	// Transfers is the number of ledger transfers issued.
	Transfers int
}

// authorize decides how the caller may recover tokens. The owner takes
// precedence over a registered receiver. Among several signers, the first
// authorized receiver is used.
func (r Recovery) authorize(ctx feevault.Context, db feevault.ReadOnlyKVStore, auth x.Authenticator) (authorization, error) {
	owner, err := CurrentOwner(db)
	if err != nil {
		return nil, err
	}
	if auth.HasAddress(ctx, owner) {
		return ownerOverride{}, nil
	}
	for _, signer := range x.GetAddresses(ctx, auth) {
		var rec FeeReceiver
		switch err := r.bucket.One(db, signer, &rec); {
		case err == nil:
			if rec.Authorized {
				return receiverSplit{receiver: signer, record: &rec}, nil
			}
		case errors.ErrNotFound.Is(err):
		default:
			return nil, errors.Wrap(err, "load fee receiver")
		}
	}
	return nil, errors.Wrap(errors.ErrUnauthorized, "sender must be an authorized receiver or the owner")
}

// RecoverTokens moves the whole registry balance of the ticker currency.
// The owner sends everything to the destination. An authorized receiver
// sends the vault share to the destination and the rest to its secondary
// address. A zero balance is a successful no-op.
//
// Either all transfers succeed or none is applied.
func (r Recovery) RecoverTokens(ctx feevault.Context, db feevault.KVStore, auth x.Authenticator, ticker string, destination feevault.Address) (*RecoveryReport, error) {
	authz, err := r.authorize(ctx, db, auth)
	if err != nil {
		return nil, err
	}

	registry := RegistryAccount()
	coins, err := r.cash.Balance(db, registry)
	if err != nil && !errors.ErrNotFound.Is(err) {
		return nil, errors.Wrap(err, "registry balance")
	}
	balance := coins.Balance(ticker)

	report := RecoveryReport{
		Path:           authz.path(),
		Balance:        balance,
		VaultShare:     balance,
		SecondaryShare: coin.Coin{Ticker: ticker},
	}
	if s, ok := authz.(receiverSplit); ok {
		report.Receiver = s.receiver
	}
	if balance.IsZero() {
		report.VaultShare = coin.Coin{Ticker: ticker}
		return &report, nil
	}

	moves, err := authz.transfers(balance, destination)
	if err != nil {
		return nil, err
	}
	if len(moves) == 2 {
		report.VaultShare, report.SecondaryShare = moves[0].amount, moves[1].amount
	}
	if err := r.move(db, registry, moves); err != nil {
		return nil, err
	}
	report.Transfers = len(moves)

	feevault.GetLogger(ctx).Debug("tokens recovered",
		"path", report.Path,
		"ticker", ticker,
		"vault_share", report.VaultShare.String(),
		"secondary_share", report.SecondaryShare.String())
	return &report, nil
}

// move applies all transfers from the registry account within a cache of
// the store, so that a failure leaves no partial effect.
func (r Recovery) move(db feevault.KVStore, src feevault.Address, moves []transfer) error {
	store := db
	var cache feevault.KVCacheWrap
	if c, ok := db.(feevault.CacheableKVStore); ok {
		cache = c.CacheWrap()
		store = cache
	}
	for _, m := range moves {
		if err := r.cash.MoveCoins(store, src, m.dst, m.amount); err != nil {
			if cache != nil {
				cache.Discard()
			}
			return errors.Wrap(errors.Append(ErrTransfer, err), fmt.Sprintf("move %s to %s", m.amount, m.dst))
		}
	}
	if cache != nil {
		if err := cache.Write(); err != nil {
			return errors.Wrap(err, "write transfers")
		}
	}
	return nil
}
