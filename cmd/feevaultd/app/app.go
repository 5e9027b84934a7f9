/*
Package app links together all the extensions of the fee vault
application: signature verification, the token ledger and the fee
receiver registry.
*/
package app

import (
	"path/filepath"
	"strings"

	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/app"
	"github.com/iov-one/feevault/errors"
	"github.com/iov-one/feevault/store/iavl"
	"github.com/iov-one/feevault/x"
	"github.com/iov-one/feevault/x/cash"
	"github.com/iov-one/feevault/x/feerecv"
	"github.com/iov-one/feevault/x/sigs"
	"github.com/iov-one/feevault/x/utils"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is returned by the application Info.
const Name = "feevault"

// Authenticator returns the authentication used by all handlers, just
// using public key signatures.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication, logging
// and recovery.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		sigs.NewDecorator(),
		// on DeliverTx, a failing message still increments the
		// sequence of the signers
		utils.NewSavepoint().OnDeliver(),
		utils.NewActionTagger(),
	)
}

// Router returns a router dispatching to the ledger and the fee receiver
// registry handlers.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	ctrl := cash.NewController(cash.NewBucket())
	cash.RegisterRoutes(r, authFn, ctrl)
	feerecv.RegisterRoutes(r, authFn, ctrl)
	return r
}

// QueryRouter returns a query router, allowing access to "/wallets",
// "/auth" and "/feereceivers".
func QueryRouter() feevault.QueryRouter {
	r := feevault.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		sigs.RegisterQuery,
		feerecv.RegisterQuery,
	)
	return r
}

// Stack wires up the router with the decorator chain. This can be passed
// into BaseApp.
func Stack() feevault.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn))
}

// Initializers returns the genesis initializers of all extensions.
func Initializers() feevault.Initializer {
	return feevault.MultiInit{
		cash.Initializer{},
		feerecv.Initializer{},
	}
}

// Application constructs the fee vault application persisting its state
// under dbPath. An empty dbPath keeps the state in memory.
func Application(dbPath string, logger log.Logger) (*app.BaseApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, err
	}
	return app.NewBaseApp(Name, kv, TxDecoder, Stack(), QueryRouter(), Initializers(), logger)
}

// CommitKVStore returns an initialized KVStore that persists the data to
// the named path.
func CommitKVStore(dbPath string) (feevault.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}
	// Some external calls accidentally add a ".db", which is now removed.
	path = strings.TrimSuffix(path, filepath.Ext(path))

	kv, err := iavl.NewCommitStore(filepath.Dir(path), filepath.Base(path))
	if err != nil {
		return nil, errors.Wrap(err, "open commit store")
	}
	return kv, nil
}
