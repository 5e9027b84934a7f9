package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// BaseApp contains a data store and executes transactions against it.
//
// Transactions are executed strictly one at a time. Each transaction runs
// on a cache of the current block state, which is written only when the
// handler succeeds.
type BaseApp struct {
	mu sync.Mutex

	logger log.Logger

	// name is what is returned from Info.
	name string

	store       *CommitStore
	decoder     feevault.TxDecoder
	handler     feevault.Handler
	queryRouter feevault.QueryRouter
	initializer feevault.Initializer

	// chainID is loaded from db in initialization, saved once on
	// InitChain.
	chainID string

	// baseContext contains context info that is valid for lifetime of
	// this app (eg. chainID).
	baseContext feevault.Context

	// blockContext contains context info that is valid for the current
	// block (eg. height), reset on BeginBlock.
	blockContext feevault.Context
}

// NewBaseApp loads the latest state of the store and returns an
// application ready to process transactions.
func NewBaseApp(
	name string,
	store feevault.CommitKVStore,
	decoder feevault.TxDecoder,
	handler feevault.Handler,
	queryRouter feevault.QueryRouter,
	initializer feevault.Initializer,
	logger log.Logger,
) (*BaseApp, error) {
	cs, err := NewCommitStore(store)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	b := &BaseApp{
		logger:      logger,
		name:        name,
		store:       cs,
		decoder:     decoder,
		handler:     handler,
		queryRouter: queryRouter,
		initializer: initializer,
		baseContext: feevault.WithLogger(context.Background(), logger.With("app", name)),
	}

	if b.chainID, err = loadChainID(cs.DeliverStore()); err != nil {
		return nil, err
	}
	if b.chainID != "" {
		b.baseContext = feevault.WithChainID(b.baseContext, b.chainID)
	}

	info, err := cs.CommitInfo()
	if err != nil {
		return nil, errors.Wrap(err, "commit info")
	}
	b.blockContext = feevault.WithHeight(b.baseContext, info.Version)
	return b, nil
}

// ChainID returns the chain the application state belongs to.
func (b *BaseApp) ChainID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.chainID
}

// Logger returns the application base logger.
func (b *BaseApp) Logger() log.Logger {
	return b.logger
}

// Info returns the height and hash of the last committed state.
func (b *BaseApp) Info() (feevault.CommitID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	info, err := b.store.CommitInfo()
	if err != nil {
		return info, err
	}
	b.logger.Info("Info synced", "name", b.name, "height", info.Version, "hash", fmt.Sprintf("%X", info.Hash))
	return info, nil
}

// InitChain stores the chain ID and initializes all extensions from the
// genesis application state. It can be called only once in the life of
// the chain.
func (b *BaseApp) InitChain(gen Genesis) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.chainID != "" {
		return errors.Wrapf(errors.ErrState, "app state previously loaded for chain %s", b.chainID)
	}

	db := b.store.DeliverStore()
	if err := saveChainID(db, gen.ChainID); err != nil {
		return err
	}
	if b.initializer != nil {
		if err := b.initializer.FromGenesis(gen.AppState, db); err != nil {
			return errors.Wrap(err, "initialize from genesis")
		}
	}

	b.chainID = gen.ChainID
	b.baseContext = feevault.WithChainID(b.baseContext, b.chainID)
	b.blockContext = feevault.WithHeight(b.baseContext, 0)
	return nil
}

// BeginBlock sets up the context of all transactions of the next block.
func (b *BaseApp) BeginBlock(height int64, blockTime time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ctx := feevault.WithHeight(b.baseContext, height)
	b.blockContext = feevault.WithBlockTime(ctx, blockTime)
}

// DeliverTx decodes and executes the transaction. State changes are kept
// only if the execution succeeds.
func (b *BaseApp) DeliverTx(txBytes []byte) (*feevault.DeliverResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tx, err := b.loadTx(txBytes)
	if err != nil {
		return nil, err
	}

	ctx := feevault.WithLogInfo(b.blockContext,
		"call", "deliver_tx",
		"path", feevault.GetPath(tx))

	cache := b.store.DeliverStore().CacheWrap()
	res, err := b.handler.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write transaction changes")
	}
	return res, nil
}

// CheckTx decodes and checks the transaction against the check state.
func (b *BaseApp) CheckTx(txBytes []byte) (*feevault.CheckResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tx, err := b.loadTx(txBytes)
	if err != nil {
		return nil, err
	}

	ctx := feevault.WithLogInfo(b.blockContext,
		"call", "check_tx",
		"path", feevault.GetPath(tx))

	cache := b.store.CheckStore().CacheWrap()
	res, err := b.handler.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write check changes")
	}
	return res, nil
}

// Commit persists the state of all delivered transactions.
func (b *BaseApp) Commit() (feevault.CommitID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id, err := b.store.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	b.logger.Debug("Commit synced",
		"height", id.Version,
		"hash", fmt.Sprintf("%X", id.Hash))
	return id, nil
}

/*
Query gets data from the committed state.

Path may be "/", "/<bucket>", or "/<bucket>/<index>". It may be followed
by "?prefix" to make a prefix query. Data is interpreted by the query
handler registered for the path.
*/
func (b *BaseApp) Query(path string, data []byte) ([]feevault.Model, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	path, mod := splitPath(path)
	qh := b.queryRouter.Handler(path)
	if qh == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "unexpected query path: %s", path)
	}
	return qh.Query(b.store.committed.CacheWrap(), mod, data)
}

// splitPath splits out the real path along with the query modifier
// (everything after the ?).
func splitPath(path string) (string, string) {
	var mod string
	chunks := strings.SplitN(path, "?", 2)
	if len(chunks) == 2 {
		path = chunks[0]
		mod = chunks[1]
	}
	return path, mod
}

// loadTx calls the decoder, and capture any panics.
func (b *BaseApp) loadTx(txBytes []byte) (tx feevault.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	if err != nil {
		return nil, errors.Wrap(err, "decode transaction")
	}
	return tx, nil
}
