package feevault

import (
	"encoding/json"

	"github.com/iov-one/feevault/errors"
	"github.com/tendermint/tendermint/libs/common"
)

// Handler is a core engine that can process a few specific messages.
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality like
// authentication to many Handlers.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is the setup side of a Router.
type Registry interface {
	Handle(path string, h Handler)
}

// CheckResult captures any non-error result of a Check call.
type CheckResult struct {
	// Data is a machine-parseable return value.
	Data []byte
	// Log is a human readable message.
	Log string
}

// DeliverResult captures any non-error result of a Deliver call.
type DeliverResult struct {
	// Data is a machine-parseable return value.
	Data []byte
	// Log is a human readable message.
	Log string
	// Tags describe the side effects of the execution. They can be used
	// to index and find transactions.
	Tags []common.KVPair
}

// Options are the application options loaded from a genesis file. Each
// extension looks up its key and parses the json as desired.
type Options map[string]json.RawMessage

// ReadOptions parses the json stored under the given key into obj. A
// missing key is not an error and leaves obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "%s options: %s", key, err)
	}
	return nil
}

// Initializer implementations are used to initialize extensions from the
// genesis file content.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// MultiInit calls all initializers in order and stops on the first
// failure.
type MultiInit []Initializer

var _ Initializer = MultiInit(nil)

// FromGenesis implements Initializer.
func (m MultiInit) FromGenesis(opts Options, db KVStore) error {
	for _, i := range m {
		if err := i.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
