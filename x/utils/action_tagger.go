package utils

import (
	feevault "github.com/iov-one/feevault"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionTagger will inspect the message being executed and add a tag
// `action = msg.Path()`, so clients have a standard way to search or
// subscribe to eg. token recoveries.
type ActionTagger struct{}

var _ feevault.Decorator = ActionTagger{}

// ActionKey is used by ActionTagger as the Key in the Tag it appends.
const ActionKey = "action"

// NewActionTagger creates a ActionTagger decorator.
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Check just passes the request along.
func (ActionTagger) Check(ctx feevault.Context, db feevault.KVStore, tx feevault.Tx, next feevault.Checker) (*feevault.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver appends a tag on the result if there is a success.
func (ActionTagger) Deliver(ctx feevault.Context, db feevault.KVStore, tx feevault.Tx, next feevault.Deliverer) (*feevault.DeliverResult, error) {
	// If we error in reporting, let's do so early before dispatching.
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}

	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if msg != nil {
		res.Tags = append(res.Tags, common.KVPair{
			Key:   []byte(ActionKey),
			Value: []byte(msg.Path()),
		})
	}
	return res, nil
}
