package sigs

import (
	"context"
	"testing"

	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/crypto"
	"github.com/iov-one/feevault/errors"
	"github.com/iov-one/feevault/store"
	"github.com/iov-one/feevault/weavetest"
	"github.com/iov-one/feevault/weavetest/assert"
)

const chainID = "feevault-test"

// signedTx is a minimal SignedTx carrying raw bytes as its message.
type signedTx struct {
	weavetest.Tx
	payload []byte
	sigs    []*StdSignature
}

func (tx *signedTx) GetSignBytes() ([]byte, error)   { return tx.payload, nil }
func (tx *signedTx) GetSignatures() []*StdSignature { return tx.sigs }

func sign(t *testing.T, tx *signedTx, key *crypto.PrivateKey, seq int64) {
	t.Helper()
	sig, err := SignTx(key, tx, chainID, seq)
	assert.Nil(t, err)
	tx.sigs = append(tx.sigs, sig)
}

func TestVerifyTxSignatures(t *testing.T) {
	alice := weavetest.NewKey()
	bob := weavetest.NewKey()
	db := store.MemStore()

	tx := &signedTx{payload: []byte("recover IOV")}
	sign(t, tx, alice, 0)
	sign(t, tx, bob, 0)

	signers, err := VerifyTxSignatures(db, tx, chainID)
	assert.Nil(t, err)
	assert.Equal(t, []feevault.Condition{alice.PublicKey().Condition(), bob.PublicKey().Condition()}, signers)

	// Replaying the same transaction fails, the sequence moved on.
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.IsErr(t, ErrInvalidSequence, err)

	seq, err := NextSequence(db, alice.PublicKey())
	assert.Nil(t, err)
	assert.Equal(t, int64(1), seq)

	next := &signedTx{payload: []byte("recover ETH")}
	sign(t, next, alice, 1)
	_, err = VerifyTxSignatures(db, next, chainID)
	assert.Nil(t, err)
}

func TestVerifySignatureFailures(t *testing.T) {
	key := weavetest.NewKey()
	tx := &signedTx{payload: []byte("data")}
	sign(t, tx, key, 0)
	valid := tx.sigs[0]

	cases := map[string]struct {
		sig     *StdSignature
		payload []byte
		chainID string
		wantErr *errors.Error
	}{
		"modified payload": {
			sig:     valid,
			payload: []byte("other data"),
			chainID: chainID,
			wantErr: errors.ErrUnauthorized,
		},
		"other chain": {
			sig:     valid,
			payload: tx.payload,
			chainID: "another-chain",
			wantErr: errors.ErrUnauthorized,
		},
		"invalid chain": {
			sig:     valid,
			payload: tx.payload,
			chainID: "x",
			wantErr: errors.ErrInput,
		},
		"missing public key": {
			sig:     &StdSignature{Signature: valid.Signature},
			payload: tx.payload,
			chainID: chainID,
			wantErr: errors.ErrUnauthorized,
		},
		"negative sequence": {
			sig:     &StdSignature{Sequence: -1, PubKey: valid.PubKey, Signature: valid.Signature},
			payload: tx.payload,
			chainID: chainID,
			wantErr: ErrInvalidSequence,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			_, err := VerifySignature(db, tc.sig, tc.payload, tc.chainID)
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestDecorator(t *testing.T) {
	key := weavetest.NewKey()
	ctx := feevault.WithChainID(context.Background(), chainID)

	cases := map[string]struct {
		decorator Decorator
		tx        feevault.Tx
		wantErr   *errors.Error
		signers   []feevault.Condition
	}{
		"signed transaction": {
			decorator: NewDecorator(),
			tx: func() feevault.Tx {
				tx := &signedTx{payload: []byte("a")}
				sign(t, tx, key, 0)
				return tx
			}(),
			signers: []feevault.Condition{key.PublicKey().Condition()},
		},
		"missing signatures": {
			decorator: NewDecorator(),
			tx:        &signedTx{payload: []byte("a")},
			wantErr:   errors.ErrUnauthorized,
		},
		"missing signatures allowed": {
			decorator: NewDecorator().AllowMissingSigs(),
			tx:        &weavetest.Tx{},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			h := &signersHandler{}
			_, err := tc.decorator.Deliver(ctx, db, tc.tx, h)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr == nil {
				assert.Equal(t, tc.signers, h.signers)
			}
		})
	}
}

// signersHandler records the signers it was called with.
type signersHandler struct {
	signers []feevault.Condition
}

func (h *signersHandler) Check(ctx feevault.Context, db feevault.KVStore, tx feevault.Tx) (*feevault.CheckResult, error) {
	h.signers = Authenticate{}.GetConditions(ctx)
	return &feevault.CheckResult{}, nil
}

func (h *signersHandler) Deliver(ctx feevault.Context, db feevault.KVStore, tx feevault.Tx) (*feevault.DeliverResult, error) {
	h.signers = Authenticate{}.GetConditions(ctx)
	return &feevault.DeliverResult{}, nil
}
