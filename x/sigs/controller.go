package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/crypto"
	"github.com/iov-one/feevault/errors"
)

// SignCodeV1 is the current prefix of the bytes a signature is built
// from.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures checks all the signatures of the transaction and
// increments the sequence of every signer.
//
// It returns the conditions of all signers, possibly none, or an error if
// any signature is invalid.
func VerifyTxSignatures(db feevault.KVStore, tx SignedTx, chainID string) ([]feevault.Condition, error) {
	bz, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}

	sigs := tx.GetSignatures()
	signers := make([]feevault.Condition, 0, len(sigs))
	for i, sig := range sigs {
		signer, err := VerifySignature(db, sig, bz, chainID)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		signers = append(signers, signer)
	}
	return signers, nil
}

// VerifySignature checks one signature against the sign bytes, and
// increments the sequence of the signer in the store.
func VerifySignature(db feevault.KVStore, sig *StdSignature, signBytes []byte, chainID string) (feevault.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}

	bucket := NewBucket()
	key := sig.PubKey.Address()
	user := UserData{
		Metadata: &feevault.Metadata{Schema: 1},
		PubKey:   sig.PubKey,
	}
	if err := bucket.One(db, key, &user); err != nil && !errors.ErrNotFound.Is(err) {
		return nil, errors.Wrap(err, "cannot load signer")
	}

	toSign, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !user.PubKey.Verify(toSign, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}

	if sig.Sequence != user.Sequence {
		return nil, errors.Wrapf(ErrInvalidSequence, "got %d, want %d", sig.Sequence, user.Sequence)
	}
	user.Sequence++
	if err := bucket.Put(db, key, &user); err != nil {
		return nil, errors.Wrap(err, "cannot save signer")
	}
	return user.PubKey.Condition(), nil
}

/*
BuildSignBytes combines all info on the actual tx before signing.

The format is:

  version | len(chainID) | chainID      | sequence          | signBytes
  4bytes  | uint8        | ascii string | int64 (bigendian) | serialized transaction

The result is prehashed with sha512 before it is fed into the public
key signing and verification.
*/
func BuildSignBytes(signBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !feevault.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}

	nonce := make([]byte, 8)
	binary.BigEndian.PutUint64(nonce, uint64(seq))

	output := make([]byte, 0, len(SignCodeV1)+1+len(chainID)+len(nonce)+len(signBytes))
	output = append(output, SignCodeV1...)
	output = append(output, uint8(len(chainID)))
	output = append(output, chainID...)
	output = append(output, nonce...)
	output = append(output, signBytes...)

	hashed := sha512.Sum512(output)
	return hashed[:], nil
}

// SignTx creates a signature of the transaction for the given chain and
// sequence.
func SignTx(signer *crypto.PrivateKey, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	bz, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}
	toSign, err := BuildSignBytes(bz, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(toSign)
	if err != nil {
		return nil, err
	}
	return &StdSignature{
		Sequence:  seq,
		PubKey:    signer.PublicKey(),
		Signature: sig,
	}, nil
}
