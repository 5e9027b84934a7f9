/*
Package sigs provides the authentication middleware. It verifies the
ed25519 signatures of a transaction, keeps a sequence number per public
key for replay protection and exposes the signers to the handlers as
conditions.
*/
package sigs
