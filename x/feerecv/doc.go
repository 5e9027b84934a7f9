/*
Package feerecv implements a registry of fee receivers and the recovery of
tokens held by the registry account.

The owner registers fee receivers. Each receiver is associated with a
secondary beneficiary and a vault percentage. The registry account
accumulates fungible tokens. A registered receiver can sweep the whole
balance of a currency: the vault percentage of it goes to a destination of
the receiver's choice and the rest to the secondary beneficiary. The owner
can sweep the whole balance to any destination.

The owner is kept in the configuration of this package and can be changed
by the owner with an UpdateConfigurationMsg.
*/
package feerecv
