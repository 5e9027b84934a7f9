/*
Package feevault defines the common interfaces that tie together the
subpackages of the fee vault application, as well as implementations of
the simpler components where an interface would be too much overhead.

The request lifecycle is the same for every message. A Tx is decoded,
passed through a chain of Decorators (authentication, logging, panic
recovery, savepoints) and finally routed by its message path to a
Handler. A Handler always works on a KVStore that is isolated for the
lifetime of a single transaction, so a failed transaction never leaves
partial state behind.

Context values that are shared between the layers are stored in a
context.Context. For every value XYZ of type T there exist two
functions:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ panics if the value was already set, so that a lower layer
cannot overwrite what the application decided.
*/
package feevault
