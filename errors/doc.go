/*
Package errors implements the error handling used by feevault and its
extensions.

Every error returned by the framework should wrap one of the root errors
declared with Register. Root errors carry a unique code, so that a client can
categorize a failure without parsing the message. Use ErrXyz.Is(err) to test
the kind of an error no matter how many times it was wrapped.

A stack trace is attached once, at the lowest Wrap call. Format an error with
%+v to print it.
*/
package errors
