package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no errors are given or all of them are nil, nil is returned. A single
// non nil error is returned as it is, without being wrapped.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		// Flatten nested multi errors so that the result is always a
		// single level list.
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
		} else {
			res = append(res, e)
		}
	}

	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

// multiErr represents a list of errors that happened together, for example
// during a model validation.
type multiErr []error

func (m multiErr) Error() string {
	msgs := make([]string, len(m))
	for i, e := range m {
		msgs[i] = "* " + e.Error()
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(m), strings.Join(msgs, "\n\t"))
}

// Unpack returns all errors clubbed together.
func (m multiErr) Unpack() []error {
	return m
}

// Cause returns the first error so that the code of a multi error is the
// code of the first failure.
func (m multiErr) Cause() error {
	return m[0]
}

// unpacker is implemented by errors that carry more than one error.
type unpacker interface {
	Unpack() []error
}
