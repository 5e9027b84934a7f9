package errors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStackTrace(t *testing.T) {
	cases := map[string]struct {
		err       error
		wantError string
	}{
		"New gives us a stacktrace": {
			err:       Wrap(ErrDuplicate, "name"),
			wantError: "name: duplicate",
		},
		"Wrapping stderr gives us a stacktrace": {
			err:       Wrap(fmt.Errorf("foo"), "standard"),
			wantError: "standard: foo",
		},
		"Wrapping twice keeps the message chain": {
			err:       Wrap(Wrap(ErrAmount, "inner"), "outer"),
			wantError: "outer: inner: invalid amount",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.NotNil(t, stackTrace(tc.err))
			assert.Equal(t, tc.wantError, tc.err.Error())

			full := fmt.Sprintf("%+v", tc.err)
			assert.True(t, strings.HasPrefix(full, tc.wantError))
			assert.Contains(t, full, "stacktrace_test.go")
		})
	}
}
