package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attaches the name of the invalid model or message attribute to
// err. It returns nil if err is nil. The description is optional and is
// formatted with args.
//
// Field names follow Go naming. Nested attributes are joined with a dot,
// for example Patch.Owner, see NestField.
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{parent: err, field: fieldName, desc: description}
}

// AppendField adds the field error, if any, to errorsOrNil.
func AppendField(errorsOrNil error, fieldName string, fieldErrOrNil error) error {
	return Append(errorsOrNil, Field(fieldName, fieldErrOrNil, ""))
}

// NestField returns err with all top level field names prefixed with
// parent, so that the validation errors of an embedded value are reported
// under the embedding field. An error that is not a field error is
// reported as the parent field itself.
func NestField(parent string, err error) error {
	if isNilErr(err) {
		return nil
	}
	if u, ok := err.(unpacker); ok {
		var res error
		for _, e := range u.Unpack() {
			res = Append(res, NestField(parent, e))
		}
		return res
	}
	if f, ok := err.(*fieldError); ok {
		return &fieldError{parent: f.parent, field: parent + "." + f.field, desc: f.desc}
	}
	return Field(parent, err, "")
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (err *fieldError) Error() string {
	if err.desc == "" {
		return fmt.Sprintf("field %q: %s", err.field, err.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", err.field, err.desc, err.parent)
}

// Cause implements the causer interface.
func (err *fieldError) Cause() error {
	return err.parent
}

// Field implements the fielder interface.
func (err *fieldError) Field() string {
	return err.field
}

type fielder interface {
	// Field returns the name of the attribute the error was created for.
	Field() string
}

// FieldErrors returns all errors found in the err tree that were created
// for the given field name. The search does not descend into a matching
// field error.
func FieldErrors(err error, fieldName string) []error {
	if isNilErr(err) {
		return nil
	}
	if f, ok := err.(fielder); ok && f.Field() == fieldName {
		return []error{err}
	}
	// Unpacker is a superset of causer, all children are visited here.
	if u, ok := err.(unpacker); ok {
		var res []error
		for _, e := range u.Unpack() {
			res = append(res, FieldErrors(e, fieldName)...)
		}
		return res
	}
	if c, ok := err.(causer); ok {
		return FieldErrors(c.Cause(), fieldName)
	}
	return nil
}
