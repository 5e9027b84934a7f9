package feevault

import (
	"reflect"

	"github.com/iov-one/feevault/errors"
)

// Msg is a message for the application to take an action. It is just the
// request and must be validated by the Handlers. All authentication
// information is in the wrapping Tx.
type Msg interface {
	Persistent

	// Path is used by the Router to locate the proper Handler. It must
	// match [0-9A-Za-z_/]+.
	Path() string

	// Validate performs a sanity check that requires no access to the
	// state.
	Validate() error
}

// Marshaller is anything that can be represented in binary.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal.
//
// It is separated from Marshaller, as Unmarshal almost always requires a
// pointer receiver.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx represents the data sent from the user to the chain. It includes the
// message along with the information needed to authenticate the sender.
//
// Each application defines its own Tx type.
type Tx interface {
	Persistent

	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)
}

// TxDecoder can parse bytes into a Tx.
type TxDecoder func(txBytes []byte) (Tx, error)

// GetPath returns the path of the message, or (missing) if there is no
// message.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message of the transaction into the destination,
// which must be a pointer to the expected message type or to a pointer of
// it. The message is validated before it is returned.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "no message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr {
		return errors.Wrap(errors.ErrHuman, "destination must be a pointer")
	}
	src := reflect.ValueOf(msg)
	switch want := dest.Elem().Type(); {
	case src.Type().AssignableTo(want):
		dest.Elem().Set(src)
	case src.Kind() == reflect.Ptr && src.Elem().Type().AssignableTo(want):
		dest.Elem().Set(src.Elem())
	default:
		return errors.Wrapf(errors.ErrType, "want %s message, got %T", want, msg)
	}
	return nil
}
