package feevault

import (
	"testing"

	"github.com/iov-one/feevault/errors"
	"github.com/iov-one/feevault/weavetest/assert"
)

type pingMsg struct {
	invalid bool
}

func (m *pingMsg) Marshal() ([]byte, error) { return nil, nil }
func (m *pingMsg) Unmarshal([]byte) error   { return nil }
func (m *pingMsg) Path() string             { return "test/ping" }
func (m *pingMsg) Validate() error {
	if m.invalid {
		return errors.Wrap(errors.ErrMsg, "invalid ping")
	}
	return nil
}

type pongMsg struct{ pingMsg }

type fakeTx struct {
	msg Msg
	err error
}

func (tx *fakeTx) Marshal() ([]byte, error) { return nil, nil }
func (tx *fakeTx) Unmarshal([]byte) error   { return nil }
func (tx *fakeTx) GetMsg() (Msg, error)     { return tx.msg, tx.err }

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		tx      Tx
		wantErr *errors.Error
	}{
		"valid message": {
			tx: &fakeTx{msg: &pingMsg{}},
		},
		"invalid message": {
			tx:      &fakeTx{msg: &pingMsg{invalid: true}},
			wantErr: errors.ErrMsg,
		},
		"missing message": {
			tx:      &fakeTx{},
			wantErr: errors.ErrMsg,
		},
		"decoding failure": {
			tx:      &fakeTx{err: errors.ErrInput},
			wantErr: errors.ErrInput,
		},
		"unexpected message type": {
			tx:      &fakeTx{msg: &pongMsg{}},
			wantErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var msg *pingMsg
			err := LoadMsg(tc.tx, &msg)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr == nil && msg == nil {
				t.Fatal("message not loaded")
			}
		})
	}
}

func TestGetPath(t *testing.T) {
	assert.Equal(t, "test/ping", GetPath(&fakeTx{msg: &pingMsg{}}))
	assert.Equal(t, "(missing)", GetPath(&fakeTx{}))
}

func TestLoadMsgIntoValue(t *testing.T) {
	var msg pingMsg
	assert.Nil(t, LoadMsg(&fakeTx{msg: &pingMsg{}}, &msg))

	var pong pongMsg
	assert.IsErr(t, errors.ErrType, LoadMsg(&fakeTx{msg: &pingMsg{}}, &pong))
}
