package cash

import (
	"strings"
	"testing"

	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/coin"
	"github.com/iov-one/feevault/errors"
	"github.com/iov-one/feevault/weavetest"
	"github.com/iov-one/feevault/weavetest/assert"
)

func TestSendMsgValidate(t *testing.T) {
	src := weavetest.RandomAddr(t)
	dst := weavetest.RandomAddr(t)

	cases := map[string]struct {
		msg       *SendMsg
		wantField string
		wantErr   *errors.Error
	}{
		"valid": {
			msg: &SendMsg{Metadata: &feevault.Metadata{Schema: 1}, Source: src, Destination: dst, Amount: coin.NewCoinp(1, 0, "IOV"), Memo: "rent"},
		},
		"missing metadata": {
			msg:       &SendMsg{Source: src, Destination: dst, Amount: coin.NewCoinp(1, 0, "IOV")},
			wantField: "Metadata",
			wantErr:   errors.ErrMetadata,
		},
		"missing amount": {
			msg:       &SendMsg{Metadata: &feevault.Metadata{Schema: 1}, Source: src, Destination: dst},
			wantField: "Amount",
			wantErr:   errors.ErrEmpty,
		},
		"zero amount": {
			msg:       &SendMsg{Metadata: &feevault.Metadata{Schema: 1}, Source: src, Destination: dst, Amount: coin.NewCoinp(0, 0, "IOV")},
			wantField: "Amount",
			wantErr:   errors.ErrAmount,
		},
		"invalid destination": {
			msg:       &SendMsg{Metadata: &feevault.Metadata{Schema: 1}, Source: src, Destination: feevault.Address("x"), Amount: coin.NewCoinp(1, 0, "IOV")},
			wantField: "Destination",
			wantErr:   errors.ErrInput,
		},
		"memo too long": {
			msg:       &SendMsg{Metadata: &feevault.Metadata{Schema: 1}, Source: src, Destination: dst, Amount: coin.NewCoinp(1, 0, "IOV"), Memo: strings.Repeat("x", 129)},
			wantField: "Memo",
			wantErr:   errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
				return
			}
			assert.FieldError(t, err, tc.wantField, tc.wantErr)
		})
	}
}

func TestSendMsgSerialization(t *testing.T) {
	msg := SendMsg{
		Metadata:    &feevault.Metadata{Schema: 1},
		Source:      weavetest.RandomAddr(t),
		Destination: weavetest.RandomAddr(t),
		Amount:      coin.NewCoinp(2, 5, "IOV"),
		Memo:        "fund the registry",
	}
	raw, err := msg.Marshal()
	assert.Nil(t, err)

	var got SendMsg
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, msg, got)
}

func TestWalletSerialization(t *testing.T) {
	w := Wallet{
		Metadata: &feevault.Metadata{Schema: 1},
		Coins:    coin.Coins{coin.NewCoinp(1, 0, "ETH"), coin.NewCoinp(0, 7, "IOV")},
	}
	assert.Nil(t, w.Validate())
	raw, err := w.Marshal()
	assert.Nil(t, err)

	var got Wallet
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, w, got)
}
