package gconf

import (
	"encoding/json"
	"testing"

	feevault "github.com/iov-one/feevault"
	"github.com/iov-one/feevault/coin"
	"github.com/iov-one/feevault/errors"
	"github.com/iov-one/feevault/store"
	"github.com/iov-one/feevault/weavetest"
	"github.com/iov-one/feevault/weavetest/assert"
)

func TestSaveLoad(t *testing.T) {
	owner := weavetest.RandomAddr(t)

	cases := map[string]struct {
		Conf        *myconfig
		WantSaveErr *errors.Error
	}{
		"valid configuration": {
			Conf: &myconfig{Owner: owner, Num: 42, Str: "x", Cn: coin.NewCoin(1, 2, "IOV")},
		},
		"invalid address cannot be saved": {
			Conf:        &myconfig{Owner: feevault.Address("too short"), Cn: coin.NewCoin(1, 0, "IOV")},
			WantSaveErr: errors.ErrInput,
		},
		"invalid coin cannot be saved": {
			Conf:        &myconfig{Owner: owner},
			WantSaveErr: errors.ErrCurrency,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			err := Save(db, "mypkg", tc.Conf)
			assert.IsErr(t, tc.WantSaveErr, err)
			if tc.WantSaveErr != nil {
				return
			}

			var got myconfig
			assert.Nil(t, Load(db, "mypkg", &got))
			assert.Equal(t, tc.Conf, &got)

			var other myconfig
			assert.IsErr(t, errors.ErrNotFound, Load(db, "otherpkg", &other))
		})
	}
}

func TestInitConfig(t *testing.T) {
	owner := weavetest.RandomAddr(t)

	cases := map[string]struct {
		Genesis string
		WantErr *errors.Error
	}{
		"valid configuration": {
			Genesis: `{"conf": {"mypkg": {"Owner": "` + owner.String() + `", "Num": 7, "Cn": "3.5 IOV"}}}`,
		},
		"package configuration missing": {
			Genesis: `{"conf": {"otherpkg": {}}}`,
			WantErr: errors.ErrNotFound,
		},
		"invalid configuration": {
			Genesis: `{"conf": {"mypkg": {"Owner": "` + owner.String() + `"}}}`,
			WantErr: errors.ErrCurrency,
		},
		"malformed configuration": {
			Genesis: `{"conf": {"mypkg": [1, 2]}}`,
			WantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts feevault.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.Genesis), &opts))

			db := store.MemStore()
			err := InitConfig(db, opts, "mypkg", &myconfig{})
			assert.IsErr(t, tc.WantErr, err)
			if tc.WantErr != nil {
				return
			}

			var got myconfig
			assert.Nil(t, Load(db, "mypkg", &got))
			assert.Equal(t, &myconfig{Owner: owner, Num: 7, Cn: coin.NewCoin(3, 500000000, "IOV")}, &got)
		})
	}
}

type myconfig struct {
	Owner feevault.Address
	Num   int64
	Str   string
	Cn    coin.Coin
}

func (c *myconfig) GetOwner() feevault.Address { return c.Owner }
func (c *myconfig) Marshal() ([]byte, error)   { return json.Marshal(c) }
func (c *myconfig) Unmarshal(raw []byte) error { return json.Unmarshal(raw, c) }

func (c *myconfig) Validate() error {
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	if err := c.Cn.Validate(); err != nil {
		return errors.Wrap(err, "coin")
	}
	return nil
}

type myconfigMsg struct {
	Patch *myconfig
}

var _ feevault.Msg = (*myconfigMsg)(nil)

func (msg *myconfigMsg) Marshal() ([]byte, error)   { return json.Marshal(msg) }
func (msg *myconfigMsg) Unmarshal(raw []byte) error { return json.Unmarshal(raw, msg) }
func (msg *myconfigMsg) Path() string               { return "myconfig" }

func (msg *myconfigMsg) Validate() error {
	if msg.Patch == nil {
		return errors.Wrap(errors.ErrMsg, "patch required")
	}
	return msg.Patch.Validate()
}
