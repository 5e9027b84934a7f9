package codec

import (
	"testing"

	"github.com/iov-one/feevault/errors"
	"github.com/iov-one/feevault/weavetest/assert"
)

type pair struct {
	Name  string
	Count int64
	Flag  bool
	Inner *pair
}

func (p *pair) Marshal() ([]byte, error) {
	var e Encoder
	e.String(1, p.Name)
	e.Int(2, p.Count)
	e.Bool(3, p.Flag)
	if p.Inner != nil {
		if err := e.Message(4, p.Inner); err != nil {
			return nil, err
		}
	}
	return e.Data(), nil
}

func (p *pair) Unmarshal(raw []byte) error {
	*p = pair{}
	d := NewDecoder(raw)
	for {
		field, wire, ok, err := d.Next()
		if err != nil || !ok {
			return err
		}
		switch field {
		case 1:
			p.Name, err = d.String(wire)
		case 2:
			p.Count, err = d.Int(wire)
		case 3:
			p.Flag, err = d.Bool(wire)
		case 4:
			p.Inner = &pair{}
			err = d.Message(wire, p.Inner)
		default:
			err = d.Skip(wire)
		}
		if err != nil {
			return err
		}
	}
}

func TestEncoderWireFormat(t *testing.T) {
	p := pair{Name: "ab", Count: 150, Flag: true}
	raw, err := p.Marshal()
	assert.Nil(t, err)
	// Reference encoding as produced by protoc generated code.
	want := []byte{0x0a, 0x02, 'a', 'b', 0x10, 0x96, 0x01, 0x18, 0x01}
	assert.Equal(t, want, raw)
}

func TestEncoderSkipsZeroValues(t *testing.T) {
	var p pair
	raw, err := p.Marshal()
	assert.Nil(t, err)
	assert.Equal(t, 0, len(raw))
}

func TestRoundTrip(t *testing.T) {
	cases := map[string]pair{
		"negative number": {Name: "neg", Count: -42},
		"nested message":  {Name: "outer", Inner: &pair{Name: "inner", Flag: true}},
		"empty nested":    {Inner: &pair{}},
	}

	for testName, want := range cases {
		t.Run(testName, func(t *testing.T) {
			raw, err := want.Marshal()
			assert.Nil(t, err)
			var got pair
			assert.Nil(t, got.Unmarshal(raw))
			assert.Equal(t, want, got)
		})
	}
}

func TestDecoderSkipsUnknownFields(t *testing.T) {
	var e Encoder
	e.String(1, "known")
	e.Uint(7, 99)
	e.Bytes(8, []byte("unknown"))
	e.Int(2, 3)
	raw := append(e.Data(),
		// Field 9, fixed32.
		0x4d, 0x01, 0x02, 0x03, 0x04,
		// Field 10, fixed64.
		0x51, 1, 2, 3, 4, 5, 6, 7, 8,
	)

	var got pair
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, pair{Name: "known", Count: 3}, got)
}

func TestDecoderMalformedInput(t *testing.T) {
	cases := map[string][]byte{
		"truncated bytes":  {0x0a, 0x05, 'a'},
		"truncated varint": {0x10, 0x96},
		"zero field":       {0x00, 0x01},
		"wrong wire type":  {0x0d, 0x01, 0x02, 0x03, 0x04},
		"truncated fixed":  {0x4d, 0x01},
	}

	for testName, raw := range cases {
		t.Run(testName, func(t *testing.T) {
			var p pair
			assert.IsErr(t, errors.ErrInput, p.Unmarshal(raw))
		})
	}
}
