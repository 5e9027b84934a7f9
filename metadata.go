package feevault

import (
	"github.com/iov-one/feevault/codec"
	"github.com/iov-one/feevault/errors"
)

// Metadata is embedded in every persisted entity and message. The schema
// version allows the binary representation to evolve.
type Metadata struct {
	Schema uint32 `json:"schema"`
}

// Validate returns an error if the schema version is not set.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "missing metadata")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "schema version must be at least 1")
	}
	return nil
}

// Copy returns a copy of this object.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	cpy := *m
	return &cpy
}

func (m *Metadata) Marshal() ([]byte, error) {
	var e codec.Encoder
	e.Uint(1, uint64(m.Schema))
	return e.Data(), nil
}

func (m *Metadata) Unmarshal(raw []byte) error {
	*m = Metadata{}
	d := codec.NewDecoder(raw)
	for {
		field, wire, ok, err := d.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		switch field {
		case 1:
			v, err := d.Varint(wire)
			if err != nil {
				return err
			}
			m.Schema = uint32(v)
		default:
			if err := d.Skip(wire); err != nil {
				return err
			}
		}
	}
}
