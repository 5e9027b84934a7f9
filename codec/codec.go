/*
Package codec implements the subset of the protocol buffers wire format
that is used to persist models and to transport messages.

Types implement their own Marshal and Unmarshal methods using an Encoder
and a Decoder. Fields with a zero value are not written, the same way
proto3 does it, so a message is always encoded into its canonical form.
That makes the encoding suitable for signing.
*/
package codec

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/feevault/errors"
)

// Wire types as defined by the protocol buffers encoding.
const (
	WireVarint  = proto.WireVarint
	WireFixed64 = proto.WireFixed64
	WireBytes   = proto.WireBytes
	WireFixed32 = proto.WireFixed32
)

// Marshaller is implemented by all types that can be embedded as a
// message field.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Unmarshaller is the counterpart of Marshaller.
type Unmarshaller interface {
	Unmarshal([]byte) error
}

// Encoder builds a binary representation of a message field by field.
// Fields should be written in ascending order. The zero value is ready
// to use.
type Encoder struct {
	buf []byte
}

// Data returns the encoded message.
func (e *Encoder) Data() []byte {
	return e.buf
}

func (e *Encoder) key(field int, wire int) {
	e.buf = append(e.buf, proto.EncodeVarint(uint64(field)<<3|uint64(wire))...)
}

// Bytes writes a length delimited field. Empty values are skipped.
func (e *Encoder) Bytes(field int, b []byte) {
	if len(b) == 0 {
		return
	}
	e.raw(field, b)
}

func (e *Encoder) raw(field int, b []byte) {
	e.key(field, WireBytes)
	e.buf = append(e.buf, proto.EncodeVarint(uint64(len(b)))...)
	e.buf = append(e.buf, b...)
}

// String writes a string field. Empty values are skipped.
func (e *Encoder) String(field int, s string) {
	e.Bytes(field, []byte(s))
}

// Uint writes an unsigned varint field. Zero is skipped.
func (e *Encoder) Uint(field int, v uint64) {
	if v == 0 {
		return
	}
	e.key(field, WireVarint)
	e.buf = append(e.buf, proto.EncodeVarint(v)...)
}

// Int writes a signed varint field using the two's complement form, the
// same as protobuf int32 and int64 types. Zero is skipped.
func (e *Encoder) Int(field int, v int64) {
	e.Uint(field, uint64(v))
}

// Bool writes a boolean field. False is skipped.
func (e *Encoder) Bool(field int, v bool) {
	if v {
		e.Uint(field, 1)
	}
}

// Message writes an embedded message. The message is always written,
// even if its encoding is empty, so that repeated fields keep their
// length. Use a nil check before calling it for optional fields.
func (e *Encoder) Message(field int, m Marshaller) error {
	raw, err := m.Marshal()
	if err != nil {
		return err
	}
	e.raw(field, raw)
	return nil
}

// Decoder reads a binary representation of a message field by field.
type Decoder struct {
	buf []byte
	idx int
}

// NewDecoder returns a decoder reading the given message.
func NewDecoder(raw []byte) *Decoder {
	return &Decoder{buf: raw}
}

// Next reads the key of the next field. It returns false when the end
// of the message is reached.
func (d *Decoder) Next() (field int, wire int, ok bool, err error) {
	if d.idx >= len(d.buf) {
		return 0, 0, false, nil
	}
	key, err := d.varint()
	if err != nil {
		return 0, 0, false, err
	}
	field = int(key >> 3)
	wire = int(key & 0x7)
	if field <= 0 {
		return 0, 0, false, errors.Wrapf(errors.ErrInput, "illegal field number %d", field)
	}
	return field, wire, true, nil
}

func (d *Decoder) varint() (uint64, error) {
	v, n := proto.DecodeVarint(d.buf[d.idx:])
	if n == 0 {
		return 0, errors.Wrap(errors.ErrInput, "malformed varint")
	}
	d.idx += n
	return v, nil
}

// Varint reads the value of a varint field.
func (d *Decoder) Varint(wire int) (uint64, error) {
	if wire != WireVarint {
		return 0, errors.Wrapf(errors.ErrInput, "wire type %d is not a varint", wire)
	}
	return d.varint()
}

// Int reads the value of a signed varint field.
func (d *Decoder) Int(wire int) (int64, error) {
	v, err := d.Varint(wire)
	return int64(v), err
}

// Bool reads the value of a boolean field.
func (d *Decoder) Bool(wire int) (bool, error) {
	v, err := d.Varint(wire)
	return v != 0, err
}

// Bytes reads the value of a length delimited field. The returned slice
// is a copy and can be retained.
func (d *Decoder) Bytes(wire int) ([]byte, error) {
	if wire != WireBytes {
		return nil, errors.Wrapf(errors.ErrInput, "wire type %d is not length delimited", wire)
	}
	size, err := d.varint()
	if err != nil {
		return nil, err
	}
	end := d.idx + int(size)
	if size > uint64(len(d.buf)) || end > len(d.buf) {
		return nil, errors.Wrap(errors.ErrInput, "unexpected end of message")
	}
	b := make([]byte, size)
	copy(b, d.buf[d.idx:end])
	d.idx = end
	return b, nil
}

// String reads the value of a string field.
func (d *Decoder) String(wire int) (string, error) {
	b, err := d.Bytes(wire)
	return string(b), err
}

// Message reads an embedded message into the given destination.
func (d *Decoder) Message(wire int, m Unmarshaller) error {
	b, err := d.Bytes(wire)
	if err != nil {
		return err
	}
	return m.Unmarshal(b)
}

// Skip ignores the value of a field that is not known.
func (d *Decoder) Skip(wire int) error {
	switch wire {
	case WireVarint:
		_, err := d.varint()
		return err
	case WireBytes:
		_, err := d.Bytes(wire)
		return err
	case WireFixed64:
		return d.advance(8)
	case WireFixed32:
		return d.advance(4)
	default:
		return errors.Wrapf(errors.ErrInput, "unsupported wire type %d", wire)
	}
}

func (d *Decoder) advance(n int) error {
	if d.idx+n > len(d.buf) {
		return errors.Wrap(errors.ErrInput, "unexpected end of message")
	}
	d.idx += n
	return nil
}
