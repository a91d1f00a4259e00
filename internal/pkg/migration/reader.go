package migration

import (
	"encoding/binary"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// maxVarintLen is the longest encoding of a 64-bit varint.
const maxVarintLen = 10

// reader walks a wire-format buffer. It never panics on hostile input:
// every read is bounds-checked and reports ErrTruncatedMessage instead.
type reader struct {
	buf []byte
	pos int
}

func newReader(buf []byte) *reader {
	return &reader{buf: buf}
}

func (r *reader) done() bool {
	return r.pos >= len(r.buf)
}

func (r *reader) remaining() int {
	return len(r.buf) - r.pos
}

func (r *reader) varint() (uint64, error) {
	var v uint64
	for i := 0; i < maxVarintLen; i++ {
		if r.done() {
			return 0, fmt.Errorf("%w: varint at offset %d", ErrTruncatedMessage, r.pos)
		}

		b := r.buf[r.pos]
		r.pos++

		if i == maxVarintLen-1 && b > 1 {
			return 0, fmt.Errorf("%w: at offset %d", ErrVarintOverflow, r.pos-1)
		}

		v |= uint64(b&0x7f) << (7 * i)
		if b < 0x80 {
			return v, nil
		}
	}

	return 0, fmt.Errorf("%w: at offset %d", ErrVarintOverflow, r.pos)
}

func (r *reader) fixed32() (uint32, error) {
	if r.remaining() < 4 {
		return 0, fmt.Errorf("%w: fixed32 at offset %d", ErrTruncatedMessage, r.pos)
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *reader) fixed64() (uint64, error) {
	if r.remaining() < 8 {
		return 0, fmt.Errorf("%w: fixed64 at offset %d", ErrTruncatedMessage, r.pos)
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v, nil
}

// bytes reads a length-delimited value. The returned slice aliases the buffer.
func (r *reader) bytes() ([]byte, error) {
	n, err := r.varint()
	if err != nil {
		return nil, err
	}

	if n > uint64(r.remaining()) {
		return nil, fmt.Errorf("%w: length %d exceeds %d remaining bytes", ErrTruncatedMessage, n, r.remaining())
	}

	v := r.buf[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return v, nil
}

func (r *reader) tag() (protowire.Number, protowire.Type, error) {
	v, err := r.varint()
	if err != nil {
		return 0, 0, err
	}

	num := v >> 3
	typ := protowire.Type(v & 7)
	if num < uint64(protowire.MinValidNumber) || num > uint64(protowire.MaxValidNumber) {
		return 0, 0, fmt.Errorf("%w: invalid field number %d", ErrMalformedMessage, num)
	}

	return protowire.Number(num), typ, nil
}

// skip discards a value of the given wire type. Unknown fields go through
// here so newer exports still decode.
func (r *reader) skip(typ protowire.Type) error {
	var err error
	switch typ {
	case protowire.VarintType:
		_, err = r.varint()
	case protowire.Fixed32Type:
		_, err = r.fixed32()
	case protowire.Fixed64Type:
		_, err = r.fixed64()
	case protowire.BytesType:
		_, err = r.bytes()
	default:
		err = fmt.Errorf("%w: unsupported wire type %d", ErrMalformedMessage, typ)
	}
	return err
}
