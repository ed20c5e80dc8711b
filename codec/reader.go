package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/anyswap/xrpl-codec/definitions"
)

// Reader is a forward-only, bounds-checked cursor over an encoded buffer.
type Reader struct {
	buf  []byte
	pos  int
	base int // absolute offset of buf[0]
}

// NewReader returns a reader positioned at the start of b.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Offset returns the absolute position of the cursor.
func (r *Reader) Offset() int {
	return r.base + r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

func (r *Reader) need(n int) error {
	if n < 0 || r.Remaining() < n {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrUnexpectedEnd, n, r.Remaining())
	}
	return nil
}

// ReadByte reads one byte.
func (r *Reader) ReadByte() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// Read reads exactly n bytes. The returned slice aliases the buffer.
func (r *Reader) Read(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadUint16 reads a big-endian uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.Read(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// ReadUint32 reads a big-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.Read(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// ReadUint64 reads a big-endian uint64.
func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.Read(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// Sub consumes n bytes and returns a reader limited to them.
func (r *Reader) Sub(n int) (*Reader, error) {
	start := r.Offset()
	b, err := r.Read(n)
	if err != nil {
		return nil, err
	}
	return &Reader{buf: b, base: start}, nil
}

// ReadFieldHeader reads a 1 to 3 byte field header.
func (r *Reader) ReadFieldHeader() (definitions.FieldHeader, error) {
	var h definitions.FieldHeader
	first, err := r.ReadByte()
	if err != nil {
		return h, err
	}
	h.TypeCode = int(first >> 4)
	h.FieldCode = int(first & 0x0F)
	if h.TypeCode == 0 {
		typ, err := r.ReadByte()
		if err != nil {
			return h, err
		}
		if typ < 16 {
			return h, invalidValue("non-canonical type code %d", typ)
		}
		h.TypeCode = int(typ)
	}
	if h.FieldCode == 0 {
		field, err := r.ReadByte()
		if err != nil {
			return h, err
		}
		if field < 16 {
			return h, invalidValue("non-canonical field code %d", field)
		}
		h.FieldCode = int(field)
	}
	return h, nil
}

// ReadVariableLength reads a 1 to 3 byte length prefix.
func (r *Reader) ReadVariableLength() (int, error) {
	b1, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	switch {
	case b1 <= 192:
		return int(b1), nil
	case b1 <= 240:
		b2, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		return 193 + int(b1-193)<<8 + int(b2), nil
	case b1 <= 254:
		rest, err := r.Read(2)
		if err != nil {
			return 0, err
		}
		n := 12481 + int(b1-241)<<16 + int(rest[0])<<8 + int(rest[1])
		if n > maxVariableLength {
			return 0, fmt.Errorf("%w: length %d exceeds %d", ErrMalformedLength, n, maxVariableLength)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: invalid leading byte %d", ErrMalformedLength, b1)
	}
}
