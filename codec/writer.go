package codec

import (
	"encoding/binary"
	"fmt"
)

const maxVariableLength = 918744

// Writer is an append-only byte accumulator.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty writer.
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 256)}
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Bytes returns the accumulated bytes.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Put appends raw bytes.
func (w *Writer) Put(b ...byte) {
	w.buf = append(w.buf, b...)
}

// PutUint16 appends a big-endian uint16.
func (w *Writer) PutUint16(v uint16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

// PutUint32 appends a big-endian uint32.
func (w *Writer) PutUint32(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

// PutUint64 appends a big-endian uint64.
func (w *Writer) PutUint64(v uint64) {
	w.buf = binary.BigEndian.AppendUint64(w.buf, v)
}

// PutVariableLength appends the length prefix for n bytes.
func (w *Writer) PutVariableLength(n int) error {
	switch {
	case n < 0:
		return fmt.Errorf("%w: negative length %d", ErrMalformedLength, n)
	case n <= 192:
		w.Put(byte(n))
	case n <= 12480:
		n -= 193
		w.Put(byte(193+n>>8), byte(n))
	case n <= maxVariableLength:
		n -= 12481
		w.Put(byte(241+n>>16), byte(n>>8), byte(n))
	default:
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrFieldTooLarge, n, maxVariableLength)
	}
	return nil
}
