package codec

import (
	"fmt"
	"strconv"

	"github.com/anyswap/xrpl-codec/definitions"
)

// serializedType converts one wire type between its JSON form and bytes.
// Implementations never see the field header or a VL prefix.
type serializedType interface {
	encode(e *encoder, w *Writer, f *definitions.Field, v interface{}) error
	decode(d *decoder, r *Reader, f *definitions.Field) (interface{}, error)
}

var typeHandlers = map[string]serializedType{
	"UInt8":        uintType{bits: 8},
	"UInt16":       uintType{bits: 16},
	"UInt32":       uintType{bits: 32},
	"UInt64":       uint64Type{},
	"Hash128":      hashType{size: 16},
	"Hash160":      hashType{size: 20},
	"Hash192":      hashType{size: 24},
	"Hash256":      hashType{size: 32},
	"UInt96":       hashType{size: 12},
	"UInt384":      hashType{size: 48},
	"UInt512":      hashType{size: 64},
	"Blob":         blobType{},
	"AccountID":    accountType{},
	"Amount":       amountType{},
	"Currency":     currencyType{},
	"Issue":        issueType{},
	"XChainBridge": bridgeType{},
	"STObject":     objectType{},
	"STArray":      arrayType{},
	"PathSet":      pathSetType{},
	"Vector256":    vector256Type{},
}

// enumerated integer fields exchanged by name
const (
	fieldTransactionType   = "TransactionType"
	fieldLedgerEntryType   = "LedgerEntryType"
	fieldTransactionResult = "TransactionResult"
)

type uintType struct {
	bits int
}

func (t uintType) enumCode(defs *definitions.Definitions, f *definitions.Field, name string) (int, bool) {
	switch f.Name {
	case fieldTransactionType:
		return defs.TransactionTypeCode(name)
	case fieldLedgerEntryType:
		return defs.LedgerEntryTypeCode(name)
	case fieldTransactionResult:
		return defs.TransactionResultCode(name)
	}
	return 0, false
}

func (t uintType) enumName(defs *definitions.Definitions, f *definitions.Field, code int) (string, bool) {
	switch f.Name {
	case fieldTransactionType:
		return defs.TransactionTypeName(code)
	case fieldLedgerEntryType:
		return defs.LedgerEntryTypeName(code)
	case fieldTransactionResult:
		return defs.TransactionResultName(code)
	}
	return "", false
}

func (t uintType) encode(e *encoder, w *Writer, f *definitions.Field, v interface{}) error {
	if s, ok := v.(string); ok {
		if code, exist := t.enumCode(e.c.defs, f, s); exist {
			if code < 0 || uint64(code)>>uint(t.bits) != 0 {
				return invalidValue("%v code %d does not fit %d bits", s, code, t.bits)
			}
			v = uint64(code)
		}
	}
	n, err := toUint(v, t.bits)
	if err != nil {
		return err
	}
	switch t.bits {
	case 8:
		w.Put(byte(n))
	case 16:
		w.PutUint16(uint16(n))
	default:
		w.PutUint32(uint32(n))
	}
	return nil
}

func (t uintType) decode(d *decoder, r *Reader, f *definitions.Field) (interface{}, error) {
	var n uint64
	switch t.bits {
	case 8:
		b, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		n = uint64(b)
	case 16:
		v, err := r.ReadUint16()
		if err != nil {
			return nil, err
		}
		n = uint64(v)
	default:
		v, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		n = uint64(v)
	}
	if name, exist := t.enumName(d.c.defs, f, int(n)); exist {
		return name, nil
	}
	return number(n), nil
}

// uint64Type is hex in JSON unless the field is flagged base 10.
type uint64Type struct{}

func (uint64Type) encode(e *encoder, w *Writer, f *definitions.Field, v interface{}) error {
	s, isString := v.(string)
	if !isString || f.IsBase10 {
		n, err := toUint(v, 64)
		if err != nil {
			return err
		}
		w.PutUint64(n)
		return nil
	}
	if len(s) == 0 || len(s) > 16 {
		return invalidValue("UInt64 hex %q must be 1 to 16 digits", s)
	}
	n, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return invalidValue("bad UInt64 hex %q", s)
	}
	w.PutUint64(n)
	return nil
}

func (uint64Type) decode(d *decoder, r *Reader, f *definitions.Field) (interface{}, error) {
	n, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	if f.IsBase10 {
		return strconv.FormatUint(n, 10), nil
	}
	return fmt.Sprintf("%016X", n), nil
}

type hashType struct {
	size int
}

func (t hashType) parse(v interface{}) ([]byte, error) {
	s, err := toString(v)
	if err != nil {
		return nil, err
	}
	if len(s) != t.size*2 {
		return nil, fmt.Errorf("%w: want %d hex digits, got %d", ErrInvalidHashLength, t.size*2, len(s))
	}
	return h2b(s)
}

func (t hashType) encode(e *encoder, w *Writer, f *definitions.Field, v interface{}) error {
	b, err := t.parse(v)
	if err != nil {
		return err
	}
	w.Put(b...)
	return nil
}

func (t hashType) decode(d *decoder, r *Reader, f *definitions.Field) (interface{}, error) {
	b, err := r.Read(t.size)
	if err != nil {
		return nil, err
	}
	return b2h(b), nil
}

type blobType struct{}

func (blobType) encode(e *encoder, w *Writer, f *definitions.Field, v interface{}) error {
	s, err := toString(v)
	if err != nil {
		return err
	}
	b, err := h2b(s)
	if err != nil {
		return err
	}
	w.Put(b...)
	return nil
}

func (blobType) decode(d *decoder, r *Reader, f *definitions.Field) (interface{}, error) {
	b, err := r.Read(r.Remaining())
	if err != nil {
		return nil, err
	}
	return b2h(b), nil
}

const accountIDLength = 20

type accountType struct{}

func (accountType) encode(e *encoder, w *Writer, f *definitions.Field, v interface{}) error {
	b, err := e.c.accountBytes(v)
	if err != nil {
		return err
	}
	w.Put(b...)
	return nil
}

func (accountType) decode(d *decoder, r *Reader, f *definitions.Field) (interface{}, error) {
	b, err := r.Read(accountIDLength)
	if err != nil {
		return nil, err
	}
	return d.c.accountString(b)
}

// accountBytes accepts a classic address or 40 hex digits.
func (c *Codec) accountBytes(v interface{}) ([]byte, error) {
	s, err := toString(v)
	if err != nil {
		return nil, err
	}
	if len(s) == accountIDLength*2 {
		if b, err := h2b(s); err == nil {
			return b, nil
		}
	}
	b, err := c.addresses.DecodeAccountID(s)
	if err != nil {
		return nil, invalidValue("bad account %q: %v", s, err)
	}
	if len(b) != accountIDLength {
		return nil, invalidValue("account %q decodes to %d bytes", s, len(b))
	}
	return b, nil
}

func (c *Codec) accountString(b []byte) (string, error) {
	s, err := c.addresses.EncodeAccountID(b)
	if err != nil {
		return "", invalidValue("bad account id %v: %v", b2h(b), err)
	}
	return s, nil
}

const hash256Length = 32

type vector256Type struct{}

func (vector256Type) encode(e *encoder, w *Writer, f *definitions.Field, v interface{}) error {
	list, err := toList(v)
	if err != nil {
		return err
	}
	h := hashType{size: hash256Length}
	for _, item := range list {
		b, err := h.parse(item)
		if err != nil {
			return err
		}
		w.Put(b...)
	}
	return nil
}

func (vector256Type) decode(d *decoder, r *Reader, f *definitions.Field) (interface{}, error) {
	if r.Remaining()%hash256Length != 0 {
		return nil, fmt.Errorf("%w: Vector256 payload of %d bytes", ErrMalformedLength, r.Remaining())
	}
	list := make([]interface{}, 0, r.Remaining()/hash256Length)
	for r.Remaining() > 0 {
		b, err := r.Read(hash256Length)
		if err != nil {
			return nil, err
		}
		list = append(list, b2h(b))
	}
	return list, nil
}
