package definitions

// FieldHeader is the (type code, field code) pair identifying a field on the wire.
type FieldHeader struct {
	TypeCode  int
	FieldCode int
}

// Ordinal is the canonical sort key of the header.
func (h FieldHeader) Ordinal() uint32 {
	return uint32(h.TypeCode)<<16 | uint32(h.FieldCode)
}

// Bytes returns the 1, 2 or 3 byte wire form of the header.
func (h FieldHeader) Bytes() []byte {
	typ, field := byte(h.TypeCode), byte(h.FieldCode)
	switch {
	case h.TypeCode < 16 && h.FieldCode < 16:
		return []byte{typ<<4 | field}
	case h.TypeCode < 16:
		return []byte{typ << 4, field}
	case h.FieldCode < 16:
		return []byte{field, typ}
	default:
		return []byte{0, typ, field}
	}
}
