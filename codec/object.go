package codec

import (
	"errors"
	"fmt"
	"sort"

	"github.com/anyswap/xrpl-codec/definitions"
)

func isMarker(f *definitions.Field) bool {
	return f.Name == definitions.ObjectEndMarker || f.Name == definitions.ArrayEndMarker
}

type encoder struct {
	c       *Codec
	signing bool
	depth   int
}

type decoder struct {
	c     *Codec
	depth int
}

func (e *encoder) enter() error {
	e.depth++
	if e.depth > e.c.maxDepth {
		return fmt.Errorf("%w: more than %d levels", ErrNestingTooDeep, e.c.maxDepth)
	}
	return nil
}

func (d *decoder) enter() error {
	d.depth++
	if d.depth > d.c.maxDepth {
		return fmt.Errorf("%w: more than %d levels", ErrNestingTooDeep, d.c.maxDepth)
	}
	return nil
}

// fieldSlice sorts fields into canonical order.
type fieldSlice []*definitions.Field

func (s fieldSlice) Len() int           { return len(s) }
func (s fieldSlice) Less(i, j int) bool { return s[i].Ordinal() < s[j].Ordinal() }
func (s fieldSlice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// writeFields writes every serializable field of bag in canonical order.
func (e *encoder) writeFields(w *Writer, bag map[string]interface{}) error {
	fields := make(fieldSlice, 0, len(bag))
	for name, value := range bag {
		f, ok := e.c.defs.FieldByName(name)
		if !ok {
			return &Error{Err: fmt.Errorf("%w: %s", ErrUnknownField, name), Field: name, Offset: w.Len()}
		}
		if value == nil || !f.IsSerialized || (e.signing && !f.IsSigningField) {
			continue
		}
		if isMarker(f) {
			return &Error{Err: invalidValue("reserved field %s", name), Field: name, Offset: w.Len()}
		}
		fields = append(fields, f)
	}
	sort.Sort(fields)
	for _, f := range fields {
		if err := e.writeField(w, f, bag[f.Name]); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) writeField(w *Writer, f *definitions.Field, value interface{}) error {
	start := w.Len()
	st, ok := e.c.types[f.Header.TypeCode]
	if !ok {
		return &Error{Err: invalidValue("no serializer for type %s", f.Type), Field: f.Name, Offset: start}
	}
	w.Put(f.Header.Bytes()...)
	if !f.IsVLEncoded {
		if err := st.encode(e, w, f, value); err != nil {
			return wrapError(err, f.Name, start)
		}
		return nil
	}
	payload := NewWriter()
	if err := st.encode(e, payload, f, value); err != nil {
		return wrapError(err, f.Name, start)
	}
	if err := w.PutVariableLength(payload.Len()); err != nil {
		return wrapError(err, f.Name, start)
	}
	w.Put(payload.Bytes()...)
	return nil
}

// readFields reads a field stream. A nested stream must end with the
// object end marker; a top level stream runs to the end of the buffer.
func (d *decoder) readFields(r *Reader, nested bool) (map[string]interface{}, error) {
	bag := make(map[string]interface{})
	var last uint32
	for nested || r.Remaining() > 0 {
		start := r.Offset()
		h, err := r.ReadFieldHeader()
		if err != nil {
			if !nested && errors.Is(err, ErrUnexpectedEnd) {
				err = fmt.Errorf("%w: partial field header", ErrTrailingData)
			}
			return nil, wrapError(err, "", start)
		}
		f, ok := d.c.defs.FieldByHeader(h)
		if !ok {
			err = fmt.Errorf("%w: type %d field %d", ErrUnknownField, h.TypeCode, h.FieldCode)
			return nil, wrapError(err, "", start)
		}
		switch f.Name {
		case definitions.ObjectEndMarker:
			if nested {
				return bag, nil
			}
			return nil, wrapError(fmt.Errorf("%w: end of object marker at top level", ErrTrailingData), f.Name, start)
		case definitions.ArrayEndMarker:
			return nil, wrapError(invalidValue("unexpected end of array marker"), f.Name, start)
		}
		if f.Ordinal() <= last {
			return nil, wrapError(invalidValue("field out of canonical order"), f.Name, start)
		}
		last = f.Ordinal()
		value, err := d.readField(r, f)
		if err != nil {
			return nil, wrapError(err, f.Name, start)
		}
		bag[f.Name] = value
	}
	return bag, nil
}

func (d *decoder) readField(r *Reader, f *definitions.Field) (interface{}, error) {
	st, ok := d.c.types[f.Header.TypeCode]
	if !ok {
		return nil, invalidValue("no serializer for type %s", f.Type)
	}
	if !f.IsVLEncoded {
		return st.decode(d, r, f)
	}
	n, err := r.ReadVariableLength()
	if err != nil {
		return nil, err
	}
	payload, err := r.Sub(n)
	if err != nil {
		return nil, err
	}
	value, err := st.decode(d, payload, f)
	if err != nil {
		return nil, err
	}
	if payload.Remaining() != 0 {
		return nil, fmt.Errorf("%w: %d unread bytes in %s", ErrMalformedLength, payload.Remaining(), f.Type)
	}
	return value, nil
}

type objectType struct{}

func (objectType) encode(e *encoder, w *Writer, f *definitions.Field, v interface{}) error {
	bag, err := toBag(v)
	if err != nil {
		return err
	}
	if err := e.enter(); err != nil {
		return err
	}
	defer func() { e.depth-- }()
	if err := e.writeFields(w, bag); err != nil {
		return err
	}
	w.Put(e.c.objectEnd...)
	return nil
}

func (objectType) decode(d *decoder, r *Reader, f *definitions.Field) (interface{}, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer func() { d.depth-- }()
	return d.readFields(r, true)
}

// arrayType is a list of single key objects, {"Memo": {...}}, closed by
// the end of array marker.
type arrayType struct{}

func (arrayType) encode(e *encoder, w *Writer, f *definitions.Field, v interface{}) error {
	list, err := toList(v)
	if err != nil {
		return err
	}
	if err := e.enter(); err != nil {
		return err
	}
	defer func() { e.depth-- }()
	for i, item := range list {
		wrapper, err := toBag(item)
		if err != nil {
			return err
		}
		if len(wrapper) != 1 {
			return invalidValue("array element %d must have exactly one key", i)
		}
		for name, inner := range wrapper {
			elem, ok := e.c.defs.FieldByName(name)
			if !ok {
				return &Error{Err: fmt.Errorf("%w: %s", ErrUnknownField, name), Field: name, Offset: w.Len()}
			}
			if elem.Type != "STObject" || isMarker(elem) {
				return invalidValue("array element %s is a %s, not an STObject", name, elem.Type)
			}
			start := w.Len()
			w.Put(elem.Header.Bytes()...)
			if err := (objectType{}).encode(e, w, elem, inner); err != nil {
				return wrapError(err, name, start)
			}
		}
	}
	w.Put(e.c.arrayEnd...)
	return nil
}

func (arrayType) decode(d *decoder, r *Reader, f *definitions.Field) (interface{}, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer func() { d.depth-- }()
	list := make([]interface{}, 0)
	for {
		start := r.Offset()
		h, err := r.ReadFieldHeader()
		if err != nil {
			return nil, wrapError(err, "", start)
		}
		elem, ok := d.c.defs.FieldByHeader(h)
		if !ok {
			err = fmt.Errorf("%w: type %d field %d", ErrUnknownField, h.TypeCode, h.FieldCode)
			return nil, wrapError(err, "", start)
		}
		if elem.Name == definitions.ArrayEndMarker {
			return list, nil
		}
		if elem.Type != "STObject" || isMarker(elem) {
			return nil, wrapError(invalidValue("array element is a %s, not an STObject", elem.Type), elem.Name, start)
		}
		inner, err := (objectType{}).decode(d, r, elem)
		if err != nil {
			return nil, wrapError(err, elem.Name, start)
		}
		list = append(list, map[string]interface{}{elem.Name: inner})
	}
}
