package codec

import (
	"fmt"
)

// IndexKey names the ledger object identifier in decoded ledger entries.
const IndexKey = "index"

// DecodeLedgerData parses a ledger state blob: entries back to back, each
// a 32 byte object index followed by a field stream closed by the object
// end marker.
func (c *Codec) DecodeLedgerData(b []byte) ([]map[string]interface{}, error) {
	r := NewReader(b)
	d := &decoder{c: c}
	entries := make([]map[string]interface{}, 0)
	for r.Remaining() > 0 {
		start := r.Offset()
		index, err := r.Read(hash256Length)
		if err != nil {
			return nil, wrapError(err, IndexKey, start)
		}
		entry, err := d.readFields(r, true)
		if err != nil {
			return nil, err
		}
		entry[IndexKey] = b2h(index)
		entries = append(entries, entry)
	}
	return entries, nil
}

// DecodeLedgerDataHex is DecodeLedgerData over a hex string.
func (c *Codec) DecodeLedgerDataHex(s string) ([]map[string]interface{}, error) {
	b, err := h2b(s)
	if err != nil {
		return nil, &Error{Err: err}
	}
	return c.DecodeLedgerData(b)
}

// EncodeLedgerData is the inverse of DecodeLedgerData. Every entry must
// carry its index.
func (c *Codec) EncodeLedgerData(entries []map[string]interface{}) ([]byte, error) {
	w := NewWriter()
	for i, entry := range entries {
		b, err := c.EncodeLedgerEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		w.Put(b...)
	}
	return w.Bytes(), nil
}

// EncodeLedgerEntry encodes one ledger state entry.
func (c *Codec) EncodeLedgerEntry(entry map[string]interface{}) ([]byte, error) {
	index, exist := entry[IndexKey]
	if !exist {
		return nil, &Error{Err: invalidValue("ledger entry without %s", IndexKey), Field: IndexKey}
	}
	key, err := hashType{size: hash256Length}.parse(index)
	if err != nil {
		return nil, &Error{Err: err, Field: IndexKey}
	}
	e := &encoder{c: c}
	w := NewWriter()
	w.Put(key...)
	if err := e.writeFields(w, entry); err != nil {
		return nil, err
	}
	w.Put(c.objectEnd...)
	return w.Bytes(), nil
}
