// Package codec implements the canonical binary encoding of ledger
// transactions, ledger entries and ledger state blobs.
package codec

import (
	"sync"

	"github.com/anyswap/xrpl-codec/addresscodec"
	"github.com/anyswap/xrpl-codec/definitions"
)

// DefaultMaxNestingDepth bounds STObject and STArray recursion.
const DefaultMaxNestingDepth = 64

// AddressCodec converts between raw account ids and their text form.
type AddressCodec interface {
	EncodeAccountID(id []byte) (string, error)
	DecodeAccountID(address string) ([]byte, error)
}

// Codec encodes and decodes field bags against one definitions registry.
// A Codec is immutable and safe for concurrent use.
type Codec struct {
	defs      *definitions.Definitions
	addresses AddressCodec
	prefixes  SigningPrefixes
	maxDepth  int

	types     map[int]serializedType
	objectEnd []byte
	arrayEnd  []byte
}

// Option configures a Codec.
type Option func(*Codec)

// WithAddressCodec replaces the classic address codec.
func WithAddressCodec(a AddressCodec) Option {
	return func(c *Codec) {
		c.addresses = a
	}
}

// WithSigningPrefixes replaces the hash prefixes used by the signing encoders.
func WithSigningPrefixes(p SigningPrefixes) Option {
	return func(c *Codec) {
		c.prefixes = p
	}
}

// WithMaxNestingDepth sets the nesting limit.
func WithMaxNestingDepth(depth int) Option {
	return func(c *Codec) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

var (
	defaultOnce  sync.Once
	defaultCodec *Codec
)

// Default returns a codec over the default definitions.
func Default() *Codec {
	defaultOnce.Do(func() {
		defaultCodec = New(definitions.Default())
	})
	return defaultCodec
}

// New returns a codec for defs.
func New(defs *definitions.Definitions, opts ...Option) *Codec {
	c := &Codec{
		defs:      defs,
		addresses: addresscodec.Classic{},
		prefixes:  DefaultSigningPrefixes(),
		maxDepth:  DefaultMaxNestingDepth,
		types:     make(map[int]serializedType, len(typeHandlers)),
		objectEnd: markerBytes(defs, definitions.ObjectEndMarker, definitions.FieldHeader{TypeCode: 14, FieldCode: 1}),
		arrayEnd:  markerBytes(defs, definitions.ArrayEndMarker, definitions.FieldHeader{TypeCode: 15, FieldCode: 1}),
	}
	for name, st := range typeHandlers {
		if code, exist := defs.TypeCode(name); exist {
			c.types[code] = st
		}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func markerBytes(defs *definitions.Definitions, name string, fallback definitions.FieldHeader) []byte {
	if f, exist := defs.FieldByName(name); exist {
		return f.Header.Bytes()
	}
	return fallback.Bytes()
}

// Definitions returns the registry the codec was built with.
func (c *Codec) Definitions() *definitions.Definitions {
	return c.defs
}

// SigningPrefixes returns the configured signing prefixes.
func (c *Codec) SigningPrefixes() SigningPrefixes {
	return c.prefixes
}

func (c *Codec) encode(bag map[string]interface{}, signing bool) ([]byte, error) {
	e := &encoder{c: c, signing: signing}
	w := NewWriter()
	if err := e.writeFields(w, bag); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Encode serializes every serializable field of bag in canonical order.
func (c *Codec) Encode(bag map[string]interface{}) ([]byte, error) {
	return c.encode(bag, false)
}

// EncodeHex is Encode returning upper case hex.
func (c *Codec) EncodeHex(bag map[string]interface{}) (string, error) {
	b, err := c.Encode(bag)
	if err != nil {
		return "", err
	}
	return b2h(b), nil
}

// Decode parses a top level field stream running to the end of b.
func (c *Codec) Decode(b []byte) (map[string]interface{}, error) {
	d := &decoder{c: c}
	return d.readFields(NewReader(b), false)
}

// DecodeHex is Decode over a hex string.
func (c *Codec) DecodeHex(s string) (map[string]interface{}, error) {
	b, err := h2b(s)
	if err != nil {
		return nil, &Error{Err: err}
	}
	return c.Decode(b)
}

// Encode encodes bag with the default codec.
func Encode(bag map[string]interface{}) ([]byte, error) {
	return Default().Encode(bag)
}

// Decode decodes b with the default codec.
func Decode(b []byte) (map[string]interface{}, error) {
	return Default().Decode(b)
}
