package codec

import (
	"github.com/anyswap/xrpl-codec/definitions"
)

const (
	currencyLength = 20
	nativeCurrency = "XRP"
)

func isISOChar(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '?', '!', '@', '#', '$', '%', '^', '&', '*', '(', ')', '{', '}', '[', ']', '|':
		return true
	}
	return false
}

func isISOCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if !isISOChar(s[i]) {
			return false
		}
	}
	return true
}

// currencyBytes packs "XRP", a three letter code or 40 hex digits.
func currencyBytes(v interface{}) ([]byte, error) {
	s, err := toString(v)
	if err != nil {
		return nil, err
	}
	b := make([]byte, currencyLength)
	switch {
	case s == nativeCurrency:
		return b, nil
	case isISOCode(s):
		copy(b[12:], s)
		return b, nil
	case len(s) == currencyLength*2:
		return h2b(s)
	}
	return nil, invalidValue("bad currency %q", s)
}

// currencyString reverses currencyBytes. Bytes that only look like a
// standard code are kept as raw hex so they survive a round trip.
func currencyString(b []byte) string {
	if isZero(b) {
		return nativeCurrency
	}
	if isZero(b[:12]) && isZero(b[15:]) {
		code := string(b[12:15])
		if code != nativeCurrency && isISOCode(code) {
			return code
		}
	}
	return b2h(b)
}

type currencyType struct{}

func (currencyType) encode(e *encoder, w *Writer, f *definitions.Field, v interface{}) error {
	b, err := currencyBytes(v)
	if err != nil {
		return err
	}
	w.Put(b...)
	return nil
}

func (currencyType) decode(d *decoder, r *Reader, f *definitions.Field) (interface{}, error) {
	b, err := r.Read(currencyLength)
	if err != nil {
		return nil, err
	}
	return currencyString(b), nil
}
