package codec

import (
	"github.com/anyswap/xrpl-codec/definitions"
)

// path step flags and separators
const (
	pathAccount  = 0x01
	pathCurrency = 0x10
	pathIssuer   = 0x20

	pathBoundary = 0xFF
	pathSetEnd   = 0x00
)

type pathSetType struct{}

func (pathSetType) encode(e *encoder, w *Writer, f *definitions.Field, v interface{}) error {
	paths, err := toList(v)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return invalidValue("empty path set")
	}
	for i, p := range paths {
		if i > 0 {
			w.Put(pathBoundary)
		}
		steps, err := toList(p)
		if err != nil {
			return err
		}
		if len(steps) == 0 {
			return invalidValue("path %d is empty", i)
		}
		for _, s := range steps {
			if err := writePathStep(e.c, w, s); err != nil {
				return err
			}
		}
	}
	w.Put(pathSetEnd)
	return nil
}

func writePathStep(c *Codec, w *Writer, v interface{}) error {
	step, err := toBag(v)
	if err != nil {
		return err
	}
	var flags byte
	var account, currency, issuer []byte
	for key, value := range step {
		switch key {
		case "account":
			flags |= pathAccount
			account, err = c.accountBytes(value)
		case "currency":
			flags |= pathCurrency
			currency, err = currencyBytes(value)
		case "issuer":
			flags |= pathIssuer
			issuer, err = c.accountBytes(value)
		case "type", "type_hex":
		default:
			return invalidValue("unexpected path step key %q", key)
		}
		if err != nil {
			return err
		}
	}
	if flags == 0 {
		return invalidValue("empty path step")
	}
	w.Put(flags)
	w.Put(account...)
	w.Put(currency...)
	w.Put(issuer...)
	return nil
}

func (pathSetType) decode(d *decoder, r *Reader, f *definitions.Field) (interface{}, error) {
	paths := make([]interface{}, 0)
	path := make([]interface{}, 0)
	for {
		flags, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		switch flags {
		case pathSetEnd, pathBoundary:
			if len(path) == 0 {
				return nil, invalidValue("empty path")
			}
			paths = append(paths, path)
			if flags == pathSetEnd {
				return paths, nil
			}
			path = make([]interface{}, 0)
			continue
		}
		if flags&^(pathAccount|pathCurrency|pathIssuer) != 0 {
			return nil, invalidValue("bad path step flags %02X", flags)
		}
		step := make(map[string]interface{}, 3)
		if flags&pathAccount != 0 {
			b, err := r.Read(accountIDLength)
			if err != nil {
				return nil, err
			}
			if step["account"], err = d.c.accountString(b); err != nil {
				return nil, err
			}
		}
		if flags&pathCurrency != 0 {
			b, err := r.Read(currencyLength)
			if err != nil {
				return nil, err
			}
			step["currency"] = currencyString(b)
		}
		if flags&pathIssuer != 0 {
			b, err := r.Read(accountIDLength)
			if err != nil {
				return nil, err
			}
			if step["issuer"], err = d.c.accountString(b); err != nil {
				return nil, err
			}
		}
		path = append(path, step)
	}
}
