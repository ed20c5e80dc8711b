package codec

import (
	"github.com/anyswap/xrpl-codec/definitions"
)

// issueType is a bare currency for XRP, otherwise currency then issuer.
type issueType struct{}

func writeIssue(c *Codec, w *Writer, v interface{}) error {
	bag, err := toBag(v)
	if err != nil {
		return err
	}
	for key := range bag {
		if key != "currency" && key != "issuer" {
			return invalidValue("unexpected issue key %q", key)
		}
	}
	currency, err := currencyBytes(bag["currency"])
	if err != nil {
		return err
	}
	if isZero(currency) {
		if _, exist := bag["issuer"]; exist {
			return invalidValue("native issue with issuer")
		}
		w.Put(currency...)
		return nil
	}
	issuer, err := c.accountBytes(bag["issuer"])
	if err != nil {
		return err
	}
	w.Put(currency...)
	w.Put(issuer...)
	return nil
}

func readIssue(c *Codec, r *Reader) (map[string]interface{}, error) {
	currency, err := r.Read(currencyLength)
	if err != nil {
		return nil, err
	}
	if isZero(currency) {
		return map[string]interface{}{"currency": nativeCurrency}, nil
	}
	issuer, err := r.Read(accountIDLength)
	if err != nil {
		return nil, err
	}
	address, err := c.accountString(issuer)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"currency": currencyString(currency),
		"issuer":   address,
	}, nil
}

func (issueType) encode(e *encoder, w *Writer, f *definitions.Field, v interface{}) error {
	return writeIssue(e.c, w, v)
}

func (issueType) decode(d *decoder, r *Reader, f *definitions.Field) (interface{}, error) {
	return readIssue(d.c, r)
}

// bridge members in wire order; doors carry their own length byte
var bridgeMembers = []struct {
	name   string
	isDoor bool
}{
	{"LockingChainDoor", true},
	{"LockingChainIssue", false},
	{"IssuingChainDoor", true},
	{"IssuingChainIssue", false},
}

type bridgeType struct{}

func (bridgeType) encode(e *encoder, w *Writer, f *definitions.Field, v interface{}) error {
	bag, err := toBag(v)
	if err != nil {
		return err
	}
	if len(bag) != len(bridgeMembers) {
		return invalidValue("XChainBridge needs exactly %d members", len(bridgeMembers))
	}
	for _, m := range bridgeMembers {
		value, exist := bag[m.name]
		if !exist {
			return invalidValue("XChainBridge missing %s", m.name)
		}
		if !m.isDoor {
			if err := writeIssue(e.c, w, value); err != nil {
				return err
			}
			continue
		}
		door, err := e.c.accountBytes(value)
		if err != nil {
			return err
		}
		w.Put(accountIDLength)
		w.Put(door...)
	}
	return nil
}

func (bridgeType) decode(d *decoder, r *Reader, f *definitions.Field) (interface{}, error) {
	bag := make(map[string]interface{}, len(bridgeMembers))
	for _, m := range bridgeMembers {
		if !m.isDoor {
			issue, err := readIssue(d.c, r)
			if err != nil {
				return nil, err
			}
			bag[m.name] = issue
			continue
		}
		n, err := r.ReadVariableLength()
		if err != nil {
			return nil, err
		}
		if n != accountIDLength {
			return nil, invalidValue("XChainBridge door of %d bytes", n)
		}
		b, err := r.Read(accountIDLength)
		if err != nil {
			return nil, err
		}
		if bag[m.name], err = d.c.accountString(b); err != nil {
			return nil, err
		}
	}
	return bag, nil
}
