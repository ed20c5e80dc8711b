package codec

import (
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"math"
	"strconv"
)

const hextable = "0123456789ABCDEF"

// b2h is faster than fmt and the codec needs upper case
func b2h(h []byte) string {
	b := make([]byte, len(h)*2)
	for i, v := range h {
		b[i*2] = hextable[v>>4]
		b[i*2+1] = hextable[v&0x0f]
	}
	return string(b)
}

func h2b(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, invalidValue("bad hex %q", s)
	}
	return b, nil
}

func sha512Half(parts ...[]byte) []byte {
	hasher := sha512.New()
	for _, p := range parts {
		hasher.Write(p)
	}
	return hasher.Sum(nil)[:32]
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// toUint converts a JSON-ish number to an unsigned integer of the given width.
func toUint(v interface{}, bits int) (uint64, error) {
	var (
		n   uint64
		err error
	)
	switch x := v.(type) {
	case json.Number:
		n, err = strconv.ParseUint(x.String(), 10, bits)
	case string:
		n, err = strconv.ParseUint(x, 10, bits)
	case float64:
		if x < 0 || x != math.Trunc(x) || x >= math.Ldexp(1, bits) {
			return 0, invalidValue("%v is not a %d bit unsigned integer", x, bits)
		}
		n = uint64(x)
	case int:
		if x < 0 {
			return 0, invalidValue("negative integer %v", x)
		}
		n = uint64(x)
	case int64:
		if x < 0 {
			return 0, invalidValue("negative integer %v", x)
		}
		n = uint64(x)
	case int32:
		if x < 0 {
			return 0, invalidValue("negative integer %v", x)
		}
		n = uint64(x)
	case uint:
		n = uint64(x)
	case uint8:
		n = uint64(x)
	case uint16:
		n = uint64(x)
	case uint32:
		n = uint64(x)
	case uint64:
		n = x
	default:
		return 0, invalidValue("unsupported integer value %v (%T)", v, v)
	}
	if err != nil {
		return 0, invalidValue("%v is not a %d bit unsigned integer", v, bits)
	}
	if bits < 64 && n>>uint(bits) != 0 {
		return 0, invalidValue("%v overflows %d bits", n, bits)
	}
	return n, nil
}

func toString(v interface{}) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	default:
		return "", invalidValue("expected string, got %T", v)
	}
}

func toBag(v interface{}) (map[string]interface{}, error) {
	bag, ok := v.(map[string]interface{})
	if !ok {
		return nil, invalidValue("expected object, got %T", v)
	}
	return bag, nil
}

func toList(v interface{}) ([]interface{}, error) {
	switch x := v.(type) {
	case []interface{}:
		return x, nil
	case []map[string]interface{}:
		list := make([]interface{}, len(x))
		for i, m := range x {
			list[i] = m
		}
		return list, nil
	case []string:
		list := make([]interface{}, len(x))
		for i, s := range x {
			list[i] = s
		}
		return list, nil
	default:
		return nil, invalidValue("expected array, got %T", v)
	}
}

func number(n uint64) json.Number {
	return json.Number(strconv.FormatUint(n, 10))
}
