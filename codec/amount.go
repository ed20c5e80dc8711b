package codec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/anyswap/xrpl-codec/definitions"
)

const (
	minMantissa = uint64(1000000000000000)
	maxMantissa = uint64(9999999999999999)
	minExponent = -96
	maxExponent = 80
	maxDigits   = 16

	maxNative = uint64(100000000000000000)

	notNativeBit = uint64(0x8000000000000000)
	positiveBit  = uint64(0x4000000000000000)
	mantissaMask = uint64(0x003FFFFFFFFFFFFF)
)

var valueRegex = regexp.MustCompile(`^([+-]?)(\d*)(\.(\d*))?([eE]([+-]?)(\d+))?$`)

// issuedValue is a normalized issued currency quantity, mantissa * 10^exponent.
type issuedValue struct {
	negative bool
	mantissa uint64
	exponent int
}

func (v issuedValue) isZero() bool {
	return v.mantissa == 0
}

// parseIssuedValue canonicalises a decimal or scientific string so that
// numerically equal inputs produce the same value.
func parseIssuedValue(s string) (issuedValue, error) {
	var v issuedValue
	match := valueRegex.FindStringSubmatch(s)
	if match == nil || match[2]+match[4] == "" {
		return v, invalidValue("bad issued value %q", s)
	}
	v.negative = match[1] == "-"
	digits := match[2] + match[4]
	exponent := -len(match[4])
	if match[7] != "" {
		if len(match[7]) > 6 {
			return v, fmt.Errorf("%w: exponent of %q", ErrAmountRange, s)
		}
		e, _ := strconv.Atoi(match[7])
		if match[6] == "-" {
			e = -e
		}
		exponent += e
	}
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return issuedValue{}, nil
	}
	trimmed := strings.TrimRight(digits, "0")
	exponent += len(digits) - len(trimmed)
	if len(trimmed) > maxDigits {
		return v, fmt.Errorf("%w: %q has more than %d significant digits", ErrAmountRange, s, maxDigits)
	}
	v.mantissa, _ = strconv.ParseUint(trimmed, 10, 64)
	for v.mantissa < minMantissa {
		v.mantissa *= 10
		exponent--
	}
	if exponent < minExponent || exponent > maxExponent {
		return v, fmt.Errorf("%w: exponent %d of %q", ErrAmountRange, exponent, s)
	}
	v.exponent = exponent
	return v, nil
}

func (v issuedValue) bits() uint64 {
	if v.isZero() {
		return notNativeBit
	}
	u := notNativeBit | uint64(v.exponent+97)<<54 | v.mantissa
	if !v.negative {
		u |= positiveBit
	}
	return u
}

func issuedValueFromBits(u uint64) (issuedValue, error) {
	v := issuedValue{
		negative: u&positiveBit == 0,
		mantissa: u & mantissaMask,
		exponent: int(u>>54&0xFF) - 97,
	}
	if v.mantissa == 0 {
		if u != notNativeBit {
			return v, invalidValue("non-canonical issued zero %016X", u)
		}
		return issuedValue{}, nil
	}
	if v.mantissa < minMantissa || v.mantissa > maxMantissa || v.exponent < minExponent || v.exponent > maxExponent {
		return v, fmt.Errorf("%w: non-canonical issued value %016X", ErrAmountRange, u)
	}
	return v, nil
}

// String formats the value the way ledger servers do: positional for
// exponents in [-25, -5], mantissa and exponent otherwise.
func (v issuedValue) String() string {
	if v.isZero() {
		return "0"
	}
	sign := ""
	if v.negative {
		sign = "-"
	}
	digits := strconv.FormatUint(v.mantissa, 10)
	if v.exponent != 0 && (v.exponent < -25 || v.exponent > -5) {
		trimmed := strings.TrimRight(digits, "0")
		return sign + trimmed + "e" + strconv.Itoa(v.exponent+len(digits)-len(trimmed))
	}
	if v.exponent == 0 {
		return sign + digits
	}
	point := len(digits) + v.exponent
	var integer, fraction string
	if point > 0 {
		integer, fraction = digits[:point], digits[point:]
	} else {
		integer, fraction = "0", strings.Repeat("0", -point)+digits
	}
	fraction = strings.TrimRight(fraction, "0")
	if fraction == "" {
		return sign + integer
	}
	return sign + integer + "." + fraction
}

// parseNative accepts an integer count of drops.
func parseNative(s string) (uint64, error) {
	switch {
	case s == "":
		return 0, invalidValue("empty native amount")
	case strings.HasPrefix(s, "-"):
		return 0, fmt.Errorf("%w: negative native amount %q", ErrAmountRange, s)
	case strings.ContainsAny(s, ".eE"):
		return 0, invalidValue("native amount %q must be whole drops", s)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, invalidValue("bad native amount %q", s)
		}
	}
	drops, err := strconv.ParseUint(s, 10, 64)
	if err != nil || drops > maxNative {
		return 0, fmt.Errorf("%w: native amount %q exceeds %d drops", ErrAmountRange, s, maxNative)
	}
	return drops, nil
}

type amountType struct{}

func (amountType) encode(e *encoder, w *Writer, f *definitions.Field, v interface{}) error {
	bag, isIssued := v.(map[string]interface{})
	if !isIssued {
		s, err := toString(v)
		if err != nil {
			return err
		}
		drops, err := parseNative(s)
		if err != nil {
			return err
		}
		w.PutUint64(positiveBit | drops)
		return nil
	}
	for key := range bag {
		switch key {
		case "value", "currency", "issuer":
		default:
			return invalidValue("unexpected amount key %q", key)
		}
	}
	raw, err := toString(bag["value"])
	if err != nil {
		return err
	}
	value, err := parseIssuedValue(raw)
	if err != nil {
		return err
	}
	currency, err := currencyBytes(bag["currency"])
	if err != nil {
		return err
	}
	if isZero(currency) {
		return invalidValue("issued amount with native currency")
	}
	issuer, err := e.c.accountBytes(bag["issuer"])
	if err != nil {
		return err
	}
	w.PutUint64(value.bits())
	w.Put(currency...)
	w.Put(issuer...)
	return nil
}

func (amountType) decode(d *decoder, r *Reader, f *definitions.Field) (interface{}, error) {
	u, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	if u&notNativeBit == 0 {
		if u&positiveBit == 0 {
			return nil, invalidValue("negative native amount %016X", u)
		}
		drops := u &^ positiveBit
		if drops > maxNative {
			return nil, fmt.Errorf("%w: native amount %d", ErrAmountRange, drops)
		}
		return strconv.FormatUint(drops, 10), nil
	}
	value, err := issuedValueFromBits(u)
	if err != nil {
		return nil, err
	}
	currency, err := r.Read(currencyLength)
	if err != nil {
		return nil, err
	}
	issuer, err := r.Read(accountIDLength)
	if err != nil {
		return nil, err
	}
	address, err := d.c.accountString(issuer)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"value":    value.String(),
		"currency": currencyString(currency),
		"issuer":   address,
	}, nil
}
