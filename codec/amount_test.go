package codec

import (
	"errors"
	"fmt"

	. "gopkg.in/check.v1"
)

type AmountSuite struct{}

var _ = Suite(&AmountSuite{})

func canonical(negative bool, mantissa uint64, exponent int) issuedValue {
	return issuedValue{negative: negative, mantissa: mantissa, exponent: exponent}
}

var issuedStringTests = []struct {
	value    issuedValue
	expected string
}{
	{issuedValue{}, "0"},
	{canonical(false, 1230000000000000, -15), "1.23"},
	{canonical(false, 1230000000000000, -25), "0.000000000123"},
	{canonical(false, 1230000000000000, -26), "123e-13"},
	{canonical(false, 1230000000000000, -5), "12300000000"},
	{canonical(false, 1230000000000000, -4), "123e9"},
	{canonical(false, 9999999999999999, 80), "9999999999999999e80"},
	{canonical(false, 1000000000000000, -96), "1e-81"},
	{canonical(true, 1230000000000000, -15), "-1.23"},
	{canonical(true, 1230000000000000, -25), "-0.000000000123"},
	{canonical(true, 1230000000000000, -26), "-123e-13"},
	{canonical(true, 1230000000000000, -5), "-12300000000"},
	{canonical(true, 1230000000000000, -4), "-123e9"},
	{canonical(true, 9999999999999999, 80), "-9999999999999999e80"},
	{canonical(true, 1000000000000000, -96), "-1e-81"},
	{canonical(false, 1000000000000000, 0), "1000000000000000"},
	{canonical(false, 1000000000000000, -23), "0.00000001"},
	{canonical(false, 1000000000000000, 5), "1e20"},
}

func (s *AmountSuite) TestIssuedString(c *C) {
	for _, test := range issuedStringTests {
		c.Check(test.value.String(), Equals, test.expected, Commentf("%+v", test.value))
	}
}

var issuedParseTests = []struct {
	input    string
	expected issuedValue
}{
	{"0", issuedValue{}},
	{"-0", issuedValue{}},
	{"0.000", issuedValue{}},
	{"1", canonical(false, 1000000000000000, -15)},
	{"1.0", canonical(false, 1000000000000000, -15)},
	{"+1", canonical(false, 1000000000000000, -15)},
	{"10e-1", canonical(false, 1000000000000000, -15)},
	{"0.01", canonical(false, 1000000000000000, -17)},
	{".5", canonical(false, 5000000000000000, -16)},
	{"-1", canonical(true, 1000000000000000, -15)},
	{"-0.01", canonical(true, 1000000000000000, -17)},
	{"9999999999999999e80", canonical(false, 9999999999999999, 80)},
	{"1e-81", canonical(false, 1000000000000000, -96)},
	{"1E3", canonical(false, 1000000000000000, -12)},
	{"1234567890123456", canonical(false, 1234567890123456, 0)},
	{"12345678901234560000", canonical(false, 1234567890123456, 4)},
}

func (s *AmountSuite) TestParseIssued(c *C) {
	for _, test := range issuedParseTests {
		v, err := parseIssuedValue(test.input)
		c.Assert(err, IsNil, Commentf("%s", test.input))
		c.Check(v, Equals, test.expected, Commentf("%s", test.input))
	}
}

func (s *AmountSuite) TestParseIssuedErrors(c *C) {
	tests := []struct {
		input string
		err   error
	}{
		{"", ErrInvalidValue},
		{"foo", ErrInvalidValue},
		{"1.2.3", ErrInvalidValue},
		{"e5", ErrInvalidValue},
		{"12345678901234567", ErrAmountRange},
		{"1e96", ErrAmountRange},
		{"1e-82", ErrAmountRange},
		{"1e1000000000", ErrAmountRange},
	}
	for _, test := range tests {
		_, err := parseIssuedValue(test.input)
		c.Check(errors.Is(err, test.err), Equals, true, Commentf("%s: %v", test.input, err))
	}
}

func (s *AmountSuite) TestIssuedBits(c *C) {
	one, err := parseIssuedValue("1")
	c.Assert(err, IsNil)
	c.Check(fmt.Sprintf("%016X", one.bits()), Equals, "D4838D7EA4C68000")

	minusOne, err := parseIssuedValue("-1")
	c.Assert(err, IsNil)
	c.Check(fmt.Sprintf("%016X", minusOne.bits()), Equals, "94838D7EA4C68000")

	c.Check(issuedValue{}.bits(), Equals, notNativeBit)

	for _, test := range issuedParseTests {
		v, err := parseIssuedValue(test.input)
		c.Assert(err, IsNil)
		back, err := issuedValueFromBits(v.bits())
		c.Assert(err, IsNil)
		c.Check(back, Equals, v, Commentf("%s", test.input))
	}
}

func (s *AmountSuite) TestIssuedFromBitsErrors(c *C) {
	// negative zero
	_, err := issuedValueFromBits(0x8000000000000000 | 1<<54)
	c.Check(errors.Is(err, ErrInvalidValue), Equals, true)
	// mantissa below the normalized range
	_, err = issuedValueFromBits(notNativeBit | positiveBit | uint64(82)<<54 | 1)
	c.Check(errors.Is(err, ErrAmountRange), Equals, true)
}

func (s *AmountSuite) TestEquivalentValuesEncodeIdentically(c *C) {
	issuer := "rvYAfWj5gh67oV6fW32ZzP3Aw4Eubs59B"
	var first []byte
	for _, value := range []string{"1", "1.0", "1.000000", "10e-1", "0.1e1", "+1"} {
		b, err := Encode(map[string]interface{}{
			"Amount": map[string]interface{}{"value": value, "currency": "USD", "issuer": issuer},
		})
		c.Assert(err, IsNil)
		if first == nil {
			first = b
			continue
		}
		c.Check(b, DeepEquals, first, Commentf("%s", value))
	}
	c.Check(b2h(first[:9]), Equals, "61D4838D7EA4C68000")
}

func (s *AmountSuite) TestZeroAmounts(c *C) {
	native, err := encodeHex(map[string]interface{}{"Amount": "0"})
	c.Assert(err, IsNil)
	c.Check(native, Equals, "614000000000000000")

	issued, err := encodeHex(map[string]interface{}{
		"Amount": map[string]interface{}{"value": "0", "currency": "USD", "issuer": "rvYAfWj5gh67oV6fW32ZzP3Aw4Eubs59B"},
	})
	c.Assert(err, IsNil)
	c.Check(issued[:18], Equals, "618000000000000000")
}

func (s *AmountSuite) TestNativeAmounts(c *C) {
	tests := []struct {
		input string
		hex   string
		err   error
	}{
		{"1", "614000000000000001", nil},
		{"1000000", "6140000000000F4240", nil},
		{"100000000000000000", "61416345785D8A0000", nil},
		{"100000000000000001", "", ErrAmountRange},
		{"-1", "", ErrAmountRange},
		{"1.5", "", ErrInvalidValue},
		{"1e6", "", ErrInvalidValue},
		{"ten", "", ErrInvalidValue},
		{"", "", ErrInvalidValue},
	}
	for _, test := range tests {
		encoded, err := encodeHex(map[string]interface{}{"Amount": test.input})
		if test.err != nil {
			c.Check(errors.Is(err, test.err), Equals, true, Commentf("%s: %v", test.input, err))
			continue
		}
		c.Assert(err, IsNil, Commentf("%s", test.input))
		c.Check(encoded, Equals, test.hex)
		decoded, err := Default().DecodeHex(encoded)
		c.Assert(err, IsNil)
		c.Check(decoded["Amount"], Equals, test.input)
	}
}

func (s *AmountSuite) TestDecodeNegativeNative(c *C) {
	_, err := Default().DecodeHex("610000000000000001")
	c.Check(errors.Is(err, ErrInvalidValue), Equals, true)
}

func (s *AmountSuite) TestIssuedAmountErrors(c *C) {
	issuer := "rvYAfWj5gh67oV6fW32ZzP3Aw4Eubs59B"
	tests := []map[string]interface{}{
		{"value": "1", "currency": "XRP", "issuer": issuer},
		{"value": "1", "currency": "USD"},
		{"value": "1", "currency": "USD", "issuer": issuer, "extra": "x"},
		{"value": "abc", "currency": "USD", "issuer": issuer},
		{"currency": "USD", "issuer": issuer},
	}
	for _, amount := range tests {
		_, err := Encode(map[string]interface{}{"Amount": amount})
		c.Check(errors.Is(err, ErrInvalidValue), Equals, true, Commentf("%v: %v", amount, err))
	}
}
