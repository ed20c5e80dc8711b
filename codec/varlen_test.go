package codec

import (
	"errors"
	"strings"

	"github.com/anyswap/xrpl-codec/definitions"
	. "gopkg.in/check.v1"
)

type WireSuite struct{}

var _ = Suite(&WireSuite{})

var variableLengthTests = []struct {
	length  int
	encoded string
}{
	{0, "00"},
	{1, "01"},
	{192, "C0"},
	{193, "C100"},
	{194, "C101"},
	{12480, "F0FF"},
	{12481, "F10000"},
	{12482, "F10001"},
	{918744, "FED417"},
}

func (s *WireSuite) TestVariableLength(c *C) {
	for _, test := range variableLengthTests {
		w := NewWriter()
		c.Assert(w.PutVariableLength(test.length), IsNil)
		c.Check(b2h(w.Bytes()), Equals, test.encoded, Commentf("length %d", test.length))

		r := NewReader(mustHex(c, test.encoded))
		n, err := r.ReadVariableLength()
		c.Assert(err, IsNil)
		c.Check(n, Equals, test.length)
		c.Check(r.Remaining(), Equals, 0)
	}
}

func (s *WireSuite) TestVariableLengthErrors(c *C) {
	w := NewWriter()
	c.Check(errors.Is(w.PutVariableLength(918745), ErrFieldTooLarge), Equals, true)
	c.Check(errors.Is(w.PutVariableLength(-1), ErrMalformedLength), Equals, true)
	c.Check(w.Len(), Equals, 0)

	for _, encoded := range []string{"FF", "FFFFFF", "FED418", "FEFFFF"} {
		_, err := NewReader(mustHex(c, encoded)).ReadVariableLength()
		c.Check(errors.Is(err, ErrMalformedLength), Equals, true, Commentf("%s: %v", encoded, err))
	}
	for _, encoded := range []string{"", "C1", "F100"} {
		_, err := NewReader(mustHex(c, encoded)).ReadVariableLength()
		c.Check(errors.Is(err, ErrUnexpectedEnd), Equals, true, Commentf("%s: %v", encoded, err))
	}
}

func (s *WireSuite) TestBlobBoundaries(c *C) {
	for _, test := range variableLengthTests {
		blob := strings.Repeat("AB", test.length)
		encoded, err := encodeHex(map[string]interface{}{"MemoData": blob})
		c.Assert(err, IsNil, Commentf("length %d", test.length))
		c.Check(encoded, Equals, "7D"+test.encoded+blob, Commentf("length %d", test.length))

		decoded, err := Default().DecodeHex(encoded)
		c.Assert(err, IsNil)
		c.Check(decoded["MemoData"], Equals, blob)
	}

	_, err := Encode(map[string]interface{}{"MemoData": strings.Repeat("AB", 918745)})
	c.Check(errors.Is(err, ErrFieldTooLarge), Equals, true)

	// prefix claims more bytes than remain
	_, err = Default().DecodeHex("7D05ABAB")
	c.Check(errors.Is(err, ErrUnexpectedEnd), Equals, true)
	_, err = Default().DecodeHex("7DFF")
	c.Check(errors.Is(err, ErrMalformedLength), Equals, true)
}

func (s *WireSuite) TestVector256Length(c *C) {
	hash := strings.Repeat("11", 32)
	encoded, err := encodeHex(map[string]interface{}{"Amendments": []interface{}{hash, hash}})
	c.Assert(err, IsNil)
	c.Check(encoded, Equals, "0313"+"40"+hash+hash)

	// 33 byte payload
	_, err = Default().DecodeHex("031321" + hash + "11")
	c.Check(errors.Is(err, ErrMalformedLength), Equals, true)
}

func (s *WireSuite) TestFieldHeaderReader(c *C) {
	tests := []definitions.FieldHeader{
		{TypeCode: 1, FieldCode: 1},
		{TypeCode: 15, FieldCode: 15},
		{TypeCode: 2, FieldCode: 16},
		{TypeCode: 2, FieldCode: 255},
		{TypeCode: 16, FieldCode: 1},
		{TypeCode: 255, FieldCode: 15},
		{TypeCode: 16, FieldCode: 16},
		{TypeCode: 255, FieldCode: 255},
	}
	for _, h := range tests {
		r := NewReader(h.Bytes())
		got, err := r.ReadFieldHeader()
		c.Assert(err, IsNil)
		c.Check(got, Equals, h)
		c.Check(r.Remaining(), Equals, 0)
	}
}

func (s *WireSuite) TestNonCanonicalFieldHeader(c *C) {
	for _, encoded := range []string{"000F01", "1001", "000001", "000F0F"} {
		_, err := NewReader(mustHex(c, encoded)).ReadFieldHeader()
		c.Check(errors.Is(err, ErrInvalidValue), Equals, true, Commentf("%s: %v", encoded, err))
	}
	_, err := NewReader(mustHex(c, "0010")).ReadFieldHeader()
	c.Check(errors.Is(err, ErrUnexpectedEnd), Equals, true)
}

func (s *WireSuite) TestReaderOffsets(c *C) {
	r := NewReader(mustHex(c, "0102030405"))
	_, err := r.Read(2)
	c.Assert(err, IsNil)
	sub, err := r.Sub(2)
	c.Assert(err, IsNil)
	c.Check(sub.Offset(), Equals, 2)
	b, err := sub.ReadByte()
	c.Assert(err, IsNil)
	c.Check(b, Equals, byte(3))
	c.Check(sub.Offset(), Equals, 3)
	_, err = sub.Read(2)
	c.Check(errors.Is(err, ErrUnexpectedEnd), Equals, true)
	c.Check(r.Offset(), Equals, 4)
	c.Check(r.Remaining(), Equals, 1)
}
