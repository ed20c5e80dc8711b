package codec

import (
	"errors"
	"strings"

	. "gopkg.in/check.v1"
)

type SigningSuite struct{}

var _ = Suite(&SigningSuite{})

func (s *SigningSuite) TestEncodeForSigning(c *C) {
	for _, test := range loadTransactions(c) {
		msg := Commentf("Test: %s", test.Description)
		b, err := Default().EncodeForSigning(test.JSON)
		c.Assert(err, IsNil, msg)
		c.Check(b2h(b), Equals, test.Signing, msg)
		c.Check(strings.HasPrefix(test.Signing, "53545800"), Equals, true, msg)

		hash, err := Default().SigningHash(test.JSON)
		c.Assert(err, IsNil)
		c.Check(hash, Equals, b2h(sha512Half(b)))
	}
}

func (s *SigningSuite) TestSigningSkipsSignatures(c *C) {
	fixtures := loadTransactions(c)
	offer := fixtures[0].JSON
	c.Assert(offer["TxnSignature"], NotNil)
	signing, err := Default().EncodeForSigning(offer)
	c.Assert(err, IsNil)

	unsigned := make(map[string]interface{}, len(offer))
	for k, v := range offer {
		if k != "TxnSignature" {
			unsigned[k] = v
		}
	}
	fields, err := Encode(unsigned)
	c.Assert(err, IsNil)
	c.Check(signing[4:], DeepEquals, fields)

	full, err := Encode(offer)
	c.Assert(err, IsNil)
	c.Check(len(full) > len(fields), Equals, true)
}

func (s *SigningSuite) TestSigningSkipsNestedSigners(c *C) {
	signer := map[string]interface{}{
		"Signer": map[string]interface{}{
			"Account":       "rvYAfWj5gh67oV6fW32ZzP3Aw4Eubs59B",
			"SigningPubKey": "02691AC5AE1C4C333AE5DF8A93BDC495F0EEBFC6DB0DA7EB6EF808F3AFC006E3FE",
			"TxnSignature":  "3045022100",
		},
	}
	tx := map[string]interface{}{
		"TransactionType": "Payment",
		"Fee":             "30",
		"SigningPubKey":   "",
		"Signers":         []interface{}{signer},
	}
	b, err := Default().EncodeForSigning(tx)
	c.Assert(err, IsNil)
	c.Check(b2h(b), Equals, "53545800"+"120000"+"68400000000000001E"+"7300")
}

func (s *SigningSuite) TestEncodeForMultisigning(c *C) {
	const signer = "rvYAfWj5gh67oV6fW32ZzP3Aw4Eubs59B"
	fixtures := loadTransactions(c)
	offer := fixtures[0].JSON

	b, err := Default().EncodeForMultisigning(offer, signer)
	c.Assert(err, IsNil)
	hex := b2h(b)
	c.Check(strings.HasPrefix(hex, "534D5400"), Equals, true)
	c.Check(strings.HasSuffix(hex, "0A20B3C85F482532A9578DBB3950B85CA06594D1"), Equals, true)

	expected := make(map[string]interface{}, len(offer))
	for k, v := range offer {
		expected[k] = v
	}
	expected["SigningPubKey"] = ""
	fields, err := Default().EncodeForSigning(expected)
	c.Assert(err, IsNil)
	c.Check(hex, Equals, "534D5400"+b2h(fields[4:])+"0A20B3C85F482532A9578DBB3950B85CA06594D1")
	c.Check(strings.Contains(hex, "7300"), Equals, true)

	// the caller's bag is not modified
	c.Check(offer["SigningPubKey"], Not(Equals), "")

	_, err = Default().EncodeForMultisigning(offer, "not an address")
	c.Check(errors.Is(err, ErrInvalidValue), Equals, true)
}

func (s *SigningSuite) TestEncodeForSigningClaim(c *C) {
	channel := "43904CBFCDCEC530B4037871F86EE90BF799DF8D2E0EA564BC8A3F332E4F5FB1"
	b, err := Default().EncodeForSigningClaim(PaymentChannelClaim{Channel: channel, Amount: "1000"})
	c.Assert(err, IsNil)
	c.Check(b2h(b), Equals, "434C4D00"+channel+"00000000000003E8")

	_, err = Default().EncodeForSigningClaim(PaymentChannelClaim{Channel: "ABCD", Amount: "1000"})
	c.Check(errors.Is(err, ErrInvalidHashLength), Equals, true)
	_, err = Default().EncodeForSigningClaim(PaymentChannelClaim{Channel: channel, Amount: "1.5"})
	c.Check(errors.Is(err, ErrInvalidValue), Equals, true)
	_, err = Default().EncodeForSigningClaim(PaymentChannelClaim{Channel: channel, Amount: "-1"})
	c.Check(errors.Is(err, ErrAmountRange), Equals, true)
}

func (s *SigningSuite) TestCustomPrefixes(c *C) {
	prefixes := SigningPrefixes{Single: 0x01020304, Multi: 0x05060708, Claim: 0x090A0B0C}
	codec := New(Default().Definitions(), WithSigningPrefixes(prefixes))
	c.Check(codec.SigningPrefixes(), Equals, prefixes)

	tx := map[string]interface{}{"TransactionType": "Payment"}
	b, err := codec.EncodeForSigning(tx)
	c.Assert(err, IsNil)
	c.Check(b2h(b), Equals, "01020304120000")

	b, err = codec.EncodeForMultisigning(tx, "rrrrrrrrrrrrrrrrrrrrBZbvji")
	c.Assert(err, IsNil)
	c.Check(b2h(b), Equals, "05060708120000"+"7300"+"0000000000000000000000000000000000000001")

	b, err = codec.EncodeForSigningClaim(PaymentChannelClaim{Channel: strings.Repeat("00", 32), Amount: "1"})
	c.Assert(err, IsNil)
	c.Check(b2h(b[:4]), Equals, "090A0B0C")
}

func (s *SigningSuite) TestHashPrefixes(c *C) {
	tests := map[HashPrefix]string{
		HashPrefixTransactionID:        "TXN",
		HashPrefixTransactionSign:      "STX",
		HashPrefixTransactionMultiSign: "SMT",
		HashPrefixPaymentChannelClaim:  "CLM",
		HashPrefixLedgerMaster:         "LWR",
		HashPrefixTransactionNode:      "SND",
		HashPrefixLeafNode:             "MLN",
		HashPrefixInnerNode:            "MIN",
		HashPrefixValidation:           "VAL",
		HashPrefixProposal:             "PRP",
	}
	for prefix, tag := range tests {
		c.Check(string(prefix.Bytes()[:3]), Equals, tag)
		c.Check(prefix.Bytes()[3], Equals, byte(0))
	}
	c.Check(HashPrefixTransactionID.String(), Equals, "54584E00")
}
