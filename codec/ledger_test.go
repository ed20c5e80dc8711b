package codec

import (
	"errors"

	"github.com/juju/testing/checkers"
	. "gopkg.in/check.v1"
)

type LedgerSuite struct{}

var _ = Suite(&LedgerSuite{})

type ledgerDataFixture struct {
	Entries []map[string]interface{} `json:"entries"`
	Binary  string                   `json:"binary"`
	Singles []string                 `json:"singles"`
}

func loadLedgerData(c *C) *ledgerDataFixture {
	fixture := new(ledgerDataFixture)
	readJSON(c, "testdata/ledger_data.json", fixture)
	c.Assert(fixture.Entries, HasLen, len(fixture.Singles))
	return fixture
}

func (s *LedgerSuite) TestDecodeLedgerData(c *C) {
	fixture := loadLedgerData(c)
	entries, err := Default().DecodeLedgerDataHex(fixture.Binary)
	c.Assert(err, IsNil)
	c.Check(entries, checkers.DeepEquals, fixture.Entries)

	for i, single := range fixture.Singles {
		entries, err := Default().DecodeLedgerDataHex(single)
		c.Assert(err, IsNil)
		c.Assert(entries, HasLen, 1)
		c.Check(entries[0], checkers.DeepEquals, fixture.Entries[i])
	}
}

func (s *LedgerSuite) TestEncodeLedgerData(c *C) {
	fixture := loadLedgerData(c)
	b, err := Default().EncodeLedgerData(fixture.Entries)
	c.Assert(err, IsNil)
	c.Check(b2h(b), Equals, fixture.Binary)

	for i, entry := range fixture.Entries {
		b, err := Default().EncodeLedgerEntry(entry)
		c.Assert(err, IsNil)
		c.Check(b2h(b), Equals, fixture.Singles[i])
	}
}

func (s *LedgerSuite) TestEmptyLedgerData(c *C) {
	entries, err := Default().DecodeLedgerData(nil)
	c.Assert(err, IsNil)
	c.Check(entries, HasLen, 0)
}

func (s *LedgerSuite) TestLedgerDataErrors(c *C) {
	fixture := loadLedgerData(c)
	b := mustHex(c, fixture.Binary)

	_, err := Default().DecodeLedgerData(b[:len(b)-1])
	c.Check(errors.Is(err, ErrUnexpectedEnd), Equals, true, Commentf("%v", err))

	// an index with nothing after it
	_, err = Default().DecodeLedgerData(append(b, make([]byte, 32)...))
	c.Check(errors.Is(err, ErrUnexpectedEnd), Equals, true, Commentf("%v", err))

	// short index
	_, err = Default().DecodeLedgerData(make([]byte, 10))
	c.Check(errors.Is(err, ErrUnexpectedEnd), Equals, true, Commentf("%v", err))

	entry := make(map[string]interface{})
	for k, v := range fixture.Entries[0] {
		entry[k] = v
	}
	delete(entry, IndexKey)
	_, err = Default().EncodeLedgerEntry(entry)
	c.Check(errors.Is(err, ErrInvalidValue), Equals, true)

	entry[IndexKey] = "ABCD"
	_, err = Default().EncodeLedgerData([]map[string]interface{}{fixture.Entries[0], entry})
	c.Check(errors.Is(err, ErrInvalidHashLength), Equals, true)
	c.Check(err, ErrorMatches, "entry 1: .*")
}

var ledgerHeaderHex = "000094F1016345785D89FFF1" +
	"3401E5B2E5D2B7F1C4C9F1DE0EF2F5C9C1BD1CE0E3A12E0B4E5E7F6E2D4A0B1C" +
	"DB83BF807416C5B3499A73130F843CF615AB8E797D79FE7D330ADF1BFA93951A" +
	"823B06A3E523A106B1F0CD7F103E1C6A1B913E5186BF90E6A0A2D8C7A04E9E8D" +
	"1876937E187693880A00"

var ledgerHeader = LedgerHeader{
	LedgerIndex:         38129,
	TotalCoins:          "99999999999999985",
	ParentHash:          "3401E5B2E5D2B7F1C4C9F1DE0EF2F5C9C1BD1CE0E3A12E0B4E5E7F6E2D4A0B1C",
	TransactionHash:     "DB83BF807416C5B3499A73130F843CF615AB8E797D79FE7D330ADF1BFA93951A",
	AccountHash:         "823B06A3E523A106B1F0CD7F103E1C6A1B913E5186BF90E6A0A2D8C7A04E9E8D",
	ParentCloseTime:     410424190,
	CloseTime:           410424200,
	CloseTimeResolution: 10,
	CloseFlags:          0,
}

func (s *LedgerSuite) TestDecodeLedgerHeader(c *C) {
	b := mustHex(c, ledgerHeaderHex)
	c.Assert(b, HasLen, LedgerHeaderSize)
	h, err := DecodeLedgerHeader(b)
	c.Assert(err, IsNil)
	c.Check(*h, Equals, ledgerHeader)

	encoded, err := h.Bytes()
	c.Assert(err, IsNil)
	c.Check(b2h(encoded), Equals, ledgerHeaderHex)

	hash, err := h.Hash()
	c.Assert(err, IsNil)
	c.Check(hash, Equals, "A8CE91DB1D0CEC90EEFD30AF54CB49EBA944869BC3E2F9EBE5498F01B3D2FB2B")
}

func (s *LedgerSuite) TestLedgerHeaderErrors(c *C) {
	b := mustHex(c, ledgerHeaderHex)
	_, err := DecodeLedgerHeader(b[:len(b)-1])
	c.Check(errors.Is(err, ErrUnexpectedEnd), Equals, true)
	var codecErr *Error
	c.Assert(errors.As(err, &codecErr), Equals, true)
	c.Check(codecErr.Field, Equals, "close_flags")

	_, err = DecodeLedgerHeader(append(b, 0))
	c.Check(errors.Is(err, ErrTrailingData), Equals, true)

	bad := ledgerHeader
	bad.TotalCoins = "lots"
	_, err = bad.Bytes()
	c.Check(errors.Is(err, ErrInvalidValue), Equals, true)

	bad = ledgerHeader
	bad.AccountHash = "ABCD"
	_, err = bad.Hash()
	c.Check(errors.Is(err, ErrInvalidHashLength), Equals, true)
}
