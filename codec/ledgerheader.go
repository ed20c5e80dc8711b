package codec

import (
	"fmt"
	"strconv"
)

// LedgerHeaderSize is the length of an encoded ledger header.
const LedgerHeaderSize = 4 + 8 + 3*hash256Length + 4 + 4 + 1 + 1

// LedgerHeader is the fixed layout ledger header hashed into the ledger hash.
type LedgerHeader struct {
	LedgerIndex         uint32 `json:"ledger_index"`
	TotalCoins          string `json:"total_coins"`
	ParentHash          string `json:"parent_hash"`
	TransactionHash     string `json:"transaction_hash"`
	AccountHash         string `json:"account_hash"`
	ParentCloseTime     uint32 `json:"parent_close_time"`
	CloseTime           uint32 `json:"close_time"`
	CloseTimeResolution uint8  `json:"close_time_resolution"`
	CloseFlags          uint8  `json:"close_flags"`
}

// DecodeLedgerHeader parses an encoded ledger header.
func DecodeLedgerHeader(b []byte) (*LedgerHeader, error) {
	r := NewReader(b)
	h := new(LedgerHeader)
	var err error
	fail := func(field string) (*LedgerHeader, error) {
		return nil, wrapError(err, field, r.Offset())
	}
	if h.LedgerIndex, err = r.ReadUint32(); err != nil {
		return fail("ledger_index")
	}
	coins, err := r.ReadUint64()
	if err != nil {
		return fail("total_coins")
	}
	h.TotalCoins = strconv.FormatUint(coins, 10)
	hashes := []*string{&h.ParentHash, &h.TransactionHash, &h.AccountHash}
	names := []string{"parent_hash", "transaction_hash", "account_hash"}
	for i, dst := range hashes {
		var raw []byte
		if raw, err = r.Read(hash256Length); err != nil {
			return fail(names[i])
		}
		*dst = b2h(raw)
	}
	if h.ParentCloseTime, err = r.ReadUint32(); err != nil {
		return fail("parent_close_time")
	}
	if h.CloseTime, err = r.ReadUint32(); err != nil {
		return fail("close_time")
	}
	if h.CloseTimeResolution, err = r.ReadByte(); err != nil {
		return fail("close_time_resolution")
	}
	if h.CloseFlags, err = r.ReadByte(); err != nil {
		return fail("close_flags")
	}
	if r.Remaining() != 0 {
		err = fmt.Errorf("%w: %d bytes after ledger header", ErrTrailingData, r.Remaining())
		return fail("")
	}
	return h, nil
}

// Bytes encodes the header.
func (h *LedgerHeader) Bytes() ([]byte, error) {
	coins, err := strconv.ParseUint(h.TotalCoins, 10, 64)
	if err != nil {
		return nil, &Error{Err: invalidValue("bad total_coins %q", h.TotalCoins), Field: "total_coins"}
	}
	w := NewWriter()
	w.PutUint32(h.LedgerIndex)
	w.PutUint64(coins)
	hash := hashType{size: hash256Length}
	for _, f := range []struct{ name, value string }{
		{"parent_hash", h.ParentHash},
		{"transaction_hash", h.TransactionHash},
		{"account_hash", h.AccountHash},
	} {
		b, err := hash.parse(f.value)
		if err != nil {
			return nil, &Error{Err: err, Field: f.name, Offset: w.Len()}
		}
		w.Put(b...)
	}
	w.PutUint32(h.ParentCloseTime)
	w.PutUint32(h.CloseTime)
	w.Put(h.CloseTimeResolution, h.CloseFlags)
	return w.Bytes(), nil
}

// Hash returns the ledger hash.
func (h *LedgerHeader) Hash() (string, error) {
	b, err := h.Bytes()
	if err != nil {
		return "", err
	}
	return b2h(sha512Half(HashPrefixLedgerMaster.Bytes(), b)), nil
}
