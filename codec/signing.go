package codec

import (
	"encoding/binary"
	"fmt"
)

// HashPrefix is prepended to data before hashing or signing.
type HashPrefix uint32

// Hash Prefixes
const (
	HashPrefixTransactionID        HashPrefix = 0x54584E00 // 'TXN' transaction
	HashPrefixTransactionNode      HashPrefix = 0x534E4400 // 'SND' transaction plus metadata
	HashPrefixLeafNode             HashPrefix = 0x4D4C4E00 // 'MLN' account state
	HashPrefixInnerNode            HashPrefix = 0x4D494E00 // 'MIN' inner node in tree
	HashPrefixLedgerMaster         HashPrefix = 0x4C575200 // 'LWR' ledger master data for signing
	HashPrefixTransactionSign      HashPrefix = 0x53545800 // 'STX' inner transaction to sign
	HashPrefixTransactionMultiSign HashPrefix = 0x534D5400 // 'SMT' inner transaction to multi-sign
	HashPrefixPaymentChannelClaim  HashPrefix = 0x434C4D00 // 'CLM' payment channel claim
	HashPrefixValidation           HashPrefix = 0x56414C00 // 'VAL' validation for signing
	HashPrefixProposal             HashPrefix = 0x50525000 // 'PRP' proposal for signing
)

// Bytes returns the big-endian form of the prefix.
func (p HashPrefix) Bytes() []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(p))
	return b[:]
}

func (p HashPrefix) String() string {
	return fmt.Sprintf("%08X", uint32(p))
}

// SigningPrefixes are the protocol constants placed ahead of signing data.
type SigningPrefixes struct {
	Single HashPrefix
	Multi  HashPrefix
	Claim  HashPrefix
}

// DefaultSigningPrefixes returns the main network prefixes.
func DefaultSigningPrefixes() SigningPrefixes {
	return SigningPrefixes{
		Single: HashPrefixTransactionSign,
		Multi:  HashPrefixTransactionMultiSign,
		Claim:  HashPrefixPaymentChannelClaim,
	}
}

const fieldSigningPubKey = "SigningPubKey"

// EncodeForSigning serializes the signing fields of bag, recursively,
// behind the single signing prefix.
func (c *Codec) EncodeForSigning(bag map[string]interface{}) ([]byte, error) {
	fields, err := c.encode(bag, true)
	if err != nil {
		return nil, err
	}
	return append(c.prefixes.Single.Bytes(), fields...), nil
}

// EncodeForMultisigning serializes the signing fields of bag for one signer
// of a multi-signed transaction. SigningPubKey is forced to an empty blob
// and the signer's account id is appended.
func (c *Codec) EncodeForMultisigning(bag map[string]interface{}, signer string) ([]byte, error) {
	account, err := c.accountBytes(signer)
	if err != nil {
		return nil, &Error{Err: err, Field: "signer"}
	}
	tx := make(map[string]interface{}, len(bag)+1)
	for k, v := range bag {
		tx[k] = v
	}
	tx[fieldSigningPubKey] = ""
	fields, err := c.encode(tx, true)
	if err != nil {
		return nil, err
	}
	out := append(c.prefixes.Multi.Bytes(), fields...)
	return append(out, account...), nil
}

// PaymentChannelClaim authorizes redeeming Amount drops from Channel.
type PaymentChannelClaim struct {
	Channel string `json:"channel"`
	Amount  string `json:"amount"`
}

// EncodeForSigningClaim serializes a payment channel claim for signing.
func (c *Codec) EncodeForSigningClaim(claim PaymentChannelClaim) ([]byte, error) {
	channel, err := hashType{size: hash256Length}.parse(claim.Channel)
	if err != nil {
		return nil, &Error{Err: err, Field: "channel"}
	}
	drops, err := parseNative(claim.Amount)
	if err != nil {
		return nil, &Error{Err: err, Field: "amount"}
	}
	w := NewWriter()
	w.Put(c.prefixes.Claim.Bytes()...)
	w.Put(channel...)
	w.PutUint64(drops)
	return w.Bytes(), nil
}

// TransactionID returns the hash identifying a signed transaction.
func (c *Codec) TransactionID(bag map[string]interface{}) (string, error) {
	b, err := c.Encode(bag)
	if err != nil {
		return "", err
	}
	return b2h(sha512Half(HashPrefixTransactionID.Bytes(), b)), nil
}

// SigningHash returns the hash a single signer signs.
func (c *Codec) SigningHash(bag map[string]interface{}) (string, error) {
	b, err := c.EncodeForSigning(bag)
	if err != nil {
		return "", err
	}
	return b2h(sha512Half(b)), nil
}
