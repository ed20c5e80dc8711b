// Package addresscodec converts between raw ledger identifiers and their
// base58check text form.
package addresscodec

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ripemd160"
)

// Alphabet is the ledger's base58 alphabet.
const Alphabet = "rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz"

// HashVersion is the leading version byte of an encoded identifier.
type HashVersion byte

// identifier versions
const (
	AccountIDVersion      HashVersion = 0
	NodePublicVersion     HashVersion = 28
	NodePrivateVersion    HashVersion = 32
	FamilySeedVersion     HashVersion = 33
	AccountPrivateVersion HashVersion = 34
	AccountPublicVersion  HashVersion = 35
)

// AccountIDLength is the size of a raw account id.
const AccountIDLength = 20

// address codec errors
var (
	ErrInvalidBase58 = errors.New("invalid base58")
	ErrBadChecksum   = errors.New("bad checksum")
	ErrBadVersion    = errors.New("bad version")
	ErrBadLength     = errors.New("bad payload length")
)

var rippleAlphabet = base58.NewAlphabet(Alphabet)

func checksum(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:4]
}

// Encode returns the base58check form of payload under version.
func Encode(version HashVersion, payload []byte) string {
	b := make([]byte, 0, 1+len(payload)+4)
	b = append(b, byte(version))
	b = append(b, payload...)
	b = append(b, checksum(b)...)
	return base58.EncodeAlphabet(b, rippleAlphabet)
}

// Decode verifies the checksum of s and returns its version and payload.
func Decode(s string) (HashVersion, []byte, error) {
	b, err := base58.DecodeAlphabet(s, rippleAlphabet)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrInvalidBase58, err)
	}
	if len(b) < 5 {
		return 0, nil, fmt.Errorf("%w: %d bytes", ErrBadLength, len(b))
	}
	body, sum := b[:len(b)-4], b[len(b)-4:]
	if !bytes.Equal(checksum(body), sum) {
		return 0, nil, ErrBadChecksum
	}
	return HashVersion(body[0]), body[1:], nil
}

// DecodeVersion decodes s and checks its version and payload length.
func DecodeVersion(s string, version HashVersion, length int) ([]byte, error) {
	v, payload, err := Decode(s)
	if err != nil {
		return nil, err
	}
	if v != version {
		return nil, fmt.Errorf("%w: expected %d got %d", ErrBadVersion, version, v)
	}
	if len(payload) != length {
		return nil, fmt.Errorf("%w: expected %d got %d", ErrBadLength, length, len(payload))
	}
	return payload, nil
}

// EncodeAccountID returns the classic address of a raw account id.
func EncodeAccountID(id []byte) (string, error) {
	if len(id) != AccountIDLength {
		return "", fmt.Errorf("%w: expected %d got %d", ErrBadLength, AccountIDLength, len(id))
	}
	return Encode(AccountIDVersion, id), nil
}

// DecodeAccountID returns the raw account id of a classic address.
func DecodeAccountID(address string) ([]byte, error) {
	return DecodeVersion(address, AccountIDVersion, AccountIDLength)
}

// IsValidAddress reports whether address is a well formed classic address.
func IsValidAddress(address string) bool {
	_, err := DecodeAccountID(address)
	return err == nil
}

// AccountIDFromPublicKey is RIPEMD160(SHA256(publicKey)).
func AccountIDFromPublicKey(publicKey []byte) []byte {
	sha := sha256.Sum256(publicKey)
	hasher := ripemd160.New()
	hasher.Write(sha[:])
	return hasher.Sum(nil)
}

// AddressFromPublicKey returns the classic address controlled by publicKey.
func AddressFromPublicKey(publicKey []byte) string {
	return Encode(AccountIDVersion, AccountIDFromPublicKey(publicKey))
}

// EncodeNodePublicKey returns the node public key form of a validator key.
func EncodeNodePublicKey(publicKey []byte) string {
	return Encode(NodePublicVersion, publicKey)
}

// Classic is the classic address codec.
type Classic struct{}

// EncodeAccountID implements the codec address interface.
func (Classic) EncodeAccountID(id []byte) (string, error) {
	return EncodeAccountID(id)
}

// DecodeAccountID implements the codec address interface.
func (Classic) DecodeAccountID(address string) ([]byte, error) {
	return DecodeAccountID(address)
}
