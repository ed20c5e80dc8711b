// Package common holds small helpers shared by the command line tools and
// the ledger store.
package common

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrEmptyInput is returned when an argument resolves to nothing.
var ErrEmptyInput = errors.New("empty input")

// ReadArg resolves a command argument: "-" reads stdin, "@path" reads a
// file, anything else is taken literally. Surrounding space is trimmed.
func ReadArg(arg string, stdin io.Reader) (string, error) {
	var raw []byte
	var err error
	switch {
	case arg == "-":
		raw, err = io.ReadAll(stdin)
	case strings.HasPrefix(arg, "@"):
		raw, err = os.ReadFile(arg[1:])
	default:
		raw = []byte(arg)
	}
	if err != nil {
		return "", err
	}
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return "", ErrEmptyInput
	}
	return s, nil
}

// DecodeHex decodes s with or without a 0x prefix.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return b, nil
}

// ToHex returns upper case hex, the form ledger tools print.
func ToHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}
