package params

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/anyswap/xrpl-codec/codec"
)

// CheckConfig check config
func (c *CodecConfig) CheckConfig() error {
	if c.Definitions != nil {
		if err := c.Definitions.CheckConfig(); err != nil {
			return err
		}
	}
	if c.Signing != nil {
		if _, err := c.Signing.Prefixes(); err != nil {
			return err
		}
	}
	if c.Store != nil {
		if err := c.Store.CheckConfig(); err != nil {
			return err
		}
	}
	return nil
}

// CheckConfig check definitions config
func (c *DefinitionsConfig) CheckConfig() error {
	if c.MaxNestingDepth < 0 {
		return errors.New("'MaxNestingDepth' must not be negative")
	}
	for i, f := range c.Fields {
		if f == nil || f.Name == "" {
			return fmt.Errorf("field %d must config non empty 'Name'", i)
		}
		if f.Type == "" {
			return fmt.Errorf("field %v must config non empty 'Type'", f.Name)
		}
		if f.IsSerialized && (f.Nth < 1 || f.Nth > 255) {
			return fmt.Errorf("field %v has 'Nth' %d out of range [1, 255]", f.Name, f.Nth)
		}
	}
	return nil
}

// CheckConfig check store config
func (c *StoreConfig) CheckConfig() error {
	if c.DataDir == "" {
		return errors.New("store must config non empty 'DataDir'")
	}
	if c.Cache < 0 || c.Handles < 0 {
		return errors.New("store 'Cache' and 'Handles' must not be negative")
	}
	return nil
}

func parsePrefix(name, s string, fallback codec.HashPrefix) (codec.HashPrefix, error) {
	if s == "" {
		return fallback, nil
	}
	if len(s) != 8 {
		return 0, fmt.Errorf("signing '%v' must be 8 hex digits, got %q", name, s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("signing '%v' is not hex: %q", name, s)
	}
	return codec.HashPrefix(v), nil
}

// Prefixes returns the configured prefixes, defaulting unset ones.
func (c *SigningConfig) Prefixes() (prefixes codec.SigningPrefixes, err error) {
	defaults := codec.DefaultSigningPrefixes()
	if prefixes.Single, err = parsePrefix("SinglePrefix", c.SinglePrefix, defaults.Single); err != nil {
		return prefixes, err
	}
	if prefixes.Multi, err = parsePrefix("MultiPrefix", c.MultiPrefix, defaults.Multi); err != nil {
		return prefixes, err
	}
	if prefixes.Claim, err = parsePrefix("ClaimPrefix", c.ClaimPrefix, defaults.Claim); err != nil {
		return prefixes, err
	}
	return prefixes, nil
}
