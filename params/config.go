// Package params loads the codec configuration file.
package params

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/anyswap/xrpl-codec/codec"
	"github.com/anyswap/xrpl-codec/definitions"
	"github.com/anyswap/xrpl-codec/log"
)

var (
	codecConfig = &CodecConfig{}
	configLock  sync.RWMutex
)

// CodecConfig config items (decode from toml file)
type CodecConfig struct {
	Definitions *DefinitionsConfig `toml:",omitempty" json:",omitempty"`
	Signing     *SigningConfig     `toml:",omitempty" json:",omitempty"`
	Store       *StoreConfig       `toml:",omitempty" json:",omitempty"`
}

// DefinitionsConfig selects the base registry and the additions applied
// on top of it.
type DefinitionsConfig struct {
	File            string `toml:",omitempty" json:",omitempty"` // empty means the embedded table
	MaxNestingDepth int    `toml:",omitempty" json:",omitempty"`

	Types              map[string]int `toml:",omitempty" json:",omitempty"`
	Fields             []*FieldConfig `toml:",omitempty" json:",omitempty"`
	TransactionTypes   map[string]int `toml:",omitempty" json:",omitempty"`
	LedgerEntryTypes   map[string]int `toml:",omitempty" json:",omitempty"`
	TransactionResults map[string]int `toml:",omitempty" json:",omitempty"`
}

// FieldConfig adds or replaces one field definition.
type FieldConfig struct {
	Name           string
	Type           string
	Nth            int
	IsVLEncoded    bool
	IsSerialized   bool
	IsSigningField bool
	IsBase10       bool `toml:",omitempty" json:",omitempty"`
}

// SigningConfig overrides the signing hash prefixes, as 8 hex digits.
type SigningConfig struct {
	SinglePrefix string `toml:",omitempty" json:",omitempty"`
	MultiPrefix  string `toml:",omitempty" json:",omitempty"`
	ClaimPrefix  string `toml:",omitempty" json:",omitempty"`
}

// StoreConfig ledger store config
type StoreConfig struct {
	DataDir  string
	Cache    int  `toml:",omitempty" json:",omitempty"` // megabytes
	Handles  int  `toml:",omitempty" json:",omitempty"`
	ReadOnly bool `toml:",omitempty" json:",omitempty"`
}

// GetConfig get codec config
func GetConfig() *CodecConfig {
	configLock.RLock()
	defer configLock.RUnlock()
	return codecConfig
}

// SetConfig set codec config
func SetConfig(config *CodecConfig) {
	configLock.Lock()
	defer configLock.Unlock()
	codecConfig = config
}

// LoadConfig decodes, checks and installs the config file.
func LoadConfig(configFile string) (*CodecConfig, error) {
	if configFile == "" {
		return nil, fmt.Errorf("LoadConfig error: no config file specified")
	}
	if _, err := os.Stat(configFile); err != nil {
		return nil, fmt.Errorf("LoadConfig error: %w", err)
	}
	config := &CodecConfig{}
	meta, err := toml.DecodeFile(configFile, config)
	if err != nil {
		return nil, fmt.Errorf("LoadConfig error (toml DecodeFile): %w", err)
	}
	for _, key := range meta.Undecoded() {
		log.Warn("unknown config key", "key", key.String(), "file", configFile)
	}
	if err := config.CheckConfig(); err != nil {
		return nil, fmt.Errorf("check config failed: %w", err)
	}
	SetConfig(config)
	bs, _ := json.Marshal(config)
	log.Debug("LoadConfig finished", "config", string(bs))
	log.Info("Check config success", "configFile", configFile)
	return config, nil
}

// Overlay converts the configured additions into a definitions dataset.
// It returns nil when nothing is configured.
func (c *DefinitionsConfig) Overlay() *definitions.Dataset {
	if c == nil {
		return nil
	}
	if len(c.Types)+len(c.Fields)+len(c.TransactionTypes)+len(c.LedgerEntryTypes)+len(c.TransactionResults) == 0 {
		return nil
	}
	ds := &definitions.Dataset{
		Types:              c.Types,
		LedgerEntryTypes:   c.LedgerEntryTypes,
		TransactionTypes:   c.TransactionTypes,
		TransactionResults: c.TransactionResults,
	}
	for _, f := range c.Fields {
		ds.Fields = append(ds.Fields, definitions.FieldEntry{
			Name:           f.Name,
			Type:           f.Type,
			Nth:            f.Nth,
			IsVLEncoded:    f.IsVLEncoded,
			IsSerialized:   f.IsSerialized,
			IsSigningField: f.IsSigningField,
			IsBase10:       f.IsBase10,
		})
	}
	return ds
}

// BuildDefinitions loads the base registry and applies the overlay.
func (c *CodecConfig) BuildDefinitions() (*definitions.Definitions, error) {
	defs := definitions.Default()
	if c.Definitions == nil {
		return defs, nil
	}
	if c.Definitions.File != "" {
		raw, err := os.ReadFile(c.Definitions.File)
		if err != nil {
			return nil, err
		}
		if defs, err = definitions.Load(raw); err != nil {
			return nil, fmt.Errorf("load %v: %w", c.Definitions.File, err)
		}
		log.Info("loaded definitions", "file", c.Definitions.File, "fields", len(defs.Fields()))
	}
	overlay := c.Definitions.Overlay()
	if overlay == nil {
		return defs, nil
	}
	extended, err := defs.Extend(overlay)
	if err != nil {
		return nil, err
	}
	log.Info("applied definitions overlay", "fields", len(overlay.Fields),
		"transactionTypes", len(overlay.TransactionTypes), "ledgerEntryTypes", len(overlay.LedgerEntryTypes))
	return extended, nil
}

// BuildCodec wires the registry, prefixes and nesting limit into a codec.
func (c *CodecConfig) BuildCodec() (*codec.Codec, error) {
	defs, err := c.BuildDefinitions()
	if err != nil {
		return nil, err
	}
	var opts []codec.Option
	if c.Definitions != nil && c.Definitions.MaxNestingDepth > 0 {
		opts = append(opts, codec.WithMaxNestingDepth(c.Definitions.MaxNestingDepth))
	}
	if c.Signing != nil {
		prefixes, err := c.Signing.Prefixes()
		if err != nil {
			return nil, err
		}
		opts = append(opts, codec.WithSigningPrefixes(prefixes))
	}
	return codec.New(defs, opts...), nil
}
