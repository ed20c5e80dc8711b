package definitions

import (
	"encoding/json"
	"fmt"
)

// Dataset is the raw form of a definitions table as published by ledger
// servers (server_definitions) and shipped with client libraries.
// An overlay uses the same shape with every table optional.
type Dataset struct {
	Types              map[string]int `json:"TYPES,omitempty"`
	Fields             []FieldEntry   `json:"FIELDS,omitempty"`
	LedgerEntryTypes   map[string]int `json:"LEDGER_ENTRY_TYPES,omitempty"`
	TransactionTypes   map[string]int `json:"TRANSACTION_TYPES,omitempty"`
	TransactionResults map[string]int `json:"TRANSACTION_RESULTS,omitempty"`
}

// FieldEntry is one row of the FIELDS table.
type FieldEntry struct {
	Name           string
	Type           string
	Nth            int
	IsVLEncoded    bool
	IsSerialized   bool
	IsSigningField bool
	IsBase10       bool
}

type fieldInfo struct {
	Nth            int    `json:"nth"`
	IsVLEncoded    bool   `json:"isVLEncoded"`
	IsSerialized   bool   `json:"isSerialized"`
	IsSigningField bool   `json:"isSigningField"`
	IsBase10       bool   `json:"isBase10,omitempty"`
	Type           string `json:"type"`
}

// UnmarshalJSON decodes the ["Name", {...}] pair form.
func (e *FieldEntry) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: field entry must be a [name, info] pair", ErrDefinition)
	}
	var info fieldInfo
	if err := json.Unmarshal(pair[0], &e.Name); err != nil {
		return err
	}
	if err := json.Unmarshal(pair[1], &info); err != nil {
		return err
	}
	e.Type = info.Type
	e.Nth = info.Nth
	e.IsVLEncoded = info.IsVLEncoded
	e.IsSerialized = info.IsSerialized
	e.IsSigningField = info.IsSigningField
	e.IsBase10 = info.IsBase10
	return nil
}

// MarshalJSON encodes the ["Name", {...}] pair form.
func (e FieldEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{e.Name, fieldInfo{
		Nth:            e.Nth,
		IsVLEncoded:    e.IsVLEncoded,
		IsSerialized:   e.IsSerialized,
		IsSigningField: e.IsSigningField,
		IsBase10:       e.IsBase10,
		Type:           e.Type,
	}})
}

// ParseDataset decodes raw JSON into a dataset without validating it.
func ParseDataset(raw []byte) (*Dataset, error) {
	ds := new(Dataset)
	if err := json.Unmarshal(raw, ds); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDefinition, err)
	}
	return ds, nil
}

func (ds *Dataset) checkTables() error {
	switch {
	case ds.Types == nil:
		return fmt.Errorf("%w: missing TYPES table", ErrDefinition)
	case ds.Fields == nil:
		return fmt.Errorf("%w: missing FIELDS table", ErrDefinition)
	case ds.LedgerEntryTypes == nil:
		return fmt.Errorf("%w: missing LEDGER_ENTRY_TYPES table", ErrDefinition)
	case ds.TransactionTypes == nil:
		return fmt.Errorf("%w: missing TRANSACTION_TYPES table", ErrDefinition)
	case ds.TransactionResults == nil:
		return fmt.Errorf("%w: missing TRANSACTION_RESULTS table", ErrDefinition)
	}
	return nil
}

func mergeCodes(base, overlay map[string]int) map[string]int {
	merged := make(map[string]int, len(base)+len(overlay))
	for name, code := range base {
		merged[name] = code
	}
	for name, code := range overlay {
		merged[name] = code
	}
	return merged
}

// merge applies overlay on top of ds; overlay entries replace base entries
// with the same name and new names are appended in overlay order.
func (ds *Dataset) merge(overlay *Dataset) *Dataset {
	out := &Dataset{
		Types:              mergeCodes(ds.Types, overlay.Types),
		LedgerEntryTypes:   mergeCodes(ds.LedgerEntryTypes, overlay.LedgerEntryTypes),
		TransactionTypes:   mergeCodes(ds.TransactionTypes, overlay.TransactionTypes),
		TransactionResults: mergeCodes(ds.TransactionResults, overlay.TransactionResults),
		Fields:             make([]FieldEntry, 0, len(ds.Fields)+len(overlay.Fields)),
	}
	pos := make(map[string]int, len(ds.Fields))
	for _, f := range ds.Fields {
		pos[f.Name] = len(out.Fields)
		out.Fields = append(out.Fields, f)
	}
	for _, f := range overlay.Fields {
		if i, exist := pos[f.Name]; exist {
			out.Fields[i] = f
			continue
		}
		pos[f.Name] = len(out.Fields)
		out.Fields = append(out.Fields, f)
	}
	return out
}
