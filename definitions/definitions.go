// Package definitions loads and indexes the field, type and enumeration
// tables that drive the binary codec.
package definitions

import (
	_ "embed" // embed default definitions
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrDefinition is returned when a definitions table is structurally invalid.
var ErrDefinition = errors.New("invalid definitions")

// reserved field names
const (
	ObjectEndMarker = "ObjectEndMarker"
	ArrayEndMarker  = "ArrayEndMarker"
)

//go:embed definitions.json
var defaultDefinitions []byte

var (
	defaultOnce sync.Once
	defaultDefs *Definitions
)

// Field is an immutable field definition.
type Field struct {
	Name           string
	Type           string
	Header         FieldHeader
	IsVLEncoded    bool
	IsSerialized   bool
	IsSigningField bool
	IsBase10       bool
}

// Ordinal is the canonical sort key of the field.
func (f *Field) Ordinal() uint32 {
	return f.Header.Ordinal()
}

func (f *Field) String() string {
	return f.Name
}

type enum struct {
	byName map[string]int
	byCode map[int]string
}

func newEnum(table string, codes map[string]int) (*enum, error) {
	e := &enum{
		byName: make(map[string]int, len(codes)),
		byCode: make(map[int]string, len(codes)),
	}
	for name, code := range codes {
		if other, exist := e.byCode[code]; exist {
			return nil, fmt.Errorf("%w: %v code %v shared by %v and %v", ErrDefinition, table, code, other, name)
		}
		e.byName[name] = code
		e.byCode[code] = name
	}
	return e, nil
}

// Definitions is an immutable registry of fields, types and enumerations.
// A Definitions value is safe for concurrent use.
type Definitions struct {
	dataset *Dataset

	typeCodes map[string]int
	typeNames map[int]string
	fields    map[string]*Field
	headers   map[FieldHeader]*Field

	ledgerEntryTypes   *enum
	transactionTypes   *enum
	transactionResults *enum
}

// Default returns the registry built from the embedded definitions table.
func Default() *Definitions {
	defaultOnce.Do(func() {
		defs, err := Load(defaultDefinitions)
		if err != nil {
			panic(fmt.Sprintf("embedded definitions: %v", err))
		}
		defaultDefs = defs
	})
	return defaultDefs
}

// DefaultJSON returns a copy of the embedded definitions table.
func DefaultJSON() []byte {
	return append([]byte(nil), defaultDefinitions...)
}

// Load builds a registry from a raw definitions table.
func Load(raw []byte) (*Definitions, error) {
	ds, err := ParseDataset(raw)
	if err != nil {
		return nil, err
	}
	return New(ds)
}

// New builds a registry from a parsed dataset.
func New(ds *Dataset) (*Definitions, error) {
	if err := ds.checkTables(); err != nil {
		return nil, err
	}
	defs := &Definitions{
		dataset:   ds,
		typeCodes: make(map[string]int, len(ds.Types)),
		typeNames: make(map[int]string, len(ds.Types)),
		fields:    make(map[string]*Field, len(ds.Fields)),
		headers:   make(map[FieldHeader]*Field, len(ds.Fields)),
	}
	for name, code := range ds.Types {
		if other, exist := defs.typeNames[code]; exist {
			return nil, fmt.Errorf("%w: type code %v shared by %v and %v", ErrDefinition, code, other, name)
		}
		defs.typeCodes[name] = code
		defs.typeNames[code] = name
	}
	for _, entry := range ds.Fields {
		if err := defs.addField(entry); err != nil {
			return nil, err
		}
	}
	var err error
	if defs.ledgerEntryTypes, err = newEnum("LEDGER_ENTRY_TYPES", ds.LedgerEntryTypes); err != nil {
		return nil, err
	}
	if defs.transactionTypes, err = newEnum("TRANSACTION_TYPES", ds.TransactionTypes); err != nil {
		return nil, err
	}
	if defs.transactionResults, err = newEnum("TRANSACTION_RESULTS", ds.TransactionResults); err != nil {
		return nil, err
	}
	return defs, nil
}

func (defs *Definitions) addField(entry FieldEntry) error {
	if entry.Name == "" {
		return fmt.Errorf("%w: field with empty name", ErrDefinition)
	}
	if _, exist := defs.fields[entry.Name]; exist {
		return fmt.Errorf("%w: duplicate field name %v", ErrDefinition, entry.Name)
	}
	typeCode, exist := defs.typeCodes[entry.Type]
	if !exist {
		return fmt.Errorf("%w: field %v has unknown type %v", ErrDefinition, entry.Name, entry.Type)
	}
	field := &Field{
		Name:           entry.Name,
		Type:           entry.Type,
		Header:         FieldHeader{TypeCode: typeCode, FieldCode: entry.Nth},
		IsVLEncoded:    entry.IsVLEncoded,
		IsSerialized:   entry.IsSerialized,
		IsSigningField: entry.IsSigningField,
		IsBase10:       entry.IsBase10,
	}
	if field.IsSerialized {
		if typeCode < 1 || typeCode > 255 || entry.Nth < 1 || entry.Nth > 255 {
			return fmt.Errorf("%w: serialized field %v has out of range codes (%v, %v)",
				ErrDefinition, entry.Name, typeCode, entry.Nth)
		}
		if other, exist := defs.headers[field.Header]; exist {
			return fmt.Errorf("%w: fields %v and %v share codes (%v, %v)",
				ErrDefinition, other.Name, entry.Name, typeCode, entry.Nth)
		}
		defs.headers[field.Header] = field
	}
	defs.fields[entry.Name] = field
	return nil
}

// Extend returns a new registry with overlay applied on top of defs.
// Overlay entries win on name collision; defs itself is left untouched.
func (defs *Definitions) Extend(overlay *Dataset) (*Definitions, error) {
	if overlay == nil {
		return defs, nil
	}
	return New(defs.dataset.merge(overlay))
}

// ExtendJSON is Extend with a raw JSON overlay.
func (defs *Definitions) ExtendJSON(raw []byte) (*Definitions, error) {
	overlay, err := ParseDataset(raw)
	if err != nil {
		return nil, err
	}
	return defs.Extend(overlay)
}

// FieldByName looks up a field by its name.
func (defs *Definitions) FieldByName(name string) (*Field, bool) {
	f, exist := defs.fields[name]
	return f, exist
}

// FieldByHeader looks up a serialized field by its wire codes.
func (defs *Definitions) FieldByHeader(h FieldHeader) (*Field, bool) {
	f, exist := defs.headers[h]
	return f, exist
}

// FieldByCode looks up a serialized field by type code and field code.
func (defs *Definitions) FieldByCode(typeCode, fieldCode int) (*Field, bool) {
	return defs.FieldByHeader(FieldHeader{TypeCode: typeCode, FieldCode: fieldCode})
}

// Fields returns all serialized fields in canonical order.
func (defs *Definitions) Fields() []*Field {
	fields := make([]*Field, 0, len(defs.headers))
	for _, f := range defs.headers {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Ordinal() < fields[j].Ordinal()
	})
	return fields
}

// TypeCode returns the code of a serialized type.
func (defs *Definitions) TypeCode(name string) (int, bool) {
	code, exist := defs.typeCodes[name]
	return code, exist
}

// TypeName returns the name of a serialized type code.
func (defs *Definitions) TypeName(code int) (string, bool) {
	name, exist := defs.typeNames[code]
	return name, exist
}

// LedgerEntryTypeCode returns the code of a ledger entry type name.
func (defs *Definitions) LedgerEntryTypeCode(name string) (int, bool) {
	code, exist := defs.ledgerEntryTypes.byName[name]
	return code, exist
}

// LedgerEntryTypeName returns the name of a ledger entry type code.
func (defs *Definitions) LedgerEntryTypeName(code int) (string, bool) {
	name, exist := defs.ledgerEntryTypes.byCode[code]
	return name, exist
}

// TransactionTypeCode returns the code of a transaction type name.
func (defs *Definitions) TransactionTypeCode(name string) (int, bool) {
	code, exist := defs.transactionTypes.byName[name]
	return code, exist
}

// TransactionTypeName returns the name of a transaction type code.
func (defs *Definitions) TransactionTypeName(code int) (string, bool) {
	name, exist := defs.transactionTypes.byCode[code]
	return name, exist
}

// TransactionResultCode returns the code of a transaction result name.
func (defs *Definitions) TransactionResultCode(name string) (int, bool) {
	code, exist := defs.transactionResults.byName[name]
	return code, exist
}

// TransactionResultName returns the name of a transaction result code.
func (defs *Definitions) TransactionResultName(code int) (string, bool) {
	name, exist := defs.transactionResults.byCode[code]
	return name, exist
}
