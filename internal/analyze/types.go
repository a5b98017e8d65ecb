package analyze

import (
	"reflect"
	"slices"
	"strings"

	"field-accessor/internal/diagnostic"
	"field-accessor/internal/schema"
)

// DefaultTagKey is the struct tag key read for access names.
const DefaultTagKey = "access"

// DefaultMarker selects a type for generation when found in its doc comment.
const DefaultMarker = "fieldaccessor:generate"

// Package holds information about a loaded package.
type Package struct {
	Path  string // Import path
	Name  string // Package name
	Dir   string // Directory holding the sources
	Files []string
	// Generated lists files previously written by field-accessor. They are
	// not read.
	Generated []string
	// Declared holds top-level identifiers declared outside generated files.
	Declared []string
	// Records holds the selected types, in source order.
	Records []schema.RecordDescription
	// Diagnostics holds informational notes, such as excluded fields.
	Diagnostics diagnostic.Diagnostics
}

// Record returns the description of the named record.
func (p *Package) Record(name string) (schema.RecordDescription, bool) {
	i := slices.IndexFunc(p.Records, func(r schema.RecordDescription) bool { return r.Name == name })
	if i < 0 {
		return schema.RecordDescription{}, false
	}

	return p.Records[i], true
}

// FieldTag is the parsed value of the access struct tag.
type FieldTag struct {
	Name string // access key override, empty when absent
	Skip bool   // `access:"-"`
}

// ParseFieldTag reads key from a raw struct tag literal (with or without
// the surrounding back quotes).
func ParseFieldTag(raw, key string) FieldTag {
	raw = strings.Trim(raw, "`")

	value, ok := reflect.StructTag(raw).Lookup(key)
	if !ok {
		return FieldTag{}
	}

	name, _, _ := strings.Cut(value, ",")
	if name == "-" {
		return FieldTag{Skip: true}
	}

	return FieldTag{Name: strings.TrimSpace(name)}
}
