package manifest

import (
	"field-accessor/internal/schema"
)

// CurrentVersion is the only supported description file version.
const CurrentVersion = "1"

// File is the root of a description file.
type File struct {
	Version string   `yaml:"version"`
	Package string   `yaml:"package"`
	Imports []Import `yaml:"imports,omitempty"`
	// Declared lists package-level identifiers the generated code must not reuse.
	Declared []string `yaml:"declared,omitempty"`
	Records  []Record `yaml:"records"`
}

// Import is a package import visible to the records.
type Import struct {
	Path  string `yaml:"path"`
	Alias string `yaml:"alias,omitempty"`
	Name  string `yaml:"name,omitempty"`
}

// Record describes one record type.
type Record struct {
	Name       string           `yaml:"name"`
	Shape      schema.ShapeKind `yaml:"shape,omitempty"`
	TypeParams []string         `yaml:"type_params,omitempty"`
	Imports    []Import         `yaml:"imports,omitempty"`
	Methods    []string         `yaml:"methods,omitempty"`
	Fields     []Field          `yaml:"fields"`
}

// Field describes one record field.
type Field struct {
	Name  string `yaml:"name"`
	Ident string `yaml:"ident,omitempty"`
	Type  string `yaml:"type"`
}
