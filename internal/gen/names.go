package gen

import (
	"fmt"
	"go/token"

	"github.com/cockroachdb/errors"

	"field-accessor/internal/common"
	"field-accessor/internal/schema"
)

// ErrNameConflict is wrapped when a generated identifier is already taken.
var ErrNameConflict = errors.New("generated name conflict")

// recordNames holds the package-level identifiers generated for a record.
// All of them start with the record name, or with "_<Record>" for the
// unexported ones, so two records never produce the same identifier unless
// one record's name is a prefix of another's.
type recordNames struct {
	Record       string
	TypeParam    string
	StructInfo   string
	Fields       string
	FieldNames   string
	FieldsValues string
	ParseFields  string
	Types        string
	TypeNames    string
	TypeGoTypes  string
	TypeList     string
	FieldError   string
	GetterSetter string
	Accessor     string
	Swaps        string
	FieldEnum    string
	EnumMarker   string
	FieldValues  string
}

func newRecordNames(record string) recordNames {
	// The accessor type parameter must not shadow the record.
	param := "T"
	if record == param {
		param = "V"
	}

	return recordNames{
		Record:       record,
		TypeParam:    param,
		StructInfo:   record + "StructInfo",
		Fields:       record + "Fields",
		FieldNames:   "_" + record + "Fields_names",
		FieldsValues: record + "FieldsValues",
		ParseFields:  "Parse" + record + "Fields",
		Types:        record + "Types",
		TypeNames:    "_" + record + "Types_names",
		TypeGoTypes:  "_" + record + "Types_goTypes",
		TypeList:     record + "TypeList",
		FieldError:   record + "FieldError",
		GetterSetter: record + "GetterSetter",
		Accessor:     "_" + record + "_accessor",
		Swaps:        "_" + record + "_swaps",
		FieldEnum:    record + "FieldEnum",
		EnumMarker:   "is" + record + "FieldEnum",
		FieldValues:  "_" + record + "_fieldValues",
	}
}

// fieldConst returns the field enum constant for a field.
func (n recordNames) fieldConst(f schema.Field) string {
	return n.Fields + fieldSuffix(f)
}

// variant returns the union variant type for a field.
func (n recordNames) variant(f schema.Field) string {
	return n.FieldEnum + fieldSuffix(f)
}

// typeConst returns the type enum constant for a tag.
func (n recordNames) typeConst(tag string) string {
	return n.Record + tag
}

// table returns the dispatch table variable for a tag.
func (n recordNames) table(tag string) string {
	return "_" + n.Record + "_fields_" + tag
}

// fieldSuffix is the PascalCase access name, or the Go identifier when the
// access name cannot form one.
func fieldSuffix(f schema.Field) string {
	if p := common.ToPascalCase(f.Name); token.IsIdentifier(p) {
		return p
	}

	return common.UpperFirst(f.Ident)
}

// packageLevel lists every package-level identifier of a record's file with
// a description used in conflict reports.
func (d *recordData) packageLevel() [][2]string {
	n := d.N
	ids := [][2]string{
		{n.StructInfo, "metadata type"},
		{n.Fields, "field enum type"},
		{n.FieldNames, "field name table"},
		{n.FieldsValues, "field enum values function"},
		{n.ParseFields, "field enum parser"},
		{n.Types, "type enum type"},
		{n.TypeNames, "type name table"},
		{n.TypeGoTypes, "type expression table"},
		{n.TypeList, "type list"},
		{n.FieldError, "error type"},
		{n.GetterSetter, "accessor interface"},
		{n.Accessor, "accessor implementation"},
		{n.Swaps, "swap table"},
		{n.FieldEnum, "field value union"},
		{n.FieldValues, "field value table"},
	}

	for _, f := range d.Fields {
		ids = append(ids,
			[2]string{f.Const, fmt.Sprintf("field enum constant for %q", f.Name)},
			[2]string{f.Variant, fmt.Sprintf("union variant for %q", f.Name)})
	}

	for _, t := range d.Types {
		ids = append(ids,
			[2]string{t.Const, "type enum constant for " + t.Type},
			[2]string{t.Table, "dispatch table for " + t.Type})
	}

	return ids
}

// methods lists the methods generated on the record itself.
func (d *recordData) methods() []string {
	out := []string{"Metadata", "Swap", "FieldValue"}
	for _, t := range d.Types {
		out = append(out, t.Tag)
	}

	return out
}

// registry tracks identifiers claimed across the records of one package.
type registry struct {
	declared map[string]bool
	owner    map[string]string // identifier -> record
	files    map[string]string // filename -> record
}

func newRegistry(declared map[string]bool) *registry {
	return &registry{
		declared: declared,
		owner:    make(map[string]string),
		files:    make(map[string]string),
	}
}

// claim reserves a record's identifiers, failing on the first conflict.
func (r *registry) claim(s *schema.Schema, d *recordData) error {
	if prev, ok := r.files[d.Filename]; ok {
		return conflict(s.Name, d.Filename, "output file of record "+prev)
	}

	local := make(map[string]string)

	for _, id := range d.packageLevel() {
		name, what := id[0], id[1]

		if prev, ok := local[name]; ok {
			return conflict(s.Name, name, prev+" and "+what)
		}

		if r.declared[name] {
			return conflict(s.Name, name, "a declaration in the package")
		}

		if prev, ok := r.owner[name]; ok {
			return conflict(s.Name, name, "a generated identifier of record "+prev)
		}

		local[name] = what
	}

	for _, m := range d.methods() {
		if s.HasFieldIdent(m) {
			return conflict(s.Name, m, "a field of "+s.Name)
		}

		if s.HasMethod(m) {
			return conflict(s.Name, m, "a method of "+s.Name)
		}
	}

	for name := range local {
		r.owner[name] = s.Name
	}

	r.files[d.Filename] = s.Name

	return nil
}

func conflict(record, name, with string) error {
	err := errors.Wrapf(ErrNameConflict, "record %s: %s conflicts with %s", record, name, with)

	return errors.WithHintf(err, "rename the conflicting declaration or field, or rename record %s", record)
}
