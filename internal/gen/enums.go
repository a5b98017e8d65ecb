package gen

import (
	"field-accessor/internal/schema"
	"field-accessor/internal/typetag"
)

// fieldData describes one field for the enum, metadata and union sections.
type fieldData struct {
	Name      string // access key
	Ident     string // Go selector
	Type      string // canonical type expression
	Const     string // field enum constant
	Variant   string // union variant type
	TypeConst string // type enum constant of the field's type
	Clone     string // clone function for the union value, empty to copy
}

// buildFields describes the fields in declaration order.
func buildFields(n recordNames, s *schema.Schema, tags *typetag.Tags, imports *importSet) []fieldData {
	fields := make([]fieldData, len(s.Fields))

	for i, f := range s.Fields {
		fd := fieldData{
			Name:      f.Name,
			Ident:     f.Ident,
			Type:      f.Type.Text,
			Const:     n.fieldConst(f),
			Variant:   n.variant(f),
			TypeConst: n.typeConst(tags.Of(f.Type)),
		}

		switch f.Type.CloneKind() {
		case schema.CloneSlice:
			fd.Clone = imports.slices + ".Clone"
		case schema.CloneMap:
			fd.Clone = imports.maps + ".Clone"
		case schema.CloneCopy:
		}

		fields[i] = fd
	}

	return fields
}
