package gen

import (
	"field-accessor/internal/schema"
	"field-accessor/internal/typetag"
)

// typeData is one field group: a distinct type, its tag and the members
// its dispatch table maps.
type typeData struct {
	Tag    string // type tag, also the selector method name
	Const  string // type enum constant
	Type   string // canonical type expression
	Table  string // dispatch table variable
	Fields []fieldData
}

// buildGroups builds one accessor group per distinct type, in first-seen
// order. Each field lands in exactly one group.
func buildGroups(n recordNames, s *schema.Schema, tags *typetag.Tags, fields []fieldData) []typeData {
	groups := s.Groups()
	out := make([]typeData, len(groups))

	for i, g := range groups {
		tag := tags.Of(g.Type)
		td := typeData{
			Tag:   tag,
			Const: n.typeConst(tag),
			Type:  g.Type.Text,
			Table: n.table(tag),
		}

		for _, f := range g.Fields {
			td.Fields = append(td.Fields, fields[f.Index])
		}

		out[i] = td
	}

	return out
}
