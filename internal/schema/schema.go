package schema

import (
	"slices"

	"field-accessor/internal/common"
)

// Field is a validated record field.
type Field struct {
	Name  string // access key
	Ident string // Go selector
	Type  TypeExpr
	Index int // position in declaration order
}

// Schema is a validated record description. It is immutable once built.
type Schema struct {
	Name    string
	Fields  []Field
	Imports []Import
	Methods []string
	Pos     string
}

// Group is the set of fields sharing one distinct type.
type Group struct {
	Type   TypeExpr
	Fields []Field
}

// FieldNames returns the access keys of the group's members.
func (g Group) FieldNames() []string {
	names := make([]string, len(g.Fields))
	for i, f := range g.Fields {
		names[i] = f.Name
	}

	return names
}

// SwapPair is an ordered pair of distinct same-typed fields.
type SwapPair struct {
	A, B Field
}

// FieldCount returns the number of fields.
func (s *Schema) FieldCount() int {
	return len(s.Fields)
}

// FieldNames returns the access keys in declaration order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}

	return names
}

// FieldTypes returns the canonical type texts in declaration order.
func (s *Schema) FieldTypes() []string {
	out := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = f.Type.Text
	}

	return out
}

// Lookup returns the field with the given access key.
func (s *Schema) Lookup(name string) (Field, bool) {
	i := slices.IndexFunc(s.Fields, func(f Field) bool { return f.Name == name })
	if i < 0 {
		return Field{}, false
	}

	return s.Fields[i], true
}

// DistinctTypes returns the field types de-duplicated by canonical text, in
// first-seen order.
func (s *Schema) DistinctTypes() []TypeExpr {
	all := make([]TypeExpr, len(s.Fields))
	for i, f := range s.Fields {
		all[i] = f.Type
	}

	return common.Dedup(all, func(t TypeExpr) string { return t.Text })
}

// Groups partitions the fields by distinct type, in DistinctTypes order.
func (s *Schema) Groups() []Group {
	distinct := s.DistinctTypes()
	groups := make([]Group, len(distinct))
	index := make(map[string]int, len(distinct))

	for i, t := range distinct {
		groups[i].Type = t
		index[t.Text] = i
	}

	for _, f := range s.Fields {
		g := &groups[index[f.Type.Text]]
		g.Fields = append(g.Fields, f)
	}

	return groups
}

// SwapPairs returns every ordered pair (a, b) of distinct fields with the
// same type. For each outer field in declaration order, its partners follow
// in declaration order, so both (a, b) and (b, a) are present.
func (s *Schema) SwapPairs() []SwapPair {
	var pairs []SwapPair

	for _, a := range s.Fields {
		for _, b := range s.Fields {
			if a.Name == b.Name || a.Type.Text != b.Type.Text {
				continue
			}

			pairs = append(pairs, SwapPair{A: a, B: b})
		}
	}

	return pairs
}

// ImportFor resolves a package qualifier used in a field type. An import
// without Alias or Name is matched by the name its path suggests.
func (s *Schema) ImportFor(qualifier string) (Import, bool) {
	for _, imp := range s.Imports {
		alias := imp.Alias
		if alias == "" {
			alias = imp.Name
		}

		if alias == "" {
			alias = common.PkgAlias(imp.Path)
		}

		if alias == qualifier {
			return imp, true
		}
	}

	return Import{}, false
}

// HasMethod reports whether the record already declares the method.
func (s *Schema) HasMethod(name string) bool {
	return slices.Contains(s.Methods, name)
}

// HasFieldIdent reports whether a field uses the Go identifier.
func (s *Schema) HasFieldIdent(ident string) bool {
	return slices.ContainsFunc(s.Fields, func(f Field) bool { return f.Ident == ident })
}
