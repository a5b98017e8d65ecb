package gen

import (
	"text/template"
)

// fileTemplate renders one record's access layer. Every identifier comes
// from recordData so that records sharing a package never collide.
var fileTemplate = template.Must(template.New("field-accessor").Parse(fileTmpl))

const fileTmpl = `{{define "file" -}}
{{.Header}}

package {{.PackageName}}

import (
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}{{printf "%q" .Path}}
{{- end}}
)
{{template "metadata" .}}
{{template "fields" .}}
{{template "types" .}}
{{template "errors" .}}
{{template "accessors" .}}
{{template "swap" .}}
{{template "union" .}}
{{- end}}

{{define "metadata"}}
{{if .Comments}}// {{.N.StructInfo}} describes the fields of {{.N.Record}}.
{{end}}type {{.N.StructInfo}} struct {
	FieldNames []string
	FieldTypes []string
	StructName string
}

{{if .Comments}}// Metadata returns the field names and types of {{.N.Record}}.
{{end}}func (r *{{.N.Record}}) Metadata() {{.N.StructInfo}} {
	return {{.N.StructInfo}}{
		FieldNames: []string{ {{- range $i, $f := .Fields}}{{if $i}}, {{end}}{{printf "%q" $f.Name}}{{end -}} },
		FieldTypes: []string{ {{- range $i, $f := .Fields}}{{if $i}}, {{end}}{{printf "%q" $f.Type}}{{end -}} },
		StructName: {{printf "%q" .N.Record}},
	}
}
{{end}}

{{define "fields"}}
{{if .Comments}}// {{.N.Fields}} enumerates the fields of {{.N.Record}} in declaration order.
{{end}}type {{.N.Fields}} int

const (
{{- range $i, $f := .Fields}}
	{{$f.Const}}{{if eq $i 0}} {{$.N.Fields}} = iota{{end}}
{{- end}}
)

var {{.N.FieldNames}} = [...]string{ {{- range $i, $f := .Fields}}{{if $i}}, {{end}}{{printf "%q" $f.Name}}{{end -}} }

{{if .Comments}}// String returns the access name of the field.
{{end}}func (f {{.N.Fields}}) String() string {
	if !f.IsValid() {
		return {{.Fmt}}.Sprintf("{{.N.Fields}}(%d)", int(f))
	}

	return {{.N.FieldNames}}[f]
}

{{if .Comments}}// IsValid reports whether f is a field of {{.N.Record}}.
{{end}}func (f {{.N.Fields}}) IsValid() bool {
	return f >= 0 && int(f) < len({{.N.FieldNames}})
}

{{if .Comments}}// {{.N.FieldsValues}} returns every field of {{.N.Record}} in declaration order.
{{end}}func {{.N.FieldsValues}}() []{{.N.Fields}} {
	return []{{.N.Fields}}{ {{- range $i, $f := .Fields}}{{if $i}}, {{end}}{{$f.Const}}{{end -}} }
}

{{if .Comments}}// {{.N.ParseFields}} returns the field with the given access name.
{{end}}func {{.N.ParseFields}}(name string) ({{.N.Fields}}, error) {
	for i, n := range {{.N.FieldNames}} {
		if n == name {
			return {{.N.Fields}}(i), nil
		}
	}

	return 0, &{{.N.FieldError}}{Op: "parse", Field: name}
}
{{end}}

{{define "types"}}
{{if .Comments}}// {{.N.Types}} enumerates the distinct field types of {{.N.Record}}.
{{end}}type {{.N.Types}} int

const (
{{- range $i, $t := .Types}}
	{{$t.Const}}{{if eq $i 0}} {{$.N.Types}} = iota{{end}}
{{- end}}
)

var {{.N.TypeNames}} = [...]string{ {{- range $i, $t := .Types}}{{if $i}}, {{end}}{{printf "%q" $t.Tag}}{{end -}} }

var {{.N.TypeGoTypes}} = [...]string{ {{- range $i, $t := .Types}}{{if $i}}, {{end}}{{printf "%q" $t.Type}}{{end -}} }

{{if .Comments}}// String returns the type tag.
{{end}}func (t {{.N.Types}}) String() string {
	if t < 0 || int(t) >= len({{.N.TypeNames}}) {
		return {{.Fmt}}.Sprintf("{{.N.Types}}(%d)", int(t))
	}

	return {{.N.TypeNames}}[t]
}

{{if .Comments}}// GoType returns the type expression the tag stands for.
{{end}}func (t {{.N.Types}}) GoType() string {
	if t < 0 || int(t) >= len({{.N.TypeGoTypes}}) {
		return ""
	}

	return {{.N.TypeGoTypes}}[t]
}

{{if .Comments}}// {{.N.TypeList}} holds the type of each field, indexed by {{.N.Fields}}.
{{end}}var {{.N.TypeList}} = [{{len .Fields}}]{{.N.Types}}{ {{- range $i, $f := .Fields}}{{if $i}}, {{end}}{{$f.TypeConst}}{{end -}} }
{{end}}

{{define "errors"}}
{{if .Comments}}// {{.N.FieldError}} reports an access through a name that is not a field
// of the requested type. The record is left unchanged.
{{end}}type {{.N.FieldError}} struct {
	Op    string
	Field string
	Other string
}

func (e *{{.N.FieldError}}) Error() string {
	if e.Op == "swap" {
		return {{.Fmt}}.Sprintf("invalid field names to swap '%s' and '%s'", e.Field, e.Other)
	}

	return {{.Fmt}}.Sprintf("invalid field name to %s '%s'", e.Op, e.Field)
}
{{end}}

{{define "accessors"}}
{{if .Comments}}// {{.N.GetterSetter}} reads and writes the fields of {{.N.Record}} that have type {{.N.TypeParam}}.
{{end}}type {{.N.GetterSetter}}[{{.N.TypeParam}} any] interface {
{{- if .Comments}}
	// Get returns a copy of the field value.{{end}}
	Get(field string) ({{.N.TypeParam}}, error)
{{- if .Comments}}
	// GetMut returns a pointer to the field.{{end}}
	GetMut(field string) (*{{.N.TypeParam}}, error)
{{- if .Comments}}
	// Take returns the field value and resets the field to the zero value.{{end}}
	Take(field string) ({{.N.TypeParam}}, error)
{{- if .Comments}}
	// Replace stores src and returns the previous value.{{end}}
	Replace(field string, src {{.N.TypeParam}}) ({{.N.TypeParam}}, error)
{{- if .Comments}}
	// Set stores value.{{end}}
	Set(field string, value {{.N.TypeParam}}) error
}

type {{.N.Accessor}}[{{.N.TypeParam}} any] struct {
	rec    *{{.N.Record}}
	fields map[string]func(*{{.N.Record}}) *{{.N.TypeParam}}
}

func (a {{.N.Accessor}}[{{.N.TypeParam}}]) lookup(op, field string) (*{{.N.TypeParam}}, error) {
	if addr, ok := a.fields[field]; ok {
		return addr(a.rec), nil
	}

	return nil, &{{.N.FieldError}}{Op: op, Field: field}
}

func (a {{.N.Accessor}}[{{.N.TypeParam}}]) Get(field string) ({{.N.TypeParam}}, error) {
	p, err := a.lookup("get", field)
	if err != nil {
		var zero {{.N.TypeParam}}
		return zero, err
	}

	return *p, nil
}

func (a {{.N.Accessor}}[{{.N.TypeParam}}]) GetMut(field string) (*{{.N.TypeParam}}, error) {
	return a.lookup("get_mut", field)
}

func (a {{.N.Accessor}}[{{.N.TypeParam}}]) Take(field string) ({{.N.TypeParam}}, error) {
	var zero {{.N.TypeParam}}

	p, err := a.lookup("take", field)
	if err != nil {
		return zero, err
	}

	old := *p
	*p = zero

	return old, nil
}

func (a {{.N.Accessor}}[{{.N.TypeParam}}]) Replace(field string, src {{.N.TypeParam}}) ({{.N.TypeParam}}, error) {
	p, err := a.lookup("replace", field)
	if err != nil {
		var zero {{.N.TypeParam}}
		return zero, err
	}

	old := *p
	*p = src

	return old, nil
}

func (a {{.N.Accessor}}[{{.N.TypeParam}}]) Set(field string, value {{.N.TypeParam}}) error {
	p, err := a.lookup("set", field)
	if err != nil {
		return err
	}

	*p = value

	return nil
}
{{range .Types}}
var {{.Table}} = map[string]func(*{{$.N.Record}}) *{{.Type}}{
{{- range .Fields}}
	{{printf "%q" .Name}}: func(r *{{$.N.Record}}) *{{.Type}} { return &r.{{.Ident}} },
{{- end}}
}

{{if $.Comments}}// {{.Tag}} accesses the {{.Type}} fields of {{$.N.Record}} by name.
{{end}}func (r *{{$.N.Record}}) {{.Tag}}() {{$.N.GetterSetter}}[{{.Type}}] {
	return {{$.N.Accessor}}[{{.Type}}]{rec: r, fields: {{.Table}}}
}
{{end}}
{{- end}}

{{define "swap"}}
var {{.N.Swaps}} = map[[2]string]func(*{{.N.Record}}){
{{- range .Swaps}}
	{ {{- printf "%q" .A.Name}}, {{printf "%q" .B.Name -}} }: func(r *{{$.N.Record}}) { r.{{.A.Ident}}, r.{{.B.Ident}} = r.{{.B.Ident}}, r.{{.A.Ident}} },
{{- end}}
}

{{if .Comments}}// Swap exchanges the values of two distinct fields that have the same type.
{{end}}func (r *{{.N.Record}}) Swap(a, b string) error {
	if swap, ok := {{.N.Swaps}}[[2]string{a, b}]; ok {
		swap(r)
		return nil
	}

	return &{{.N.FieldError}}{Op: "swap", Field: a, Other: b}
}
{{end}}

{{define "union"}}
{{if .Comments}}// {{.N.FieldEnum}} holds the value of one field of {{.N.Record}}.
{{end}}type {{.N.FieldEnum}} interface {
{{- if .Comments}}
	// Field reports which field the value was read from.{{end}}
	Field() {{.N.Fields}}
	{{.N.EnumMarker}}()
}
{{range .Fields}}
{{if $.Comments}}// {{.Variant}} holds the value of field {{printf "%q" .Name}}.
{{end}}type {{.Variant}} struct {
	Value {{.Type}}
}

func ({{.Variant}}) Field() {{$.N.Fields}} { return {{.Const}} }

func ({{.Variant}}) {{$.N.EnumMarker}}() {}
{{end}}
var {{.N.FieldValues}} = map[string]func(*{{.N.Record}}) {{.N.FieldEnum}}{
{{- range .Fields}}
	{{printf "%q" .Name}}: func(r *{{$.N.Record}}) {{$.N.FieldEnum}} { return {{.Variant}}{Value: {{if .Clone}}{{.Clone}}(r.{{.Ident}}){{else}}r.{{.Ident}}{{end}}} },
{{- end}}
}

{{if .Comments}}// FieldValue returns a copy of the named field's current value.
{{end}}func (r *{{.N.Record}}) FieldValue(field string) ({{.N.FieldEnum}}, error) {
	if value, ok := {{.N.FieldValues}}[field]; ok {
		return value(r), nil
	}

	return nil, &{{.N.FieldError}}{Op: "field_value", Field: field}
}
{{end}}
`
