package schema

import (
	"fmt"
	"go/token"

	"github.com/cockroachdb/errors"

	"field-accessor/internal/diagnostic"
)

// ErrUnsupportedShape is wrapped by every ShapeError.
var ErrUnsupportedShape = errors.New("unsupported record shape")

// ShapeError reports why a description cannot produce an accessor surface.
type ShapeError struct {
	Code   string // diagnostic code
	Record string
	Field  string // field access key or position, if the problem is field-local
	Pos    string
	Reason string
}

// Error implements error.
func (e *ShapeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s.%s: %s", e.Record, e.Field, e.Reason)
	}

	return fmt.Sprintf("%s: %s", e.Record, e.Reason)
}

// Unwrap returns ErrUnsupportedShape.
func (e *ShapeError) Unwrap() error {
	return ErrUnsupportedShape
}

// Diagnostic converts the error into an error diagnostic.
func (e *ShapeError) Diagnostic() diagnostic.Diagnostic {
	d := diagnostic.Diagnostic{
		Severity: diagnostic.DiagnosticError,
		Code:     e.Code,
		Message:  e.Reason,
		Record:   e.Record,
		Pos:      e.Pos,
	}
	if e.Field != "" {
		d.FieldPath = e.Record + "." + e.Field
	}

	return d
}

// Extract validates a description and builds its Schema. The first problem
// found is returned; use ExtractAll to collect every problem.
func Extract(desc RecordDescription) (*Schema, error) {
	s, problems := extract(desc)
	if len(problems) > 0 {
		return nil, problems[0]
	}

	return s, nil
}

// ExtractAll validates every description. Schemas are returned only for
// valid descriptions; every problem becomes an error diagnostic. Callers must
// treat any error diagnostic as fatal for the whole run.
func ExtractAll(descs []RecordDescription) ([]*Schema, diagnostic.Diagnostics) {
	var (
		out   []*Schema
		diags diagnostic.Diagnostics
	)

	for _, desc := range descs {
		s, problems := extract(desc)
		for _, p := range problems {
			diags.Add(p.Diagnostic())
		}

		if len(problems) == 0 {
			out = append(out, s)
		}
	}

	return out, diags
}

func extract(desc RecordDescription) (*Schema, []*ShapeError) {
	var problems []*ShapeError

	fail := func(code, field, pos, format string, args ...any) {
		problems = append(problems, &ShapeError{
			Code:   code,
			Record: desc.Name,
			Field:  field,
			Pos:    pos,
			Reason: fmt.Sprintf(format, args...),
		})
	}

	if !token.IsIdentifier(desc.Name) || desc.Name == "_" {
		fail(diagnostic.CodeInvalidName, "", desc.Pos, "record name %q is not a Go identifier", desc.Name)
		return nil, problems
	}

	switch desc.Shape {
	case ShapeNamed:
	case ShapeVariant, ShapeUnion:
		fail(diagnostic.CodeUnsupportedShape, "", desc.Pos,
			"%s types are not supported; only records with named fields are", desc.Shape)
		return nil, problems
	case ShapeOpaque:
		fail(diagnostic.CodeUnsupportedShape, "", desc.Pos, "not a record type; only records with named fields are supported")
		return nil, problems
	case ShapeUnit:
		fail(diagnostic.CodeUnitRecord, "", desc.Pos, "records without fields are not supported")
		return nil, problems
	case ShapeUnnamed:
		// Unnamed fields are reported one by one below.
		if !hasUnnamedField(desc.Fields) {
			fail(diagnostic.CodeUnnamedField, "", desc.Pos, "records with unnamed fields are not supported")
			return nil, problems
		}
	default:
		fail(diagnostic.CodeUnsupportedShape, "", desc.Pos, "unknown shape %s", desc.Shape)
		return nil, problems
	}

	if len(desc.TypeParams) > 0 {
		fail(diagnostic.CodeGenericRecord, "", desc.Pos, "generic records are not supported")
	}

	if len(desc.Fields) == 0 {
		fail(diagnostic.CodeUnitRecord, "", desc.Pos, "records without fields are not supported")
		return nil, problems
	}

	s := &Schema{
		Name:    desc.Name,
		Fields:  make([]Field, 0, len(desc.Fields)),
		Imports: desc.Imports,
		Methods: desc.Methods,
		Pos:     desc.Pos,
	}

	names := make(map[string]bool, len(desc.Fields))
	idents := make(map[string]bool, len(desc.Fields))

	for i, fd := range desc.Fields {
		if fd.Name == "" {
			fail(diagnostic.CodeUnnamedField, fmt.Sprintf("#%d", i), fd.Pos,
				"unnamed field of type %s is not supported", fd.Type)
			continue
		}

		ident := fd.Ident
		if ident == "" {
			ident = fd.Name
		}

		if !token.IsIdentifier(ident) || ident == "_" {
			fail(diagnostic.CodeInvalidName, fd.Name, fd.Pos, "field identifier %q is not a Go identifier", ident)
			continue
		}

		if names[fd.Name] {
			fail(diagnostic.CodeDuplicateField, fd.Name, fd.Pos, "duplicate field name %q", fd.Name)
			continue
		}

		if idents[ident] {
			fail(diagnostic.CodeDuplicateField, fd.Name, fd.Pos, "duplicate field identifier %q", ident)
			continue
		}

		typ, err := ParseTypeExpr(fd.Type)
		if err != nil {
			fail(diagnostic.CodeInvalidType, fd.Name, fd.Pos, "%v", err)
			continue
		}

		names[fd.Name] = true
		idents[ident] = true

		s.Fields = append(s.Fields, Field{
			Name:  fd.Name,
			Ident: ident,
			Type:  typ,
			Index: len(s.Fields),
		})
	}

	return s, problems
}

func hasUnnamedField(fields []FieldDescription) bool {
	for _, f := range fields {
		if f.Name == "" {
			return true
		}
	}

	return false
}
