package schema

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"github.com/cockroachdb/errors"
)

// TypeExpr is a field type in canonical written form.
//
// Two TypeExprs denote the same field type iff their Text is equal: identity
// is structural over the written expression, so "byte" and "uint8" are
// different types here even though the compiler treats them as one.
type TypeExpr struct {
	Text string   // canonical source text, e.g. "map[string][]int"
	Expr ast.Expr // parsed expression
}

// String returns the canonical text.
func (t TypeExpr) String() string {
	return t.Text
}

// ParseTypeExpr parses a Go type expression and canonicalises its text.
func ParseTypeExpr(src string) (TypeExpr, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return TypeExpr{}, errors.New("empty type expression")
	}

	expr, err := parser.ParseExpr(src)
	if err != nil {
		return TypeExpr{}, errors.Wrapf(err, "parsing type expression %q", src)
	}

	for {
		p, ok := expr.(*ast.ParenExpr)
		if !ok {
			break
		}

		expr = p.X
	}

	if err := checkTypeExpr(expr); err != nil {
		return TypeExpr{}, errors.Wrapf(err, "type expression %q", src)
	}

	return TypeExpr{Text: ExprString(expr), Expr: expr}, nil
}

// MustParseTypeExpr is ParseTypeExpr for literals known to be valid.
func MustParseTypeExpr(src string) TypeExpr {
	t, err := ParseTypeExpr(src)
	if err != nil {
		panic(err)
	}

	return t
}

// checkTypeExpr rejects expressions that cannot stand as a field type.
func checkTypeExpr(expr ast.Expr) error {
	switch e := expr.(type) {
	case *ast.Ident:
		if e.Name == "_" {
			return errors.New("blank identifier is not a type")
		}

		return nil

	case *ast.SelectorExpr:
		if _, ok := e.X.(*ast.Ident); !ok {
			return errors.Newf("unsupported qualified type %s", ExprString(e))
		}

		return nil

	case *ast.ParenExpr:
		return checkTypeExpr(e.X)

	case *ast.StarExpr:
		return checkTypeExpr(e.X)

	case *ast.ArrayType:
		return checkTypeExpr(e.Elt)

	case *ast.MapType:
		if err := checkTypeExpr(e.Key); err != nil {
			return err
		}

		return checkTypeExpr(e.Value)

	case *ast.ChanType:
		return checkTypeExpr(e.Value)

	case *ast.IndexExpr:
		if err := checkTypeExpr(e.X); err != nil {
			return err
		}

		return checkTypeExpr(e.Index)

	case *ast.IndexListExpr:
		if err := checkTypeExpr(e.X); err != nil {
			return err
		}

		for _, idx := range e.Indices {
			if err := checkTypeExpr(idx); err != nil {
				return err
			}
		}

		return nil

	case *ast.FuncType, *ast.StructType, *ast.InterfaceType:
		return nil

	default:
		return errors.Newf("%s is not a type", ExprString(expr))
	}
}

// PackageRefs returns the package qualifiers referenced by t, in order of
// first appearance ("time" for "map[string]time.Duration").
func (t TypeExpr) PackageRefs() []string {
	var refs []string
	seen := make(map[string]bool)

	ast.Inspect(t.Expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		if id, ok := sel.X.(*ast.Ident); ok && !seen[id.Name] {
			seen[id.Name] = true
			refs = append(refs, id.Name)
		}

		return false
	})

	return refs
}

// CloneKind reports how a value of this type is copied into a union variant.
type CloneKind int

const (
	CloneCopy  CloneKind = iota // plain assignment
	CloneSlice                  // slices.Clone
	CloneMap                    // maps.Clone
)

// CloneKind returns the clone strategy for t. Only literal slice and map
// types are cloned; named slice or map types are copied since their
// underlying type is not visible in the written expression.
func (t TypeExpr) CloneKind() CloneKind {
	switch e := t.Expr.(type) {
	case *ast.ArrayType:
		if e.Len == nil {
			return CloneSlice
		}
	case *ast.MapType:
		return CloneMap
	}

	return CloneCopy
}

// Pos formats a source position the way diagnostics print it.
func Pos(p token.Position) string {
	if !p.IsValid() {
		return ""
	}

	return p.String()
}
