package typetag

import (
	"go/ast"
	"go/token"
	"strings"
	"unicode"

	"field-accessor/internal/common"
	"field-accessor/internal/schema"
)

// Prefix is the fixed marker every tag starts with.
const Prefix = "Type"

// Derive returns the tag of a type expression.
func Derive(t schema.TypeExpr) string {
	return Prefix + body(t.Expr)
}

func body(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return common.UpperFirst(e.Name)

	case *ast.SelectorExpr:
		return body(e.X) + "_" + common.UpperFirst(e.Sel.Name)

	case *ast.ParenExpr:
		return body(e.X)

	case *ast.StarExpr:
		return "Ref" + body(e.X)

	case *ast.ArrayType:
		if e.Len == nil {
			return "SliceOf" + body(e.Elt)
		}

		return "ArrayOf" + body(e.Elt) + "Len" + body(e.Len)

	case *ast.Ellipsis:
		return "VariadicOf" + body(e.Elt)

	case *ast.MapType:
		return "MapOf" + body(e.Key) + "And" + body(e.Value)

	case *ast.ChanType:
		switch e.Dir {
		case ast.SEND:
			return "SendChanOf" + body(e.Value)
		case ast.RECV:
			return "RecvChanOf" + body(e.Value)
		default:
			return "ChanOf" + body(e.Value)
		}

	case *ast.IndexExpr:
		return body(e.X) + "Of" + body(e.Index)

	case *ast.IndexListExpr:
		return body(e.X) + "Of" + join(e.Indices)

	case *ast.FuncType:
		var sb strings.Builder
		sb.WriteString("Func")

		if params := fieldTypes(e.Params); len(params) > 0 {
			sb.WriteString("Of" + join(params))
		}

		if results := fieldTypes(e.Results); len(results) > 0 {
			sb.WriteString("Returns" + join(results))
		}

		return sb.String()

	case *ast.InterfaceType:
		if e.Methods == nil || len(e.Methods.List) == 0 {
			return "Interface"
		}

		return "InterfaceOf" + fieldWords(e.Methods)

	case *ast.StructType:
		if e.Fields == nil || len(e.Fields.List) == 0 {
			return "Struct"
		}

		return "StructOf" + fieldWords(e.Fields)

	case *ast.BasicLit:
		return sanitize(e.Value)

	case *ast.BinaryExpr:
		return body(e.X) + opWord(e.Op) + body(e.Y)

	case *ast.UnaryExpr:
		return opWord(e.Op) + body(e.X)

	default:
		return ""
	}
}

// fieldTypes expands a parameter list so that "a, b int" counts twice.
func fieldTypes(list *ast.FieldList) []ast.Expr {
	if list == nil {
		return nil
	}

	var out []ast.Expr
	for _, f := range list.List {
		n := max(len(f.Names), 1)
		for range n {
			out = append(out, f.Type)
		}
	}

	return out
}

// fieldWords renders struct fields and interface methods by name and type.
// A struct field tag is appended to the last name it applies to.
func fieldWords(list *ast.FieldList) string {
	var parts []string

	for _, f := range list.List {
		typ := body(f.Type)
		if len(f.Names) == 0 {
			parts = append(parts, typ+tagWord(f))
			continue
		}

		for _, name := range f.Names {
			if _, isMethod := f.Type.(*ast.FuncType); isMethod {
				// body(FuncType) starts with "Func"; a method reads "NameOf...".
				parts = append(parts, common.UpperFirst(name.Name)+strings.TrimPrefix(typ, "Func"))
				continue
			}

			parts = append(parts, common.UpperFirst(name.Name)+typ)
		}

		parts[len(parts)-1] += tagWord(f)
	}

	return strings.Join(parts, "And")
}

func tagWord(f *ast.Field) string {
	if f.Tag == nil {
		return ""
	}

	return "Tagged" + common.UpperFirst(sanitize(f.Tag.Value))
}

func join(exprs []ast.Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = body(e)
	}

	return strings.Join(parts, "And")
}

func opWord(op token.Token) string {
	switch op {
	case token.ADD:
		return "Plus"
	case token.SUB:
		return "Minus"
	case token.MUL:
		return "Times"
	case token.QUO:
		return "Div"
	case token.REM:
		return "Mod"
	case token.SHL:
		return "Shl"
	case token.SHR:
		return "Shr"
	case token.TILDE:
		return "Approx"
	default:
		return "Op"
	}
}

// sanitize keeps the identifier-safe runes of a literal.
func sanitize(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}
