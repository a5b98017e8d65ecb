package schema

import (
	"bytes"
	"go/ast"
	"go/types"
)

// ExprString renders a type expression on one line. It matches
// types.ExprString except that struct field tags are kept, since a tag is
// part of a struct type's identity.
func ExprString(expr ast.Expr) string {
	var buf bytes.Buffer
	writeExpr(&buf, expr)

	return buf.String()
}

func writeExpr(buf *bytes.Buffer, expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Ident:
		buf.WriteString(e.Name)

	case *ast.Ellipsis:
		buf.WriteString("...")

		if e.Elt != nil {
			writeExpr(buf, e.Elt)
		}

	case *ast.BasicLit:
		buf.WriteString(e.Value)

	case *ast.ParenExpr:
		buf.WriteByte('(')
		writeExpr(buf, e.X)
		buf.WriteByte(')')

	case *ast.SelectorExpr:
		writeExpr(buf, e.X)
		buf.WriteByte('.')
		buf.WriteString(e.Sel.Name)

	case *ast.IndexExpr:
		writeExpr(buf, e.X)
		buf.WriteByte('[')
		writeExpr(buf, e.Index)
		buf.WriteByte(']')

	case *ast.IndexListExpr:
		writeExpr(buf, e.X)
		buf.WriteByte('[')
		writeExprList(buf, e.Indices)
		buf.WriteByte(']')

	case *ast.StarExpr:
		buf.WriteByte('*')
		writeExpr(buf, e.X)

	case *ast.UnaryExpr:
		buf.WriteString(e.Op.String())
		writeExpr(buf, e.X)

	case *ast.BinaryExpr:
		writeExpr(buf, e.X)
		buf.WriteString(" " + e.Op.String() + " ")
		writeExpr(buf, e.Y)

	case *ast.ArrayType:
		buf.WriteByte('[')

		if e.Len != nil {
			writeExpr(buf, e.Len)
		}

		buf.WriteByte(']')
		writeExpr(buf, e.Elt)

	case *ast.StructType:
		buf.WriteString("struct{")
		writeFieldList(buf, e.Fields.List, "; ", false)
		buf.WriteByte('}')

	case *ast.FuncType:
		buf.WriteString("func")
		writeSignature(buf, e)

	case *ast.InterfaceType:
		buf.WriteString("interface{")
		writeFieldList(buf, e.Methods.List, "; ", true)
		buf.WriteByte('}')

	case *ast.MapType:
		buf.WriteString("map[")
		writeExpr(buf, e.Key)
		buf.WriteByte(']')
		writeExpr(buf, e.Value)

	case *ast.ChanType:
		switch e.Dir {
		case ast.SEND:
			buf.WriteString("chan<- ")
		case ast.RECV:
			buf.WriteString("<-chan ")
		default:
			buf.WriteString("chan ")
		}

		writeExpr(buf, e.Value)

	default:
		types.WriteExpr(buf, expr)
	}
}

func writeSignature(buf *bytes.Buffer, sig *ast.FuncType) {
	buf.WriteByte('(')

	if sig.Params != nil {
		writeFieldList(buf, sig.Params.List, ", ", false)
	}

	buf.WriteByte(')')

	if sig.Results == nil || len(sig.Results.List) == 0 {
		return
	}

	buf.WriteByte(' ')

	if res := sig.Results.List; len(res) == 1 && len(res[0].Names) == 0 {
		writeExpr(buf, res[0].Type)
		return
	}

	buf.WriteByte('(')
	writeFieldList(buf, sig.Results.List, ", ", false)
	buf.WriteByte(')')
}

func writeFieldList(buf *bytes.Buffer, list []*ast.Field, sep string, iface bool) {
	for i, f := range list {
		if i > 0 {
			buf.WriteString(sep)
		}

		for j, n := range f.Names {
			if j > 0 {
				buf.WriteString(", ")
			}

			buf.WriteString(n.Name)
		}

		// Interface methods are written as name and signature.
		if sig, ok := f.Type.(*ast.FuncType); ok && iface && len(f.Names) > 0 {
			writeSignature(buf, sig)
			continue
		}

		if len(f.Names) > 0 {
			buf.WriteByte(' ')
		}

		writeExpr(buf, f.Type)

		if f.Tag != nil {
			buf.WriteByte(' ')
			buf.WriteString(f.Tag.Value)
		}
	}
}

func writeExprList(buf *bytes.Buffer, list []ast.Expr) {
	for i, e := range list {
		if i > 0 {
			buf.WriteString(", ")
		}

		writeExpr(buf, e)
	}
}
