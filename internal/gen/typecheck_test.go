package gen

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"

	"field-accessor/internal/analyze"
	"field-accessor/internal/schema"
)

const zooSource = `package zoo

import (
	"context"
	"strings"
	stdtime "time"
)

type Handler func(string) error

type Pair[K comparable, V any] struct {
	Key K
	Val V
}

type Zoo struct {
	Name  string
	Count int
	Ptr   *int
	Arr   [4]byte
	Ch    chan<- int
	Fn    func(int) (string, error)
	Str   interface{ String() string }
	Anon  struct{ X, Y int }
	When  stdtime.Time
	Dur   stdtime.Duration
	Ctx   context.Context
	H     Handler
	P     Pair[string, int]
	M     map[string][]int
	Any   any
	Err   error
	Sb    *strings.Builder
	Alias int
}
`

func zooSchema(t *testing.T) *schema.Schema {
	t.Helper()

	return record(t, "Zoo",
		[]schema.Import{{Path: "context"}, {Path: "strings"}, {Alias: "stdtime", Path: "time"}},
		"name", "Name", "string",
		"count", "Count", "int",
		"ptr", "Ptr", "*int",
		"arr", "Arr", "[4]byte",
		"ch", "Ch", "chan<- int",
		"fn", "Fn", "func(int) (string, error)",
		"str", "Str", "interface{ String() string }",
		"anon", "Anon", "struct{ X, Y int }",
		"when", "When", "stdtime.Time",
		"dur", "Dur", "stdtime.Duration",
		"ctx", "Ctx", "context.Context",
		"h", "H", "Handler",
		"p", "P", "Pair[string, int]",
		"m", "M", "map[string][]int",
		"any", "Any", "any",
		"err", "Err", "error",
		"sb", "Sb", "*strings.Builder",
		"alias", "Alias", "int",
	)
}

// typeCheck checks a generated file together with the source declaring
// its record.
func typeCheck(t *testing.T, name, source string, file GeneratedFile) *types.Package {
	t.Helper()

	fset := token.NewFileSet()

	src, err := parser.ParseFile(fset, name+".go", source, 0)
	require.NoError(t, err)

	generated, err := parser.ParseFile(fset, file.Filename, file.Content, 0)
	require.NoError(t, err)

	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}

	pkg, err := conf.Check(name, fset, []*ast.File{src, generated}, nil)
	require.NoError(t, err, string(file.Content))

	return pkg
}

func TestGenerate_TypeChecks(t *testing.T) {
	for _, comments := range []bool{true, false} {
		files, err := NewGenerator(GeneratorConfig{GenerateComments: comments}, nil).Generate(Request{
			PackageName: "zoo",
			Declared:    []string{"Handler", "Pair"},
			Records:     []*schema.Schema{zooSchema(t)},
		})
		require.NoError(t, err)
		require.Len(t, files, 1)

		pkg := typeCheck(t, "zoo", zooSource, files[0])

		zoo := pkg.Scope().Lookup("Zoo")
		require.NotNil(t, zoo)

		mset := types.NewMethodSet(types.NewPointer(zoo.Type()))
		for _, name := range []string{"Metadata", "Swap", "FieldValue", "TypeInt", "TypeStdtime_Time", "TypePairOfStringAndInt"} {
			assert.NotNil(t, mset.Lookup(pkg, name), name)
		}
	}
}

func TestGenerate_RecordNamedT(t *testing.T) {
	const source = `package letters

type T struct {
	A, B int
	Name string
}
`

	files, err := NewGenerator(DefaultGeneratorConfig(), nil).Generate(Request{
		PackageName: "letters",
		Records: []*schema.Schema{record(t, "T", nil,
			"a", "A", "int",
			"b", "B", "int",
			"name", "Name", "string",
		)},
	})
	require.NoError(t, err)
	require.Len(t, files, 1)

	out := string(files[0].Content)
	assert.Contains(t, out, "type TGetterSetter[V any] interface {")
	assert.Contains(t, out, "fields map[string]func(*T) *V")
	assert.NotContains(t, out, "[T any]")

	pkg := typeCheck(t, "letters", source, files[0])

	rec := pkg.Scope().Lookup("T")
	require.NotNil(t, rec)

	mset := types.NewMethodSet(types.NewPointer(rec.Type()))
	assert.NotNil(t, mset.Lookup(pkg, "TypeInt"))
	assert.NotNil(t, mset.Lookup(pkg, "Swap"))
}

func TestGenerate_TaggedStructFields(t *testing.T) {
	const source = "package rows\n\n" +
		"type Row struct {\n" +
		"\tPlain  struct{ X int }\n" +
		"\tTagged struct{ X int `json:\"x\"` }\n" +
		"\tOther  struct{ X int `json:\"x\"` }\n" +
		"}\n"

	files, err := NewGenerator(DefaultGeneratorConfig(), nil).Generate(Request{
		PackageName: "rows",
		Records: []*schema.Schema{record(t, "Row", nil,
			"plain", "Plain", "struct{ X int }",
			"tagged", "Tagged", "struct{ X int `json:\"x\"` }",
			"other", "Other", "struct{X int `json:\"x\"`}",
		)},
	})
	require.NoError(t, err)
	require.Len(t, files, 1)

	out := string(files[0].Content)
	assert.Contains(t, out, "func (r *Row) TypeStructOfXInt() RowGetterSetter[struct{ X int }]")
	assert.Contains(t, out, "func (r *Row) TypeStructOfXIntTaggedJsonx() RowGetterSetter[struct {")
	assert.Equal(t, 1, strings.Count(out, "TypeStructOfXIntTaggedJsonx() RowGetterSetter"))

	pkg := typeCheck(t, "rows", source, files[0])

	rec := pkg.Scope().Lookup("Row")
	require.NotNil(t, rec)

	mset := types.NewMethodSet(types.NewPointer(rec.Type()))
	assert.NotNil(t, mset.Lookup(pkg, "TypeStructOfXInt"))
	assert.NotNil(t, mset.Lookup(pkg, "TypeStructOfXIntTaggedJsonx"))
}

func TestGenerate_ExamplesTypeCheck(t *testing.T) {
	loader := analyze.NewLoader(analyze.Config{}, nil)

	patterns := []string{
		"field-accessor/examples/kennel",
		"field-accessor/examples/catalog",
		"field-accessor/internal/analyze/fixtures/warehouse",
	}

	pkgs, err := loader.Load(patterns...)
	require.NoError(t, err)
	require.Len(t, pkgs, len(patterns))

	overlay := make(map[string][]byte)

	for _, p := range pkgs {
		files, err := NewGenerator(DefaultGeneratorConfig(), nil).GeneratePackage(p)
		require.NoError(t, err)
		require.NotEmpty(t, files)

		for _, f := range files {
			overlay[filepath.Join(p.Dir, f.Filename)] = f.Content
		}
	}

	loaded, err := packages.Load(&packages.Config{
		Mode:    packages.NeedName | packages.NeedFiles | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
		Overlay: overlay,
	}, patterns...)
	require.NoError(t, err)

	for _, p := range loaded {
		var msgs []string
		for _, e := range p.Errors {
			msgs = append(msgs, e.Error())
		}

		assert.Empty(t, msgs, p.PkgPath)
	}
}
