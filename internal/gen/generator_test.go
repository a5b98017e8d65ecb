package gen

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"field-accessor/internal/analyze"
	"field-accessor/internal/schema"
	"field-accessor/internal/typetag"
)

func record(t *testing.T, name string, imports []schema.Import, fields ...string) *schema.Schema {
	t.Helper()

	desc := schema.RecordDescription{Name: name, Imports: imports}
	for i := 0; i+2 < len(fields); i += 3 {
		desc.Fields = append(desc.Fields, schema.FieldDescription{Name: fields[i], Ident: fields[i+1], Type: fields[i+2]})
	}

	s, err := schema.Extract(desc)
	require.NoError(t, err)

	return s
}

func dog(t *testing.T) *schema.Schema {
	t.Helper()

	return record(t, "Dog", nil,
		"name", "Name", "string",
		"age", "Age", "uint32",
		"life_expectancy", "LifeExpectancy", "uint32",
	)
}

func generateOne(t *testing.T, cfg GeneratorConfig, req Request) string {
	t.Helper()

	files, err := NewGenerator(cfg, nil).Generate(req)
	require.NoError(t, err)
	require.Len(t, files, 1)

	if testing.Verbose() {
		t.Log(spew.Sdump(files[0].Filename, len(files[0].Content)))
	}

	_, err = parser.ParseFile(token.NewFileSet(), files[0].Filename, files[0].Content, parser.ParseComments)
	require.NoError(t, err, string(files[0].Content))

	return string(files[0].Content)
}

func TestGenerate_Dog(t *testing.T) {
	out := generateOne(t, DefaultGeneratorConfig(), Request{PackageName: "kennel", Records: []*schema.Schema{dog(t)}})

	assert.True(t, strings.HasPrefix(out, "// Code generated by field-accessor. DO NOT EDIT.\n"))
	assert.Contains(t, out, "package kennel")
	assert.Contains(t, out, `"fmt"`)
	assert.NotContains(t, out, `"slices"`)
	assert.NotContains(t, out, `"reflect"`)

	// metadata
	assert.Contains(t, out, "type DogStructInfo struct")
	assert.Contains(t, out, `FieldNames: []string{"name", "age", "life_expectancy"}`)
	assert.Contains(t, out, `FieldTypes: []string{"string", "uint32", "uint32"}`)
	assert.Contains(t, out, `StructName: "Dog"`)

	// field enum
	assert.Contains(t, out, "DogFieldsName DogFields = iota")
	assert.Contains(t, out, "DogFieldsLifeExpectancy")
	assert.Contains(t, out, "func ParseDogFields(name string) (DogFields, error)")
	assert.Contains(t, out, "func DogFieldsValues() []DogFields")

	// type enum and list
	assert.Contains(t, out, "DogTypeString DogTypes = iota")
	assert.Contains(t, out, `var _DogTypes_names = [...]string{"TypeString", "TypeUint32"}`)
	assert.Contains(t, out, "var DogTypeList = [3]DogTypes{DogTypeString, DogTypeUint32, DogTypeUint32}")

	// one table and selector per distinct type
	assert.Equal(t, 2, strings.Count(out, "var _Dog_fields_"))
	assert.Contains(t, out, "func (r *Dog) TypeString() DogGetterSetter[string]")
	assert.Contains(t, out, "func (r *Dog) TypeUint32() DogGetterSetter[uint32]")
	assert.Contains(t, out, `"life_expectancy": func(r *Dog) *uint32 { return &r.LifeExpectancy },`)
	assert.Equal(t, 1, strings.Count(out, "func (a _Dog_accessor[T]) Take("))

	// swap pairs in both orders, no self pairs
	assert.Contains(t, out, `{"age", "life_expectancy"}: func(r *Dog) { r.Age, r.LifeExpectancy = r.LifeExpectancy, r.Age },`)
	assert.Contains(t, out, `{"life_expectancy", "age"}: func(r *Dog) { r.LifeExpectancy, r.Age = r.Age, r.LifeExpectancy },`)
	assert.NotContains(t, out, `{"age", "age"}`)
	assert.NotContains(t, out, `{"name", "age"}`)

	// union
	assert.Contains(t, out, "type DogFieldEnumName struct")
	assert.Contains(t, out, "func (DogFieldEnumAge) Field() DogFields { return DogFieldsAge }")
	assert.Contains(t, out, "func (r *Dog) FieldValue(field string) (DogFieldEnum, error)")

	assert.Contains(t, out, `"invalid field name to %s '%s'"`)
}

func TestGenerate_Filename(t *testing.T) {
	g := NewGenerator(GeneratorConfig{}, nil)
	assert.Equal(t, "dog_fieldaccess.go", g.Filename("Dog"))
	assert.Equal(t, "kennel_entry_fieldaccess.go", g.Filename("KennelEntry"))

	g = NewGenerator(GeneratorConfig{FileSuffix: "_access.go"}, nil)
	assert.Equal(t, "http_server_access.go", g.Filename("HTTPServer"))
}

func TestGenerate_Deterministic(t *testing.T) {
	req := Request{PackageName: "kennel", Records: []*schema.Schema{dog(t)}}

	a, err := NewGenerator(DefaultGeneratorConfig(), nil).Generate(req)
	require.NoError(t, err)

	b, err := NewGenerator(DefaultGeneratorConfig(), nil).Generate(req)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerate_NoComments(t *testing.T) {
	out := generateOne(t, GeneratorConfig{}, Request{PackageName: "kennel", Records: []*schema.Schema{dog(t)}})

	assert.NotContains(t, out, "// DogFields enumerates")
	assert.NotContains(t, out, "// Get returns")
	assert.Contains(t, out, "type DogFields int")
}

func TestGenerate_PackageNameFallback(t *testing.T) {
	out := generateOne(t, GeneratorConfig{PackageName: "fallback"}, Request{Records: []*schema.Schema{dog(t)}})
	assert.Contains(t, out, "package fallback")

	_, err := NewGenerator(GeneratorConfig{}, nil).Generate(Request{Records: []*schema.Schema{dog(t)}})
	require.Error(t, err)
}

func TestGenerate_Imports(t *testing.T) {
	imports := []schema.Import{
		{Path: "time"},
		{Alias: "tz", Path: "time"},
		{Path: "gopkg.in/yaml.v3"},
		{Path: "net/http"},
	}

	s := record(t, "Walk", imports,
		"started", "Started", "time.Time",
		"zone", "Zone", "*tz.Location",
		"doc", "Doc", "yaml.Node",
		"tags", "Tags", "[]string",
		"counts", "Counts", "map[string]int",
	)

	out := generateOne(t, DefaultGeneratorConfig(), Request{PackageName: "kennel", Records: []*schema.Schema{s}})

	assert.Contains(t, out, "\t\"time\"\n")
	assert.Contains(t, out, "\ttz \"time\"\n")
	assert.Contains(t, out, "\tyaml \"gopkg.in/yaml.v3\"\n")
	assert.Contains(t, out, "\t\"slices\"\n")
	assert.Contains(t, out, "\t\"maps\"\n")
	assert.NotContains(t, out, "net/http")

	assert.Contains(t, out, "return WalkFieldEnumTags{Value: slices.Clone(r.Tags)}")
	assert.Contains(t, out, "return WalkFieldEnumCounts{Value: maps.Clone(r.Counts)}")
	assert.Contains(t, out, "return WalkFieldEnumStarted{Value: r.Started}")
	assert.Contains(t, out, "func (r *Walk) TypeTime_Time() WalkGetterSetter[time.Time]")
	assert.Contains(t, out, "func (r *Walk) TypeRefTz_Location() WalkGetterSetter[*tz.Location]")
}

func TestGenerate_ImportNameDiffersFromPath(t *testing.T) {
	imports := []schema.Import{{Path: "github.com/mattn/go-isatty", Name: "isatty"}}

	out := generateOne(t, DefaultGeneratorConfig(), Request{PackageName: "term", Records: []*schema.Schema{
		record(t, "Term", imports, "check", "Check", "func(isatty.Fd) bool"),
	}})
	assert.Contains(t, out, "\tisatty \"github.com/mattn/go-isatty\"\n")

	_, err := NewGenerator(DefaultGeneratorConfig(), nil).Generate(Request{
		PackageName: "term",
		Records: []*schema.Schema{
			record(t, "Term", []schema.Import{{Path: "github.com/mattn/go-isatty"}}, "check", "Check", "func(isatty.Fd) bool"),
		},
	})
	require.ErrorIs(t, err, ErrMissingImport)
}

func TestGenerate_StdlibAliases(t *testing.T) {
	imports := []schema.Import{{Alias: "maps", Path: "example.com/geo/maps"}}
	s := record(t, "Trip", imports,
		"route", "Route", "maps.Route",
		"stops", "Stops", "map[string]int",
	)

	req := Request{PackageName: "travel", Declared: []string{"fmt"}, Records: []*schema.Schema{s}}
	out := generateOne(t, DefaultGeneratorConfig(), req)

	assert.Contains(t, out, "\tstdfmt \"fmt\"\n")
	assert.Contains(t, out, "stdfmt.Sprintf(")
	assert.Contains(t, out, "\tstdmaps \"maps\"\n")
	assert.Contains(t, out, "stdmaps.Clone(r.Stops)")
	assert.Contains(t, out, "\t\"example.com/geo/maps\"\n")
}

func TestGenerate_FieldSuffixFallsBackToIdent(t *testing.T) {
	s := record(t, "Pet", nil,
		"first name", "FirstName", "string",
		"2nd", "Second", "string",
	)

	out := generateOne(t, DefaultGeneratorConfig(), Request{PackageName: "p", Records: []*schema.Schema{s}})

	assert.Contains(t, out, "PetFieldsFirstName")
	assert.Contains(t, out, "PetFieldEnumSecond")
	assert.Contains(t, out, `"first name": func(r *Pet) *string { return &r.FirstName },`)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		req    func(t *testing.T) Request
		target error
	}{
		{
			name: "missing import",
			req: func(t *testing.T) Request {
				return Request{PackageName: "p", Records: []*schema.Schema{record(t, "R", nil, "d", "D", "time.Duration")}}
			},
			target: ErrMissingImport,
		},
		{
			name: "tag collision",
			req: func(t *testing.T) Request {
				return Request{PackageName: "p", Records: []*schema.Schema{
					record(t, "R", nil, "a", "A", "[]int", "b", "B", "SliceOfInt"),
				}}
			},
			target: typetag.ErrTagCollision,
		},
		{
			name: "declared identifier",
			req: func(t *testing.T) Request {
				return Request{PackageName: "p", Declared: []string{"DogFields"}, Records: []*schema.Schema{dog(t)}}
			},
			target: ErrNameConflict,
		},
		{
			name: "record named like generated identifier",
			req: func(t *testing.T) Request {
				return Request{PackageName: "p", Records: []*schema.Schema{
					dog(t),
					record(t, "DogTypes", nil, "x", "X", "int"),
				}}
			},
			target: ErrNameConflict,
		},
		{
			name: "declared method",
			req: func(t *testing.T) Request {
				s, err := schema.Extract(schema.RecordDescription{
					Name:    "R",
					Methods: []string{"Swap"},
					Fields:  []schema.FieldDescription{{Name: "a", Type: "int"}},
				})
				require.NoError(t, err)

				return Request{PackageName: "p", Records: []*schema.Schema{s}}
			},
			target: ErrNameConflict,
		},
		{
			name: "field shadows selector method",
			req: func(t *testing.T) Request {
				return Request{PackageName: "p", Records: []*schema.Schema{record(t, "R", nil, "TypeInt", "TypeInt", "int")}}
			},
			target: ErrNameConflict,
		},
		{
			name: "duplicate variant name",
			req: func(t *testing.T) Request {
				return Request{PackageName: "p", Records: []*schema.Schema{
					record(t, "R", nil, "a_b", "A", "int", "aB", "B", "int"),
				}}
			},
			target: ErrNameConflict,
		},
		{
			name: "duplicate file name",
			req: func(t *testing.T) Request {
				return Request{PackageName: "p", Records: []*schema.Schema{
					record(t, "HTTPServer", nil, "a", "A", "int"),
					record(t, "HttpServer", nil, "a", "A", "int"),
				}}
			},
			target: ErrNameConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := NewGenerator(DefaultGeneratorConfig(), nil).Generate(tt.req(t))
			require.Error(t, err)
			assert.Nil(t, files)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
			assert.NotEmpty(t, errors.GetAllHints(err))
		})
	}
}

func TestGenerate_TwoRecordsDisjoint(t *testing.T) {
	cat := record(t, "Cat", nil, "name", "Name", "string", "lives", "Lives", "int")

	files, err := NewGenerator(DefaultGeneratorConfig(), nil).Generate(Request{
		PackageName: "kennel",
		Records:     []*schema.Schema{dog(t), cat},
	})
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "dog_fieldaccess.go", files[0].Filename)
	assert.Equal(t, "Dog", files[0].Record)
	assert.Equal(t, "cat_fieldaccess.go", files[1].Filename)
	assert.Contains(t, string(files[1].Content), "func (r *Cat) TypeString() CatGetterSetter[string]")
	assert.NotContains(t, string(files[1].Content), "Dog")
}

func TestGeneratePackage_ReportsEveryShapeError(t *testing.T) {
	pkg := &analyze.Package{
		Name: "p",
		Records: []schema.RecordDescription{
			{Name: "Empty", Shape: schema.ShapeUnit},
			{Name: "Shape", Shape: schema.ShapeVariant},
			{Name: "Ok", Fields: []schema.FieldDescription{{Name: "a", Type: "int"}}},
		},
	}

	files, err := NewGenerator(DefaultGeneratorConfig(), nil).GeneratePackage(pkg)
	require.Error(t, err)
	assert.Nil(t, files)
	assert.Contains(t, err.Error(), "Empty")
	assert.Contains(t, err.Error(), "Shape")
}

func TestGeneratePackage(t *testing.T) {
	pkg := &analyze.Package{
		Name:     "kennel",
		Declared: []string{"Dog", "NewDog"},
		Records: []schema.RecordDescription{{
			Name:   "Dog",
			Fields: []schema.FieldDescription{{Name: "name", Ident: "Name", Type: "string"}},
		}},
	}

	files, err := NewGenerator(DefaultGeneratorConfig(), nil).GeneratePackage(pkg)
	require.NoError(t, err)
	require.Len(t, files, 1)
	out := string(files[0].Content)
	assert.Contains(t, out, "var _Dog_swaps = map[[2]string]func(*Dog){")
	assert.NotContains(t, out, "}: func(r *Dog) {")
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	files := []GeneratedFile{{Filename: "a_fieldaccess.go", Content: []byte("package a\n")}}

	require.NoError(t, writeDebugUnformatted(dir, "a_fieldaccess.go", []byte("package a\nbroken")))
	require.FileExists(t, filepath.Join(dir, "a_fieldaccess.unformatted.go"))

	require.NoError(t, WriteFiles(files, dir))

	data, err := os.ReadFile(filepath.Join(dir, "a_fieldaccess.go"))
	require.NoError(t, err)
	assert.Equal(t, "package a\n", string(data))
	assert.NoFileExists(t, filepath.Join(dir, "a_fieldaccess.unformatted.go"))
}

func TestWriteDebugUnformatted_IgnoredByBuild(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeDebugUnformatted(dir, "x.go", []byte("package x\n")))

	data, err := os.ReadFile(filepath.Join(dir, "x.unformatted.go"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "//go:build ignore\n"))

	require.NoError(t, writeDebugUnformatted("", "x.go", nil))
}
