package schema

// Import is a package import visible to the file declaring a record.
// "github.com/mattn/go-isatty" has Name "isatty".
type Import struct {
	Alias string // explicit name, empty when the package name is used
	Path  string
	Name  string // declared package name, set when the path suggests another
}

// FieldDescription is one field as the parser saw it.
type FieldDescription struct {
	// Name is the runtime access key. Empty for unnamed (embedded, blank) fields.
	Name string
	// Ident is the Go selector used in generated code. Defaults to Name.
	Ident string
	// Type is the written type expression.
	Type string
	// Pos is the source position, if known.
	Pos string
}

// RecordDescription is the parser-neutral description of a record type.
type RecordDescription struct {
	Name       string
	Shape      ShapeKind
	TypeParams []string
	Fields     []FieldDescription
	// Imports visible to the declaring file, used to qualify field types.
	Imports []Import
	// Methods already declared on the record.
	Methods []string
	Pos     string
}
