package manifest

import (
	"slices"

	"field-accessor/internal/analyze"
	"field-accessor/internal/schema"
)

// FromPackage builds a description file from a loaded package. Imports
// shared by every record are hoisted to the file level.
func FromPackage(p *analyze.Package) *File {
	f := &File{
		Version:  CurrentVersion,
		Package:  p.Name,
		Declared: slices.Clone(p.Declared),
		Records:  make([]Record, 0, len(p.Records)),
	}

	shared := len(p.Records) > 0
	for _, r := range p.Records {
		if !slices.Equal(r.Imports, p.Records[0].Imports) {
			shared = false
			break
		}
	}

	if shared {
		f.Imports = toImports(p.Records[0].Imports)
	}

	for _, r := range p.Records {
		rec := Record{
			Name:       r.Name,
			Shape:      r.Shape,
			TypeParams: slices.Clone(r.TypeParams),
			Methods:    slices.Clone(r.Methods),
			Fields:     make([]Field, len(r.Fields)),
		}

		if !shared {
			rec.Imports = toImports(r.Imports)
		}

		for i, fd := range r.Fields {
			rec.Fields[i] = Field{Name: fd.Name, Ident: fd.Ident, Type: fd.Type}
			if fd.Ident == fd.Name {
				rec.Fields[i].Ident = ""
			}
		}

		f.Records = append(f.Records, rec)
	}

	return f
}

// ToPackage returns the package the file describes, in the form the loader
// produces.
func (f *File) ToPackage() *analyze.Package {
	p := &analyze.Package{
		Name:     f.Package,
		Declared: slices.Clone(f.Declared),
		Records:  make([]schema.RecordDescription, 0, len(f.Records)),
	}

	for _, r := range f.Records {
		imports := r.Imports
		if len(imports) == 0 {
			imports = f.Imports
		}

		desc := schema.RecordDescription{
			Name:       r.Name,
			Shape:      r.Shape,
			TypeParams: slices.Clone(r.TypeParams),
			Methods:    slices.Clone(r.Methods),
			Imports:    fromImports(imports),
			Fields:     make([]schema.FieldDescription, len(r.Fields)),
		}

		for i, fd := range r.Fields {
			ident := fd.Ident
			if ident == "" {
				ident = fd.Name
			}

			desc.Fields[i] = schema.FieldDescription{Name: fd.Name, Ident: ident, Type: fd.Type}
		}

		p.Records = append(p.Records, desc)
	}

	return p
}

func toImports(in []schema.Import) []Import {
	if len(in) == 0 {
		return nil
	}

	out := make([]Import, len(in))
	for i, imp := range in {
		out[i] = Import{Path: imp.Path, Alias: imp.Alias, Name: imp.Name}
	}

	return out
}

func fromImports(in []Import) []schema.Import {
	if len(in) == 0 {
		return nil
	}

	out := make([]schema.Import, len(in))
	for i, imp := range in {
		out[i] = schema.Import{Alias: imp.Alias, Path: imp.Path, Name: imp.Name}
	}

	return out
}
