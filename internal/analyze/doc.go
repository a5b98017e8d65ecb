// Package analyze loads Go packages and describes the record types the
// generator should augment.
//
// It uses golang.org/x/tools/go/packages to resolve package patterns and
// parse their files. No type checking happens: field types are taken as
// written, which is the identity the generator groups by, and a stale
// generated file cannot prevent regeneration.
//
// A type is selected when it is named explicitly or carries the marker
// comment (by default "//fieldaccessor:generate") in its doc comment.
//
// Key types:
//   - Package: a loaded package with its selected record descriptions
//   - Loader: pattern loading and record extraction
//   - FieldTag: the parsed "access" struct tag
package analyze
