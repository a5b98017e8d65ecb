// Package schema holds the parser-neutral record description, the
// validated record schema and the structures derived from it.
//
// A RecordDescription is what a parser hands over: a record name, a shape
// and an ordered list of (name, type expression) fields. Extract validates
// a description and returns an immutable Schema, rejecting every shape the
// generator cannot serve (unnamed fields, unit records, variants, unions,
// opaque and generic types).
//
// From a Schema the generator derives:
//   - DistinctTypes: field types de-duplicated by written expression, first-seen order
//   - Groups: the fields of each distinct type, partitioning the field set
//   - SwapPairs: ordered pairs of distinct same-typed fields, both orderings
package schema
