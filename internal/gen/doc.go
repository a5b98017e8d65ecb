// Package gen emits the by-name field access layer for validated records.
//
// Generation uses text/template + go/format and produces one file per
// record. For a record R the file declares:
//   - RStructInfo and (*R).Metadata: field names, field types, record name
//   - RFields: the field enumeration, with String, IsValid, Parse and Values
//   - RTypes and RTypeList: the distinct-type enumeration and the per-field type list
//   - RGetterSetter[T] with one generic implementation and one dispatch table
//     per distinct type, selected by a method named after the type tag
//   - (*R).Swap over a table of same-typed field pairs
//   - RFieldEnum and (*R).FieldValue: a sealed union with one variant per field
//   - RFieldError: the runtime error for names outside the requested group
//
// Generated code imports only the standard library.
package gen
