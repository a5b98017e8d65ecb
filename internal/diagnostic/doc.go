// Package diagnostic provides structured errors and warnings for the
// field-accessor generator.
//
// Shape problems are collected across every record of a run so a single
// invocation reports all of them; any error diagnostic aborts generation.
//
// Key capabilities:
//   - Coded diagnostics (unnamed fields, unit records, variant shapes, ...)
//   - Record and field path attribution
//   - Suggestions attached to a diagnostic
//   - Conversion of the error set into a single error value
package diagnostic
