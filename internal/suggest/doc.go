// Package suggest ranks known names by similarity to a name that was not
// found, for "did you mean" hints.
//
// Names are compared after normalization: CamelCase, snake_case and
// kebab-case spellings of the same words compare equal.
package suggest
