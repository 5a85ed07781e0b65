// Package validation evaluates declarative field schemas against submitted
// form values. A Schema is an immutable ordered set of FieldSchema entries,
// each carrying a list of Rule variants (Required, Length, Pattern, Email,
// OneOf, MinItems, Subset, FileConstraint). Validate interprets every field
// independently and returns a Result keyed by field name; a failing rule is
// data, never a Go error, so one bad field never hides another.
package validation
