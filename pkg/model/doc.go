// Package model describes forms for presentation: titles, labels, input
// kinds and selectable options. Validation lives in pkg/validation; a
// FormModel only mirrors the schema's field names so renderers can lay out
// inputs and attach messages returned by a validation pass.
package model
