// Package openapi turns form declarations written as OpenAPI 3 documents into
// form definitions: every POST operation with an object request body becomes
// a model.FormModel plus a validation.Schema. Standard keywords (required,
// minLength, maxLength, pattern, enum, format, minItems) map onto validation
// rules; x-formgen-* extensions carry labels, messages and file limits.
package openapi
