// Package forms binds a presentational model.FormModel to a validation
// schema and a completion handler. Submit validates every field and calls the
// handler exactly once when the input is valid; State tracks the values of a
// single form instance, including files injected explicitly on selection.
//
// Two reference forms ship with the package: the generic profile form
// (name, email, image, gender, technologies) and the login form (mobile,
// passcode).
package forms
