package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrDeclined is returned when the user chooses not to correct an
	// invalid submission.
	ErrDeclined = errors.New("tui: submission declined")
)
