package admin

import "errors"

var (
	// ErrInvalidInput marks validation failures on the submitted document.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDuplicateDriveID marks a Drive ID that is already catalogued.
	ErrDuplicateDriveID = errors.New("duplicate drive id")
)
