package report

import "errors"

// Validation errors. These are user input errors: reported with a clear
// message and a non-zero exit, but no state is written when they occur.
var (
	ErrInvalidRange = errors.New("invalid line range (start >= 1, end >= start)")
	ErrUnknownTag   = errors.New("unknown tag")
	ErrTagDisabled  = errors.New("tag is disabled in config")
	ErrEmptyMessage = errors.New("message must not be empty")
	ErrNotFound     = errors.New("report not found")
)

// Store errors
var (
	// ErrStoreCorrupt means the reports file exists but cannot be parsed.
	// It is fatal and never auto-repaired: the user is expected to inspect
	// the file or restore it from version control.
	ErrStoreCorrupt = errors.New("reports file is corrupt; inspect it or restore it from version control")
)
