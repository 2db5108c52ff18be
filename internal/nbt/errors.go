package nbt

import "errors"

// Sentinel decode errors, wrapped with context via fmt.Errorf("%w", ...).
// Callers outside this package use errors.Is against these, matching the
// teacher's convention of wrapping stdlib/driver errors with %w rather than
// inventing bespoke error structs for every failure site.
var (
	ErrBadRootTag       = errors.New("nbt: root tag id is not Compound")
	ErrUnknownTagID      = errors.New("nbt: unknown tag id")
	ErrUnexpectedEndTag  = errors.New("nbt: End tag is not a value")
	ErrNegativeLength    = errors.New("nbt: negative array/list length")
)
