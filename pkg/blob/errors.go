package blob

import "errors"

var (
	// ErrInvalidKey is returned for keys that are empty, absolute, or escape
	// the store root.
	ErrInvalidKey = errors.New("blob: invalid key")

	ErrInvalidConfig = errors.New("blob: invalid configuration")
	ErrNilReader     = errors.New("blob: nil reader")
)
