package apierror

import "errors"

var (
	// ErrInvalidBase is returned when a class is registered with a base that
	// does not descend from Root.
	ErrInvalidBase = errors.New("apierror: base must descend from apierror.Root")

	// ErrEmptyName is returned when registering a class without a name.
	ErrEmptyName = errors.New("apierror: error name is empty")

	// ErrNilClass is returned when a nil class is added to a registry.
	ErrNilClass = errors.New("apierror: class is nil")

	// ErrClassFrozen is returned when a class attribute is changed after an
	// error of that class was created.
	ErrClassFrozen = errors.New("apierror: class attributes are immutable once raised")

	// ErrRegistryFrozen is returned when registering after Freeze.
	ErrRegistryFrozen = errors.New("apierror: registry is frozen")

	// ErrUnknownStatus is returned for a symbolic status code with no HTTP equivalent.
	ErrUnknownStatus = errors.New("apierror: unknown http status")
)
