// Package apierror provides the error taxonomy used by JSON APIs: named,
// status-coded error classes, a process-wide registry, and a single helper
// for raising any error kind by its symbolic name.
//
// # Classes and Errors
//
// A *Class describes one error kind. It carries a lookup key, a public wire
// name and an HTTP status. Classes compose: a class created from a base reads
// any attribute it does not set itself from that base, all the way down to
// Root. Errors raised at request time are *Error values bound to a class plus
// an instance-level Context used for message interpolation and response
// metadata.
//
//	err := apierror.Raise("not_found", "user not found", apierror.Context{
//		"id":       42,
//		"metadata": map[string]any{"resource": "user"},
//	})
//	err.Name()       // "not_found"
//	err.HTTPStatus() // 404
//
// # Registry
//
// The default registry is populated during package initialization with
// throttled, unauthenticated, invalid_version, not_implemented, not_found,
// bad_request, conflict, forbidden and invalid_resource. Applications add
// their own kinds at startup:
//
//	var PaymentRequired = apierror.MustRegister("payment_required",
//		apierror.WithStatusName("payment_required"),
//	)
//
// Raising a name that is not registered falls back to Root, so any symbolic
// name can be raised and renders as a generic 400 "unknown" error.
//
// Call Default().Freeze() once initialization is complete; registration
// after that point fails with ErrRegistryFrozen.
//
// # Tags
//
// Tags lists the "is-a" identities of an error in priority order. The HTTP
// boundary uses it to remap foreign errors (database drivers, SDK clients)
// onto registered classes by nearest match.
package apierror
