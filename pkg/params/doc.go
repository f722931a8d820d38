// Package params declares and validates the parameters of a single request
// payload.
//
// A Schema is defined once, at startup, from a declaration block. Defining
// evaluates the block without a payload, so misconfigurations such as an
// unknown validator type or unexpected validator options are reported before
// any request is served:
//
//	var createUser = params.MustDefine(func(s *params.Scope) {
//		s.Requires("email", params.Regexp(`^[^@\s]+@[^@\s]+$`))
//		s.Optional("age", params.Coerce(params.Integer))
//		s.Group("address", func(s *params.Scope) {
//			s.Requires("city")
//		})
//		s.Group("tags", func(s *params.Scope) {
//			s.Requires("name")
//		})
//	})
//
// Validate replays the block against a request payload. Groups nest under a
// key of the enclosing payload; when that key holds a list of objects, every
// element is validated on its own. For each declaration validators run in a
// fixed order: presence, then coercion (which rewrites the value in place),
// then the remaining validators in declaration order. The first failure stops
// validation and is returned as an *apierror.Error:
//
//	if err := createUser.Validate(payload); err != nil {
//		return err // e.g. presence, 400, "address[city] is missing"
//	}
//
// # Validators
//
// Validators are looked up by type name in a Registry. The built-in types are
// presence, regexp and coerce. Custom validators register a Factory, or a
// SingleFactory when they take one opaque option such as a pattern:
//
//	params.MustRegister(params.NameFor[*UUIDValidator](), NewUUIDValidator)
//
// A validator only implements ValidateParam. Iteration over repeated groups,
// and the rule that optional attributes are checked only when present, live
// in Base.
package params
