// Package handler is the HTTP boundary of an API: typed handler functions,
// request binding, JSON responses, and the error renderer that turns any
// returned error into a structured JSON body.
//
// # Handlers
//
// A HandlerFunc receives a Context and a bound request value and returns a
// Response. Wrap adapts it to http.HandlerFunc, running the configured binders
// first:
//
//	var createUserParams = params.MustDefine(func(s *params.Scope) {
//		s.Requires("email", params.Regexp(`.+@.+`))
//		s.Optional("age", params.Coerce(params.Integer))
//	})
//
//	func createUser(ctx handler.Context, req CreateUserRequest) handler.Response {
//		if exists(req.Email) {
//			return handler.Fail(apierror.Raise("conflict", "email already registered"))
//		}
//		return handler.JSON(user, handler.WithJSONStatus(http.StatusCreated))
//	}
//
//	r.Post("/users", handler.Wrap(createUser,
//		handler.WithBinder[handler.Context, CreateUserRequest](params.Bind(createUserParams)),
//		handler.WithErrorHandler[handler.Context, CreateUserRequest](renderer.Handle),
//	))
//
// # Error rendering
//
// ErrorRenderer converts errors into ErrorBody values rendered as
//
//	{"error": "not_found", "error_description": "User not found", ...metadata}
//
// Domain errors (*apierror.Error) carry their own status, name and message.
// Foreign errors, such as driver sentinels, are translated through mappings
// registered with MapError and MapErrorFunc; the nearest mapped tag of the
// error's wrap chain wins. Anything left unmapped renders as a 500 "system"
// error with a generic description.
//
// Descriptions are resolved through an optional MessageCatalog under the
// "errors" scope, keyed by the error key, with the raw message as default.
package handler
