package apierror

import "net/http"

// InvalidResource signals that a submitted resource failed validation. It
// carries per-field messages rendered as metadata under "messages".
var InvalidResource = mustDefault("invalid_resource",
	WithHTTPStatus(http.StatusUnprocessableEntity),
	WithClassName("InvalidResource"),
)

// NewInvalidResource creates an invalid_resource error from field messages.
// Remaining args are passed to Class.New.
func NewInvalidResource(messages map[string][]string, args ...any) *Error {
	e := InvalidResource.New(args...)
	e.messages = messages
	return e
}
