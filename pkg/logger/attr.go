package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// ErrorName records the rendered error name under the key "error_name".
func ErrorName(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("error_name", name)
}

// ErrorClass records the qualified error class, e.g. "params.PresenceError".
func ErrorClass(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("error_class", name)
}

// Status records an HTTP status code under the key "status".
func Status(code int) slog.Attr {
	return slog.Int("status", code)
}

// Param records a request parameter's full name under the key "param".
func Param(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("param", name)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil or an empty string, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil || id == "" {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
