package apierror

import (
	"fmt"
	"net/http"
	"strings"
	"unicode"
)

// statusCodes maps symbolic status names ("not_found", "service_unavailable")
// to HTTP status codes. Built from net/http status texts.
var statusCodes = buildStatusCodes()

func buildStatusCodes() map[string]int {
	codes := make(map[string]int)
	for code := 100; code < 600; code++ {
		text := http.StatusText(code)
		if text == "" {
			continue
		}
		codes[statusSymbol(text)] = code
	}
	// RFC 9110 names.
	codes["unprocessable_content"] = http.StatusUnprocessableEntity
	codes["content_too_large"] = http.StatusRequestEntityTooLarge
	return codes
}

func statusSymbol(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '-':
			b.WriteByte('_')
		}
	}
	return b.String()
}

// StatusCode resolves a symbolic status name to its HTTP code.
func StatusCode(name string) (int, error) {
	if code, ok := statusCodes[canonicalName(name)]; ok {
		return code, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, name)
}

// ValidStatus reports whether code is a usable HTTP status.
func ValidStatus(code int) bool {
	return code >= 100 && code <= 599
}
