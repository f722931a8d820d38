package apierror

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	acronymBoundary = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	wordBoundary    = regexp.MustCompile(`([a-z\d])([A-Z])`)
)

// Underscore converts a qualified Go name such as "apierror.NotFoundError"
// into its lower-case underscored path form "apierror/not_found_error".
func Underscore(name string) string {
	s := strings.ReplaceAll(name, "::", "/")
	s = strings.ReplaceAll(s, ".", "/")
	s = acronymBoundary.ReplaceAllString(s, "${1}_${2}")
	s = wordBoundary.ReplaceAllString(s, "${1}_${2}")
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ToLower(s)
}

// ShortName drops the namespace of a qualified name, underscores the rest and
// strips the given suffix. ShortName("params.RegexpValidator", "_validator")
// returns "regexp".
func ShortName(qualified, suffix string) string {
	s := Underscore(qualified)
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	if suffix != "" && s != suffix {
		s = strings.TrimSuffix(s, suffix)
	}
	return s
}

// ErrorNameFor derives the default wire name for a class name:
// "apierror.InvalidResourceError" becomes "invalid_resource".
func ErrorNameFor(className string) string {
	return ShortName(className, "_error")
}

// Classify turns an error name into a Go-style class name:
// "not_found" becomes "NotFound".
func Classify(name string) string {
	// Casers keep state, so one per call.
	caser := cases.Title(language.Und)
	var b strings.Builder
	for part := range strings.SplitSeq(Underscore(name), "_") {
		if part == "" {
			continue
		}
		b.WriteString(caser.String(part))
	}
	return b.String()
}

func canonicalName(name string) string {
	return Underscore(strings.TrimSpace(name))
}

// canonicalKey snake-cases each dot-separated segment of a catalog key, so
// "Billing.CardDeclined" becomes "billing.card_declined".
func canonicalKey(key string) string {
	parts := strings.Split(strings.TrimSpace(key), ".")
	for i, part := range parts {
		parts[i] = Underscore(strings.TrimSpace(part))
	}
	return strings.Join(parts, ".")
}
