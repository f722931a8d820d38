package i18n

import (
	"context"
	"path/filepath"
	"strings"
)

// Parser decodes translation content into a language → translations map.
type Parser interface {
	Parse(ctx context.Context, content []byte) (map[string]map[string]any, error)

	// SupportsFileExtension accepts extensions with or without a leading dot.
	SupportsFileExtension(ext string) bool
}

// NewParserForFile returns the parser matching the file extension, or nil.
func NewParserForFile(filename string) Parser {
	for _, p := range []Parser{NewYAMLParser(), NewJSONParser()} {
		if p.SupportsFileExtension(filepath.Ext(filename)) {
			return p
		}
	}
	return nil
}

func extIs(ext string, want ...string) bool {
	ext = strings.TrimPrefix(ext, ".")
	for _, w := range want {
		if strings.EqualFold(ext, w) {
			return true
		}
	}
	return false
}

// languages validates the top level of a decoded document: every language
// must map to an object.
func languages(data map[string]any) (map[string]map[string]any, error) {
	out := make(map[string]map[string]any, len(data))
	for lang, val := range data {
		m, ok := normalize(val).(map[string]any)
		if !ok || lang == "" {
			return nil, ErrInvalidStructure
		}
		out[strings.ToLower(lang)] = m
	}
	return out, nil
}

// normalize converts nested map[any]any values into map[string]any.
func normalize(v any) any {
	switch m := v.(type) {
	case map[string]any:
		for k, val := range m {
			m[k] = normalize(val)
		}
		return m
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			if ks, ok := k.(string); ok {
				out[ks] = normalize(val)
			}
		}
		return out
	}
	return v
}
