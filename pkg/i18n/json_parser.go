package i18n

import (
	"context"
	"encoding/json"
	"errors"
)

// JSONParser parses .json translation files.
type JSONParser struct{}

func NewJSONParser() *JSONParser { return &JSONParser{} }

func (p *JSONParser) Parse(ctx context.Context, content []byte) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}
	var data map[string]any
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}
	return languages(data)
}

func (p *JSONParser) SupportsFileExtension(ext string) bool {
	return extIs(ext, "json")
}
