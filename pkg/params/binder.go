package params

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/apikit/pkg/apierror"
)

// MaxBodySize bounds the JSON body read by Bind.
const MaxBodySize = 1 << 20

// Bind returns a request binder that collects the payload from the query
// string, a JSON body and chi path parameters (later sources win), validates
// it against schema, and decodes the result into v. v may be a *map[string]any
// to receive the coerced payload as is.
func Bind(schema *Schema) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		payload, err := Payload(r)
		if err != nil {
			return err
		}
		if err := schema.Validate(payload); err != nil {
			return err
		}
		return decode(payload, v)
	}
}

// Payload merges the request parameters into one object.
func Payload(r *http.Request) (map[string]any, error) {
	payload := map[string]any{}

	for key, values := range r.URL.Query() {
		if len(values) == 1 {
			payload[key] = values[0]
			continue
		}
		list := make([]any, len(values))
		for i, v := range values {
			list[i] = v
		}
		payload[key] = list
	}

	if isJSON(r) && r.Body != nil {
		body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodySize+1))
		if err != nil {
			return nil, apierror.BadRequest.New("failed to read request body", err)
		}
		if len(body) > MaxBodySize {
			return nil, apierror.BadRequest.New("request body too large")
		}
		if len(body) > 0 {
			var obj map[string]any
			if err := json.Unmarshal(body, &obj); err != nil {
				return nil, apierror.BadRequest.New("request body must be a JSON object", err)
			}
			for k, v := range obj {
				payload[k] = v
			}
		}
	}

	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			if key == "*" || i >= len(rctx.URLParams.Values) {
				continue
			}
			payload[key] = rctx.URLParams.Values[i]
		}
	}
	return payload, nil
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

func decode(payload map[string]any, v any) error {
	switch dst := v.(type) {
	case nil:
		return nil
	case *map[string]any:
		*dst = payload
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return apierror.BadRequest.New("failed to encode parameters", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return apierror.BadRequest.New("parameter "+typeErr.Field+" has the wrong type", err)
		}
		return apierror.BadRequest.New("failed to decode parameters", err)
	}
	return nil
}
