package blob

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/dmitrymomot/apikit/pkg/apierror"
	"github.com/dmitrymomot/apikit/pkg/errmap"
)

// DefaultContentType is used when neither the caller nor the backend knows
// the media type.
const DefaultContentType = "application/octet-stream"

// Object describes a stored object.
type Object struct {
	Key         string
	Size        int64
	ContentType string
}

// Store is implemented by LocalStore and S3Store.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (Object, error)
	// Get returns the object and its content. The caller closes the reader.
	Get(ctx context.Context, key string) (Object, io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// CleanKey validates key and returns its canonical form.
func CleanKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, `\`) {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}

// Errors maps invalid keys to bad_request.
func Errors(m errmap.Mapper) error {
	return m.MapErrorFunc(ErrInvalidKey, func(err error) error {
		return apierror.BadRequest.New("invalid object key", err)
	})
}
