// Package errmap registers translations from infrastructure errors to API
// error classes. Store packages (pg, redis, mongo, blob) each export a Source;
// this package holds the shared Mapper contract plus the context, filesystem
// and AWS sources.
package errmap

import (
	"context"
	"errors"
	"io/fs"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/dmitrymomot/apikit/pkg/apierror"
)

// Mapper records foreign error mappings. *handler.ErrorRenderer implements it.
type Mapper interface {
	MapError(tag apierror.Tag, target *apierror.Class) error
	MapErrorFunc(tag apierror.Tag, fn func(error) error) error
}

// Source registers the mappings of one backend.
type Source func(Mapper) error

// Timeout is rendered for handlers that ran out of time.
var Timeout = apierror.MustRegister("timeout",
	apierror.WithHTTPStatus(http.StatusGatewayTimeout),
	apierror.WithClassName("Timeout"),
	apierror.WithNamespace("errmap"),
)

// Register applies sources in order and stops at the first failure.
func Register(m Mapper, sources ...Source) error {
	for _, src := range sources {
		if src == nil {
			continue
		}
		if err := src(m); err != nil {
			return err
		}
	}
	return nil
}

// Context maps context.DeadlineExceeded to timeout. Cancellation is left
// alone: the client is gone and nothing will read the response.
func Context(m Mapper) error {
	return m.MapErrorFunc(context.DeadlineExceeded, func(err error) error {
		return Timeout.New("the request took too long", err)
	})
}

// FS maps filesystem errors. *fs.PathError wraps an errno rather than the
// fs sentinels, so the mapping matches the error type and inspects it.
func FS(m Mapper) error {
	return m.MapErrorFunc(apierror.TypeOf[*fs.PathError](), func(err error) error {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return apierror.NotFound.New("file not found", err)
		case errors.Is(err, fs.ErrPermission):
			return apierror.Forbidden.New("access to the file is denied", err)
		}
		return nil
	})
}

// AWS maps S3 and generic smithy API errors.
func AWS(m Mapper) error {
	notFound := func(err error) error {
		return apierror.NotFound.New("object not found", err)
	}
	return errors.Join(
		m.MapErrorFunc(apierror.TypeOf[*types.NoSuchKey](), notFound),
		m.MapErrorFunc(apierror.TypeOf[*types.NotFound](), notFound),
		m.MapErrorFunc(apierror.TypeOf[*types.NoSuchBucket](), func(err error) error {
			return apierror.NotFound.New("bucket not found", err)
		}),
		m.MapErrorFunc(apierror.TypeOf[smithy.APIError](), mapAPIError),
	)
}

func mapAPIError(err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return nil
	}
	switch apiErr.ErrorCode() {
	case "NoSuchKey", "NotFound":
		return apierror.NotFound.New("object not found", err)
	case "NoSuchBucket":
		return apierror.NotFound.New("bucket not found", err)
	case "AccessDenied", "Forbidden":
		return apierror.Forbidden.New("access to the object is denied", err)
	case "SlowDown", "Throttling", "ThrottlingException", "RequestLimitExceeded":
		return apierror.Throttled.New("storage rate limit exceeded", err)
	}
	return nil
}
