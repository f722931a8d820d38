package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"reflect"
	"sync"

	"github.com/dmitrymomot/apikit/pkg/apierror"
	"github.com/dmitrymomot/apikit/pkg/i18n"
	"github.com/dmitrymomot/apikit/pkg/logger"
	"github.com/dmitrymomot/apikit/pkg/requestid"
)

const (
	// GenericMessage describes errors that carry no message of their own.
	GenericMessage = "An unknown error has occurred."
	// SystemErrorName is the wire name of errors outside the taxonomy.
	SystemErrorName = "system"
	// MessageScope is the catalog scope of error descriptions.
	MessageScope = "errors"
)

// MessageCatalog localizes error descriptions. *i18n.Translator implements it.
type MessageCatalog interface {
	Translate(ctx context.Context, key string, opts i18n.TranslateOptions) string
}

// ErrorBody is a rendered error. Metadata is flattened next to the core keys
// in JSON and overrides them on collision.
type ErrorBody struct {
	Error       string
	Description string
	Metadata    map[string]any
}

func (b ErrorBody) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(b.Metadata)+2)
	out["error"] = b.Error
	out["error_description"] = b.Description
	maps.Copy(out, b.Metadata)
	return json.Marshal(out)
}

// ErrorRendererConfig configures an ErrorRenderer.
type ErrorRendererConfig struct {
	// Catalog resolves descriptions. Nil uses the computed default message.
	Catalog MessageCatalog

	// Extras returns metadata merged over the error's own metadata. It
	// receives the error as returned by the handler, before mapping.
	Extras func(err error) map[string]any
}

type ifaceMapping struct {
	tag apierror.TypeTag
	m   mapping
}

type mapping struct {
	target *apierror.Class
	fn     func(error) error
}

// apply returns nil when a mapping function declines err.
func (m mapping) apply(err error) error {
	if m.fn != nil {
		return m.fn(err)
	}
	return m.target.New(err.Error(), err)
}

// ErrorRenderer turns errors into status codes and ErrorBody values. It is
// safe for concurrent use; mappings are meant to be registered before the
// renderer starts serving.
type ErrorRenderer struct {
	mu       sync.RWMutex
	mappings map[apierror.Tag]mapping
	ifaces   []ifaceMapping
	log      *slog.Logger
	cfg      ErrorRendererConfig
}

// NewErrorRenderer returns a renderer without mappings. A nil logger
// discards output.
func NewErrorRenderer(log *slog.Logger, cfg ErrorRendererConfig) *ErrorRenderer {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ErrorRenderer{
		mappings: make(map[apierror.Tag]mapping),
		log:      log,
		cfg:      cfg,
	}
}

// NewErrorHandler is a shortcut for NewErrorRenderer(log, cfg).Handle.
func NewErrorHandler(log *slog.Logger, cfg ErrorRendererConfig) ErrorHandler[Context] {
	return NewErrorRenderer(log, cfg).Handle
}

// MapError renders errors tagged with tag as target, constructed with the
// original error's message and the original error as cause. tag is a
// *apierror.Class, a sentinel error value, or an apierror.TypeOf tag.
func (r *ErrorRenderer) MapError(tag apierror.Tag, target *apierror.Class) error {
	if target == nil {
		return ErrNilMapping
	}
	return r.addMapping(tag, mapping{target: target})
}

// MapErrorFunc renders errors tagged with tag as the result of fn. A nil
// result declines the error and the lookup moves on to the next match.
func (r *ErrorRenderer) MapErrorFunc(tag apierror.Tag, fn func(error) error) error {
	if fn == nil {
		return ErrNilMapping
	}
	return r.addMapping(tag, mapping{fn: fn})
}

func (r *ErrorRenderer) addMapping(tag apierror.Tag, m mapping) error {
	if tag == nil || !reflect.TypeOf(tag).Comparable() {
		return ErrInvalidTag
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if tt, ok := tag.(apierror.TypeTag); ok && tt.IsInterface() {
		for i := range r.ifaces {
			if r.ifaces[i].tag == tt {
				r.ifaces[i].m = m
				return nil
			}
		}
		r.ifaces = append(r.ifaces, ifaceMapping{tag: tt, m: m})
		return nil
	}
	r.mappings[tag] = m
	return nil
}

// resolve applies the mappings matching err until one accepts it. The wrap
// chain is walked outermost first; within a layer, exact tags are tried
// nearest first, then interface tags in registration order. Unmatched
// errors are returned as is.
func (r *ErrorRenderer) resolve(err error) error {
	for _, m := range r.matches(err) {
		if mapped := m.apply(err); mapped != nil {
			return mapped
		}
	}
	return err
}

func (r *ErrorRenderer) matches(err error) []mapping {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.mappings) == 0 && len(r.ifaces) == 0 {
		return nil
	}
	var out []mapping
	for _, layer := range apierror.Chain(err) {
		for _, tag := range apierror.LayerTags(layer) {
			if m, ok := r.find(tag); ok {
				out = append(out, m)
			}
		}
		for _, im := range r.ifaces {
			if im.tag.Matches(layer) {
				out = append(out, im.m)
			}
		}
	}
	return out
}

// find guards against comparable types holding uncomparable dynamic values.
func (r *ErrorRenderer) find(tag apierror.Tag) (m mapping, ok bool) {
	defer func() {
		if recover() != nil {
			m, ok = mapping{}, false
		}
	}()
	m, ok = r.mappings[tag]
	return m, ok
}

// Render resolves err into a status code and body. It never fails: anything
// it cannot classify renders as a 500 system error.
func (r *ErrorRenderer) Render(ctx context.Context, err error) (int, ErrorBody) {
	if err == nil {
		err = apierror.Root.New()
	}
	r.log.DebugContext(ctx, "rendering error",
		slog.String("type", fmt.Sprintf("%T", err)),
		slog.String("message", err.Error()),
		logger.Component("error_renderer"),
	)

	resolved := r.resolve(err)

	status := http.StatusInternalServerError
	name := SystemErrorName
	key := SystemErrorName
	message := GenericMessage
	var (
		errCtx    apierror.Context
		className string
	)

	if e, ok := apierror.As(resolved); ok {
		errCtx = e.Context()
		className = e.TypeName()
		status = e.HTTPStatus()
		key = e.Key()
		if n := e.Name(); n != "" {
			name = n
		}
		if override, ok := errCtx[apierror.ErrorNameKey].(string); ok && override != "" {
			name = override
		}
		if e.HasMessage() {
			message = e.Message()
		}
	}
	if !apierror.ValidStatus(status) {
		status = http.StatusInternalServerError
	}

	body := ErrorBody{
		Error:       name,
		Description: r.describe(ctx, key, message, errCtx),
		Metadata:    r.metadata(ctx, err, errCtx),
	}

	param, _ := errCtx["param"].(string)
	level := slog.LevelError
	if status < http.StatusInternalServerError {
		level = slog.LevelWarn
	}
	r.log.LogAttrs(ctx, level, "request error",
		logger.Error(err),
		logger.ErrorName(body.Error),
		logger.ErrorClass(className),
		logger.Status(status),
		logger.Param(param),
		logger.RequestID(requestid.FromContext(ctx)),
		logger.Component("error_renderer"),
	)
	return status, body
}

func (r *ErrorRenderer) describe(ctx context.Context, key, fallback string, errCtx apierror.Context) (msg string) {
	if r.cfg.Catalog == nil {
		return fallback
	}
	defer func() {
		if p := recover(); p != nil {
			r.log.ErrorContext(ctx, "message catalog failed", slog.Any("panic", p), logger.Component("error_renderer"))
			msg = fallback
		}
	}()
	msg = r.cfg.Catalog.Translate(ctx, key, i18n.TranslateOptions{
		Scope:   MessageScope,
		Default: fallback,
		Values:  errCtx.Without(apierror.MetadataKey),
	})
	if msg == "" {
		msg = fallback
	}
	return msg
}

func (r *ErrorRenderer) metadata(ctx context.Context, err error, errCtx apierror.Context) map[string]any {
	out := map[string]any{}
	maps.Copy(out, errCtx.Metadata())
	if r.cfg.Extras == nil {
		return out
	}
	defer func() {
		if p := recover(); p != nil {
			r.log.ErrorContext(ctx, "error extras failed", slog.Any("panic", p), logger.Component("error_renderer"))
		}
	}()
	maps.Copy(out, r.cfg.Extras(err))
	return out
}

// Handle writes the rendered error for the request. Its signature matches
// ErrorHandler[Context].
func (r *ErrorRenderer) Handle(ctx Context, err error) {
	r.Write(ctx.ResponseWriter(), ctx.Request(), err)
}

// Write renders err as the JSON response to req.
func (r *ErrorRenderer) Write(w http.ResponseWriter, req *http.Request, err error) {
	status, body := r.Render(req.Context(), err)
	writeJSON(w, status, body)
}
