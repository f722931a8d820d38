package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/apikit/handler"
	"github.com/dmitrymomot/apikit/pkg/apierror"
	"github.com/dmitrymomot/apikit/pkg/i18n"
	"github.com/dmitrymomot/apikit/pkg/params"
	"github.com/dmitrymomot/apikit/pkg/requestid"
)

var errForeignNotFound = errors.New("record missing in upstream")

// notFoundError is a family of foreign errors sharing a method set.
type notFoundError interface {
	error
	NotFound() bool
}

type missingInvoice struct{ id string }

func (e missingInvoice) Error() string  { return "invoice " + e.id + " missing" }
func (e missingInvoice) NotFound() bool { return true }

type upstreamError struct {
	code   int
	fields []string
}

func (e *upstreamError) Error() string { return fmt.Sprintf("upstream %d", e.code) }

func render(t *testing.T, r *handler.ErrorRenderer, err error) (int, map[string]any) {
	t.Helper()
	status, body := r.Render(context.Background(), err)
	data, merr := json.Marshal(body)
	require.NoError(t, merr)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return status, out
}

func TestErrorRenderer_DomainErrors(t *testing.T) {
	t.Parallel()
	r := handler.NewErrorRenderer(nil, handler.ErrorRendererConfig{})

	t.Run("registered name", func(t *testing.T) {
		t.Parallel()
		status, body := render(t, r, apierror.Raise("not_found"))
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "not_found", body["error"])
		assert.Equal(t, handler.GenericMessage, body["error_description"])
	})

	t.Run("unregistered name falls back to unknown", func(t *testing.T) {
		t.Parallel()
		status, body := render(t, r, apierror.Raise("custom_unregistered_name"))
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "unknown", body["error"])
	})

	t.Run("custom message passes through", func(t *testing.T) {
		t.Parallel()
		_, body := render(t, r, apierror.Raise("conflict", "email already registered"))
		assert.Equal(t, "conflict", body["error"])
		assert.Equal(t, "email already registered", body["error_description"])
	})

	t.Run("error_name overrides class name", func(t *testing.T) {
		t.Parallel()
		status, body := render(t, r, apierror.Raise("bad_request", apierror.Context{
			apierror.ErrorNameKey: "invalid_cursor",
		}))
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "invalid_cursor", body["error"])
	})

	t.Run("metadata is flattened over the core keys", func(t *testing.T) {
		t.Parallel()
		_, body := render(t, r, apierror.Raise("forbidden", "nope", apierror.Context{
			apierror.MetadataKey: map[string]any{"scope": "admin", "error": "admin_only"},
		}))
		assert.Equal(t, "admin", body["scope"])
		assert.Equal(t, "admin_only", body["error"])
		assert.Equal(t, "nope", body["error_description"])
	})

	t.Run("invalid resource exposes messages", func(t *testing.T) {
		t.Parallel()
		status, body := render(t, r, apierror.NewInvalidResource(map[string][]string{
			"email": {"is taken"},
		}, "user is invalid"))
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Equal(t, "invalid_resource", body["error"])
		assert.Equal(t, map[string]any{"email": []any{"is taken"}}, body["messages"])
	})

	t.Run("wrapped domain error keeps its class", func(t *testing.T) {
		t.Parallel()
		status, body := render(t, r, fmt.Errorf("load user: %w", apierror.Raise("not_found", "user not found")))
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "user not found", body["error_description"])
	})

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		status, body := render(t, r, nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "unknown", body["error"])
	})
}

func TestErrorRenderer_ForeignErrors(t *testing.T) {
	t.Parallel()

	t.Run("unmapped renders system error without leaking", func(t *testing.T) {
		t.Parallel()
		r := handler.NewErrorRenderer(nil, handler.ErrorRendererConfig{})
		status, body := render(t, r, errors.New("pq: password authentication failed"))
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, handler.SystemErrorName, body["error"])
		assert.Equal(t, handler.GenericMessage, body["error_description"])
	})

	t.Run("sentinel mapped to class", func(t *testing.T) {
		t.Parallel()
		r := handler.NewErrorRenderer(nil, handler.ErrorRendererConfig{})
		require.NoError(t, r.MapError(errForeignNotFound, apierror.NotFound))

		status, body := render(t, r, fmt.Errorf("fetch: %w", errForeignNotFound))
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "not_found", body["error"])
		assert.Equal(t, "fetch: record missing in upstream", body["error_description"])
	})

	t.Run("interface tag matches every implementation", func(t *testing.T) {
		t.Parallel()
		r := handler.NewErrorRenderer(nil, handler.ErrorRendererConfig{})
		require.NoError(t, r.MapError(apierror.TypeOf[notFoundError](), apierror.NotFound))

		status, body := render(t, r, missingInvoice{id: "in_1"})
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "not_found", body["error"])
	})

	t.Run("concrete type with func", func(t *testing.T) {
		t.Parallel()
		r := handler.NewErrorRenderer(nil, handler.ErrorRendererConfig{})
		require.NoError(t, r.MapErrorFunc(apierror.TypeOf[*upstreamError](), func(err error) error {
			var ue *upstreamError
			if errors.As(err, &ue) && ue.code == 429 {
				return apierror.Throttled.New("slow down")
			}
			return nil
		}))

		status, body := render(t, r, &upstreamError{code: 429, fields: []string{"a"}})
		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.Equal(t, "throttled", body["error"])

		status, body = render(t, r, &upstreamError{code: 500})
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, handler.SystemErrorName, body["error"])
	})

	t.Run("declined mapping falls through to inner layers", func(t *testing.T) {
		t.Parallel()
		r := handler.NewErrorRenderer(nil, handler.ErrorRendererConfig{})
		require.NoError(t, r.MapErrorFunc(apierror.TypeOf[*fs.PathError](), func(error) error { return nil }))
		require.NoError(t, r.MapError(errForeignNotFound, apierror.NotFound))

		status, body := render(t, r, &fs.PathError{Op: "read", Path: "/mnt/a", Err: errForeignNotFound})
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "not_found", body["error"])
	})

	t.Run("outermost mapped layer wins", func(t *testing.T) {
		t.Parallel()
		r := handler.NewErrorRenderer(nil, handler.ErrorRendererConfig{})
		require.NoError(t, r.MapError(errForeignNotFound, apierror.NotFound))
		require.NoError(t, r.MapError(apierror.TypeOf[*upstreamError](), apierror.Conflict))

		err := fmt.Errorf("%w: %w", &upstreamError{code: 409}, errForeignNotFound)
		_, body := render(t, r, err)
		assert.Equal(t, "conflict", body["error"])
	})

	t.Run("domain class remapped", func(t *testing.T) {
		t.Parallel()
		r := handler.NewErrorRenderer(nil, handler.ErrorRendererConfig{})
		require.NoError(t, r.MapErrorFunc(apierror.BadRequest, func(err error) error {
			return apierror.Raise("unauthenticated")
		}))

		status, body := render(t, r, params.PresenceError.New("token is missing"))
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "unauthenticated", body["error"])
	})

	t.Run("invalid registrations", func(t *testing.T) {
		t.Parallel()
		r := handler.NewErrorRenderer(nil, handler.ErrorRendererConfig{})
		assert.ErrorIs(t, r.MapError(errForeignNotFound, nil), handler.ErrNilMapping)
		assert.ErrorIs(t, r.MapErrorFunc(errForeignNotFound, nil), handler.ErrNilMapping)
		assert.ErrorIs(t, r.MapError(nil, apierror.NotFound), handler.ErrInvalidTag)
		assert.ErrorIs(t, r.MapError([]string{"x"}, apierror.NotFound), handler.ErrInvalidTag)
	})
}

type stubCatalog struct {
	got i18n.TranslateOptions
	key string
	out string
}

func (c *stubCatalog) Translate(_ context.Context, key string, opts i18n.TranslateOptions) string {
	c.key, c.got = key, opts
	return c.out
}

func TestErrorRenderer_Catalog(t *testing.T) {
	t.Parallel()

	t.Run("lookup arguments", func(t *testing.T) {
		t.Parallel()
		cat := &stubCatalog{out: "translated"}
		r := handler.NewErrorRenderer(nil, handler.ErrorRendererConfig{Catalog: cat})

		_, body := render(t, r, apierror.Raise("conflict", "taken", apierror.Context{
			"field":              "email",
			apierror.MetadataKey: map[string]any{"hint": "x"},
		}))
		assert.Equal(t, "translated", body["error_description"])
		assert.Equal(t, "conflict", cat.key)
		assert.Equal(t, handler.MessageScope, cat.got.Scope)
		assert.Equal(t, "taken", cat.got.Default)
		assert.Equal(t, "email", cat.got.Values["field"])
		assert.NotContains(t, cat.got.Values, apierror.MetadataKey)
	})

	t.Run("translator with locale", func(t *testing.T) {
		t.Parallel()
		tr, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{Data: map[string]map[string]any{
			"en": {"errors": map[string]any{"not_found": "%{resource} not found"}},
			"es": {"errors": map[string]any{"not_found": "%{resource} no encontrado"}},
		}})
		require.NoError(t, err)
		r := handler.NewErrorRenderer(nil, handler.ErrorRendererConfig{Catalog: tr})

		ctx := i18n.WithLocale(context.Background(), "es")
		_, body := r.Render(ctx, apierror.Raise("not_found", apierror.Context{"resource": "Factura"}))
		assert.Equal(t, "Factura no encontrado", body.Description)

		_, body = r.Render(context.Background(), apierror.Raise("conflict"))
		assert.Equal(t, handler.GenericMessage, body.Description)
	})

	t.Run("dotted key resolves nested entries", func(t *testing.T) {
		t.Parallel()
		cardDeclined := apierror.NewRegistry().MustRegister("card_declined",
			apierror.WithHTTPStatus(http.StatusPaymentRequired),
			apierror.WithKey("billing.card_declined"),
		)
		tr, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{Data: map[string]map[string]any{
			"en": {"errors": map[string]any{
				"billing": map[string]any{"card_declined": "The card was declined."},
			}},
		}})
		require.NoError(t, err)
		r := handler.NewErrorRenderer(nil, handler.ErrorRendererConfig{Catalog: tr})

		status, body := r.Render(context.Background(), cardDeclined.New())
		assert.Equal(t, http.StatusPaymentRequired, status)
		assert.Equal(t, "card_declined", body.Error)
		assert.Equal(t, "The card was declined.", body.Description)
	})

	t.Run("panicking catalog falls back", func(t *testing.T) {
		t.Parallel()
		r := handler.NewErrorRenderer(nil, handler.ErrorRendererConfig{Catalog: panicCatalog{}})
		status, body := render(t, r, apierror.Raise("not_found", "gone"))
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "gone", body["error_description"])
	})
}

type panicCatalog struct{}

func (panicCatalog) Translate(context.Context, string, i18n.TranslateOptions) string {
	panic("catalog unavailable")
}

func TestErrorRenderer_Extras(t *testing.T) {
	t.Parallel()

	r := handler.NewErrorRenderer(nil, handler.ErrorRendererConfig{
		Extras: func(err error) map[string]any {
			var ue *upstreamError
			if errors.As(err, &ue) {
				return map[string]any{"upstream_code": ue.code}
			}
			return nil
		},
	})
	require.NoError(t, r.MapError(apierror.TypeOf[*upstreamError](), apierror.Conflict))

	status, body := render(t, r, &upstreamError{code: 409})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, float64(409), body["upstream_code"])

	_, body = render(t, r, apierror.Raise("not_found"))
	assert.NotContains(t, body, "upstream_code")

	t.Run("extras override metadata and core keys", func(t *testing.T) {
		t.Parallel()
		r := handler.NewErrorRenderer(nil, handler.ErrorRendererConfig{
			Extras: func(error) map[string]any {
				return map[string]any{"error_description": "from extras", "source": "extras"}
			},
		})
		_, body := render(t, r, apierror.Raise("not_found", "gone", apierror.Context{
			apierror.MetadataKey: map[string]any{"error": "meta_name", "source": "metadata"},
		}))
		assert.Equal(t, "meta_name", body["error"])
		assert.Equal(t, "from extras", body["error_description"])
		assert.Equal(t, "extras", body["source"])
	})
}

func TestErrorRenderer_Logging(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := handler.NewErrorRenderer(log, handler.ErrorRendererConfig{})

	ctx := requestid.WithContext(context.Background(), "req-1")
	r.Render(ctx, apierror.Raise("not_found", "user not found"))

	dec := json.NewDecoder(buf)
	var debug, warn map[string]any
	require.NoError(t, dec.Decode(&debug))
	require.NoError(t, dec.Decode(&warn))

	assert.Equal(t, "rendering error", debug["msg"])
	assert.Equal(t, "*apierror.Error", debug["type"])
	assert.Equal(t, "user not found", debug["message"])

	assert.Equal(t, "WARN", warn["level"])
	assert.Equal(t, "not_found", warn["error_name"])
	assert.Equal(t, float64(404), warn["status"])
	assert.Equal(t, "req-1", warn["request_id"])
}

func TestErrorRenderer_Write(t *testing.T) {
	t.Parallel()

	r := handler.NewErrorRenderer(nil, handler.ErrorRendererConfig{})
	rec := httptest.NewRecorder()
	r.Write(rec, httptest.NewRequest(http.MethodGet, "/", nil), apierror.Raise("unauthenticated", "token expired"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"unauthenticated","error_description":"token expired"}`, rec.Body.String())
}
