package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/apikit/handler"
	"github.com/dmitrymomot/apikit/pkg/apierror"
	"github.com/dmitrymomot/apikit/pkg/blob"
	"github.com/dmitrymomot/apikit/pkg/clientip"
	"github.com/dmitrymomot/apikit/pkg/environment"
	"github.com/dmitrymomot/apikit/pkg/httpserver"
	"github.com/dmitrymomot/apikit/pkg/i18n"
	"github.com/dmitrymomot/apikit/pkg/logger"
	"github.com/dmitrymomot/apikit/pkg/params"
	"github.com/dmitrymomot/apikit/pkg/ratelimit"
	"github.com/dmitrymomot/apikit/pkg/requestid"
)

var (
	methodNotAllowed = apierror.MustRegister("method_not_allowed",
		apierror.WithStatusName("method_not_allowed"),
	)
	payloadTooLarge = apierror.MustRegister("payload_too_large",
		apierror.WithHTTPStatus(http.StatusRequestEntityTooLarge),
	)
)

var (
	noteIDParams = params.MustDefine(func(s *params.Scope) {
		s.Requires("id", params.Coerce(params.Integer), params.Desc("note identifier"))
	})

	listNotesParams = params.MustDefine(func(s *params.Scope) {
		s.Optional("after", params.Coerce(params.Integer), params.Default(0))
		s.Optional("limit", params.Coerce(params.Integer), params.Regexp(`^(100|[1-9][0-9]?)$`),
			params.Default(20), params.Desc("page size, 1 to 100"))
	})

	createNoteParams = params.MustDefine(func(s *params.Scope) {
		s.Requires("title", params.Type(params.String), params.Regexp(`^\S.{0,79}$`))
		s.Optional("body", params.Type(params.String))
		s.Optional("priority", params.Coerce(params.Integer), params.Regexp(`^[1-5]$`), params.Default(3))
		s.Optional("tags", params.Coerce(params.Array))
		s.Group("source", func(g *params.Scope) {
			g.Optional("client", params.Regexp(`^[a-z][a-z0-9_-]*$`))
		})
	})
)

type noteIDRequest struct {
	ID int64 `json:"id"`
}

type listNotesRequest struct {
	After int64 `json:"after"`
	Limit int   `json:"limit"`
}

type createNoteRequest struct {
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Priority int      `json:"priority"`
	Tags     []string `json:"tags"`
}

type deps struct {
	log      *slog.Logger
	env      environment.Environment
	tr       *i18n.Translator
	renderer *handler.ErrorRenderer
	notes    *noteStore
	files    blob.Store
	maxFile  int64
	limiter  ratelimit.Limiter
	checks   []httpserver.HealthCheck
}

func newRouter(d deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		requestid.Middleware,
		clientip.Middleware,
		environment.Middleware(d.env),
		i18n.Middleware(d.tr, nil),
	)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		d.renderer.Write(w, req, apierror.NotFound.New("route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		d.renderer.Write(w, req, methodNotAllowed.New(fmt.Sprintf("%s is not allowed here", req.Method)))
	})

	r.Get("/health", httpserver.HealthCheckHandler(d.log))
	r.Get("/ready", httpserver.HealthCheckHandler(d.log, d.checks...))

	r.Route("/notes", func(r chi.Router) {
		if d.limiter != nil {
			r.Use(ratelimit.Middleware(d.limiter, ratelimit.ByIP,
				ratelimit.WithErrorWriter(d.renderer.Write),
				ratelimit.WithStoreErrorHandler(func(req *http.Request, err error) {
					d.log.ErrorContext(req.Context(), "rate limiter failed", logger.Error(err), logger.Component("ratelimit"))
				}),
			))
		}
		r.Get("/", handler.Wrap(listNotes(d.notes),
			handler.WithBinder[handler.Context, listNotesRequest](params.Bind(listNotesParams)),
			handler.WithErrorHandler[handler.Context, listNotesRequest](d.renderer.Handle),
		))
		r.Post("/", handler.Wrap(createNote(d.notes),
			handler.WithBinder[handler.Context, createNoteRequest](params.Bind(createNoteParams)),
			handler.WithErrorHandler[handler.Context, createNoteRequest](d.renderer.Handle),
		))
		r.Get("/{id}", handler.Wrap(getNote(d.notes), noteIDOptions(d)...))
		r.Delete("/{id}", handler.Wrap(deleteNote(d.notes, d.files), noteIDOptions(d)...))
		r.Put("/{id}/attachment", handler.Wrap(putAttachment(d.notes, d.files, d.maxFile), noteIDOptions(d)...))
		r.Get("/{id}/attachment", handler.Wrap(getAttachment(d.notes, d.files), noteIDOptions(d)...))
	})
	return r
}

func noteIDOptions(d deps) []handler.WrapOption[handler.Context, noteIDRequest] {
	return []handler.WrapOption[handler.Context, noteIDRequest]{
		handler.WithBinder[handler.Context, noteIDRequest](params.Bind(noteIDParams)),
		handler.WithErrorHandler[handler.Context, noteIDRequest](d.renderer.Handle),
	}
}

func listNotes(store *noteStore) handler.HandlerFunc[handler.Context, listNotesRequest] {
	return func(ctx handler.Context, req listNotesRequest) handler.Response {
		notes, err := store.List(ctx, req.After, req.Limit)
		if err != nil {
			return handler.Fail(err)
		}
		meta := map[string]any{"limit": req.Limit}
		if len(notes) == req.Limit {
			meta["next_after"] = notes[len(notes)-1].ID
		}
		return handler.JSON(notes, handler.WithJSONMeta(meta))
	}
}

func createNote(store *noteStore) handler.HandlerFunc[handler.Context, createNoteRequest] {
	return func(ctx handler.Context, req createNoteRequest) handler.Response {
		n, err := store.Create(ctx, note{
			Title:    req.Title,
			Body:     req.Body,
			Priority: req.Priority,
			Tags:     req.Tags,
		})
		if err != nil {
			return handler.Fail(err)
		}
		return handler.JSON(n, handler.WithJSONStatus(http.StatusCreated))
	}
}

func getNote(store *noteStore) handler.HandlerFunc[handler.Context, noteIDRequest] {
	return func(ctx handler.Context, req noteIDRequest) handler.Response {
		n, err := store.Get(ctx, req.ID)
		if err != nil {
			return handler.Fail(err)
		}
		return handler.JSON(n)
	}
}

func deleteNote(store *noteStore, files blob.Store) handler.HandlerFunc[handler.Context, noteIDRequest] {
	return func(ctx handler.Context, req noteIDRequest) handler.Response {
		if err := store.Delete(ctx, req.ID); err != nil {
			return handler.Fail(err)
		}
		if err := files.Delete(ctx, attachmentKey(req.ID)); err != nil {
			return handler.Fail(err)
		}
		return handler.Empty()
	}
}

func attachmentKey(id int64) string {
	return fmt.Sprintf("notes/%d/attachment", id)
}

// putAttachment stores the raw request body as the note's attachment.
func putAttachment(store *noteStore, files blob.Store, limit int64) handler.HandlerFunc[handler.Context, noteIDRequest] {
	return func(ctx handler.Context, req noteIDRequest) handler.Response {
		if _, err := store.Get(ctx, req.ID); err != nil {
			return handler.Fail(err)
		}
		r := ctx.Request()
		body := io.Reader(r.Body)
		if limit > 0 {
			body = http.MaxBytesReader(ctx.ResponseWriter(), r.Body, limit)
		}
		obj, err := files.Put(ctx, attachmentKey(req.ID), body, r.Header.Get("Content-Type"))
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return handler.Fail(payloadTooLarge.New(
					fmt.Sprintf("attachment exceeds %d bytes", maxErr.Limit),
					apierror.Context{"limit": maxErr.Limit},
					err,
				))
			}
			return handler.Fail(err)
		}
		return handler.JSON(map[string]any{
			"size":         obj.Size,
			"content_type": obj.ContentType,
		}, handler.WithJSONStatus(http.StatusCreated))
	}
}

func getAttachment(store *noteStore, files blob.Store) handler.HandlerFunc[handler.Context, noteIDRequest] {
	return func(ctx handler.Context, req noteIDRequest) handler.Response {
		if _, err := store.Get(ctx, req.ID); err != nil {
			return handler.Fail(err)
		}
		obj, body, err := files.Get(ctx, attachmentKey(req.ID))
		if err != nil {
			return handler.Fail(err)
		}
		return attachmentResponse{obj: obj, body: body}
	}
}

type attachmentResponse struct {
	obj  blob.Object
	body io.ReadCloser
}

func (a attachmentResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	defer a.body.Close()
	w.Header().Set("Content-Type", a.obj.ContentType)
	if a.obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(a.obj.Size, 10))
	}
	w.WriteHeader(http.StatusOK)
	// Headers are sent; a copy failure can only be dropped.
	_, _ = io.Copy(w, a.body)
	return nil
}
