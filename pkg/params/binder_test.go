package params_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/apikit/pkg/params"
)

type updateUserRequest struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Admin bool   `json:"admin"`
}

func TestBind(t *testing.T) {
	schema := params.MustDefine(func(s *params.Scope) {
		s.Requires("id", params.Coerce(params.Integer))
		s.Requires("name")
		s.Optional("admin", params.Coerce(params.Boolean))
	})
	bind := params.Bind(schema)

	serve := func(req *http.Request) (updateUserRequest, error) {
		var (
			got     updateUserRequest
			bindErr error
		)
		r := chi.NewRouter()
		r.Put("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
			bindErr = bind(r, &got)
		})
		r.ServeHTTP(httptest.NewRecorder(), req)
		return got, bindErr
	}

	t.Run("path, query and body are merged and coerced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/users/42?admin=true", strings.NewReader(`{"name":"Ann"}`))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")

		got, err := serve(req)
		require.NoError(t, err)
		assert.Equal(t, updateUserRequest{ID: 42, Name: "Ann", Admin: true}, got)
	})

	t.Run("validation failure", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/users/42", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")

		_, err := serve(req)
		e := requireAPIError(t, err)
		assert.Equal(t, "presence", e.Name())
		assert.Equal(t, "name", e.Context()["attribute"])
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/users/42", strings.NewReader(`[1,2]`))
		req.Header.Set("Content-Type", "application/json")

		_, err := serve(req)
		e := requireAPIError(t, err)
		assert.Equal(t, "bad_request", e.Name())
	})

	t.Run("raw payload", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?id=7&name=x&tag=a&tag=b", nil)
		var payload map[string]any
		require.NoError(t, bind(req, &payload))
		assert.Equal(t, int64(7), payload["id"])
		assert.Equal(t, []any{"a", "b"}, payload["tag"])
	})
}
