package httpserver_test

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/apikit/pkg/httpserver"
)

func listen(t *testing.T) net.Listener {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	return l
}

func TestServe(t *testing.T) {
	t.Parallel()

	t.Run("stops on context cancel", func(t *testing.T) {
		t.Parallel()
		l := listen(t)
		srv := httpserver.New(httpserver.WithShutdownTimeout(200 * time.Millisecond))
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() {
			done <- srv.Serve(ctx, l, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTeapot)
			}))
		}()

		resp, err := http.Get("http://" + l.Addr().String())
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		assert.Equal(t, http.StatusTeapot, resp.StatusCode)

		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			require.Fail(t, "serve did not return")
		}
		assert.NoError(t, srv.Shutdown(context.Background()))
	})

	t.Run("second serve fails", func(t *testing.T) {
		t.Parallel()
		srv := httpserver.New()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		first := listen(t)
		done := make(chan error, 1)
		go func() { done <- srv.Serve(ctx, first, nil) }()

		require.Eventually(t, func() bool {
			resp, err := http.Get("http://" + first.Addr().String())
			if err != nil {
				return false
			}
			_ = resp.Body.Close()
			return true
		}, 2*time.Second, 20*time.Millisecond)

		err := srv.Serve(ctx, listen(t), nil)
		assert.ErrorIs(t, err, httpserver.ErrAlreadyRunning)

		cancel()
		assert.NoError(t, <-done)
	})

	t.Run("run reports listen errors", func(t *testing.T) {
		t.Parallel()
		err := httpserver.New(httpserver.WithAddr("256.0.0.1:0")).Run(context.Background(), nil)
		assert.ErrorIs(t, err, httpserver.ErrStart)
	})

	t.Run("shutdown before serve", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, httpserver.New().Shutdown(context.Background()))
	})
}

func TestHealthCheckHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		checks []httpserver.HealthCheck
		code   int
		body   string
	}{
		{"liveness", nil, http.StatusOK, `{"status":"alive"}`},
		{"ready", []httpserver.HealthCheck{func(context.Context) error { return nil }}, http.StatusOK, `{"status":"ready"}`},
		{"not ready", []httpserver.HealthCheck{
			func(context.Context) error { return nil },
			func(context.Context) error { return errors.New("db down") },
		}, http.StatusServiceUnavailable, `{"status":"not_ready"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			httpserver.HealthCheckHandler(nil, tt.checks...)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tt.code, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}
