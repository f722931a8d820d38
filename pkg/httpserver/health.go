package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/apikit/pkg/logger"
)

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

// HealthCheckHandler answers {"status":"alive"} without checks, and
// {"status":"ready"} when every check passes. A failing check answers 503
// with {"status":"not_ready"} and is logged.
func HealthCheckHandler(log *slog.Logger, checks ...HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, code := "alive", http.StatusOK
		if len(checks) > 0 {
			status = "ready"
			for _, check := range checks {
				if err := check(r.Context()); err != nil {
					if log != nil {
						log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err), logger.Component("httpserver"))
					}
					status, code = "not_ready", http.StatusServiceUnavailable
					break
				}
			}
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
	}
}
