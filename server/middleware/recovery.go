package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/kbukum/mapkit/errors"
	"github.com/kbukum/mapkit/logger"
)

// Recovery returns middleware that turns a panic into a 500 INTERNAL_ERROR
// response and logs the stack.
func Recovery(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("Panic recovered", map[string]interface{}{
						logger.FieldError:     fmt.Sprintf("%v", rec),
						logger.FieldRequestID: r.Header.Get(RequestIDHeader),
						"stack":               string(debug.Stack()),
						"path":                r.URL.Path,
						"method":              r.Method,
					})
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(errors.New(errors.ErrCodeInternal, "Internal server error", http.StatusInternalServerError).ToResponse())
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
