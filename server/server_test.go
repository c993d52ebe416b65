package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/mapkit/component"
	"github.com/kbukum/mapkit/errors"
	"github.com/kbukum/mapkit/logger"
	"github.com/kbukum/mapkit/server/middleware"
)

func newTestServer() *Server {
	cfg := Config{Host: "127.0.0.1"}
	cfg.ApplyDefaults()
	return New(cfg, logger.Nop())
}

func TestConfigDefaultsAndValidate(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Port != 8080 || cfg.MaxBodySize != "1MB" || len(cfg.CORS.AllowedOrigins) == 0 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}

	tests := []Config{
		{Port: 70000},
		{Port: 8080, ReadTimeout: -1},
		{Port: 8080, WriteTimeout: -1},
		{Port: 8080, IdleTimeout: -1},
		{Port: 8080, MaxBodySize: "lots"},
	}
	for _, c := range tests {
		if err := c.Validate(); err == nil {
			t.Errorf("expected error for %+v", c)
		}
	}
}

func TestHandlerAppliesMiddleware(t *testing.T) {
	s := newTestServer()
	s.GinEngine().GET("/boom", func(*gin.Context) { panic("boom") })
	s.RegisterDefaultEndpoints("mapswitch", func(context.Context) []component.Health {
		return []component.Health{{Name: "driver", Status: component.StatusHealthy}}
	})

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/boom", http.NoBody))
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 from recovered panic, got %d", rr.Code)
	}
	if rr.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("expected request id header")
	}

	for _, path := range []string{"/health", "/info", "/metrics"} {
		rr = httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, http.NoBody))
		if rr.Code != http.StatusOK {
			t.Errorf("expected 200 from %s, got %d", path, rr.Code)
		}
	}
}

func TestRespondWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody errors.ErrorCode
	}{
		{"app error", errors.NotFound("entity", "42"), http.StatusNotFound, errors.ErrCodeNotFound},
		{"wrapped app error", fmt.Errorf("switch: %w", errors.ProviderUnsupported("bing")), http.StatusBadRequest, errors.ErrCodeProviderUnsupported},
		{"plain error", fmt.Errorf("boom"), http.StatusInternalServerError, errors.ErrCodeInternal},
	}
	gin.SetMode(gin.TestMode)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rr)
			RespondWithError(c, tc.err)

			if rr.Code != tc.wantCode {
				t.Errorf("expected %d, got %d", tc.wantCode, rr.Code)
			}
			var body errors.ErrorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body.Error.Code != tc.wantBody {
				t.Errorf("expected %s, got %s", tc.wantBody, body.Error.Code)
			}
		})
	}
}

func TestStartStop(t *testing.T) {
	cfg := Config{Host: "127.0.0.1", Port: 0}
	cfg.ApplyDefaults()
	cfg.Port = 0
	s := New(cfg, logger.Nop())
	s.GinEngine().GET("/ping", func(c *gin.Context) { RespondOK(c, "pong") })

	if h := s.Health(context.Background()); h.Status != component.StatusUnhealthy {
		t.Errorf("expected unhealthy before start, got %s", h.Status)
	}
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer func() { _ = s.Stop(context.Background()) }()

	if h := s.Health(context.Background()); h.Status != component.StatusHealthy {
		t.Errorf("expected healthy after start, got %s", h.Status)
	}

	resp, err := http.Get("http://" + s.Addr() + "/ping")
	if err != nil {
		t.Fatalf("GET /ping: %v", err)
	}
	defer resp.Body.Close()

	var body DataResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data != "pong" {
		t.Errorf("expected pong, got %v", body.Data)
	}
}
