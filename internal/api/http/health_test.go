package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	up := PingFunc(func(context.Context) error { return nil })
	down := PingFunc(func(context.Context) error { return errors.New("refused") })

	tests := []struct {
		name       string
		deps       map[string]Pinger
		path       string
		wantStatus int
		wantChecks map[string]string
	}{
		{
			name:       "liveness ignores dependencies",
			deps:       map[string]Pinger{"db": down},
			path:       "/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "ready when all dependencies answer",
			deps:       map[string]Pinger{"db": up, "redis": up, "cache": nil},
			path:       "/healthz",
			wantStatus: http.StatusOK,
			wantChecks: map[string]string{"db": "up", "redis": "up", "cache": "disabled"},
		},
		{
			name:       "not ready when one is down",
			deps:       map[string]Pinger{"db": up, "redis": down},
			path:       "/healthz",
			wantStatus: http.StatusServiceUnavailable,
			wantChecks: map[string]string{"db": "up", "redis": "down"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			NewHealthHandler("agency-backend", "1.0.0", tt.deps).RegisterRoutes(r)

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.Equal(t, tt.wantStatus, rr.Code)

			var resp HealthResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "agency-backend", resp.Service)
			assert.Equal(t, tt.wantChecks, resp.Checks)
		})
	}
}
