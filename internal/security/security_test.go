package security

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(config SecurityConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SecurityHeadersMiddleware(config))
	api := r.Group("/api", CORS(config))
	api.GET("/va-summary", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		name       string
		enableHSTS bool
	}{
		{name: "without HSTS", enableHSTS: false},
		{name: "with HSTS", enableHSTS: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(SecurityConfig{EnableHSTS: tt.enableHSTS})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/va-summary", nil))

			assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
			assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
			assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'self'")
			if tt.enableHSTS {
				assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
			} else {
				assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
			}
		})
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		origins     []string
		origin      string
		wantAllowed string
	}{
		{
			name:        "listed origin is echoed",
			origins:     []string{"https://chixitown.com"},
			origin:      "https://chixitown.com",
			wantAllowed: "https://chixitown.com",
		},
		{
			name:        "unlisted origin gets no header",
			origins:     []string{"https://chixitown.com"},
			origin:      "https://evil.example",
			wantAllowed: "",
		},
		{
			name:        "empty list allows everyone",
			origins:     nil,
			origin:      "https://anywhere.example",
			wantAllowed: "*",
		},
		{
			name:        "wildcard allows everyone",
			origins:     []string{"*"},
			origin:      "https://anywhere.example",
			wantAllowed: "*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(SecurityConfig{AllowedOrigins: tt.origins})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/va-summary", nil)
			req.Header.Set("Origin", tt.origin)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantAllowed, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
