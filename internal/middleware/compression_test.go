package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var largeFeed = strings.Repeat("<entry>hello</entry>", 200)

func newCompressionRouter(config CompressionConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Compression(config))

	feed := func(c *gin.Context) {
		c.Data(http.StatusOK, "application/atom+xml; charset=utf-8", []byte(largeFeed))
	}
	r.GET("/atom.xml", feed)
	r.GET("/metrics/prometheus", feed)
	r.GET("/_astro/logo.png", func(c *gin.Context) {
		c.Data(http.StatusOK, "image/png", []byte(largeFeed))
	})
	return r
}

func TestCompression(t *testing.T) {
	r := newCompressionRouter(DefaultCompressionConfig())

	tests := []struct {
		name         string
		path         string
		acceptGzip   bool
		wantEncoding string
	}{
		{name: "feed for gzip client", path: "/atom.xml", acceptGzip: true, wantEncoding: "gzip"},
		{name: "client without gzip", path: "/atom.xml"},
		{name: "excluded path", path: "/metrics/prometheus", acceptGzip: true},
		{name: "excluded extension", path: "/_astro/logo.png", acceptGzip: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.acceptGzip {
				req.Header.Set("Accept-Encoding", "gzip, deflate")
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantEncoding, w.Header().Get("Content-Encoding"))

			body := w.Body.Bytes()
			if tt.wantEncoding == "gzip" {
				assert.Less(t, len(body), len(largeFeed))
				zr, err := gzip.NewReader(w.Body)
				require.NoError(t, err)
				body, err = io.ReadAll(zr)
				require.NoError(t, err)
			}
			assert.Equal(t, largeFeed, string(body))
		})
	}
}

func TestCompression_InvalidLevel(t *testing.T) {
	cfg := DefaultCompressionConfig()
	cfg.CompressionLevel = 42

	r := newCompressionRouter(cfg)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/atom.xml", nil)
	req.Header.Set("Accept-Encoding", "gzip")

	assert.NotPanics(t, func() { r.ServeHTTP(w, req) })
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
}
