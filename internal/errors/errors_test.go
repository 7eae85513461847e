package errors

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigurationErrorResponse(t *testing.T) {
	appErr := NewConfigurationError(CodeMissingToken, "Missing VERCEL_TOKEN env")

	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus)
	assert.Equal(t, CategoryConfiguration, appErr.Category)
	assert.Equal(t, "[missing_token] Missing VERCEL_TOKEN env", appErr.Error())

	resp := appErr.Response()
	assert.Equal(t, CodeMissingToken, resp.Error)
	assert.Equal(t, "Missing VERCEL_TOKEN env", resp.Message)
	assert.Empty(t, resp.Details)
}

func TestExternalAPIErrorPassesStatusThrough(t *testing.T) {
	appErr := NewExternalAPIError("vercel", CodeVercelSummaryError, http.StatusServiceUnavailable, "rate limited")

	assert.Equal(t, http.StatusServiceUnavailable, appErr.HTTPStatus)
	resp := appErr.Response()
	assert.Equal(t, CodeVercelSummaryError, resp.Error)
	assert.Equal(t, "rate limited", resp.Details)
	assert.Empty(t, resp.Message)
}

func TestToAppError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category ErrorCategory
		status   int
		code     string
		message  string
	}{
		{
			name:     "plain error becomes server_error",
			err:      fmt.Errorf("boom"),
			category: CategoryInternal,
			status:   http.StatusInternalServerError,
			code:     CodeServerError,
			message:  "boom",
		},
		{
			name:     "deadline is logged as timeout",
			err:      fmt.Errorf("fetch summary: %w", context.DeadlineExceeded),
			category: CategoryTimeout,
			status:   http.StatusInternalServerError,
			code:     CodeServerError,
			message:  "fetch summary: context deadline exceeded",
		},
		{
			name:     "wrapped AppError is unwrapped",
			err:      fmt.Errorf("resolve: %w", NewConfigurationError(CodeMissingProjectID, "Missing VERCEL_PROJECT_ID")),
			category: CategoryConfiguration,
			status:   http.StatusInternalServerError,
			code:     CodeMissingProjectID,
			message:  "Missing VERCEL_PROJECT_ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := ToAppError(tt.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.category, appErr.Category)
			assert.Equal(t, tt.status, appErr.HTTPStatus)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.message, appErr.Response().Message)
		})
	}

	assert.Nil(t, ToAppError(nil))
}

func TestRecoveryHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RecoveryHandler())
	r.GET("/panic", func(c *gin.Context) {
		panic("kaboom")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"server_error","message":"kaboom"}`, w.Body.String())
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/missing", func(c *gin.Context) {
		Respond(c, NewNotFoundError("no such collection"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"not_found","message":"no such collection"}`, w.Body.String())
}

type failingCloser struct{ closed bool }

func (f *failingCloser) Close() error {
	f.closed = true
	return fmt.Errorf("already closed")
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, WrapError(nil, "fetch %s", "vercel_summary"))

	cause := context.DeadlineExceeded
	err := WrapError(cause, "fetch %s", "vercel_summary")
	assert.EqualError(t, err, "fetch vercel_summary: context deadline exceeded")
	assert.ErrorIs(t, err, cause)
}

func TestSafeClose(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	SafeClose(nil, "nothing")
	assert.Zero(t, buf.Len())

	closer := &failingCloser{}
	SafeClose(closer, "vercel_summary response body")
	assert.True(t, closer.closed)
	assert.Contains(t, buf.String(), `"resource":"vercel_summary response body"`)
	assert.Contains(t, buf.String(), "already closed")
}
