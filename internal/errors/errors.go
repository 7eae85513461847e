package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/chixitown/site/internal/types"
	"github.com/gin-gonic/gin"
)

// ErrorCategory defines the type of error for proper handling
type ErrorCategory string

const (
	CategoryConfiguration ErrorCategory = "configuration"
	CategoryExternalAPI   ErrorCategory = "external_api"
	CategoryNetwork       ErrorCategory = "network"
	CategoryTimeout       ErrorCategory = "timeout"
	CategoryNotFound      ErrorCategory = "not_found"
	CategoryInternal      ErrorCategory = "internal"
)

// Wire codes written to the "error" field of JSON error bodies
const (
	CodeMissingToken       = "missing_token"
	CodeMissingProjectID   = "missing_project_id"
	CodeVercelSummaryError = "vercel_summary_error"
	CodeServerError        = "server_error"
	CodeNotFound           = "not_found"
)

// AppError wraps an errbuilder error with the HTTP status and wire code it maps to
type AppError struct {
	*errbuilder.ErrBuilder
	Category   ErrorCategory `json:"category"`
	HTTPStatus int           `json:"http_status"`
	Code       string        `json:"error"`
	Details    string        `json:"details,omitempty"`
	Timestamp  time.Time     `json:"timestamp"`
	StackTrace string        `json:"stack_trace,omitempty"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.ErrBuilder.Msg)
}

// Unwrap returns the underlying cause
func (e *AppError) Unwrap() error {
	return e.ErrBuilder.Unwrap()
}

// Response renders the error as the public JSON body
func (e *AppError) Response() types.ErrorResponse {
	return types.ErrorResponse{
		Error:   e.Code,
		Message: e.ErrBuilder.Msg,
		Details: e.Details,
	}
}

// NewAppError creates an AppError from errbuilder with additional context
func NewAppError(builder *errbuilder.ErrBuilder, category ErrorCategory, httpStatus int, code string) *AppError {
	return &AppError{
		ErrBuilder: builder,
		Category:   category,
		HTTPStatus: httpStatus,
		Code:       code,
		Timestamp:  time.Now(),
	}
}

// NewConfigurationError reports a missing or invalid server-side setting.
// These are operator mistakes, so they surface as 500 with a distinct code.
func NewConfigurationError(code, message string) *AppError {
	errorMap := errbuilder.ErrorMap{}
	errorMap.Set("config_details", errors.New(code))

	builder := errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(message).
		WithDetails(errbuilder.NewErrDetails(errorMap))

	return NewAppError(builder, CategoryConfiguration, http.StatusInternalServerError, code)
}

// NewExternalAPIError mirrors a non-2xx upstream response: its status is passed
// through and its raw body becomes the details field.
func NewExternalAPIError(apiName, code string, status int, body string) *AppError {
	errorMap := errbuilder.ErrorMap{}
	errorMap.Set("api_name", errors.New(apiName))

	builder := errbuilder.New().
		WithCode(errbuilder.CodeUnavailable).
		WithDetails(errbuilder.NewErrDetails(errorMap))

	appErr := NewAppError(builder, CategoryExternalAPI, status, code)
	appErr.Details = body
	return appErr
}

// NewNotFoundError creates a 404 for unknown resources
func NewNotFoundError(message string) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(message)

	return NewAppError(builder, CategoryNotFound, http.StatusNotFound, CodeNotFound)
}

// NewInternalError creates a server_error whose message is the cause text
func NewInternalError(cause error) *AppError {
	return newInternal(CategoryInternal, cause)
}

func newInternal(category ErrorCategory, cause error) *AppError {
	msg := "unknown error"
	if cause != nil {
		msg = cause.Error()
	}

	builder := errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(msg)

	if cause != nil {
		builder = builder.WithCause(cause)
	}

	appErr := NewAppError(builder, category, http.StatusInternalServerError, CodeServerError)

	// Capture stack trace in development/debug mode
	if gin.Mode() == gin.DebugMode || gin.Mode() == gin.TestMode {
		appErr.StackTrace = captureStackTrace()
	}

	return appErr
}

// captureStackTrace captures a stack trace for debugging
func captureStackTrace() string {
	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}

// ToAppError converts any error to an AppError. Anything that is not already an
// AppError becomes a server_error; the category only steers log levels.
func ToAppError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return newInternal(CategoryTimeout, err)
	case isNetError(err):
		return newInternal(CategoryNetwork, err)
	}

	return NewInternalError(err)
}

func isNetError(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr)
}

// RecoveryHandler turns panics into a server_error response
func RecoveryHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		appErr := NewInternalError(fmt.Errorf("%v", recovered))
		appErr.StackTrace = captureStackTrace()

		LogError(c, appErr)
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.Response())
	})
}

// Respond logs err and writes its JSON body
func Respond(c *gin.Context, err error) {
	appErr := ToAppError(err)
	LogError(c, appErr)
	c.JSON(appErr.HTTPStatus, appErr.Response())
}

// LogError logs an error with appropriate level and context
func LogError(c *gin.Context, err *AppError) {
	logEntry := slog.With(
		"error_category", err.Category,
		"error_code", err.Code,
		"http_status", err.HTTPStatus,
		"ip", c.ClientIP(),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"request_id", c.GetString("request_id"),
	)

	errorMsg := err.ErrBuilder.Msg
	if errorMsg == "" {
		errorMsg = err.Code
	}

	switch err.Category {
	case CategoryNotFound:
		logEntry.Warn(errorMsg)
	case CategoryExternalAPI, CategoryNetwork, CategoryTimeout:
		if err.Details != "" {
			logEntry.Warn(errorMsg, "details", err.Details)
		} else if cause := err.ErrBuilder.Unwrap(); cause != nil {
			logEntry.Warn(errorMsg, "cause", cause)
		} else {
			logEntry.Warn(errorMsg)
		}
	default:
		if cause := err.ErrBuilder.Unwrap(); cause != nil {
			logEntry.Error(errorMsg, "cause", cause)
		} else {
			logEntry.Error(errorMsg)
		}
	}

	if err.StackTrace != "" && (gin.Mode() == gin.DebugMode || gin.Mode() == gin.TestMode) {
		logEntry.Debug("stack_trace", "trace", err.StackTrace)
	}
}

// WrapError wraps an error with additional context
func WrapError(err error, message string, args ...interface{}) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %w", fmt.Sprintf(message, args...), err)
}

// SafeClose safely closes a resource and logs any errors
func SafeClose(closer interface{ Close() error }, resourceName string) {
	if closer == nil {
		return
	}

	if err := closer.Close(); err != nil {
		slog.Warn("Failed to close resource",
			"resource", resourceName,
			"error", err)
	}
}
