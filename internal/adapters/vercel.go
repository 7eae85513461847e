package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/chixitown/site/internal/errors"
	"github.com/chixitown/site/internal/monitoring"
)

const (
	// DefaultVercelBaseURL is the public Vercel REST API
	DefaultVercelBaseURL = "https://api.vercel.com"

	summaryPath  = "/v1/analytics/summary"
	topPagesPath = "/v1/analytics/top-pages"
)

// UpstreamError is returned for any non-2xx response; Body is the raw payload
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("vercel API error: status %d, body: %s", e.StatusCode, e.Body)
}

// VercelAdapter fetches Web Analytics data from the Vercel API
type VercelAdapter struct {
	baseURL string
	client  *http.Client
	metrics *monitoring.Metrics
	logger  *monitoring.Logger
}

// VercelOption configures a VercelAdapter
type VercelOption func(*VercelAdapter)

// WithHTTPClient replaces the default client
func WithHTTPClient(client *http.Client) VercelOption {
	return func(v *VercelAdapter) {
		v.client = client
	}
}

// WithMonitoring records every upstream call in metrics and logs
func WithMonitoring(metrics *monitoring.Metrics, logger *monitoring.Logger) VercelOption {
	return func(v *VercelAdapter) {
		v.metrics = metrics
		v.logger = logger
	}
}

// NewVercelAdapter creates an adapter against baseURL whose calls are bounded by timeout
func NewVercelAdapter(baseURL string, timeout time.Duration, opts ...VercelOption) *VercelAdapter {
	if baseURL == "" {
		baseURL = DefaultVercelBaseURL
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   5,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	v := &VercelAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// FetchSummary calls the analytics summary endpoint and returns the raw body
func (v *VercelAdapter) FetchSummary(ctx context.Context, token string, params url.Values) ([]byte, error) {
	return v.get(ctx, "vercel_summary", summaryPath, token, params)
}

// FetchTopPages calls the top-pages endpoint and returns the raw body
func (v *VercelAdapter) FetchTopPages(ctx context.Context, token string, params url.Values) ([]byte, error) {
	return v.get(ctx, "vercel_top_pages", topPagesPath, token, params)
}

func (v *VercelAdapter) get(ctx context.Context, apiName, path, token string, params url.Values) ([]byte, error) {
	endpoint := v.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.WrapError(err, "build %s request", apiName)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := v.client.Do(req)
	if err != nil {
		v.observe(apiName, path, 0, start, false)
		return nil, apperrors.WrapError(err, "fetch %s", apiName)
	}
	defer apperrors.SafeClose(resp.Body, apiName+" response body")

	body, err := io.ReadAll(resp.Body)
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	v.observe(apiName, path, resp.StatusCode, start, ok && err == nil)
	if err != nil {
		return nil, apperrors.WrapError(err, "read %s response", apiName)
	}

	if !ok {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func (v *VercelAdapter) observe(apiName, path string, status int, start time.Time, success bool) {
	duration := time.Since(start)
	if v.metrics != nil {
		v.metrics.RecordExternalAPIRequest(apiName, success, duration)
	}
	if v.logger != nil {
		v.logger.ExternalAPILogger(apiName, http.MethodGet, path, status, duration, success)
	}
}
