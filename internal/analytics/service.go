package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/chixitown/site/internal/adapters"
	apperrors "github.com/chixitown/site/internal/errors"
	"github.com/chixitown/site/internal/types"
	"golang.org/x/sync/errgroup"
)

// CacheControl is sent with every successful summary response
const CacheControl = "public, s-maxage=300, stale-while-revalidate=600"

// Upstream is the analytics API the service queries
type Upstream interface {
	FetchSummary(ctx context.Context, token string, params url.Values) ([]byte, error)
	FetchTopPages(ctx context.Context, token string, params url.Values) ([]byte, error)
}

// Service builds summary responses from an Upstream
type Service struct {
	upstream Upstream
	now      func() time.Time
}

// NewService creates a Service over upstream
func NewService(upstream Upstream) *Service {
	return &Service{upstream: upstream, now: time.Now}
}

// WithClock overrides the time source
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Summary queries the trailing window for cfg. The summary fetch is required;
// top pages are best effort and never fail the call.
func (s *Service) Summary(ctx context.Context, cfg Config) (*types.SummaryResponse, error) {
	window := TrailingWindow(s.now())

	var (
		g          errgroup.Group
		summaryRaw []byte
		topPages   []json.RawMessage
	)

	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("summary fetch panicked: %v", r)
			}
		}()
		summaryRaw, err = s.upstream.FetchSummary(ctx, cfg.Token, summaryParams(cfg, window))
		return err
	})
	g.Go(func() error {
		topPages = s.collectTopPages(ctx, cfg, window)
		return nil
	})

	if err := g.Wait(); err != nil {
		var upstreamErr *adapters.UpstreamError
		if errors.As(err, &upstreamErr) {
			return nil, apperrors.NewExternalAPIError("vercel", apperrors.CodeVercelSummaryError, upstreamErr.StatusCode, upstreamErr.Body)
		}
		return nil, err
	}

	summary, err := ParseSummary(summaryRaw)
	if err != nil {
		return nil, err
	}

	return &types.SummaryResponse{
		Range:     window,
		ProjectID: cfg.ProjectID,
		Visits:    summary.Visits,
		Pageviews: summary.Pageviews,
		Series:    summary.Series,
		TopPages:  topPages,
	}, nil
}

// collectTopPages never returns an error: any failure, panics included, yields an empty list
func (s *Service) collectTopPages(ctx context.Context, cfg Config, window types.TimeRange) (pages []json.RawMessage) {
	defer func() {
		if r := recover(); r != nil {
			pages = []json.RawMessage{}
		}
	}()

	raw, err := s.upstream.FetchTopPages(ctx, cfg.Token, baseParams(cfg, window))
	if err != nil {
		return []json.RawMessage{}
	}
	return NormalizeTopPages(raw)
}

func baseParams(cfg Config, window types.TimeRange) url.Values {
	params := url.Values{}
	setIfPresent(params, "projectId", cfg.ProjectID)
	setIfPresent(params, "teamId", cfg.TeamID)
	setIfPresent(params, "from", window.From)
	setIfPresent(params, "to", window.To)
	return params
}

func summaryParams(cfg Config, window types.TimeRange) url.Values {
	params := baseParams(cfg, window)
	params.Set("unit", "day")
	return params
}

func setIfPresent(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}
