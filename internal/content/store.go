package content

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	apperrors "github.com/chixitown/site/internal/errors"
	"github.com/chixitown/site/internal/monitoring"
	"github.com/radovskyb/watcher"
)

// Stats summarizes the loaded content
type Stats struct {
	Articles    int            `json:"articles"`
	Drafts      int            `json:"drafts"`
	Collections map[string]int `json:"collections"`
	LoadedAt    time.Time      `json:"loaded_at"`
}

// Store holds the loaded collections. Reload swaps the whole set at once.
type Store struct {
	dir   string
	names []string

	mu          sync.RWMutex
	collections map[string][]*Article
	loadedAt    time.Time

	metrics *monitoring.Metrics
	logger  *monitoring.Logger
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithMonitoring records reloads in metrics and logs
func WithMonitoring(metrics *monitoring.Metrics, logger *monitoring.Logger) StoreOption {
	return func(s *Store) {
		s.metrics = metrics
		s.logger = logger
	}
}

// NewStore creates an empty store for the named collections under dir
func NewStore(dir string, names []string, opts ...StoreOption) *Store {
	s := &Store{
		dir:         dir,
		names:       slices.Clone(names),
		collections: map[string][]*Article{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reload re-reads all collections. On error the previous content is kept.
func (s *Store) Reload() error {
	start := time.Now()
	collections, err := Load(s.dir, s.names)
	if s.metrics != nil {
		s.metrics.RecordContentReload(err)
	}
	if err != nil {
		return apperrors.WrapError(err, "load content from %s", s.dir)
	}

	s.mu.Lock()
	s.collections = collections
	s.loadedAt = time.Now()
	s.mu.Unlock()

	if s.logger != nil {
		stats := s.Stats()
		s.logger.ContentLogger("reload", stats.Articles, stats.Drafts, time.Since(start))
	}
	return nil
}

// Published returns all non-draft articles across collections, newest first
func (s *Store) Published() []*Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Article
	for _, name := range s.names {
		out = appendPublished(out, s.collections[name])
	}
	SortNewestFirst(out)
	return out
}

// Collection returns the non-draft articles of one collection, newest first.
// Unknown names yield an empty list.
func (s *Store) Collection(name string) []*Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return appendPublished(make([]*Article, 0), s.collections[name])
}

// Names returns the configured collection names
func (s *Store) Names() []string {
	return slices.Clone(s.names)
}

func appendPublished(dst, src []*Article) []*Article {
	for _, a := range src {
		if !a.Draft {
			dst = append(dst, a)
		}
	}
	return dst
}

// Stats returns counts per collection
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{Collections: make(map[string]int, len(s.names)), LoadedAt: s.loadedAt}
	for _, name := range s.names {
		for _, a := range s.collections[name] {
			if a.Draft {
				stats.Drafts++
				continue
			}
			stats.Articles++
			stats.Collections[name]++
		}
	}
	return stats
}

// Watch polls the content directory and reloads on every change until ctx
// is done. It blocks.
func (s *Store) Watch(ctx context.Context, interval time.Duration) error {
	if interval < time.Millisecond {
		return fmt.Errorf("watch interval too short: %s", interval)
	}

	w := watcher.New()
	w.SetMaxEvents(1)

	if err := w.AddRecursive(s.dir); err != nil {
		return fmt.Errorf("watch %s: %w", s.dir, err)
	}

	go func() {
		if err := w.Start(interval); err != nil {
			slog.Error("Content watcher failed", "error", err)
		}
	}()
	// Close is a no-op until Start has marked the watcher running
	w.Wait()

	for {
		select {
		case event := <-w.Event:
			if err := s.Reload(); err != nil {
				slog.Warn("Content reload failed", "trigger", event.Path, "error", err)
			}
		case err := <-w.Error:
			slog.Warn("Content watcher error", "error", err)
		case <-ctx.Done():
			go w.Close()
			drain(w)
			return nil
		}
	}
}

// drain discards pending events until the watcher reports it has closed
func drain(w *watcher.Watcher) {
	for {
		select {
		case <-w.Event:
		case <-w.Error:
		case <-w.Closed:
			return
		}
	}
}
