// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package directory

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/poiesic/facultydir/core"
	"github.com/poiesic/facultydir/search"
	"github.com/poiesic/facultydir/storage"
)

const (
	defaultTrendingTTL    = 5 * time.Minute
	defaultTrendingWindow = 7 * 24 * time.Hour
	defaultTrendingLimit  = 10
)

type trendingEntry struct {
	names     []string
	fetchedAt time.Time
}

// TrendingSource derives trending lab-or-entity names for a department from
// click counts over a sliding window, with a per-department TTL cache.
type TrendingSource struct {
	repo   storage.AnalyticsRepository
	window time.Duration
	limit  int
	ttl    time.Duration
	clock  Clock
	logger *slog.Logger

	mu    sync.Mutex
	cache map[string]trendingEntry
}

var _ search.TrendingProvider = (*TrendingSource)(nil)

// TrendingOption configures a TrendingSource.
type TrendingOption func(*TrendingSource) error

// WithTrendingWindow sets the sliding window clicks are counted over.
func WithTrendingWindow(window time.Duration) TrendingOption {
	return func(s *TrendingSource) error {
		if window <= 0 {
			return ErrInvalidWindow
		}
		s.window = window
		return nil
	}
}

// WithTrendingLimit caps how many names a department can trend at once.
func WithTrendingLimit(limit int) TrendingOption {
	return func(s *TrendingSource) error {
		if limit <= 0 {
			return storage.ErrInvalidQuery
		}
		s.limit = limit
		return nil
	}
}

// WithTrendingTTL overrides the per-department cache lifetime.
func WithTrendingTTL(ttl time.Duration) TrendingOption {
	return func(s *TrendingSource) error {
		if ttl <= 0 {
			return ErrInvalidTTL
		}
		s.ttl = ttl
		return nil
	}
}

// WithTrendingClock overrides the clock used for cache expiry and window
// cutoffs.
func WithTrendingClock(clock Clock) TrendingOption {
	return func(s *TrendingSource) error {
		s.clock = clock
		return nil
	}
}

// WithTrendingLogger sets the logger.
func WithTrendingLogger(logger *slog.Logger) TrendingOption {
	return func(s *TrendingSource) error {
		s.logger = logger
		return nil
	}
}

// NewTrendingSource creates a trending source over the given repository.
func NewTrendingSource(repo storage.AnalyticsRepository, opts ...TrendingOption) (*TrendingSource, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	s := &TrendingSource{
		repo:   repo,
		window: defaultTrendingWindow,
		limit:  defaultTrendingLimit,
		ttl:    defaultTrendingTTL,
		clock:  systemClock{},
		logger: slog.Default(),
		cache:  make(map[string]trendingEntry),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// TrendingNames returns the trending names for a department, most clicked
// first. A storage failure yields no names rather than an error;
// cancellation is propagated.
func (s *TrendingSource) TrendingNames(ctx context.Context, department string) ([]string, error) {
	department = core.NormalizeDepartment(department)
	if department == "" {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if entry, ok := s.cache[department]; ok && now.Sub(entry.fetchedAt) < s.ttl {
		return entry.names, nil
	}

	names, err := s.repo.TopNames(ctx, department, now.Add(-s.window), s.limit)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		s.logger.Warn("trending lookup failed",
			slog.String("department", department),
			slog.String("error", err.Error()))
		return nil, nil
	}

	s.cache[department] = trendingEntry{names: names, fetchedAt: now}
	return names, nil
}

// Invalidate drops the cached names for a department, or every department
// when the name is empty.
func (s *TrendingSource) Invalidate(department string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if department == "" {
		s.cache = make(map[string]trendingEntry)
		return
	}
	delete(s.cache, core.NormalizeDepartment(department))
}
