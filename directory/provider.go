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
	defaultCatalogTTL   = 5 * time.Minute
	defaultFetchTimeout = 5 * time.Second
)

// CachedCatalog serves the full catalog from storage with a TTL cache in
// front. A fetch failure serves the stale cache when one exists, otherwise
// an empty catalog; cancellation is propagated instead.
type CachedCatalog struct {
	repo         storage.CatalogRepository
	ttl          time.Duration
	fetchTimeout time.Duration
	clock        Clock
	logger       *slog.Logger

	mu        sync.Mutex
	cached    core.Catalog
	fetchedAt time.Time
}

var _ search.CatalogProvider = (*CachedCatalog)(nil)

// CatalogOption configures a CachedCatalog.
type CatalogOption func(*CachedCatalog) error

// WithCatalogTTL overrides the default 5 minute cache lifetime.
func WithCatalogTTL(ttl time.Duration) CatalogOption {
	return func(c *CachedCatalog) error {
		if ttl <= 0 {
			return ErrInvalidTTL
		}
		c.ttl = ttl
		return nil
	}
}

// WithCatalogClock overrides the clock used for cache expiry.
func WithCatalogClock(clock Clock) CatalogOption {
	return func(c *CachedCatalog) error {
		c.clock = clock
		return nil
	}
}

// WithCatalogLogger sets the logger.
func WithCatalogLogger(logger *slog.Logger) CatalogOption {
	return func(c *CachedCatalog) error {
		c.logger = logger
		return nil
	}
}

// WithFetchTimeout bounds how long a storage fetch may take.
func WithFetchTimeout(d time.Duration) CatalogOption {
	return func(c *CachedCatalog) error {
		if d <= 0 {
			return ErrInvalidTTL
		}
		c.fetchTimeout = d
		return nil
	}
}

// NewCachedCatalog creates a catalog provider over the given repository.
func NewCachedCatalog(repo storage.CatalogRepository, opts ...CatalogOption) (*CachedCatalog, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	c := &CachedCatalog{
		repo:         repo,
		ttl:          defaultCatalogTTL,
		fetchTimeout: defaultFetchTimeout,
		clock:        systemClock{},
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Catalog returns the cached catalog, refreshing it from storage when the
// cache has expired.
func (c *CachedCatalog) Catalog(ctx context.Context) (core.Catalog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if c.cached != nil && now.Sub(c.fetchedAt) < c.ttl {
		return c.cached, nil
	}

	fetchCtx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	catalog, err := c.repo.GetCatalog(fetchCtx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
		}
		if c.cached != nil {
			c.logger.Warn("catalog refresh failed, serving stale cache",
				slog.String("error", err.Error()),
				slog.Time("fetchedAt", c.fetchedAt))
			return c.cached, nil
		}
		c.logger.Warn("catalog fetch failed, serving empty catalog",
			slog.String("error", err.Error()))
		return core.Catalog{}, nil
	}

	c.cached = catalog
	c.fetchedAt = now
	return catalog, nil
}

// Invalidate drops the cache so the next Catalog call hits storage.
func (c *CachedCatalog) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = nil
	c.fetchedAt = time.Time{}
}
