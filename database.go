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


package facultydir

import (
	"log/slog"
	"time"

	"github.com/poiesic/facultydir/analytics"
	"github.com/poiesic/facultydir/datafix"
	"github.com/poiesic/facultydir/directory"
	"github.com/poiesic/facultydir/ingestion"
	"github.com/poiesic/facultydir/search"
	"github.com/poiesic/facultydir/storage"
	"github.com/poiesic/facultydir/storage/badger"
)

// Database wires the storage backend, data-access layer, and engine
// factories into one handle. It is the entry point for embedding the
// directory in an application.
type Database struct {
	backend       *badger.Backend
	catalogRepo   storage.CatalogRepository
	analyticsRepo storage.AnalyticsRepository
	catalog       *directory.CachedCatalog
	trending      *directory.TrendingSource
	logger        *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	inMemory       bool
	cacheTTL       time.Duration
	trendingWindow time.Duration
	trendingLimit  int
	clock          directory.Clock
	logger         *slog.Logger
}

// WithInMemory opens an in-memory backend instead of an on-disk one.
// Useful for tests and ephemeral deployments.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// WithCacheTTL overrides the catalog and trending cache lifetimes.
func WithCacheTTL(ttl time.Duration) DatabaseOption {
	return func(o *databaseOptions) {
		o.cacheTTL = ttl
	}
}

// WithTrendingWindow sets the sliding window trending is derived over.
func WithTrendingWindow(window time.Duration) DatabaseOption {
	return func(o *databaseOptions) {
		o.trendingWindow = window
	}
}

// WithTrendingLimit caps how many names a department can trend at once.
func WithTrendingLimit(limit int) DatabaseOption {
	return func(o *databaseOptions) {
		o.trendingLimit = limit
	}
}

// WithClock overrides the clock used for cache expiry and trending windows.
func WithClock(clock directory.Clock) DatabaseOption {
	return func(o *databaseOptions) {
		o.clock = clock
	}
}

// WithLogger sets the logger used by all wired components.
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		o.logger = logger
	}
}

// NewDatabase opens the directory database at filePath and wires the
// repositories and data-access layer.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{}
	for _, opt := range opts {
		opt(options)
	}

	logger := options.logger
	if logger == nil {
		logger = slog.Default()
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	catalogRepo := badger.NewCatalogRepository(backend, logger)

	analyticsRepo, err := badger.NewAnalyticsRepository(backend, logger)
	if err != nil {
		catalogRepo.Close()
		backend.Close()
		return nil, err
	}

	catalogOpts := []directory.CatalogOption{directory.WithCatalogLogger(logger)}
	trendingOpts := []directory.TrendingOption{directory.WithTrendingLogger(logger)}
	if options.cacheTTL > 0 {
		catalogOpts = append(catalogOpts, directory.WithCatalogTTL(options.cacheTTL))
		trendingOpts = append(trendingOpts, directory.WithTrendingTTL(options.cacheTTL))
	}
	if options.trendingWindow > 0 {
		trendingOpts = append(trendingOpts, directory.WithTrendingWindow(options.trendingWindow))
	}
	if options.trendingLimit > 0 {
		trendingOpts = append(trendingOpts, directory.WithTrendingLimit(options.trendingLimit))
	}
	if options.clock != nil {
		catalogOpts = append(catalogOpts, directory.WithCatalogClock(options.clock))
		trendingOpts = append(trendingOpts, directory.WithTrendingClock(options.clock))
	}

	catalog, err := directory.NewCachedCatalog(catalogRepo, catalogOpts...)
	if err != nil {
		analyticsRepo.Close()
		catalogRepo.Close()
		backend.Close()
		return nil, err
	}

	trending, err := directory.NewTrendingSource(analyticsRepo, trendingOpts...)
	if err != nil {
		analyticsRepo.Close()
		catalogRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:       backend,
		catalogRepo:   catalogRepo,
		analyticsRepo: analyticsRepo,
		catalog:       catalog,
		trending:      trending,
		logger:        logger,
	}, nil
}

// Close closes the repositories and the backend.
func (db *Database) Close() error {
	if err := db.analyticsRepo.Close(); err != nil {
		db.logger.Error("error closing analytics repository", "err", err)
	}
	if err := db.catalogRepo.Close(); err != nil {
		db.logger.Error("error closing catalog repository", "err", err)
	}
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// CatalogRepository returns the roster store.
func (db *Database) CatalogRepository() storage.CatalogRepository {
	return db.catalogRepo
}

// AnalyticsRepository returns the click log.
func (db *Database) AnalyticsRepository() storage.AnalyticsRepository {
	return db.analyticsRepo
}

// Catalog returns the cached catalog provider.
func (db *Database) Catalog() *directory.CachedCatalog {
	return db.catalog
}

// Trending returns the trending-name source.
func (db *Database) Trending() *directory.TrendingSource {
	return db.trending
}

// NewSearcher creates a searcher over the cached catalog and trending
// source.
func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	opts = append([]search.Option{
		search.WithTrendingProvider(db.trending),
		search.WithLogger(db.logger),
	}, opts...)
	return search.NewSearcher(db.catalog, opts...)
}

// NewTracker creates a click tracker over the click log.
func (db *Database) NewTracker(opts ...analytics.Option) (*analytics.Tracker, error) {
	opts = append([]analytics.Option{analytics.WithLogger(db.logger)}, opts...)
	return analytics.NewTracker(db.analyticsRepo, opts...)
}

// NewImporter creates a roster importer over the roster store.
func (db *Database) NewImporter(opts ...ingestion.Option) (*ingestion.Importer, error) {
	opts = append([]ingestion.Option{ingestion.WithLogger(db.logger)}, opts...)
	return ingestion.NewImporter(db.catalogRepo, opts...)
}

// NewFixer creates a canonical-name fixer over the roster store.
func (db *Database) NewFixer(opts ...datafix.Option) (*datafix.Fixer, error) {
	opts = append([]datafix.Option{datafix.WithLogger(db.logger)}, opts...)
	return datafix.NewFixer(db.catalogRepo, opts...)
}
