package analytics

import (
	"context"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/facultydir/core"
	"github.com/poiesic/facultydir/storage"
)

const writeTimeout = 5 * time.Second

// Tracker records click and view events asynchronously. Tracking never
// blocks the caller on storage; write errors are logged, not returned.
type Tracker struct {
	repo     storage.AnalyticsRepository
	pool     *ants.Pool
	logger   *slog.Logger
	released atomic.Bool
}

// Option configures a Tracker.
type Option func(*Tracker) error

// WithPoolSize sets the worker pool size for asynchronous writes.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(t *Tracker) error {
		if size < 1 {
			size = 1
		}
		if t.pool != nil {
			t.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		t.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) error {
		if logger == nil {
			logger = slog.Default()
		}
		t.logger = logger
		return nil
	}
}

// NewTracker creates a tracker over the given repository.
func NewTracker(repo storage.AnalyticsRepository, opts ...Option) (*Tracker, error) {
	if repo == nil {
		return nil, ErrAnalyticsRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	t := &Tracker{
		repo:   repo,
		pool:   pool,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(t); optErr != nil {
			t.Release()
			return nil, optErr
		}
	}

	return t, nil
}

// Click holds the fields of a tracked interaction.
type Click struct {
	EntityName string
	Lab        string
	Department string
	Type       core.ClickType
}

// Track records an interaction asynchronously. The record is validated
// before submission so malformed input surfaces to the caller; the storage
// write happens on the pool and its errors are only logged.
func (t *Tracker) Track(click Click) error {
	if t.released.Load() {
		return ErrTrackerReleased
	}

	record := &core.ClickRecord{
		EntityName: click.EntityName,
		Lab:        click.Lab,
		Department: click.Department,
		Type:       click.Type,
		Timestamp:  time.Now().UTC(),
	}
	if err := core.ValidateClickRecord(record); err != nil {
		return err
	}

	return t.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		if err := t.repo.AddClick(ctx, record); err != nil {
			t.logger.Error("error recording click",
				"err", err,
				"entity", record.EntityName,
				"department", record.Department)
		}
	})
}

// TrackClick records a profile or website click.
func (t *Tracker) TrackClick(department, entityName, lab string, clickType core.ClickType) error {
	return t.Track(Click{
		EntityName: entityName,
		Lab:        lab,
		Department: department,
		Type:       clickType,
	})
}

// TrackView records a result-view event.
func (t *Tracker) TrackView(department, entityName, lab string) error {
	return t.Track(Click{
		EntityName: entityName,
		Lab:        lab,
		Department: department,
		Type:       core.ClickView,
	})
}

// Release stops the worker pool. Queued writes may be dropped; the tracker
// must not be used afterwards.
func (t *Tracker) Release() {
	t.released.Store(true)
	if t.pool != nil {
		t.pool.Release()
	}
}
