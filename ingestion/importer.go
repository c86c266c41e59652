package ingestion

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/facultydir/core"
	"github.com/poiesic/facultydir/storage"
)

// Importer validates roster data and writes it to storage, one department
// per worker.
type Importer struct {
	repo   storage.CatalogRepository
	pool   *ants.Pool
	logger *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer) error

// WithPoolSize sets the worker pool size for concurrent department writes.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(imp *Importer) error {
		if size < 1 {
			size = 1
		}
		if imp.pool != nil {
			imp.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		imp.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(imp *Importer) error {
		if logger == nil {
			logger = slog.Default()
		}
		imp.logger = logger
		return nil
	}
}

// NewImporter creates an importer over the given repository.
func NewImporter(repo storage.CatalogRepository, opts ...Option) (*Importer, error) {
	if repo == nil {
		return nil, ErrCatalogRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	imp := &Importer{
		repo:   repo,
		pool:   pool,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(imp); optErr != nil {
			imp.Release()
			return nil, optErr
		}
	}

	return imp, nil
}

// SkippedEntity names a roster member dropped during validation.
type SkippedEntity struct {
	Department string
	Name       string
	Reason     string
}

// DepartmentError records a department whose write failed.
type DepartmentError struct {
	Department string
	Err        error
}

// Report summarizes an import run.
type Report struct {
	Departments int
	Entities    int
	Skipped     []SkippedEntity
	Failed      []DepartmentError
}

// Import parses a roster document and writes it to storage.
func (imp *Importer) Import(ctx context.Context, r io.Reader) (*Report, error) {
	catalog, err := ParseRoster(r)
	if err != nil {
		return nil, err
	}
	return imp.ImportCatalog(ctx, catalog)
}

// ImportCatalog validates and writes a catalog. Invalid entities are
// skipped and reported, valid ones in the same department still import.
// Department writes run concurrently; a failed write is reported per
// department rather than aborting the run.
func (imp *Importer) ImportCatalog(ctx context.Context, catalog core.Catalog) (*Report, error) {
	if len(catalog) == 0 {
		return nil, ErrEmptyRoster
	}

	report := &Report{}
	valid := make(core.Catalog, len(catalog))
	for department, entities := range catalog {
		kept := make([]core.Entity, 0, len(entities))
		for _, entity := range entities {
			if err := core.ValidateEntity(&entity); err != nil {
				report.Skipped = append(report.Skipped, SkippedEntity{
					Department: department,
					Name:       entity.Name,
					Reason:     err.Error(),
				})
				continue
			}
			kept = append(kept, entity)
		}
		valid[department] = kept
	}

	departments := make([]string, 0, len(valid))
	for department := range valid {
		departments = append(departments, department)
	}
	sort.Strings(departments)

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, department := range departments {
		entities := valid[department]
		wg.Add(1)
		err := imp.pool.Submit(func() {
			defer wg.Done()
			if err := imp.repo.ReplaceDepartment(ctx, department, entities); err != nil {
				imp.logger.Error("error importing department",
					"err", err,
					"department", department)
				mu.Lock()
				report.Failed = append(report.Failed, DepartmentError{
					Department: department,
					Err:        err,
				})
				mu.Unlock()
				return
			}
			mu.Lock()
			report.Departments++
			report.Entities += len(entities)
			mu.Unlock()
		})
		if err != nil {
			wg.Done()
			return nil, err
		}
	}
	wg.Wait()

	sort.Slice(report.Failed, func(i, j int) bool {
		return report.Failed[i].Department < report.Failed[j].Department
	})

	imp.logger.Info("import complete",
		"departments", report.Departments,
		"entities", report.Entities,
		"skipped", len(report.Skipped),
		"failed", len(report.Failed))
	return report, nil
}

// Release stops the worker pool. The importer must not be used afterwards.
func (imp *Importer) Release() {
	if imp.pool != nil {
		imp.pool.Release()
	}
}
