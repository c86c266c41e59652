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


package datafix

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/facultydir/storage"
)

const (
	defaultMaxAttempts    = 3
	defaultBaseDelay      = 500 * time.Millisecond
	defaultReportInterval = 10
)

// Fixer applies a canonical-name map to every stored department roster.
// Renames that land on a name already present in the roster are left to
// the search-time merger; the fixer only rewrites the stored strings.
type Fixer struct {
	repo           storage.CatalogRepository
	maxAttempts    int
	baseDelay      time.Duration
	progressWriter io.Writer
	logger         *slog.Logger
}

// Option configures a Fixer.
type Option func(*Fixer) error

// WithRetry overrides the per-department write retry policy.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(f *Fixer) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		f.maxAttempts = maxAttempts
		f.baseDelay = baseDelay
		return nil
	}
}

// WithProgressWriter enables progress output to the given writer.
func WithProgressWriter(w io.Writer) Option {
	return func(f *Fixer) error {
		f.progressWriter = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fixer) error {
		if logger == nil {
			logger = slog.Default()
		}
		f.logger = logger
		return nil
	}
}

// NewFixer creates a fixer over the given repository.
func NewFixer(repo storage.CatalogRepository, opts ...Option) (*Fixer, error) {
	if repo == nil {
		return nil, ErrCatalogRepositoryRequired
	}
	f := &Fixer{
		repo:        repo,
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Report summarizes a fix run.
type Report struct {
	Departments int // departments scanned
	Modified    int // departments rewritten
	Renamed     int // entity names changed
	Elapsed     time.Duration
}

// Run applies the fixes to every stored roster. Departments whose rosters
// contain no mapped name are not rewritten. Each rewrite is retried with
// backoff; the first department that still fails aborts the run so a
// partially applied fix is visible in the error.
func (f *Fixer) Run(ctx context.Context, fixes map[string]string) (*Report, error) {
	if len(fixes) == 0 {
		return nil, ErrNoFixes
	}

	departments, err := f.repo.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}

	var progress *ProgressTracker
	if f.progressWriter != nil {
		progress = NewProgressTracker(f.progressWriter, len(departments), defaultReportInterval)
		progress.Start()
	}

	start := time.Now()
	report := &Report{}
	for _, department := range departments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entities, err := f.repo.GetDepartment(ctx, department)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", department, err)
		}

		renamed := 0
		for i := range entities {
			if canonical, ok := fixes[entities[i].Name]; ok {
				entities[i].Name = canonical
				renamed++
			}
		}

		report.Departments++
		if progress != nil {
			progress.Increment(1)
		}
		if renamed == 0 {
			continue
		}

		err = RetryWithBackoff(ctx, func() error {
			return f.repo.ReplaceDepartment(ctx, department, entities)
		}, f.maxAttempts, f.baseDelay)
		if err != nil {
			return nil, fmt.Errorf("rewriting %q: %w", department, err)
		}

		report.Modified++
		report.Renamed += renamed
		f.logger.Info("applied name fixes",
			"department", department,
			"renamed", renamed)
	}

	if progress != nil {
		progress.Finish()
	}
	report.Elapsed = time.Since(start)
	return report, nil
}
