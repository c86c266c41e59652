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


package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/facultydir/core"
	"github.com/poiesic/facultydir/storage"
)

const clickSequenceName = "click-seq"

// AnalyticsRepository implements storage.AnalyticsRepository using BadgerDB.
// Clicks are stored under time-ordered keys so windowed scans seek directly
// to the window start and never touch older records.
type AnalyticsRepository struct {
	backend  *Backend
	sequence *badger.Sequence
	logger   *slog.Logger
}

var _ storage.AnalyticsRepository = (*AnalyticsRepository)(nil)

// NewAnalyticsRepository creates an analytics repository backed by the given backend.
func NewAnalyticsRepository(backend *Backend, logger *slog.Logger) (*AnalyticsRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	seq, err := backend.GetSequence(clickSequenceName)
	if err != nil {
		return nil, err
	}
	return &AnalyticsRepository{
		backend:  backend,
		sequence: seq,
		logger:   logger,
	}, nil
}

// AddClick appends a click record to the log. A zero timestamp is stamped
// with the current time; a zero ID is assigned from the click sequence.
func (r *AnalyticsRepository) AddClick(ctx context.Context, record *core.ClickRecord) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}
	if err := core.ValidateClickRecord(record); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	seq, err := r.sequence.Next()
	if err != nil {
		return err
	}
	if record.Id == 0 {
		record.Id = clickID(record)
	}

	data := storage.MarshalClickRecord(record)

	err = r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeClickKey(record.Timestamp, seq), data); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	r.logger.Debug("recorded click",
		slog.String("entity", record.EntityName),
		slog.String("department", record.Department),
		slog.String("type", record.Type.String()))
	return nil
}

// CountClicks returns the number of clicks recorded for a department since
// the given time.
func (r *AnalyticsRepository) CountClicks(ctx context.Context, department string, since time.Time) (int, error) {
	if r.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}
	department = core.NormalizeDepartment(department)
	if department == "" {
		return 0, core.ErrEmptyDepartment
	}

	count := 0
	err := r.scanSince(ctx, since, func(record *core.ClickRecord) {
		if core.NormalizeDepartment(record.Department) == department {
			count++
		}
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// TopNames returns up to limit trending names for a department, ranked by
// click count since the given time. The trending name of a click is its lab
// when set, otherwise the entity name. Ties break alphabetically so results
// are stable across runs.
func (r *AnalyticsRepository) TopNames(ctx context.Context, department string, since time.Time, limit int) ([]string, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	department = core.NormalizeDepartment(department)
	if department == "" {
		return nil, core.ErrEmptyDepartment
	}
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	counts := make(map[string]int)
	err := r.scanSince(ctx, since, func(record *core.ClickRecord) {
		if core.NormalizeDepartment(record.Department) != department {
			return
		}
		name := record.TrendingName()
		if name == "" {
			return
		}
		counts[name]++
	})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	if len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}

// clickID derives a content-based ID so the same interaction always hashes
// to the same identifier regardless of which node recorded it.
func clickID(record *core.ClickRecord) core.ID {
	return core.IDFromContent(fmt.Sprintf("%s|%s|%s|%d|%d",
		record.EntityName, record.Lab, record.Department,
		record.Type, record.Timestamp.UnixMicro()))
}

// scanSince iterates all click records at or after the given time.
func (r *AnalyticsRepository) scanSince(ctx context.Context, since time.Time, visit func(*core.ClickRecord)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = clickPrefix
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Seek(makeClickSeekKey(since)); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := it.Item().Value(func(val []byte) error {
				record, err := storage.UnmarshalClickRecord(val)
				if err != nil {
					return errors.Join(storage.ErrSerializationFailed, err)
				}
				visit(record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
}

// Close releases the click sequence. The shared backend owns the database
// handle.
func (r *AnalyticsRepository) Close() error {
	return r.sequence.Release()
}
