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

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/facultydir/core"
	"github.com/poiesic/facultydir/storage"
)

// CatalogRepository implements storage.CatalogRepository using BadgerDB.
// Each department roster is stored as a single serialized entity list under
// a department-prefixed key.
type CatalogRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository creates a catalog repository backed by the given backend.
func NewCatalogRepository(backend *Backend, logger *slog.Logger) *CatalogRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogRepository{
		backend: backend,
		logger:  logger,
	}
}

// ReplaceDepartment overwrites the stored roster for a department.
func (r *CatalogRepository) ReplaceDepartment(ctx context.Context, department string, entities []core.Entity) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	department = core.NormalizeDepartment(department)
	if department == "" {
		return core.ErrEmptyDepartment
	}
	for i := range entities {
		if err := core.ValidateEntity(&entities[i]); err != nil {
			return fmt.Errorf("entity %q: %w", entities[i].Name, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data := storage.MarshalEntityList(entities)

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeDeptKey(department), data); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	r.logger.Debug("replaced department roster",
		slog.String("department", department),
		slog.Int("entities", len(entities)))
	return nil
}

// GetDepartment returns the stored roster for a department.
// Returns storage.ErrNotFound if the department has no roster.
func (r *CatalogRepository) GetDepartment(ctx context.Context, department string) ([]core.Entity, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	department = core.NormalizeDepartment(department)
	if department == "" {
		return nil, core.ErrEmptyDepartment
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entities []core.Entity
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeDeptKey(department))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			entities, err = storage.UnmarshalEntityList(val)
			if err != nil {
				return errors.Join(storage.ErrSerializationFailed, err)
			}
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return entities, nil
}

// GetCatalog loads every stored department roster into a catalog.
func (r *CatalogRepository) GetCatalog(ctx context.Context) (core.Catalog, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	catalog := make(core.Catalog)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = deptPrefix
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			department := departmentFromKey(item.Key())
			err := item.Value(func(val []byte) error {
				entities, err := storage.UnmarshalEntityList(val)
				if err != nil {
					return errors.Join(storage.ErrSerializationFailed, err)
				}
				catalog[department] = entities
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// ListDepartments returns the names of all departments with stored rosters.
func (r *CatalogRepository) ListDepartments(ctx context.Context) ([]string, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var departments []string
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = deptPrefix
		opts.PrefetchValues = false
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			departments = append(departments, departmentFromKey(it.Item().Key()))
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return departments, nil
}

// DeleteDepartment removes a department roster.
// Returns storage.ErrNotFound if the department has no roster.
func (r *CatalogRepository) DeleteDepartment(ctx context.Context, department string) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	department = core.NormalizeDepartment(department)
	if department == "" {
		return core.ErrEmptyDepartment
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeDeptKey(department)
		if _, err := tx.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close is a no-op; the shared backend owns the database handle.
func (r *CatalogRepository) Close() error {
	return nil
}
