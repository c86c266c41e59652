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


package storage

import (
	"context"
	"time"

	"github.com/poiesic/facultydir/core"
)

// CatalogRepository provides operations for managing department rosters.
// Implementations must be thread-safe and support concurrent access.
type CatalogRepository interface {
	// ReplaceDepartment overwrites the full entity list of a department.
	// The department name is normalized before use as a key. Entity order
	// is preserved.
	ReplaceDepartment(ctx context.Context, department string, entities []core.Entity) error

	// GetDepartment retrieves the entity list of a department.
	// Returns ErrNotFound if the department doesn't exist.
	GetDepartment(ctx context.Context, department string) ([]core.Entity, error)

	// GetCatalog retrieves every department with its entities.
	// An empty store yields an empty, non-nil catalog.
	GetCatalog(ctx context.Context) (core.Catalog, error)

	// ListDepartments returns the stored department names in key order.
	ListDepartments(ctx context.Context) ([]string, error)

	// DeleteDepartment removes a department and its roster.
	// Returns ErrNotFound if the department doesn't exist.
	DeleteDepartment(ctx context.Context, department string) error

	// Close closes the repository and releases resources.
	Close() error
}

// AnalyticsRepository provides operations for the click log that feeds
// trending derivation. Implementations must be thread-safe.
type AnalyticsRepository interface {
	// AddClick appends a click record. Records with a zero timestamp are
	// stamped with the current time; records with ID 0 get a content-derived
	// ID.
	AddClick(ctx context.Context, record *core.ClickRecord) error

	// CountClicks returns the number of recorded clicks for a department
	// since the given time.
	CountClicks(ctx context.Context, department string, since time.Time) (int, error)

	// TopNames returns up to limit lab-or-entity names for a department,
	// ranked by click count since the given time, most clicked first.
	TopNames(ctx context.Context, department string, since time.Time, limit int) ([]string, error)

	// Close closes the repository and releases resources.
	Close() error
}
