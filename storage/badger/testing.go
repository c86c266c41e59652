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

import "log/slog"

// TestRepositories bundles repositories over a single in-memory backend
// for use in tests.
type TestRepositories struct {
	Backend   *Backend
	Catalog   *CatalogRepository
	Analytics *AnalyticsRepository
}

// NewMemoryRepositories creates repositories backed by an in-memory
// BadgerDB instance. The caller must Close the returned bundle.
func NewMemoryRepositories() (*TestRepositories, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}
	catalog := NewCatalogRepository(backend, slog.Default())
	analytics, err := NewAnalyticsRepository(backend, slog.Default())
	if err != nil {
		backend.Close()
		return nil, err
	}
	return &TestRepositories{
		Backend:   backend,
		Catalog:   catalog,
		Analytics: analytics,
	}, nil
}

// Close releases the repositories and closes the backend.
func (t *TestRepositories) Close() error {
	t.Analytics.Close()
	t.Catalog.Close()
	return t.Backend.Close()
}
