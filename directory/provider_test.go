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
	"testing"
	"time"

	"github.com/poiesic/facultydir/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// stubCatalogRepo implements only the catalog fetch; the rest of the
// interface is unused by the provider.
type stubCatalogRepo struct {
	catalog core.Catalog
	err     error
	calls   int
}

func (s *stubCatalogRepo) GetCatalog(ctx context.Context) (core.Catalog, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.catalog, nil
}

func (s *stubCatalogRepo) ReplaceDepartment(ctx context.Context, department string, entities []core.Entity) error {
	return nil
}

func (s *stubCatalogRepo) GetDepartment(ctx context.Context, department string) ([]core.Entity, error) {
	return nil, nil
}

func (s *stubCatalogRepo) ListDepartments(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (s *stubCatalogRepo) DeleteDepartment(ctx context.Context, department string) error {
	return nil
}

func (s *stubCatalogRepo) Close() error { return nil }

func sampleCatalog() core.Catalog {
	return core.Catalog{
		"computer science": {{Name: "Ada Lee"}},
	}
}

func TestCachedCatalog_RequiresRepository(t *testing.T) {
	_, err := NewCachedCatalog(nil)
	assert.ErrorIs(t, err, ErrRepositoryRequired)
}

func TestCachedCatalog_ServesFromCacheWithinTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	repo := &stubCatalogRepo{catalog: sampleCatalog()}

	provider, err := NewCachedCatalog(repo, WithCatalogClock(clock))
	require.NoError(t, err)

	ctx := context.Background()
	first, err := provider.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleCatalog(), first)
	assert.Equal(t, 1, repo.calls)

	clock.Advance(4 * time.Minute)
	_, err = provider.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
}

func TestCachedCatalog_RefreshesAfterTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	repo := &stubCatalogRepo{catalog: sampleCatalog()}

	provider, err := NewCachedCatalog(repo, WithCatalogClock(clock))
	require.NoError(t, err)

	ctx := context.Background()
	_, err = provider.Catalog(ctx)
	require.NoError(t, err)

	clock.Advance(5*time.Minute + time.Second)
	_, err = provider.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestCachedCatalog_CustomTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	repo := &stubCatalogRepo{catalog: sampleCatalog()}

	provider, err := NewCachedCatalog(repo,
		WithCatalogClock(clock),
		WithCatalogTTL(time.Minute))
	require.NoError(t, err)

	ctx := context.Background()
	_, err = provider.Catalog(ctx)
	require.NoError(t, err)

	clock.Advance(61 * time.Second)
	_, err = provider.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestCachedCatalog_InvalidTTLRejected(t *testing.T) {
	repo := &stubCatalogRepo{}
	_, err := NewCachedCatalog(repo, WithCatalogTTL(0))
	assert.ErrorIs(t, err, ErrInvalidTTL)
}

func TestCachedCatalog_FailureServesEmptyCatalog(t *testing.T) {
	repo := &stubCatalogRepo{err: assert.AnError}
	provider, err := NewCachedCatalog(repo)
	require.NoError(t, err)

	catalog, err := provider.Catalog(context.Background())
	require.NoError(t, err)
	assert.Empty(t, catalog)
	assert.NotNil(t, catalog)
}

func TestCachedCatalog_FailureServesStaleCache(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	repo := &stubCatalogRepo{catalog: sampleCatalog()}

	provider, err := NewCachedCatalog(repo, WithCatalogClock(clock))
	require.NoError(t, err)

	ctx := context.Background()
	_, err = provider.Catalog(ctx)
	require.NoError(t, err)

	repo.err = assert.AnError
	clock.Advance(10 * time.Minute)

	catalog, err := provider.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleCatalog(), catalog)
}

func TestCachedCatalog_CancellationPropagates(t *testing.T) {
	repo := &stubCatalogRepo{err: context.Canceled}
	provider, err := NewCachedCatalog(repo)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = provider.Catalog(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCachedCatalog_Invalidate(t *testing.T) {
	repo := &stubCatalogRepo{catalog: sampleCatalog()}
	provider, err := NewCachedCatalog(repo)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = provider.Catalog(ctx)
	require.NoError(t, err)

	provider.Invalidate()
	_, err = provider.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}
