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

type stubAnalyticsRepo struct {
	names     []string
	err       error
	calls     int
	lastSince time.Time
	lastDept  string
	lastLimit int
}

func (s *stubAnalyticsRepo) TopNames(ctx context.Context, department string, since time.Time, limit int) ([]string, error) {
	s.calls++
	s.lastDept = department
	s.lastSince = since
	s.lastLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	return s.names, nil
}

func (s *stubAnalyticsRepo) AddClick(ctx context.Context, record *core.ClickRecord) error {
	return nil
}

func (s *stubAnalyticsRepo) CountClicks(ctx context.Context, department string, since time.Time) (int, error) {
	return 0, nil
}

func (s *stubAnalyticsRepo) Close() error { return nil }

func TestTrendingSource_RequiresRepository(t *testing.T) {
	_, err := NewTrendingSource(nil)
	assert.ErrorIs(t, err, ErrRepositoryRequired)
}

func TestTrendingSource_FetchesAndCaches(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	repo := &stubAnalyticsRepo{names: []string{"Smith Lab", "Ada Lee"}}

	source, err := NewTrendingSource(repo, WithTrendingClock(clock))
	require.NoError(t, err)

	ctx := context.Background()
	names, err := source.TrendingNames(ctx, "Computer Science")
	require.NoError(t, err)
	assert.Equal(t, []string{"Smith Lab", "Ada Lee"}, names)
	assert.Equal(t, "computer science", repo.lastDept)
	assert.Equal(t, 1, repo.calls)

	// Second call within TTL hits the cache.
	_, err = source.TrendingNames(ctx, "computer science")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)

	clock.Advance(6 * time.Minute)
	_, err = source.TrendingNames(ctx, "computer science")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestTrendingSource_CachePerDepartment(t *testing.T) {
	repo := &stubAnalyticsRepo{names: []string{"Smith Lab"}}
	source, err := NewTrendingSource(repo)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = source.TrendingNames(ctx, "computer science")
	require.NoError(t, err)
	_, err = source.TrendingNames(ctx, "statistics")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestTrendingSource_WindowAndLimit(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	repo := &stubAnalyticsRepo{}

	source, err := NewTrendingSource(repo,
		WithTrendingClock(clock),
		WithTrendingWindow(24*time.Hour),
		WithTrendingLimit(3))
	require.NoError(t, err)

	_, err = source.TrendingNames(context.Background(), "statistics")
	require.NoError(t, err)
	assert.Equal(t, clock.now.Add(-24*time.Hour), repo.lastSince)
	assert.Equal(t, 3, repo.lastLimit)
}

func TestTrendingSource_EmptyDepartment(t *testing.T) {
	repo := &stubAnalyticsRepo{}
	source, err := NewTrendingSource(repo)
	require.NoError(t, err)

	names, err := source.TrendingNames(context.Background(), "   ")
	require.NoError(t, err)
	assert.Nil(t, names)
	assert.Zero(t, repo.calls)
}

func TestTrendingSource_FailureDegradesToEmpty(t *testing.T) {
	repo := &stubAnalyticsRepo{err: assert.AnError}
	source, err := NewTrendingSource(repo)
	require.NoError(t, err)

	names, err := source.TrendingNames(context.Background(), "statistics")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestTrendingSource_CancellationPropagates(t *testing.T) {
	repo := &stubAnalyticsRepo{err: context.Canceled}
	source, err := NewTrendingSource(repo)
	require.NoError(t, err)

	_, err = source.TrendingNames(context.Background(), "statistics")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTrendingSource_Invalidate(t *testing.T) {
	repo := &stubAnalyticsRepo{names: []string{"Smith Lab"}}
	source, err := NewTrendingSource(repo)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = source.TrendingNames(ctx, "computer science")
	require.NoError(t, err)

	source.Invalidate("computer science")
	_, err = source.TrendingNames(ctx, "computer science")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestTrendingSource_InvalidOptions(t *testing.T) {
	repo := &stubAnalyticsRepo{}
	_, err := NewTrendingSource(repo, WithTrendingWindow(0))
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = NewTrendingSource(repo, WithTrendingTTL(-time.Second))
	assert.ErrorIs(t, err, ErrInvalidTTL)
}
