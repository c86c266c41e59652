package analytics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/facultydir/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureRepo struct {
	mu      sync.Mutex
	records []core.ClickRecord
	err     error
}

func (r *captureRepo) AddClick(ctx context.Context, record *core.ClickRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, *record)
	return nil
}

func (r *captureRepo) CountClicks(ctx context.Context, department string, since time.Time) (int, error) {
	return 0, nil
}

func (r *captureRepo) TopNames(ctx context.Context, department string, since time.Time, limit int) ([]string, error) {
	return nil, nil
}

func (r *captureRepo) Close() error { return nil }

func (r *captureRepo) recorded() []core.ClickRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]core.ClickRecord, len(r.records))
	copy(out, r.records)
	return out
}

func TestNewTracker_RequiresRepository(t *testing.T) {
	_, err := NewTracker(nil)
	assert.ErrorIs(t, err, ErrAnalyticsRepositoryRequired)
}

func TestTracker_TrackClick(t *testing.T) {
	repo := &captureRepo{}
	tracker, err := NewTracker(repo, WithPoolSize(1))
	require.NoError(t, err)
	defer tracker.Release()

	require.NoError(t, tracker.TrackClick("computer science", "Ada Lee", "Smith Lab", core.ClickLabWebsite))

	assert.Eventually(t, func() bool {
		return len(repo.recorded()) == 1
	}, time.Second, 10*time.Millisecond)

	records := repo.recorded()
	assert.Equal(t, "Ada Lee", records[0].EntityName)
	assert.Equal(t, "Smith Lab", records[0].Lab)
	assert.Equal(t, "computer science", records[0].Department)
	assert.Equal(t, core.ClickLabWebsite, records[0].Type)
	assert.False(t, records[0].Timestamp.IsZero())
}

func TestTracker_TrackView(t *testing.T) {
	repo := &captureRepo{}
	tracker, err := NewTracker(repo, WithPoolSize(1))
	require.NoError(t, err)
	defer tracker.Release()

	require.NoError(t, tracker.TrackView("statistics", "Tian Li", ""))

	assert.Eventually(t, func() bool {
		records := repo.recorded()
		return len(records) == 1 && records[0].Type == core.ClickView
	}, time.Second, 10*time.Millisecond)
}

func TestTracker_RejectsInvalidRecord(t *testing.T) {
	repo := &captureRepo{}
	tracker, err := NewTracker(repo)
	require.NoError(t, err)
	defer tracker.Release()

	err = tracker.TrackClick("computer science", "", "", core.ClickProfile)
	assert.ErrorIs(t, err, core.ErrInvalidClickRecord)
}

func TestTracker_StorageErrorDoesNotSurface(t *testing.T) {
	repo := &captureRepo{err: assert.AnError}
	tracker, err := NewTracker(repo, WithPoolSize(1))
	require.NoError(t, err)
	defer tracker.Release()

	// The submit succeeds even though the write will fail.
	assert.NoError(t, tracker.TrackClick("statistics", "Tian Li", "", core.ClickProfile))
}

func TestTracker_TrackAfterRelease(t *testing.T) {
	repo := &captureRepo{}
	tracker, err := NewTracker(repo)
	require.NoError(t, err)
	tracker.Release()

	err = tracker.TrackClick("statistics", "Tian Li", "", core.ClickProfile)
	assert.ErrorIs(t, err, ErrTrackerReleased)
}

func TestTracker_ConcurrentTracking(t *testing.T) {
	repo := &captureRepo{}
	tracker, err := NewTracker(repo, WithPoolSize(4))
	require.NoError(t, err)
	defer tracker.Release()

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, tracker.TrackView("computer science", "Ada Lee", ""))
		}()
	}
	wg.Wait()

	assert.Eventually(t, func() bool {
		return len(repo.recorded()) == n
	}, 2*time.Second, 10*time.Millisecond)
}
