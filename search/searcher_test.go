package search

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/facultydir/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCatalogProvider struct {
	catalog core.Catalog
	err     error
	calls   int
}

func (m *mockCatalogProvider) Catalog(_ context.Context) (core.Catalog, error) {
	m.calls++
	return m.catalog, m.err
}

type mockTrendingProvider struct {
	names map[string][]string
	err   error
	calls int
}

func (m *mockTrendingProvider) TrendingNames(_ context.Context, department string) ([]string, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.names[department], nil
}

func testCatalog() core.Catalog {
	return core.Catalog{
		"computer science": {
			{Name: "Ada Lee", Lab: "AI Lab", Title: "Professor", NumLabMembers: 5},
			{Name: "Ben Ortiz", Title: "Assistant Professor", ResearchArea: "distributed systems"},
		},
		"statistics": {
			{Name: "Tian Li", Title: "Professor", ResearchArea: "causal inference"},
			{Name: "Maria Santos", Lab: "Probability Group"},
		},
		"data science": {
			{Name: "Tian Li", Title: "Affiliate Professor", NumLabMembers: 2, NumUndergradResearchers: 1, NumPublishedPapers: 10},
		},
	}
}

func TestNewSearcher(t *testing.T) {
	t.Run("requires catalog provider", func(t *testing.T) {
		_, err := NewSearcher(nil)
		assert.ErrorIs(t, err, ErrCatalogProviderRequired)
	})

	t.Run("valid configuration", func(t *testing.T) {
		s, err := NewSearcher(&mockCatalogProvider{}, WithTrendingProvider(&mockTrendingProvider{}))
		require.NoError(t, err)
		assert.NotNil(t, s)
	})
}

func TestCollect_DepartmentMatch(t *testing.T) {
	results := Collect("statistics", testCatalog())
	require.NotEmpty(t, results)

	// Every statistics entity is present with full department relevance.
	byName := make(map[string]core.SearchResult)
	for _, r := range results {
		byName[r.Name+"/"+r.Department] = r
	}
	for _, name := range []string{"Tian Li", "Maria Santos"} {
		r, ok := byName[name+"/statistics"]
		require.True(t, ok, "missing %s", name)
		assert.Equal(t, core.MatchDepartment, r.MatchType)
		assert.Equal(t, 1.0, r.Relevance)
	}
}

func TestCollect_LabMatch(t *testing.T) {
	catalog := core.Catalog{
		"computer science": {
			{Name: "Ada Lee", Lab: "AI Lab", Title: "Professor", NumLabMembers: 5},
		},
	}
	results := Collect("ai lab", catalog)
	require.Len(t, results, 1)
	assert.Equal(t, "Ada Lee", results[0].Name)
	assert.Equal(t, core.MatchLab, results[0].MatchType)
	assert.GreaterOrEqual(t, results[0].Relevance, 0.6)
}

func TestCollect_EmptyQuery(t *testing.T) {
	assert.Empty(t, Collect("", testCatalog()))
	assert.Empty(t, Collect("   ", testCatalog()))
}

func TestCollect_SortedByRelevance(t *testing.T) {
	results := Collect("professor", testCatalog())
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Relevance, results[i].Relevance)
	}
}

func TestCollect_ResearchAreaMatch(t *testing.T) {
	results := Collect("causal inference", testCatalog())
	require.NotEmpty(t, results)
	assert.Equal(t, "Tian Li", results[0].Name)
	assert.Equal(t, core.MatchResearchArea, results[0].MatchType)
	assert.Equal(t, 1.0, results[0].Relevance)
}

func TestCollect_DepartmentScoreNeverLowered(t *testing.T) {
	// "statistics" scores the department exactly; the weak title match for
	// its members must not overwrite the department relevance.
	results := Collect("statistics", testCatalog())
	for _, r := range results {
		if r.Department == "statistics" {
			assert.Equal(t, 1.0, r.Relevance, "entity %s", r.Name)
		}
	}
}

func TestCollect_AbbreviatedDepartment(t *testing.T) {
	results := Collect("cs", testCatalog())
	require.NotEmpty(t, results)
	assert.Equal(t, "computer science", results[0].Department)
	assert.Equal(t, core.MatchDepartment, results[0].MatchType)
	assert.GreaterOrEqual(t, results[0].Relevance, 0.9)
}

func TestCollect_DuplicateEntityAcrossDepartments(t *testing.T) {
	results := Collect("tian li", testCatalog())

	departments := make(map[string]bool)
	for _, r := range results {
		if r.Name == "Tian Li" {
			departments[r.Department] = true
		}
	}
	assert.True(t, departments["statistics"])
	assert.True(t, departments["data science"])
}

func TestSearch_EmptyQuerySkipsFetch(t *testing.T) {
	provider := &mockCatalogProvider{catalog: testCatalog()}
	s, err := NewSearcher(provider)
	require.NoError(t, err)

	result, err := s.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, result.Results)
	assert.Zero(t, provider.calls, "empty query must not fetch the catalog")
}

func TestSearch_MergesDuplicates(t *testing.T) {
	s, err := NewSearcher(&mockCatalogProvider{catalog: testCatalog()})
	require.NoError(t, err)

	result, err := s.Search(context.Background(), "tian li")
	require.NoError(t, err)
	require.Len(t, result.Results, 1)

	merged := result.Results[0]
	assert.Equal(t, "Tian Li", merged.Name)
	assert.Equal(t, "data science, statistics", merged.Department)
	assert.Equal(t, 2, merged.NumLabMembers)
	assert.Equal(t, 1, merged.NumUndergradResearchers)
	assert.Equal(t, 10, merged.NumPublishedPapers)
}

func TestSearch_CatalogFailureDegradesToEmpty(t *testing.T) {
	provider := &mockCatalogProvider{err: errors.New("backend down")}
	s, err := NewSearcher(provider)
	require.NoError(t, err)

	result, err := s.Search(context.Background(), "statistics")
	require.NoError(t, err)
	assert.Empty(t, result.Results)
}

func TestSearch_Cancellation(t *testing.T) {
	s, err := NewSearcher(&mockCatalogProvider{catalog: testCatalog()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Search(ctx, "statistics")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearch_CancellationFromProvider(t *testing.T) {
	provider := &mockCatalogProvider{err: context.Canceled}
	s, err := NewSearcher(provider)
	require.NoError(t, err)

	_, err = s.Search(context.Background(), "statistics")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearch_TrendingPartition(t *testing.T) {
	trendingProvider := &mockTrendingProvider{
		names: map[string][]string{"computer science": {"AI Lab"}},
	}
	s, err := NewSearcher(
		&mockCatalogProvider{catalog: testCatalog()},
		WithTrendingProvider(trendingProvider),
	)
	require.NoError(t, err)

	result, err := s.Search(context.Background(), "ada")
	require.NoError(t, err)
	require.NotEmpty(t, result.Results)
	assert.Equal(t, 1, trendingProvider.calls)

	require.Len(t, result.Trending, 1)
	assert.Equal(t, "Ada Lee", result.Trending[0].Name)
	assert.Len(t, result.Regular, len(result.Results)-1)
}

func TestSearch_TrendingFailureKeepsResults(t *testing.T) {
	s, err := NewSearcher(
		&mockCatalogProvider{catalog: testCatalog()},
		WithTrendingProvider(&mockTrendingProvider{err: errors.New("analytics down")}),
	)
	require.NoError(t, err)

	result, err := s.Search(context.Background(), "statistics")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Results)
	assert.Empty(t, result.Trending)
	assert.Equal(t, len(result.Results), len(result.Regular))
}

type recordingMonitor struct {
	phases []string
}

func (m *recordingMonitor) Start(_ string)                          { m.phases = append(m.phases, "start") }
func (m *recordingMonitor) AfterCatalogFetch(_ core.Catalog)        { m.phases = append(m.phases, "catalog") }
func (m *recordingMonitor) AfterCollect(_ []core.SearchResult)      { m.phases = append(m.phases, "collect") }
func (m *recordingMonitor) AfterMerge(_ []core.SearchResult)        { m.phases = append(m.phases, "merge") }
func (m *recordingMonitor) AfterTrendingFetch(_ string, _ []string) { m.phases = append(m.phases, "trending") }
func (m *recordingMonitor) Finish(_, _ []core.SearchResult)         { m.phases = append(m.phases, "finish") }

func TestSearchWithMonitor_PhaseOrder(t *testing.T) {
	s, err := NewSearcher(
		&mockCatalogProvider{catalog: testCatalog()},
		WithTrendingProvider(&mockTrendingProvider{}),
	)
	require.NoError(t, err)

	monitor := &recordingMonitor{}
	_, err = s.SearchWithMonitor(context.Background(), "statistics", monitor)
	require.NoError(t, err)
	assert.Equal(t, []string{"start", "catalog", "collect", "merge", "trending", "finish"}, monitor.phases)
}
