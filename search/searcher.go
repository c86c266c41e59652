package search

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"
	"sort"

	"github.com/poiesic/facultydir/core"
)

// CatalogProvider supplies the department catalog on each query. Providers
// own their own caching and timeout discipline; a failed fetch degrades to
// an empty result list, never an engine error.
type CatalogProvider interface {
	Catalog(ctx context.Context) (core.Catalog, error)
}

// TrendingProvider supplies the currently popular lab and professor names
// for a department. Best-effort: a failure degrades to no trending section.
type TrendingProvider interface {
	TrendingNames(ctx context.Context, department string) ([]string, error)
}

// Searcher runs directory queries end to end: catalog fetch, multi-field
// scoring, adaptive filtering, duplicate merging and the trending split.
type Searcher struct {
	catalog  CatalogProvider
	trending TrendingProvider
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithTrendingProvider sets the trending-name source. Without one, every
// result lands in the regular partition.
func WithTrendingProvider(provider TrendingProvider) Option {
	return func(s *Searcher) error {
		s.trending = provider
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(catalog CatalogProvider, opts ...Option) (*Searcher, error) {
	if catalog == nil {
		return nil, ErrCatalogProviderRequired
	}

	s := &Searcher{
		catalog: catalog,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Result is the outcome of one query: the merged, relevance-ordered result
// list plus its trending/regular partition. Trending and Regular together
// cover Results exactly.
type Result struct {
	Query    string
	Results  []core.SearchResult
	Trending []core.SearchResult
	Regular  []core.SearchResult
}

// Search runs a query against the current catalog.
// An empty query returns an empty result without fetching anything.
func (s *Searcher) Search(ctx context.Context, query string) (*Result, error) {
	return s.SearchWithMonitor(ctx, query, nil)
}

// SearchWithMonitor runs a query with monitoring. The monitor receives
// callbacks at each phase of the search.
//
// Cancellation is checked at every phase boundary; a canceled context
// returns ctx.Err() so callers can drop superseded queries silently.
// Provider failures are not errors: a failed catalog fetch yields an empty
// result set and a failed trending fetch yields no trending partition.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, monitor SearchMonitor) (*Result, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	normalized := Normalize(query)
	if normalized == "" {
		result := &Result{Query: query}
		monitor.Finish(nil, nil)
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	catalog, err := s.catalog.Catalog(ctx)
	if err != nil {
		if isCancellation(err) {
			return nil, err
		}
		s.logger.Warn("catalog fetch failed, returning no results", "query", query, "err", err)
		catalog = core.Catalog{}
	}
	monitor.AfterCatalogFetch(catalog)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	collected := Collect(normalized, catalog)
	monitor.AfterCollect(collected)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merged := Merge(collected)
	monitor.AfterMerge(merged)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var trendingNames []string
	if s.trending != nil && len(merged) > 0 {
		department := primaryDepartment(merged[0].Department)
		names, err := s.trending.TrendingNames(ctx, department)
		if err != nil {
			if isCancellation(err) {
				return nil, err
			}
			s.logger.Warn("trending fetch failed, skipping trending section", "department", department, "err", err)
		} else {
			trendingNames = names
		}
		monitor.AfterTrendingFetch(department, trendingNames)
	}

	trending, regular := SplitTrending(merged, trendingNames, wordCount(normalized))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	monitor.Finish(trending, regular)

	return &Result{
		Query:    query,
		Results:  merged,
		Trending: trending,
		Regular:  regular,
	}, nil
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// resultKey identifies one collected result. The same entity may legitimately
// appear once per department before merging.
type resultKey struct {
	name       string
	department string
}

// Collect scores every entity in the catalog against the query across its
// department name, own name, lab, title and research area, keeps the best
// field per (name, department) pair, sorts by relevance and applies the
// adaptive filter. Pure; exported for callers that manage their own catalog.
func Collect(query string, catalog core.Catalog) []core.SearchResult {
	normalized := Normalize(query)
	if normalized == "" || len(catalog) == 0 {
		return nil
	}

	// Sorted iteration keeps results deterministic; together with the
	// stable sort below it fixes first-seen order for the merge step.
	departments := slices.Sorted(maps.Keys(catalog))

	index := make(map[resultKey]int)
	var results []core.SearchResult

	// Department matches include every entity of the department.
	for _, department := range departments {
		deptScore := Score(normalized, department)
		if deptScore < MinMatchRelevance {
			continue
		}
		for _, entity := range catalog[department] {
			key := resultKey{entity.Name, department}
			if _, ok := index[key]; ok {
				continue
			}
			index[key] = len(results)
			results = append(results, core.SearchResult{
				Entity:     entity,
				Department: department,
				Relevance:  deptScore,
				MatchType:  core.MatchDepartment,
			})
		}
	}

	upsert := func(entity core.Entity, department string, relevance float64, matchType core.MatchType) {
		key := resultKey{entity.Name, department}
		if i, ok := index[key]; ok {
			// Only ever raise a previously set relevance.
			if relevance > results[i].Relevance {
				results[i].Relevance = relevance
				results[i].MatchType = matchType
			}
			return
		}
		index[key] = len(results)
		results = append(results, core.SearchResult{
			Entity:     entity,
			Department: department,
			Relevance:  relevance,
			MatchType:  matchType,
		})
	}

	// Name, lab and title, keeping the best field.
	for _, department := range departments {
		for _, entity := range catalog[department] {
			relevance, matchType := bestFieldScore(normalized, entity)
			if relevance < MinMatchRelevance {
				continue
			}
			upsert(entity, department, relevance, matchType)
		}
	}

	// Research areas.
	for _, department := range departments {
		for _, entity := range catalog[department] {
			if entity.ResearchArea == "" {
				continue
			}
			relevance := Score(normalized, entity.ResearchArea)
			if relevance < MinMatchRelevance {
				continue
			}
			upsert(entity, department, relevance, core.MatchResearchArea)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})

	return filterByRelevance(results, wordCount(normalized) >= 2)
}

// bestFieldScore scores an entity's name, lab and title against the query
// and returns the best score with its field. Ties resolve to the earlier
// field in that fixed order.
func bestFieldScore(query string, entity core.Entity) (float64, core.MatchType) {
	best := Score(query, entity.Name)
	matchType := core.MatchName

	if entity.Lab != "" {
		if s := Score(query, entity.Lab); s > best {
			best = s
			matchType = core.MatchLab
		}
	}
	if entity.Title != "" {
		if s := Score(query, entity.Title); s > best {
			best = s
			matchType = core.MatchTitle
		}
	}
	return best, matchType
}

// filterByRelevance applies the adaptive threshold ladder. When the top
// relevance sits below every rung the list passes through unfiltered.
func filterByRelevance(results []core.SearchResult, multiWord bool) []core.SearchResult {
	if len(results) == 0 {
		return results
	}
	cutoff, ok := filterCutoff(results[0].Relevance, multiWord)
	if !ok {
		return results
	}
	kept := make([]core.SearchResult, 0, len(results))
	for _, r := range results {
		if r.Relevance >= cutoff {
			kept = append(kept, r)
		}
	}
	return kept
}
