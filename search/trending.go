package search

import (
	"strings"

	"github.com/poiesic/facultydir/core"
)

// SplitTrending partitions merged results into trending and regular lists.
// A result is trending when its lab or name appears in trendingNames and its
// relevance clears the trending cutoff derived from the query word count and
// the top result's relevance. Relative order is preserved in both partitions.
//
// This must run after filtering and merging so the flags reflect final
// displayed relevance, not pre-filter scores.
func SplitTrending(results []core.SearchResult, trendingNames []string, queryWordCount int) (trending, regular []core.SearchResult) {
	if len(results) == 0 {
		return nil, nil
	}

	names := make(map[string]struct{}, len(trendingNames))
	for _, name := range trendingNames {
		name = strings.TrimSpace(name)
		if name != "" {
			names[name] = struct{}{}
		}
	}

	if len(names) == 0 {
		return nil, results
	}

	cutoff := trendingCutoff(results[0].Relevance, queryWordCount >= 2)

	for _, r := range results {
		_, labTrending := names[r.Lab]
		_, nameTrending := names[r.Name]
		if (labTrending || nameTrending) && r.Relevance >= cutoff {
			trending = append(trending, r)
		} else {
			regular = append(regular, r)
		}
	}
	return trending, regular
}
