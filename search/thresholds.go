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


package search

import "math"

// Every tuning constant of the engine lives in this file. The values are
// empirically tuned, not derived; changing any of them changes ranking
// behavior for live queries, so treat the tables as configuration.

// Relevance tier scores (see Score). Tiers are listed in precedence order.
const (
	// MinMatchRelevance is the inclusion cutoff: field scores below it never
	// produce a result.
	MinMatchRelevance = 0.3

	scoreExactMatch = 1.0

	// Target starts with the whole query: base plus a bonus growing with how
	// much of the target the query covers.
	scorePrefixBase = 0.9
	scorePrefixSpan = 0.1

	// Single-word query matching the target's first word.
	scoreFirstWord = 0.85

	// Multi-word query contained verbatim in the target.
	scorePhrase = 0.95

	// Multi-word query whose words all appear in the target in order.
	scoreOrderedBase = 0.75
	scoreOrderedSpan = 0.15

	// Multi-word query whose words all appear somewhere in the target.
	scoreUnorderedBase = 0.5
	scoreUnorderedSpan = 0.2

	// Per-word match quality used by the ordered and unordered tiers.
	wordMatchEqual    = 1.0
	wordMatchPrefix   = 0.8
	wordMatchContains = 0.6

	// Single-word query against individual target words.
	scoreWordEqual    = 0.8
	scoreWordPrefix   = 0.75
	scoreWordContains = 0.6

	// Substring tiers.
	scoreSubstringBase = 0.5
	scoreSubstringSpan = 0.2
	scoreReverseSub    = 0.4

	// Whole-string fuzzy tier.
	fuzzyWholeFloor = 0.7
	fuzzyWholeBase  = 0.3
	fuzzyWholeSpan  = 0.67

	// Word-level fuzzy tier.
	fuzzyWordFloor = 0.6
	fuzzyWordBase  = 0.2
	fuzzyWordSpan  = 0.25

	// Abbreviation handling: a non-identity expansion scoring at least
	// abbrevCleanMatch earns the boost multiplier, capped at 1.
	abbrevCleanMatch = 0.9
	abbrevBoost      = 1.05
)

// filterRung is one rung of an adaptive-filter ladder. A rung applies when
// the top result's relevance is at least minTop; the cutoff is then
// max(floor, top-backoff), or exactly floor when backoff is zero.
type filterRung struct {
	minTop  float64
	floor   float64
	backoff float64
}

func (r filterRung) cutoff(top float64) float64 {
	if r.backoff == 0 {
		return r.floor
	}
	return math.Max(r.floor, top-r.backoff)
}

// Result-filter ladders (top relevance -> minimum kept relevance). Multi-word
// queries are assumed more specific, so their ladder prunes low-relevance
// stragglers more aggressively once a strong hit exists.
var (
	multiWordFilterLadder = []filterRung{
		{minTop: 0.85, floor: 0.7},
		{minTop: 0.70, floor: 0.5, backoff: 0.2},
		{minTop: 0.50, floor: 0.4, backoff: 0.15},
	}
	singleWordFilterLadder = []filterRung{
		{minTop: 0.80, floor: 0.6, backoff: 0.3},
		{minTop: 0.60, floor: 0.4, backoff: 0.25},
		{minTop: 0.40, floor: 0.3, backoff: 0.2},
	}
)

// filterCutoff picks the minimum kept relevance for a result list whose best
// relevance is top. ok is false when top sits below every rung, in which
// case the caller must return the list unfiltered: showing weak matches
// beats showing nothing.
func filterCutoff(top float64, multiWord bool) (cutoff float64, ok bool) {
	ladder := singleWordFilterLadder
	if multiWord {
		ladder = multiWordFilterLadder
	}
	for _, rung := range ladder {
		if top >= rung.minTop {
			return rung.cutoff(top), true
		}
	}
	return 0, false
}

// Trending ladders mirror the filter asymmetry with their own breakpoints;
// these rungs are all fixed cutoffs.
var (
	multiWordTrendingLadder = []filterRung{
		{minTop: 0.8, floor: 0.7},
		{minTop: 0.6, floor: 0.5},
	}
	multiWordTrendingDefault = 0.4

	singleWordTrendingLadder = []filterRung{
		{minTop: 0.8, floor: 0.6},
		{minTop: 0.6, floor: 0.4},
	}
	singleWordTrendingDefault = 0.3
)

// trendingCutoff picks the minimum relevance a result needs to be flagged
// trending, given the top result's relevance.
func trendingCutoff(top float64, multiWord bool) float64 {
	ladder, fallback := singleWordTrendingLadder, singleWordTrendingDefault
	if multiWord {
		ladder, fallback = multiWordTrendingLadder, multiWordTrendingDefault
	}
	for _, rung := range ladder {
		if top >= rung.minTop {
			return rung.floor
		}
	}
	return fallback
}
