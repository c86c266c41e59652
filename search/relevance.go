package search

import (
	"math"
	"strings"
)

// Score returns the relevance of query against target in [0,1], with
// abbreviation expansion enabled. Both arguments are normalized before
// scoring, so callers may pass raw field values.
func Score(query, target string) float64 {
	return ScoreOpt(query, target, true)
}

// ScoreOpt is Score with abbreviation expansion optional.
//
// Scoring walks a tier ladder in strict precedence order: exact match,
// whole-target prefix, first-word prefix, phrase containment, in-order word
// alignment, unordered word matching, substring containment, whole-string
// edit distance, and finally per-word edit distance. The first applicable
// tier wins; a query matching no tier scores 0.
func ScoreOpt(query, target string, useAbbreviations bool) float64 {
	return scoreNormalized(Normalize(query), Normalize(target), useAbbreviations)
}

func scoreNormalized(query, target string, useAbbreviations bool) float64 {
	if query == "" || target == "" {
		return 0
	}

	if useAbbreviations {
		return scoreWithExpansions(query, target)
	}

	// Tier: exact match.
	if query == target {
		return scoreExactMatch
	}

	// Tier: target starts with the whole query. Longer coverage of the
	// target scores higher.
	if strings.HasPrefix(target, query) {
		return scorePrefixBase + float64(len(query))/float64(len(target))*scorePrefixSpan
	}

	queryWords := words(query)
	targetWords := words(target)

	// Tier: single-word query equal to or a prefix of the target's first word.
	if len(queryWords) == 1 && len(targetWords) > 0 {
		first := targetWords[0]
		if first == query || strings.HasPrefix(first, query) {
			return scoreFirstWord
		}
	}

	if len(queryWords) >= 2 {
		if s, ok := scoreMultiWord(query, queryWords, target, targetWords); ok {
			return s
		}
	} else if s, ok := scoreSingleWord(query, targetWords); ok {
		return s
	}

	// Tier: substring containment in either direction.
	if idx := strings.Index(target, query); idx >= 0 {
		return scoreSubstringBase + (1-float64(idx)/float64(len(target)))*scoreSubstringSpan
	}
	if strings.Contains(query, target) {
		return scoreReverseSub
	}

	// Tier: whole-string fuzzy match.
	if sim := Similarity(query, target); sim >= fuzzyWholeFloor {
		return fuzzyWholeBase + (sim-fuzzyWholeFloor)*fuzzyWholeSpan
	}

	// Tier: best pairwise word similarity.
	best := 0.0
	for _, qw := range queryWords {
		for _, tw := range targetWords {
			if sim := Similarity(qw, tw); sim > best {
				best = sim
			}
		}
	}
	if best >= fuzzyWordFloor {
		return fuzzyWordBase + (best-fuzzyWordFloor)*fuzzyWordSpan
	}

	return 0
}

// scoreWithExpansions scores every abbreviation expansion of the query and
// returns the best, boosted when a clean full-form match exists. A query
// that is itself an abbreviation of the target ("cs" for "computer science")
// gets rewarded over one that merely resembles it.
func scoreWithExpansions(query, target string) float64 {
	expansions := expandNormalized(query)

	best := 0.0
	bestExpanded := 0.0
	for _, expansion := range expansions {
		s := scoreNormalized(expansion, target, false)
		if s > best {
			best = s
		}
		if expansion != query && s > bestExpanded {
			bestExpanded = s
		}
	}

	if len(expansions) > 1 && bestExpanded >= abbrevCleanMatch {
		best = math.Min(1.0, best*abbrevBoost)
	}
	return best
}

// scoreMultiWord handles the multi-word tiers: phrase containment, in-order
// word alignment, then unordered word matching. ok is false when none apply
// and scoring should fall through to the substring and fuzzy tiers.
func scoreMultiWord(query string, queryWords []string, target string, targetWords []string) (float64, bool) {
	// Verbatim phrase inside the target.
	if strings.Contains(target, query) {
		return scorePhrase, true
	}

	// In-order, possibly non-contiguous alignment: walk the target's words,
	// consuming a query word whenever the current target word equals,
	// starts with, or contains it.
	qi := 0
	exact := 0
	for _, tw := range targetWords {
		if qi >= len(queryWords) {
			break
		}
		qw := queryWords[qi]
		switch {
		case tw == qw:
			exact++
			qi++
		case strings.HasPrefix(tw, qw) || strings.Contains(tw, qw):
			qi++
		}
	}
	if qi == len(queryWords) {
		return scoreOrderedBase + float64(exact)/float64(len(queryWords))*scoreOrderedSpan, true
	}

	// Unordered: every query word must match some target word, scored by the
	// quality of its best match.
	sum := 0.0
	for _, qw := range queryWords {
		best := 0.0
		for _, tw := range targetWords {
			var quality float64
			switch {
			case tw == qw:
				quality = wordMatchEqual
			case strings.HasPrefix(tw, qw):
				quality = wordMatchPrefix
			case strings.Contains(tw, qw):
				quality = wordMatchContains
			}
			if quality > best {
				best = quality
			}
		}
		if best == 0 {
			return 0, false
		}
		sum += best
	}
	return scoreUnorderedBase + sum/float64(len(queryWords))*scoreUnorderedSpan, true
}

// scoreSingleWord scans target words in order and scores the first one the
// query equals, prefixes, or is contained in.
func scoreSingleWord(query string, targetWords []string) (float64, bool) {
	for _, tw := range targetWords {
		switch {
		case tw == query:
			return scoreWordEqual, true
		case strings.HasPrefix(tw, query):
			return scoreWordPrefix, true
		case strings.Contains(tw, query):
			return scoreWordContains, true
		}
	}
	return 0, false
}
