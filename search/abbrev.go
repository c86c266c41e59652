package search

// abbreviations maps short tokens common in directory queries to their full
// forms. The mapping is data, not logic: extend it freely, the expander does
// not care what is in it.
var abbreviations = map[string]string{
	"cs":    "computer science",
	"stats": "statistics",
	"ml":    "machine learning",
	"ai":    "artificial intelligence",
	"nlp":   "natural language processing",
	"cv":    "computer vision",
	"hci":   "human-computer interaction",
	"ee":    "electrical engineering",
	"eng":   "engineering",
	"bio":   "biology",
	"chem":  "chemistry",
	"phys":  "physics",
	"math":  "mathematics",
	"econ":  "economics",
	"psych": "psychology",
	"phil":  "philosophy",
	"poli":  "political",
	"sci":   "science",
	"env":   "environmental",
	"info":  "information",
	"prof":  "professor",
	"dept":  "department",
	"lang":  "language",
	"intro": "introduction",
	"grad":  "graduate",
}

// Expand returns every plausible full-text reading of a query that may
// contain known abbreviations. The normalized original query is always the
// first element. For a multi-word query each word position independently
// contributes {original word, expanded word}, and the result is the
// deduplicated cross-product. Growth is bounded by 2^words, which stays
// small for realistic query lengths.
func Expand(query string) []string {
	normalized := Normalize(query)
	if normalized == "" {
		return []string{normalized}
	}
	return expandNormalized(normalized)
}

func expandNormalized(query string) []string {
	queryWords := words(query)

	// Per-word candidates, original spelling first.
	candidates := make([][]string, len(queryWords))
	for i, w := range queryWords {
		if full, ok := abbreviations[w]; ok {
			candidates[i] = []string{w, full}
		} else {
			candidates[i] = []string{w}
		}
	}

	combos := []string{""}
	for _, options := range candidates {
		next := make([]string, 0, len(combos)*len(options))
		for _, prefix := range combos {
			for _, option := range options {
				if prefix == "" {
					next = append(next, option)
				} else {
					next = append(next, prefix+" "+option)
				}
			}
		}
		combos = next
	}

	// The original query is combos[0] because original spellings come first
	// at every position. Dedupe while preserving that order.
	seen := make(map[string]struct{}, len(combos))
	expansions := combos[:0]
	for _, c := range combos {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		expansions = append(expansions, c)
	}
	return expansions
}
