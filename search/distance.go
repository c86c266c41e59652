package search

import "github.com/hbollon/go-edlib"

// Distance returns the Levenshtein edit distance between a and b: the
// minimum number of single-character insertions, deletions and substitutions
// needed to transform one into the other. Distances are counted in runes.
func Distance(a, b string) int {
	return edlib.LevenshteinDistance(a, b)
}

// Similarity returns a normalized similarity in [0,1]:
// 1 - distance/max(len(a), len(b)). Two empty strings are fully similar.
func Similarity(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	if la == 0 && lb == 0 {
		return 1
	}
	longest := la
	if lb > longest {
		longest = lb
	}
	return 1 - float64(Distance(a, b))/float64(longest)
}
