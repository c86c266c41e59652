package search

import "strings"

// Normalize canonicalizes free text for scoring: lowercased, trimmed, with
// internal whitespace collapsed to single spaces.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// words splits normalized text into its space-separated words.
func words(s string) []string {
	return strings.Fields(s)
}

// wordCount reports how many words a normalized query contains.
func wordCount(s string) int {
	return len(strings.Fields(s))
}

// primaryDepartment returns the first department of a possibly comma-joined
// department set.
func primaryDepartment(department string) string {
	if i := strings.Index(department, ","); i >= 0 {
		return strings.TrimSpace(department[:i])
	}
	return department
}
