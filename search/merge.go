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

import (
	"math"
	"strings"

	"github.com/poiesic/facultydir/core"
)

// Merge collapses results that share an exact entity name into one record
// each, preserving the first-seen order of unique names. Identity is
// case-sensitive string equality, never fuzzy: "Tian Li" and "Tian LI" stay
// separate (the datafix tool is the sanctioned way to reconcile spellings).
//
// Reconciliation rules per field:
//   - numeric stats and relevance: pointwise maximum
//   - departments: deduplicated comma-joined union, first-seen order
//   - text fields: first non-empty wins
//   - research areas: sub-area union with subsumption elimination
//   - match type: higher-priority field wins (name > lab > title >
//     researchArea > department)
//
// Merging an already-merged list is a no-op.
func Merge(results []core.SearchResult) []core.SearchResult {
	if len(results) == 0 {
		return nil
	}

	index := make(map[string]int, len(results))
	merged := make([]core.SearchResult, 0, len(results))

	for _, r := range results {
		i, ok := index[r.Name]
		if !ok {
			index[r.Name] = len(merged)
			merged = append(merged, r)
			continue
		}
		mergeInto(&merged[i], r)
	}
	return merged
}

func mergeInto(dst *core.SearchResult, src core.SearchResult) {
	dst.NumLabMembers = max(dst.NumLabMembers, src.NumLabMembers)
	dst.NumUndergradResearchers = max(dst.NumUndergradResearchers, src.NumUndergradResearchers)
	dst.NumPublishedPapers = max(dst.NumPublishedPapers, src.NumPublishedPapers)
	dst.Relevance = math.Max(dst.Relevance, src.Relevance)

	if src.Department != "" && src.Department != dst.Department {
		dst.Department = unionDepartments(dst.Department, src.Department)
	}

	if dst.Title == "" {
		dst.Title = src.Title
	}
	if dst.Lab == "" {
		dst.Lab = src.Lab
	}
	if dst.LabWebsite == "" {
		dst.LabWebsite = src.LabWebsite
	}
	if dst.PersonalWebsite == "" {
		dst.PersonalWebsite = src.PersonalWebsite
	}
	if dst.Email == "" {
		dst.Email = src.Email
	}

	switch {
	case dst.ResearchArea == "":
		dst.ResearchArea = src.ResearchArea
	case src.ResearchArea == "" || src.ResearchArea == dst.ResearchArea:
		// keep existing
	default:
		dst.ResearchArea = unionResearchAreas(dst.ResearchArea, src.ResearchArea)
	}

	dst.IsRecruiting = dst.IsRecruiting || src.IsRecruiting
	dst.IsTranslucent = dst.IsTranslucent || src.IsTranslucent

	if src.MatchType > dst.MatchType {
		dst.MatchType = src.MatchType
	}
}

// unionDepartments joins two possibly comma-joined department sets, keeping
// insertion order and dropping repeats.
func unionDepartments(a, b string) string {
	seen := make(map[string]struct{})
	var union []string
	for _, part := range strings.Split(a+","+b, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		union = append(union, part)
	}
	return strings.Join(union, ", ")
}

// unionResearchAreas merges two different comma-separated sub-area lists:
// union in insertion order, case-insensitive dedupe, and subsumption
// elimination (a sub-area contained in a longer one adds nothing). Falls
// back to the longer original when nothing survives.
func unionResearchAreas(a, b string) string {
	var areas []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(a+","+b, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lower := strings.ToLower(part)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		areas = append(areas, part)
	}

	var survivors []string
	for i, area := range areas {
		lower := strings.ToLower(area)
		subsumed := false
		for j, other := range areas {
			if i == j || len(other) <= len(area) {
				continue
			}
			if strings.Contains(strings.ToLower(other), lower) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			survivors = append(survivors, area)
		}
	}

	if len(survivors) == 0 {
		if len(b) > len(a) {
			return b
		}
		return a
	}
	return strings.Join(survivors, ", ")
}
