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


// Package search implements the directory's relevance-ranking and
// fuzzy-search engine.
//
// The Searcher type runs a query end to end: it fetches the department
// catalog from a provider, scores every entity across its name, lab, title,
// research-area and department fields, adaptively filters by relevance,
// merges duplicate entities that appear in several departments, and splits
// the final list into trending and regular partitions using click-derived
// trending names.
//
// The scoring pieces (Score, Expand, Distance, Similarity, Merge,
// SplitTrending, Collect) are pure functions and are exported for direct
// use. All tuning constants live in thresholds.go.
package search
