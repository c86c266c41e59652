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


package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Entity is a professor or lab record, the unit of search and display.
// Name is the entity's identity: two records with the same Name describe the
// same person, even across departments.
type Entity struct {
	Name                    string
	Title                   string
	Lab                     string // display name or lab-website URL
	LabWebsite              string
	PersonalWebsite         string
	Email                   string
	ResearchArea            string // optionally a comma-separated list of sub-areas
	NumLabMembers           int
	NumUndergradResearchers int
	NumPublishedPapers      int
	IsRecruiting            bool
	IsTranslucent           bool
}

// Catalog maps a lowercase department name to the ordered list of its
// entities. A catalog is supplied whole on each query; the engine never
// mutates it.
type Catalog map[string][]Entity

// MatchType identifies which field produced an entity's best relevance score.
// The ordering doubles as merge priority: a name match outranks a lab match,
// and so on down to department.
type MatchType int

const (
	// MatchDepartment means the entity's department name matched the query.
	MatchDepartment MatchType = iota + 1
	// MatchResearchArea means the entity's research-area field matched.
	MatchResearchArea
	// MatchTitle means the entity's title matched.
	MatchTitle
	// MatchLab means the entity's lab name matched.
	MatchLab
	// MatchName means the entity's own name matched.
	MatchName
)

// String returns the field name the match type refers to.
func (m MatchType) String() string {
	switch m {
	case MatchDepartment:
		return "department"
	case MatchResearchArea:
		return "researchArea"
	case MatchTitle:
		return "title"
	case MatchLab:
		return "lab"
	case MatchName:
		return "name"
	default:
		return "unknown"
	}
}

// SearchResult is an Entity augmented with search-time annotations. Results
// are created fresh per query and never persisted. Department may become a
// comma-joined set after merging when the same name appeared in multiple
// department lists.
type SearchResult struct {
	Entity
	Department string
	Relevance  float64
	MatchType  MatchType
}

// ClickType identifies the kind of user interaction being tracked.
type ClickType int

const (
	// ClickProfile is a click on an entity's profile card.
	ClickProfile ClickType = iota + 1
	// ClickLabWebsite is a click through to the lab website.
	ClickLabWebsite
	// ClickPersonalWebsite is a click through to the personal website.
	ClickPersonalWebsite
	// ClickEmail is a click on the email link.
	ClickEmail
	// ClickView is a passive impression rather than a click.
	ClickView
)

// String returns the wire name of the click type.
func (c ClickType) String() string {
	switch c {
	case ClickProfile:
		return "profile"
	case ClickLabWebsite:
		return "labWebsite"
	case ClickPersonalWebsite:
		return "personalWebsite"
	case ClickEmail:
		return "email"
	case ClickView:
		return "view"
	default:
		return "unknown"
	}
}

// ParseClickType maps a wire name back to a ClickType. Returns zero for
// unknown names.
func ParseClickType(s string) ClickType {
	switch s {
	case "profile":
		return ClickProfile
	case "labWebsite":
		return ClickLabWebsite
	case "personalWebsite":
		return ClickPersonalWebsite
	case "email":
		return ClickEmail
	case "view":
		return ClickView
	default:
		return 0
	}
}

// ClickRecord is a single tracked interaction with an entity. Records feed
// the trending-name derivation; they are append-only.
type ClickRecord struct {
	Id         ID
	EntityName string
	Lab        string // lab display name at click time, if any
	Department string
	Type       ClickType
	Timestamp  time.Time
}

// TrendingName returns the name this click counts toward in trending
// derivation: the lab when present, otherwise the entity name.
func (c *ClickRecord) TrendingName() string {
	if c.Lab != "" {
		return c.Lab
	}
	return c.EntityName
}
