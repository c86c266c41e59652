package ingestion

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/poiesic/facultydir/core"
)

// rosterEntry is the JSON wire form of a roster member.
type rosterEntry struct {
	Name                    string `json:"name"`
	Title                   string `json:"title,omitempty"`
	Lab                     string `json:"lab,omitempty"`
	LabWebsite              string `json:"labWebsite,omitempty"`
	PersonalWebsite         string `json:"personalWebsite,omitempty"`
	Email                   string `json:"email,omitempty"`
	ResearchArea            string `json:"researchArea,omitempty"`
	NumLabMembers           int    `json:"numLabMembers,omitempty"`
	NumUndergradResearchers int    `json:"numUndergradResearchers,omitempty"`
	NumPublishedPapers      int    `json:"numPublishedPapers,omitempty"`
	IsRecruiting            bool   `json:"isRecruiting,omitempty"`
	IsTranslucent           bool   `json:"isTranslucent,omitempty"`
}

func (e rosterEntry) toEntity() core.Entity {
	return core.Entity{
		Name:                    e.Name,
		Title:                   e.Title,
		Lab:                     e.Lab,
		LabWebsite:              e.LabWebsite,
		PersonalWebsite:         e.PersonalWebsite,
		Email:                   e.Email,
		ResearchArea:            e.ResearchArea,
		NumLabMembers:           e.NumLabMembers,
		NumUndergradResearchers: e.NumUndergradResearchers,
		NumPublishedPapers:      e.NumPublishedPapers,
		IsRecruiting:            e.IsRecruiting,
		IsTranslucent:           e.IsTranslucent,
	}
}

// ParseRoster reads a roster document: a JSON object mapping department
// names to arrays of members. Department names are normalized; entries are
// converted but not validated, the importer decides what to do with invalid
// ones.
func ParseRoster(r io.Reader) (core.Catalog, error) {
	var raw map[string][]rosterEntry
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRoster, err)
	}

	if len(raw) == 0 {
		return nil, ErrEmptyRoster
	}

	catalog := make(core.Catalog, len(raw))
	for department, entries := range raw {
		department = core.NormalizeDepartment(department)
		if department == "" {
			return nil, fmt.Errorf("%w: blank department name", ErrMalformedRoster)
		}
		entities := make([]core.Entity, len(entries))
		for i, entry := range entries {
			entities[i] = entry.toEntity()
		}
		// A department may appear twice after normalization.
		catalog[department] = append(catalog[department], entities...)
	}
	return catalog, nil
}
