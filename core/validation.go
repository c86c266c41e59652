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
	"fmt"
	"strings"
	"time"
)

// ValidateEntity validates an Entity according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Numeric stats must not be negative
//
// NOT validated (optional by design):
//   - Title, Lab, websites, Email, ResearchArea (may all be empty; readers
//     default to empty/zero semantics rather than failing)
func ValidateEntity(entity *Entity) error {
	if entity == nil {
		return fmt.Errorf("%w: entity is nil", ErrInvalidEntity)
	}

	if strings.TrimSpace(entity.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, ErrEmptyName)
	}

	if entity.NumLabMembers < 0 || entity.NumUndergradResearchers < 0 || entity.NumPublishedPapers < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, ErrNegativeStat)
	}

	return nil
}

// ValidateClickRecord validates a ClickRecord according to domain rules.
//
// Validation rules:
//   - EntityName and Department must not be empty
//   - Type must be a known ClickType
//   - Timestamp must not be in the future
//
// NOT validated:
//   - Lab (empty means the click counts toward the entity name)
//   - ID (0 is valid from database sequences)
func ValidateClickRecord(record *ClickRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidClickRecord)
	}

	if record.EntityName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidClickRecord, ErrEmptyName)
	}

	if record.Department == "" {
		return fmt.Errorf("%w: %w", ErrInvalidClickRecord, ErrEmptyDepartment)
	}

	if err := ValidateClickType(record.Type); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidClickRecord, err)
	}

	if !record.Timestamp.IsZero() && !IsValidTimestamp(record.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidClickRecord, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateClickType validates that a ClickType has a valid value.
func ValidateClickType(t ClickType) error {
	if t < ClickProfile || t > ClickView {
		return fmt.Errorf("%w: value %d", ErrInvalidClickType, t)
	}
	return nil
}

// NormalizeDepartment canonicalizes a department name for use as a catalog
// key: lowercased, whitespace trimmed and collapsed.
func NormalizeDepartment(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// IsValidTimestamp checks if a timestamp is valid: at or after the Unix
// epoch and not in the future. Click keys encode unix microseconds as
// unsigned bytes, so pre-epoch times would sort after every real click.
func IsValidTimestamp(ts time.Time) bool {
	return ts.Unix() >= 0 && !ts.After(time.Now())
}
