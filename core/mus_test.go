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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityMUS_RoundTrip(t *testing.T) {
	entity := Entity{
		Name:                    "Ada Lee",
		Title:                   "Associate Professor",
		Lab:                     "AI Lab",
		LabWebsite:              "https://ailab.example.edu",
		PersonalWebsite:         "https://adalee.example.edu",
		Email:                   "alee@example.edu",
		ResearchArea:            "machine learning, computer vision",
		NumLabMembers:           12,
		NumUndergradResearchers: 4,
		NumPublishedPapers:      87,
		IsRecruiting:            true,
		IsTranslucent:           false,
	}

	bs := make([]byte, EntityMUS.Size(entity))
	n := EntityMUS.Marshal(entity, bs)
	require.Equal(t, len(bs), n)

	decoded, n, err := EntityMUS.Unmarshal(bs)
	require.NoError(t, err)
	assert.Equal(t, len(bs), n)
	assert.Equal(t, entity, decoded)
}

func TestEntityListMUS_RoundTrip(t *testing.T) {
	entities := []Entity{
		{Name: "Ada Lee", Lab: "AI Lab"},
		{Name: "Ben Ortiz", Title: "Lecturer", NumPublishedPapers: 3},
		{}, // zero value survives too
	}

	bs := make([]byte, EntityListMUS.Size(entities))
	n := EntityListMUS.Marshal(entities, bs)
	require.Equal(t, len(bs), n)

	decoded, n, err := EntityListMUS.Unmarshal(bs)
	require.NoError(t, err)
	assert.Equal(t, len(bs), n)
	assert.Equal(t, entities, decoded)
}

func TestEntityListMUS_Empty(t *testing.T) {
	bs := make([]byte, EntityListMUS.Size(nil))
	EntityListMUS.Marshal(nil, bs)

	decoded, _, err := EntityListMUS.Unmarshal(bs)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestClickRecordMUS_RoundTrip(t *testing.T) {
	record := ClickRecord{
		Id:         42,
		EntityName: "Ada Lee",
		Lab:        "AI Lab",
		Department: "computer science",
		Type:       ClickLabWebsite,
		Timestamp:  time.Date(2025, 10, 3, 14, 30, 0, 0, time.UTC),
	}

	bs := make([]byte, ClickRecordMUS.Size(record))
	n := ClickRecordMUS.Marshal(record, bs)
	require.Equal(t, len(bs), n)

	decoded, n, err := ClickRecordMUS.Unmarshal(bs)
	require.NoError(t, err)
	assert.Equal(t, len(bs), n)
	assert.Equal(t, record.Id, decoded.Id)
	assert.Equal(t, record.EntityName, decoded.EntityName)
	assert.Equal(t, record.Lab, decoded.Lab)
	assert.Equal(t, record.Department, decoded.Department)
	assert.Equal(t, record.Type, decoded.Type)
	assert.True(t, record.Timestamp.Equal(decoded.Timestamp))
}

func TestEntityMUS_TruncatedData(t *testing.T) {
	entity := Entity{Name: "Ada Lee", Title: "Professor"}
	bs := make([]byte, EntityMUS.Size(entity))
	EntityMUS.Marshal(entity, bs)

	_, _, err := EntityMUS.Unmarshal(bs[:len(bs)/2])
	assert.Error(t, err)
}
