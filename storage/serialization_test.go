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


package storage

import (
	"testing"
	"time"

	"github.com/poiesic/facultydir/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalID_RoundTrip(t *testing.T) {
	for _, id := range []core.ID{0, 1, 42, core.IDFromContent("Ada Lee")} {
		decoded, err := UnmarshalID(MarshalID(id))
		require.NoError(t, err)
		assert.Equal(t, id, decoded)
	}
}

func TestMarshalEntityList_RoundTrip(t *testing.T) {
	entities := []core.Entity{
		{
			Name:          "Ada Lee",
			Title:         "Professor",
			Lab:           "AI Lab",
			ResearchArea:  "machine learning, computer vision",
			NumLabMembers: 5,
			IsRecruiting:  true,
		},
		{Name: "Ben Ortiz"},
	}

	decoded, err := UnmarshalEntityList(MarshalEntityList(entities))
	require.NoError(t, err)
	assert.Equal(t, entities, decoded)
}

func TestMarshalClickRecord_RoundTrip(t *testing.T) {
	record := &core.ClickRecord{
		Id:         7,
		EntityName: "Ada Lee",
		Lab:        "AI Lab",
		Department: "computer science",
		Type:       core.ClickLabWebsite,
		Timestamp:  time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC),
	}

	decoded, err := UnmarshalClickRecord(MarshalClickRecord(record))
	require.NoError(t, err)
	assert.Equal(t, record.Id, decoded.Id)
	assert.Equal(t, record.EntityName, decoded.EntityName)
	assert.Equal(t, record.Department, decoded.Department)
	assert.Equal(t, record.Type, decoded.Type)
	assert.True(t, record.Timestamp.Equal(decoded.Timestamp))
}

func TestUnmarshalEntityList_Garbage(t *testing.T) {
	_, err := UnmarshalEntityList([]byte{0xff, 0xff, 0xff})
	assert.Error(t, err)
}
