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
	"github.com/poiesic/facultydir/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalEntityList serializes a department roster to bytes.
func MarshalEntityList(entities []core.Entity) []byte {
	buf := make([]byte, core.EntityListMUS.Size(entities))
	core.EntityListMUS.Marshal(entities, buf)
	return buf
}

// UnmarshalEntityList deserializes a department roster from bytes.
func UnmarshalEntityList(data []byte) ([]core.Entity, error) {
	entities, _, err := core.EntityListMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return entities, nil
}

// MarshalClickRecord serializes a ClickRecord to bytes.
func MarshalClickRecord(record *core.ClickRecord) []byte {
	buf := make([]byte, core.ClickRecordMUS.Size(*record))
	core.ClickRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalClickRecord deserializes a ClickRecord from bytes.
func UnmarshalClickRecord(data []byte) (*core.ClickRecord, error) {
	record, _, err := core.ClickRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}
