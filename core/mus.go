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
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the storage layer. The records are small flat structs,
// so these are written by hand rather than generated.
var (
	IDMUS          mus.Serializer[ID]          = idMUS{}
	EntityMUS      mus.Serializer[Entity]      = entityMUS{}
	EntityListMUS  mus.Serializer[[]Entity]    = entityListMUS{}
	ClickRecordMUS mus.Serializer[ClickRecord] = clickRecordMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

type entityMUS struct{}

func (entityMUS) Marshal(e Entity, bs []byte) (n int) {
	n = ord.String.Marshal(e.Name, bs)
	n += ord.String.Marshal(e.Title, bs[n:])
	n += ord.String.Marshal(e.Lab, bs[n:])
	n += ord.String.Marshal(e.LabWebsite, bs[n:])
	n += ord.String.Marshal(e.PersonalWebsite, bs[n:])
	n += ord.String.Marshal(e.Email, bs[n:])
	n += ord.String.Marshal(e.ResearchArea, bs[n:])
	n += varint.Int.Marshal(e.NumLabMembers, bs[n:])
	n += varint.Int.Marshal(e.NumUndergradResearchers, bs[n:])
	n += varint.Int.Marshal(e.NumPublishedPapers, bs[n:])
	n += ord.Bool.Marshal(e.IsRecruiting, bs[n:])
	n += ord.Bool.Marshal(e.IsTranslucent, bs[n:])
	return n
}

func (entityMUS) Unmarshal(bs []byte) (e Entity, n int, err error) {
	var n1 int
	if e.Name, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if e.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	if e.Lab, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	if e.LabWebsite, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	if e.PersonalWebsite, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	if e.Email, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	if e.ResearchArea, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	if e.NumLabMembers, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	if e.NumUndergradResearchers, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	if e.NumPublishedPapers, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	if e.IsRecruiting, n1, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	if e.IsTranslucent, n1, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	return e, n, nil
}

func (entityMUS) Size(e Entity) (size int) {
	size = ord.String.Size(e.Name)
	size += ord.String.Size(e.Title)
	size += ord.String.Size(e.Lab)
	size += ord.String.Size(e.LabWebsite)
	size += ord.String.Size(e.PersonalWebsite)
	size += ord.String.Size(e.Email)
	size += ord.String.Size(e.ResearchArea)
	size += varint.Int.Size(e.NumLabMembers)
	size += varint.Int.Size(e.NumUndergradResearchers)
	size += varint.Int.Size(e.NumPublishedPapers)
	size += ord.Bool.Size(e.IsRecruiting)
	size += ord.Bool.Size(e.IsTranslucent)
	return size
}

func (m entityMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = m.Unmarshal(bs)
	return n, err
}

type entityListMUS struct{}

func (entityListMUS) Marshal(entities []Entity, bs []byte) (n int) {
	n = varint.Int.Marshal(len(entities), bs)
	for _, e := range entities {
		n += EntityMUS.Marshal(e, bs[n:])
	}
	return n
}

func (entityListMUS) Unmarshal(bs []byte) (entities []Entity, n int, err error) {
	count, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if count < 0 {
		return nil, n, ErrInvalidEntity
	}
	entities = make([]Entity, 0, count)
	for i := 0; i < count; i++ {
		e, n1, err := EntityMUS.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
		entities = append(entities, e)
	}
	return entities, n, nil
}

func (entityListMUS) Size(entities []Entity) (size int) {
	size = varint.Int.Size(len(entities))
	for _, e := range entities {
		size += EntityMUS.Size(e)
	}
	return size
}

func (m entityListMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = m.Unmarshal(bs)
	return n, err
}

type clickRecordMUS struct{}

func (clickRecordMUS) Marshal(c ClickRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(c.Id, bs)
	n += ord.String.Marshal(c.EntityName, bs[n:])
	n += ord.String.Marshal(c.Lab, bs[n:])
	n += ord.String.Marshal(c.Department, bs[n:])
	n += varint.Int.Marshal(int(c.Type), bs[n:])
	n += varint.Int64.Marshal(c.Timestamp.UnixMicro(), bs[n:])
	return n
}

func (clickRecordMUS) Unmarshal(bs []byte) (c ClickRecord, n int, err error) {
	var n1 int
	if c.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if c.EntityName, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.Lab, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.Department, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	var clickType int
	if clickType, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	c.Type = ClickType(clickType)
	var micros int64
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	c.Timestamp = time.UnixMicro(micros).UTC()
	return c, n, nil
}

func (clickRecordMUS) Size(c ClickRecord) (size int) {
	size = IDMUS.Size(c.Id)
	size += ord.String.Size(c.EntityName)
	size += ord.String.Size(c.Lab)
	size += ord.String.Size(c.Department)
	size += varint.Int.Size(int(c.Type))
	size += varint.Int64.Size(c.Timestamp.UnixMicro())
	return size
}

func (m clickRecordMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = m.Unmarshal(bs)
	return n, err
}
