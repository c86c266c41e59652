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


package badger

import (
	"encoding/binary"
	"time"
)

// Key prefixes. Rosters are keyed by normalized department name; click
// records by timestamp plus a sequence number so concurrent clicks in the
// same microsecond never collide.
var (
	deptPrefix  = []byte("dept:")
	clickPrefix = []byte("click:")
)

func makeDeptKey(department string) []byte {
	key := make([]byte, 0, len(deptPrefix)+len(department))
	key = append(key, deptPrefix...)
	key = append(key, department...)
	return key
}

func departmentFromKey(key []byte) string {
	return string(key[len(deptPrefix):])
}

// makeClickKey builds a time-ordered key: prefix + BigEndian unix
// microseconds + BigEndian sequence. BigEndian keeps byte order equal to
// chronological order so prefix iteration walks clicks oldest-first.
func makeClickKey(ts time.Time, seq uint64) []byte {
	key := make([]byte, 0, len(clickPrefix)+16)
	key = append(key, clickPrefix...)
	key = binary.BigEndian.AppendUint64(key, uint64(ts.UnixMicro()))
	key = binary.BigEndian.AppendUint64(key, seq)
	return key
}

// makeClickSeekKey builds the earliest possible key at the given time,
// used as the iterator seek position for windowed scans.
func makeClickSeekKey(ts time.Time) []byte {
	return makeClickKey(ts, 0)
}
