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

import "errors"

// Domain validation errors
var (
	// ErrInvalidEntity indicates an Entity failed validation.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrInvalidClickRecord indicates a ClickRecord failed validation.
	ErrInvalidClickRecord = errors.New("invalid click record")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrEmptyDepartment indicates the department name is empty.
	ErrEmptyDepartment = errors.New("department cannot be empty")

	// ErrNegativeStat indicates a numeric stat is below zero.
	ErrNegativeStat = errors.New("numeric stats cannot be negative")

	// ErrInvalidClickType indicates an unknown ClickType value.
	ErrInvalidClickType = errors.New("invalid click type")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")
)
