// Copyright 2025 Nevis Search Authors
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
	// ErrInvalidRecord indicates a Record failed validation.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrEmptyFirstName indicates the FirstName field is empty.
	ErrEmptyFirstName = errors.New("first name cannot be empty")

	// ErrEmptyLastName indicates the LastName field is empty.
	ErrEmptyLastName = errors.New("last name cannot be empty")

	// ErrInvalidEmail indicates the Email field is empty or malformed.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrMissingOwner indicates a Document has no owning record reference.
	ErrMissingOwner = errors.New("document owner cannot be empty")
)
