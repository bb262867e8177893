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

import (
	"fmt"
	"strings"
)

// ValidateRecord validates a Record according to domain rules.
//
// Validation rules:
//   - FirstName and LastName must not be empty
//   - Email must be non-empty and well-formed
//
// NOT validated:
//   - Id (empty is valid, the repository generates one)
//   - Description (optional)
func ValidateRecord(record *Record) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	if strings.TrimSpace(record.FirstName) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyFirstName)
	}

	if strings.TrimSpace(record.LastName) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyLastName)
	}

	if !IsValidEmail(record.Email) {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrInvalidEmail)
	}

	return nil
}

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - OwnerId must not be empty (existence is the repository's concern)
//   - Title and Content must not be empty
//
// NOT validated (populated later):
//   - Id (empty is valid, the repository generates one)
//   - Embedding (set at creation time by the ingestion pipeline)
//   - Summary (populated by the summary cache)
func ValidateDocument(document *Document) error {
	if document == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if document.OwnerId == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrMissingOwner)
	}

	if strings.TrimSpace(document.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyTitle)
	}

	if strings.TrimSpace(document.Content) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyContent)
	}

	return nil
}

// IsValidEmail checks that an email address has a non-empty local part and
// domain with no embedded whitespace. Deliberately loose; deliverability is
// not this layer's concern.
func IsValidEmail(email string) bool {
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return false
	}
	if local == "" || domain == "" {
		return false
	}
	return !strings.ContainsAny(local, " \t") && !strings.ContainsAny(domain, " \t@")
}
