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


// Package storage provides the storage abstraction layer for nevissearch.
//
// This package defines repository interfaces that decouple storage
// implementation from the search and summarization logic. It allows
// different storage backends (BadgerDB, in-memory, etc.) to be used
// interchangeably.
//
// The storage layer follows the Repository pattern:
//
//   - RecordRepository: operations for profile records, including the
//     substring-predicate scan used to pre-filter keyword search candidates
//     and a unique-email constraint
//   - DocumentRepository: operations for documents, including word-predicate
//     scans and listing of embedded documents for semantic search
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines. All methods accept context.Context for
// cancellation and timeout support.
package storage
