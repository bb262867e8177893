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


// Package search provides hybrid lexical and semantic retrieval over records
// and documents.
//
// The Searcher type dispatches by entity kind:
//   - Profile records are ranked by deterministic keyword scoring only.
//   - Documents go through a hybrid pipeline: keyword scoring and cosine
//     similarity over stored embeddings run independently, then merge into a
//     single ranked list with fixed linear weights.
//
// The scoring functions (ScoreRecords, ScoreDocuments, SemanticSearch,
// MergeHybrid) are pure and safe for concurrent use; the Searcher wires them
// to storage and the embedding service.
package search
