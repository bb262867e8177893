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


package search

import (
	"math"

	"github.com/hannakb/NevisSearchAPI/core"
)

// Candidate pairs a document id with its stored embedding for semantic
// matching. Candidates without embeddings are excluded upstream by the
// storage layer.
type Candidate struct {
	ID        string
	Embedding []float32
}

// CosineSimilarity computes dot(a,b) / (norm(a) * norm(b)).
// If either norm is zero the similarity is defined as 0.0 rather than NaN,
// which keeps degraded zero-vector embeddings well-formed downstream.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// SemanticSearch ranks candidates by cosine similarity to the query
// embedding. Only candidates with similarity strictly greater than threshold
// are retained. Results are sorted by similarity descending; ties keep
// candidate order.
func SemanticSearch(queryEmbedding []float32, candidates []Candidate, limit int, threshold float64) []core.ScoredResult[string] {
	results := make([]core.ScoredResult[string], 0, len(candidates))
	for _, candidate := range candidates {
		similarity := CosineSimilarity(queryEmbedding, candidate.Embedding)
		if similarity <= threshold {
			continue
		}
		results = append(results, core.ScoredResult[string]{
			Entity:     candidate.ID,
			Score:      similarity,
			MatchField: MatchFieldSemantic,
		})
	}

	return sortAndTruncate(results, limit)
}
