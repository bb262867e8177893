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

import "github.com/hannakb/NevisSearchAPI/core"

// HybridWeights holds the linear combination weights for merging keyword and
// semantic document scores. The weights conventionally sum to 1 but are not
// required to.
type HybridWeights struct {
	Keyword  float64
	Semantic float64
}

// DefaultHybridWeights returns the standard 0.4 keyword / 0.6 semantic split.
func DefaultHybridWeights() HybridWeights {
	return HybridWeights{Keyword: 0.4, Semantic: 0.6}
}

// hybridEntry accumulates per-document scores during a merge.
type hybridEntry struct {
	document   *core.Document
	keyword    float64
	semantic   float64
	hasKeyword bool
	hasSemantic bool
	matchField string
}

// MergeHybrid combines keyword and semantic document results into a single
// ranked list. A document present in both sets gets
// keyword*weights.Keyword + semantic*weights.Semantic and the "hybrid" tag.
// A document present in only one set keeps that single weighted contribution
// and its original tag; scores are deliberately NOT renormalized for
// single-side matches, so weights express absolute confidence.
//
// Semantic results carry document ids; resolve maps them back to documents.
// Unresolvable ids are dropped. Merge order (keyword first, then semantic)
// fixes the tie order of equal merged scores.
func MergeHybrid(
	keyword []core.ScoredResult[*core.Document],
	semantic []core.ScoredResult[string],
	resolve map[string]*core.Document,
	weights HybridWeights,
	limit int,
) []core.ScoredResult[*core.Document] {
	entries := make(map[string]*hybridEntry, len(keyword)+len(semantic))
	order := make([]string, 0, len(keyword)+len(semantic))

	for _, result := range keyword {
		id := result.Entity.Id
		entries[id] = &hybridEntry{
			document:   result.Entity,
			keyword:    result.Score,
			hasKeyword: true,
			matchField: result.MatchField,
		}
		order = append(order, id)
	}

	for _, result := range semantic {
		if entry, ok := entries[result.Entity]; ok {
			entry.semantic = result.Score
			entry.hasSemantic = true
			entry.matchField = MatchFieldHybrid
			continue
		}
		document, ok := resolve[result.Entity]
		if !ok {
			continue
		}
		entries[result.Entity] = &hybridEntry{
			document:    document,
			semantic:    result.Score,
			hasSemantic: true,
			matchField:  result.MatchField,
		}
		order = append(order, result.Entity)
	}

	results := make([]core.ScoredResult[*core.Document], 0, len(order))
	for _, id := range order {
		entry := entries[id]
		score := entry.keyword*weights.Keyword + entry.semantic*weights.Semantic
		results = append(results, core.ScoredResult[*core.Document]{
			Entity:     entry.document,
			Score:      score,
			MatchField: entry.matchField,
		})
	}

	return sortAndTruncate(results, limit)
}
