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
	"sort"
	"strings"

	"github.com/hannakb/NevisSearchAPI/core"
)

// ScoreRecords computes lexical relevance scores for profile records against
// a query. It is a pure function over the candidate slice: callers pre-filter
// candidates from storage with the same substring predicate, but the scorer
// re-derives every score so the two can be tested separately.
//
// The first matching rule in priority order wins (exact > prefix > substring,
// evaluated across email, name, description). Results are sorted by score
// descending; ties keep candidate order.
func ScoreRecords(query string, candidates []*core.Record, limit int) []core.ScoredResult[*core.Record] {
	q := normalizeQuery(query)
	if q == "" {
		return nil
	}

	results := make([]core.ScoredResult[*core.Record], 0, len(candidates))
	for _, record := range candidates {
		if record == nil {
			continue
		}
		raw, field := scoreRecord(q, record)
		if raw == 0 {
			continue
		}
		results = append(results, core.ScoredResult[*core.Record]{
			Entity:     record,
			Score:      clampScore(float64(raw) / scoreNormalization),
			MatchField: field,
		})
	}

	return sortAndTruncate(results, limit)
}

// scoreRecord applies the record rule ladder. Returns 0 when no rule fires.
func scoreRecord(q string, record *core.Record) (int, string) {
	email := strings.ToLower(record.Email)
	firstName := strings.ToLower(record.FirstName)
	lastName := strings.ToLower(record.LastName)
	fullName := strings.ToLower(record.FullName())
	description := strings.ToLower(record.Description)

	switch {
	case q == email:
		return scoreExactEmail, MatchFieldEmail
	case q == firstName || q == lastName || q == fullName:
		return scoreExactName, MatchFieldName
	case strings.HasPrefix(email, q):
		return scorePrefixEmail, MatchFieldEmail
	case strings.HasPrefix(firstName, q) || strings.HasPrefix(lastName, q):
		return scorePrefixName, MatchFieldName
	case strings.Contains(email, q):
		return scoreContainsEmail, MatchFieldEmail
	case strings.Contains(fullName, q):
		return scoreContainsName, MatchFieldName
	case strings.Contains(description, q):
		return scoreContainsDescription, MatchFieldDescription
	}
	return 0, ""
}

// ScoreDocuments computes lexical relevance scores for documents against a
// query. Scoring is two-tier: phrase-level rules over the whole query first,
// then a damped word-level fallback when no phrase rule fires. Documents with
// no phrase match and no word match are excluded.
func ScoreDocuments(query string, candidates []*core.Document, limit int) []core.ScoredResult[*core.Document] {
	q := normalizeQuery(query)
	words := strings.Fields(q)
	if len(words) == 0 {
		return nil
	}

	results := make([]core.ScoredResult[*core.Document], 0, len(candidates))
	for _, document := range candidates {
		if document == nil {
			continue
		}
		raw, field := scoreDocument(q, words, document)
		if raw == 0 {
			continue
		}
		results = append(results, core.ScoredResult[*core.Document]{
			Entity:     document,
			Score:      clampScore(raw / scoreNormalization),
			MatchField: field,
		})
	}

	return sortAndTruncate(results, limit)
}

// scoreDocument applies the document rule ladder. Returns 0 when neither the
// phrase tier nor the word tier matches.
func scoreDocument(q string, words []string, document *core.Document) (float64, string) {
	title := strings.ToLower(document.Title)
	content := strings.ToLower(document.Content)

	// Phrase tier
	switch {
	case title == q:
		return scoreExactTitle, MatchFieldTitle
	case strings.HasPrefix(title, q):
		return scorePrefixTitle, MatchFieldTitle
	case strings.Contains(title, q):
		return scoreContainsTitle, MatchFieldTitle
	case strings.Contains(content, q):
		return scoreContainsContent, MatchFieldContent
	}

	// Word tier: count query words per field and score the stronger field.
	// Matches split across fields do not add up.
	titleHits, contentHits := 0, 0
	for _, word := range words {
		if strings.Contains(title, word) {
			titleHits++
		}
		if strings.Contains(content, word) {
			contentHits++
		}
	}
	matched := contentHits
	if titleHits > contentHits {
		matched = titleHits
	}
	if matched == 0 {
		return 0, ""
	}

	score := wordMatchDamping * (float64(matched) / float64(len(words))) * scoreContainsContent
	field := MatchFieldContent
	if titleHits > contentHits {
		field = MatchFieldTitle
	}
	return score, field
}

// sortAndTruncate orders results by score descending and caps the slice at
// limit (<= 0 means unbounded). The sort is stable so equal scores keep the
// order the candidates arrived in.
func sortAndTruncate[T any](results []core.ScoredResult[T], limit int) []core.ScoredResult[T] {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
