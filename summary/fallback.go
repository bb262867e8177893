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


package summary

import (
	"strings"
	"unicode"
)

const ellipsis = "..."

// FallbackSummary produces an extractive summary when the external
// summarizer is unavailable: up to the first two sentences of content that
// fit within maxLength. If even the first sentence exceeds maxLength it is
// truncated at the last whitespace boundary within the limit and marked with
// an ellipsis. A summary that does not end in terminal punctuation also gets
// an ellipsis. Empty content yields just the ellipsis.
func FallbackSummary(content string, maxLength int) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return ellipsis
	}

	sentences := splitSentences(content)

	var summary string
	for i, sentence := range sentences {
		if i >= 2 {
			break
		}
		candidate := sentence
		if summary != "" {
			candidate = summary + " " + sentence
		}
		if len(candidate) > maxLength {
			break
		}
		summary = candidate
	}

	if summary == "" {
		// First sentence alone is over the limit
		return truncateAtWhitespace(sentences[0], maxLength) + ellipsis
	}

	if !endsInTerminalPunctuation(summary) {
		summary += ellipsis
	}
	return summary
}

// splitSentences breaks text into sentences on `.`, `!` or `?` followed by
// whitespace (or end of text). Punctuation stays attached to its sentence.
func splitSentences(text string) []string {
	runes := []rune(text)
	var sentences []string
	start := 0

	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		sentence := strings.TrimSpace(string(runes[start : i+1]))
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = i + 1
	}

	if rest := strings.TrimSpace(string(runes[start:])); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

// truncateAtWhitespace cuts text to at most maxLength bytes, preferring the
// last whitespace boundary inside the window.
func truncateAtWhitespace(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}
	cut := text[:maxLength]
	if idx := strings.LastIndexFunc(cut, unicode.IsSpace); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}

func endsInTerminalPunctuation(text string) bool {
	return strings.HasSuffix(text, ".") ||
		strings.HasSuffix(text, "!") ||
		strings.HasSuffix(text, "?")
}

// quotePairs maps opening quote runes to their closing counterparts.
var quotePairs = map[rune]rune{
	'"':  '"',
	'\'': '\'',
	'“':  '”',
	'‘':  '’',
}

// stripWrappingQuotes removes matched quote characters wrapping the whole
// summary. Models occasionally return the summary quoted despite prompt
// instructions.
func stripWrappingQuotes(text string) string {
	text = strings.TrimSpace(text)
	for {
		runes := []rune(text)
		if len(runes) < 2 {
			return text
		}
		closing, ok := quotePairs[runes[0]]
		if !ok || runes[len(runes)-1] != closing {
			return text
		}
		text = strings.TrimSpace(string(runes[1 : len(runes)-1]))
	}
}
