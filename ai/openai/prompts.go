package openai

import "fmt"

const summarizationPromptTemplate = `Summarize the following text in at most %d words.

Rules:
- Capture the main topic and the most important facts.
- Write plain prose; no bullet points, no headings, no preamble.
- Do not wrap the summary in quotation marks.
- Do not mention that this is a summary.`

// buildSummaryPrompt creates the system prompt with the word budget embedded.
// The word budget approximates the character budget at roughly five
// characters per word.
func buildSummaryPrompt(maxLength int) string {
	wordLimit := maxLength / 5
	if wordLimit < 1 {
		wordLimit = 1
	}
	return fmt.Sprintf(summarizationPromptTemplate, wordLimit)
}
