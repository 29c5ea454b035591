package knowledge

import (
	"sort"
	"strings"

	"ai-advisor-be/internal/entity"
)

// urgentPriorityMultiplier amplifies a record's priority contribution when
// the message carries urgency.
const urgentPriorityMultiplier = 5

// distressKeywords correlate with urgency; a keyword counts only when it
// appears in both the user message and the record's signal text.
var distressKeywords = []string{
	"crisis", "failing", "bankrupt", "layoff", "decline",
	"risk", "urgent", "distress", "restructuring",
}

// scoreRecord computes the weighted relevance of one record against the
// lowercased user message.
func scoreRecord(c *entity.Company, lowerMessage string, urgent bool) int {
	score := 0

	if name := strings.ToLower(c.Name); name != "" && strings.Contains(lowerMessage, name) {
		score += 100
	}
	if cat := strings.ToLower(c.Category); cat != "" && strings.Contains(lowerMessage, cat) {
		score += 50
	}
	for _, token := range tokenize(c.SubCategory) {
		if strings.Contains(lowerMessage, token) {
			score += 30
			break
		}
	}

	lowerSignal := strings.ToLower(c.Signal)
	for _, kw := range distressKeywords {
		if strings.Contains(lowerMessage, kw) && strings.Contains(lowerSignal, kw) {
			score += 20
		}
	}

	if urgent {
		score += c.PriorityScore * urgentPriorityMultiplier
	}
	return score
}

// rankRecords scores and orders candidates: score descending, ties by
// priority descending, remaining ties keep the input (insertion) order so
// the ranking is deterministic across calls.
func rankRecords(companies []*entity.Company, message string, urgent bool) []ScoredRecord {
	lower := strings.ToLower(message)
	ranked := make([]ScoredRecord, 0, len(companies))
	for _, c := range companies {
		ranked = append(ranked, ScoredRecord{Record: c, Score: scoreRecord(c, lower, urgent)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Record.PriorityScore > ranked[j].Record.PriorityScore
	})
	return ranked
}

// scoreWebContent scores fetched page text by summed occurrences of the
// message's tokens longer than 3 characters.
func scoreWebContent(content, message string) int {
	lowerContent := strings.ToLower(content)
	score := 0
	for _, token := range tokenize(message) {
		score += strings.Count(lowerContent, token)
	}
	return score
}

// tokenize lowercases and splits on non-alphanumeric runes, keeping only
// tokens longer than 3 characters.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 3 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
