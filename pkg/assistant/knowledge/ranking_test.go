package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ai-advisor-be/internal/entity"
)

func company(name, category, subCategory, signal string, priority int) *entity.Company {
	return &entity.Company{
		Name:          name,
		Category:      category,
		SubCategory:   subCategory,
		Signal:        signal,
		PriorityScore: priority,
	}
}

func TestScoreRecordWeights(t *testing.T) {
	c := company("Acme Corp", "Logistics", "Freight Forwarding", "expanding fleet", 40)

	assert.Equal(t, 100, scoreRecord(c, "tell me about acme corp", false), "exact name match")
	assert.Equal(t, 50, scoreRecord(c, "anything happening in logistics?", false), "category keyword")
	assert.Equal(t, 30, scoreRecord(c, "who handles freight these days", false), "sub-category token")
	assert.Equal(t, 0, scoreRecord(c, "completely unrelated", false))
}

func TestScoreRecordDistressKeywordsNeedBothSides(t *testing.T) {
	atRisk := company("Northwind", "Retail", "", "facing bankruptcy risk after layoffs", 80)

	// "bankrupt", "risk" and "layoff" appear in both message and signal.
	got := scoreRecord(atRisk, "which companies risk going bankrupt or face layoffs", false)
	assert.Equal(t, 60, got)

	// Keyword only in the signal does not count.
	assert.Equal(t, 0, scoreRecord(atRisk, "tell me something nice", false))
}

func TestScoreRecordUrgentPriorityMultiplier(t *testing.T) {
	c := company("Acme Corp", "Logistics", "", "", 40)

	calm := scoreRecord(c, "tell me about acme corp", false)
	urgent := scoreRecord(c, "tell me about acme corp", true)
	assert.Equal(t, calm+40*urgentPriorityMultiplier, urgent)
}

func TestRankRecordsOrderAndDeterminism(t *testing.T) {
	candidates := []*entity.Company{
		company("Alpha", "Retail", "", "", 10),
		company("Beta", "Retail", "", "", 90),
		company("Gamma", "Retail", "", "", 90),
		company("Acme Corp", "Other", "", "", 5),
	}

	first := rankRecords(candidates, "news about acme corp", false)
	assert.Equal(t, "Acme Corp", first[0].Record.Name, "highest score wins")
	assert.Equal(t, "Beta", first[1].Record.Name, "score tie broken by priority")
	assert.Equal(t, "Gamma", first[2].Record.Name, "full tie keeps insertion order")
	assert.Equal(t, "Alpha", first[3].Record.Name)

	second := rankRecords(candidates, "news about acme corp", false)
	for i := range first {
		assert.Equal(t, first[i].Record.Name, second[i].Record.Name)
	}
}

func TestScoreWebContent(t *testing.T) {
	content := "Logistics markets tightened today. Logistics providers expect delays."
	// Tokens longer than 3 chars: "logistics" (x2), "market"... message
	// tokens are "logistics" and "market"; "market" occurs once inside
	// "markets".
	assert.Equal(t, 3, scoreWebContent(content, "logistics market"))
	assert.Equal(t, 0, scoreWebContent(content, "a to do"))
}

func TestTokenizeDropsShortTokens(t *testing.T) {
	assert.Equal(t, []string{"which", "companies", "failing"}, tokenize("Which companies are failing now?"))
}
