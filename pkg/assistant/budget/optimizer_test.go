package budget

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-advisor-be/internal/entity"
	"ai-advisor-be/pkg/assistant/knowledge"
)

func bundleWithRecords(n int, signalLen int) *knowledge.Bundle {
	b := &knowledge.Bundle{Records: []knowledge.ScoredRecord{}}
	for i := 0; i < n; i++ {
		b.Records = append(b.Records, knowledge.ScoredRecord{
			Record: &entity.Company{
				Name:   "Company " + string(rune('A'+i)),
				Signal: strings.Repeat("x", signalLen),
			},
			Score: 100 - i,
		})
	}
	return b
}

func TestOptimizeFittingBundleUnchanged(t *testing.T) {
	b := bundleWithRecords(3, 20)
	before := len(b.Records)

	got := Optimize(b, DefaultBudgetChars)
	assert.Len(t, got.Records, before)
	assert.Equal(t, strings.Repeat("x", 20), got.Records[0].Record.Signal)
}

func TestOptimizeDropsLowestRankedRecordsFirst(t *testing.T) {
	b := bundleWithRecords(10, 200)

	got := Optimize(b, 1500)
	require.GreaterOrEqual(t, len(got.Records), recordFloor)
	assert.Less(t, len(got.Records), 10)
	// Survivors are the highest-ranked prefix.
	for i, r := range got.Records {
		assert.Equal(t, 100-i, r.Score)
	}
}

func TestOptimizeRecordFloorThenTruncation(t *testing.T) {
	b := bundleWithRecords(10, 2000)

	got := Optimize(b, 1000)
	assert.Len(t, got.Records, recordFloor, "drops until the record floor, never below")
	for _, r := range got.Records {
		assert.LessOrEqual(t, len(r.Record.Signal), signalCharCap+len(ellipsisMarker))
		assert.True(t, strings.HasSuffix(r.Record.Signal, ellipsisMarker))
	}
}

func TestOptimizeWebFloor(t *testing.T) {
	b := &knowledge.Bundle{
		Records: []knowledge.ScoredRecord{},
		Web: []knowledge.WebItem{
			{URL: "https://a.example", Content: strings.Repeat("a", 900), Score: 9},
			{URL: "https://b.example", Content: strings.Repeat("b", 900), Score: 1},
			{URL: "https://c.example", Content: strings.Repeat("c", 900), Score: 5},
		},
	}

	got := Optimize(b, 2000)
	require.Len(t, got.Web, webFloor)
	assert.Equal(t, "https://a.example", got.Web[0].URL, "lowest-scored item dropped")
	assert.Equal(t, "https://c.example", got.Web[1].URL)
}

func TestOptimizeIdempotent(t *testing.T) {
	b := bundleWithRecords(10, 2000)

	first := Optimize(b, 1000)
	firstSignals := make([]string, len(first.Records))
	for i, r := range first.Records {
		firstSignals[i] = r.Record.Signal
	}

	second := Optimize(first, 1000)
	require.Len(t, second.Records, len(firstSignals))
	for i, r := range second.Records {
		assert.Equal(t, firstSignals[i], r.Record.Signal)
	}
}

func TestOptimizeTruncationIsTerminal(t *testing.T) {
	// Even an absurdly small budget stops after truncation instead of
	// looping forever.
	b := bundleWithRecords(6, 5000)
	got := Optimize(b, 10)
	assert.Len(t, got.Records, recordFloor)
}

func TestOptimizeNilAndDefaults(t *testing.T) {
	assert.Nil(t, Optimize(nil, 100))

	b := bundleWithRecords(2, 10)
	got := Optimize(b, 0)
	assert.Len(t, got.Records, 2, "non-positive budget falls back to the default")
}
