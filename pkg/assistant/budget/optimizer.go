package budget

import (
	"encoding/json"
	"strings"

	"ai-advisor-be/pkg/assistant/knowledge"
)

// DefaultBudgetChars bounds the serialized knowledge allowed into a prompt.
const DefaultBudgetChars = 4000

const (
	recordFloor    = 5
	webFloor       = 2
	signalCharCap  = 280
	ellipsisMarker = "..."
)

// Optimize shrinks the bundle until its serialized size fits the budget,
// applying reductions in fixed priority order: drop the lowest-ranked
// record while more than the record floor remain, then drop the
// lowest-scored web item while more than the web floor remain, then
// truncate each record's signal text once and stop. The truncation step is
// terminal even if the result is still over budget. Deterministic and
// idempotent: an already-fitting bundle is returned unchanged.
func Optimize(bundle *knowledge.Bundle, budgetChars int) *knowledge.Bundle {
	if bundle == nil {
		return nil
	}
	if budgetChars <= 0 {
		budgetChars = DefaultBudgetChars
	}

	for serializedSize(bundle) > budgetChars {
		switch {
		case len(bundle.Records) > recordFloor:
			// Records are ordered by rank, so the last one goes first.
			bundle.Records = bundle.Records[:len(bundle.Records)-1]

		case len(bundle.Web) > webFloor:
			bundle.Web = dropLowestWeb(bundle.Web)

		default:
			truncateSignals(bundle.Records)
			return bundle
		}
	}
	return bundle
}

func serializedSize(bundle *knowledge.Bundle) int {
	data, err := json.Marshal(bundle)
	if err != nil {
		return 0
	}
	return len(data)
}

func dropLowestWeb(items []knowledge.WebItem) []knowledge.WebItem {
	lowest := 0
	for i, item := range items {
		if item.Score <= items[lowest].Score {
			lowest = i
		}
	}
	return append(items[:lowest:lowest], items[lowest+1:]...)
}

func truncateSignals(records []knowledge.ScoredRecord) {
	for _, r := range records {
		if r.Record == nil || len(r.Record.Signal) <= signalCharCap {
			continue
		}
		if strings.HasSuffix(r.Record.Signal, ellipsisMarker) {
			continue
		}
		r.Record.Signal = strings.TrimSpace(r.Record.Signal[:signalCharCap]) + ellipsisMarker
	}
}
