package knowledge

import (
	"ai-advisor-be/internal/entity"
)

// ScoredRecord pairs a company record with its relevance score for the
// current message. Score ordering is established by the retriever and
// preserved through budget optimization.
type ScoredRecord struct {
	Record *entity.Company `json:"record"`
	Score  int             `json:"score"`
}

// WebItem is one fetched page attached to the bundle. Content holds the
// raw page text, or FetchFailedSentinel when the fetch errored.
type WebItem struct {
	URL     string `json:"url"`
	Content string `json:"content"`
	Score   int    `json:"score"`
}

// Bundle is the evidence assembled for one turn. It is transient: built
// by the retriever, trimmed by the optimizer, rendered by the prompt
// builder, then discarded.
type Bundle struct {
	Records            []ScoredRecord           `json:"records"`
	Web                []WebItem                `json:"web,omitempty"`
	Summary            *entity.KnowledgeSummary `json:"summary,omitempty"`
	PreviousUtterances []string                 `json:"previous_utterances,omitempty"`
	KnownEntities      []string                 `json:"known_entities,omitempty"`

	// Degraded marks that at least one data-access sub-query failed and
	// the bundle is emptier than requested. Downstream stages proceed on
	// whatever remains.
	Degraded bool `json:"degraded,omitempty"`
}

// EmptyBundle is what the retriever returns when every sub-query failed.
func EmptyBundle() *Bundle {
	return &Bundle{Records: []ScoredRecord{}, Degraded: true}
}
