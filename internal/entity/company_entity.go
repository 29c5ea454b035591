package entity

import (
	"time"

	"github.com/google/uuid"
)

// Company is one record in the business-intelligence knowledge base.
// Signal carries the free-text observation used for relevance ranking.
type Company struct {
	Id            uuid.UUID
	Name          string
	Category      string
	SubCategory   string
	PriorityScore int
	Signal        string
	Contacts      []Contact
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// Contact is a decision maker attached to a company record.
type Contact struct {
	Id        uuid.UUID
	CompanyId uuid.UUID
	Name      string
	Role      string
	Email     string
	Phone     string
}

// KnowledgeSummary holds the aggregate counts used by summary_stats and
// as the grouped summary for topic fetches.
type KnowledgeSummary struct {
	TotalRecords      int64
	HighPriorityCount int64
	Categories        []string
	CategoryCounts    map[string]int64
}
