package dto

import (
	"github.com/google/uuid"
)

type CreateCompanyRequest struct {
	Name          string                 `json:"name" validate:"required,max=255"`
	Category      string                 `json:"category" validate:"required,max=100"`
	SubCategory   string                 `json:"sub_category" validate:"max=100"`
	PriorityScore int                    `json:"priority_score" validate:"gte=0,lte=100"`
	Signal        string                 `json:"signal" validate:"max=4000"`
	Contacts      []CreateContactRequest `json:"contacts" validate:"dive"`
}

type CreateContactRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Role  string `json:"role" validate:"max=100"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"max=50"`
}

type CompanyResponse struct {
	Id            uuid.UUID         `json:"id"`
	Name          string            `json:"name"`
	Category      string            `json:"category"`
	SubCategory   string            `json:"sub_category"`
	PriorityScore int               `json:"priority_score"`
	Signal        string            `json:"signal"`
	Contacts      []ContactResponse `json:"contacts,omitempty"`
}

type ContactResponse struct {
	Id    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Role  string    `json:"role"`
	Email string    `json:"email"`
	Phone string    `json:"phone"`
}

type KnowledgeSummaryResponse struct {
	TotalRecords      int64            `json:"total_records"`
	HighPriorityCount int64            `json:"high_priority_count"`
	Categories        []string         `json:"categories"`
	CategoryCounts    map[string]int64 `json:"category_counts"`
}
