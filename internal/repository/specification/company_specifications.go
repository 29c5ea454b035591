package specification

import (
	"strings"

	"gorm.io/gorm"
)

// NameMatchesAny matches company names by case-insensitive substring.
// Used for entity-specific fetches ("Tell me about Acme Corp").
type NameMatchesAny struct {
	Names []string
}

func (s NameMatchesAny) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Names) == 0 {
		return db
	}
	query := db
	for i, name := range s.Names {
		pattern := "%" + strings.ToLower(name) + "%"
		if i == 0 {
			query = query.Where("LOWER(name) LIKE ?", pattern)
		} else {
			query = query.Or("LOWER(name) LIKE ?", pattern)
		}
	}
	return query
}

// ByCategory filters on the category column (case-insensitive).
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(category) = ?", strings.ToLower(s.Category))
}

// MinPriority keeps records at or above a priority threshold.
type MinPriority struct {
	Score int
}

func (s MinPriority) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("priority_score >= ?", s.Score)
}

// WithContacts preloads the related decision-maker contacts.
type WithContacts struct{}

func (s WithContacts) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Contacts")
}
