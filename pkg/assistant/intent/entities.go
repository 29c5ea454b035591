package intent

import (
	"regexp"
	"strings"
)

// Capitalized multi-word sequences ending in a corporate suffix, e.g.
// "Northwind Logistics Group" or "Acme Corp".
var entitySuffixPattern = regexp.MustCompile(
	`\b([A-Z][A-Za-z&.-]*(?:\s+[A-Z][A-Za-z&.-]*)*\s+(?:Corp|Corporation|Inc|Ltd|LLC|Group|Holdings|Industries|Partners|A/S|GmbH))\b`,
)

// Known entities are matched case-insensitively regardless of suffix.
var defaultKnownEntities = []string{
	"Acme Corp",
	"Globex Inc",
	"Initech Group",
	"Umbrella Holdings",
	"Northwind Logistics Group",
	"Vandelay Industries",
	"Stark Industries",
	"Hooli",
}

// EntityExtractor pulls company mentions out of free text.
type EntityExtractor struct {
	known []string
}

func NewEntityExtractor() *EntityExtractor {
	return &EntityExtractor{known: defaultKnownEntities}
}

// NewEntityExtractorWithKnown allows callers to extend the known-entity
// list, e.g. from a seeded dataset.
func NewEntityExtractorWithKnown(known []string) *EntityExtractor {
	merged := make([]string, 0, len(defaultKnownEntities)+len(known))
	merged = append(merged, defaultKnownEntities...)
	merged = append(merged, known...)
	return &EntityExtractor{known: merged}
}

// Extract returns mentioned entities in order of appearance, unique,
// canonical spelling from the known list when matched there.
func (e *EntityExtractor) Extract(text string) []string {
	var entities []string
	seen := make(map[string]bool)

	add := func(name string) {
		key := strings.ToLower(name)
		if !seen[key] {
			seen[key] = true
			entities = append(entities, name)
		}
	}

	lower := strings.ToLower(text)
	for _, known := range e.known {
		if strings.Contains(lower, strings.ToLower(known)) {
			add(known)
		}
	}

	for _, match := range entitySuffixPattern.FindAllString(text, -1) {
		add(match)
	}

	return entities
}
