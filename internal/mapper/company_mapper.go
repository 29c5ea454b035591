package mapper

import (
	"time"

	"ai-advisor-be/internal/entity"
	"ai-advisor-be/internal/model"
)

type CompanyMapper struct{}

func NewCompanyMapper() *CompanyMapper {
	return &CompanyMapper{}
}

func (m *CompanyMapper) ToEntity(c *model.Company) *entity.Company {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	contacts := make([]entity.Contact, 0, len(c.Contacts))
	for _, ct := range c.Contacts {
		contacts = append(contacts, entity.Contact{
			Id:        ct.Id,
			CompanyId: ct.CompanyId,
			Name:      ct.Name,
			Role:      ct.Role,
			Email:     ct.Email,
			Phone:     ct.Phone,
		})
	}

	return &entity.Company{
		Id:            c.Id,
		Name:          c.Name,
		Category:      c.Category,
		SubCategory:   c.SubCategory,
		PriorityScore: c.PriorityScore,
		Signal:        c.Signal,
		Contacts:      contacts,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *CompanyMapper) ToEntities(models []*model.Company) []*entity.Company {
	entities := make([]*entity.Company, 0, len(models))
	for _, c := range models {
		entities = append(entities, m.ToEntity(c))
	}
	return entities
}

func (m *CompanyMapper) ToModel(c *entity.Company) *model.Company {
	if c == nil {
		return nil
	}

	contacts := make([]model.Contact, 0, len(c.Contacts))
	for _, ct := range c.Contacts {
		contacts = append(contacts, model.Contact{
			Id:        ct.Id,
			CompanyId: ct.CompanyId,
			Name:      ct.Name,
			Role:      ct.Role,
			Email:     ct.Email,
			Phone:     ct.Phone,
		})
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Company{
		Id:            c.Id,
		Name:          c.Name,
		Category:      c.Category,
		SubCategory:   c.SubCategory,
		PriorityScore: c.PriorityScore,
		Signal:        c.Signal,
		Contacts:      contacts,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}
