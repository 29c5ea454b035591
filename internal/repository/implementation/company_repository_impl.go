package implementation

import (
	"context"

	"ai-advisor-be/internal/entity"
	"ai-advisor-be/internal/mapper"
	"ai-advisor-be/internal/model"
	"ai-advisor-be/internal/repository/contract"
	"ai-advisor-be/internal/repository/specification"

	"gorm.io/gorm"
)

type CompanyRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CompanyMapper
}

func NewCompanyRepository(db *gorm.DB) contract.CompanyRepository {
	return &CompanyRepositoryImpl{
		db:     db,
		mapper: mapper.NewCompanyMapper(),
	}
}

func (r *CompanyRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CompanyRepositoryImpl) Create(ctx context.Context, company *entity.Company) error {
	m := r.mapper.ToModel(company)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*company = *r.mapper.ToEntity(m)
	return nil
}

func (r *CompanyRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Company, error) {
	var models []*model.Company
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *CompanyRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Company{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Summarize computes the aggregate view in a single round of grouped
// queries: total records, high-priority count, and per-category counts.
func (r *CompanyRepositoryImpl) Summarize(ctx context.Context, highPriorityThreshold int) (*entity.KnowledgeSummary, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Company{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var highPriority int64
	if err := r.db.WithContext(ctx).Model(&model.Company{}).
		Where("priority_score >= ?", highPriorityThreshold).
		Count(&highPriority).Error; err != nil {
		return nil, err
	}

	type categoryCount struct {
		Category string
		Total    int64
	}
	var rows []categoryCount
	if err := r.db.WithContext(ctx).Model(&model.Company{}).
		Select("category, COUNT(*) AS total").
		Group("category").
		Order("category ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	summary := &entity.KnowledgeSummary{
		TotalRecords:      total,
		HighPriorityCount: highPriority,
		Categories:        make([]string, 0, len(rows)),
		CategoryCounts:    make(map[string]int64, len(rows)),
	}
	for _, row := range rows {
		summary.Categories = append(summary.Categories, row.Category)
		summary.CategoryCounts[row.Category] = row.Total
	}

	return summary, nil
}
