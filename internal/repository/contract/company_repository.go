package contract

import (
	"context"

	"ai-advisor-be/internal/entity"
	"ai-advisor-be/internal/repository/specification"
)

// CompanyRepository is the domain knowledge query collaborator consumed by
// the retrieval pipeline. All reads are specification-driven.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Company, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Summarize(ctx context.Context, highPriorityThreshold int) (*entity.KnowledgeSummary, error)
}
