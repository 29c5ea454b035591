package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ai-advisor-be/internal/dto"
	"ai-advisor-be/internal/entity"
	"ai-advisor-be/internal/repository/specification"
	"ai-advisor-be/internal/repository/unitofwork"
)

// highPriorityThreshold marks the score at which a record counts as high
// priority in summaries.
const highPriorityThreshold = 70

type ICompanyService interface {
	Create(ctx context.Context, request *dto.CreateCompanyRequest) (*dto.CompanyResponse, error)
	GetAll(ctx context.Context) ([]*dto.CompanyResponse, error)
	Summary(ctx context.Context) (*dto.KnowledgeSummaryResponse, error)
}

type companyService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewCompanyService(uowFactory unitofwork.RepositoryFactory) ICompanyService {
	return &companyService{uowFactory: uowFactory}
}

func (s *companyService) Create(ctx context.Context, request *dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()

	company := &entity.Company{
		Id:            uuid.New(),
		Name:          request.Name,
		Category:      request.Category,
		SubCategory:   request.SubCategory,
		PriorityScore: request.PriorityScore,
		Signal:        request.Signal,
		CreatedAt:     now,
	}
	for _, c := range request.Contacts {
		company.Contacts = append(company.Contacts, entity.Contact{
			Id:        uuid.New(),
			CompanyId: company.Id,
			Name:      c.Name,
			Role:      c.Role,
			Email:     c.Email,
			Phone:     c.Phone,
		})
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.CompanyRepository().Create(ctx, company); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return companyResponse(company), nil
}

func (s *companyService) GetAll(ctx context.Context) ([]*dto.CompanyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	companies, err := uow.CompanyRepository().FindAll(ctx,
		specification.WithContacts{},
		specification.OrderBy{Field: "priority_score", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		response = append(response, companyResponse(c))
	}
	return response, nil
}

func (s *companyService) Summary(ctx context.Context) (*dto.KnowledgeSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	summary, err := uow.CompanyRepository().Summarize(ctx, highPriorityThreshold)
	if err != nil {
		return nil, err
	}

	return &dto.KnowledgeSummaryResponse{
		TotalRecords:      summary.TotalRecords,
		HighPriorityCount: summary.HighPriorityCount,
		Categories:        summary.Categories,
		CategoryCounts:    summary.CategoryCounts,
	}, nil
}

func companyResponse(c *entity.Company) *dto.CompanyResponse {
	res := &dto.CompanyResponse{
		Id:            c.Id,
		Name:          c.Name,
		Category:      c.Category,
		SubCategory:   c.SubCategory,
		PriorityScore: c.PriorityScore,
		Signal:        c.Signal,
	}
	for _, contact := range c.Contacts {
		res.Contacts = append(res.Contacts, dto.ContactResponse{
			Id:    contact.Id,
			Name:  contact.Name,
			Role:  contact.Role,
			Email: contact.Email,
			Phone: contact.Phone,
		})
	}
	return res
}
