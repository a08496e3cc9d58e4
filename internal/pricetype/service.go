package pricetype

import (
	"context"

	"github.com/vendoro/vendoro/internal/access"
	"github.com/vendoro/vendoro/internal/shared"
)

// Service handles price type business logic.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListForAccess returns one page of the price types the resolved access
// permits. Default roles see the company's full set.
func (s *Service) ListForAccess(ctx context.Context, acc access.Access, q shared.ListQuery) ([]PriceType, int, error) {
	filter := ListFilter{
		CompanyID:    acc.CompanyID,
		All:          acc.AllPriceTypes,
		PriceTypeIDs: acc.PriceTypeIDs,
	}
	return s.repo.List(ctx, filter, q)
}

// Create adds a price type to the company.
func (s *Service) Create(ctx context.Context, companyID, name, currency string) (PriceType, error) {
	return s.repo.Create(ctx, companyID, name, currency)
}

// Update rewrites a price type.
func (s *Service) Update(ctx context.Context, companyID, id, name, currency string) (PriceType, error) {
	return s.repo.Update(ctx, companyID, id, name, currency)
}

// Delete removes a price type.
func (s *Service) Delete(ctx context.Context, companyID, id string) error {
	return s.repo.Delete(ctx, companyID, id)
}
