package stock

import (
	"context"

	"github.com/vendoro/vendoro/internal/shared"
)

// Service handles stock business logic.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns one page of the company's stocks plus the total count.
func (s *Service) List(ctx context.Context, companyID string, q shared.ListQuery) ([]Stock, int, error) {
	return s.repo.List(ctx, companyID, q)
}

// Create adds a stock to the company.
func (s *Service) Create(ctx context.Context, companyID, name string) (Stock, error) {
	return s.repo.Create(ctx, companyID, name)
}

// Update renames a stock.
func (s *Service) Update(ctx context.Context, companyID, id, name string) (Stock, error) {
	return s.repo.Update(ctx, companyID, id, name)
}

// Delete removes a stock.
func (s *Service) Delete(ctx context.Context, companyID, id string) error {
	return s.repo.Delete(ctx, companyID, id)
}
