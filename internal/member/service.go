package member

import (
	"context"

	"github.com/vendoro/vendoro/internal/shared"
)

// Service handles member business logic.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns one page of the company's members plus the total count.
func (s *Service) List(ctx context.Context, companyID string, q shared.ListQuery) ([]Member, int, error) {
	return s.repo.List(ctx, companyID, q)
}

// UpdateRole changes a member's role.
func (s *Service) UpdateRole(ctx context.Context, companyID, id, roleID string) (Member, error) {
	return s.repo.UpdateRole(ctx, companyID, id, roleID)
}

// Delete removes a member from the company.
func (s *Service) Delete(ctx context.Context, companyID, id string) error {
	return s.repo.Delete(ctx, companyID, id)
}
