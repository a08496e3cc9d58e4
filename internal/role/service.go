package role

import (
	"context"

	"github.com/vendoro/vendoro/internal/shared"
)

// Service handles role business logic.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns one page of the company's roles plus the total count.
func (s *Service) List(ctx context.Context, companyID string, q shared.ListQuery) ([]Role, int, error) {
	return s.repo.List(ctx, companyID, q)
}

// Create adds a non-default role with the given grants.
func (s *Service) Create(ctx context.Context, companyID, name string, entries []Entry) (Role, error) {
	return s.repo.Create(ctx, companyID, name, entries)
}

// Update renames a role and replaces its grants.
func (s *Service) Update(ctx context.Context, companyID, id, name string, entries []Entry) (Role, error) {
	return s.repo.Update(ctx, companyID, id, name, entries)
}

// Delete removes a role.
func (s *Service) Delete(ctx context.Context, companyID, id string) error {
	return s.repo.Delete(ctx, companyID, id)
}
