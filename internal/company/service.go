package company

import (
	"context"

	"github.com/vendoro/vendoro/internal/shared"
)

// Service handles company business logic.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListForUser returns one page of the user's companies plus the total count.
func (s *Service) ListForUser(ctx context.Context, userID string, q shared.ListQuery) ([]Company, int, error) {
	return s.repo.ListForUser(ctx, userID, q)
}

// GetForUser fetches a single company the user belongs to.
func (s *Service) GetForUser(ctx context.Context, id, userID string) (Company, error) {
	return s.repo.GetForUser(ctx, id, userID)
}

// Create persists a new company; the creator becomes its first member with
// the default owner role.
func (s *Service) Create(ctx context.Context, c Company, ownerUserID string) (Company, error) {
	return s.repo.Create(ctx, c, ownerUserID)
}

// Update rewrites company fields.
func (s *Service) Update(ctx context.Context, c Company) (Company, error) {
	return s.repo.Update(ctx, c)
}

// Delete removes a company permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
