package invitation

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/vendoro/vendoro/internal/i18n"
	"github.com/vendoro/vendoro/internal/shared"
	"github.com/vendoro/vendoro/jobs"
)

// TaskEnqueuer pushes background tasks onto the job queue. Satisfied by
// *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Service handles invitation business logic.
type Service struct {
	repo   Repository
	tasks  TaskEnqueuer
	logger *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo Repository, tasks TaskEnqueuer, logger *slog.Logger) *Service {
	return &Service{repo: repo, tasks: tasks, logger: logger}
}

// List returns one page of the company's pending invitations plus the total.
func (s *Service) List(ctx context.Context, companyID string, q shared.ListQuery) ([]Invitation, int, error) {
	return s.repo.List(ctx, companyID, q)
}

// Create records a pending invitation and queues the notification email.
// A failed enqueue does not fail the request; the invitation is already
// persisted and can still be accepted.
func (s *Service) Create(ctx context.Context, companyID, roleID, email string, loc i18n.Locale) (Invitation, error) {
	inv, err := s.repo.Create(ctx, companyID, roleID, email)
	if err != nil {
		return Invitation{}, err
	}

	companyName, err := s.repo.CompanyName(ctx, companyID)
	if err != nil {
		s.logger.Warn("look up company name for invitation email", slog.Any("error", err))
		companyName = ""
	}

	task, err := jobs.NewInvitationEmailTask(jobs.InvitationEmailPayload{
		To:          inv.Email,
		CompanyName: companyName,
		Locale:      string(loc),
	})
	if err != nil {
		s.logger.Warn("build invitation email task", slog.Any("error", err))
		return inv, nil
	}
	if s.tasks != nil {
		if _, err := s.tasks.EnqueueContext(ctx, task); err != nil {
			s.logger.Warn("enqueue invitation email", slog.String("email", inv.Email), slog.Any("error", err))
		}
	}
	return inv, nil
}

// Delete revokes a pending invitation.
func (s *Service) Delete(ctx context.Context, companyID, id string) error {
	return s.repo.Delete(ctx, companyID, id)
}

// Accept turns the invitation into a member record for the user.
func (s *Service) Accept(ctx context.Context, id, userID string) (AcceptedMember, error) {
	return s.repo.Accept(ctx, id, userID)
}
