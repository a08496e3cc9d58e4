// Package jobs defines the background tasks processed by the asynq worker.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/vendoro/vendoro/internal/i18n"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeInvitationEmail delivers company invitation emails.
	TaskTypeInvitationEmail = "mail:invitation"
)

// InvitationEmailPayload describes one invitation email to deliver.
type InvitationEmailPayload struct {
	To          string `json:"to"`
	CompanyName string `json:"company_name"`
	Locale      string `json:"locale"`
}

// NewInvitationEmailTask constructs an asynq task for the payload.
func NewInvitationEmailTask(payload InvitationEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeInvitationEmail, data, asynq.Queue(QueueDefault)), nil
}

// Mailer delivers a single plain-text email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// EmailHandler processes mail delivery tasks.
type EmailHandler struct {
	mailer Mailer
	bundle *i18n.Bundle
	logger *slog.Logger
}

// NewEmailHandler constructs an EmailHandler.
func NewEmailHandler(mailer Mailer, bundle *i18n.Bundle, logger *slog.Logger) *EmailHandler {
	return &EmailHandler{mailer: mailer, bundle: bundle, logger: logger}
}

// HandleInvitationEmail delivers one invitation email. Malformed payloads
// are dropped rather than retried.
func (h *EmailHandler) HandleInvitationEmail(ctx context.Context, task *asynq.Task) error {
	var payload InvitationEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	t := h.bundle.Locale(i18n.Locale(payload.Locale))
	subject := fmt.Sprintf(t.T("mail.invitationSubject"), payload.CompanyName)
	body := fmt.Sprintf(t.T("mail.invitationBody"), payload.CompanyName)

	if err := h.mailer.Send(ctx, payload.To, subject, body); err != nil {
		h.logger.Error("send invitation email", slog.String("to", payload.To), slog.Any("error", err))
		return err
	}
	return nil
}
