package invitation

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vendoro/vendoro/internal/access"
	"github.com/vendoro/vendoro/internal/i18n"
	"github.com/vendoro/vendoro/internal/platform/httpx"
	"github.com/vendoro/vendoro/internal/shared"
	"github.com/vendoro/vendoro/internal/validate"
)

// Handler wires the invitation endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	access  access.Resolver
	bundle  *i18n.Bundle
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, resolver access.Resolver, bundle *i18n.Bundle) *Handler {
	return &Handler{logger: logger, service: service, access: resolver, bundle: bundle}
}

// MountRoutes registers invitation routes under /api/company/{companyID}/invitation.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Delete("/{invitationID}", h.Delete)
}

type invitationRequest struct {
	RoleID string `json:"roleId" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
}

var invitationSchema = validate.Schema{
	Namespace: "schemas.invitation",
	Messages: map[string]string{
		"roleId": "invalidRoleId",
		"email":  "invalidEmail",
	},
}

type acceptRequest struct {
	ID string `json:"id" validate:"required"`
}

var acceptSchema = validate.Schema{
	Namespace: "schemas.invitation",
	Messages: map[string]string{
		"id": "invalidId",
	},
}

// List returns one page of the company's pending invitations. Requires full
// membership.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	t := h.bundle.Locale(i18n.FromRequest(r))
	companyID := chi.URLParam(r, "companyID")

	q, ok := shared.ParseListQuery(r)
	if !ok {
		httpx.Error(w, http.StatusBadRequest, t.T("api.pageAndLimitAreRequired"))
		return
	}
	userID := shared.UserIDFromContext(r.Context())
	if userID == "" {
		httpx.Error(w, http.StatusUnauthorized, t.T("api.notAuthorized"))
		return
	}
	if _, err := h.access.Resolve(r.Context(), companyID, userID); err != nil {
		h.accessError(w, t, err)
		return
	}

	invitations, total, err := h.service.List(r.Context(), companyID, q)
	if err != nil {
		h.serverError(w, t, "list invitations", err)
		return
	}

	httpx.JSON(w, http.StatusOK, shared.ListResponse{
		Result:     invitations,
		Pagination: shared.NewPagination(q.StartIndex, q.Page, q.Limit, total),
	})
}

// Create records a pending invitation and queues the notification email.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	t := h.bundle.Locale(i18n.FromRequest(r))
	companyID := chi.URLParam(r, "companyID")

	if !h.allowed(w, r, t, companyID) {
		return
	}

	var req invitationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, t.T("api.invalidRequest"))
		return
	}
	if issues := invitationSchema.Check(req, t); issues != nil {
		httpx.ValidationFailed(w, t.T("api.invalidRequest"), issues)
		return
	}

	inv, err := h.service.Create(r.Context(), companyID, req.RoleID, req.Email, i18n.FromRequest(r))
	if err != nil {
		h.serverError(w, t, "create invitation", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

// Delete revokes a pending invitation.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	t := h.bundle.Locale(i18n.FromRequest(r))
	companyID := chi.URLParam(r, "companyID")

	if !h.allowed(w, r, t, companyID) {
		return
	}

	err := h.service.Delete(r.Context(), companyID, chi.URLParam(r, "invitationID"))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, t.T("api.invalidRequest"))
			return
		}
		h.serverError(w, t, "delete invitation", err)
		return
	}
	httpx.Message(w, http.StatusOK, t.T("api.invitationDeleted"))
}

// Accept converts an invitation addressed to the signed-in user into a
// member record. Mounted at POST /api/invitation/accept, outside the
// company tree since the caller is not a member yet.
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	t := h.bundle.Locale(i18n.FromRequest(r))

	userID := shared.UserIDFromContext(r.Context())
	if userID == "" {
		httpx.Error(w, http.StatusUnauthorized, t.T("api.notAuthorized"))
		return
	}

	var req acceptRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, t.T("api.invalidRequest"))
		return
	}
	if issues := acceptSchema.Check(req, t); issues != nil {
		httpx.ValidationFailed(w, t.T("api.invalidRequest"), issues)
		return
	}

	member, err := h.service.Accept(r.Context(), req.ID, userID)
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrNotFound):
			httpx.Error(w, http.StatusNotFound, t.T("api.invitationNotFound"))
		case errors.Is(err, shared.ErrDuplicate):
			httpx.Error(w, http.StatusBadRequest, t.T("api.alreadyMember"))
		default:
			h.serverError(w, t, "accept invitation", err)
		}
		return
	}
	httpx.JSON(w, http.StatusOK, member)
}

func (h *Handler) allowed(w http.ResponseWriter, r *http.Request, t i18n.Translator, companyID string) bool {
	err := h.access.Allowed(r.Context(), companyID, shared.UserIDFromContext(r.Context()))
	if err == nil {
		return true
	}
	if errors.Is(err, access.ErrCompanyNotFound) {
		httpx.Error(w, http.StatusNotFound, t.T("api.invalidCompanyId"))
	} else {
		h.serverError(w, t, "resolve company access", err)
	}
	return false
}

func (h *Handler) accessError(w http.ResponseWriter, t i18n.Translator, err error) {
	switch {
	case errors.Is(err, access.ErrCompanyNotFound):
		httpx.Error(w, http.StatusNotFound, t.T("api.invalidCompanyId"))
	case errors.Is(err, access.ErrNotAMember):
		httpx.Error(w, http.StatusUnauthorized, t.T("api.userIsNotAMember"))
	default:
		h.serverError(w, t, "resolve company access", err)
	}
}

func (h *Handler) serverError(w http.ResponseWriter, t i18n.Translator, msg string, err error) {
	h.logger.Error(msg, slog.Any("error", err))
	httpx.Error(w, http.StatusInternalServerError, t.T("api.serverError"))
}
