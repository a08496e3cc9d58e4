package company

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

// Handler wires the company CRUD endpoints.
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

type companyRequest struct {
	ID            string `json:"id" validate:"required"`
	Name          string `json:"name" validate:"required"`
	TIN           string `json:"tin" validate:"len=10,numeric"`
	ImageID       string `json:"imageId"`
	Description   string `json:"description" validate:"min=50"`
	DescriptionRu string `json:"descriptionRu"`
	Slogan        string `json:"slogan"`
	SloganRu      string `json:"sloganRu"`
}

var companySchema = validate.Schema{
	Namespace: "schemas.company",
	Messages: map[string]string{
		"id":          "invalidId",
		"name":        "invalidName",
		"tin.len":     "invalidTin",
		"tin.numeric": "numericTin",
		"description": "invalidDescription",
	},
}

// List returns one page of the companies the signed-in user belongs to.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	t := h.bundle.Locale(i18n.FromRequest(r))

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

	companies, total, err := h.service.ListForUser(r.Context(), userID, q)
	if err != nil {
		h.serverError(w, t, "list companies", err)
		return
	}

	httpx.JSON(w, http.StatusOK, shared.ListResponse{
		Result:     companies,
		Pagination: shared.NewPagination(q.StartIndex, q.Page, q.Limit, total),
	})
}

// Get returns a single company the signed-in user belongs to.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	t := h.bundle.Locale(i18n.FromRequest(r))

	userID := shared.UserIDFromContext(r.Context())
	if userID == "" {
		httpx.Error(w, http.StatusUnauthorized, t.T("api.notAuthorized"))
		return
	}

	c, err := h.service.GetForUser(r.Context(), chi.URLParam(r, "companyID"), userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, t.T("api.invalidCompanyId"))
			return
		}
		h.serverError(w, t, "get company", err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// Create registers a new company owned by the signed-in user.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	t := h.bundle.Locale(i18n.FromRequest(r))

	userID := shared.UserIDFromContext(r.Context())
	if userID == "" {
		httpx.Error(w, http.StatusUnauthorized, t.T("api.notAuthorized"))
		return
	}

	var req companyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, t.T("api.invalidRequest"))
		return
	}
	if issues := companySchema.Check(req, t); issues != nil {
		httpx.ValidationFailed(w, t.T("api.invalidRequest"), issues)
		return
	}

	created, err := h.service.Create(r.Context(), fromRequest(req), userID)
	if err != nil {
		h.serverError(w, t, "create company", err)
		return
	}
	httpx.JSON(w, http.StatusOK, created)
}

// Update rewrites a company the signed-in user has access to.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	t := h.bundle.Locale(i18n.FromRequest(r))
	companyID := chi.URLParam(r, "companyID")

	if !h.allowed(w, r, t, companyID) {
		return
	}

	var req companyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, t.T("api.invalidRequest"))
		return
	}
	if issues := companySchema.Check(req, t); issues != nil {
		httpx.ValidationFailed(w, t.T("api.invalidRequest"), issues)
		return
	}

	c := fromRequest(req)
	c.ID = companyID
	updated, err := h.service.Update(r.Context(), c)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, t.T("api.invalidCompanyId"))
			return
		}
		h.serverError(w, t, "update company", err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

// Delete removes a company permanently.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	t := h.bundle.Locale(i18n.FromRequest(r))
	companyID := chi.URLParam(r, "companyID")

	if !h.allowed(w, r, t, companyID) {
		return
	}

	if err := h.service.Delete(r.Context(), companyID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, t.T("api.invalidCompanyId"))
			return
		}
		h.serverError(w, t, "delete company", err)
		return
	}
	httpx.Message(w, http.StatusOK, t.T("api.companyDeleted"))
}

// allowed runs the write-path ownership check. Missing company and missing
// membership both answer 404, matching the write contract.
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

func (h *Handler) serverError(w http.ResponseWriter, t i18n.Translator, msg string, err error) {
	h.logger.Error(msg, slog.Any("error", err))
	httpx.Error(w, http.StatusInternalServerError, t.T("api.serverError"))
}

func fromRequest(req companyRequest) Company {
	return Company{
		ID:            req.ID,
		Name:          req.Name,
		TIN:           req.TIN,
		ImageID:       req.ImageID,
		Description:   req.Description,
		DescriptionRu: req.DescriptionRu,
		Slogan:        req.Slogan,
		SloganRu:      req.SloganRu,
	}
}
