package pricetype

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

// Handler wires the company-scoped price type endpoints.
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

// MountRoutes registers price type routes under
// /api/company/{companyID}/price-type.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{priceTypeID}", h.Update)
	r.Delete("/{priceTypeID}", h.Delete)
}

type priceTypeRequest struct {
	Name     string `json:"name" validate:"required"`
	Currency string `json:"currency" validate:"required"`
}

var priceTypeSchema = validate.Schema{
	Namespace: "schemas.priceType",
	Messages: map[string]string{
		"name":     "invalidName",
		"currency": "invalidCurrency",
	},
}

// List returns one page of the price types the requester's role permits.
// Default roles get the company's full set, others only the ids named by
// their available-data entries.
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

	acc, err := h.access.Resolve(r.Context(), companyID, userID)
	if err != nil {
		h.accessError(w, t, err)
		return
	}

	priceTypes, total, err := h.service.ListForAccess(r.Context(), acc, q)
	if err != nil {
		h.serverError(w, t, "list price types", err)
		return
	}

	httpx.JSON(w, http.StatusOK, shared.ListResponse{
		Result:     priceTypes,
		Pagination: shared.NewPagination(q.StartIndex, q.Page, q.Limit, total),
	})
}

// Create adds a price type. Write-path authorization: allowed company only.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	t := h.bundle.Locale(i18n.FromRequest(r))
	companyID := chi.URLParam(r, "companyID")

	if !h.allowed(w, r, t, companyID) {
		return
	}

	var req priceTypeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, t.T("api.invalidRequest"))
		return
	}
	if issues := priceTypeSchema.Check(req, t); issues != nil {
		httpx.ValidationFailed(w, t.T("api.invalidRequest"), issues)
		return
	}

	created, err := h.service.Create(r.Context(), companyID, req.Name, req.Currency)
	if err != nil {
		h.serverError(w, t, "create price type", err)
		return
	}
	httpx.JSON(w, http.StatusOK, created)
}

// Update rewrites a price type.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	t := h.bundle.Locale(i18n.FromRequest(r))
	companyID := chi.URLParam(r, "companyID")

	if !h.allowed(w, r, t, companyID) {
		return
	}

	var req priceTypeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, t.T("api.invalidRequest"))
		return
	}
	if issues := priceTypeSchema.Check(req, t); issues != nil {
		httpx.ValidationFailed(w, t.T("api.invalidRequest"), issues)
		return
	}

	updated, err := h.service.Update(r.Context(), companyID, chi.URLParam(r, "priceTypeID"), req.Name, req.Currency)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, t.T("api.invalidRequest"))
			return
		}
		h.serverError(w, t, "update price type", err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

// Delete removes a price type.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	t := h.bundle.Locale(i18n.FromRequest(r))
	companyID := chi.URLParam(r, "companyID")

	if !h.allowed(w, r, t, companyID) {
		return
	}

	err := h.service.Delete(r.Context(), companyID, chi.URLParam(r, "priceTypeID"))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, t.T("api.invalidRequest"))
			return
		}
		h.serverError(w, t, "delete price type", err)
		return
	}
	httpx.Message(w, http.StatusOK, t.T("api.priceTypeDeleted"))
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
