package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vendoro/vendoro/internal/i18n"
	"github.com/vendoro/vendoro/internal/platform/httpx"
	"github.com/vendoro/vendoro/internal/shared"
	"github.com/vendoro/vendoro/internal/validate"
)

// Handler wires the authentication endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	sessions *shared.SessionManager
	bundle   *i18n.Bundle
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, sessions *shared.SessionManager, bundle *i18n.Bundle) *Handler {
	return &Handler{logger: logger, service: service, sessions: sessions, bundle: bundle}
}

// MountRoutes registers authentication routes under /auth.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/me", h.Me)
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

var registerSchema = validate.Schema{
	Namespace: "schemas.auth",
	Messages: map[string]string{
		"email":    "invalidEmail",
		"name":     "invalidName",
		"password": "invalidPassword",
	},
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

var loginSchema = validate.Schema{
	Namespace: "schemas.auth",
	Messages: map[string]string{
		"email":    "invalidEmail",
		"password": "invalidPassword",
	},
}

// Register creates an account and signs the new user in.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	t := h.bundle.Locale(i18n.FromRequest(r))

	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, t.T("api.invalidRequest"))
		return
	}
	if issues := registerSchema.Check(req, t); issues != nil {
		httpx.ValidationFailed(w, t.T("api.invalidRequest"), issues)
		return
	}

	user, err := h.service.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		if errors.Is(err, shared.ErrDuplicate) {
			httpx.Error(w, http.StatusBadRequest, t.T("api.emailTaken"))
			return
		}
		h.serverError(w, t, "register user", err)
		return
	}

	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.SetUser(user.ID)
	}
	httpx.JSON(w, http.StatusCreated, user)
}

// Login verifies credentials and binds the user to the session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	t := h.bundle.Locale(i18n.FromRequest(r))

	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, t.T("api.invalidRequest"))
		return
	}
	if issues := loginSchema.Check(req, t); issues != nil {
		httpx.ValidationFailed(w, t.T("api.invalidRequest"), issues)
		return
	}

	user, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			httpx.Error(w, http.StatusUnauthorized, t.T("api.invalidCredentials"))
			return
		}
		h.serverError(w, t, "authenticate user", err)
		return
	}

	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.SetUser(user.ID)
	}
	httpx.JSON(w, http.StatusOK, user)
}

// Logout destroys the session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	t := h.bundle.Locale(i18n.FromRequest(r))

	h.sessions.Destroy(shared.SessionFromContext(r.Context()))
	httpx.Message(w, http.StatusOK, t.T("api.loggedOut"))
}

// Me returns the signed-in user's account.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	t := h.bundle.Locale(i18n.FromRequest(r))

	userID := shared.UserIDFromContext(r.Context())
	if userID == "" {
		httpx.Error(w, http.StatusUnauthorized, t.T("api.notAuthorized"))
		return
	}

	user, err := h.service.UserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.Error(w, http.StatusUnauthorized, t.T("api.notAuthorized"))
			return
		}
		h.serverError(w, t, "load current user", err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *Handler) serverError(w http.ResponseWriter, t i18n.Translator, msg string, err error) {
	h.logger.Error(msg, slog.Any("error", err))
	httpx.Error(w, http.StatusInternalServerError, t.T("api.serverError"))
}
