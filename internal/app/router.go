package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vendoro/vendoro/internal/auth"
	"github.com/vendoro/vendoro/internal/company"
	"github.com/vendoro/vendoro/internal/invitation"
	"github.com/vendoro/vendoro/internal/member"
	"github.com/vendoro/vendoro/internal/pricetype"
	"github.com/vendoro/vendoro/internal/role"
	"github.com/vendoro/vendoro/internal/shared"
	"github.com/vendoro/vendoro/internal/stock"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	SessionManager    *shared.SessionManager
	AuthHandler       *auth.Handler
	CompanyHandler    *company.Handler
	StockHandler      *stock.Handler
	PriceTypeHandler  *pricetype.Handler
	RoleHandler       *role.Handler
	MemberHandler     *member.Handler
	InvitationHandler *invitation.Handler
}

// NewRouter constructs the chi.Router with Vendoro defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Route("/api", func(r chi.Router) {
		r.Route("/company", func(r chi.Router) {
			r.Get("/", params.CompanyHandler.List)
			r.Post("/", params.CompanyHandler.Create)

			r.Route("/{companyID}", func(r chi.Router) {
				r.Get("/", params.CompanyHandler.Get)
				r.Put("/", params.CompanyHandler.Update)
				r.Delete("/", params.CompanyHandler.Delete)

				r.Route("/stock", params.StockHandler.MountRoutes)
				r.Route("/price-type", params.PriceTypeHandler.MountRoutes)
				r.Route("/role", params.RoleHandler.MountRoutes)
				r.Route("/member", params.MemberHandler.MountRoutes)
				r.Route("/invitation", params.InvitationHandler.MountRoutes)
			})
		})

		// Acceptance lives outside the company tree: the caller is not a
		// member of the company yet.
		r.Post("/invitation/accept", params.InvitationHandler.Accept)
	})

	return r
}
