package company

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/vendoro/vendoro/internal/access"
	"github.com/vendoro/vendoro/internal/i18n"
	"github.com/vendoro/vendoro/internal/shared"
)

type memoryRepo struct {
	companies map[string]Company
	// membership: userID -> set of company ids
	members map[string]map[string]bool
	owners  map[string]string // companyID -> owner userID
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		companies: make(map[string]Company),
		members:   make(map[string]map[string]bool),
		owners:    make(map[string]string),
	}
}

func (r *memoryRepo) ListForUser(_ context.Context, userID string, q shared.ListQuery) ([]Company, int, error) {
	matched := make([]Company, 0)
	for id := range r.members[userID] {
		matched = append(matched, r.companies[id])
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name > matched[j].Name })

	total := len(matched)
	if q.StartIndex >= total {
		return []Company{}, total, nil
	}
	end := q.StartIndex + q.Limit
	if end > total {
		end = total
	}
	return matched[q.StartIndex:end], total, nil
}

func (r *memoryRepo) GetForUser(_ context.Context, id, userID string) (Company, error) {
	if !r.members[userID][id] {
		return Company{}, shared.ErrNotFound
	}
	return r.companies[id], nil
}

func (r *memoryRepo) Create(_ context.Context, c Company, ownerUserID string) (Company, error) {
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.companies[c.ID] = c
	if r.members[ownerUserID] == nil {
		r.members[ownerUserID] = make(map[string]bool)
	}
	r.members[ownerUserID][c.ID] = true
	r.owners[c.ID] = ownerUserID
	return c, nil
}

func (r *memoryRepo) Update(_ context.Context, c Company) (Company, error) {
	existing, ok := r.companies[c.ID]
	if !ok {
		return Company{}, shared.ErrNotFound
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now()
	r.companies[c.ID] = c
	return c, nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.companies[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.companies, id)
	return nil
}

// repoResolver derives access answers from the memory repo's membership table.
type repoResolver struct {
	repo *memoryRepo
}

func (s *repoResolver) Resolve(_ context.Context, companyID, userID string) (access.Access, error) {
	if _, ok := s.repo.companies[companyID]; !ok {
		return access.Access{}, access.ErrCompanyNotFound
	}
	if !s.repo.members[userID][companyID] {
		return access.Access{}, access.ErrNotAMember
	}
	return access.Access{CompanyID: companyID, AllPriceTypes: true}, nil
}

func (s *repoResolver) Allowed(_ context.Context, companyID, userID string) error {
	if _, ok := s.repo.companies[companyID]; !ok {
		return access.ErrCompanyNotFound
	}
	if !s.repo.members[userID][companyID] {
		return access.ErrCompanyNotFound
	}
	return nil
}

func newTestRouter(repo *memoryRepo) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(logger, NewService(repo), &repoResolver{repo: repo}, i18n.NewBundle())

	r := chi.NewRouter()
	r.Route("/api/company", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Route("/{companyID}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
		})
	})
	return r
}

func doRequest(t *testing.T, router http.Handler, method, target, body, userID string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if userID != "" {
		sess := &shared.Session{}
		sess.SetUser(userID)
		req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
	}

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

const validDescription = "A long enough company description to satisfy the fifty character floor."

func validPayload(id, name string) string {
	return `{"id":"` + id + `","name":"` + name + `","tin":"1234567890","description":"` + validDescription + `"}`
}

func TestCreateCompanyRegistersOwner(t *testing.T) {
	repo := newMemoryRepo()
	router := newTestRouter(repo)

	res := doRequest(t, router, http.MethodPost, "/api/company/", validPayload("acme", "Acme"), "u1")
	require.Equal(t, http.StatusOK, res.Code)

	var created Company
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &created))
	require.Equal(t, "acme", created.ID)
	require.Equal(t, "u1", repo.owners["acme"])
	require.True(t, repo.members["u1"]["acme"])
}

func TestCreateCompanyValidation(t *testing.T) {
	router := newTestRouter(newMemoryRepo())

	res := doRequest(t, router, http.MethodPost, "/api/company/",
		`{"id":"acme","name":"Acme","tin":"12345","description":"short"}`, "u1")
	require.Equal(t, http.StatusBadRequest, res.Code)

	var body struct {
		Errors []struct {
			Path    []any  `json:"path"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	require.Len(t, body.Errors, 2)
	require.Equal(t, []any{"tin"}, body.Errors[0].Path)
	require.Equal(t, "TIN must be exactly 10 characters long", body.Errors[0].Message)
	require.Equal(t, []any{"description"}, body.Errors[1].Path)
}

func TestCreateCompanyRequiresAuthentication(t *testing.T) {
	router := newTestRouter(newMemoryRepo())

	res := doRequest(t, router, http.MethodPost, "/api/company/", validPayload("acme", "Acme"), "")
	require.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestListOnlyOwnCompanies(t *testing.T) {
	repo := newMemoryRepo()
	router := newTestRouter(repo)

	require.Equal(t, http.StatusOK, doRequest(t, router, http.MethodPost, "/api/company/", validPayload("acme", "Acme"), "u1").Code)
	require.Equal(t, http.StatusOK, doRequest(t, router, http.MethodPost, "/api/company/", validPayload("zeta", "Zeta"), "u1").Code)
	require.Equal(t, http.StatusOK, doRequest(t, router, http.MethodPost, "/api/company/", validPayload("other", "Other"), "u2").Code)

	res := doRequest(t, router, http.MethodGet, "/api/company/?page=1&limit=10", "", "u1")
	require.Equal(t, http.StatusOK, res.Code)

	var body struct {
		Result     []Company         `json:"result"`
		Pagination shared.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	require.Len(t, body.Result, 2)
	// Name descending.
	require.Equal(t, "Zeta", body.Result[0].Name)
	require.Equal(t, "Acme", body.Result[1].Name)
	require.Equal(t, 1, body.Pagination.TotalPages)
}

func TestListWithoutPaginationParams(t *testing.T) {
	router := newTestRouter(newMemoryRepo())

	res := doRequest(t, router, http.MethodGet, "/api/company/", "", "u1")
	require.Equal(t, http.StatusBadRequest, res.Code)
}

func TestGetForeignCompanyIsNotFound(t *testing.T) {
	repo := newMemoryRepo()
	router := newTestRouter(repo)

	require.Equal(t, http.StatusOK, doRequest(t, router, http.MethodPost, "/api/company/", validPayload("acme", "Acme"), "u1").Code)

	res := doRequest(t, router, http.MethodGet, "/api/company/acme/", "", "u2")
	require.Equal(t, http.StatusNotFound, res.Code)
}

func TestUpdateCompany(t *testing.T) {
	repo := newMemoryRepo()
	router := newTestRouter(repo)

	require.Equal(t, http.StatusOK, doRequest(t, router, http.MethodPost, "/api/company/", validPayload("acme", "Acme"), "u1").Code)

	res := doRequest(t, router, http.MethodPut, "/api/company/acme/", validPayload("acme", "Acme Inc"), "u1")
	require.Equal(t, http.StatusOK, res.Code)

	var updated Company
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &updated))
	require.Equal(t, "Acme Inc", updated.Name)
}

func TestUpdateByNonMemberIs404(t *testing.T) {
	repo := newMemoryRepo()
	router := newTestRouter(repo)

	require.Equal(t, http.StatusOK, doRequest(t, router, http.MethodPost, "/api/company/", validPayload("acme", "Acme"), "u1").Code)

	res := doRequest(t, router, http.MethodPut, "/api/company/acme/", validPayload("acme", "Hijacked"), "u2")
	require.Equal(t, http.StatusNotFound, res.Code)
	require.Equal(t, "Acme", repo.companies["acme"].Name)
}

func TestDeleteCompany(t *testing.T) {
	repo := newMemoryRepo()
	router := newTestRouter(repo)

	require.Equal(t, http.StatusOK, doRequest(t, router, http.MethodPost, "/api/company/", validPayload("acme", "Acme"), "u1").Code)

	res := doRequest(t, router, http.MethodDelete, "/api/company/acme/", "", "u1")
	require.Equal(t, http.StatusOK, res.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	require.Equal(t, "Company deleted", body["message"])
	require.Empty(t, repo.companies)
}
