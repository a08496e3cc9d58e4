package invitation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"github.com/vendoro/vendoro/internal/access"
	"github.com/vendoro/vendoro/internal/i18n"
	"github.com/vendoro/vendoro/internal/shared"
	"github.com/vendoro/vendoro/jobs"
)

type memoryRepo struct {
	invitations []Invitation
	userEmails  map[string]string // userID -> email
	memberOf    map[string]bool   // companyID + ":" + userID
	companyName map[string]string
	nextID      int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		userEmails:  make(map[string]string),
		memberOf:    make(map[string]bool),
		companyName: make(map[string]string),
	}
}

func (r *memoryRepo) List(_ context.Context, companyID string, q shared.ListQuery) ([]Invitation, int, error) {
	matched := make([]Invitation, 0)
	for _, inv := range r.invitations {
		if inv.CompanyID == companyID {
			matched = append(matched, inv)
		}
	}
	total := len(matched)
	if q.StartIndex >= total {
		return []Invitation{}, total, nil
	}
	end := q.StartIndex + q.Limit
	if end > total {
		end = total
	}
	return matched[q.StartIndex:end], total, nil
}

func (r *memoryRepo) Create(_ context.Context, companyID, roleID, email string) (Invitation, error) {
	r.nextID++
	inv := Invitation{
		ID:        fmt.Sprintf("inv-%d", r.nextID),
		CompanyID: companyID,
		RoleID:    roleID,
		Email:     strings.ToLower(email),
		CreatedAt: time.Now(),
	}
	r.invitations = append(r.invitations, inv)
	return inv, nil
}

func (r *memoryRepo) Delete(_ context.Context, companyID, id string) error {
	for i, inv := range r.invitations {
		if inv.ID == id && inv.CompanyID == companyID {
			r.invitations = append(r.invitations[:i], r.invitations[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *memoryRepo) Accept(_ context.Context, id, userID string) (AcceptedMember, error) {
	for i, inv := range r.invitations {
		if inv.ID != id {
			continue
		}
		if !strings.EqualFold(inv.Email, r.userEmails[userID]) {
			return AcceptedMember{}, shared.ErrNotFound
		}
		if r.memberOf[inv.CompanyID+":"+userID] {
			return AcceptedMember{}, shared.ErrDuplicate
		}
		r.memberOf[inv.CompanyID+":"+userID] = true
		r.invitations = append(r.invitations[:i], r.invitations[i+1:]...)
		return AcceptedMember{
			ID:        "m-" + id,
			CompanyID: inv.CompanyID,
			UserID:    userID,
			RoleID:    inv.RoleID,
		}, nil
	}
	return AcceptedMember{}, shared.ErrNotFound
}

func (r *memoryRepo) CompanyName(_ context.Context, companyID string) (string, error) {
	name, ok := r.companyName[companyID]
	if !ok {
		return "", shared.ErrNotFound
	}
	return name, nil
}

type recordingEnqueuer struct {
	tasks []*asynq.Task
}

func (e *recordingEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{}, nil
}

type stubResolver struct {
	companies map[string]bool
	members   map[string]bool
}

func (s *stubResolver) Resolve(_ context.Context, companyID, userID string) (access.Access, error) {
	if !s.companies[companyID] {
		return access.Access{}, access.ErrCompanyNotFound
	}
	if !s.members[companyID+":"+userID] {
		return access.Access{}, access.ErrNotAMember
	}
	return access.Access{CompanyID: companyID, AllPriceTypes: true}, nil
}

func (s *stubResolver) Allowed(_ context.Context, companyID, userID string) error {
	if !s.companies[companyID] || !s.members[companyID+":"+userID] {
		return access.ErrCompanyNotFound
	}
	return nil
}

func newTestRouter(repo Repository, enqueuer TaskEnqueuer, resolver access.Resolver) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(logger, NewService(repo, enqueuer, logger), resolver, i18n.NewBundle())

	r := chi.NewRouter()
	r.Route("/api/company/{companyID}/invitation", h.MountRoutes)
	r.Post("/api/invitation/accept", h.Accept)
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

func memberResolver() *stubResolver {
	return &stubResolver{
		companies: map[string]bool{"c1": true},
		members:   map[string]bool{"c1:u1": true},
	}
}

func TestCreateInvitationEnqueuesEmail(t *testing.T) {
	repo := newMemoryRepo()
	repo.companyName["c1"] = "Acme"
	enqueuer := &recordingEnqueuer{}
	router := newTestRouter(repo, enqueuer, memberResolver())

	res := doRequest(t, router, http.MethodPost, "/api/company/c1/invitation/",
		`{"roleId":"r1","email":"New.Member@Example.com"}`, "u1")
	require.Equal(t, http.StatusCreated, res.Code)

	var created Invitation
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &created))
	require.Equal(t, "new.member@example.com", created.Email)

	require.Len(t, enqueuer.tasks, 1)
	require.Equal(t, jobs.TaskTypeInvitationEmail, enqueuer.tasks[0].Type())

	var payload jobs.InvitationEmailPayload
	require.NoError(t, json.Unmarshal(enqueuer.tasks[0].Payload(), &payload))
	require.Equal(t, "new.member@example.com", payload.To)
	require.Equal(t, "Acme", payload.CompanyName)
}

func TestCreateInvitationValidation(t *testing.T) {
	router := newTestRouter(newMemoryRepo(), &recordingEnqueuer{}, memberResolver())

	res := doRequest(t, router, http.MethodPost, "/api/company/c1/invitation/",
		`{"roleId":"r1","email":"not-an-email"}`, "u1")
	require.Equal(t, http.StatusBadRequest, res.Code)

	var body struct {
		Errors []struct {
			Path    []any  `json:"path"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	require.Len(t, body.Errors, 1)
	require.Equal(t, []any{"email"}, body.Errors[0].Path)
	require.Equal(t, "A valid email is required", body.Errors[0].Message)
}

func TestCreateInvitationByNonMember(t *testing.T) {
	router := newTestRouter(newMemoryRepo(), &recordingEnqueuer{}, &stubResolver{companies: map[string]bool{"c1": true}})

	res := doRequest(t, router, http.MethodPost, "/api/company/c1/invitation/",
		`{"roleId":"r1","email":"x@example.com"}`, "outsider")
	require.Equal(t, http.StatusNotFound, res.Code)
}

func TestAcceptInvitation(t *testing.T) {
	repo := newMemoryRepo()
	repo.userEmails["u2"] = "guest@example.com"
	inv, err := repo.Create(context.Background(), "c1", "r1", "guest@example.com")
	require.NoError(t, err)

	router := newTestRouter(repo, &recordingEnqueuer{}, memberResolver())

	res := doRequest(t, router, http.MethodPost, "/api/invitation/accept", `{"id":"`+inv.ID+`"}`, "u2")
	require.Equal(t, http.StatusOK, res.Code)

	var member AcceptedMember
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &member))
	require.Equal(t, "c1", member.CompanyID)
	require.Equal(t, "u2", member.UserID)
	require.Equal(t, "r1", member.RoleID)
	require.Empty(t, repo.invitations)
}

func TestAcceptRequiresAuthentication(t *testing.T) {
	router := newTestRouter(newMemoryRepo(), &recordingEnqueuer{}, memberResolver())

	res := doRequest(t, router, http.MethodPost, "/api/invitation/accept", `{"id":"inv-1"}`, "")
	require.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestAcceptUnknownInvitation(t *testing.T) {
	repo := newMemoryRepo()
	repo.userEmails["u2"] = "guest@example.com"
	router := newTestRouter(repo, &recordingEnqueuer{}, memberResolver())

	res := doRequest(t, router, http.MethodPost, "/api/invitation/accept", `{"id":"ghost"}`, "u2")
	require.Equal(t, http.StatusNotFound, res.Code)

	var body struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	require.Equal(t, "Invitation does not exist", body.Errors[0].Message)
}

func TestAcceptSomeoneElsesInvitation(t *testing.T) {
	repo := newMemoryRepo()
	repo.userEmails["u3"] = "other@example.com"
	inv, err := repo.Create(context.Background(), "c1", "r1", "guest@example.com")
	require.NoError(t, err)

	router := newTestRouter(repo, &recordingEnqueuer{}, memberResolver())

	res := doRequest(t, router, http.MethodPost, "/api/invitation/accept", `{"id":"`+inv.ID+`"}`, "u3")
	require.Equal(t, http.StatusNotFound, res.Code)
	require.Len(t, repo.invitations, 1)
}

func TestAcceptTwiceReportsExistingMembership(t *testing.T) {
	repo := newMemoryRepo()
	repo.userEmails["u2"] = "guest@example.com"
	repo.memberOf["c1:u2"] = true
	inv, err := repo.Create(context.Background(), "c1", "r1", "guest@example.com")
	require.NoError(t, err)

	router := newTestRouter(repo, &recordingEnqueuer{}, memberResolver())

	res := doRequest(t, router, http.MethodPost, "/api/invitation/accept", `{"id":"`+inv.ID+`"}`, "u2")
	require.Equal(t, http.StatusBadRequest, res.Code)

	var body struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	require.Equal(t, "You are already a member of this company", body.Errors[0].Message)
}

func TestDeleteInvitation(t *testing.T) {
	repo := newMemoryRepo()
	inv, err := repo.Create(context.Background(), "c1", "r1", "guest@example.com")
	require.NoError(t, err)

	router := newTestRouter(repo, &recordingEnqueuer{}, memberResolver())

	res := doRequest(t, router, http.MethodDelete, "/api/company/c1/invitation/"+inv.ID, "", "u1")
	require.Equal(t, http.StatusOK, res.Code)
	require.Empty(t, repo.invitations)
}

func TestListInvitationsRequiresMembership(t *testing.T) {
	router := newTestRouter(newMemoryRepo(), &recordingEnqueuer{}, &stubResolver{companies: map[string]bool{"c1": true}})

	res := doRequest(t, router, http.MethodGet, "/api/company/c1/invitation/?page=1&limit=10", "", "outsider")
	require.Equal(t, http.StatusUnauthorized, res.Code)
}
