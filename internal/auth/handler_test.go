package auth_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/vendoro/vendoro/internal/auth"
	"github.com/vendoro/vendoro/internal/i18n"
	"github.com/vendoro/vendoro/internal/shared"
)

type stubRepo struct {
	users map[string]auth.User // keyed by email
}

func newStubRepo() *stubRepo {
	return &stubRepo{users: make(map[string]auth.User)}
}

func (s *stubRepo) Create(_ context.Context, user auth.User) (auth.User, error) {
	email := strings.ToLower(user.Email)
	if _, ok := s.users[email]; ok {
		return auth.User{}, shared.ErrDuplicate
	}
	user.ID = "u-" + email
	user.Email = email
	user.CreatedAt = time.Now()
	s.users[email] = user
	return user, nil
}

func (s *stubRepo) FindByEmail(_ context.Context, email string) (auth.User, error) {
	user, ok := s.users[strings.ToLower(email)]
	if !ok {
		return auth.User{}, shared.ErrNotFound
	}
	return user, nil
}

func (s *stubRepo) FindByID(_ context.Context, id string) (auth.User, error) {
	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return auth.User{}, shared.ErrNotFound
}

func newAuthHandler(t *testing.T, repo auth.Repository) (*auth.Handler, *shared.SessionManager) {
	t.Helper()
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessionManager := shared.NewSessionManager(redisClient, "test_session", "secret", time.Hour, false)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := auth.NewHandler(logger, auth.NewService(repo), sessionManager, i18n.NewBundle())
	return handler, sessionManager
}

func serveWithSession(t *testing.T, sm *shared.SessionManager, req *http.Request, fn http.HandlerFunc) (*httptest.ResponseRecorder, *shared.Session) {
	t.Helper()
	sess, err := sm.Load(context.Background(), req)
	require.NoError(t, err)
	ctx := shared.ContextWithSession(req.Context(), sess)
	req = req.WithContext(ctx)

	res := httptest.NewRecorder()
	fn(res, req)
	require.NoError(t, sm.Commit(ctx, res, sess))
	return res, sess
}

func registerBody(email string) string {
	return `{"email":"` + email + `","name":"Guest","password":"supersecret"}`
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newStubRepo()
	handler, sm := newAuthHandler(t, repo)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(registerBody("guest@example.com")))
	res, sess := serveWithSession(t, sm, req, handler.Register)
	require.Equal(t, http.StatusCreated, res.Code)

	var user auth.User
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &user))
	require.Equal(t, "guest@example.com", user.Email)
	// Password hash never serializes.
	require.NotContains(t, res.Body.String(), "password")

	// Registration signs the user in.
	require.Equal(t, user.ID, sess.User())

	req = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"guest@example.com","password":"supersecret"}`))
	res, sess = serveWithSession(t, sm, req, handler.Login)
	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, user.ID, sess.User())

	// Commit wrote a session cookie.
	cookies := res.Result().Cookies()
	require.NotEmpty(t, cookies)
	require.Equal(t, sm.CookieName(), cookies[0].Name)
	require.Equal(t, sess.ID, cookies[0].Value)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newStubRepo()
	handler, sm := newAuthHandler(t, repo)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(registerBody("guest@example.com")))
	res, _ := serveWithSession(t, sm, req, handler.Register)
	require.Equal(t, http.StatusCreated, res.Code)

	req = httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(registerBody("guest@example.com")))
	res, _ = serveWithSession(t, sm, req, handler.Register)
	require.Equal(t, http.StatusBadRequest, res.Code)
	require.Contains(t, res.Body.String(), "This email is already registered")
}

func TestRegisterValidation(t *testing.T) {
	handler, sm := newAuthHandler(t, newStubRepo())

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"email":"bad","name":"","password":"short"}`))
	res, _ := serveWithSession(t, sm, req, handler.Register)
	require.Equal(t, http.StatusBadRequest, res.Code)

	var body struct {
		Errors []struct {
			Path    []any  `json:"path"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	require.Len(t, body.Errors, 3)
	require.Equal(t, "Password must be at least 8 characters long", body.Errors[2].Message)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newStubRepo()
	handler, sm := newAuthHandler(t, repo)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(registerBody("guest@example.com")))
	res, _ := serveWithSession(t, sm, req, handler.Register)
	require.Equal(t, http.StatusCreated, res.Code)

	req = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"guest@example.com","password":"wrongpass"}`))
	res, sess := serveWithSession(t, sm, req, handler.Login)
	require.Equal(t, http.StatusUnauthorized, res.Code)
	require.Contains(t, res.Body.String(), "Invalid email or password")
	require.Empty(t, sess.User())
}

func TestLoginUnknownEmailMatchesWrongPassword(t *testing.T) {
	handler, sm := newAuthHandler(t, newStubRepo())

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"ghost@example.com","password":"whatever1"}`))
	res, _ := serveWithSession(t, sm, req, handler.Login)
	require.Equal(t, http.StatusUnauthorized, res.Code)
	require.Contains(t, res.Body.String(), "Invalid email or password")
}

func TestMe(t *testing.T) {
	repo := newStubRepo()
	handler, sm := newAuthHandler(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	res, _ := serveWithSession(t, sm, req, handler.Me)
	require.Equal(t, http.StatusUnauthorized, res.Code)

	created, err := repo.Create(context.Background(), auth.User{Email: "guest@example.com", Name: "Guest"})
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	sess, err := sm.Load(context.Background(), req)
	require.NoError(t, err)
	sess.SetUser(created.ID)
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))

	res = httptest.NewRecorder()
	handler.Me(res, req)
	require.Equal(t, http.StatusOK, res.Code)

	var user auth.User
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &user))
	require.Equal(t, "Guest", user.Name)
}

func TestLogoutDestroysSession(t *testing.T) {
	handler, sm := newAuthHandler(t, newStubRepo())

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	res, _ := serveWithSession(t, sm, req, handler.Logout)
	require.Equal(t, http.StatusOK, res.Code)
	require.Contains(t, res.Body.String(), "You have been logged out")

	// Commit answered with an expiring cookie.
	cookies := res.Result().Cookies()
	require.NotEmpty(t, cookies)
	require.Equal(t, -1, cookies[0].MaxAge)
}
