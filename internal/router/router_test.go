package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Frenky19/QRkot-spreadsheets/internal/auth"
	"github.com/Frenky19/QRkot-spreadsheets/internal/cache"
	"github.com/Frenky19/QRkot-spreadsheets/internal/lock"
	"github.com/Frenky19/QRkot-spreadsheets/internal/logic"
	"github.com/Frenky19/QRkot-spreadsheets/internal/repository/repositorytest"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	store  *repositorytest.Store
	users  *logic.UserLogic
}

func newTestServer(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)

	store := repositorytest.NewStore()
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	locker := lock.NewLocalLock()
	funder := logic.NewFunder(store, locker, nil, c, nil)
	users := logic.NewUserLogic(store, auth.NewTokenIssuer("SECRET", time.Hour))

	engine := Setup(Deps{
		Projects:  logic.NewProjectLogic(store, funder),
		Donations: logic.NewDonationLogic(store, funder),
		Users:     users,
		Reports:   logic.NewReportLogic(store, locker, c, nil, nil, time.Minute),
	})
	return &testServer{t: t, engine: engine, store: store, users: users}
}

func (s *testServer) do(method, path, token string, body io.Reader, contentType string) (int, envelope) {
	s.t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var resp envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func (s *testServer) json(method, path, token, body string) (int, envelope) {
	return s.do(method, path, token, strings.NewReader(body), "application/json")
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()
	form := url.Values{"username": {email}, "password": {password}}
	code, resp := s.do(http.MethodPost, "/api/v1/auth/jwt/login", "", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	require.Equal(s.t, http.StatusOK, code, resp.Message)

	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(s.t, json.Unmarshal(resp.Data, &token))
	assert.Equal(s.t, "bearer", token.TokenType)
	return token.AccessToken
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, w.Header().Get(requestIdHeader))
}

func TestAccessControl(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.json(http.MethodPost, "/api/v1/auth/register", "", `{"email":"user@example.com","password":"secret"}`)
	require.Equal(t, http.StatusCreated, code)
	userToken := s.login("user@example.com", "secret")

	body := `{"name":"cats","description":"food","full_amount":100}`

	code, resp := s.json(http.MethodPost, "/api/v1/charity_project", "", body)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, resp.Success)

	code, _ = s.json(http.MethodPost, "/api/v1/charity_project", "not-a-token", body)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.json(http.MethodPost, "/api/v1/charity_project", userToken, body)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.json(http.MethodGet, "/api/v1/donation", userToken, "")
	assert.Equal(t, http.StatusForbidden, code)

	code, resp = s.json(http.MethodGet, "/api/v1/users/me", userToken, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(resp.Data), `"email":"user@example.com"`)
	assert.NotContains(t, string(resp.Data), "hashed_password")
}

func TestFundingFlow(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.users.EnsureSuperuser(context.Background(), "admin@example.com", "admin-pass"))
	admin := s.login("admin@example.com", "admin-pass")

	code, _ := s.json(http.MethodPost, "/api/v1/auth/register", "", `{"email":"user@example.com","password":"secret"}`)
	require.Equal(t, http.StatusCreated, code)
	user := s.login("user@example.com", "secret")

	code, resp := s.json(http.MethodPost, "/api/v1/charity_project", admin,
		`{"name":"cats","description":"food","full_amount":100,"invested_amount":50}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code, resp.Message)

	code, resp = s.json(http.MethodPost, "/api/v1/charity_project", admin, `{"name":"cats","description":"food","full_amount":100}`)
	require.Equal(t, http.StatusOK, code, resp.Message)

	code, resp = s.json(http.MethodPost, "/api/v1/charity_project", admin, `{"name":"cats","description":"again","full_amount":10}`)
	assert.Equal(t, http.StatusBadRequest, code, resp.Message)

	code, resp = s.json(http.MethodPost, "/api/v1/donation", user, `{"full_amount":150,"comment":"meow"}`)
	require.Equal(t, http.StatusOK, code, resp.Message)
	var donation map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &donation))
	assert.Equal(t, float64(150), donation["full_amount"])
	assert.NotContains(t, donation, "invested_amount")

	code, resp = s.json(http.MethodGet, "/api/v1/donation", admin, "")
	require.Equal(t, http.StatusOK, code)
	var all []map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &all))
	require.Len(t, all, 1)
	assert.Equal(t, float64(100), all[0]["invested_amount"])
	assert.Equal(t, false, all[0]["fully_invested"])
	assert.NotContains(t, all[0], "close_date")

	code, resp = s.json(http.MethodGet, "/api/v1/charity_project/1", "", "")
	require.Equal(t, http.StatusOK, code)
	var project map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &project))
	assert.Equal(t, true, project["fully_invested"])
	assert.NotNil(t, project["close_date"])

	code, _ = s.json(http.MethodPatch, "/api/v1/charity_project/1", admin, `{"description":"new"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.json(http.MethodDelete, "/api/v1/charity_project/1", admin, "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.json(http.MethodGet, "/api/v1/charity_project/999", "", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, resp = s.json(http.MethodGet, "/api/v1/donation/my", user, "")
	require.Equal(t, http.StatusOK, code)
	var mine []map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &mine))
	assert.Len(t, mine, 1)

	code, resp = s.json(http.MethodGet, "/api/v1/report", admin, "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(resp.Data), `"name":"cats"`)

	code, _ = s.json(http.MethodPost, "/api/v1/google", admin, "")
	assert.Equal(t, http.StatusServiceUnavailable, code)
}
