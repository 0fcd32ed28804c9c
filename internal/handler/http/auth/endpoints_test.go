package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"news-portal/internal/domain/entity"
	authservice "news-portal/internal/service/auth"
)

type memUsers struct {
	mu   sync.Mutex
	byID map[entity.UserID]*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.byID {
		if e.Email == u.Email {
			return entity.ErrDuplicateEmail
		}
	}
	u.ID = entity.UserID(fmt.Sprintf("user-%d", len(m.byID)+1))
	u.CreatedAt = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	c := *u
	m.byID[u.ID] = &c
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id entity.UserID) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == strings.ToLower(email) {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func newMux(t *testing.T) *http.ServeMux {
	t.Helper()
	users := &memUsers{byID: map[entity.UserID]*entity.User{}}
	tokens := authservice.NewTokenManager("endpoint-test-secret-0123456789abcdef", time.Hour)
	svc := authservice.NewService(users, tokens, authservice.Options{MinPasswordLength: 6, BcryptCost: bcrypt.MinCost})

	mux := http.NewServeMux()
	Register(mux, svc, authservice.NewGuard(tokens, users), CookieConfig{Name: "token", TTL: 24 * time.Hour}, nil)
	return mux
}

func do(mux http.Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestRegisterLoginMeLogout(t *testing.T) {
	mux := newMux(t)

	rec := do(mux, http.MethodPost, "/api/auth/register",
		`{"name":"Jane","email":"jane@example.com","password":"secret1","role":"admin"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var sess sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
	assert.True(t, sess.Success)
	assert.Equal(t, "jane@example.com", sess.User.Email)
	assert.Equal(t, "admin", sess.User.Role)
	assert.NotContains(t, rec.Body.String(), "password")

	cookie := sessionCookie(t, rec)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	rec = do(mux, http.MethodPost, "/api/auth/login", `{"email":"JANE@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie = sessionCookie(t, rec)

	rec = do(mux, http.MethodGet, "/api/auth/me", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var me struct {
		Success bool    `json:"success"`
		Data    UserDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "Jane", me.Data.Name)

	rec = do(mux, http.MethodGet, "/api/auth/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	out := sessionCookie(t, rec)
	assert.Equal(t, "none", out.Value)
	assert.WithinDuration(t, time.Now().Add(10*time.Second), out.Expires, 2*time.Second)

	rec = do(mux, http.MethodGet, "/api/auth/me", "", out)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_Failures(t *testing.T) {
	mux := newMux(t)
	require.Equal(t, http.StatusOK, do(mux, http.MethodPost, "/api/auth/register",
		`{"name":"Jane","email":"jane@example.com","password":"secret1"}`).Code)

	tests := []struct {
		name    string
		body    string
		want    int
		wantMsg string
	}{
		{"wrong password", `{"email":"jane@example.com","password":"nope123"}`, http.StatusUnauthorized, "invalid credentials"},
		{"unknown email", `{"email":"who@example.com","password":"secret1"}`, http.StatusUnauthorized, "invalid credentials"},
		{"missing fields", `{}`, http.StatusBadRequest, ""},
		{"malformed json", `{`, http.StatusBadRequest, "invalid input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(mux, http.MethodPost, "/api/auth/login", tt.body)
			assert.Equal(t, tt.want, rec.Code)
			assert.Empty(t, rec.Result().Cookies())
			if tt.wantMsg != "" {
				assert.Contains(t, rec.Body.String(), tt.wantMsg)
			}
		})
	}
}

func TestRegister_Errors(t *testing.T) {
	mux := newMux(t)
	body := `{"name":"Jane","email":"jane@example.com","password":"secret1"}`
	require.Equal(t, http.StatusOK, do(mux, http.MethodPost, "/api/auth/register", body).Code)

	rec := do(mux, http.MethodPost, "/api/auth/register", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email already exists")

	rec = do(mux, http.MethodPost, "/api/auth/register", `{"name":"","email":"x","password":"1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var verr struct {
		Errors []struct{ Field string } `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &verr))
	fields := make([]string, 0, len(verr.Errors))
	for _, e := range verr.Errors {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"name", "email", "password"}, fields)
}
