package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/marketplace-storefront/internal/application"
	"github.com/oksasatya/marketplace-storefront/internal/domain/entity"
	"github.com/oksasatya/marketplace-storefront/internal/infrastructure/memory"
	"github.com/oksasatya/marketplace-storefront/internal/interface/middleware"
	"github.com/oksasatya/marketplace-storefront/pkg/helpers"
	"github.com/oksasatya/marketplace-storefront/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	os.Exit(m.Run())
}

type testServer struct {
	engine *gin.Engine
	repo   *memory.UserRepository
	jwt    *helpers.JWTManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	repo := memory.NewUserRepository()
	jwt, err := helpers.NewJWTManager("0123456789abcdef0123456789abcdef", helpers.SessionTTL)
	require.NoError(t, err)
	logger := helpers.NopLogger()
	svc := application.NewService(repo, helpers.NewPasswordHasher(bcrypt.MinCost), jwt, logger)

	auth := NewAuthHandler(svc, helpers.NewCookie("", true), helpers.SessionTTL, logger)
	user := NewUserHandler(svc, logger)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/register", auth.Register(entity.RoleCustomer))
	api.POST("/auth/admin/register", auth.Register(entity.RoleAdmin))
	api.POST("/auth/login", auth.Login(""))
	api.POST("/auth/seller/login", auth.Login(entity.RoleSeller))
	api.POST("/auth/logout", auth.Logout)
	api.GET("/auth/me", middleware.Auth(jwt), auth.Me)
	u := api.Group("/user", middleware.Auth(jwt))
	u.GET("/profile", user.GetProfile)
	u.PUT("/update-profile", user.UpdateProfile)
	u.PUT("/settings", user.UpdateSettings)
	u.PUT("/address", user.UpsertAddress)
	u.DELETE("/address", user.DeleteAddress)
	// mounted without Auth to check the handler's own guard
	r.GET("/unguarded/profile", user.GetProfile)

	return &testServer{engine: r, repo: repo, jwt: jwt}
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

// login registers nothing; it returns the session cookie value for an existing account.
func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	rec, _ := s.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": password}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	for _, c := range rec.Result().Cookies() {
		if c.Name == helpers.SessionCookieName {
			return c.Value
		}
	}
	t.Fatal("login did not set the session cookie")
	return ""
}

func (s *testServer) signUp(t *testing.T, email string) string {
	t.Helper()
	rec, _ := s.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"name": "Asha", "email": email, "password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return s.login(t, email, "password123")
}

var fullAddress = map[string]string{
	"addressLine1": "12 MG Road",
	"city":         "Bengaluru",
	"state":        "Karnataka",
	"pinCode":      "560001",
	"phone":        "+91 98765 43210",
}

// Requirement: register answers 201 with public fields only, 409 on a duplicate and 400 on bad input.
func TestRegister(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"name": "Asha", "email": "asha@example.com", "password": "password123", "address": fullAddress,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var data struct {
		User map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "asha@example.com", data.User["email"])
	assert.NotEmpty(t, data.User["id"])
	assert.NotContains(t, rec.Body.String(), "$2a$")
	assert.NotContains(t, rec.Body.String(), "password")

	tests := []struct {
		name     string
		path     string
		body     map[string]any
		wantCode int
	}{
		{"duplicate email", "/api/auth/register", map[string]any{"name": "B", "email": "ASHA@example.com", "password": "password123"}, http.StatusConflict},
		{"missing name", "/api/auth/register", map[string]any{"email": "x@example.com", "password": "password123"}, http.StatusBadRequest},
		{"bad email", "/api/auth/register", map[string]any{"name": "Xy", "email": "nope", "password": "password123"}, http.StatusBadRequest},
		{"short password", "/api/auth/register", map[string]any{"name": "Xy", "email": "x@example.com", "password": "short"}, http.StatusBadRequest},
		{"address missing city", "/api/auth/register", map[string]any{"name": "Xy", "email": "x@example.com", "password": "password123",
			"address": map[string]string{"addressLine1": "1 Main", "state": "KA", "pinCode": "560001", "phone": "9876543210"}}, http.StatusBadRequest},
		{"admin cannot self-register", "/api/auth/admin/register", map[string]any{"name": "Root", "email": "root@example.com", "password": "password123"}, http.StatusBadRequest},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec, env := s.do(t, http.MethodPost, test.path, test.body, "")
			assert.Equal(t, test.wantCode, rec.Code, rec.Body.String())
			assert.False(t, env.Success)
			assert.NotEmpty(t, env.Message)
		})
	}
}

// Requirement: a password over 72 bytes is a 400 validation error even when it is
// only a few dozen characters, on register and on password change.
func TestPasswordOverByteLimit(t *testing.T) {
	s := newTestServer(t)
	long := strings.Repeat("é", 40)

	rec, env := s.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"name": "Asha", "email": "long@example.com", "password": long,
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Contains(t, string(env.Error), "72 bytes")
	_, err := s.repo.GetByEmail(context.Background(), "long@example.com")
	assert.Error(t, err)

	token := s.signUp(t, "short@example.com")
	for _, path := range []string{"/api/user/update-profile", "/api/user/settings"} {
		rec, _ = s.do(t, http.MethodPut, path, map[string]string{
			"currentPassword": "password123", "newPassword": long,
		}, token)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
	s.login(t, "short@example.com", "password123")
}

// Requirement: a hasher that still rejects the password length answers 400, not 500.
func TestWriteError_PasswordTooLong(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	writeError(c, helpers.NopLogger(), "register", fmt.Errorf("hash password: %w", bcrypt.ErrPasswordTooLong))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotContains(t, rec.Body.String(), msgInternal)
}

// Requirement: login failures look the same whether or not the email exists,
// and success sets the session cookie.
func TestLogin(t *testing.T) {
	s := newTestServer(t)
	s.signUp(t, "known@example.com")

	recUnknown, envUnknown := s.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "ghost@example.com", "password": "password123"}, "")
	recWrong, envWrong := s.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "known@example.com", "password": "wrong-password"}, "")
	assert.Equal(t, http.StatusUnauthorized, recUnknown.Code)
	assert.Equal(t, recUnknown.Code, recWrong.Code)
	assert.Equal(t, envUnknown.Message, envWrong.Message)
	assert.Empty(t, recWrong.Result().Cookies())

	recRole, envRole := s.do(t, http.MethodPost, "/api/auth/seller/login", map[string]string{"email": "known@example.com", "password": "password123"}, "")
	assert.Equal(t, http.StatusUnauthorized, recRole.Code)
	assert.Equal(t, envWrong.Message, envRole.Message)

	token := s.login(t, "known@example.com", "password123")
	uid, err := s.jwt.Verify(token)
	require.NoError(t, err)
	assert.NotEmpty(t, uid)
}

// Requirement: profile needs a valid cookie, strips the hash and 404s once the user is gone.
func TestProfile(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp(t, "me@example.com")

	rec, _ := s.do(t, http.MethodGet, "/api/user/profile", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec, _ = s.do(t, http.MethodGet, "/unguarded/profile", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env := s.do(t, http.MethodGet, "/api/user/profile", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var data struct {
		User map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	for _, key := range []string{"id", "name", "email", "profileImage", "address", "createdAt", "updatedAt"} {
		assert.Contains(t, data.User, key)
	}
	assert.NotContains(t, data.User, "passwordHash")

	rec, _ = s.do(t, http.MethodGet, "/api/auth/me", nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)

	uid, err := s.jwt.Verify(token)
	require.NoError(t, err)
	s.repo.Delete(uid)
	rec, _ = s.do(t, http.MethodGet, "/api/user/profile", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// Requirement: a wrong current password is a 400 and leaves the stored hash alone.
func TestUpdateProfile_PasswordGate(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp(t, "gate@example.com")
	uid, err := s.jwt.Verify(token)
	require.NoError(t, err)
	before, err := s.repo.GetByID(context.Background(), uid)
	require.NoError(t, err)

	rec, env := s.do(t, http.MethodPut, "/api/user/update-profile", map[string]string{
		"currentPassword": "not-the-password", "newPassword": "brand-new-pass",
	}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Current password is incorrect", env.Message)

	after, err := s.repo.GetByID(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)

	rec, _ = s.do(t, http.MethodPut, "/api/user/settings", map[string]string{
		"currentPassword": "password123", "newPassword": "brand-new-pass",
	}, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	s.login(t, "gate@example.com", "brand-new-pass")
}

// Requirement: update-profile changes only the fields present.
func TestUpdateProfile_Fields(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp(t, "fields@example.com")

	rec, env := s.do(t, http.MethodPut, "/api/user/update-profile", map[string]string{"profileImage": "https://cdn.example.com/a.png"}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var data struct {
		User map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "Asha", data.User["name"])
	assert.Equal(t, "https://cdn.example.com/a.png", data.User["profileImage"])
}

// Requirement: address upsert is idempotent, delete clears it, and both require a session.
func TestAddress(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp(t, "addr@example.com")
	body := map[string]any{"address": fullAddress}

	rec, first := s.do(t, http.MethodPut, "/api/user/address", body, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec, second := s.do(t, http.MethodPut, "/api/user/address", body, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, string(first.Data), string(second.Data))
	assert.Contains(t, string(first.Data), `"country":"India"`)

	rec, _ = s.do(t, http.MethodPut, "/api/user/address", map[string]any{}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, http.MethodDelete, "/api/user/address", nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = s.do(t, http.MethodDelete, "/api/user/address", nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)

	_, env := s.do(t, http.MethodGet, "/api/user/profile", nil, token)
	assert.Contains(t, string(env.Data), `"address":null`)

	rec, _ = s.do(t, http.MethodDelete, "/api/user/address", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// Requirement: logout expires the session cookie.
func TestLogout(t *testing.T) {
	s := newTestServer(t)
	rec, env := s.do(t, http.MethodPost, "/api/auth/logout", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, helpers.SessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].MaxAge < 0)
}

// Requirement: store outages surface as a generic 500 without internal detail.
func TestInternalErrorIsGeneric(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp(t, "down@example.com")
	s.repo.Err = assert.AnError

	rec, env := s.do(t, http.MethodGet, "/api/user/profile", nil, token)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, msgInternal, env.Message)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}
