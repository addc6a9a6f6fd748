package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"passport/config"
	"passport/internal/delivery/http/middleware"
	"passport/internal/delivery/http/validator"
	"passport/internal/infra/auth"
	filestore "passport/internal/infra/persistence/file"
	"passport/internal/usecase/impl"
)

// newTestServer assembles the real stack end to end: echo with the central
// error handler, the file store, a fast bcrypt hasher, and the JWT service.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Signing = "test_signing_secret_very_long_for_testing"
	cfg.Auth = &config.AuthConfig{TokenTTL: 7 * 24 * time.Hour}

	tokenService, err := auth.NewJWTService(cfg, slog.Default())
	require.NoError(t, err)

	uc := impl.NewAuthService(impl.AuthServiceParams{
		Store:        filestore.NewCredentialStore(filepath.Join(t.TempDir(), "users.json")),
		Hasher:       auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		TokenService: tokenService,
		Logger:       slog.Default(),
	})

	h := NewAuthHandler(uc, slog.Default())
	authMW := middleware.NewAuthMiddleware()

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(slog.Default()).HandleHTTPError
	e.POST("/signup", h.Signup)
	e.POST("/login", h.Login)
	e.GET("/check", h.Check, authMW.RequireToken)

	return e
}

func doJSON(e *echo.Echo, method, path, body, bearer string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestAuthHandler_SignupCheckLoginScenario(t *testing.T) {
	e := newTestServer(t)

	// Register alice.
	rec := doJSON(e, http.MethodPost, "/signup", `{"username":"alice","email":"alice@x.com","password":"secret123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var signup struct {
		Token    string `json:"token"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &signup))
	assert.NotEmpty(t, signup.Token)
	assert.Equal(t, "alice", signup.Username)

	// The issued token opens a session.
	rec = doJSON(e, http.MethodGet, "/check", "", signup.Token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"ok":true,"username":"alice"}`, rec.Body.String())

	// Wrong password is rejected.
	rec = doJSON(e, http.MethodPost, "/login", `{"email":"alice@x.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid login"}`, rec.Body.String())

	// Correct password issues a fresh token.
	rec = doJSON(e, http.MethodPost, "/login", `{"email":"alice@x.com","password":"secret123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login struct {
		Token    string `json:"token"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, "alice", login.Username)
}

func TestAuthHandler_SignupMissingFields(t *testing.T) {
	e := newTestServer(t)

	bodies := []string{
		`{"username":"","email":"alice@x.com","password":"secret123"}`,
		`{"username":"alice","email":"","password":"secret123"}`,
		`{"username":"alice","email":"alice@x.com","password":""}`,
		`{}`,
	}

	for _, body := range bodies {
		rec := doJSON(e, http.MethodPost, "/signup", body, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.JSONEq(t, `{"error":"All fields are required"}`, rec.Body.String())
	}
}

func TestAuthHandler_SignupDuplicate(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/signup", `{"username":"alice","email":"alice@x.com","password":"secret123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPost, "/signup", `{"username":"alice","email":"alice@x.com","password":"secret123"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"User already exists"}`, rec.Body.String())
}

func TestAuthHandler_LoginFailurePayloadsAreIdentical(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/signup", `{"username":"alice","email":"real@x.com","password":"secret123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	unknown := doJSON(e, http.MethodPost, "/login", `{"email":"nonexistent@x.com","password":"pw"}`, "")
	wrongPw := doJSON(e, http.MethodPost, "/login", `{"email":"real@x.com","password":"wrongpw"}`, "")

	assert.Equal(t, unknown.Code, wrongPw.Code)
	assert.Equal(t, unknown.Body.String(), wrongPw.Body.String())
}

func TestAuthHandler_CheckWithoutToken(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/check", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"No token provided"}`, rec.Body.String())
}

func TestAuthHandler_CheckWithGarbageToken(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/check", "", "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid token"}`, rec.Body.String())
}
