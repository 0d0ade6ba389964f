package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrlokans/booktracker/internal/auth"
	"github.com/mrlokans/booktracker/internal/config"
	"github.com/mrlokans/booktracker/internal/database"
	"github.com/mrlokans/booktracker/internal/database/books"
	"github.com/mrlokans/booktracker/internal/database/tokens"
	"github.com/mrlokans/booktracker/internal/database/users"
	"github.com/mrlokans/booktracker/internal/entities"
	"github.com/mrlokans/booktracker/internal/services"
)

func setupFullRouter(t *testing.T) (*gin.Engine, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_integration_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cfg := config.Auth{BcryptCost: bcrypt.MinCost, TokenExpiry: time.Hour}
	issuer := auth.NewIssuer([]byte("integration-test-secret-32-bytes"), "booktracker-test", cfg.TokenExpiry)
	authService := auth.NewService(users.NewRepository(db.DB), tokens.NewRepository(db.DB), issuer, cfg)

	router := NewRouter(RouterConfig{
		BookService:    services.NewBookManager(books.NewRepository(db.DB)),
		Database:       db,
		AuthService:    authService,
		AuthMiddleware: auth.NewMiddleware(authService),
		Metrics:        NewCollector(),
		Version:        "test",
	})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return router, cleanup
}

func doJSON(router *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func requestToken(t *testing.T, router *gin.Engine, email, password string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	form := url.Values{
		"grant_type": {"password"},
		"username":   {email},
		"password":   {password},
	}
	req, _ := http.NewRequest("POST", "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		return w, ""
	}
	var resp auth.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp.AccessToken
}

// Full register → login → CRUD → logout flow.
func TestAPI_FullFlow(t *testing.T) {
	router, cleanup := setupFullRouter(t)
	defer cleanup()

	// Register
	w := doJSON(router, "POST", "/auth/register", `{"email":"a@x.com","password":"Pw1!"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "registered", w.Body.String())

	// Duplicate registration is rejected
	w = doJSON(router, "POST", "/auth/register", `{"email":"a@x.com","password":"Pw2!"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Password grant
	w, token := requestToken(t, router, "a@x.com", "Pw1!")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, token)

	var grant auth.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grant))
	assert.Equal(t, "Bearer", grant.TokenType)
	assert.Equal(t, auth.TokenScope, grant.Scope)
	assert.Positive(t, grant.ExpiresIn)

	// Empty library
	w = doJSON(router, "GET", "/book", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	// Create a book
	w = doJSON(router, "POST", "/book", `{"title":"Dune","author":"Herbert"}`, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var created entities.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Dune", created.Title)
	assert.Equal(t, "Herbert", created.Author)

	// Logout revokes the token
	w = doJSON(router, "POST", "/auth/logout", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "logged out", w.Body.String())

	// Revoked token no longer authorizes, even though unexpired
	w = doJSON(router, "GET", "/book", "", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPI_ProtectedRoutesRequireToken(t *testing.T) {
	router, cleanup := setupFullRouter(t)
	defer cleanup()

	for _, tc := range []struct {
		method string
		path   string
		body   string
	}{
		{"GET", "/book", ""},
		{"GET", "/book/1", ""},
		{"POST", "/book", `{"title":"Dune","author":"Herbert"}`},
		{"PUT", "/book/1", `{"title":"Dune","author":"Herbert"}`},
		{"DELETE", "/book/1", ""},
	} {
		w := doJSON(router, tc.method, tc.path, tc.body, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s without token", tc.method, tc.path)

		w = doJSON(router, tc.method, tc.path, tc.body, "garbage")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s with garbage token", tc.method, tc.path)
	}
}

func TestAPI_TokenGrant(t *testing.T) {
	router, cleanup := setupFullRouter(t)
	defer cleanup()

	w := doJSON(router, "POST", "/auth/register", `{"email":"a@x.com","password":"Pw1!"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("rejects unsupported grant type", func(t *testing.T) {
		form := url.Values{
			"grant_type": {"client_credentials"},
			"username":   {"a@x.com"},
			"password":   {"Pw1!"},
		}
		req, _ := http.NewRequest("POST", "/auth/token", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		wrongPassword, _ := requestToken(t, router, "a@x.com", "Pw2!")
		unknownEmail, _ := requestToken(t, router, "b@x.com", "Pw1!")

		assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
		assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
		assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	})
}

func TestAPI_Logout(t *testing.T) {
	router, cleanup := setupFullRouter(t)
	defer cleanup()

	w := doJSON(router, "POST", "/auth/register", `{"email":"a@x.com","password":"Pw1!"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("missing token", func(t *testing.T) {
		w := doJSON(router, "POST", "/auth/logout", "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed token", func(t *testing.T) {
		w := doJSON(router, "POST", "/auth/logout", "", "garbage")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("double logout", func(t *testing.T) {
		w, token := requestToken(t, router, "a@x.com", "Pw1!")
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(router, "POST", "/auth/logout", "", token)
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(router, "POST", "/auth/logout", "", token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAPI_Metrics(t *testing.T) {
	router, cleanup := setupFullRouter(t)
	defer cleanup()

	// Generate one sample first
	w := doJSON(router, "GET", "/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "GET", "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "booktracker_http_requests_total")
}
