package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"vitrin/internal/config"
	"vitrin/internal/database"
	"vitrin/internal/models"
	"vitrin/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testAdminUsername = "admin"
	testAdminPassword = "admin123"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:             "5000",
		SessionSecret:    "test-session-secret",
		SessionTable:     "sessions",
		CloudinaryCloud:  "demo-cloud",
		CloudinaryKey:    "1234567890",
		CloudinarySecret: "test-api-secret",
		CloudinaryFolder: "vitrin",
		Env:              "test",
	}
}

// newTestServer builds a server over a per-test in-memory sqlite database
// with an admin user seeded and an in-memory session store.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{Username: testAdminUsername, Password: string(hash)}).Error)

	store := session.NewMemoryStore(0)
	t.Cleanup(store.Close)

	srv := NewServerWithDeps(testConfig(), db, nil, store)
	return srv, srv.App()
}

// jsonRequest builds an httptest request with a JSON body.
func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// login authenticates as the seeded admin and returns the session cookie.
func login(t *testing.T, app *fiber.App) *http.Cookie {
	t.Helper()

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"username": testAdminUsername,
		"password": testAdminPassword,
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	for _, c := range resp.Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatal("login response did not set the session cookie")
	return nil
}

// decodeJSON reads the response body into dest.
func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func TestHealthCheck(t *testing.T) {
	_, app := newTestServer(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Status string `json:"status"`
		Checks struct {
			Database string `json:"database"`
			Redis    string `json:"redis"`
		} `json:"checks"`
	}
	decodeJSON(t, resp, &body)
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "healthy", body.Checks.Database)
	assert.Equal(t, "unavailable", body.Checks.Redis)
}
