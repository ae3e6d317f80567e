package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"happyhour/internal/config"
	"happyhour/internal/database"
	"happyhour/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testPassword satisfies the password policy and is shared by all fixtures.
const testPassword = "Sup3r$ecretPass"

func setupTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret:  "handler-test-secret",
		BcryptCost: bcrypt.MinCost,
		Env:        "test",
	}

	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{UnescapePath: true})
	s.SetupRoutes(app)

	return s, app, db
}

func createTestUser(t *testing.T, db *gorm.DB, username string, isAdmin bool) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Username:  username,
		Password:  string(hash),
		FirstName: "Test",
		LastName:  "User",
		Email:     username + "@example.com",
		IsAdmin:   isAdmin,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func tokenFor(t *testing.T, s *Server, user models.User) string {
	t.Helper()

	token, err := s.generateToken(&user)
	require.NoError(t, err)
	return token
}

// doRequest issues a JSON request against the app, optionally authenticated.
func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()

	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"id", "ID"},
		{"comment_id", "comment ID"},
		{"username", "username"},
	}
	for _, tt := range tests {
		if got := humanizeParam(tt.in); got != tt.want {
			t.Errorf("humanizeParam(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
