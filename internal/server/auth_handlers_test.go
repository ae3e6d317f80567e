package server

import (
	"net/http"
	"testing"
	"time"

	"happyhour/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	_, app, db := setupTestServer(t)

	resp := doRequest(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username":   "newcomer",
		"password":   testPassword,
		"first_name": "New",
		"last_name":  "Comer",
		"email":      "newcomer@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeBody(t, resp, &body)

	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "newcomer", body.User.Username)
	// Self-serve registration can never mint an admin.
	assert.False(t, body.User.IsAdmin)

	var stored models.User
	require.NoError(t, db.Where("username = ?", "newcomer").First(&stored).Error)
	assert.NotEqual(t, testPassword, stored.Password)
}

func TestRegister_WeakPassword(t *testing.T) {
	t.Parallel()

	_, app, _ := setupTestServer(t)

	resp := doRequest(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username": "weakling",
		"password": "short",
		"email":    "weakling@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegister_IgnoresAdminFlag(t *testing.T) {
	t.Parallel()

	_, app, db := setupTestServer(t)

	resp := doRequest(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username": "sneaky",
		"password": testPassword,
		"email":    "sneaky@example.com",
		"is_admin": true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	var stored models.User
	require.NoError(t, db.Where("username = ?", "sneaky").First(&stored).Error)
	assert.False(t, stored.IsAdmin)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	createTestUser(t, db, "returning", false)

	resp := doRequest(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"username": "returning",
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body authResponse
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Token)

	token, err := jwt.Parse(body.Token, func(token *jwt.Token) (any, error) {
		return []byte(s.config.JWTSecret), nil
	})
	require.NoError(t, err)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "returning", claims["username"])
	assert.Equal(t, "happyhour-api", claims["iss"])
	assert.Equal(t, "happyhour-client", claims["aud"])

	exp := time.Unix(int64(claims["exp"].(float64)), 0)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp, time.Minute)
}

// A wrong password and an unknown username must produce identical responses
// so the login endpoint does not reveal which usernames exist.
func TestLogin_IndistinguishableFailures(t *testing.T) {
	t.Parallel()

	_, app, db := setupTestServer(t)
	createTestUser(t, db, "existing", false)

	wrongPass := doRequest(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"username": "existing",
		"password": "WrongPass$123",
	})
	noUser := doRequest(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"username": "never-registered",
		"password": "WrongPass$123",
	})

	require.Equal(t, http.StatusUnauthorized, wrongPass.StatusCode)
	require.Equal(t, http.StatusUnauthorized, noUser.StatusCode)

	var a, b models.ErrorResponse
	decodeBody(t, wrongPass, &a)
	decodeBody(t, noUser, &b)
	assert.Equal(t, "Invalid username/password", a.Error)
	assert.Equal(t, a.Error, b.Error)
}

func TestAuthRequired_RejectsMissingAndForgedTokens(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	user := createTestUser(t, db, "holder", false)

	// No token at all.
	resp := doRequest(t, app, http.MethodGet, "/api/spaces/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	// Token signed with a different secret.
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      "1",
		"username": user.Username,
		"iss":      "happyhour-api",
		"aud":      "happyhour-client",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	forgedString, err := forged.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	resp = doRequest(t, app, http.MethodGet, "/api/spaces/", forgedString, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	// Token with the wrong issuer.
	badIssuer := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      "1",
		"username": user.Username,
		"iss":      "someone-else",
		"aud":      "happyhour-client",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	badIssuerString, err := badIssuer.SignedString([]byte(s.config.JWTSecret))
	require.NoError(t, err)

	resp = doRequest(t, app, http.MethodGet, "/api/spaces/", badIssuerString, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAdminRequired(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	regular := createTestUser(t, db, "regular", false)
	admin := createTestUser(t, db, "boss", true)

	resp := doRequest(t, app, http.MethodGet, "/api/users/", tokenFor(t, s, regular), nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var errBody models.ErrorResponse
	decodeBody(t, resp, &errBody)
	assert.Equal(t, "Unauthorized, must be an admin!", errBody.Error)

	resp = doRequest(t, app, http.MethodGet, "/api/users/", tokenFor(t, s, admin), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	_, app, db := setupTestServer(t)
	createTestUser(t, db, "taken", false) // email is taken@example.com

	resp := doRequest(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"username": "someoneelse",
		"password": testPassword,
		"email":    "taken@example.com",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errBody models.ErrorResponse
	decodeBody(t, resp, &errBody)
	assert.Equal(t, "Duplicate email: taken@example.com", errBody.Error)
}

func TestMe(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	user := createTestUser(t, db, "selfie", false)

	resp := doRequest(t, app, http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/api/auth/me", tokenFor(t, s, user), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile models.User
	decodeBody(t, resp, &profile)
	assert.Equal(t, user.ID, profile.ID)
	assert.Equal(t, "selfie", profile.Username)
	assert.Empty(t, profile.Password)
}

// Category, location, comment-listing and rating reads are available without
// a token; the space catalog and all writes are not.
func TestAnonymousReadSurface(t *testing.T) {
	t.Parallel()

	_, app, db := setupTestServer(t)
	user := createTestUser(t, db, "regular", false)
	category, location := seedReferenceData(t, db)
	space := createTestSpace(t, db, "Loft Nine", category, location)
	require.NoError(t, db.Create(&models.Comment{
		Content: "lovely", CommentDate: time.Now(), UserID: user.ID, SpaceID: space.ID,
	}).Error)
	require.NoError(t, db.Create(&models.Rating{
		Rating: 4, UserID: user.ID, SpaceID: space.ID,
	}).Error)

	open := []string{
		"/api/categories/",
		"/api/categories/Fine%20Dining",
		"/api/locations/",
		"/api/locations/cities/Portland",
		"/api/locations/neighborhoods/Pearl%20District",
		"/api/comments/spaces/Loft%20Nine",
		"/api/comments/users/regular",
		"/api/ratings/spaces/Loft%20Nine/average",
		"/api/ratings/regular/spaces/Loft%20Nine",
	}
	for _, path := range open {
		resp := doRequest(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		_ = resp.Body.Close()
	}

	gated := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/spaces/"},
		{http.MethodGet, "/api/spaces/Loft%20Nine"},
		{http.MethodGet, "/api/users/regular"},
		{http.MethodPost, "/api/categories/"},
		{http.MethodPatch, "/api/categories/Fine%20Dining"},
		{http.MethodPost, "/api/locations/"},
		{http.MethodPost, "/api/comments/regular/spaces/Loft%20Nine"},
		{http.MethodPatch, "/api/ratings/1"},
		{http.MethodDelete, "/api/ratings/1"},
	}
	for _, tc := range gated {
		resp := doRequest(t, app, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, tc.method+" "+tc.path)
		_ = resp.Body.Close()
	}
}
