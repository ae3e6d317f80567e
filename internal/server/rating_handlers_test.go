package server

import (
	"fmt"
	"net/http"
	"testing"

	"happyhour/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRating(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	rater := createTestUser(t, db, "rater", false)
	other := createTestUser(t, db, "other", false)
	category, location := seedReferenceData(t, db)
	createTestSpace(t, db, "Loft Nine", category, location)

	raterToken := tokenFor(t, s, rater)

	resp := doRequest(t, app, http.MethodPost, "/api/ratings/rater/spaces/Loft%20Nine",
		raterToken, fiber.Map{"rating": 4})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Rating
	decodeBody(t, resp, &created)
	assert.Equal(t, 4, created.Rating)

	// One rating per user per space.
	resp = doRequest(t, app, http.MethodPost, "/api/ratings/rater/spaces/Loft%20Nine",
		raterToken, fiber.Map{"rating": 5})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errBody models.ErrorResponse
	decodeBody(t, resp, &errBody)
	assert.Equal(t, "User rater has already rated space Loft Nine", errBody.Error)

	// Out-of-range values are rejected.
	resp = doRequest(t, app, http.MethodPost, "/api/ratings/other/spaces/Loft%20Nine",
		tokenFor(t, s, other), fiber.Map{"rating": 6})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	// Rating on behalf of another user is rejected.
	resp = doRequest(t, app, http.MethodPost, "/api/ratings/rater/spaces/Loft%20Nine",
		tokenFor(t, s, other), fiber.Map{"rating": 1})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

// Updating a rating is owner-only; deleting allows the owner or an admin.
func TestRatingOwnership(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	rater := createTestUser(t, db, "rater", false)
	other := createTestUser(t, db, "other", false)
	admin := createTestUser(t, db, "admin", true)
	category, location := seedReferenceData(t, db)
	space := createTestSpace(t, db, "Loft Nine", category, location)

	rating := models.Rating{Rating: 3, UserID: rater.ID, SpaceID: space.ID}
	require.NoError(t, db.Create(&rating).Error)
	path := fmt.Sprintf("/api/ratings/%d", rating.ID)

	resp := doRequest(t, app, http.MethodPatch, path, tokenFor(t, s, rater),
		fiber.Map{"rating": 5})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Rating
	decodeBody(t, resp, &updated)
	assert.Equal(t, 5, updated.Rating)

	resp = doRequest(t, app, http.MethodPatch, path, tokenFor(t, s, admin),
		fiber.Map{"rating": 1})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var errBody models.ErrorResponse
	decodeBody(t, resp, &errBody)
	assert.Equal(t, "Unauthorized to update this rating.", errBody.Error)

	resp = doRequest(t, app, http.MethodDelete, path, tokenFor(t, s, other), nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	decodeBody(t, resp, &errBody)
	assert.Equal(t, "Unauthorized to delete this rating.", errBody.Error)

	resp = doRequest(t, app, http.MethodDelete, path, tokenFor(t, s, admin), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doRequest(t, app, http.MethodPatch, "/api/ratings/9999", tokenFor(t, s, rater),
		fiber.Map{"rating": 2})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	decodeBody(t, resp, &errBody)
	assert.Equal(t, "Rating with ID 9999 not found.", errBody.Error)
}

func TestGetAverageRating(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	alice := createTestUser(t, db, "alice", false)
	bob := createTestUser(t, db, "bob", false)
	carol := createTestUser(t, db, "carol", false)
	category, location := seedReferenceData(t, db)
	rated := createTestSpace(t, db, "Rated Space", category, location)
	createTestSpace(t, db, "Unrated Space", category, location)

	require.NoError(t, db.Create(&models.Rating{Rating: 5, UserID: alice.ID, SpaceID: rated.ID}).Error)
	require.NoError(t, db.Create(&models.Rating{Rating: 3, UserID: bob.ID, SpaceID: rated.ID}).Error)
	require.NoError(t, db.Create(&models.Rating{Rating: 2, UserID: carol.ID, SpaceID: rated.ID}).Error)

	token := tokenFor(t, s, alice)

	var body struct {
		Space     string `json:"space"`
		AvgRating string `json:"avg_rating"`
	}

	resp := doRequest(t, app, http.MethodGet, "/api/ratings/spaces/Rated%20Space/average", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &body)
	assert.Equal(t, "3.33", body.AvgRating)

	resp = doRequest(t, app, http.MethodGet, "/api/ratings/spaces/Unrated%20Space/average", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &body)
	assert.Equal(t, models.NotYetRated, body.AvgRating)

	resp = doRequest(t, app, http.MethodGet, "/api/ratings/spaces/Ghost%20Space/average", token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var errBody models.ErrorResponse
	decodeBody(t, resp, &errBody)
	assert.Equal(t, "No such space: Ghost Space", errBody.Error)
}

func TestGetUserSpaceRating(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	rater := createTestUser(t, db, "rater", false)
	category, location := seedReferenceData(t, db)
	space := createTestSpace(t, db, "Loft Nine", category, location)
	require.NoError(t, db.Create(&models.Rating{Rating: 4, UserID: rater.ID, SpaceID: space.ID}).Error)

	token := tokenFor(t, s, rater)

	resp := doRequest(t, app, http.MethodGet, "/api/ratings/rater/spaces/Loft%20Nine", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rating models.Rating
	decodeBody(t, resp, &rating)
	assert.Equal(t, 4, rating.Rating)

	// A user who has not rated the space gets a 404.
	other := createTestUser(t, db, "other", false)
	resp = doRequest(t, app, http.MethodGet, "/api/ratings/other/spaces/Loft%20Nine", tokenFor(t, s, other), nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var errBody models.ErrorResponse
	decodeBody(t, resp, &errBody)
	assert.Equal(t, "Rating not found!", errBody.Error)
}
