package routes

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourlink-server/models"
)

func postUserReview(t *testing.T, reviewer models.User, targetID uint) int {
	t.Helper()
	c, w := testContext(t, http.MethodPost, "/users/1/reviews", models.ReviewRequest{
		Rating:  4,
		Comment: "Great to work with",
	})
	asUser(c, reviewer)
	setParam(c, "id", targetID)
	createUserReview(c)
	return w.Code
}

func TestCreateUserReviewOncePerPair(t *testing.T) {
	setupTestDB(t)

	reviewer := createTestUser(t, "reviewer@example.com", models.RoleTraveler)
	guideUser, _ := createTestGuide(t, "guide@example.com")

	require.Equal(t, http.StatusCreated, postUserReview(t, reviewer, guideUser.ID))
	assert.Equal(t, http.StatusConflict, postUserReview(t, reviewer, guideUser.ID))
}

func TestCreateUserReviewRejectsSelf(t *testing.T) {
	setupTestDB(t)

	user := createTestUser(t, "narcissus@example.com", models.RoleTraveler)
	assert.Equal(t, http.StatusBadRequest, postUserReview(t, user, user.ID))
}

func TestCreateTourReviewOncePerPair(t *testing.T) {
	setupTestDB(t)

	_, org := createTestOrganization(t, "org@example.com")
	tour := createTestTour(t, org.ID, nil)
	traveler := createTestUser(t, "traveler@example.com", models.RoleTraveler)

	post := func() int {
		c, w := testContext(t, http.MethodPost, "/tours/1/reviews", models.ReviewRequest{
			Rating:  5,
			Comment: "Unforgettable day",
		})
		asUser(c, traveler)
		setParam(c, "id", tour.ID)
		createTourReview(c)
		return w.Code
	}

	require.Equal(t, http.StatusCreated, post())
	assert.Equal(t, http.StatusConflict, post())
}
