package routes

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourlink-server/database"
	"tourlink-server/models"
)

func submitFeedback(t *testing.T, author models.User, previousTourID uint, rating int, text string) int {
	t.Helper()
	c, w := testContext(t, http.MethodPost, "/previous-tours/1/feedback", models.PreviousTourFeedbackRequest{
		Rating:   rating,
		Feedback: text,
	})
	asUser(c, author)
	setParam(c, "id", previousTourID)
	createPreviousTourFeedback(c)
	return w.Code
}

func TestCompleteTourSnapshotsAndCloses(t *testing.T) {
	setupTestDB(t)

	orgUser, org := createTestOrganization(t, "org@example.com")
	_, guide := createTestGuide(t, "guide@example.com")
	tour := createTestTour(t, org.ID, &guide.ID)

	c, w := testContext(t, http.MethodPost, "/tours/1/complete", models.CompleteTourRequest{TotalTravelers: intPtr(14)})
	asUser(c, orgUser)
	setParam(c, "id", tour.ID)
	completeTour(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var previousTour models.PreviousTour
	require.NoError(t, database.DB.Where("tour_id = ?", tour.ID).First(&previousTour).Error)
	assert.Equal(t, tour.Name, previousTour.TourName)
	assert.Equal(t, guide.ID, previousTour.GuideID)
	assert.Nil(t, previousTour.AverageRating)

	var updatedTour models.Tour
	require.NoError(t, database.DB.First(&updatedTour, tour.ID).Error)
	assert.Equal(t, models.TourStatusCompleted, updatedTour.Status)

	// A completed tour cannot be completed twice
	c, w = testContext(t, http.MethodPost, "/tours/1/complete", models.CompleteTourRequest{TotalTravelers: intPtr(14)})
	asUser(c, orgUser)
	setParam(c, "id", tour.ID)
	completeTour(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCompleteTourRequiresAssignedGuide(t *testing.T) {
	setupTestDB(t)

	orgUser, org := createTestOrganization(t, "org@example.com")
	tour := createTestTour(t, org.ID, nil)

	c, w := testContext(t, http.MethodPost, "/tours/1/complete", models.CompleteTourRequest{TotalTravelers: intPtr(5)})
	asUser(c, orgUser)
	setParam(c, "id", tour.ID)
	completeTour(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCompleteTourWithZeroTravelers(t *testing.T) {
	setupTestDB(t)

	orgUser, org := createTestOrganization(t, "org@example.com")
	_, guide := createTestGuide(t, "guide@example.com")
	tour := createTestTour(t, org.ID, &guide.ID)

	// A cancelled-turnout departure still gets recorded
	c, w := testContext(t, http.MethodPost, "/tours/1/complete", models.CompleteTourRequest{TotalTravelers: intPtr(0)})
	asUser(c, orgUser)
	setParam(c, "id", tour.ID)
	completeTour(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var previousTour models.PreviousTour
	require.NoError(t, database.DB.Where("tour_id = ?", tour.ID).First(&previousTour).Error)
	assert.Equal(t, 0, previousTour.TotalTravelers)

	// Omitting the count entirely is still a validation error
	tour2 := createTestTour(t, org.ID, &guide.ID)
	c, w = testContext(t, http.MethodPost, "/tours/1/complete", map[string]interface{}{})
	asUser(c, orgUser)
	setParam(c, "id", tour2.ID)
	completeTour(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFeedbackRecomputesAverage(t *testing.T) {
	setupTestDB(t)

	_, org := createTestOrganization(t, "org@example.com")
	_, guide := createTestGuide(t, "guide@example.com")
	tour := createTestTour(t, org.ID, &guide.ID)
	previousTour := createTestPreviousTour(t, tour, org.ID, guide.ID)

	alice := createTestUser(t, "alice@example.com", models.RoleTraveler)
	bob := createTestUser(t, "bob@example.com", models.RoleTraveler)

	require.Equal(t, http.StatusCreated, submitFeedback(t, alice, previousTour.ID, 5, "Fantastic experience"))
	require.Equal(t, http.StatusCreated, submitFeedback(t, bob, previousTour.ID, 4, "Really enjoyed it"))

	var updated models.PreviousTour
	require.NoError(t, database.DB.First(&updated, previousTour.ID).Error)
	require.NotNil(t, updated.AverageRating)
	assert.Equal(t, 4.5, *updated.AverageRating)
}

func TestDeletingLastFeedbackClearsAverage(t *testing.T) {
	setupTestDB(t)

	_, org := createTestOrganization(t, "org@example.com")
	_, guide := createTestGuide(t, "guide@example.com")
	tour := createTestTour(t, org.ID, &guide.ID)
	previousTour := createTestPreviousTour(t, tour, org.ID, guide.ID)

	alice := createTestUser(t, "alice@example.com", models.RoleTraveler)
	require.Equal(t, http.StatusCreated, submitFeedback(t, alice, previousTour.ID, 3, "It was fine"))

	var feedback models.PreviousTourFeedback
	require.NoError(t, database.DB.Where("previous_tour_id = ?", previousTour.ID).First(&feedback).Error)

	c, w := testContext(t, http.MethodDelete, "/previous-tours/1/feedback/1", nil)
	asUser(c, alice)
	setParam(c, "id", previousTour.ID)
	setParam(c, "feedbackId", feedback.ID)
	deletePreviousTourFeedback(c)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.PreviousTour
	require.NoError(t, database.DB.First(&updated, previousTour.ID).Error)
	assert.Nil(t, updated.AverageRating)
}

func TestFeedbackDeleteIsAuthorOnly(t *testing.T) {
	setupTestDB(t)

	_, org := createTestOrganization(t, "org@example.com")
	_, guide := createTestGuide(t, "guide@example.com")
	tour := createTestTour(t, org.ID, &guide.ID)
	previousTour := createTestPreviousTour(t, tour, org.ID, guide.ID)

	alice := createTestUser(t, "alice@example.com", models.RoleTraveler)
	mallory := createTestUser(t, "mallory@example.com", models.RoleTraveler)
	require.Equal(t, http.StatusCreated, submitFeedback(t, alice, previousTour.ID, 4, "Nice tour"))

	var feedback models.PreviousTourFeedback
	require.NoError(t, database.DB.Where("previous_tour_id = ?", previousTour.ID).First(&feedback).Error)

	c, w := testContext(t, http.MethodDelete, "/previous-tours/1/feedback/1", nil)
	asUser(c, mallory)
	setParam(c, "id", previousTour.ID)
	setParam(c, "feedbackId", feedback.ID)
	deletePreviousTourFeedback(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestFeedbackRatingBounds(t *testing.T) {
	setupTestDB(t)

	_, org := createTestOrganization(t, "org@example.com")
	_, guide := createTestGuide(t, "guide@example.com")
	tour := createTestTour(t, org.ID, &guide.ID)
	previousTour := createTestPreviousTour(t, tour, org.ID, guide.ID)
	alice := createTestUser(t, "alice@example.com", models.RoleTraveler)

	assert.Equal(t, http.StatusBadRequest, submitFeedback(t, alice, previousTour.ID, 6, "Too good"))
	assert.Equal(t, http.StatusBadRequest, submitFeedback(t, alice, previousTour.ID, -1, "Terrible"))
}
