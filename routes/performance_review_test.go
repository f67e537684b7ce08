package routes

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourlink-server/database"
	"tourlink-server/models"
)

func pushReviewRequest(sentimentScore int) models.PerformanceReviewPushRequest {
	return models.PerformanceReviewPushRequest{
		Summary:        "The guide handled the group professionally from start to finish.",
		Strengths:      []string{"Punctual", "Knowledgeable", "Patient"},
		Improvements:   "Could improve pacing on longer walking segments.",
		SentimentScore: sentimentScore,
	}
}

func pushReview(t *testing.T, orgUser models.User, previousTourID uint, sentimentScore int) int {
	t.Helper()
	c, w := testContext(t, http.MethodPost, "/previous-tours/1/performance-review", pushReviewRequest(sentimentScore))
	asUser(c, orgUser)
	setParam(c, "id", previousTourID)
	pushPerformanceReview(c)
	return w.Code
}

func TestPushPerformanceReviewUpdatesGuideStats(t *testing.T) {
	setupTestDB(t)

	orgUser, org := createTestOrganization(t, "org@example.com")
	_, guide := createTestGuide(t, "guide@example.com")

	// Three completed tours, reviewed at 4, 5 and 3 stars
	for i, score := range []int{80, 100, 60} {
		tour := createTestTour(t, org.ID, &guide.ID)
		previousTour := createTestPreviousTour(t, tour, org.ID, guide.ID)
		code := pushReview(t, orgUser, previousTour.ID, score)
		require.Equal(t, http.StatusCreated, code, "review %d", i)
	}

	var updated models.GuideProfile
	require.NoError(t, database.DB.First(&updated, guide.ID).Error)
	assert.Equal(t, 4.0, updated.AverageRating)
	assert.Equal(t, 3, updated.TotalReviews)
}

func TestPushPerformanceReviewDerivesRatingFromSentiment(t *testing.T) {
	setupTestDB(t)

	orgUser, org := createTestOrganization(t, "org@example.com")
	_, guide := createTestGuide(t, "guide@example.com")
	tour := createTestTour(t, org.ID, &guide.ID)
	previousTour := createTestPreviousTour(t, tour, org.ID, guide.ID)

	require.Equal(t, http.StatusCreated, pushReview(t, orgUser, previousTour.ID, 85))

	var review models.GuidePerformanceReview
	require.NoError(t, database.DB.Where("previous_tour_id = ?", previousTour.ID).First(&review).Error)
	assert.Equal(t, 4.3, review.Rating)
}

func TestPushPerformanceReviewDuplicateConflicts(t *testing.T) {
	setupTestDB(t)

	orgUser, org := createTestOrganization(t, "org@example.com")
	_, guide := createTestGuide(t, "guide@example.com")
	tour := createTestTour(t, org.ID, &guide.ID)
	previousTour := createTestPreviousTour(t, tour, org.ID, guide.ID)

	require.Equal(t, http.StatusCreated, pushReview(t, orgUser, previousTour.ID, 80))
	assert.Equal(t, http.StatusConflict, pushReview(t, orgUser, previousTour.ID, 20))

	// The rejected duplicate must not have moved the guide's stats
	var updated models.GuideProfile
	require.NoError(t, database.DB.First(&updated, guide.ID).Error)
	assert.Equal(t, 4.0, updated.AverageRating)
	assert.Equal(t, 1, updated.TotalReviews)
}

func TestPushPerformanceReviewRequiresTourOwnership(t *testing.T) {
	setupTestDB(t)

	_, org := createTestOrganization(t, "owner@example.com")
	otherUser, _ := createTestOrganization(t, "other@example.com")
	_, guide := createTestGuide(t, "guide@example.com")
	tour := createTestTour(t, org.ID, &guide.ID)
	previousTour := createTestPreviousTour(t, tour, org.ID, guide.ID)

	assert.Equal(t, http.StatusForbidden, pushReview(t, otherUser, previousTour.ID, 80))
}

func TestPushPerformanceReviewValidatesStrengths(t *testing.T) {
	setupTestDB(t)

	orgUser, org := createTestOrganization(t, "org@example.com")
	_, guide := createTestGuide(t, "guide@example.com")
	tour := createTestTour(t, org.ID, &guide.ID)
	previousTour := createTestPreviousTour(t, tour, org.ID, guide.ID)

	req := pushReviewRequest(80)
	req.Strengths = nil

	c, w := testContext(t, http.MethodPost, "/previous-tours/1/performance-review", req)
	asUser(c, orgUser)
	setParam(c, "id", previousTour.ID)
	pushPerformanceReview(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestAnalyzeFeedbackWithoutFeedback(t *testing.T) {
	setupTestDB(t)

	orgUser, org := createTestOrganization(t, "org@example.com")
	_, guide := createTestGuide(t, "guide@example.com")
	tour := createTestTour(t, org.ID, &guide.ID)
	previousTour := createTestPreviousTour(t, tour, org.ID, guide.ID)

	c, w := testContext(t, http.MethodPost, "/previous-tours/1/analyze", map[string]interface{}{})
	asUser(c, orgUser)
	setParam(c, "id", previousTour.ID)
	analyzeFeedback(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}
