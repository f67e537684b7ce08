package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tourlink-server/database"
	"tourlink-server/models"
	"tourlink-server/services"
	"tourlink-server/utils"
	"tourlink-server/websocket"
)

// RegisterPerformanceReviewRoutes registers AI analysis and review push routes
func RegisterPerformanceReviewRoutes(protected *gin.RouterGroup) {
	protected.POST("/previous-tours/:id/analyze", analyzeFeedback)
	protected.POST("/previous-tours/:id/performance-review", pushPerformanceReview)
}

type analyzeRequest struct {
	// Images extracted client-side from uploaded feedback documents
	Images []services.ImageAttachment `json:"images" binding:"dive"`
}

// updateGuideRatingStats recomputes a guide's reputation from all of their
// performance reviews. Full recomputation, not an incremental average: review
// counts per guide are small and this stays correct under deletes.
func updateGuideRatingStats(tx *gorm.DB, guideID uint) error {
	var reviews []models.GuidePerformanceReview
	if err := tx.Where("guide_id = ?", guideID).Find(&reviews).Error; err != nil {
		return err
	}

	var average float64
	if len(reviews) > 0 {
		var sum float64
		for _, review := range reviews {
			sum += review.Rating
		}
		average = utils.RoundRating(sum / float64(len(reviews)))
	}

	return tx.Model(&models.GuideProfile{}).
		Where("id = ?", guideID).
		Updates(map[string]interface{}{
			"average_rating": average,
			"total_reviews":  len(reviews),
		}).Error
}

// ownedPreviousTour loads a previous tour and verifies the authenticated
// organization owns it
func ownedPreviousTour(c *gin.Context, previousTourID uint) (*models.PreviousTour, bool) {
	org, ok := currentOrganization(c)
	if !ok {
		return nil, false
	}

	var previousTour models.PreviousTour
	if err := database.DB.First(&previousTour, previousTourID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "Previous tour not found"})
		return nil, false
	}

	if previousTour.OrganizationID != org.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"code":  "FORBIDDEN",
			"error": "You can only review guides on your own tours",
		})
		return nil, false
	}

	return &previousTour, true
}

// analyzeFeedback runs the AI analysis over a previous tour's collected
// feedback and returns the proposed review without persisting anything.
// A failed or unparseable model call is terminal: the caller re-triggers it.
func analyzeFeedback(c *gin.Context) {
	previousTourID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid previous tour ID"})
		return
	}

	var req analyzeRequest
	if !bindJSON(c, &req) {
		return
	}

	previousTour, ok := ownedPreviousTour(c, uint(previousTourID))
	if !ok {
		return
	}

	var feedbacks []models.PreviousTourFeedback
	if err := database.DB.Where("previous_tour_id = ?", previousTour.ID).Find(&feedbacks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feedback"})
		return
	}

	texts := make([]string, 0, len(feedbacks))
	for _, feedback := range feedbacks {
		if feedback.Feedback != "" {
			texts = append(texts, feedback.Feedback)
		}
	}

	if len(texts) == 0 && len(req.Images) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":  "VALIDATION_ERROR",
			"error": "No feedback collected for this tour yet",
		})
		return
	}

	analysis, err := services.NewAIService().AnalyzeFeedback(texts, req.Images)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"code":  "EXTERNAL_SERVICE_ERROR",
			"error": "Feedback analysis failed, please try again",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analysis": analysis,
		"rating":   utils.SentimentScoreToRating(analysis.SentimentScore),
	})
}

// pushPerformanceReview persists a performance review for the guide of a
// completed tour and recomputes the guide's public reputation
func pushPerformanceReview(c *gin.Context) {
	previousTourID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid previous tour ID"})
		return
	}

	var req models.PerformanceReviewPushRequest
	if !bindJSON(c, &req) {
		return
	}

	previousTour, ok := ownedPreviousTour(c, uint(previousTourID))
	if !ok {
		return
	}

	var guide models.GuideProfile
	if err := database.DB.First(&guide, previousTour.GuideID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "Guide profile not found"})
		return
	}

	// At most one performance review per previous tour. The unique index is
	// authoritative; this check just gives the common case a clear answer.
	var existing models.GuidePerformanceReview
	if err := database.DB.Where("previous_tour_id = ?", previousTour.ID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"code":  "CONFLICT",
			"error": "A performance review already exists for this tour",
		})
		return
	}

	review := models.GuidePerformanceReview{
		PreviousTourID: previousTour.ID,
		GuideID:        guide.ID,
		Summary:        req.Summary,
		Strengths:      req.Strengths,
		Improvements:   req.Improvements,
		SentimentScore: req.SentimentScore,
		Rating:         utils.SentimentScoreToRating(req.SentimentScore),
		RedFlags:       req.RedFlags,
		TourName:       previousTour.TourName,
		TourLocation:   previousTour.Location,
		TourDate:       previousTour.Date,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return updateGuideRatingStats(tx, guide.ID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{
				"code":  "CONFLICT",
				"error": "A performance review already exists for this tour",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to push performance review"})
		return
	}

	websocket.Notify(guide.UserID, "performance_review", gin.H{
		"review_id": review.ID,
		"tour_name": review.TourName,
		"rating":    review.Rating,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Performance review pushed successfully",
		"review":  review,
	})
}
