package routes

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tourlink-server/database"
	"tourlink-server/models"
	"tourlink-server/utils"
	"tourlink-server/websocket"
)

// RegisterPreviousTourRoutes registers completed-tour and feedback routes
func RegisterPreviousTourRoutes(protected *gin.RouterGroup) {
	protected.POST("/tours/:id/complete", completeTour)
	protected.GET("/previous-tours", listPreviousTours)
	protected.GET("/previous-tours/:id", getPreviousTour)
	protected.POST("/previous-tours/:id/feedback", createPreviousTourFeedback)
	protected.DELETE("/previous-tours/:id/feedback/:feedbackId", deletePreviousTourFeedback)
}

// recomputePreviousTourAverage recalculates a previous tour's average rating
// from all of its feedback rows. The average becomes nil when no feedback
// remains.
func recomputePreviousTourAverage(tx *gorm.DB, previousTourID uint) error {
	var feedbacks []models.PreviousTourFeedback
	if err := tx.Where("previous_tour_id = ?", previousTourID).Find(&feedbacks).Error; err != nil {
		return err
	}

	var average *float64
	if len(feedbacks) > 0 {
		var sum float64
		for _, f := range feedbacks {
			sum += float64(f.Rating)
		}
		avg := utils.RoundRating(sum / float64(len(feedbacks)))
		average = &avg
	}

	return tx.Model(&models.PreviousTour{}).
		Where("id = ?", previousTourID).
		Update("average_rating", average).Error
}

// completeTour snapshots a finished tour into the previous-tours collection
func completeTour(c *gin.Context) {
	tourID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid tour ID"})
		return
	}

	var req models.CompleteTourRequest
	if !bindJSON(c, &req) {
		return
	}

	tour, org, ok := ownedTour(c, uint(tourID))
	if !ok {
		return
	}

	if tour.Status != models.TourStatusCurrent {
		c.JSON(http.StatusConflict, gin.H{
			"code":  "CONFLICT",
			"error": "Tour has already been completed or cancelled",
		})
		return
	}
	if tour.GuideID == nil {
		c.JSON(http.StatusConflict, gin.H{
			"code":  "CONFLICT",
			"error": "Tour has no assigned guide to review",
		})
		return
	}

	previousTour := models.PreviousTour{
		TourID:         tour.ID,
		OrganizationID: org.ID,
		GuideID:        *tour.GuideID,
		TourName:       tour.Name,
		Location:       tour.Location,
		Date:           tour.Date,
		CompletedAt:    time.Now(),
		TotalTravelers: *req.TotalTravelers,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&previousTour).Error; err != nil {
			return err
		}
		return tx.Model(tour).Update("status", models.TourStatusCompleted).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete tour"})
		return
	}

	var guide models.GuideProfile
	if err := database.DB.First(&guide, previousTour.GuideID).Error; err == nil {
		websocket.Notify(guide.UserID, "tour_completed", gin.H{
			"previous_tour_id": previousTour.ID,
			"tour_name":        previousTour.TourName,
		})
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Tour completed successfully",
		"previous_tour": previousTour,
	})
}

// listPreviousTours lists completed tours visible to the caller: an
// organization sees its own, a guide sees the ones they led
func listPreviousTours(c *gin.Context) {
	userID := c.GetUint("user_id")
	role := models.UserRole(c.GetString("role"))

	query := database.DB.Model(&models.PreviousTour{})
	switch role {
	case models.RoleOrganization:
		var org models.Organization
		if err := database.DB.Where("user_id = ?", userID).First(&org).Error; err != nil {
			c.JSON(http.StatusForbidden, gin.H{"code": "FORBIDDEN", "error": "Organization profile required"})
			return
		}
		query = query.Where("organization_id = ?", org.ID)
	case models.RoleGuide:
		var guide models.GuideProfile
		if err := database.DB.Where("user_id = ?", userID).First(&guide).Error; err != nil {
			c.JSON(http.StatusForbidden, gin.H{"code": "FORBIDDEN", "error": "Guide profile required"})
			return
		}
		query = query.Where("guide_id = ?", guide.ID)
	default:
		c.JSON(http.StatusForbidden, gin.H{
			"code":  "FORBIDDEN",
			"error": "Only guides and organizations can list previous tours",
		})
		return
	}

	var previousTours []models.PreviousTour
	if err := query.
		Preload("Guide.User").
		Order("completed_at DESC").
		Find(&previousTours).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch previous tours"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"previous_tours": previousTours})
}

// getPreviousTour returns one completed tour with its feedback
func getPreviousTour(c *gin.Context) {
	previousTourID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid previous tour ID"})
		return
	}

	var previousTour models.PreviousTour
	if err := database.DB.
		Preload("Guide.User").
		Preload("Feedbacks.Author").
		First(&previousTour, uint(previousTourID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "Previous tour not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"previous_tour": previousTour})
}

// createPreviousTourFeedback records one traveler's feedback and recomputes
// the tour's average rating
func createPreviousTourFeedback(c *gin.Context) {
	previousTourID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid previous tour ID"})
		return
	}

	var req models.PreviousTourFeedbackRequest
	if !bindJSON(c, &req) {
		return
	}

	userID := c.GetUint("user_id")

	var previousTour models.PreviousTour
	if err := database.DB.First(&previousTour, uint(previousTourID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "Previous tour not found"})
		return
	}

	feedback := models.PreviousTourFeedback{
		PreviousTourID: previousTour.ID,
		AuthorID:       userID,
		Rating:         req.Rating,
		Feedback:       req.Feedback,
		DocumentURL:    req.DocumentURL,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&feedback).Error; err != nil {
			return err
		}
		return recomputePreviousTourAverage(tx, previousTour.ID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record feedback"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Feedback recorded successfully",
		"feedback": feedback,
	})
}

// deletePreviousTourFeedback removes the caller's own feedback and recomputes
// the tour's average rating
func deletePreviousTourFeedback(c *gin.Context) {
	previousTourID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid previous tour ID"})
		return
	}
	feedbackID, err := strconv.ParseUint(c.Param("feedbackId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid feedback ID"})
		return
	}

	userID := c.GetUint("user_id")

	var feedback models.PreviousTourFeedback
	if err := database.DB.
		Where("id = ? AND previous_tour_id = ?", uint(feedbackID), uint(previousTourID)).
		First(&feedback).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "Feedback not found"})
		return
	}

	if feedback.AuthorID != userID {
		c.JSON(http.StatusForbidden, gin.H{
			"code":  "FORBIDDEN",
			"error": "You can only delete your own feedback",
		})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&feedback).Error; err != nil {
			return err
		}
		return recomputePreviousTourAverage(tx, feedback.PreviousTourID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete feedback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Feedback deleted successfully"})
}
