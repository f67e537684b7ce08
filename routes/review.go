package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tourlink-server/database"
	"tourlink-server/models"
)

// RegisterReviewRoutes registers peer-to-peer and tour review routes
func RegisterReviewRoutes(public *gin.RouterGroup, protected *gin.RouterGroup) {
	public.GET("/users/:id/reviews", listUserReviews)
	public.GET("/tours/:id/reviews", listTourReviews)

	protected.POST("/users/:id/reviews", createUserReview)
	protected.POST("/tours/:id/reviews", createTourReview)
}

// createUserReview records a peer-to-peer review. One review per
// (reviewer, target) pair.
func createUserReview(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid user ID"})
		return
	}

	var req models.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	reviewerID := c.GetUint("user_id")
	if uint(targetID) == reviewerID {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":  "VALIDATION_ERROR",
			"error": "You cannot review yourself",
		})
		return
	}

	var target models.User
	if err := database.DB.First(&target, uint(targetID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "User not found"})
		return
	}

	var existing models.UserReview
	if err := database.DB.
		Where("reviewer_id = ? AND target_user_id = ?", reviewerID, target.ID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"code":  "CONFLICT",
			"error": "You have already reviewed this user",
		})
		return
	}

	review := models.UserReview{
		ReviewerID:   reviewerID,
		TargetUserID: target.ID,
		Rating:       req.Rating,
		Comment:      req.Comment,
	}

	if err := database.DB.Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{
				"code":  "CONFLICT",
				"error": "You have already reviewed this user",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review created successfully",
		"review":  review,
	})
}

// listUserReviews returns reviews written about a user
func listUserReviews(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid user ID"})
		return
	}

	var reviews []models.UserReview
	if err := database.DB.
		Preload("Reviewer").
		Where("target_user_id = ?", uint(targetID)).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// createTourReview records a traveler's review of a tour. One review per
// (author, tour) pair.
func createTourReview(c *gin.Context) {
	tourID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid tour ID"})
		return
	}

	var req models.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	authorID := c.GetUint("user_id")

	var tour models.Tour
	if err := database.DB.First(&tour, uint(tourID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "Tour not found"})
		return
	}

	var existing models.TourReview
	if err := database.DB.
		Where("author_id = ? AND tour_id = ?", authorID, tour.ID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"code":  "CONFLICT",
			"error": "You have already reviewed this tour",
		})
		return
	}

	review := models.TourReview{
		AuthorID: authorID,
		TourID:   tour.ID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}

	if err := database.DB.Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{
				"code":  "CONFLICT",
				"error": "You have already reviewed this tour",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review created successfully",
		"review":  review,
	})
}

// listTourReviews returns reviews written about a tour
func listTourReviews(c *gin.Context) {
	tourID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid tour ID"})
		return
	}

	var reviews []models.TourReview
	if err := database.DB.
		Preload("Author").
		Where("tour_id = ?", uint(tourID)).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
