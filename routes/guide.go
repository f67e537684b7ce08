package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tourlink-server/database"
	"tourlink-server/models"
)

// RegisterGuideRoutes registers guide profile routes
func RegisterGuideRoutes(public *gin.RouterGroup, protected *gin.RouterGroup) {
	public.GET("/guides", listGuides)
	public.GET("/guides/:id", getGuide)
	public.GET("/guides/:id/performance-reviews", getGuidePerformanceReviews)

	protected.POST("/guides/profile", createGuideProfile)
	protected.PUT("/guides/profile", updateGuideProfile)
}

// createGuideProfile creates the guide profile for the authenticated guide user
func createGuideProfile(c *gin.Context) {
	var req models.GuideProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	userID := c.GetUint("user_id")

	var existing models.GuideProfile
	if err := database.DB.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"code":  "CONFLICT",
			"error": "Guide profile already exists",
		})
		return
	}

	profile := models.GuideProfile{
		UserID:          userID,
		School:          req.School,
		Description:     req.Description,
		Certificates:    req.Certificates,
		WorkExperiences: req.WorkExperiences,
		CVURL:           req.CVURL,
	}

	if err := database.DB.Create(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create guide profile"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Guide profile created successfully",
		"profile": profile,
	})
}

// updateGuideProfile updates the authenticated guide's own profile
func updateGuideProfile(c *gin.Context) {
	var req models.GuideProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	guide, ok := currentGuideProfile(c)
	if !ok {
		return
	}

	guide.School = req.School
	guide.Description = req.Description
	guide.Certificates = req.Certificates
	guide.WorkExperiences = req.WorkExperiences
	if req.CVURL != nil {
		guide.CVURL = req.CVURL
	}

	if err := database.DB.Save(guide).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update guide profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Guide profile updated successfully",
		"profile": guide,
	})
}

// listGuides returns guide profiles ordered by reputation
func listGuides(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	offset := (page - 1) * limit

	query := database.DB.Model(&models.GuideProfile{})
	if school := c.Query("school"); school != "" {
		query = query.Where("school ILIKE ?", "%"+school+"%")
	}

	var total int64
	query.Count(&total)

	var guides []models.GuideProfile
	if err := query.
		Preload("User").
		Order("average_rating DESC, total_reviews DESC").
		Offset(offset).
		Limit(limit).
		Find(&guides).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch guides"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"guides": guides,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

// getGuide returns one guide profile with its reviews
func getGuide(c *gin.Context) {
	guideID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid guide ID"})
		return
	}

	var guide models.GuideProfile
	if err := database.DB.
		Preload("User").
		First(&guide, uint(guideID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "Guide not found"})
		return
	}

	var userReviews []models.UserReview
	database.DB.
		Preload("Reviewer").
		Where("target_user_id = ?", guide.UserID).
		Order("created_at DESC").
		Find(&userReviews)

	c.JSON(http.StatusOK, gin.H{
		"guide":        guide,
		"user_reviews": userReviews,
	})
}

// getGuidePerformanceReviews returns the performance reviews on a guide's public profile
func getGuidePerformanceReviews(c *gin.Context) {
	guideID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid guide ID"})
		return
	}

	var guide models.GuideProfile
	if err := database.DB.First(&guide, uint(guideID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "Guide not found"})
		return
	}

	var reviews []models.GuidePerformanceReview
	if err := database.DB.
		Where("guide_id = ?", guide.ID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch performance reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"guide_id":       guide.ID,
		"average_rating": guide.AverageRating,
		"total_reviews":  guide.TotalReviews,
		"reviews":        reviews,
	})
}
