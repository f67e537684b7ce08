package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tourlink-server/database"
	"tourlink-server/models"
)

// RegisterOrganizationRoutes registers organization profile routes
func RegisterOrganizationRoutes(public *gin.RouterGroup, protected *gin.RouterGroup) {
	public.GET("/organizations/:id", getOrganization)

	protected.POST("/organizations/profile", createOrganizationProfile)
	protected.PUT("/organizations/profile", updateOrganizationProfile)
}

// createOrganizationProfile creates the organization profile for the
// authenticated organization user
func createOrganizationProfile(c *gin.Context) {
	var req models.OrganizationRequest
	if !bindJSON(c, &req) {
		return
	}

	userID := c.GetUint("user_id")

	var existing models.Organization
	if err := database.DB.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"code":  "CONFLICT",
			"error": "Organization profile already exists",
		})
		return
	}

	org := models.Organization{
		UserID:  userID,
		TaxID:   req.TaxID,
		Website: req.Website,
		Slogan:  req.Slogan,
	}

	if err := database.DB.Create(&org).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create organization profile"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Organization profile created successfully",
		"organization": org,
	})
}

// updateOrganizationProfile updates the authenticated organization's profile
func updateOrganizationProfile(c *gin.Context) {
	var req models.OrganizationRequest
	if !bindJSON(c, &req) {
		return
	}

	org, ok := currentOrganization(c)
	if !ok {
		return
	}

	org.TaxID = req.TaxID
	org.Website = req.Website
	org.Slogan = req.Slogan

	if err := database.DB.Save(org).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update organization profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Organization profile updated successfully",
		"organization": org,
	})
}

// getOrganization returns one organization with its current tours
func getOrganization(c *gin.Context) {
	orgID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid organization ID"})
		return
	}

	var org models.Organization
	if err := database.DB.
		Preload("User").
		First(&org, uint(orgID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "Organization not found"})
		return
	}

	var tours []models.Tour
	database.DB.
		Preload("Tags").
		Where("organization_id = ? AND status = ?", org.ID, models.TourStatusCurrent).
		Order("date ASC").
		Find(&tours)

	c.JSON(http.StatusOK, gin.H{
		"organization": org,
		"tours":        tours,
	})
}
