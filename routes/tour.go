package routes

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tourlink-server/database"
	"tourlink-server/models"
	"tourlink-server/websocket"
)

// RegisterTourRoutes registers tour browsing and management routes
func RegisterTourRoutes(public *gin.RouterGroup, protected *gin.RouterGroup) {
	public.GET("/tours", listTours)
	public.GET("/tours/:id", getTour)
	public.GET("/tags", listTags)

	protected.POST("/tours", createTour)
	protected.PUT("/tours/:id", updateTour)
	protected.DELETE("/tours/:id", deleteTour)

	protected.POST("/tours/:id/applications", applyToTour)
	protected.GET("/tours/:id/applications", listTourApplications)
	protected.POST("/applications/:id/accept", acceptApplication)
	protected.POST("/applications/:id/decline", declineApplication)
}

// ownedTour loads a tour and verifies the authenticated organization owns it
func ownedTour(c *gin.Context, tourID uint) (*models.Tour, *models.Organization, bool) {
	org, ok := currentOrganization(c)
	if !ok {
		return nil, nil, false
	}

	var tour models.Tour
	if err := database.DB.First(&tour, tourID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "Tour not found"})
		return nil, nil, false
	}

	if tour.OrganizationID != org.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"code":  "FORBIDDEN",
			"error": "You can only manage your own tours",
		})
		return nil, nil, false
	}

	return &tour, org, true
}

func stopsFromRequest(tourID uint, reqs []models.ItineraryStopRequest) []models.ItineraryStop {
	stops := make([]models.ItineraryStop, 0, len(reqs))
	for i, s := range reqs {
		sequence := s.Sequence
		if sequence == 0 {
			sequence = i
		}
		stops = append(stops, models.ItineraryStop{
			TourID:      tourID,
			Title:       s.Title,
			Location:    s.Location,
			Duration:    s.Duration,
			Description: s.Description,
			Time:        s.Time,
			Sequence:    sequence,
		})
	}
	return stops
}

// createTour creates a new tour for the authenticated organization
func createTour(c *gin.Context) {
	var req models.TourRequest
	if !bindJSON(c, &req) {
		return
	}

	org, ok := currentOrganization(c)
	if !ok {
		return
	}

	tour := models.Tour{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Location:       req.Location,
		Date:           req.Date,
		Status:         models.TourStatusCurrent,
		OrganizationID: org.ID,
		GroupSize:      req.GroupSize,
		Languages:      req.Languages,
		Inclusions:     req.Inclusions,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tour).Error; err != nil {
			return err
		}
		if len(req.Stops) > 0 {
			if err := tx.Create(stopsFromRequest(tour.ID, req.Stops)).Error; err != nil {
				return err
			}
		}
		if len(req.TagIDs) > 0 {
			var tags []models.Tag
			if err := tx.Find(&tags, req.TagIDs).Error; err != nil {
				return err
			}
			if err := tx.Model(&tour).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tour"})
		return
	}

	var created models.Tour
	database.DB.Preload("Stops", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence ASC")
	}).Preload("Tags").First(&created, tour.ID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tour created successfully",
		"tour":    created,
	})
}

// updateTour replaces a tour's attributes, itinerary and tags
func updateTour(c *gin.Context) {
	tourID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid tour ID"})
		return
	}

	var req models.TourRequest
	if !bindJSON(c, &req) {
		return
	}

	tour, _, ok := ownedTour(c, uint(tourID))
	if !ok {
		return
	}

	if tour.Status != models.TourStatusCurrent {
		c.JSON(http.StatusConflict, gin.H{
			"code":  "CONFLICT",
			"error": "Only current tours can be edited",
		})
		return
	}

	tour.Name = req.Name
	tour.Description = req.Description
	tour.Price = req.Price
	tour.Location = req.Location
	tour.Date = req.Date
	tour.GroupSize = req.GroupSize
	tour.Languages = req.Languages
	tour.Inclusions = req.Inclusions

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(tour).Error; err != nil {
			return err
		}
		if err := tx.Where("tour_id = ?", tour.ID).Delete(&models.ItineraryStop{}).Error; err != nil {
			return err
		}
		if len(req.Stops) > 0 {
			if err := tx.Create(stopsFromRequest(tour.ID, req.Stops)).Error; err != nil {
				return err
			}
		}
		var tags []models.Tag
		if len(req.TagIDs) > 0 {
			if err := tx.Find(&tags, req.TagIDs).Error; err != nil {
				return err
			}
		}
		return tx.Model(tour).Association("Tags").Replace(tags)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tour"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tour updated successfully",
		"tour":    tour,
	})
}

// deleteTour removes a tour owned by the authenticated organization
func deleteTour(c *gin.Context) {
	tourID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid tour ID"})
		return
	}

	tour, _, ok := ownedTour(c, uint(tourID))
	if !ok {
		return
	}

	if err := database.DB.Delete(tour).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tour"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tour deleted successfully"})
}

// listTours returns current tours with optional filters
func listTours(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	offset := (page - 1) * limit

	query := database.DB.Model(&models.Tour{}).Where("status = ?", models.TourStatusCurrent)
	if location := c.Query("location"); location != "" {
		query = query.Where("location ILIKE ?", "%"+location+"%")
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			query = query.Where("date >= ?", t)
		}
	}
	if tagID, err := strconv.Atoi(c.Query("tag")); err == nil && tagID > 0 {
		query = query.Joins("JOIN tour_tags ON tour_tags.tour_id = tours.id").
			Where("tour_tags.tag_id = ?", tagID)
	}

	var total int64
	query.Count(&total)

	var tours []models.Tour
	if err := query.
		Preload("Organization").
		Preload("Tags").
		Order("date ASC").
		Offset(offset).
		Limit(limit).
		Find(&tours).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tours"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tours": tours,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

// getTour returns one tour with its full itinerary
func getTour(c *gin.Context) {
	tourID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid tour ID"})
		return
	}

	var tour models.Tour
	if err := database.DB.
		Preload("Organization").
		Preload("Guide.User").
		Preload("Tags").
		Preload("Stops", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		First(&tour, uint(tourID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "Tour not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tour": tour})
}

// listTags returns all tour tags
func listTags(c *gin.Context) {
	var tags []models.Tag
	if err := database.DB.Order("name ASC").Find(&tags).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tags"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// applyToTour lets a guide apply to lead a tour
func applyToTour(c *gin.Context) {
	tourID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid tour ID"})
		return
	}

	var req models.TourApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	guide, ok := currentGuideProfile(c)
	if !ok {
		return
	}

	var tour models.Tour
	if err := database.DB.First(&tour, uint(tourID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "Tour not found"})
		return
	}

	if tour.Status != models.TourStatusCurrent {
		c.JSON(http.StatusConflict, gin.H{
			"code":  "CONFLICT",
			"error": "Tour is no longer accepting applications",
		})
		return
	}
	if tour.GuideID != nil {
		c.JSON(http.StatusConflict, gin.H{
			"code":  "CONFLICT",
			"error": "Tour already has an assigned guide",
		})
		return
	}

	application := models.TourApplication{
		TourID:  tour.ID,
		GuideID: guide.ID,
		Message: req.Message,
		Status:  models.ApplicationStatusPending,
	}

	if err := database.DB.Create(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{
				"code":  "CONFLICT",
				"error": "You have already applied to this tour",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create application"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Application submitted successfully",
		"application": application,
	})
}

// listTourApplications returns the applications on a tour owned by the caller
func listTourApplications(c *gin.Context) {
	tourID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid tour ID"})
		return
	}

	tour, _, ok := ownedTour(c, uint(tourID))
	if !ok {
		return
	}

	var applications []models.TourApplication
	if err := database.DB.
		Preload("Guide.User").
		Where("tour_id = ?", tour.ID).
		Order("created_at ASC").
		Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": applications})
}

// acceptApplication assigns the applicant guide to the tour
func acceptApplication(c *gin.Context) {
	applicationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid application ID"})
		return
	}

	var application models.TourApplication
	if err := database.DB.Preload("Guide").First(&application, uint(applicationID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "Application not found"})
		return
	}

	tour, _, ok := ownedTour(c, application.TourID)
	if !ok {
		return
	}

	if application.Status != models.ApplicationStatusPending {
		c.JSON(http.StatusConflict, gin.H{
			"code":  "CONFLICT",
			"error": "Application has already been resolved",
		})
		return
	}
	if tour.GuideID != nil {
		c.JSON(http.StatusConflict, gin.H{
			"code":  "CONFLICT",
			"error": "Tour already has an assigned guide",
		})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		application.Status = models.ApplicationStatusAccepted
		if err := tx.Save(&application).Error; err != nil {
			return err
		}
		return tx.Model(tour).Update("guide_id", application.GuideID).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept application"})
		return
	}

	websocket.Notify(application.Guide.UserID, "application_accepted", gin.H{
		"tour_id":   tour.ID,
		"tour_name": tour.Name,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":     "Application accepted",
		"application": application,
	})
}

// declineApplication declines a pending application
func declineApplication(c *gin.Context) {
	applicationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid application ID"})
		return
	}

	var application models.TourApplication
	if err := database.DB.Preload("Guide").First(&application, uint(applicationID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "Application not found"})
		return
	}

	_, _, ok := ownedTour(c, application.TourID)
	if !ok {
		return
	}

	if application.Status != models.ApplicationStatusPending {
		c.JSON(http.StatusConflict, gin.H{
			"code":  "CONFLICT",
			"error": "Application has already been resolved",
		})
		return
	}

	application.Status = models.ApplicationStatusDeclined
	if err := database.DB.Save(&application).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decline application"})
		return
	}

	websocket.Notify(application.Guide.UserID, "application_declined", gin.H{
		"tour_id": application.TourID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":     "Application declined",
		"application": application,
	})
}
