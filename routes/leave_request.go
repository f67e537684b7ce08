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
	"tourlink-server/utils"
	"tourlink-server/websocket"
)

// RegisterLeaveRequestRoutes registers leave request workflow routes
func RegisterLeaveRequestRoutes(protected *gin.RouterGroup) {
	protected.POST("/tours/:id/leave-requests", createLeaveRequest)
	protected.GET("/leave-requests", listLeaveRequests)
	protected.DELETE("/leave-requests/:id", cancelLeaveRequest)
	protected.POST("/leave-requests/:id/approve", approveLeaveRequest)
	protected.POST("/leave-requests/:id/reject", rejectLeaveRequest)
	protected.POST("/leave-requests/:id/criticize", criticizeLeaveRequest)
}

// createLeaveRequest opens a PENDING leave request for the guide assigned to
// a tour. Only one pending request may exist per (tour, guide) pair.
func createLeaveRequest(c *gin.Context) {
	tourID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid tour ID"})
		return
	}

	var req models.LeaveRequestCreate
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

	if tour.GuideID == nil || *tour.GuideID != guide.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"code":  "FORBIDDEN",
			"error": "You are not the assigned guide for this tour",
		})
		return
	}

	// Friendly duplicate check; the partial unique index settles races
	var pending models.LeaveRequest
	if err := database.DB.
		Where("tour_id = ? AND guide_id = ? AND status = ?", tour.ID, guide.ID, models.LeaveStatusPending).
		First(&pending).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"code":  "CONFLICT",
			"error": "You already have a pending leave request for this tour",
		})
		return
	}

	leaveRequest := models.LeaveRequest{
		TourID:  tour.ID,
		GuideID: guide.ID,
		Reason:  req.Reason,
		Status:  models.LeaveStatusPending,
	}

	if err := database.DB.Create(&leaveRequest).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{
				"code":  "CONFLICT",
				"error": "You already have a pending leave request for this tour",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create leave request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Leave request submitted",
		"leave_request": leaveRequest,
	})
}

// listLeaveRequests lists leave requests visible to the caller: a guide sees
// their own, an organization sees requests on tours it owns
func listLeaveRequests(c *gin.Context) {
	userID := c.GetUint("user_id")
	role := models.UserRole(c.GetString("role"))

	var leaveRequests []models.LeaveRequest
	switch role {
	case models.RoleGuide:
		var guide models.GuideProfile
		if err := database.DB.Where("user_id = ?", userID).First(&guide).Error; err != nil {
			c.JSON(http.StatusForbidden, gin.H{"code": "FORBIDDEN", "error": "Guide profile required"})
			return
		}
		if err := database.DB.
			Preload("Tour").
			Where("guide_id = ?", guide.ID).
			Order("created_at DESC").
			Find(&leaveRequests).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leave requests"})
			return
		}
	case models.RoleOrganization:
		var org models.Organization
		if err := database.DB.Where("user_id = ?", userID).First(&org).Error; err != nil {
			c.JSON(http.StatusForbidden, gin.H{"code": "FORBIDDEN", "error": "Organization profile required"})
			return
		}
		if err := database.DB.
			Preload("Tour").
			Preload("Guide.User").
			Joins("JOIN tours ON tours.id = leave_requests.tour_id").
			Where("tours.organization_id = ?", org.ID).
			Order("leave_requests.created_at DESC").
			Find(&leaveRequests).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leave requests"})
			return
		}
	default:
		c.JSON(http.StatusForbidden, gin.H{
			"code":  "FORBIDDEN",
			"error": "Only guides and organizations can list leave requests",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leave_requests": leaveRequests})
}

// cancelLeaveRequest lets a guide withdraw their own still-pending request.
// The row is deleted outright, no status transition is retained.
func cancelLeaveRequest(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid leave request ID"})
		return
	}

	guide, ok := currentGuideProfile(c)
	if !ok {
		return
	}

	var leaveRequest models.LeaveRequest
	if err := database.DB.First(&leaveRequest, uint(requestID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "Leave request not found"})
		return
	}

	if leaveRequest.GuideID != guide.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"code":  "FORBIDDEN",
			"error": "You can only cancel your own leave requests",
		})
		return
	}

	if !leaveRequest.IsPending() {
		c.JSON(http.StatusConflict, gin.H{
			"code":  "CONFLICT",
			"error": "Leave request has already been resolved",
		})
		return
	}

	if err := database.DB.Unscoped().Delete(&leaveRequest).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel leave request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Leave request cancelled"})
}

// pendingRequestForOrganization loads a leave request and verifies the caller
// owns the tour and the request is still pending
func pendingRequestForOrganization(c *gin.Context, requestID uint) (*models.LeaveRequest, *models.Tour, bool) {
	org, ok := currentOrganization(c)
	if !ok {
		return nil, nil, false
	}

	var leaveRequest models.LeaveRequest
	if err := database.DB.Preload("Guide").First(&leaveRequest, requestID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "Leave request not found"})
		return nil, nil, false
	}

	var tour models.Tour
	if err := database.DB.First(&tour, leaveRequest.TourID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "Tour not found"})
		return nil, nil, false
	}

	if tour.OrganizationID != org.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"code":  "FORBIDDEN",
			"error": "You can only resolve leave requests on your own tours",
		})
		return nil, nil, false
	}

	if !leaveRequest.IsPending() {
		c.JSON(http.StatusConflict, gin.H{
			"code":  "CONFLICT",
			"error": "Leave request has already been resolved",
		})
		return nil, nil, false
	}

	return &leaveRequest, &tour, true
}

// approveLeaveRequest approves a pending request: the guide is removed from
// the tour with no reputation penalty
func approveLeaveRequest(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid leave request ID"})
		return
	}

	var req models.LeaveRequestApprove
	if !bindJSON(c, &req) {
		return
	}

	leaveRequest, tour, ok := pendingRequestForOrganization(c, uint(requestID))
	if !ok {
		return
	}

	now := time.Now()
	leaveRequest.Status = models.LeaveStatusApproved
	leaveRequest.ReviewedAt = &now
	if req.Response != "" {
		leaveRequest.OrganizationResponse = &req.Response
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(leaveRequest).Error; err != nil {
			return err
		}
		return tx.Model(tour).Update("guide_id", nil).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve leave request"})
		return
	}

	websocket.Notify(leaveRequest.Guide.UserID, "leave_request_approved", gin.H{
		"leave_request_id": leaveRequest.ID,
		"tour_name":        tour.Name,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":       "Leave request approved",
		"leave_request": leaveRequest,
	})
}

// rejectLeaveRequest rejects a pending request: the guide stays assigned to
// the tour and a response explaining the rejection is mandatory
func rejectLeaveRequest(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid leave request ID"})
		return
	}

	var req models.LeaveRequestReject
	if !bindJSON(c, &req) {
		return
	}

	leaveRequest, tour, ok := pendingRequestForOrganization(c, uint(requestID))
	if !ok {
		return
	}

	now := time.Now()
	leaveRequest.Status = models.LeaveStatusRejected
	leaveRequest.ReviewedAt = &now
	leaveRequest.OrganizationResponse = &req.Response

	if err := database.DB.Save(leaveRequest).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject leave request"})
		return
	}

	websocket.Notify(leaveRequest.Guide.UserID, "leave_request_rejected", gin.H{
		"leave_request_id": leaveRequest.ID,
		"tour_name":        tour.Name,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":       "Leave request rejected",
		"leave_request": leaveRequest,
	})
}

// criticizeLeaveRequest resolves a pending request with criticism: the guide
// is removed from the tour and a reputation penalty proportional to the
// severity rating is applied. Severity 1 subtracts 0.1 from the guide's
// average rating, severity 5 subtracts 0.5.
func criticizeLeaveRequest(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_ERROR", "error": "Invalid leave request ID"})
		return
	}

	var req models.LeaveRequestCriticize
	if !bindJSON(c, &req) {
		return
	}

	leaveRequest, tour, ok := pendingRequestForOrganization(c, uint(requestID))
	if !ok {
		return
	}

	penalty := utils.RoundRating(0.1 * float64(req.Rating))
	now := time.Now()
	leaveRequest.Status = models.LeaveStatusCriticized
	leaveRequest.ReviewedAt = &now
	leaveRequest.CriticismRating = &req.Rating
	leaveRequest.CriticismReason = &req.Reason
	leaveRequest.PenaltyApplied = &penalty

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(leaveRequest).Error; err != nil {
			return err
		}
		if err := tx.Model(tour).Update("guide_id", nil).Error; err != nil {
			return err
		}

		var guide models.GuideProfile
		if err := tx.First(&guide, leaveRequest.GuideID).Error; err != nil {
			return err
		}
		// Unrated guides (average 0) carry no reputation to penalize yet
		if guide.AverageRating > 0 {
			newRating := utils.RoundRating(guide.AverageRating - penalty)
			if newRating < 1.0 {
				newRating = 1.0
			}
			if err := tx.Model(&guide).Update("average_rating", newRating).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to criticize leave request"})
		return
	}

	websocket.Notify(leaveRequest.Guide.UserID, "leave_request_criticized", gin.H{
		"leave_request_id": leaveRequest.ID,
		"tour_name":        tour.Name,
		"penalty":          penalty,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":       "Leave request resolved with criticism",
		"leave_request": leaveRequest,
	})
}
