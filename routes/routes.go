package routes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"tourlink-server/database"
	"tourlink-server/models"
)

// bindJSON binds and validates the request body. Validation failures answer
// with a field->message map and never reach the database.
func bindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = validationMessage(fe)
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"code":   "VALIDATION_ERROR",
			"error":  "Invalid input",
			"fields": fields,
		})
		return false
	}

	c.JSON(http.StatusBadRequest, gin.H{
		"code":  "VALIDATION_ERROR",
		"error": "Invalid request body",
	})
	return false
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if fe.Kind().String() == "string" {
			return "Must be at least " + fe.Param() + " characters"
		}
		return "Must be at least " + fe.Param()
	case "max":
		if fe.Kind().String() == "string" {
			return "Must be at most " + fe.Param() + " characters"
		}
		return "Must be at most " + fe.Param()
	case "gt":
		return "Must be greater than " + fe.Param()
	case "gte":
		return "Must be at least " + fe.Param()
	case "email":
		return "Must be a valid email address"
	case "url":
		return "Must be a valid URL"
	default:
		return "Invalid value"
	}
}

// currentOrganization loads the organization profile of the authenticated
// user, answering 403 if the caller has none
func currentOrganization(c *gin.Context) (*models.Organization, bool) {
	userID := c.GetUint("user_id")

	var org models.Organization
	if err := database.DB.Where("user_id = ?", userID).First(&org).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{
			"code":  "FORBIDDEN",
			"error": "Organization profile required for this action",
		})
		return nil, false
	}
	return &org, true
}

// currentGuideProfile loads the guide profile of the authenticated user,
// answering 403 if the caller has none
func currentGuideProfile(c *gin.Context) (*models.GuideProfile, bool) {
	userID := c.GetUint("user_id")

	var guide models.GuideProfile
	if err := database.DB.Where("user_id = ?", userID).First(&guide).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{
			"code":  "FORBIDDEN",
			"error": "Guide profile required for this action",
		})
		return nil, false
	}
	return &guide, true
}
