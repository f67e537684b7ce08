package models

import (
	"time"

	"gorm.io/gorm"
)

// GuideProfile represents a tourism student's professional profile
type GuideProfile struct {
	ID              uint     `json:"id" gorm:"primaryKey"`
	UserID          uint     `json:"user_id" gorm:"uniqueIndex;not null"`
	School          string   `json:"school" gorm:"size:255;not null"`
	Description     string   `json:"description" gorm:"type:text"`
	Certificates    []string `json:"certificates" gorm:"serializer:json;type:text"`
	WorkExperiences []string `json:"work_experiences" gorm:"serializer:json;type:text"`
	CVURL           *string  `json:"cv_url" gorm:"size:500"`

	// Reputation fields, recomputed on every performance review push
	AverageRating float64 `json:"average_rating" gorm:"type:decimal(2,1);default:0"`
	TotalReviews  int     `json:"total_reviews" gorm:"default:0"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// GuideProfileRequest represents the request structure for creating/updating a guide profile
type GuideProfileRequest struct {
	School          string   `json:"school" binding:"required,max=255"`
	Description     string   `json:"description" binding:"max=2000"`
	Certificates    []string `json:"certificates"`
	WorkExperiences []string `json:"work_experiences"`
	CVURL           *string  `json:"cv_url"`
}

// TableName specifies the table name for the GuideProfile model
func (GuideProfile) TableName() string {
	return "guide_profiles"
}
