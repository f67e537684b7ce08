package models

import (
	"time"

	"gorm.io/gorm"
)

// PreviousTour represents an immutable snapshot of a completed tour,
// used for feedback and performance review collection
type PreviousTour struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	TourID         uint      `json:"tour_id" gorm:"not null;index"`
	OrganizationID uint      `json:"organization_id" gorm:"not null;index"`
	GuideID        uint      `json:"guide_id" gorm:"not null;index"`
	TourName       string    `json:"tour_name" gorm:"size:255;not null"`
	Location       string    `json:"location" gorm:"size:255"`
	Date           time.Time `json:"date"`
	CompletedAt    time.Time `json:"completed_at" gorm:"not null"`

	// Average of feedback ratings, nil while no feedback exists
	AverageRating  *float64 `json:"average_rating" gorm:"type:decimal(2,1)"`
	TotalTravelers int      `json:"total_travelers" gorm:"default:0;check:total_travelers >= 0"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	Organization Organization           `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	Guide        GuideProfile           `json:"guide,omitempty" gorm:"foreignKey:GuideID"`
	Feedbacks    []PreviousTourFeedback `json:"feedbacks,omitempty" gorm:"foreignKey:PreviousTourID;constraint:OnDelete:CASCADE"`
}

// PreviousTourFeedback represents one traveler's feedback on a completed tour
type PreviousTourFeedback struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	PreviousTourID uint      `json:"previous_tour_id" gorm:"not null;index"`
	AuthorID       uint      `json:"author_id" gorm:"not null"`
	Rating         int       `json:"rating" gorm:"type:int;not null;check:rating >= 1 AND rating <= 5"`
	Feedback       string    `json:"feedback" gorm:"type:text"`
	DocumentURL    *string   `json:"document_url" gorm:"size:500"`
	CreatedAt      time.Time `json:"created_at"`

	// Relationships
	Author User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

// CompleteTourRequest represents the request structure for completing a tour.
// TotalTravelers is a pointer so an explicit zero survives the required check.
type CompleteTourRequest struct {
	TotalTravelers *int `json:"total_travelers" binding:"required,gte=0"`
}

// PreviousTourFeedbackRequest represents the request structure for submitting feedback
type PreviousTourFeedbackRequest struct {
	Rating      int     `json:"rating" binding:"required,min=1,max=5"`
	Feedback    string  `json:"feedback" binding:"max=5000"`
	DocumentURL *string `json:"document_url" binding:"omitempty,max=500"`
}

// TableName specifies the table name for the PreviousTour model
func (PreviousTour) TableName() string {
	return "previous_tours"
}

// TableName specifies the table name for the PreviousTourFeedback model
func (PreviousTourFeedback) TableName() string {
	return "previous_tour_feedbacks"
}
