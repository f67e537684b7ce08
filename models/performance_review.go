package models

import "time"

// GuidePerformanceReview represents an organization-authored, AI-assisted
// assessment of a guide's conduct on one completed tour. At most one review
// may exist per previous tour, enforced by the unique index.
type GuidePerformanceReview struct {
	ID             uint     `json:"id" gorm:"primaryKey"`
	PreviousTourID uint     `json:"previous_tour_id" gorm:"uniqueIndex;not null"`
	GuideID        uint     `json:"guide_id" gorm:"not null;index"`
	Summary        string   `json:"summary" gorm:"type:text;not null"`
	Strengths      []string `json:"strengths" gorm:"serializer:json;type:text"`
	Improvements   string   `json:"improvements" gorm:"type:text"`
	SentimentScore int      `json:"sentiment_score" gorm:"type:int;not null;check:sentiment_score >= 0 AND sentiment_score <= 100"`
	Rating         float64  `json:"rating" gorm:"type:decimal(2,1);not null"`
	RedFlags       bool     `json:"red_flags" gorm:"default:false"`

	// Denormalized tour metadata for display without joins
	TourName     string    `json:"tour_name" gorm:"size:255"`
	TourLocation string    `json:"tour_location" gorm:"size:255"`
	TourDate     time.Time `json:"tour_date"`

	// No soft delete: a tombstoned row would keep the unique index on
	// PreviousTourID occupied and block re-reviewing the tour forever.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	PreviousTour PreviousTour `json:"previous_tour,omitempty" gorm:"foreignKey:PreviousTourID"`
	Guide        GuideProfile `json:"guide,omitempty" gorm:"foreignKey:GuideID"`
}

// PerformanceReviewPushRequest represents the request structure for pushing a performance review
type PerformanceReviewPushRequest struct {
	Summary        string   `json:"summary" binding:"required,max=5000"`
	Strengths      []string `json:"strengths" binding:"required,min=1,max=5,dive,max=500"`
	Improvements   string   `json:"improvements" binding:"max=5000"`
	SentimentScore int      `json:"sentiment_score" binding:"min=0,max=100"`
	RedFlags       bool     `json:"red_flags"`
}

// TableName specifies the table name for the GuidePerformanceReview model
func (GuidePerformanceReview) TableName() string {
	return "guide_performance_reviews"
}
