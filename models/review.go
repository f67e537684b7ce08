package models

import "time"

// UserReview represents a peer-to-peer review between users.
// One review per (reviewer, target) pair, enforced by the unique index.
type UserReview struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ReviewerID   uint      `json:"reviewer_id" gorm:"not null;uniqueIndex:idx_user_reviews_once"`
	TargetUserID uint      `json:"target_user_id" gorm:"not null;uniqueIndex:idx_user_reviews_once"`
	Rating       int       `json:"rating" gorm:"type:int;not null;check:rating >= 1 AND rating <= 5"`
	Comment      string    `json:"comment" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relationships
	Reviewer   User `json:"reviewer,omitempty" gorm:"foreignKey:ReviewerID"`
	TargetUser User `json:"target_user,omitempty" gorm:"foreignKey:TargetUserID;constraint:OnDelete:CASCADE"`
}

// TourReview represents a traveler's review of a tour.
// One review per (author, tour) pair, enforced by the unique index.
type TourReview struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AuthorID  uint      `json:"author_id" gorm:"not null;uniqueIndex:idx_tour_reviews_once"`
	TourID    uint      `json:"tour_id" gorm:"not null;uniqueIndex:idx_tour_reviews_once"`
	Rating    int       `json:"rating" gorm:"type:int;not null;check:rating >= 1 AND rating <= 5"`
	Comment   string    `json:"comment" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Author User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Tour   Tour `json:"tour,omitempty" gorm:"foreignKey:TourID;constraint:OnDelete:CASCADE"`
}

// ReviewRequest represents the request structure for creating a review
type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=5000"`
}

// TableName specifies the table name for the UserReview model
func (UserReview) TableName() string {
	return "user_reviews"
}

// TableName specifies the table name for the TourReview model
func (TourReview) TableName() string {
	return "tour_reviews"
}
