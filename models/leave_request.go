package models

import (
	"time"

	"gorm.io/gorm"
)

// LeaveRequestStatus represents the status of a leave request.
// PENDING is the only non-terminal state.
type LeaveRequestStatus string

const (
	LeaveStatusPending    LeaveRequestStatus = "PENDING"
	LeaveStatusApproved   LeaveRequestStatus = "APPROVED"
	LeaveStatusRejected   LeaveRequestStatus = "REJECTED"
	LeaveStatusCriticized LeaveRequestStatus = "CRITICIZED"
)

// LeaveRequest represents a guide's request to be unassigned from a tour
// before completion. The partial unique index guarantees at most one PENDING
// request per (tour, guide) pair even under concurrent creates.
type LeaveRequest struct {
	ID      uint               `json:"id" gorm:"primaryKey"`
	TourID  uint               `json:"tour_id" gorm:"not null;uniqueIndex:idx_leave_requests_pending,where:status = 'PENDING'"`
	GuideID uint               `json:"guide_id" gorm:"not null;uniqueIndex:idx_leave_requests_pending,where:status = 'PENDING'"`
	Reason  string             `json:"reason" gorm:"type:text;not null"`
	Status  LeaveRequestStatus `json:"status" gorm:"type:varchar(20);not null;default:'PENDING';check:status IN ('PENDING','APPROVED','REJECTED','CRITICIZED')"`

	// Set when the organization resolves the request
	OrganizationResponse *string    `json:"organization_response" gorm:"type:text"`
	CriticismRating      *int       `json:"criticism_rating" gorm:"type:int;check:criticism_rating IS NULL OR (criticism_rating >= 1 AND criticism_rating <= 5)"`
	CriticismReason      *string    `json:"criticism_reason" gorm:"type:text"`
	PenaltyApplied       *float64   `json:"penalty_applied" gorm:"type:decimal(2,1)"`
	ReviewedAt           *time.Time `json:"reviewed_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	Tour  Tour         `json:"tour,omitempty" gorm:"foreignKey:TourID"`
	Guide GuideProfile `json:"guide,omitempty" gorm:"foreignKey:GuideID"`
}

// IsPending reports whether the request can still be resolved
func (lr *LeaveRequest) IsPending() bool {
	return lr.Status == LeaveStatusPending
}

// LeaveRequestCreate represents the request structure for creating a leave request
type LeaveRequestCreate struct {
	Reason string `json:"reason" binding:"required,min=20,max=5000"`
}

// LeaveRequestApprove represents the request structure for approving a leave request
type LeaveRequestApprove struct {
	Response string `json:"response" binding:"max=5000"`
}

// LeaveRequestReject represents the request structure for rejecting a leave request
type LeaveRequestReject struct {
	Response string `json:"response" binding:"required,min=10,max=5000"`
}

// LeaveRequestCriticize represents the request structure for criticizing a leave request
type LeaveRequestCriticize struct {
	Reason string `json:"reason" binding:"required,min=10,max=5000"`
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
}

// TableName specifies the table name for the LeaveRequest model
func (LeaveRequest) TableName() string {
	return "leave_requests"
}
