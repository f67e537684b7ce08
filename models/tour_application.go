package models

import "time"

// ApplicationStatus represents the status of a guide's application to a tour
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "PENDING"
	ApplicationStatusAccepted ApplicationStatus = "ACCEPTED"
	ApplicationStatusDeclined ApplicationStatus = "DECLINED"
)

// TourApplication represents a guide applying to lead a tour
type TourApplication struct {
	ID        uint              `json:"id" gorm:"primaryKey"`
	TourID    uint              `json:"tour_id" gorm:"not null;uniqueIndex:idx_tour_applications_once"`
	GuideID   uint              `json:"guide_id" gorm:"not null;uniqueIndex:idx_tour_applications_once"`
	Message   string            `json:"message" gorm:"type:text"`
	Status    ApplicationStatus `json:"status" gorm:"type:varchar(20);not null;default:'PENDING';check:status IN ('PENDING','ACCEPTED','DECLINED')"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	// Relationships
	Tour  Tour         `json:"tour,omitempty" gorm:"foreignKey:TourID;constraint:OnDelete:CASCADE"`
	Guide GuideProfile `json:"guide,omitempty" gorm:"foreignKey:GuideID;constraint:OnDelete:CASCADE"`
}

// TourApplicationRequest represents the request structure for applying to a tour
type TourApplicationRequest struct {
	Message string `json:"message" binding:"max=2000"`
}

// TableName specifies the table name for the TourApplication model
func (TourApplication) TableName() string {
	return "tour_applications"
}
