package models

import (
	"time"

	"gorm.io/gorm"
)

// Organization represents a business account that owns and publishes tours
type Organization struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"uniqueIndex;not null"`
	TaxID     int64          `json:"tax_id" gorm:"not null;check:tax_id > 0"`
	Website   string         `json:"website" gorm:"size:500"`
	Slogan    string         `json:"slogan" gorm:"size:255"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	User  User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Tours []Tour `json:"tours,omitempty" gorm:"foreignKey:OrganizationID"`
}

// OrganizationRequest represents the request structure for creating/updating an organization
type OrganizationRequest struct {
	TaxID   int64  `json:"tax_id" binding:"required,gt=0"`
	Website string `json:"website" binding:"omitempty,url,max=500"`
	Slogan  string `json:"slogan" binding:"max=255"`
}

// TableName specifies the table name for the Organization model
func (Organization) TableName() string {
	return "organizations"
}
