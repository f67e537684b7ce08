package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleTraveler     UserRole = "traveler"
	RoleGuide        UserRole = "guide"
	RoleOrganization UserRole = "organization"
	RoleAdmin        UserRole = "admin"
)

type User struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	FullName          string    `json:"full_name" gorm:"size:255;not null"`
	Email             string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash      string    `json:"-" gorm:"size:255;not null"` // Hidden from JSON
	Role              UserRole  `json:"role" gorm:"type:varchar(20);not null;default:'traveler';check:role IN ('traveler','guide','organization','admin')"`
	ProfilePictureURL *string   `json:"profile_picture_url" gorm:"size:500"`
	IsActive          bool      `json:"is_active" gorm:"default:true"`
	CreatedAt         time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	GuideProfile *GuideProfile `json:"guide_profile,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Posts        []Post        `json:"posts,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is a GORM hook that runs before creating a user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleTraveler
	}
	return nil
}

// IsValidRole checks if the user role is valid
func (u *User) IsValidRole() bool {
	switch u.Role {
	case RoleTraveler, RoleGuide, RoleOrganization, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsGuide checks if the user is a guide
func (u *User) IsGuide() bool {
	return u.Role == RoleGuide
}

// IsOrganization checks if the user is an organization
func (u *User) IsOrganization() bool {
	return u.Role == RoleOrganization
}

// IsAdmin checks if the user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
