package models

import (
	"time"

	"gorm.io/gorm"
)

// TourStatus represents the lifecycle status of a tour
type TourStatus string

const (
	TourStatusCurrent   TourStatus = "CURRENT"
	TourStatusCompleted TourStatus = "COMPLETED"
	TourStatusCancelled TourStatus = "CANCELLED"
)

// Tour represents a tour published by an organization
type Tour struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Name           string     `json:"name" gorm:"size:255;not null"`
	Description    string     `json:"description" gorm:"type:text"`
	Price          float64    `json:"price" gorm:"type:decimal(10,2);not null;check:price >= 0"`
	Location       string     `json:"location" gorm:"size:255;not null"`
	Date           time.Time  `json:"date" gorm:"not null"`
	Status         TourStatus `json:"status" gorm:"type:varchar(20);not null;default:'CURRENT';check:status IN ('CURRENT','COMPLETED','CANCELLED')"`
	OrganizationID uint       `json:"organization_id" gorm:"not null;index"`
	GuideID        *uint      `json:"guide_id" gorm:"index"`
	GroupSize      int        `json:"group_size" gorm:"default:0;check:group_size >= 0"`
	Languages      []string   `json:"languages" gorm:"serializer:json;type:text"`
	Inclusions     []string   `json:"inclusions" gorm:"serializer:json;type:text"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	Organization Organization    `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	Guide        *GuideProfile   `json:"guide,omitempty" gorm:"foreignKey:GuideID;constraint:OnDelete:SET NULL"`
	Stops        []ItineraryStop `json:"stops,omitempty" gorm:"foreignKey:TourID;constraint:OnDelete:CASCADE"`
	Tags         []Tag           `json:"tags,omitempty" gorm:"many2many:tour_tags;"`
}

// ItineraryStop represents one ordered stop in a tour's itinerary
type ItineraryStop struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	TourID      uint   `json:"tour_id" gorm:"not null;index"`
	Title       string `json:"title" gorm:"size:255;not null"`
	Location    string `json:"location" gorm:"size:255"`
	Duration    string `json:"duration" gorm:"size:100"`
	Description string `json:"description" gorm:"type:text"`
	Time        string `json:"time" gorm:"size:50"`
	Sequence    int    `json:"sequence" gorm:"not null;check:sequence >= 0"`
}

// Tag represents a tour tag (many-to-many with tours)
type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:100;uniqueIndex;not null"`
}

// TourRequest represents the request structure for creating/updating a tour
type TourRequest struct {
	Name        string                 `json:"name" binding:"required,max=255"`
	Description string                 `json:"description" binding:"max=5000"`
	Price       float64                `json:"price" binding:"required,gte=0"`
	Location    string                 `json:"location" binding:"required,max=255"`
	Date        time.Time              `json:"date" binding:"required"`
	GroupSize   int                    `json:"group_size" binding:"gte=0"`
	Languages   []string               `json:"languages"`
	Inclusions  []string               `json:"inclusions"`
	TagIDs      []uint                 `json:"tag_ids"`
	Stops       []ItineraryStopRequest `json:"stops" binding:"dive"`
}

// ItineraryStopRequest represents one stop in a tour create/update request
type ItineraryStopRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Location    string `json:"location" binding:"max=255"`
	Duration    string `json:"duration" binding:"max=100"`
	Description string `json:"description" binding:"max=2000"`
	Time        string `json:"time" binding:"max=50"`
	Sequence    int    `json:"sequence" binding:"gte=0"`
}

// TableName specifies the table name for the Tour model
func (Tour) TableName() string {
	return "tours"
}

// TableName specifies the table name for the ItineraryStop model
func (ItineraryStop) TableName() string {
	return "itinerary_stops"
}

// TableName specifies the table name for the Tag model
func (Tag) TableName() string {
	return "tags"
}
