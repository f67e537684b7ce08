package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a social feed post
type Post struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	AuthorID  uint           `json:"author_id" gorm:"not null;index"`
	Content   string         `json:"content" gorm:"type:text;not null"`
	ImageURL  *string        `json:"image_url" gorm:"size:500"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	Author   User          `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Likes    []PostLike    `json:"likes,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Comments []PostComment `json:"comments,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// PostLike represents a like on a post. Liking is a toggle: the row either
// exists or it does not.
type PostLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"not null;uniqueIndex:idx_post_likes_once"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_post_likes_once"`
	CreatedAt time.Time `json:"created_at"`
}

// PostComment represents a comment on a post
type PostComment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"not null;index"`
	AuthorID  uint      `json:"author_id" gorm:"not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Author User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

// PostRequest represents the request structure for creating a post
type PostRequest struct {
	Content  string  `json:"content" binding:"required,max=5000"`
	ImageURL *string `json:"image_url" binding:"omitempty,max=500"`
}

// CommentRequest represents the request structure for creating a comment
type CommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// TableName specifies the table name for the Post model
func (Post) TableName() string {
	return "posts"
}

// TableName specifies the table name for the PostLike model
func (PostLike) TableName() string {
	return "post_likes"
}

// TableName specifies the table name for the PostComment model
func (PostComment) TableName() string {
	return "post_comments"
}
