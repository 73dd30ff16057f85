package models

import "gorm.io/gorm"

// Comment represents a comment on a post
type Comment struct {
	gorm.Model
	PostID string `json:"post_id" gorm:"index"` // ID of the parent post (MongoDB ObjectID as string)
	UserID uint   `json:"user_id" gorm:"index"` // ID of the user who made the comment
	Text   string `json:"text" validate:"required,min=1,max=500"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Text string `json:"text" form:"text" validate:"required,min=1,max=500"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Text string `json:"text" form:"text" validate:"required,min=1,max=500"`
}

// CommentView is a comment with its author joined in
type CommentView struct {
	ID          uint        `json:"id"`
	Text        string      `json:"text"`
	CommentedBy UserCompact `json:"commentedBy"`
}
