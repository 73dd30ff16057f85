package models

import "time"

// Reaction represents a reaction on a post. One row per user per post;
// reacting again with another kind replaces the kind. No soft delete:
// a removed reaction must vacate the unique index so the user can react
// to the same post again.
type Reaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_reaction"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_reaction"`
	Kind      string    `json:"kind" gorm:"type:varchar(20)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateReactionRequest defines the request body for reacting to a post
type CreateReactionRequest struct {
	Kind string `json:"kind" form:"kind" validate:"required,oneof=like love laugh sad angry"`
}

// ReactionView is a reaction with its author joined in
type ReactionView struct {
	ID        uint        `json:"id"`
	Kind      string      `json:"kind"`
	ReactedBy UserCompact `json:"reactedBy"`
}
