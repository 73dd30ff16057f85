package models

import "time"

// Repost records that a user has rebroadcast another user's post.
// Append-only and deliberately without a unique index: reposting the same
// post twice produces two rows, mirroring the per-post counter.
type Repost struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	PostID    string    `json:"post_id" gorm:"index"` // MongoDB ObjectID as string
	CreatedAt time.Time `json:"created_at"`
}
