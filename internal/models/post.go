package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaRef is the persisted reference to an asset held by the media
// delegate: a stable identifier plus its retrieval URL.
type MediaRef struct {
	PublicID  string `json:"public_id,omitempty" bson:"public_id,omitempty"`
	SecureURL string `json:"secure_url,omitempty" bson:"secure_url,omitempty"`
}

// IsZero reports whether no asset is referenced
func (m MediaRef) IsZero() bool {
	return m.PublicID == ""
}

// Post represents a SpeakWave post stored in MongoDB
type Post struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Content         string             `json:"content" bson:"content"`
	Title           string             `json:"title,omitempty" bson:"title,omitempty"`
	Description     string             `json:"description,omitempty" bson:"description,omitempty"`
	Thumbnail       MediaRef           `json:"thumbnail" bson:"thumbnail,omitempty"`
	PostedBy        uint               `json:"posted_by" bson:"posted_by"` // ID of the authoring user
	NumberOfReposts int                `json:"numberOfRepost" bson:"number_of_reposts"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content string `json:"content" form:"content" validate:"required,min=1,max=1000"`
}

// UpdatePostRequest defines the request body for editing an existing post.
// All fields are optional; only the provided ones are applied.
type UpdatePostRequest struct {
	Title       string `json:"title" form:"title" validate:"omitempty,max=100"`
	Description string `json:"description" form:"description" validate:"omitempty,max=1000"`
}

// PostView is a post with the author joined in
type PostView struct {
	Post
	Author UserCompact `json:"postedBy"`
}

// PostDetail is a post with author, comments and reactions joined in
type PostDetail struct {
	Post
	Author    UserCompact    `json:"postedBy"`
	Comments  []CommentView  `json:"comments"`
	Reactions []ReactionView `json:"reactions"`
}
