package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// User roles
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	gorm.Model  `json:"-"`
	ID          uint     `json:"id" gorm:"primaryKey"`
	Username    string   `json:"username" gorm:"uniqueIndex"`
	Email       string   `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Bio         string   `json:"bio"`
	Role        string   `json:"role" gorm:"type:varchar(20);default:'USER'"`
	Avatar      MediaRef `json:"avatar" gorm:"embedded;embeddedPrefix:avatar_"`
	Password    string   `json:"-"` // Store hashed password, ignore for JSON serialization
	// Link to Firebase User UID. Nullable: local signups never set it, and
	// the unique index must not collide on the unset value.
	FirebaseUID *string `json:"firebase_uid,omitempty" gorm:"uniqueIndex"`
}

// UserCompact is the author shape joined into posts, comments and reactions
type UserCompact struct {
	ID       uint     `json:"id"`
	Username string   `json:"username"`
	Avatar   MediaRef `json:"avatar"`
}

// ToCompact returns the compact join shape for this user
func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Username: u.Username, Avatar: u.Avatar}
}

type SignupRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=2,max=30"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
}

type SigninRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Username string `json:"username" form:"username" validate:"omitempty,min=2,max=30"`
	Bio      string `json:"bio" form:"bio" validate:"omitempty,max=160"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
