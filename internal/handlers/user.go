package handlers

import (
	"net/http"
	"os"
	"strconv"

	"github.com/Ashitosh-Bhise/speakwave-server/internal/apperrors"
	"github.com/Ashitosh-Bhise/speakwave-server/internal/media"
	"github.com/Ashitosh-Bhise/speakwave-server/internal/middleware"
	"github.com/Ashitosh-Bhise/speakwave-server/internal/models"
	"github.com/Ashitosh-Bhise/speakwave-server/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
	repostRepository repositories.RepostRepository
	storage          media.Storage
	uploadDir        string
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	repostRepo repositories.RepostRepository,
	storage media.Storage,
	uploadDir string,
) *UserHandler {
	return &UserHandler{
		userRepository:   userRepo,
		followRepository: followRepo,
		repostRepository: repostRepo,
		storage:          storage,
		uploadDir:        uploadDir,
	}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/me", h.GetProfile)
	g.PUT("/users/edit-profile", h.EditProfile)
	g.GET("/users/users/:userId/follow", h.FollowUser)
	g.GET("/users/users/:userId/unfollow", h.UnfollowUser)
	g.GET("/users/admin", h.GetUsers, middleware.RequireRoles(models.RoleAdmin))
	g.GET("/users/suggested-friends", h.GetSuggestedFriends)
	g.GET("/users/unfollowed-followers", h.GetUnfollowedFollowers)
}

// GetProfile retrieves the authenticated user's profile with follow counts
// and repost history
func (h *UserHandler) GetProfile(c echo.Context) error {
	claims := currentClaims(c)

	user, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.NotFound("User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	followers, _ := h.followRepository.GetFollowersCount(user.ID)
	following, _ := h.followRepository.GetFollowingCount(user.ID)
	reposts, _ := h.repostRepository.GetRepostsByUser(user.ID)

	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"message":   "Profile fetched successfully.",
		"user":      user,
		"followers": followers,
		"following": following,
		"repost":    reposts,
	})
}

// EditProfile applies a partial profile update with an optional avatar
// replacement through the media delegate
func (h *UserHandler) EditProfile(c echo.Context) error {
	claims := currentClaims(c)

	user, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.NotFound("User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	req := models.UpdateProfileRequest{
		Username: c.FormValue("username"),
		Bio:      c.FormValue("bio"),
	}
	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return apperrors.Validation(err.Error())
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}

	localPath, mimeType, hasFile, err := media.SaveUpload(c, "avatar", h.uploadDir)
	if err != nil {
		return apperrors.Upload("Error while uploading avatar")
	}
	if hasFile {
		defer os.Remove(localPath)

		if !user.Avatar.IsZero() {
			if err := h.storage.Delete(c.Request().Context(), user.Avatar.PublicID); err != nil {
				return apperrors.Upload("Error while uploading avatar")
			}
		}

		ref, err := h.storage.Upload(c.Request().Context(), localPath, media.CategoryForMIME(mimeType))
		if err != nil {
			return apperrors.Upload("Error while uploading avatar")
		}
		user.Avatar = *ref
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Profile updated successfully.",
		"user":    user,
	})
}

// FollowUser adds the target user to the caller's following set
func (h *UserHandler) FollowUser(c echo.Context) error {
	claims := currentClaims(c)

	targetID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		return apperrors.Validation("Invalid user ID")
	}

	if claims.UserID == uint(targetID) {
		return apperrors.DomainRule("You can't follow yourself")
	}

	if _, err := h.userRepository.GetUserByID(uint(targetID)); err != nil {
		return apperrors.NotFound("User not found")
	}

	isFollowing, err := h.followRepository.IsFollowing(claims.UserID, uint(targetID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if isFollowing {
		return apperrors.Conflict("Already following this user")
	}

	follow := &models.Follow{
		FollowerID:  claims.UserID,
		FollowingID: uint(targetID),
	}
	if err := h.followRepository.CreateFollow(follow); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "User followed successfully.",
	})
}

// UnfollowUser removes the target user from the caller's following set
func (h *UserHandler) UnfollowUser(c echo.Context) error {
	claims := currentClaims(c)

	targetID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		return apperrors.Validation("Invalid user ID")
	}

	if err := h.followRepository.DeleteFollow(claims.UserID, uint(targetID)); err != nil {
		if err == repositories.ErrFollowNotFound {
			return apperrors.NotFound("You aren't following this user")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "User unfollowed successfully.",
	})
}

// GetUsers lists all users. Admin-only, gated by RequireRoles.
func (h *UserHandler) GetUsers(c echo.Context) error {
	users, err := h.userRepository.GetUsers()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Users fetched successfully.",
		"users":   users,
	})
}

// GetSuggestedFriends lists users the caller does not follow yet
func (h *UserHandler) GetSuggestedFriends(c echo.Context) error {
	claims := currentClaims(c)

	followingIDs, err := h.followRepository.GetFollowingIDs(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Exclude the caller and everyone already followed
	users, err := h.userRepository.GetUsersExcluding(append(followingIDs, claims.UserID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Suggested friends fetched successfully.",
		"users":   users,
	})
}

// GetUnfollowedFollowers lists followers the caller has not followed back
func (h *UserHandler) GetUnfollowedFollowers(c echo.Context) error {
	claims := currentClaims(c)

	followerIDs, err := h.followRepository.GetFollowerIDs(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	followingIDs, err := h.followRepository.GetFollowingIDs(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	followingSet := make(map[uint]bool, len(followingIDs))
	for _, id := range followingIDs {
		followingSet[id] = true
	}
	var gap []uint
	for _, id := range followerIDs {
		if !followingSet[id] {
			gap = append(gap, id)
		}
	}

	users, err := h.userRepository.GetUsersByIDs(gap)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Unfollowed followers fetched successfully.",
		"users":   users,
	})
}
