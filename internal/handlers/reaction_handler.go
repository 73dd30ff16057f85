package handlers

import (
	"net/http"

	"github.com/Ashitosh-Bhise/speakwave-server/internal/apperrors"
	"github.com/Ashitosh-Bhise/speakwave-server/internal/models"
	"github.com/Ashitosh-Bhise/speakwave-server/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ReactionHandler handles HTTP requests related to reactions
type ReactionHandler struct {
	reactionRepository repositories.ReactionRepository
	postRepository     repositories.PostRepository
	userRepository     repositories.UserRepository
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(reactionRepo repositories.ReactionRepository, postRepo repositories.PostRepository, userRepo repositories.UserRepository) *ReactionHandler {
	return &ReactionHandler{
		reactionRepository: reactionRepo,
		postRepository:     postRepo,
		userRepository:     userRepo,
	}
}

// RegisterReactionRoutes registers reaction-related routes
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.POST("/posts/:id/reactions", h.ReactToPost)
	g.DELETE("/posts/:id/reactions", h.RemoveReaction)
}

// ReactToPost stores the caller's reaction on a post. Reacting again with
// another kind replaces the previous reaction.
func (h *ReactionHandler) ReactToPost(c echo.Context) error {
	claims := currentClaims(c)
	postID := c.Param("id")

	var req models.CreateReactionRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return apperrors.Validation(err.Error())
	}

	// Verify post exists
	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		return apperrors.NotFound("Post not found")
	}

	// A repeat reaction replaces the stored kind instead of adding a row
	_, lookupErr := h.reactionRepository.GetReaction(postID, claims.UserID)
	replacing := lookupErr == nil

	reaction := &models.Reaction{
		PostID: postID,
		UserID: claims.UserID,
		Kind:   req.Kind,
	}

	if err := h.reactionRepository.UpsertReaction(reaction); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if replacing {
		return c.JSON(http.StatusOK, echo.Map{
			"success":  true,
			"message":  "Reaction updated successfully.",
			"reaction": reaction,
		})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success":  true,
		"message":  "Reaction added successfully.",
		"reaction": reaction,
	})
}

// RemoveReaction removes the caller's reaction from a post
func (h *ReactionHandler) RemoveReaction(c echo.Context) error {
	claims := currentClaims(c)
	postID := c.Param("id")

	if err := h.reactionRepository.DeleteReaction(postID, claims.UserID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.NotFound("Reaction not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Reaction removed successfully.",
	})
}
