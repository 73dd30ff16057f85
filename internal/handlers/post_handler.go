package handlers

import (
	"net/http"
	"os"

	"github.com/Ashitosh-Bhise/speakwave-server/internal/apperrors"
	"github.com/Ashitosh-Bhise/speakwave-server/internal/media"
	"github.com/Ashitosh-Bhise/speakwave-server/internal/models"
	"github.com/Ashitosh-Bhise/speakwave-server/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository     repositories.PostRepository
	userRepository     repositories.UserRepository
	followRepository   repositories.FollowRepository
	repostRepository   repositories.RepostRepository
	commentRepository  repositories.CommentRepository
	reactionRepository repositories.ReactionRepository
	storage            media.Storage
	uploadDir          string
	strictEmpty        bool
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	repostRepo repositories.RepostRepository,
	commentRepo repositories.CommentRepository,
	reactionRepo repositories.ReactionRepository,
	storage media.Storage,
	uploadDir string,
	strictEmpty bool,
) *PostHandler {
	return &PostHandler{
		postRepository:     postRepo,
		userRepository:     userRepo,
		followRepository:   followRepo,
		repostRepository:   repostRepo,
		commentRepository:  commentRepo,
		reactionRepository: reactionRepo,
		storage:            storage,
		uploadDir:          uploadDir,
		strictEmpty:        strictEmpty,
	}
}

// RegisterPostRoutes registers the authenticated post routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/feed", h.FetchFollowingFeed)
	g.GET("/posts/repost/:id", h.RepostPost)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.EditPost)
	g.DELETE("/posts/:id", h.RemovePost)
}

// CreatePost creates a new post with an optional media thumbnail
func (h *PostHandler) CreatePost(c echo.Context) error {
	claims := currentClaims(c)

	content := c.FormValue("content")
	if content == "" {
		return apperrors.Validation("Content is required")
	}

	validate := validator.New()
	req := models.CreatePostRequest{Content: content}
	if err := validate.Struct(req); err != nil {
		return apperrors.Validation(err.Error())
	}

	post := &models.Post{
		Content:  content,
		PostedBy: claims.UserID,
	}

	localPath, mimeType, hasFile, err := media.SaveUpload(c, "thumbnail", h.uploadDir)
	if err != nil {
		return apperrors.Upload("Error while uploading thumbnail")
	}
	if hasFile {
		// Temp file is removed on every exit path, success or failure
		defer os.Remove(localPath)

		category := media.CategoryForMIME(mimeType)
		ref, err := h.storage.Upload(c.Request().Context(), localPath, category)
		if err != nil {
			return apperrors.Upload("Error while uploading thumbnail")
		}
		post.Thumbnail = *ref
	}

	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Thank you for sharing your post.",
		"post":    post,
	})
}

// GetAllPosts retrieves all posts with their author joined in
func (h *PostHandler) GetAllPosts(c echo.Context) error {
	posts, err := h.postRepository.GetAllPosts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if len(posts) == 0 && h.strictEmpty {
		return apperrors.NotFound("No posts found")
	}

	views, err := h.joinAuthors(posts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Posts fetched successfully.",
		"posts":   views,
	})
}

// GetPost retrieves one post with nested comments, reactions and author
func (h *PostHandler) GetPost(c echo.Context) error {
	id := c.Param("id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), id)
	if err != nil {
		return apperrors.NotFound("Post not found")
	}

	comments, err := h.commentRepository.GetCommentsByPostID(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	reactions, err := h.reactionRepository.GetReactionsByPostID(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Resolve every referenced user in one lookup
	idSet := map[uint]bool{post.PostedBy: true}
	for _, cm := range comments {
		idSet[cm.UserID] = true
	}
	for _, rc := range reactions {
		idSet[rc.UserID] = true
	}
	userMap, err := h.userMapByIDs(idSet)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	detail := models.PostDetail{
		Post:      *post,
		Author:    userMap[post.PostedBy],
		Comments:  make([]models.CommentView, len(comments)),
		Reactions: make([]models.ReactionView, len(reactions)),
	}
	for i, cm := range comments {
		detail.Comments[i] = models.CommentView{ID: cm.ID, Text: cm.Text, CommentedBy: userMap[cm.UserID]}
	}
	for i, rc := range reactions {
		detail.Reactions[i] = models.ReactionView{ID: rc.ID, Kind: rc.Kind, ReactedBy: userMap[rc.UserID]}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Post fetched successfully",
		"post":    detail,
	})
}

// EditPost applies a partial update with an optional thumbnail replacement
func (h *PostHandler) EditPost(c echo.Context) error {
	id := c.Param("id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), id)
	if err != nil {
		return apperrors.NotFound("Post not found")
	}

	req := models.UpdatePostRequest{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
	}
	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return apperrors.Validation(err.Error())
	}

	set := bson.M{}
	if req.Title != "" {
		post.Title = req.Title
		set["title"] = req.Title
	}
	if req.Description != "" {
		post.Description = req.Description
		set["description"] = req.Description
	}

	localPath, mimeType, hasFile, err := media.SaveUpload(c, "thumbnail", h.uploadDir)
	if err != nil {
		return apperrors.Upload("Error while uploading post thumbnail")
	}
	if hasFile {
		defer os.Remove(localPath)

		if !post.Thumbnail.IsZero() {
			if err := h.storage.Delete(c.Request().Context(), post.Thumbnail.PublicID); err != nil {
				return apperrors.Upload("Error while uploading post thumbnail")
			}
		}

		ref, err := h.storage.Upload(c.Request().Context(), localPath, media.CategoryForMIME(mimeType))
		if err != nil {
			return apperrors.Upload("Error while uploading post thumbnail")
		}
		post.Thumbnail = *ref
		set["thumbnail"] = *ref
	}

	if len(set) > 0 {
		if err := h.postRepository.UpdatePost(c.Request().Context(), id, set); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Post updated successfully.",
		"post":    post,
	})
}

// RemovePost deletes a post and its media asset
func (h *PostHandler) RemovePost(c echo.Context) error {
	id := c.Param("id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), id)
	if err != nil {
		return apperrors.NotFound("Post not found")
	}

	if !post.Thumbnail.IsZero() {
		if err := h.storage.Delete(c.Request().Context(), post.Thumbnail.PublicID); err != nil {
			return apperrors.Upload("Error while deleting post thumbnail")
		}
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Drop the relational rows referencing the deleted document
	if err := h.commentRepository.DeleteCommentsByPost(id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.reactionRepository.DeleteReactionsByPost(id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.repostRepository.DeleteRepostsByPost(id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Post deleted successfully.",
	})
}

// RepostPost records a repost: a list entry for the user and an atomic
// counter increment on the post
func (h *PostHandler) RepostPost(c echo.Context) error {
	claims := currentClaims(c)
	id := c.Param("id")

	user, userErr := h.userRepository.GetUserByID(claims.UserID)
	post, postErr := h.postRepository.GetPostByID(c.Request().Context(), id)
	if userErr != nil || postErr != nil {
		return apperrors.NotFound("User or post not found")
	}

	if post.PostedBy == user.ID {
		return apperrors.DomainRule("You can't repost your post")
	}

	// No dedup: a second repost appends a second row and bumps the counter
	repost := &models.Repost{UserID: user.ID, PostID: id}
	if err := h.repostRepository.CreateRepost(repost); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.postRepository.IncrementRepostCount(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Post reposted successfully",
	})
}

// FetchFollowingFeed returns posts from the user's following set,
// newest first, with authors joined in
func (h *PostHandler) FetchFollowingFeed(c echo.Context) error {
	claims := currentClaims(c)

	if _, err := h.userRepository.GetUserByID(claims.UserID); err != nil {
		return apperrors.NotFound("User not found")
	}

	followingIDs, err := h.followRepository.GetFollowingIDs(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if len(followingIDs) == 0 {
		return apperrors.DomainRule("You aren't following anyone.")
	}

	posts, err := h.postRepository.GetPostsByAuthors(c.Request().Context(), followingIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if len(posts) == 0 && h.strictEmpty {
		return apperrors.NotFound("Feed post not found")
	}

	views, err := h.joinAuthors(posts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Feed fetched successfully.",
		"posts":   views,
	})
}

// joinAuthors attaches the compact author shape to each post
func (h *PostHandler) joinAuthors(posts []models.Post) ([]models.PostView, error) {
	idSet := make(map[uint]bool, len(posts))
	for _, p := range posts {
		idSet[p.PostedBy] = true
	}
	userMap, err := h.userMapByIDs(idSet)
	if err != nil {
		return nil, err
	}

	views := make([]models.PostView, len(posts))
	for i, p := range posts {
		views[i] = models.PostView{Post: p, Author: userMap[p.PostedBy]}
	}
	return views, nil
}

func (h *PostHandler) userMapByIDs(idSet map[uint]bool) (map[uint]models.UserCompact, error) {
	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	users, err := h.userRepository.GetUsersByIDs(ids)
	if err != nil {
		return nil, err
	}
	userMap := make(map[uint]models.UserCompact, len(users))
	for _, u := range users {
		userMap[u.ID] = u.ToCompact()
	}
	return userMap, nil
}
