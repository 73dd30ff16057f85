package repositories

import (
	"errors"

	"github.com/Ashitosh-Bhise/speakwave-server/internal/models"
	"gorm.io/gorm"
)

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	UpsertReaction(reaction *models.Reaction) error
	GetReaction(postID string, userID uint) (*models.Reaction, error)
	GetReactionsByPostID(postID string) ([]models.Reaction, error)
	DeleteReaction(postID string, userID uint) error
	DeleteReactionsByPost(postID string) error
}

// PostgresReactionRepository implements ReactionRepository for PostgreSQL
type PostgresReactionRepository struct {
	db *gorm.DB
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository
func NewPostgresReactionRepository(db *gorm.DB) *PostgresReactionRepository {
	return &PostgresReactionRepository{db: db}
}

// UpsertReaction stores a user's reaction on a post. A second reaction by
// the same user replaces the kind instead of adding a row.
func (r *PostgresReactionRepository) UpsertReaction(reaction *models.Reaction) error {
	var existing models.Reaction
	err := r.db.Where("post_id = ? AND user_id = ?", reaction.PostID, reaction.UserID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.Create(reaction).Error
		}
		return err
	}
	existing.Kind = reaction.Kind
	if err := r.db.Save(&existing).Error; err != nil {
		return err
	}
	*reaction = existing
	return nil
}

func (r *PostgresReactionRepository) GetReaction(postID string, userID uint) (*models.Reaction, error) {
	var reaction models.Reaction
	if err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&reaction).Error; err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (r *PostgresReactionRepository) GetReactionsByPostID(postID string) ([]models.Reaction, error) {
	var reactions []models.Reaction
	if err := r.db.Where("post_id = ?", postID).Order("created_at asc").Find(&reactions).Error; err != nil {
		return nil, err
	}
	return reactions, nil
}

func (r *PostgresReactionRepository) DeleteReaction(postID string, userID uint) error {
	res := r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Reaction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteReactionsByPost removes the reactions of a deleted post
func (r *PostgresReactionRepository) DeleteReactionsByPost(postID string) error {
	return r.db.Where("post_id = ?", postID).Delete(&models.Reaction{}).Error
}
