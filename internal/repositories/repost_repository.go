package repositories

import (
	"github.com/Ashitosh-Bhise/speakwave-server/internal/models"
	"gorm.io/gorm"
)

// RepostRepository defines the interface for repost data operations
type RepostRepository interface {
	CreateRepost(repost *models.Repost) error
	GetRepostsByUser(userID uint) ([]models.Repost, error)
	CountRepostsByPost(postID string) (int64, error)
	DeleteRepostsByPost(postID string) error
}

// PostgresRepostRepository implements RepostRepository for PostgreSQL
type PostgresRepostRepository struct {
	db *gorm.DB
}

// NewPostgresRepostRepository creates a new PostgresRepostRepository
func NewPostgresRepostRepository(db *gorm.DB) *PostgresRepostRepository {
	return &PostgresRepostRepository{db: db}
}

// CreateRepost appends a repost row inside a transaction. No dedup: the
// same user reposting the same post twice stores two rows.
func (r *PostgresRepostRepository) CreateRepost(repost *models.Repost) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(repost).Error
	})
}

// GetRepostsByUser retrieves a user's reposts in append order
func (r *PostgresRepostRepository) GetRepostsByUser(userID uint) ([]models.Repost, error) {
	var reposts []models.Repost
	err := r.db.Where("user_id = ?", userID).Order("created_at asc").Find(&reposts).Error
	return reposts, err
}

// CountRepostsByPost counts stored repost rows for a post
func (r *PostgresRepostRepository) CountRepostsByPost(postID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Repost{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// DeleteRepostsByPost removes the repost rows referencing a deleted post
func (r *PostgresRepostRepository) DeleteRepostsByPost(postID string) error {
	return r.db.Where("post_id = ?", postID).Delete(&models.Repost{}).Error
}
