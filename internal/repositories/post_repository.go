package repositories

import (
	"network/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetPostsByUserID(userID uint) ([]models.Post, error)
	GetAllPosts() ([]models.Post, error)
	GetFollowingPosts(viewerID uint) ([]models.Post, error)
	UpdatePostBody(id uint, body string) error
	DeletePost(id uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// withAssociations preloads everything serialization needs: the author,
// the comments in insertion order, and each comment's author.
func (r *PostgresPostRepository) withAssociations() *gorm.DB {
	return r.db.
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Comments.User")
}

// CreatePost creates a new post (or comment) in PostgreSQL
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post by ID from PostgreSQL
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.withAssociations().First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostsByUserID retrieves the posts authored by one user, newest first
func (r *PostgresPostRepository) GetPostsByUserID(userID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.withAssociations().
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	return posts, err
}

// GetAllPosts retrieves every post in the system, newest first.
// Comments share the posts table and are not filtered out.
func (r *PostgresPostRepository) GetAllPosts() ([]models.Post, error) {
	var posts []models.Post
	err := r.withAssociations().
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	return posts, err
}

// GetFollowingPosts retrieves posts authored by users the viewer follows,
// newest first. The viewer's own posts are never included.
func (r *PostgresPostRepository) GetFollowingPosts(viewerID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.withAssociations().
		Where("user_id IN (?)",
			r.db.Model(&models.Follow{}).Select("following_id").Where("follower_id = ?", viewerID),
		).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	return posts, err
}

// UpdatePostBody updates only the body of a post. The creation timestamp
// is never touched.
func (r *PostgresPostRepository) UpdatePostBody(id uint, body string) error {
	return r.db.Model(&models.Post{}).Where("id = ?", id).Update("body", body).Error
}

// DeletePost deletes a post, its comments, and every like on any of them,
// in one transaction.
func (r *PostgresPostRepository) DeletePost(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var commentIDs []uint
		if err := tx.Model(&models.Post{}).Where("parent_id = ?", id).Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		ids := append(commentIDs, id)
		if err := tx.Where("post_id IN (?)", ids).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("parent_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}
