package repository

import (
	"context"
	"errors"

	"waypost/internal/models"

	"gorm.io/gorm"
)

// FeedLimit caps the number of posts returned by the recency feed.
const FeedLimit = 50

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	WithTx(tx *gorm.DB) PostRepository
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	// GetWithCreator resolves the post and its owning user in a single
	// repository call, so ownership checks on delete need no second lookup.
	GetWithCreator(ctx context.Context, id uint) (*models.Post, error)
	ListNewest(ctx context.Context, limit int) ([]*models.Post, error)
	ListByCreator(ctx context.Context, creatorID uint) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) WithTx(tx *gorm.DB) PostRepository {
	return &postRepository{db: tx}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewStoreError(err)
	}
	return &post, nil
}

func (r *postRepository) GetWithCreator(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Creator").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewStoreError(err)
	}
	return &post, nil
}

func (r *postRepository) ListNewest(ctx context.Context, limit int) ([]*models.Post, error) {
	if limit <= 0 || limit > FeedLimit {
		limit = FeedLimit
	}
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByCreator(ctx context.Context, creatorID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}
