// Package service provides application business logic. Every mutating
// operation runs its writes inside a single store transaction so the
// canonical records and the denormalized back-reference lists stay
// consistent under partial failure.
package service

import (
	"context"
	"errors"

	"waypost/internal/geocode"
	"waypost/internal/models"
	"waypost/internal/observability"
	"waypost/internal/repository"

	"gorm.io/gorm"
)

// PostService orchestrates post use cases: ownership checks, geocoding and
// the transactional maintenance of the creator's post id list.
type PostService struct {
	atomic   repository.Atomic
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	geocoder geocode.Geocoder
}

type CreatePostInput struct {
	CreatorID   uint
	Title       string
	Description string
	Address     string
	ImageRef    string
}

type EditPostInput struct {
	PostID      uint
	RequesterID uint
	Title       string
	Description string
	Address     string
}

type DeletePostInput struct {
	PostID      uint
	RequesterID uint
}

func NewPostService(
	atomic repository.Atomic,
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	geocoder geocode.Geocoder,
) *PostService {
	return &PostService{
		atomic:   atomic,
		userRepo: userRepo,
		postRepo: postRepo,
		geocoder: geocoder,
	}
}

const (
	maxTitleLen       = 300
	maxDescriptionLen = 50000
	maxAddressLen     = 500
)

func validatePostFields(title, description, address string) error {
	if title == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 300 characters)")
	}
	if len(description) > maxDescriptionLen {
		return models.NewValidationError("Description too long (max 50000 characters)")
	}
	if address == "" {
		return models.NewValidationError("Address is required")
	}
	if len(address) > maxAddressLen {
		return models.NewValidationError("Address too long (max 500 characters)")
	}
	return nil
}

// CreatePost geocodes the address, persists the new post and appends its id
// to the creator's post list in one transaction. On any failure nothing is
// written.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validatePostFields(in.Title, in.Description, in.Address); err != nil {
		return nil, err
	}

	// Existence check strictly before any write.
	creator, err := s.userRepo.GetByID(ctx, in.CreatorID)
	if err != nil {
		return nil, err
	}

	coords, err := s.geocoder.Resolve(ctx, in.Address)
	if err != nil {
		return nil, models.NewGeocodeError(in.Address, err)
	}

	post := &models.Post{
		Title:       in.Title,
		Description: in.Description,
		Address:     in.Address,
		Latitude:    coords.Latitude,
		Longitude:   coords.Longitude,
		ImageRef:    in.ImageRef,
		CreatorID:   creator.ID,
		CommentIDs:  models.IDList{},
	}

	err = s.atomic.Transact(ctx, func(tx *gorm.DB) error {
		if err := s.postRepo.WithTx(tx).Create(ctx, post); err != nil {
			return err
		}
		// Re-read the owner on the transaction handle so the id list append
		// is based on the isolated snapshot, not the pre-transaction read.
		txUsers := s.userRepo.WithTx(tx)
		owner, err := txUsers.GetByID(ctx, creator.ID)
		if err != nil {
			return err
		}
		owner.PostIDs = owner.PostIDs.Append(post.ID)
		return txUsers.Update(ctx, owner)
	})
	recordTransaction("create_post", err)
	if err != nil {
		return nil, asAppError(err)
	}

	return post, nil
}

// EditPost updates title, description and address of an owned post. The
// address is only re-geocoded when it changed; a geocode failure leaves the
// post entirely unmodified, title and description included.
func (s *PostService) EditPost(ctx context.Context, in EditPostInput) (*models.Post, error) {
	if err := validatePostFields(in.Title, in.Description, in.Address); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.CreatorID != in.RequesterID {
		return nil, models.NewUnauthorizedError("You can only edit your own posts")
	}

	address, latitude, longitude := post.Address, post.Latitude, post.Longitude
	if in.Address != post.Address {
		coords, err := s.geocoder.Resolve(ctx, in.Address)
		if err != nil {
			return nil, models.NewGeocodeError(in.Address, err)
		}
		address = in.Address
		latitude = coords.Latitude
		longitude = coords.Longitude
	}

	var updated *models.Post
	err = s.atomic.Transact(ctx, func(tx *gorm.DB) error {
		txPosts := s.postRepo.WithTx(tx)
		// Re-read on the transaction handle and apply only the edited fields,
		// so a comment id appended to the post between the gating read and
		// this write is not overwritten.
		current, err := txPosts.GetByID(ctx, in.PostID)
		if err != nil {
			return err
		}
		current.Title = in.Title
		current.Description = in.Description
		current.Address = address
		current.Latitude = latitude
		current.Longitude = longitude
		if err := txPosts.Update(ctx, current); err != nil {
			return err
		}
		updated = current
		return nil
	})
	recordTransaction("edit_post", err)
	if err != nil {
		return nil, asAppError(err)
	}
	return updated, nil
}

// DeletePost removes an owned post and its id from the owner's post list in
// one transaction. The owning user is resolved together with the post in a
// single fetch. Comments on the post are not cascade-deleted.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetWithCreator(ctx, in.PostID)
	if err != nil {
		return err
	}
	if post.Creator == nil {
		return models.NewNotFoundError("User", post.CreatorID)
	}
	if post.Creator.ID != in.RequesterID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}

	err = s.atomic.Transact(ctx, func(tx *gorm.DB) error {
		if err := s.postRepo.WithTx(tx).Delete(ctx, post.ID); err != nil {
			return err
		}
		// The id list mutation still re-reads the owner on the transaction
		// handle; the preloaded user only anchors the ownership check.
		txUsers := s.userRepo.WithTx(tx)
		owner, err := txUsers.GetByID(ctx, post.Creator.ID)
		if err != nil {
			return err
		}
		owner.PostIDs = owner.PostIDs.Remove(post.ID)
		return txUsers.Update(ctx, owner)
	})
	recordTransaction("delete_post", err)
	if err != nil {
		return asAppError(err)
	}
	return nil
}

// GetPost returns a single post by id.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// GetFeed returns the most recent posts, newest first.
func (s *PostService) GetFeed(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.ListNewest(ctx, repository.FeedLimit)
}

// GetPostsByUser returns the user's posts, newest first. An empty result is
// reported as not found.
func (s *PostService) GetPostsByUser(ctx context.Context, creatorID uint) ([]*models.Post, error) {
	posts, err := s.postRepo.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, models.NewNotFoundError("Posts for user", creatorID)
	}
	return posts, nil
}

// asAppError passes AppError values through and wraps anything else (commit
// failures, driver errors) as a store error.
func asAppError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return models.NewStoreError(err)
}

// recordTransaction counts a transaction outcome for the operation.
func recordTransaction(operation string, err error) {
	result := "committed"
	if err != nil {
		result = "aborted"
	}
	observability.TransactionsTotal.WithLabelValues(operation, result).Inc()
}
