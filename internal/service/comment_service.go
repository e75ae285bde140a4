package service

import (
	"context"

	"waypost/internal/models"
	"waypost/internal/repository"

	"gorm.io/gorm"
)

// CommentService orchestrates comment creation: both referenced entities are
// checked before any write, then the comment record and both back-reference
// lists (creator's and post's) commit as one unit.
type CommentService struct {
	atomic      repository.Atomic
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

type CreateCommentInput struct {
	CreatorID uint
	PostID    uint
	Body      string
}

func NewCommentService(
	atomic repository.Atomic,
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *CommentService {
	return &CommentService{
		atomic:      atomic,
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

const maxCommentLen = 10000

// CreateComment persists the comment and fans its id out to the creator's
// and the post's comment lists in a single transaction.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.Body == "" {
		return nil, models.NewValidationError("Body is required")
	}
	if len(in.Body) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	// Both existence checks happen strictly before the write transaction.
	creator, err := s.userRepo.GetByID(ctx, in.CreatorID)
	if err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Body:      in.Body,
		CreatorID: creator.ID,
		PostID:    post.ID,
	}

	err = s.atomic.Transact(ctx, func(tx *gorm.DB) error {
		if err := s.commentRepo.WithTx(tx).Create(ctx, comment); err != nil {
			return err
		}

		txUsers := s.userRepo.WithTx(tx)
		owner, err := txUsers.GetByID(ctx, creator.ID)
		if err != nil {
			return err
		}
		owner.CommentIDs = owner.CommentIDs.Append(comment.ID)
		if err := txUsers.Update(ctx, owner); err != nil {
			return err
		}

		txPosts := s.postRepo.WithTx(tx)
		target, err := txPosts.GetByID(ctx, post.ID)
		if err != nil {
			return err
		}
		target.CommentIDs = target.CommentIDs.Append(comment.ID)
		return txPosts.Update(ctx, target)
	})
	recordTransaction("create_comment", err)
	if err != nil {
		return nil, asAppError(err)
	}

	return comment, nil
}

// GetComments returns the post's comments oldest-first. A post with no
// comments yields an empty slice, not an error.
func (s *CommentService) GetComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return comments, nil
}
