// Package seed provides database seeding utilities for development and testing.
// Seeded posts and comments are created through the service layer so the
// denormalized back-reference lists stay consistent with the records.
package seed

import (
	"context"
	"fmt"
	"log"

	"waypost/internal/geocode"
	"waypost/internal/models"
	"waypost/internal/repository"
	"waypost/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers        int
	PostsPerUser    int
	CommentsPerPost int
	ShouldClean     bool
}

// fakeGeocoder resolves every address to plausible random coordinates so
// seeding never hits a real geocoding service.
type fakeGeocoder struct{}

func (fakeGeocoder) Resolve(_ context.Context, _ string) (geocode.Coordinates, error) {
	return geocode.Coordinates{
		Latitude:  gofakeit.Latitude(),
		Longitude: gofakeit.Longitude(),
	}, nil
}

// Run populates the database with demo users, posts with geocoded addresses
// and comments.
func Run(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 10
	}
	if opts.PostsPerUser <= 0 {
		opts.PostsPerUser = 3
	}
	if opts.CommentsPerPost < 0 {
		opts.CommentsPerPost = 0
	}

	if opts.ShouldClean {
		if err := clean(db); err != nil {
			return err
		}
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	atomic := repository.NewAtomic(db)
	postService := service.NewPostService(atomic, userRepo, postRepo, fakeGeocoder{})
	commentService := service.NewCommentService(atomic, commentRepo, postRepo, userRepo)

	// All demo accounts share one password, hashed once.
	hashed, err := bcrypt.GenerateFromPassword([]byte("Waypost-Demo-1!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user := &models.User{
			Username:   fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:      fmt.Sprintf("seed%d_%s", i, gofakeit.Email()),
			Password:   string(hashed),
			PostIDs:    models.IDList{},
			CommentIDs: models.IDList{},
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("seed user %d: %w", i, err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users", len(users))

	var posts []*models.Post
	for _, user := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			post, err := postService.CreatePost(ctx, service.CreatePostInput{
				CreatorID:   user.ID,
				Title:       gofakeit.Sentence(5),
				Description: gofakeit.Paragraph(1, 3, 5, "\n"),
				Address:     fmt.Sprintf("%s, %s", gofakeit.Street(), gofakeit.City()),
			})
			if err != nil {
				return fmt.Errorf("seed post for user %d: %w", user.ID, err)
			}
			posts = append(posts, post)
		}
	}
	log.Printf("Seeded %d posts", len(posts))

	comments := 0
	for _, post := range posts {
		for i := 0; i < opts.CommentsPerPost; i++ {
			commenter := users[gofakeit.Number(0, len(users)-1)]
			if _, err := commentService.CreateComment(ctx, service.CreateCommentInput{
				CreatorID: commenter.ID,
				PostID:    post.ID,
				Body:      gofakeit.Sentence(12),
			}); err != nil {
				return fmt.Errorf("seed comment on post %d: %w", post.ID, err)
			}
			comments++
		}
	}
	log.Printf("Seeded %d comments", comments)

	return nil
}

// clean truncates all seeded tables.
func clean(db *gorm.DB) error {
	for _, table := range []string{"comments", "posts", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clean table %s: %w", table, err)
		}
	}
	return nil
}
