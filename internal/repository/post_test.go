package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"waypost/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func seedRepoUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:   username,
		Email:      username + "@example.com",
		Password:   "pw",
		PostIDs:    models.IDList{},
		CommentIDs: models.IDList{},
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestPostRepository_ListNewest_OrderAndLimit(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	user := seedRepoUser(t, db, "lister")
	repo := NewPostRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		post := &models.Post{
			Title:      fmt.Sprintf("post-%d", i),
			Address:    "Somewhere 1",
			CreatorID:  user.ID,
			CommentIDs: models.IDList{},
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, db.Create(post).Error)
	}

	posts, err := repo.ListNewest(ctx, 2)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "post-2", posts[0].Title)
	assert.Equal(t, "post-1", posts[1].Title)
}

func TestPostRepository_ListNewest_CapsLimit(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	user := seedRepoUser(t, db, "capped")
	repo := NewPostRepository(db)

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < FeedLimit+5; i++ {
		post := &models.Post{
			Title:      fmt.Sprintf("post-%d", i),
			Address:    "Somewhere 1",
			CreatorID:  user.ID,
			CommentIDs: models.IDList{},
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(post).Error)
	}

	// limit 0 and oversized limits both fall back to the feed cap
	posts, err := repo.ListNewest(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, posts, FeedLimit)

	posts, err = repo.ListNewest(context.Background(), FeedLimit+100)
	require.NoError(t, err)
	assert.Len(t, posts, FeedLimit)
}

func TestPostRepository_ListByCreator(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	alice := seedRepoUser(t, db, "alice")
	bob := seedRepoUser(t, db, "bob")
	repo := NewPostRepository(db)

	for i, owner := range []*models.User{alice, alice, bob} {
		post := &models.Post{
			Title:      fmt.Sprintf("post-%d", i),
			Address:    "Somewhere 1",
			CreatorID:  owner.ID,
			CommentIDs: models.IDList{},
		}
		require.NoError(t, db.Create(post).Error)
	}

	posts, err := repo.ListByCreator(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	posts, err = repo.ListByCreator(context.Background(), 9999)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostRepository_GetWithCreator(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	user := seedRepoUser(t, db, "creator")
	repo := NewPostRepository(db)

	post := &models.Post{
		Title:      "with creator",
		Address:    "Somewhere 1",
		CreatorID:  user.ID,
		CommentIDs: models.IDList{},
	}
	require.NoError(t, db.Create(post).Error)

	got, err := repo.GetWithCreator(context.Background(), post.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Creator)
	assert.Equal(t, user.ID, got.Creator.ID)
	assert.Equal(t, "creator", got.Creator.Username)
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(context.Background(), 404)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestPostRepository_Delete(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	user := seedRepoUser(t, db, "remover")
	repo := NewPostRepository(db)

	post := &models.Post{
		Title:      "doomed",
		Address:    "Somewhere 1",
		CreatorID:  user.ID,
		CommentIDs: models.IDList{},
	}
	require.NoError(t, db.Create(post).Error)

	require.NoError(t, repo.Delete(context.Background(), post.ID))

	_, err := repo.GetByID(context.Background(), post.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestPostRepository_IDListRoundTrip(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	user := seedRepoUser(t, db, "roundtrip")
	repo := NewPostRepository(db)

	post := &models.Post{
		Title:      "listed",
		Address:    "Somewhere 1",
		CreatorID:  user.ID,
		CommentIDs: models.IDList{4, 8, 15},
	}
	require.NoError(t, repo.Create(context.Background(), post))

	got, err := repo.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IDList{4, 8, 15}, got.CommentIDs)
}
