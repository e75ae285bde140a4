package repository

import (
	"context"
	"errors"
	"testing"

	"waypost/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAtomic_CommitsOnSuccess(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	user := seedRepoUser(t, db, "committer")
	atomic := NewAtomic(db)

	err := atomic.Transact(context.Background(), func(tx *gorm.DB) error {
		return NewPostRepository(db).WithTx(tx).Create(context.Background(), &models.Post{
			Title: "kept", Address: "Somewhere 1", CreatorID: user.ID, CommentIDs: models.IDList{},
		})
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAtomic_RollsBackOnError(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	user := seedRepoUser(t, db, "aborter")
	atomic := NewAtomic(db)

	failure := errors.New("abort")
	err := atomic.Transact(context.Background(), func(tx *gorm.DB) error {
		if err := NewPostRepository(db).WithTx(tx).Create(context.Background(), &models.Post{
			Title: "discarded", Address: "Somewhere 1", CreatorID: user.ID, CommentIDs: models.IDList{},
		}); err != nil {
			return err
		}
		return failure
	})
	assert.ErrorIs(t, err, failure)

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Zero(t, count, "the write inside the aborted transaction must not persist")
}
