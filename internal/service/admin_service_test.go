package service

import (
	"context"
	"testing"

	"microblog/internal/models"
	"microblog/internal/repository"
	"microblog/internal/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAdminDeleteUserRemovesOwnedData(t *testing.T) {
	db := newTestDB(t)
	indexer := newNaiveIndexer()
	hook := search.NewHook(indexer, newTestLogger())
	require.NoError(t, hook.Register(db))

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	followRepo := repository.NewFollowRepository(db)
	posts := NewPostService(db, postRepo, userRepo, hook, indexer)
	messages := NewMessageService(db, repository.NewMessageRepository(db),
		repository.NewNotificationRepository(db), userRepo)
	follows := NewFollowService(userRepo, followRepo)
	admin := NewAdminService(db, userRepo, postRepo, hook)

	alice := createTestUser(t, db, "alice")
	createTestUser(t, db, "bob")
	ctx := context.Background()

	_, err := posts.CreatePost(ctx, alice.ID, "goodbye world")
	require.NoError(t, err)
	_, err = posts.CreatePost(ctx, alice.ID, "goodbye again")
	require.NoError(t, err)
	_, err = follows.Follow(alice.ID, "bob")
	require.NoError(t, err)
	_, err = messages.Send(alice.ID, "bob", "see you")
	require.NoError(t, err)

	require.NoError(t, admin.DeleteUser(ctx, alice.ID))

	_, err = userRepo.GetByID(alice.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	count, err := postRepo.CountByUserID(alice.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	// The posts left the search index at the same commit.
	ids, err := indexer.Search(ctx, "goodbye")
	require.NoError(t, err)
	assert.Empty(t, ids)

	following, err := followRepo.FollowingCount(alice.ID)
	require.NoError(t, err)
	assert.Zero(t, following)

	var messageCount int64
	require.NoError(t, db.Model(&models.Message{}).
		Where("sender_id = ?", alice.ID).Count(&messageCount).Error)
	assert.Zero(t, messageCount)
}

func TestAdminDeleteUnknownUser(t *testing.T) {
	db := newTestDB(t)
	indexer := newNaiveIndexer()
	hook := search.NewHook(indexer, newTestLogger())
	require.NoError(t, hook.Register(db))

	admin := NewAdminService(db, repository.NewUserRepository(db),
		repository.NewPostRepository(db), hook)

	err := admin.DeleteUser(context.Background(), 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
