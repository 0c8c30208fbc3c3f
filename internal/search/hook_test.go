package search

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"microblog/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// memIndexer records index calls so tests can observe batching.
type memIndexer struct {
	mu      sync.Mutex
	batches [][]models.Post
	removed [][]uint
}

func (m *memIndexer) Index(ctx context.Context, posts []models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches = append(m.batches, posts)
	return nil
}

func (m *memIndexer) Remove(ctx context.Context, ids []uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = append(m.removed, ids)
	return nil
}

func (m *memIndexer) Search(ctx context.Context, query string) ([]uint, error) {
	return nil, nil
}

func newHookDB(t *testing.T) (*gorm.DB, *memIndexer, *Hook) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	l := logrus.New()
	l.SetOutput(io.Discard)

	ix := &memIndexer{}
	hook := NewHook(ix, l)
	require.NoError(t, hook.Register(db))
	return db, ix, hook
}

func createIndexUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestTransactionFlushesBatchAfterCommit(t *testing.T) {
	db, ix, hook := newHookDB(t)
	user := createIndexUser(t, db)
	ctx := context.Background()

	err := hook.Transaction(ctx, db, func(tx *gorm.DB) error {
		if err := tx.Create(&models.Post{Body: "first", UserID: user.ID}).Error; err != nil {
			return err
		}
		// Nothing may reach the indexer before commit.
		ix.mu.Lock()
		pending := len(ix.batches)
		ix.mu.Unlock()
		assert.Zero(t, pending)
		return tx.Create(&models.Post{Body: "second", UserID: user.ID}).Error
	})
	require.NoError(t, err)

	require.Len(t, ix.batches, 1)
	assert.Len(t, ix.batches[0], 2)
}

func TestTransactionRollbackFlushesNothing(t *testing.T) {
	db, ix, hook := newHookDB(t)
	user := createIndexUser(t, db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := hook.Transaction(ctx, db, func(tx *gorm.DB) error {
		if err := tx.Create(&models.Post{Body: "doomed", UserID: user.ID}).Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, ix.batches)
}

func TestTransactionDeduplicatesSamePost(t *testing.T) {
	db, ix, hook := newHookDB(t)
	user := createIndexUser(t, db)
	ctx := context.Background()

	post := &models.Post{Body: "original", UserID: user.ID}
	err := hook.Transaction(ctx, db, func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		post.Body = "edited"
		return tx.Save(post).Error
	})
	require.NoError(t, err)

	require.Len(t, ix.batches, 1)
	require.Len(t, ix.batches[0], 1)
	assert.Equal(t, "edited", ix.batches[0][0].Body)
}

func TestDeleteCollectsRemoval(t *testing.T) {
	db, ix, hook := newHookDB(t)
	user := createIndexUser(t, db)
	ctx := context.Background()

	post := &models.Post{Body: "to delete", UserID: user.ID}
	require.NoError(t, hook.Transaction(ctx, db, func(tx *gorm.DB) error {
		return tx.Create(post).Error
	}))

	require.NoError(t, hook.Transaction(ctx, db, func(tx *gorm.DB) error {
		return tx.Delete(post).Error
	}))

	require.Len(t, ix.removed, 1)
	assert.Equal(t, []uint{post.ID}, ix.removed[0])
}

func TestMutationOutsideTransactionFlushesImmediately(t *testing.T) {
	db, ix, _ := newHookDB(t)
	user := createIndexUser(t, db)

	require.NoError(t, db.Create(&models.Post{Body: "direct", UserID: user.ID}).Error)

	require.Len(t, ix.batches, 1)
	require.Len(t, ix.batches[0], 1)
	assert.Equal(t, "direct", ix.batches[0][0].Body)
}
