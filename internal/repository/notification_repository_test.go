package repository

import (
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"microblog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestAddSupersedesSameName(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	repo := NewNotificationRepository(db)

	first, err := repo.Add(alice.ID, "unread_message_count", models.JSONMap{"count": 1})
	require.NoError(t, err)
	second, err := repo.Add(alice.ID, "unread_message_count", models.JSONMap{"count": 2})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, second.Timestamp, first.Timestamp)

	notifications, err := repo.ListByUserID(alice.ID, 0)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, float64(2), notifications[0].Payload["count"])
}

func TestAddKeepsDistinctNames(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	repo := NewNotificationRepository(db)

	_, err := repo.Add(alice.ID, "unread_message_count", models.JSONMap{"count": 3})
	require.NoError(t, err)
	_, err = repo.Add(alice.ID, "job_progress", models.JSONMap{"progress": 50})
	require.NoError(t, err)

	notifications, err := repo.ListByUserID(alice.ID, 0)
	require.NoError(t, err)
	assert.Len(t, notifications, 2)
}

func TestAddIsScopedPerUser(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	repo := NewNotificationRepository(db)

	_, err := repo.Add(alice.ID, "unread_message_count", models.JSONMap{"count": 1})
	require.NoError(t, err)
	_, err = repo.Add(bob.ID, "unread_message_count", models.JSONMap{"count": 4})
	require.NoError(t, err)

	notifications, err := repo.ListByUserID(alice.ID, 0)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, float64(1), notifications[0].Payload["count"])
}

func TestConcurrentAddKeepsSingleLiveNotification(t *testing.T) {
	// File-backed database so concurrent writers share one store the
	// way they do in production.
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "notifications.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	alice := createUser(t, db, "alice")
	repo := NewNotificationRepository(db)

	var succeeded atomic.Int64
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				if _, err := repo.Add(alice.ID, "unread_message_count", models.JSONMap{"count": i}); err == nil {
					succeeded.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	require.Positive(t, succeeded.Load())

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("user_id = ? AND name = ?", alice.ID, "unread_message_count").
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestListByUserIDSinceFilter(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	repo := NewNotificationRepository(db)

	old, err := repo.Add(alice.ID, "job_progress", models.JSONMap{"progress": 10})
	require.NoError(t, err)
	_, err = repo.Add(alice.ID, "unread_message_count", models.JSONMap{"count": 1})
	require.NoError(t, err)

	notifications, err := repo.ListByUserID(alice.ID, old.Timestamp)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "unread_message_count", notifications[0].Name)
}
