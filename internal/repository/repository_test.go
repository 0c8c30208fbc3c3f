package repository

import (
	"fmt"
	"testing"
	"time"

	"microblog/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createPostAt(t *testing.T, db *gorm.DB, userID uint, body string, at time.Time) *models.Post {
	t.Helper()
	post := &models.Post{Body: body, UserID: userID, CreatedAt: at}
	require.NoError(t, db.Create(post).Error)
	return post
}
