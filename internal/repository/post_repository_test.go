package repository

import (
	"testing"
	"time"

	"microblog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// feedFixture builds four users with one post each and a small follow
// graph: alice follows bob and dave, bob follows carol, carol follows
// dave.
type feedFixture struct {
	alice, bob, carol, dave *models.User
}

func newFeedFixture(t *testing.T, db *gorm.DB) *feedFixture {
	t.Helper()
	f := &feedFixture{
		alice: createUser(t, db, "alice"),
		bob:   createUser(t, db, "bob"),
		carol: createUser(t, db, "carol"),
		dave:  createUser(t, db, "dave"),
	}

	base := time.Now().Add(-time.Hour)
	createPostAt(t, db, f.alice.ID, "post from alice", base.Add(1*time.Minute))
	createPostAt(t, db, f.bob.ID, "post from bob", base.Add(4*time.Minute))
	createPostAt(t, db, f.carol.ID, "post from carol", base.Add(3*time.Minute))
	createPostAt(t, db, f.dave.ID, "post from dave", base.Add(2*time.Minute))

	follows := NewFollowRepository(db)
	require.NoError(t, follows.Follow(f.alice.ID, f.bob.ID))
	require.NoError(t, follows.Follow(f.alice.ID, f.dave.ID))
	require.NoError(t, follows.Follow(f.bob.ID, f.carol.ID))
	require.NoError(t, follows.Follow(f.carol.ID, f.dave.ID))
	return f
}

func bodies(posts []models.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Body
	}
	return out
}

func TestFollowedFeed(t *testing.T) {
	db := newTestDB(t)
	f := newFeedFixture(t, db)
	repo := NewPostRepository(db)

	tests := []struct {
		name   string
		userID uint
		want   []string
	}{
		{"alice sees own, bob and dave", f.alice.ID, []string{"post from bob", "post from dave", "post from alice"}},
		{"bob sees own and carol", f.bob.ID, []string{"post from bob", "post from carol"}},
		{"carol sees own and dave", f.carol.ID, []string{"post from carol", "post from dave"}},
		{"dave sees only own", f.dave.ID, []string{"post from dave"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, total, err := repo.FollowedFeed(tt.userID, 0, 25)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), total)
			assert.Equal(t, tt.want, bodies(posts))
		})
	}
}

func TestFollowedFeedEmptyForNewUser(t *testing.T) {
	db := newTestDB(t)
	newFeedFixture(t, db)
	loner := createUser(t, db, "loner")

	posts, total, err := NewPostRepository(db).FollowedFeed(loner.ID, 0, 25)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, posts)
}

func TestFollowedFeedIncludesAuthorPreload(t *testing.T) {
	db := newTestDB(t)
	f := newFeedFixture(t, db)

	posts, _, err := NewPostRepository(db).FollowedFeed(f.dave.ID, 0, 25)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "dave", posts[0].User.Username)
}

func TestOwnFeed(t *testing.T) {
	db := newTestDB(t)
	f := newFeedFixture(t, db)
	repo := NewPostRepository(db)

	base := time.Now()
	createPostAt(t, db, f.bob.ID, "second post from bob", base)

	posts, total, err := repo.OwnFeed(f.bob.ID, 0, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, []string{"second post from bob", "post from bob"}, bodies(posts))
}

func TestGlobalFeedPagination(t *testing.T) {
	db := newTestDB(t)
	newFeedFixture(t, db)
	repo := NewPostRepository(db)

	page1, total, err := repo.GlobalFeed(0, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Equal(t, []string{"post from bob", "post from carol", "post from dave"}, bodies(page1))

	page2, total, err := repo.GlobalFeed(3, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Equal(t, []string{"post from alice"}, bodies(page2))

	// Out-of-range pages resolve to an empty result, not an error.
	page3, total, err := repo.GlobalFeed(6, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Empty(t, page3)
}

func TestListByUserAscending(t *testing.T) {
	db := newTestDB(t)
	f := newFeedFixture(t, db)

	base := time.Now()
	createPostAt(t, db, f.alice.ID, "later post from alice", base)

	posts, err := NewPostRepository(db).ListByUserAscending(f.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"post from alice", "later post from alice"}, bodies(posts))
}

func TestGetByIDs(t *testing.T) {
	db := newTestDB(t)
	newFeedFixture(t, db)
	repo := NewPostRepository(db)

	all, _, err := repo.GlobalFeed(0, 25)
	require.NoError(t, err)
	ids := []uint{all[0].ID, all[2].ID}

	posts, err := repo.GetByIDs(ids)
	require.NoError(t, err)
	assert.Equal(t, []string{all[0].Body, all[2].Body}, bodies(posts))

	empty, err := repo.GetByIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
