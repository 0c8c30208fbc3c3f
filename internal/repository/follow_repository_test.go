package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	repo := NewFollowRepository(db)

	require.NoError(t, repo.Follow(alice.ID, bob.ID))
	require.NoError(t, repo.Follow(alice.ID, bob.ID))

	count, err := repo.FollowerCount(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUnfollowMissingEdgeIsNoOp(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	repo := NewFollowRepository(db)

	require.NoError(t, repo.Unfollow(alice.ID, bob.ID))

	following, err := repo.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowLifecycle(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	repo := NewFollowRepository(db)

	following, err := repo.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)

	require.NoError(t, repo.Follow(alice.ID, bob.ID))
	following, err = repo.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// The edge is directed.
	reverse, err := repo.IsFollowing(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, reverse)

	require.NoError(t, repo.Unfollow(alice.ID, bob.ID))
	following, err = repo.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowCounts(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	repo := NewFollowRepository(db)

	require.NoError(t, repo.Follow(alice.ID, carol.ID))
	require.NoError(t, repo.Follow(bob.ID, carol.ID))
	require.NoError(t, repo.Follow(carol.ID, alice.ID))

	followers, err := repo.FollowerCount(carol.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), followers)

	following, err := repo.FollowingCount(carol.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), following)
}
