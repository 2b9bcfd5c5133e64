package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockIsDirectional(t *testing.T) {
	db := newTestDB(t)
	_, _, _, blocks, _ := newServices(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, blocks.Block(alice.ID, bob.ID))

	blocked, err := blocks.IsBlocked(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, blocked)

	// Bob has not blocked Alice.
	blocked, err = blocks.IsBlocked(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestBlockSelf(t *testing.T) {
	db := newTestDB(t)
	_, _, _, blocks, _ := newServices(db)
	alice := createTestUser(t, db, "alice")

	assert.ErrorIs(t, blocks.Block(alice.ID, alice.ID), ErrSelfReference)
}

func TestBlockTwice(t *testing.T) {
	db := newTestDB(t)
	_, _, _, blocks, _ := newServices(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, blocks.Block(alice.ID, bob.ID))
	assert.ErrorIs(t, blocks.Block(alice.ID, bob.ID), ErrAlreadyBlocked)
}

func TestBlockDoesNotCascade(t *testing.T) {
	db := newTestDB(t)
	_, _, friendships, blocks, conversations := newServices(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	_, err := friendships.SendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, friendships.AcceptRequest(bob.ID, alice.ID))

	chatLog, err := conversations.FindOrCreate(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = conversations.AppendMessage(chatLog.ID, bob.ID, "before the block", "")
	require.NoError(t, err)

	require.NoError(t, blocks.Block(alice.ID, bob.ID))

	// Friendship and conversation history survive the block.
	friends, err := friendships.AreFriends(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, friends)

	messages, err := conversations.ListMessages(chatLog.ID)
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}

func TestUnblockIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	_, _, _, blocks, _ := newServices(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, blocks.Block(alice.ID, bob.ID))
	require.NoError(t, blocks.Unblock(alice.ID, bob.ID))
	require.NoError(t, blocks.Unblock(alice.ID, bob.ID))

	blocked, err := blocks.IsBlocked(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestListBlocked(t *testing.T) {
	db := newTestDB(t)
	_, _, _, blocks, _ := newServices(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	require.NoError(t, blocks.Block(alice.ID, bob.ID))
	require.NoError(t, blocks.Block(alice.ID, carol.ID))

	list, err := blocks.ListBlocked(alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.ElementsMatch(t,
		[]string{"bob", "carol"},
		[]string{list[0].Profile.Username, list[1].Profile.Username})

	list, err = blocks.ListBlocked(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
