package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"linkup/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendFriendRequestEndpoint(t *testing.T) {
	db := setupHandlerTest(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	w, c := newAuthedContext(t, alice.ID, "POST", "/api/friendRequest/send",
		gin.H{"receiverId": bob.ID})
	SendFriendRequest(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.FriendRequest{}).
		Where("sender_id = ? AND receiver_id = ?", alice.ID, bob.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// A duplicate is a conflict, not a new request.
	w, c = newAuthedContext(t, alice.ID, "POST", "/api/friendRequest/send",
		gin.H{"receiverId": bob.ID})
	SendFriendRequest(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSendFriendRequestToUnknownUser(t *testing.T) {
	db := setupHandlerTest(t)
	alice := seedUser(t, db, "alice")

	w, c := newAuthedContext(t, alice.ID, "POST", "/api/friendRequest/send",
		gin.H{"receiverId": alice.ID + 50})
	SendFriendRequest(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAcceptFriendRequestEndpoint(t *testing.T) {
	db := setupHandlerTest(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	_, c := newAuthedContext(t, alice.ID, "POST", "/api/friendRequest/send",
		gin.H{"receiverId": bob.ID})
	SendFriendRequest(c)

	w, c := newAuthedContext(t, bob.ID, "PATCH", "/api/friendRequest/accept",
		gin.H{"senderId": alice.ID})
	AcceptFriendRequest(c)
	assert.Equal(t, http.StatusOK, w.Code)

	w, c = newAuthedContext(t, alice.ID, "GET", "/api/friendRequest/check?userId="+itoa(bob.ID), nil)
	CheckRelationship(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var rel struct {
		IsFriend bool `json:"isFriend"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rel))
	assert.True(t, rel.IsFriend)
}

func TestAcceptFriendRequestMissing(t *testing.T) {
	db := setupHandlerTest(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	w, c := newAuthedContext(t, bob.ID, "PATCH", "/api/friendRequest/accept",
		gin.H{"senderId": alice.ID})
	AcceptFriendRequest(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRejectFriendRequestEndpoint(t *testing.T) {
	db := setupHandlerTest(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	_, c := newAuthedContext(t, alice.ID, "POST", "/api/friendRequest/send",
		gin.H{"receiverId": bob.ID})
	SendFriendRequest(c)

	w, c := newAuthedContext(t, bob.ID, "DELETE", "/api/friendRequest/reject?senderId="+itoa(alice.ID), nil)
	RejectFriendRequest(c)
	assert.Equal(t, http.StatusOK, w.Code)

	// Rejecting leaves no friendship behind.
	var count int64
	require.NoError(t, db.Model(&models.Friendship{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteFriendEndpoint(t *testing.T) {
	db := setupHandlerTest(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	a, b := models.CanonicalPair(alice.ID, bob.ID)
	require.NoError(t, db.Create(&models.Friendship{UserAID: a, UserBID: b}).Error)

	w, c := newAuthedContext(t, alice.ID, "DELETE", "/api/friendRequest/delete?targetId="+itoa(bob.ID), nil)
	DeleteFriend(c)
	assert.Equal(t, http.StatusOK, w.Code)

	// Removing again is a plain 400: they are not friends anymore.
	w, c = newAuthedContext(t, alice.ID, "DELETE", "/api/friendRequest/delete?targetId="+itoa(bob.ID), nil)
	DeleteFriend(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckRelationshipRequiresUserID(t *testing.T) {
	db := setupHandlerTest(t)
	alice := seedUser(t, db, "alice")

	w, c := newAuthedContext(t, alice.ID, "GET", "/api/friendRequest/check", nil)
	CheckRelationship(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
