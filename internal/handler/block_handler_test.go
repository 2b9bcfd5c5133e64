package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockUnblockFlow(t *testing.T) {
	db := setupHandlerTest(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	w, c := newAuthedContext(t, alice.ID, "POST", "/api/blockOtherUser/block",
		gin.H{"targetUserId": bob.ID})
	BlockUser(c)
	assert.Equal(t, http.StatusOK, w.Code)

	// Blocking twice is a conflict.
	w, c = newAuthedContext(t, alice.ID, "POST", "/api/blockOtherUser/block",
		gin.H{"targetUserId": bob.ID})
	BlockUser(c)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, c = newAuthedContext(t, alice.ID, "GET", "/api/blockOtherUser/list", nil)
	ListBlockedUsers(c)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Blocked []PublicUserResponse `json:"blocked"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Blocked, 1)
	assert.Equal(t, "bob", response.Blocked[0].Username)

	w, c = newAuthedContext(t, alice.ID, "DELETE", "/api/blockOtherUser/unblock?targetId="+itoa(bob.ID), nil)
	UnblockUser(c)
	assert.Equal(t, http.StatusOK, w.Code)

	w, c = newAuthedContext(t, alice.ID, "GET", "/api/blockOtherUser/list", nil)
	ListBlockedUsers(c)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Empty(t, response.Blocked)
}

func TestBlockSelfEndpoint(t *testing.T) {
	db := setupHandlerTest(t)
	alice := seedUser(t, db, "alice")

	w, c := newAuthedContext(t, alice.ID, "POST", "/api/blockOtherUser/block",
		gin.H{"targetUserId": alice.ID})
	BlockUser(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
