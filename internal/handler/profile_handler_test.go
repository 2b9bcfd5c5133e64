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

func TestGetProfileEndpoint(t *testing.T) {
	db := setupHandlerTest(t)
	alice := seedUser(t, db, "alice")

	w, c := newAuthedContext(t, alice.ID, "GET", "/api/userProfile/"+itoa(alice.ID), nil)
	c.Params = gin.Params{{Key: "id", Value: itoa(alice.ID)}}
	GetProfile(c)
	require.Equal(t, http.StatusOK, w.Code)

	var profile ProfileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, alice.ID, profile.UserID)
	assert.Equal(t, "alice", profile.Username)

	w, c = newAuthedContext(t, alice.ID, "GET", "/api/userProfile/999", nil)
	c.Params = gin.Params{{Key: "id", Value: "999"}}
	GetProfile(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateProfileEndpoint(t *testing.T) {
	db := setupHandlerTest(t)
	alice := seedUser(t, db, "alice")

	w, c := newAuthedContext(t, alice.ID, "PUT", "/api/userProfile/updateProfile",
		gin.H{"firstName": "Alicia", "gender": "female"})
	UpdateProfile(c)
	require.Equal(t, http.StatusOK, w.Code)

	var profile ProfileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "Alicia", profile.FirstName)
	assert.Equal(t, "female", profile.Gender)

	// Untouched fields keep their values.
	assert.Equal(t, "alice", profile.Username)
}

func TestUpdateProfileBadDate(t *testing.T) {
	db := setupHandlerTest(t)
	alice := seedUser(t, db, "alice")

	w, c := newAuthedContext(t, alice.ID, "PUT", "/api/userProfile/updateProfile",
		gin.H{"dateOfBirth": "not-a-date"})
	UpdateProfile(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCountFriendsEndpoint(t *testing.T) {
	db := setupHandlerTest(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	for _, other := range []uint{bob.ID, carol.ID} {
		a, b := models.CanonicalPair(alice.ID, other)
		require.NoError(t, db.Create(&models.Friendship{UserAID: a, UserBID: b}).Error)
	}

	w, c := newAuthedContext(t, bob.ID, "GET", "/api/userProfile/countFriend/"+itoa(alice.ID), nil)
	c.Params = gin.Params{{Key: "id", Value: itoa(alice.ID)}}
	CountFriends(c)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Count int64 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.EqualValues(t, 2, response.Count)
}

func TestSearchUserByUsernameEndpoint(t *testing.T) {
	db := setupHandlerTest(t)
	alice := seedUser(t, db, "alice")
	seedUser(t, db, "bob")

	w, c := newAuthedContext(t, alice.ID, "GET", "/api/user/search/bob", nil)
	c.Params = gin.Params{{Key: "username", Value: "bob"}}
	SearchUserByUsername(c)
	require.Equal(t, http.StatusOK, w.Code)

	var user PublicUserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "bob", user.Username)

	w, c = newAuthedContext(t, alice.ID, "GET", "/api/user/search/ghost", nil)
	c.Params = gin.Params{{Key: "username", Value: "ghost"}}
	SearchUserByUsername(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
