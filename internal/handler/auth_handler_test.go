package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"linkup/backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupLoginFlow(t *testing.T) {
	setupHandlerTest(t)
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	signup := gin.H{
		"email":     "alice@example.com",
		"password":  "password123",
		"username":  "alice",
		"firstName": "Alice",
	}

	w, c := newAuthedContext(t, 0, "POST", "/api/auth/signup", signup)
	Signup(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		User  PublicUserResponse `json:"user"`
		Token string             `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "alice", created.User.Username)
	assert.NotEmpty(t, created.Token)

	// Same email again is a conflict.
	w, c = newAuthedContext(t, 0, "POST", "/api/auth/signup", signup)
	Signup(c)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, c = newAuthedContext(t, 0, "POST", "/api/auth/login",
		gin.H{"email": "alice@example.com", "password": "password123"})
	Login(c)
	assert.Equal(t, http.StatusOK, w.Code)

	w, c = newAuthedContext(t, 0, "POST", "/api/auth/login",
		gin.H{"email": "alice@example.com", "password": "wrong-password"})
	Login(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignupValidation(t *testing.T) {
	setupHandlerTest(t)

	// Missing password.
	w, c := newAuthedContext(t, 0, "POST", "/api/auth/signup",
		gin.H{"email": "bob@example.com", "username": "bob"})
	Signup(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unparseable birth date.
	w, c = newAuthedContext(t, 0, "POST", "/api/auth/signup", gin.H{
		"email": "bob@example.com", "password": "password123",
		"username": "bob", "dateOfBirth": "31-01-1999",
	})
	Signup(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckAuthEndpoint(t *testing.T) {
	db := setupHandlerTest(t)
	alice := seedUser(t, db, "alice")

	w, c := newAuthedContext(t, alice.ID, "GET", "/api/auth/check", nil)
	CheckAuth(c)
	require.Equal(t, http.StatusOK, w.Code)

	var user PublicUserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, alice.ID, user.ID)
	assert.Equal(t, "alice", user.Username)
}
