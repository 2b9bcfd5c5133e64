package service

import "errors"

// Sentinel errors returned by the services. Handlers map these to HTTP
// statuses; none of them are retried, they represent state conflicts.
var (
	ErrSelfReference        = errors.New("action cannot target the acting user")
	ErrAlreadyFriends       = errors.New("users are already friends")
	ErrDuplicateRequest     = errors.New("a pending friend request already exists")
	ErrRequestNotFound      = errors.New("friend request not found")
	ErrNotFriends           = errors.New("users are not friends")
	ErrUserNotFound         = errors.New("user not found")
	ErrAlreadyBlocked       = errors.New("user is already blocked")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrEmailTaken           = errors.New("email is already registered")
	ErrUsernameTaken        = errors.New("username is already taken")
	ErrInvalidCredentials   = errors.New("invalid email or password")
)
