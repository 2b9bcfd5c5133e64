package service

import (
	"errors"
	"fmt"
	"time"

	"linkup/backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService is the identity store: user + profile records and lookups.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// SignupInput carries the fields collected at registration.
type SignupInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Username    string
	PhoneNumber string
	Gender      string
	DateOfBirth *time.Time
	AvatarURL   string
}

// CreateWithProfile creates a user and its profile atomically.
func (s *UserService) CreateWithProfile(input SignupInput) (*models.User, error) {
	var existing models.Profile
	if err := s.db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}
	if err := s.db.Where("username = ?", input.Username).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Profile: models.Profile{
			Email:        input.Email,
			PasswordHash: string(hash),
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			Username:     input.Username,
			PhoneNumber:  input.PhoneNumber,
			Gender:       input.Gender,
			DateOfBirth:  input.DateOfBirth,
			AvatarURL:    input.AvatarURL,
		},
	}

	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return &user, nil
}

// GetByID returns a user with its profile.
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Profile").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetProfileByUserID returns just the profile record for a user.
func (s *UserService) GetProfileByUserID(userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// GetByUsername resolves a user through its profile's unique username.
func (s *UserService) GetByUsername(username string) (*models.User, error) {
	var profile models.Profile
	if err := s.db.Where("username = ?", username).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.GetByID(profile.UserID)
}

// Authenticate verifies email + password and returns the matching user.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	var profile models.Profile
	if err := s.db.Where("email = ?", email).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.GetByID(profile.UserID)
}

// ProfileUpdate lists the mutable profile fields. Nil pointers are left
// untouched.
type ProfileUpdate struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Gender      *string
	DateOfBirth *time.Time
	AvatarURL   *string
}

// UpdateProfile applies a partial update and returns the previous avatar URL
// so the caller can release the replaced image.
func (s *UserService) UpdateProfile(userID uint, update ProfileUpdate) (*models.Profile, string, error) {
	profile, err := s.GetProfileByUserID(userID)
	if err != nil {
		return nil, "", err
	}

	oldAvatar := profile.AvatarURL

	changes := map[string]interface{}{}
	if update.FirstName != nil {
		changes["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		changes["last_name"] = *update.LastName
	}
	if update.PhoneNumber != nil {
		changes["phone_number"] = *update.PhoneNumber
	}
	if update.Gender != nil {
		changes["gender"] = *update.Gender
	}
	if update.DateOfBirth != nil {
		changes["date_of_birth"] = *update.DateOfBirth
	}
	if update.AvatarURL != nil {
		changes["avatar_url"] = *update.AvatarURL
	}

	if len(changes) == 0 {
		return profile, "", nil
	}

	if err := s.db.Model(profile).Updates(changes).Error; err != nil {
		return nil, "", err
	}

	replaced := ""
	if update.AvatarURL != nil && oldAvatar != "" && oldAvatar != *update.AvatarURL {
		replaced = oldAvatar
	}

	return profile, replaced, nil
}
