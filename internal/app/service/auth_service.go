package service

import (
	"errors"

	"github.com/ikkim/cafe-backend/internal/app/model"
	"github.com/ikkim/cafe-backend/internal/app/repository"
	apperrors "github.com/ikkim/cafe-backend/internal/errors"
	"github.com/ikkim/cafe-backend/pkg/logger"
	"github.com/ikkim/cafe-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrUserNotFound  = errors.New("user not found")
)

type RegisterInput struct {
	Username    string
	Password    string
	Email       string
	FirstName   string
	LastName    string
	Description string
	ImageURL    string
}

type ProfileInput struct {
	FirstName   string
	LastName    string
	Description string
	Email       string
	ImageURL    string
}

type AuthService interface {
	Register(input RegisterInput) (*model.User, error)
	Authenticate(username, password string) (*model.User, bool)
	GetUserByID(id uint) (*model.User, error)
	UpdateProfile(id uint, input ProfileInput) (*model.User, error)
}

type authService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
}

func NewAuthService(db *gorm.DB, userRepo repository.UserRepository) AuthService {
	return &authService{
		db:       db,
		userRepo: userRepo,
	}
}

// Register creates a non-admin user. A taken username leaves no row behind
// and returns ErrUsernameTaken.
func (s *authService) Register(input RegisterInput) (*model.User, error) {
	logger.Info("Attempting user registration", map[string]interface{}{
		"username": input.Username,
	})

	hashedPassword, err := util.HashPassword(input.Password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"username": input.Username,
		})
		return nil, err
	}

	user := &model.User{
		Username:       input.Username,
		Email:          input.Email,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Description:    input.Description,
		ImageURL:       orDefault(input.ImageURL, model.DefaultUserImage),
		HashedPassword: hashedPassword,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.userRepo.WithTx(tx).Create(user)
	})
	if err != nil {
		if apperrors.IsDuplicateKey(err) {
			logger.Warn("Registration failed: username already exists", map[string]interface{}{
				"username": input.Username,
			})
			return nil, ErrUsernameTaken
		}
		logger.Error("Failed to register user", err, map[string]interface{}{
			"username": input.Username,
		})
		return nil, err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return user, nil
}

// Authenticate reports a match only when the username exists and the
// password verifies. Every other outcome is (nil, false).
func (s *authService) Authenticate(username, password string) (*model.User, bool) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			logger.Error("Failed to look up user during login", err, map[string]interface{}{
				"username": username,
			})
		}
		logger.Warn("Login failed", map[string]interface{}{
			"username": username,
		})
		return nil, false
	}

	if !util.VerifyPassword(user.HashedPassword, password) {
		logger.Warn("Login failed", map[string]interface{}{
			"username": username,
		})
		return nil, false
	}

	logger.Info("User authenticated", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return user, true
}

func (s *authService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes the editable profile fields only
func (s *authService) UpdateProfile(id uint, input ProfileInput) (*model.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Description = input.Description
	user.Email = input.Email
	user.ImageURL = orDefault(input.ImageURL, model.DefaultUserImage)

	if err := s.userRepo.Update(user); err != nil {
		logger.Error("Failed to update profile", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}

	logger.Info("Profile updated", map[string]interface{}{
		"user_id": id,
	})
	return user, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
