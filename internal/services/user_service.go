package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/nicketronix/promptpilot-backend/internal/models"
	"github.com/nicketronix/promptpilot-backend/internal/storage"
	"github.com/nicketronix/promptpilot-backend/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DefaultUsername names the placeholder user seeded at startup.
const DefaultUsername = "anonymous"

// MaxPasswordBytes is the longest password bcrypt will hash.
const MaxPasswordBytes = 72

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user with this username already exists")
	ErrPasswordTooLong   = errors.New("password must be at most 72 bytes")
)

type UserService struct {
	store storage.Storage
}

func NewUserService(store storage.Storage) *UserService {
	return &UserService{store: store}
}

// Register creates a user, storing a bcrypt hash of the password.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if len(password) > MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}
	if _, err := s.store.GetUserByUsername(ctx, username); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.store.CreateUser(ctx, username, string(hashedPassword))
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateUsername) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// EnsureDefaultUser creates the placeholder user owning anonymous prompts.
// It must run before any other user is registered so that it receives DefaultUserID.
func (s *UserService) EnsureDefaultUser(ctx context.Context) (*models.User, error) {
	user, err := s.store.GetUser(ctx, DefaultUserID)
	if err == nil {
		logger.Log.Info("Default user already exists.", zap.Uint("user_id", user.ID))
		return user, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	// Nobody can sign in as the default user; its password is random and discarded.
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}

	user, err = s.Register(ctx, DefaultUsername, hex.EncodeToString(secret))
	if err != nil {
		return nil, fmt.Errorf("create default user: %w", err)
	}
	if user.ID != DefaultUserID {
		return nil, fmt.Errorf("default user was assigned id %d, want %d", user.ID, DefaultUserID)
	}

	logger.Log.Info("Default user created successfully!", zap.Uint("user_id", user.ID))
	return user, nil
}
