// Package storage persists users, prompts and prompt feedback.
//
// Records are create-only: there are no update or delete operations. Every
// entity type has its own identifier sequence starting at 1.
package storage

import (
	"context"
	"errors"

	"github.com/nicketronix/promptpilot-backend/internal/models"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateUsername = errors.New("username already exists")
)

// Storage is the persistence contract shared by the memory, gorm and cached backends.
type Storage interface {
	// GetUser may leave Password empty; GetUserByUsername always returns the hash.
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, username, password string) (*models.User, error)

	CreatePrompt(ctx context.Context, userID uint, originalText, enhancedText string, score int) (*models.Prompt, error)
	// GetPrompts returns the user's prompts in insertion order.
	GetPrompts(ctx context.Context, userID uint) ([]models.Prompt, error)
	GetPrompt(ctx context.Context, id uint) (*models.Prompt, error)

	CreateFeedback(ctx context.Context, promptID, userID uint, isHelpful bool, comment *string) (*models.PromptFeedback, error)
	GetFeedback(ctx context.Context, promptID uint) ([]models.PromptFeedback, error)
}
