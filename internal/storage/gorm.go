package storage

import (
	"context"
	"errors"

	"github.com/nicketronix/promptpilot-backend/internal/models"
	"gorm.io/gorm"
)

// GormStorage persists records in a relational database through gorm.
// The schema must already be migrated (see database.Migrate).
type GormStorage struct {
	db *gorm.DB
}

func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

func (s *GormStorage) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (s *GormStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (s *GormStorage) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	user := &models.User{Username: username, Password: password}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateUsername
		}
		return tx.Create(user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return user, nil
}

func (s *GormStorage) CreatePrompt(ctx context.Context, userID uint, originalText, enhancedText string, score int) (*models.Prompt, error) {
	prompt := &models.Prompt{
		UserID:       userID,
		OriginalText: originalText,
		EnhancedText: enhancedText,
		QualityScore: score,
	}
	if err := s.db.WithContext(ctx).Create(prompt).Error; err != nil {
		return nil, err
	}
	return prompt, nil
}

func (s *GormStorage) GetPrompts(ctx context.Context, userID uint) ([]models.Prompt, error) {
	prompts := make([]models.Prompt, 0)
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id asc").Find(&prompts).Error; err != nil {
		return nil, err
	}
	return prompts, nil
}

func (s *GormStorage) GetPrompt(ctx context.Context, id uint) (*models.Prompt, error) {
	var prompt models.Prompt
	if err := s.db.WithContext(ctx).First(&prompt, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &prompt, nil
}

func (s *GormStorage) CreateFeedback(ctx context.Context, promptID, userID uint, isHelpful bool, comment *string) (*models.PromptFeedback, error) {
	fb := &models.PromptFeedback{
		PromptID:  promptID,
		UserID:    userID,
		IsHelpful: isHelpful,
		Comment:   comment,
	}
	if err := s.db.WithContext(ctx).Create(fb).Error; err != nil {
		return nil, err
	}
	return fb, nil
}

func (s *GormStorage) GetFeedback(ctx context.Context, promptID uint) ([]models.PromptFeedback, error) {
	feedback := make([]models.PromptFeedback, 0)
	if err := s.db.WithContext(ctx).Where("prompt_id = ?", promptID).Order("id asc").Find(&feedback).Error; err != nil {
		return nil, err
	}
	return feedback, nil
}

func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

var _ Storage = (*GormStorage)(nil)
