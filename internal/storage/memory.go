package storage

import (
	"context"
	"sync"
	"time"

	"github.com/nicketronix/promptpilot-backend/internal/models"
)

// MemStorage keeps every record in process memory. Returned values are copies.
type MemStorage struct {
	mu sync.RWMutex

	users    map[uint]models.User
	prompts  map[uint]models.Prompt
	feedback map[uint]models.PromptFeedback

	currentUserID     uint
	currentPromptID   uint
	currentFeedbackID uint

	now func() time.Time
}

func NewMemStorage() *MemStorage {
	return &MemStorage{
		users:             make(map[uint]models.User),
		prompts:           make(map[uint]models.Prompt),
		feedback:          make(map[uint]models.PromptFeedback),
		currentUserID:     1,
		currentPromptID:   1,
		currentFeedbackID: 1,
		now:               time.Now,
	}
}

func (s *MemStorage) GetUser(_ context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *MemStorage) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if user, ok := s.findUserByUsername(username); ok {
		return &user, nil
	}
	return nil, ErrNotFound
}

func (s *MemStorage) CreateUser(_ context.Context, username, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findUserByUsername(username); ok {
		return nil, ErrDuplicateUsername
	}

	id := s.currentUserID
	s.currentUserID++
	user := models.User{ID: id, Username: username, Password: password}
	s.users[id] = user
	return &user, nil
}

func (s *MemStorage) CreatePrompt(_ context.Context, userID uint, originalText, enhancedText string, score int) (*models.Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.currentPromptID
	s.currentPromptID++
	prompt := models.Prompt{
		ID:           id,
		UserID:       userID,
		OriginalText: originalText,
		EnhancedText: enhancedText,
		QualityScore: score,
		CreatedAt:    s.now(),
	}
	s.prompts[id] = prompt
	return &prompt, nil
}

func (s *MemStorage) GetPrompts(_ context.Context, userID uint) ([]models.Prompt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Ids are dense and increasing, so walking them yields insertion order.
	prompts := make([]models.Prompt, 0)
	for id := uint(1); id < s.currentPromptID; id++ {
		if p, ok := s.prompts[id]; ok && p.UserID == userID {
			prompts = append(prompts, p)
		}
	}
	return prompts, nil
}

func (s *MemStorage) GetPrompt(_ context.Context, id uint) (*models.Prompt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prompt, ok := s.prompts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &prompt, nil
}

func (s *MemStorage) CreateFeedback(_ context.Context, promptID, userID uint, isHelpful bool, comment *string) (*models.PromptFeedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.currentFeedbackID
	s.currentFeedbackID++
	fb := models.PromptFeedback{
		ID:        id,
		PromptID:  promptID,
		UserID:    userID,
		IsHelpful: isHelpful,
		Comment:   copyString(comment),
	}
	s.feedback[id] = fb

	out := fb
	out.Comment = copyString(fb.Comment)
	return &out, nil
}

func (s *MemStorage) GetFeedback(_ context.Context, promptID uint) ([]models.PromptFeedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	feedback := make([]models.PromptFeedback, 0)
	for id := uint(1); id < s.currentFeedbackID; id++ {
		if fb, ok := s.feedback[id]; ok && fb.PromptID == promptID {
			fb.Comment = copyString(fb.Comment)
			feedback = append(feedback, fb)
		}
	}
	return feedback, nil
}

// findUserByUsername expects s.mu to be held.
func (s *MemStorage) findUserByUsername(username string) (models.User, bool) {
	for _, user := range s.users {
		if user.Username == username {
			return user, true
		}
	}
	return models.User{}, false
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

var _ Storage = (*MemStorage)(nil)
