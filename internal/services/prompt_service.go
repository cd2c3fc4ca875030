package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nicketronix/promptpilot-backend/internal/analyzer"
	"github.com/nicketronix/promptpilot-backend/internal/models"
	"github.com/nicketronix/promptpilot-backend/internal/storage"
)

// DefaultUserID owns every prompt until callers supply their own identity.
const DefaultUserID uint = 1

var ErrPromptNotFound = errors.New("prompt not found")

// PromptResult is a stored prompt together with the suggestions produced while analyzing it.
type PromptResult struct {
	models.Prompt
	Suggestions []string `json:"suggestions"`
}

type PromptService struct {
	store    storage.Storage
	analyzer analyzer.Analyzer
}

func NewPromptService(store storage.Storage, a analyzer.Analyzer) *PromptService {
	return &PromptService{store: store, analyzer: a}
}

// AnalyzePrompt sends originalText to the analyzer and stores the outcome.
// Nothing is stored when the analysis fails.
func (s *PromptService) AnalyzePrompt(ctx context.Context, userID uint, originalText string) (*PromptResult, error) {
	analysis, err := s.analyzer.Analyze(ctx, originalText)
	if err != nil {
		return nil, err
	}

	enhanced := analysis.EnhancedText
	if strings.TrimSpace(enhanced) == "" {
		enhanced = originalText
	}
	suggestions := analysis.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}

	prompt, err := s.store.CreatePrompt(ctx, userID, originalText, enhanced, models.ClampQualityScore(analysis.QualityScore))
	if err != nil {
		return nil, fmt.Errorf("store prompt: %w", err)
	}

	return &PromptResult{Prompt: *prompt, Suggestions: suggestions}, nil
}

// ListPrompts returns every prompt owned by userID in creation order.
func (s *PromptService) ListPrompts(ctx context.Context, userID uint) ([]models.Prompt, error) {
	return s.store.GetPrompts(ctx, userID)
}

func (s *PromptService) GetPrompt(ctx context.Context, id uint) (*models.Prompt, error) {
	prompt, err := s.store.GetPrompt(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrPromptNotFound
		}
		return nil, err
	}
	return prompt, nil
}

// SubmitFeedback records feedback on an existing prompt. A blank comment is stored as null.
func (s *PromptService) SubmitFeedback(ctx context.Context, promptID, userID uint, isHelpful bool, comment *string) (*models.PromptFeedback, error) {
	if _, err := s.GetPrompt(ctx, promptID); err != nil {
		return nil, err
	}

	if comment != nil && strings.TrimSpace(*comment) == "" {
		comment = nil
	}

	fb, err := s.store.CreateFeedback(ctx, promptID, userID, isHelpful, comment)
	if err != nil {
		return nil, fmt.Errorf("store feedback: %w", err)
	}
	return fb, nil
}

func (s *PromptService) ListFeedback(ctx context.Context, promptID uint) ([]models.PromptFeedback, error) {
	if _, err := s.GetPrompt(ctx, promptID); err != nil {
		return nil, err
	}
	return s.store.GetFeedback(ctx, promptID)
}
