package analyzer

import (
	"context"
	"errors"
	"time"

	"github.com/nicketronix/promptpilot-backend/internal/utils"
	"github.com/nicketronix/promptpilot-backend/pkg/logger"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// DefaultModel is used when no chat model is configured.
const DefaultModel = openai.GPT4o

const SystemPromptEnhancer = `You are an expert prompt engineer. Review the prompt you are given, find where it lacks clarity, context or detail, and rewrite it so it is precise and effective while keeping the author's original intent.

When rewriting:
- Keep the core idea and purpose of the original prompt.
- Replace vague or ambiguous wording with clear, actionable instructions.
- Add missing context, examples or background that would help produce the intended result.
- Structure the prompt logically; use step-by-step instructions where they help.
- List concrete suggestions for improving the original.

Reply with a single JSON object of this shape:
{
  "suggestions": ["improvement suggestion", "..."],
  "enhancedText": "the rewritten prompt",
  "qualityScore": <integer from 0 to 100 rating the ORIGINAL prompt>
}`

// OpenAIConfig holds configuration for the OpenAI analyzer.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	// Timeout bounds one upstream call; zero waits indefinitely.
	Timeout time.Duration
}

// OpenAIAnalyzer analyzes prompts with one chat completion per call.
type OpenAIAnalyzer struct {
	client     *openai.Client
	model      string
	configured bool
}

// NewOpenAIAnalyzer creates an analyzer from configuration.
func NewOpenAIAnalyzer(cfg OpenAIConfig) *OpenAIAnalyzer {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	config.HTTPClient = utils.NewHTTPClient(cfg.Timeout)

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &OpenAIAnalyzer{
		client:     openai.NewClientWithConfig(config),
		model:      model,
		configured: cfg.APIKey != "",
	}
}

// Analyze rewrites and scores originalText. Every failure is reported as ErrAnalysisFailed.
func (a *OpenAIAnalyzer) Analyze(ctx context.Context, originalText string) (*Analysis, error) {
	if !a.configured {
		logger.Log.Error("OpenAI API key not configured")
		return nil, ErrAnalysisFailed
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPromptEnhancer},
			{Role: openai.ChatMessageRoleUser, Content: originalText},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		fields := []zap.Field{zap.String("model", a.model), zap.Error(err)}
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			fields = append(fields, zap.Int("upstream_status", apiErr.HTTPStatusCode))
		}
		logger.Log.Error("OpenAI API error", fields...)
		return nil, ErrAnalysisFailed
	}

	if len(resp.Choices) == 0 {
		logger.Log.Error("OpenAI API returned no choices", zap.String("model", a.model))
		return nil, ErrAnalysisFailed
	}

	analysis, err := decodeReply(resp.Choices[0].Message.Content, originalText)
	if err != nil {
		logger.Log.Error("OpenAI API returned an unusable reply", zap.String("model", a.model), zap.Error(err))
		return nil, ErrAnalysisFailed
	}

	logger.Log.Debug("Prompt analyzed",
		zap.String("model", a.model),
		zap.Int("quality_score", analysis.QualityScore),
		zap.Int("suggestions", len(analysis.Suggestions)),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)
	return analysis, nil
}

var _ Analyzer = (*OpenAIAnalyzer)(nil)
