package analyzer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/nicketronix/promptpilot-backend/internal/models"
)

// DefaultQualityScore is used when the reply carries no usable score.
const DefaultQualityScore = 50

// reply mirrors the JSON object the model is asked to produce. Every field is
// optional; decodeReply applies the per-field defaults.
type reply struct {
	Suggestions  json.RawMessage `json:"suggestions"`
	EnhancedText json.RawMessage `json:"enhancedText"`
	QualityScore json.RawMessage `json:"qualityScore"`
}

// decodeReply turns model output into an Analysis.
//
//   - suggestions: missing, null or not an array gives an empty list; non-string entries are dropped
//   - enhancedText: missing, null, not a string or blank gives originalText
//   - qualityScore: missing, null or not a number gives DefaultQualityScore;
//     numbers are rounded and clamped into [0,100]
//
// Only content that is not a JSON object is an error.
func decodeReply(content, originalText string) (*Analysis, error) {
	trimmed := bytes.TrimSpace([]byte(content))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("reply is not a JSON object")
	}

	var r reply
	if err := json.Unmarshal(trimmed, &r); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}

	return &Analysis{
		Suggestions:  decodeSuggestions(r.Suggestions),
		EnhancedText: decodeEnhancedText(r.EnhancedText, originalText),
		QualityScore: decodeQualityScore(r.QualityScore),
	}, nil
}

func decodeSuggestions(raw json.RawMessage) []string {
	suggestions := make([]string, 0)

	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return suggestions
	}
	for _, item := range items {
		var s *string
		if json.Unmarshal(item, &s) == nil && s != nil {
			suggestions = append(suggestions, *s)
		}
	}
	return suggestions
}

func decodeEnhancedText(raw json.RawMessage, originalText string) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil || strings.TrimSpace(s) == "" {
		return originalText
	}
	return s
}

func decodeQualityScore(raw json.RawMessage) int {
	var score *float64
	if len(raw) == 0 || json.Unmarshal(raw, &score) != nil || score == nil {
		return DefaultQualityScore
	}
	f := *score
	if f > models.MaxQualityScore {
		return models.MaxQualityScore
	}
	if f < models.MinQualityScore {
		return models.MinQualityScore
	}
	return models.ClampQualityScore(int(math.Round(f)))
}
