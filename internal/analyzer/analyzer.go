// Package analyzer asks an external text-generation service to rewrite and
// score a prompt.
package analyzer

import (
	"context"
	"errors"
)

// ErrAnalysisFailed is the only error an Analyzer returns. The underlying
// cause is logged and never exposed to callers.
var ErrAnalysisFailed = errors.New("failed to analyze prompt using AI")

// Analysis is the result of analyzing one prompt.
type Analysis struct {
	Suggestions  []string
	EnhancedText string
	QualityScore int
}

// Analyzer rewrites and scores a single prompt.
type Analyzer interface {
	Analyze(ctx context.Context, originalText string) (*Analysis, error)
}
