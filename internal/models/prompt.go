package models

import "time"

const (
	MinQualityScore = 0
	MaxQualityScore = 100
)

// Prompt is one analyzed submission: the user's text, its rewrite and the score of the original.
type Prompt struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	UserID       uint      `gorm:"index;not null" json:"userId"`
	OriginalText string    `gorm:"type:text;not null" json:"originalText"`
	EnhancedText string    `gorm:"type:text;not null" json:"enhancedText"`
	QualityScore int       `gorm:"not null" json:"qualityScore"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

// TableName overrides the table name
func (Prompt) TableName() string {
	return "prompts"
}

// ClampQualityScore forces a score into [MinQualityScore, MaxQualityScore].
func ClampQualityScore(score int) int {
	if score < MinQualityScore {
		return MinQualityScore
	}
	if score > MaxQualityScore {
		return MaxQualityScore
	}
	return score
}
