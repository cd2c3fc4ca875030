package models

// PromptFeedback records whether a user found a prompt's rewrite helpful.
type PromptFeedback struct {
	ID        uint    `gorm:"primarykey" json:"id"`
	PromptID  uint    `gorm:"index;not null" json:"promptId"`
	UserID    uint    `gorm:"not null" json:"userId"`
	IsHelpful bool    `gorm:"not null" json:"isHelpful"`
	Comment   *string `json:"comment"`
}

// TableName overrides the table name
func (PromptFeedback) TableName() string {
	return "prompt_feedback"
}
