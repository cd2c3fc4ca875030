package prompt

type CreatePromptRequest struct {
	OriginalText string `json:"originalText" binding:"required"`
}

type CreateFeedbackRequest struct {
	// Pointer so that an explicit false passes the required check.
	IsHelpful *bool   `json:"isHelpful" binding:"required"`
	Comment   *string `json:"comment" binding:"omitempty,max=2000"`
}
