package prompt

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	prompts := router.Group("/prompts")
	{
		prompts.POST("", h.CreatePrompt)
		prompts.GET("", h.ListPrompts)
		prompts.GET("/:id", h.GetPrompt)
		prompts.POST("/:id/feedback", h.CreateFeedback)
		prompts.GET("/:id/feedback", h.ListFeedback)
	}
}
