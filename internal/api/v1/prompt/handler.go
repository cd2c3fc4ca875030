package prompt

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nicketronix/promptpilot-backend/internal/middleware"
	"github.com/nicketronix/promptpilot-backend/internal/services"
	"github.com/nicketronix/promptpilot-backend/internal/utils"
	"github.com/nicketronix/promptpilot-backend/pkg/logger"
	"go.uber.org/zap"
)

const (
	MsgAnalyzeFailed       = "Failed to analyze prompt"
	MsgListFailed          = "Failed to fetch prompts"
	MsgFetchFailed         = "Failed to fetch prompt"
	MsgPromptNotFound      = "Prompt not found"
	MsgInvalidPromptID     = "Invalid prompt ID"
	MsgFeedbackFailed      = "Failed to submit feedback"
	MsgFeedbackFetchFailed = "Failed to fetch feedback"
)

type Handler struct {
	prompts *services.PromptService
}

func NewHandler(prompts *services.PromptService) *Handler {
	return &Handler{prompts: prompts}
}

// CreatePrompt godoc
// @Summary Analyze and store a prompt
// @Description Send the prompt to the language model for rewriting and scoring, then store the result
// @Tags prompts
// @Accept json
// @Produce json
// @Param request body CreatePromptRequest true "Prompt to analyze"
// @Success 200 {object} services.PromptResult
// @Failure 400 {object} utils.Response{data=utils.ValidationErrorData}
// @Failure 500 {object} utils.Response
// @Router /prompts [post]
func (h *Handler) CreatePrompt(c *gin.Context) {
	var req CreatePromptRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	result, err := h.prompts.AnalyzePrompt(c.Request.Context(), services.DefaultUserID, req.OriginalText)
	if err != nil {
		logger.Log.Error("Error analyzing prompt", zap.String("request_id", middleware.RequestID(c)), zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, MsgAnalyzeFailed))
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListPrompts godoc
// @Summary List prompts
// @Description Return every stored prompt of the default user, oldest first
// @Tags prompts
// @Produce json
// @Success 200 {array} models.Prompt
// @Failure 500 {object} utils.Response
// @Router /prompts [get]
func (h *Handler) ListPrompts(c *gin.Context) {
	prompts, err := h.prompts.ListPrompts(c.Request.Context(), services.DefaultUserID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, MsgListFailed))
		return
	}

	c.JSON(http.StatusOK, prompts)
}

// GetPrompt godoc
// @Summary Get a prompt
// @Tags prompts
// @Produce json
// @Param id path int true "Prompt ID"
// @Success 200 {object} models.Prompt
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /prompts/{id} [get]
func (h *Handler) GetPrompt(c *gin.Context) {
	id, ok := parsePromptID(c)
	if !ok {
		return
	}

	prompt, err := h.prompts.GetPrompt(c.Request.Context(), id)
	if err != nil {
		h.respondLookupError(c, err, MsgFetchFailed)
		return
	}

	c.JSON(http.StatusOK, prompt)
}

// CreateFeedback godoc
// @Summary Leave feedback on a prompt
// @Description Record whether the rewrite of a stored prompt was helpful
// @Tags prompts
// @Accept json
// @Produce json
// @Param id path int true "Prompt ID"
// @Param request body CreateFeedbackRequest true "Feedback"
// @Success 201 {object} models.PromptFeedback
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /prompts/{id}/feedback [post]
func (h *Handler) CreateFeedback(c *gin.Context) {
	id, ok := parsePromptID(c)
	if !ok {
		return
	}

	var req CreateFeedbackRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	fb, err := h.prompts.SubmitFeedback(c.Request.Context(), id, services.DefaultUserID, *req.IsHelpful, req.Comment)
	if err != nil {
		h.respondLookupError(c, err, MsgFeedbackFailed)
		return
	}

	c.JSON(http.StatusCreated, fb)
}

// ListFeedback godoc
// @Summary List feedback for a prompt
// @Tags prompts
// @Produce json
// @Param id path int true "Prompt ID"
// @Success 200 {array} models.PromptFeedback
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /prompts/{id}/feedback [get]
func (h *Handler) ListFeedback(c *gin.Context) {
	id, ok := parsePromptID(c)
	if !ok {
		return
	}

	feedback, err := h.prompts.ListFeedback(c.Request.Context(), id)
	if err != nil {
		h.respondLookupError(c, err, MsgFeedbackFetchFailed)
		return
	}

	c.JSON(http.StatusOK, feedback)
}

func (h *Handler) respondLookupError(c *gin.Context, err error, internalMsg string) {
	if errors.Is(err, services.ErrPromptNotFound) {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, MsgPromptNotFound))
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, internalMsg))
}

func parsePromptID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, MsgInvalidPromptID))
		return 0, false
	}
	return uint(id), true
}
