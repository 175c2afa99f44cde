package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"functionallab/coach-os/internal/generator"
	"functionallab/coach-os/internal/service"
)

// AssistantHandler exposes the coach chat assistant.
type AssistantHandler struct {
	assistantService service.AssistantService
}

func NewAssistantHandler(assistantService service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService}
}

// ChatRequest carries the prior conversation; the server keeps none.
type ChatRequest struct {
	History []generator.ChatMessage `json:"history"`
	Message string                  `json:"message" binding:"required"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

func (h *AssistantHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	reply, err := h.assistantService.Chat(c.Request.Context(), req.History, req.Message)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ChatResponse{Reply: reply})
}
