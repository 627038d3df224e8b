package chat

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kkarthika293/Learn-Edge/internal/app_errors"
	"github.com/kkarthika293/Learn-Edge/internal/delivery/http/controllers/middleware"
	"github.com/kkarthika293/Learn-Edge/internal/models"
	"github.com/kkarthika293/Learn-Edge/pkg/logger"
)

type ChatService interface {
	SendMessage(ctx context.Context, senderID uuid.UUID, text string) (*models.ChatMessage, error)
	RecentMessages(ctx context.Context) ([]models.ChatMessage, error)
	Ask(ctx context.Context, question string) string
}

type ChatHandler struct {
	log     logger.Log
	service ChatService
}

func NewChatHandler(l logger.Log, s ChatService) *ChatHandler {
	return &ChatHandler{
		log:     l,
		service: s,
	}
}

type sendMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	userIDVal, exists := c.Get(middleware.ClientIDCtx)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	userID := userIDVal.(uuid.UUID)

	var input sendMessageRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.service.SendMessage(c.Request.Context(), userID, input.Message)
	if err != nil {
		if errors.Is(err, app_errors.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("SendMessage failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *ChatHandler) RecentMessages(c *gin.Context) {
	messages, err := h.service.RecentMessages(c.Request.Context())
	if err != nil {
		h.log.ErrorErr("RecentMessages failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

type askRequest struct {
	Question string `json:"question" binding:"required"`
}

// Ask always answers 200: provider failures degrade to a canned reply inside
// the service.
func (h *ChatHandler) Ask(c *gin.Context) {
	var input askRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply := h.service.Ask(c.Request.Context(), input.Question)
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
