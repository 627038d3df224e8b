package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kkarthika293/Learn-Edge/internal/models"
	"github.com/kkarthika293/Learn-Edge/pkg/logger"
)

const recentMessageLimit = 50

// Fallback reply when the completion provider is down or returns garbage. The
// chatbot endpoint never surfaces provider errors to the client.
const botFallbackReply = "Oops! I had trouble answering that. Please try again later."

const botPreamble = "You are EduBot, a friendly assistant for an e-learning platform. " +
	"Answer the student's question concisely and stay on educational topics.\n\nStudent: %s"

type chatRepo interface {
	Append(ctx context.Context, msg models.ChatMessage) (*models.ChatMessage, error)
	Recent(ctx context.Context, limit int) ([]models.ChatMessage, error)
}

type userRepo interface {
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type completionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type ChatService struct {
	log        logger.Log
	chatRepo   chatRepo
	userRepo   userRepo
	completion completionClient
}

func NewChatService(l logger.Log, cRepo chatRepo, uRepo userRepo, completion completionClient) *ChatService {
	return &ChatService{
		log:        l,
		chatRepo:   cRepo,
		userRepo:   uRepo,
		completion: completion,
	}
}

// SendMessage stores the message with a snapshot of the sender's current
// username, so history stays readable even if the account is renamed later.
func (s *ChatService) SendMessage(ctx context.Context, senderID uuid.UUID, text string) (*models.ChatMessage, error) {
	user, err := s.userRepo.UserByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	return s.chatRepo.Append(ctx, models.ChatMessage{
		SenderID:   senderID,
		SenderName: user.Username,
		Message:    text,
	})
}

func (s *ChatService) RecentMessages(ctx context.Context) ([]models.ChatMessage, error) {
	return s.chatRepo.Recent(ctx, recentMessageLimit)
}

// Ask proxies a question to the completion provider with the bot preamble. Any
// failure, including an empty reply, degrades to the fallback string.
func (s *ChatService) Ask(ctx context.Context, question string) string {
	reply, err := s.completion.Complete(ctx, fmt.Sprintf(botPreamble, question))
	if err != nil {
		s.log.ErrorErr("Ask: completion failed", err)
		return botFallbackReply
	}
	if strings.TrimSpace(reply) == "" {
		return botFallbackReply
	}
	return reply
}
