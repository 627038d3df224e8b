package chat

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/kkarthika293/Learn-Edge/internal/app_errors"
	"github.com/kkarthika293/Learn-Edge/internal/models"
	"github.com/kkarthika293/Learn-Edge/pkg/logger"
)

type fakeChatRepo struct {
	messages []models.ChatMessage
}

func (r *fakeChatRepo) Append(_ context.Context, msg models.ChatMessage) (*models.ChatMessage, error) {
	msg.ID = uuid.New()
	msg.CreatedAt = time.Now()
	r.messages = append(r.messages, msg)
	return &msg, nil
}

func (r *fakeChatRepo) Recent(_ context.Context, limit int) ([]models.ChatMessage, error) {
	var out []models.ChatMessage
	for i := len(r.messages) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.messages[i])
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func (r *fakeUserRepo) UserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, app_errors.ErrUserNotFound
	}
	return u, nil
}

type fakeCompletion struct {
	reply string
	err   error
}

func (c *fakeCompletion) Complete(_ context.Context, _ string) (string, error) {
	return c.reply, c.err
}

func TestSendMessageSnapshotsUsername(t *testing.T) {
	repo := &fakeChatRepo{}
	userID := uuid.New()
	users := &fakeUserRepo{users: map[uuid.UUID]*models.User{
		userID: {ID: userID, Username: "alice"},
	}}
	svc := NewChatService(logger.New("local"), repo, users, &fakeCompletion{})

	msg, err := svc.SendMessage(context.Background(), userID, "hello")
	assert.NoError(t, err)
	assert.Equal(t, "alice", msg.SenderName)
	assert.Equal(t, "hello", msg.Message)

	_, err = svc.SendMessage(context.Background(), uuid.New(), "hi")
	assert.ErrorIs(t, err, app_errors.ErrUserNotFound)
}

func TestRecentMessagesNewestFirst(t *testing.T) {
	repo := &fakeChatRepo{}
	userID := uuid.New()
	users := &fakeUserRepo{users: map[uuid.UUID]*models.User{
		userID: {ID: userID, Username: "alice"},
	}}
	svc := NewChatService(logger.New("local"), repo, users, &fakeCompletion{})

	for _, text := range []string{"one", "two", "three"} {
		_, err := svc.SendMessage(context.Background(), userID, text)
		assert.NoError(t, err)
	}

	messages, err := svc.RecentMessages(context.Background())
	assert.NoError(t, err)
	assert.Len(t, messages, 3)
	assert.Equal(t, "three", messages[0].Message)
	assert.Equal(t, "one", messages[2].Message)
}

func TestAsk(t *testing.T) {
	userRepo := &fakeUserRepo{users: map[uuid.UUID]*models.User{}}

	svc := NewChatService(logger.New("local"), &fakeChatRepo{}, userRepo, &fakeCompletion{reply: "Go is a language."})
	assert.Equal(t, "Go is a language.", svc.Ask(context.Background(), "What is Go?"))

	svc = NewChatService(logger.New("local"), &fakeChatRepo{}, userRepo, &fakeCompletion{err: app_errors.ErrCompletionUnavailable})
	assert.Equal(t, botFallbackReply, svc.Ask(context.Background(), "What is Go?"))

	svc = NewChatService(logger.New("local"), &fakeChatRepo{}, userRepo, &fakeCompletion{reply: "   "})
	assert.Equal(t, botFallbackReply, svc.Ask(context.Background(), "What is Go?"))
}
