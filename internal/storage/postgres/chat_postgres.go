package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kkarthika293/Learn-Edge/internal/models"
)

type ChatPostgres struct {
	db *pgxpool.Pool
}

func NewChatPostgres(db *pgxpool.Pool) *ChatPostgres {
	return &ChatPostgres{db: db}
}

func (r *ChatPostgres) Append(ctx context.Context, msg models.ChatMessage) (*models.ChatMessage, error) {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	query := `
		INSERT INTO chat_messages (id, sender_id, sender_name, message)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, msg.ID, msg.SenderID, msg.SenderName, msg.Message).Scan(&msg.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// Recent returns the newest messages first.
func (r *ChatPostgres) Recent(ctx context.Context, limit int) ([]models.ChatMessage, error) {
	query := `
		SELECT id, sender_id, sender_name, message, created_at
		FROM chat_messages
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.SenderID, &m.SenderName, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
