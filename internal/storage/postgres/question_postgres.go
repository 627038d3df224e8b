package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kkarthika293/Learn-Edge/internal/models"
)

type QuestionPostgres struct {
	db *pgxpool.Pool
}

func NewQuestionPostgres(db *pgxpool.Pool) *QuestionPostgres {
	return &QuestionPostgres{db: db}
}

func (r *QuestionPostgres) Topics(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT topic FROM questions ORDER BY topic`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []string
	for rows.Next() {
		var topic string
		if err := rows.Scan(&topic); err != nil {
			return nil, err
		}
		topics = append(topics, topic)
	}
	return topics, rows.Err()
}

func (r *QuestionPostgres) QuestionsByTopic(ctx context.Context, topic string, limit int) ([]models.Question, error) {
	query := `
		SELECT id, topic, text, option_a, option_b, option_c, option_d, correct_answer, course_id
		FROM questions
		WHERE topic = $1
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, topic, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		err := rows.Scan(&q.ID, &q.Topic, &q.Text, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &q.CorrectAnswer, &q.CourseID)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (r *QuestionPostgres) QuestionsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Question, error) {
	query := `
		SELECT id, topic, text, option_a, option_b, option_c, option_d, correct_answer, course_id
		FROM questions
		WHERE id = ANY($1)
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		err := rows.Scan(&q.ID, &q.Topic, &q.Text, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &q.CorrectAnswer, &q.CourseID)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (r *QuestionPostgres) CreateQuestions(ctx context.Context, questions []models.Question) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	query := `
		INSERT INTO questions (id, topic, text, option_a, option_b, option_c, option_d, correct_answer, course_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for _, q := range questions {
		if q.ID == uuid.Nil {
			q.ID = uuid.New()
		}
		_, err = tx.Exec(ctx, query,
			q.ID, q.Topic, q.Text, q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectAnswer, q.CourseID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
