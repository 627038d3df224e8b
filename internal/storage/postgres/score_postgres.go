package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kkarthika293/Learn-Edge/internal/app_errors"
	"github.com/kkarthika293/Learn-Edge/internal/models"
)

type ScorePostgres struct {
	db *pgxpool.Pool
}

func NewScorePostgres(db *pgxpool.Pool) *ScorePostgres {
	return &ScorePostgres{db: db}
}

// SaveAttempt persists every per-question answer plus the score row in one
// transaction: an attempt is either fully recorded or leaves no trace.
func (r *ScorePostgres) SaveAttempt(ctx context.Context, answers []models.UserAnswer, score models.Score) (*models.Score, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	insertAnswer := `
		INSERT INTO user_answers (id, user_id, question_id, selected_answer, is_correct)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, a := range answers {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		if _, err = tx.Exec(ctx, insertAnswer, a.ID, a.UserID, a.QuestionID, a.SelectedAnswer, a.IsCorrect); err != nil {
			return nil, err
		}
	}

	insertScore := `
		INSERT INTO scores (id, user_id, course_id, score)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	if score.ID == uuid.Nil {
		score.ID = uuid.New()
	}
	err = tx.QueryRow(ctx, insertScore, score.ID, score.UserID, score.CourseID, score.Score).Scan(&score.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &score, nil
}

func (r *ScorePostgres) ScoresByUser(ctx context.Context, userID uuid.UUID) ([]models.Score, error) {
	query := `
		SELECT id, user_id, course_id, score, created_at
		FROM scores
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []models.Score
	for rows.Next() {
		var s models.Score
		if err := rows.Scan(&s.ID, &s.UserID, &s.CourseID, &s.Score, &s.CreatedAt); err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}

func (r *ScorePostgres) LatestScore(ctx context.Context, userID uuid.UUID) (*models.Score, error) {
	query := `
		SELECT id, user_id, course_id, score, created_at
		FROM scores
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	var s models.Score
	err := r.db.QueryRow(ctx, query, userID).Scan(&s.ID, &s.UserID, &s.CourseID, &s.Score, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrScoreNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *ScorePostgres) ListScores(ctx context.Context) ([]models.Score, error) {
	query := `
		SELECT id, user_id, course_id, score, created_at
		FROM scores
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []models.Score
	for rows.Next() {
		var s models.Score
		if err := rows.Scan(&s.ID, &s.UserID, &s.CourseID, &s.Score, &s.CreatedAt); err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}
