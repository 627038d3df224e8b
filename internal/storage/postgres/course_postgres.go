package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kkarthika293/Learn-Edge/internal/app_errors"
	"github.com/kkarthika293/Learn-Edge/internal/models"
)

type CoursePostgres struct {
	db *pgxpool.Pool
}

func NewCoursePostgres(db *pgxpool.Pool) *CoursePostgres {
	return &CoursePostgres{db: db}
}

const courseColumns = `
	id, name, contents, duration, description, difficulty, category,
	thumbnail_key, pdf_key, views, users_completed, created_at, updated_at
`

func scanCourse(row pgx.Row) (*models.Course, error) {
	course := &models.Course{}
	err := row.Scan(
		&course.ID,
		&course.Name,
		&course.Contents,
		&course.Duration,
		&course.Description,
		&course.Difficulty,
		&course.Category,
		&course.ThumbnailKey,
		&course.PDFKey,
		&course.Views,
		&course.UsersCompleted,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

// NewCourse inserts the course and its video links in one transaction.
func (r *CoursePostgres) NewCourse(ctx context.Context, course *models.Course, videoLinks []string) (uuid.UUID, error) {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	query := `
		INSERT INTO courses (
			id, name, contents, duration, description, difficulty, category,
			thumbnail_key, pdf_key, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11
		)
		RETURNING id
	`
	var returnedID uuid.UUID
	err = tx.QueryRow(
		ctx,
		query,
		course.ID,
		course.Name,
		course.Contents,
		course.Duration,
		course.Description,
		course.Difficulty,
		course.Category,
		course.ThumbnailKey,
		course.PDFKey,
		course.CreatedAt,
		course.UpdatedAt,
	).Scan(&returnedID)
	if err != nil {
		return uuid.Nil, err
	}

	insertVideo := `INSERT INTO course_videos (id, video_link, course_id) VALUES ($1, $2, $3)`
	for _, link := range videoLinks {
		if _, err = tx.Exec(ctx, insertVideo, uuid.New(), link, returnedID); err != nil {
			return uuid.Nil, err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return uuid.Nil, err
	}
	return returnedID, nil
}

func (r *CoursePostgres) CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	return scanCourse(r.db.QueryRow(ctx, query, id))
}

func (r *CoursePostgres) ListCourses(ctx context.Context) ([]models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *course)
	}
	return courses, rows.Err()
}

func (r *CoursePostgres) UpdateCourse(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		   SET name        = $2,
		       contents    = $3,
		       duration    = $4,
		       description = $5,
		       difficulty  = $6,
		       category    = $7,
		       updated_at  = NOW()
		 WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query,
		course.ID, course.Name, course.Contents, course.Duration,
		course.Description, course.Difficulty, course.Category)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrCourseNotFound
	}
	return nil
}

// DeleteCourse relies on the schema: videos and questions cascade, scores keep
// their rows with course_id set to NULL.
func (r *CoursePostgres) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrCourseNotFound
	}
	return nil
}

func (r *CoursePostgres) VideosByCourse(ctx context.Context, courseID uuid.UUID) ([]models.CourseVideo, error) {
	query := `SELECT id, video_link, course_id FROM course_videos WHERE course_id = $1`
	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []models.CourseVideo
	for rows.Next() {
		var v models.CourseVideo
		if err := rows.Scan(&v.ID, &v.VideoLink, &v.CourseID); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// IncrementViews is a single atomic statement: concurrent visits never lose
// updates.
func (r *CoursePostgres) IncrementViews(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE courses SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrCourseNotFound
	}
	return nil
}

func (r *CoursePostgres) IncrementCompleted(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE courses SET users_completed = users_completed + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrCourseNotFound
	}
	return nil
}

func (r *CoursePostgres) CourseStats(ctx context.Context) ([]models.CourseStats, error) {
	query := `SELECT id, name, views, users_completed FROM courses ORDER BY views DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.CourseStats
	for rows.Next() {
		var s models.CourseStats
		if err := rows.Scan(&s.ID, &s.Name, &s.Views, &s.UsersCompleted); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
