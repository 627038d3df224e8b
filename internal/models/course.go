package models

import (
	"time"

	"github.com/google/uuid"
)

const DefaultDifficulty = "intermediate"

type Course struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Contents       string    `json:"contents"`
	Duration       int       `json:"duration"`
	Description    string    `json:"description"`
	Difficulty     string    `json:"difficulty"`
	Category       string    `json:"category"`
	ThumbnailKey   string    `json:"thumbnail_key"`
	PDFKey         string    `json:"pdf_key"`
	Views          int       `json:"views"`
	UsersCompleted int       `json:"users_completed"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CourseVideo struct {
	ID        uuid.UUID `json:"id"`
	VideoLink string    `json:"video_link"`
	CourseID  uuid.UUID `json:"course_id"`
}

// CoursePreview is the catalog listing shape: counters plus a presigned
// thumbnail URL instead of the raw object key.
type CoursePreview struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Difficulty     string    `json:"difficulty"`
	Category       string    `json:"category"`
	Duration       int       `json:"duration"`
	ThumbnailURL   string    `json:"thumbnail_url"`
	Views          int       `json:"views"`
	UsersCompleted int       `json:"users_completed"`
}

type CourseDetail struct {
	Course Course        `json:"course"`
	Videos []CourseVideo `json:"videos"`
}

type CourseStats struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Views          int       `json:"views"`
	UsersCompleted int       `json:"users_completed"`
}
