package models

import (
	"time"

	"github.com/google/uuid"
)

// Option letters stored for bank questions. Generated questions arrive with a
// 0-based index and are converted before persisting.
var OptionLetters = []string{"A", "B", "C", "D"}

type Question struct {
	ID            uuid.UUID
	Topic         string
	Text          string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectAnswer string
	CourseID      *uuid.UUID
}

// QuestionView is a question as shown to a quiz taker: the correct letter is
// stripped.
type QuestionView struct {
	ID      uuid.UUID `json:"id"`
	Topic   string    `json:"topic"`
	Text    string    `json:"text"`
	Options []string  `json:"options"`
}

func (q Question) View() QuestionView {
	return QuestionView{
		ID:      q.ID,
		Topic:   q.Topic,
		Text:    q.Text,
		Options: []string{q.OptionA, q.OptionB, q.OptionC, q.OptionD},
	}
}

type UserAnswer struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	QuestionID     uuid.UUID
	SelectedAnswer string
	IsCorrect      bool
	CreatedAt      time.Time
}

type Score struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	CourseID  *uuid.UUID `json:"course_id,omitempty"`
	Score     int        `json:"score"`
	CreatedAt time.Time  `json:"created_at"`
}

// GeneratedQuestion is one item of the completion service's payload after
// shape validation.
type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}
