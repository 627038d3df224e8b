package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kkarthika293/Learn-Edge/internal/app_errors"
	"github.com/kkarthika293/Learn-Edge/internal/models"
)

const generatePromptTemplate = `Generate %d multiple choice questions about the course %q.
Course summary: %s

Respond with ONLY a JSON array, no prose and no markdown. Each element must be
an object with exactly these keys:
  "question": string,
  "options": array of exactly 4 strings,
  "correct_answer": integer index into options, 0 to 3.`

// GenerateQuiz asks the completion provider for multiple choice questions on
// the given course and validates the payload before anything is stored. The
// provider output is untrusted input: any shape violation rejects the whole
// batch with ErrBadQuizPayload and nothing is persisted.
func (s *QuizService) GenerateQuiz(ctx context.Context, courseID uuid.UUID, count int) ([]models.GeneratedQuestion, error) {
	if count <= 0 {
		count = defaultQuestionLimit
	}

	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(generatePromptTemplate, count, course.Name, course.Contents)
	raw, err := s.completion.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	generated, err := parseGeneratedQuestions(raw)
	if err != nil {
		return nil, err
	}

	questions := make([]models.Question, 0, len(generated))
	for _, g := range generated {
		questions = append(questions, models.Question{
			ID:            uuid.New(),
			Topic:         course.Name,
			Text:          g.Question,
			OptionA:       g.Options[0],
			OptionB:       g.Options[1],
			OptionC:       g.Options[2],
			OptionD:       g.Options[3],
			CorrectAnswer: models.OptionLetters[g.CorrectAnswer],
			CourseID:      &course.ID,
		})
	}
	if err := s.questionRepo.CreateQuestions(ctx, questions); err != nil {
		return nil, err
	}

	s.log.Info("quiz generated", "course", course.Name, "questions", len(generated))
	return generated, nil
}

// parseGeneratedQuestions accepts only a JSON array of fully-shaped question
// objects. Markdown code fences around the array are tolerated since some
// providers add them despite instructions.
func parseGeneratedQuestions(raw string) ([]models.GeneratedQuestion, error) {
	trimmed := stripCodeFence(strings.TrimSpace(raw))
	if !strings.HasPrefix(trimmed, "[") {
		return nil, fmt.Errorf("%w: expected a JSON array", app_errors.ErrBadQuizPayload)
	}

	var generated []models.GeneratedQuestion
	if err := json.Unmarshal([]byte(trimmed), &generated); err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrBadQuizPayload, err)
	}
	if len(generated) == 0 {
		return nil, fmt.Errorf("%w: empty array", app_errors.ErrBadQuizPayload)
	}

	for i, g := range generated {
		if strings.TrimSpace(g.Question) == "" {
			return nil, fmt.Errorf("%w: question %d has no text", app_errors.ErrBadQuizPayload, i)
		}
		if len(g.Options) != len(models.OptionLetters) {
			return nil, fmt.Errorf("%w: question %d has %d options", app_errors.ErrBadQuizPayload, i, len(g.Options))
		}
		if g.CorrectAnswer < 0 || g.CorrectAnswer >= len(g.Options) {
			return nil, fmt.Errorf("%w: question %d has correct_answer %d", app_errors.ErrBadQuizPayload, i, g.CorrectAnswer)
		}
	}
	return generated, nil
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
