package quiz

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/kkarthika293/Learn-Edge/internal/app_errors"
	"github.com/kkarthika293/Learn-Edge/internal/models"
	"github.com/kkarthika293/Learn-Edge/pkg/logger"
)

const defaultQuestionLimit = 10

type questionRepo interface {
	Topics(ctx context.Context) ([]string, error)
	QuestionsByTopic(ctx context.Context, topic string, limit int) ([]models.Question, error)
	QuestionsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Question, error)
	CreateQuestions(ctx context.Context, questions []models.Question) error
}

type scoreRepo interface {
	SaveAttempt(ctx context.Context, answers []models.UserAnswer, score models.Score) (*models.Score, error)
	ScoresByUser(ctx context.Context, userID uuid.UUID) ([]models.Score, error)
	LatestScore(ctx context.Context, userID uuid.UUID) (*models.Score, error)
	ListScores(ctx context.Context) ([]models.Score, error)
}

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
}

type userRepo interface {
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type completionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type certificateIssuer interface {
	Issue(ctx context.Context, user *models.User, courseName string) (string, error)
}

// AnswerSubmission is one answered question of a quiz attempt.
type AnswerSubmission struct {
	QuestionID uuid.UUID `json:"question_id"`
	Selected   string    `json:"selected"`
}

type QuizService struct {
	log          logger.Log
	questionRepo questionRepo
	scoreRepo    scoreRepo
	courseRepo   courseRepo
	userRepo     userRepo
	completion   completionClient
	certificates certificateIssuer
	threshold    int
}

func NewQuizService(
	l logger.Log,
	qRepo questionRepo,
	sRepo scoreRepo,
	cRepo courseRepo,
	uRepo userRepo,
	completion completionClient,
	certificates certificateIssuer,
	threshold int,
) *QuizService {
	return &QuizService{
		log:          l,
		questionRepo: qRepo,
		scoreRepo:    sRepo,
		courseRepo:   cRepo,
		userRepo:     uRepo,
		completion:   completion,
		certificates: certificates,
		threshold:    threshold,
	}
}

func (s *QuizService) Topics(ctx context.Context) ([]string, error) {
	return s.questionRepo.Topics(ctx)
}

// AddQuestions stores a batch of bank questions. The whole batch is rejected
// when any entry is malformed.
func (s *QuizService) AddQuestions(ctx context.Context, questions []models.Question) error {
	if len(questions) == 0 {
		return app_errors.ErrInvalidQuestion
	}
	for i := range questions {
		q := &questions[i]
		q.CorrectAnswer = strings.ToUpper(strings.TrimSpace(q.CorrectAnswer))
		if q.Topic == "" || q.Text == "" ||
			q.OptionA == "" || q.OptionB == "" || q.OptionC == "" || q.OptionD == "" ||
			!validLetter(q.CorrectAnswer) {
			return app_errors.ErrInvalidQuestion
		}
		if q.ID == uuid.Nil {
			q.ID = uuid.New()
		}
	}
	return s.questionRepo.CreateQuestions(ctx, questions)
}

func validLetter(letter string) bool {
	for _, l := range models.OptionLetters {
		if letter == l {
			return true
		}
	}
	return false
}

// QuestionsByTopic returns up to ten bank questions with the correct letters
// stripped. An unknown topic is indistinguishable from an empty one and maps
// to ErrTopicNotFound.
func (s *QuizService) QuestionsByTopic(ctx context.Context, topic string) ([]models.QuestionView, error) {
	questions, err := s.questionRepo.QuestionsByTopic(ctx, topic, defaultQuestionLimit)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, app_errors.ErrTopicNotFound
	}

	views := make([]models.QuestionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, q.View())
	}
	return views, nil
}

// SubmitAttempt grades the submitted answers against the stored correct
// letters and records the attempt atomically. When every answered question
// belongs to the same course and the score reaches the threshold, a
// certificate is issued; a failure there does not undo the recorded attempt.
func (s *QuizService) SubmitAttempt(ctx context.Context, userID uuid.UUID, submissions []AnswerSubmission) (*models.Score, error) {
	if len(submissions) == 0 {
		return nil, app_errors.ErrQuestionNotFound
	}

	ids := make([]uuid.UUID, 0, len(submissions))
	for _, sub := range submissions {
		ids = append(ids, sub.QuestionID)
	}
	questions, err := s.questionRepo.QuestionsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	var (
		answers  []models.UserAnswer
		correct  int
		courseID *uuid.UUID
		mixed    bool
	)
	for i, sub := range submissions {
		q, ok := byID[sub.QuestionID]
		if !ok {
			return nil, app_errors.ErrQuestionNotFound
		}

		isCorrect := strings.EqualFold(sub.Selected, q.CorrectAnswer)
		if isCorrect {
			correct++
		}
		answers = append(answers, models.UserAnswer{
			UserID:         userID,
			QuestionID:     q.ID,
			SelectedAnswer: strings.ToUpper(sub.Selected),
			IsCorrect:      isCorrect,
		})

		if i == 0 {
			courseID = q.CourseID
		} else if !sameCourse(courseID, q.CourseID) {
			mixed = true
		}
	}
	if mixed {
		courseID = nil
	}

	score, err := s.scoreRepo.SaveAttempt(ctx, answers, models.Score{
		UserID:   userID,
		CourseID: courseID,
		Score:    correct,
	})
	if err != nil {
		return nil, err
	}

	if courseID != nil && correct >= s.threshold {
		if err := s.issueCertificate(ctx, userID, *courseID); err != nil {
			s.log.ErrorErr("SubmitAttempt: failed to issue certificate", err)
		}
	}
	return score, nil
}

func sameCourse(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *QuizService) issueCertificate(ctx context.Context, userID, courseID uuid.UUID) error {
	user, err := s.userRepo.UserByID(ctx, userID)
	if err != nil {
		return err
	}
	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return err
	}
	_, err = s.certificates.Issue(ctx, user, course.Name)
	return err
}

// IssueCertificateForLatest renders and emails a certificate for the user's
// most recent attempt on demand. A user without any recorded score gets
// ErrScoreNotFound.
func (s *QuizService) IssueCertificateForLatest(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := s.userRepo.UserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	score, err := s.scoreRepo.LatestScore(ctx, userID)
	if err != nil {
		return "", err
	}

	courseName := "LearnEdge"
	if score.CourseID != nil {
		if course, err := s.courseRepo.CourseByID(ctx, *score.CourseID); err == nil {
			courseName = course.Name
		}
	}
	return s.certificates.Issue(ctx, user, courseName)
}

func (s *QuizService) ScoresByUser(ctx context.Context, userID uuid.UUID) ([]models.Score, error) {
	return s.scoreRepo.ScoresByUser(ctx, userID)
}

func (s *QuizService) LatestScore(ctx context.Context, userID uuid.UUID) (*models.Score, error) {
	return s.scoreRepo.LatestScore(ctx, userID)
}

func (s *QuizService) ListScores(ctx context.Context) ([]models.Score, error) {
	return s.scoreRepo.ListScores(ctx)
}
