package quiz

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/kkarthika293/Learn-Edge/internal/app_errors"
	"github.com/kkarthika293/Learn-Edge/internal/models"
	"github.com/kkarthika293/Learn-Edge/pkg/logger"
)

type fakeQuestionRepo struct {
	questions map[uuid.UUID]models.Question
	created   []models.Question
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: make(map[uuid.UUID]models.Question)}
}

func (r *fakeQuestionRepo) Topics(_ context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	var topics []string
	for _, q := range r.questions {
		if _, ok := seen[q.Topic]; !ok {
			seen[q.Topic] = struct{}{}
			topics = append(topics, q.Topic)
		}
	}
	return topics, nil
}

func (r *fakeQuestionRepo) QuestionsByTopic(_ context.Context, topic string, limit int) ([]models.Question, error) {
	var out []models.Question
	for _, q := range r.questions {
		if q.Topic == topic && len(out) < limit {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) QuestionsByIDs(_ context.Context, ids []uuid.UUID) ([]models.Question, error) {
	var out []models.Question
	for _, id := range ids {
		if q, ok := r.questions[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) CreateQuestions(_ context.Context, questions []models.Question) error {
	for _, q := range questions {
		r.questions[q.ID] = q
		r.created = append(r.created, q)
	}
	return nil
}

type fakeScoreRepo struct {
	scores  []models.Score
	answers []models.UserAnswer
}

func (r *fakeScoreRepo) SaveAttempt(_ context.Context, answers []models.UserAnswer, score models.Score) (*models.Score, error) {
	score.ID = uuid.New()
	r.answers = append(r.answers, answers...)
	r.scores = append(r.scores, score)
	return &score, nil
}

func (r *fakeScoreRepo) ScoresByUser(_ context.Context, userID uuid.UUID) ([]models.Score, error) {
	var out []models.Score
	for _, s := range r.scores {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeScoreRepo) LatestScore(_ context.Context, userID uuid.UUID) (*models.Score, error) {
	for i := len(r.scores) - 1; i >= 0; i-- {
		if r.scores[i].UserID == userID {
			return &r.scores[i], nil
		}
	}
	return nil, app_errors.ErrScoreNotFound
}

func (r *fakeScoreRepo) ListScores(_ context.Context) ([]models.Score, error) {
	return r.scores, nil
}

type fakeCourseRepo struct {
	courses map[uuid.UUID]*models.Course
}

func (r *fakeCourseRepo) CourseByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, app_errors.ErrCourseNotFound
	}
	return c, nil
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

type fakeIssuer struct {
	issued []string
}

func (i *fakeIssuer) Issue(_ context.Context, user *models.User, courseName string) (string, error) {
	i.issued = append(i.issued, user.Username+"/"+courseName)
	return courseName + ".pdf", nil
}

type fixture struct {
	svc       *QuizService
	questions *fakeQuestionRepo
	scores    *fakeScoreRepo
	courses   *fakeCourseRepo
	users     *fakeUserRepo
	llm       *fakeCompletion
	issuer    *fakeIssuer
}

func newFixture() *fixture {
	f := &fixture{
		questions: newFakeQuestionRepo(),
		scores:    &fakeScoreRepo{},
		courses:   &fakeCourseRepo{courses: make(map[uuid.UUID]*models.Course)},
		users:     &fakeUserRepo{users: make(map[uuid.UUID]*models.User)},
		llm:       &fakeCompletion{},
		issuer:    &fakeIssuer{},
	}
	f.svc = NewQuizService(logger.New("local"), f.questions, f.scores, f.courses, f.users, f.llm, f.issuer, 7)
	return f
}

func (f *fixture) addQuestion(topic, correct string, courseID *uuid.UUID) models.Question {
	q := models.Question{
		ID:            uuid.New(),
		Topic:         topic,
		Text:          "q " + topic,
		OptionA:       "a",
		OptionB:       "b",
		OptionC:       "c",
		OptionD:       "d",
		CorrectAnswer: correct,
		CourseID:      courseID,
	}
	f.questions.questions[q.ID] = q
	return q
}

func TestQuestionsByTopic(t *testing.T) {
	f := newFixture()
	f.addQuestion("go", "A", nil)
	f.addQuestion("go", "B", nil)

	views, err := f.svc.QuestionsByTopic(context.Background(), "go")
	assert.NoError(t, err)
	assert.Len(t, views, 2)
	for _, v := range views {
		assert.Len(t, v.Options, 4)
	}

	_, err = f.svc.QuestionsByTopic(context.Background(), "missing")
	assert.ErrorIs(t, err, app_errors.ErrTopicNotFound)
}

func TestAddQuestions(t *testing.T) {
	f := newFixture()

	err := f.svc.AddQuestions(context.Background(), []models.Question{
		{Topic: "go", Text: "q1", OptionA: "1", OptionB: "2", OptionC: "3", OptionD: "4", CorrectAnswer: "b"},
		{Topic: "go", Text: "q2", OptionA: "1", OptionB: "2", OptionC: "3", OptionD: "4", CorrectAnswer: " D "},
	})
	assert.NoError(t, err)
	assert.Len(t, f.questions.created, 2)
	assert.Equal(t, "B", f.questions.created[0].CorrectAnswer)
	assert.Equal(t, "D", f.questions.created[1].CorrectAnswer)
	assert.NotEqual(t, uuid.Nil, f.questions.created[0].ID)
}

func TestAddQuestionsRejectsMalformed(t *testing.T) {
	tests := []struct {
		name     string
		question models.Question
	}{
		{name: "missing topic", question: models.Question{Text: "q", OptionA: "1", OptionB: "2", OptionC: "3", OptionD: "4", CorrectAnswer: "A"}},
		{name: "missing option", question: models.Question{Topic: "go", Text: "q", OptionA: "1", OptionB: "2", OptionC: "3", CorrectAnswer: "A"}},
		{name: "bad letter", question: models.Question{Topic: "go", Text: "q", OptionA: "1", OptionB: "2", OptionC: "3", OptionD: "4", CorrectAnswer: "E"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			err := f.svc.AddQuestions(context.Background(), []models.Question{tt.question})
			assert.ErrorIs(t, err, app_errors.ErrInvalidQuestion)
			assert.Empty(t, f.questions.created)
		})
	}

	f := newFixture()
	err := f.svc.AddQuestions(context.Background(), nil)
	assert.ErrorIs(t, err, app_errors.ErrInvalidQuestion)
}

func TestSubmitAttemptScoring(t *testing.T) {
	f := newFixture()
	q1 := f.addQuestion("go", "A", nil)
	q2 := f.addQuestion("go", "B", nil)
	q3 := f.addQuestion("go", "C", nil)
	userID := uuid.New()

	score, err := f.svc.SubmitAttempt(context.Background(), userID, []AnswerSubmission{
		{QuestionID: q1.ID, Selected: "a"},
		{QuestionID: q2.ID, Selected: "B"},
		{QuestionID: q3.ID, Selected: "D"},
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, score.Score)
	assert.Nil(t, score.CourseID)
	assert.Len(t, f.scores.answers, 3)
	assert.Empty(t, f.issuer.issued)

	_, err = f.svc.SubmitAttempt(context.Background(), userID, []AnswerSubmission{
		{QuestionID: uuid.New(), Selected: "A"},
	})
	assert.ErrorIs(t, err, app_errors.ErrQuestionNotFound)

	_, err = f.svc.SubmitAttempt(context.Background(), userID, nil)
	assert.ErrorIs(t, err, app_errors.ErrQuestionNotFound)
}

func TestSubmitAttemptIssuesCertificate(t *testing.T) {
	f := newFixture()
	courseID := uuid.New()
	f.courses.courses[courseID] = &models.Course{ID: courseID, Name: "Go Basics"}
	userID := uuid.New()
	f.users.users[userID] = &models.User{ID: userID, Username: "alice", Email: "alice@test.test"}

	var submissions []AnswerSubmission
	for i := 0; i < 7; i++ {
		q := f.addQuestion("Go Basics", "A", &courseID)
		submissions = append(submissions, AnswerSubmission{QuestionID: q.ID, Selected: "A"})
	}

	score, err := f.svc.SubmitAttempt(context.Background(), userID, submissions)
	assert.NoError(t, err)
	assert.Equal(t, 7, score.Score)
	assert.NotNil(t, score.CourseID)
	assert.Equal(t, []string{"alice/Go Basics"}, f.issuer.issued)
}

func TestSubmitAttemptBelowThreshold(t *testing.T) {
	f := newFixture()
	courseID := uuid.New()
	f.courses.courses[courseID] = &models.Course{ID: courseID, Name: "Go Basics"}
	userID := uuid.New()
	f.users.users[userID] = &models.User{ID: userID, Username: "alice"}

	q := f.addQuestion("Go Basics", "A", &courseID)
	score, err := f.svc.SubmitAttempt(context.Background(), userID, []AnswerSubmission{
		{QuestionID: q.ID, Selected: "A"},
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, score.Score)
	assert.Empty(t, f.issuer.issued)
}

func TestIssueCertificateForLatest(t *testing.T) {
	f := newFixture()
	courseID := uuid.New()
	f.courses.courses[courseID] = &models.Course{ID: courseID, Name: "Go Basics"}
	userID := uuid.New()
	f.users.users[userID] = &models.User{ID: userID, Username: "alice"}

	_, err := f.svc.IssueCertificateForLatest(context.Background(), userID)
	assert.ErrorIs(t, err, app_errors.ErrScoreNotFound)

	f.scores.scores = append(f.scores.scores, models.Score{UserID: userID, CourseID: &courseID, Score: 8})
	path, err := f.svc.IssueCertificateForLatest(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, "Go Basics.pdf", path)
	assert.Equal(t, []string{"alice/Go Basics"}, f.issuer.issued)

	_, err = f.svc.IssueCertificateForLatest(context.Background(), uuid.New())
	assert.ErrorIs(t, err, app_errors.ErrUserNotFound)
}

func TestGenerateQuiz(t *testing.T) {
	f := newFixture()
	courseID := uuid.New()
	f.courses.courses[courseID] = &models.Course{ID: courseID, Name: "Go Basics", Contents: "goroutines, channels"}
	f.llm.reply = `[
		{"question": "What starts a goroutine?", "options": ["go", "run", "spawn", "fork"], "correct_answer": 0},
		{"question": "What joins goroutines?", "options": ["mutex", "channel", "defer", "panic"], "correct_answer": 1}
	]`

	generated, err := f.svc.GenerateQuiz(context.Background(), courseID, 2)
	assert.NoError(t, err)
	assert.Len(t, generated, 2)

	assert.Len(t, f.questions.created, 2)
	first := f.questions.created[0]
	assert.Equal(t, "Go Basics", first.Topic)
	assert.Equal(t, "A", first.CorrectAnswer)
	assert.Equal(t, &courseID, first.CourseID)
	assert.Equal(t, "B", f.questions.created[1].CorrectAnswer)
}

func TestGenerateQuizFencedPayload(t *testing.T) {
	f := newFixture()
	courseID := uuid.New()
	f.courses.courses[courseID] = &models.Course{ID: courseID, Name: "Go Basics"}
	f.llm.reply = "```json\n[{\"question\": \"q\", \"options\": [\"1\", \"2\", \"3\", \"4\"], \"correct_answer\": 3}]\n```"

	generated, err := f.svc.GenerateQuiz(context.Background(), courseID, 1)
	assert.NoError(t, err)
	assert.Len(t, generated, 1)
	assert.Equal(t, "D", f.questions.created[0].CorrectAnswer)
}

func TestGenerateQuizRejectsBadPayloads(t *testing.T) {
	courseID := uuid.New()

	tests := []struct {
		name  string
		reply string
	}{
		{name: "not an array", reply: `{"question": "q"}`},
		{name: "prose", reply: "Sure! Here are your questions."},
		{name: "empty array", reply: `[]`},
		{name: "three options", reply: `[{"question": "q", "options": ["1", "2", "3"], "correct_answer": 0}]`},
		{name: "answer out of range", reply: `[{"question": "q", "options": ["1", "2", "3", "4"], "correct_answer": 5}]`},
		{name: "negative answer", reply: `[{"question": "q", "options": ["1", "2", "3", "4"], "correct_answer": -1}]`},
		{name: "missing question text", reply: `[{"question": " ", "options": ["1", "2", "3", "4"], "correct_answer": 0}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.courses.courses[courseID] = &models.Course{ID: courseID, Name: "Go Basics"}
			f.llm.reply = tt.reply

			_, err := f.svc.GenerateQuiz(context.Background(), courseID, 1)
			assert.ErrorIs(t, err, app_errors.ErrBadQuizPayload)
			assert.Empty(t, f.questions.created)
		})
	}
}

func TestGenerateQuizProviderDown(t *testing.T) {
	f := newFixture()
	courseID := uuid.New()
	f.courses.courses[courseID] = &models.Course{ID: courseID, Name: "Go Basics"}
	f.llm.err = app_errors.ErrCompletionUnavailable

	_, err := f.svc.GenerateQuiz(context.Background(), courseID, 1)
	assert.ErrorIs(t, err, app_errors.ErrCompletionUnavailable)
	assert.Empty(t, f.questions.created)
}
