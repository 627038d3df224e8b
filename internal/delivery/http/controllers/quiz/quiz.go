package quiz

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kkarthika293/Learn-Edge/internal/app_errors"
	"github.com/kkarthika293/Learn-Edge/internal/delivery/http/controllers/middleware"
	"github.com/kkarthika293/Learn-Edge/internal/models"
	"github.com/kkarthika293/Learn-Edge/internal/service/quiz"
	"github.com/kkarthika293/Learn-Edge/pkg/logger"
)

type QuizService interface {
	Topics(ctx context.Context) ([]string, error)
	AddQuestions(ctx context.Context, questions []models.Question) error
	QuestionsByTopic(ctx context.Context, topic string) ([]models.QuestionView, error)
	SubmitAttempt(ctx context.Context, userID uuid.UUID, submissions []quiz.AnswerSubmission) (*models.Score, error)
	GenerateQuiz(ctx context.Context, courseID uuid.UUID, count int) ([]models.GeneratedQuestion, error)
	ScoresByUser(ctx context.Context, userID uuid.UUID) ([]models.Score, error)
	LatestScore(ctx context.Context, userID uuid.UUID) (*models.Score, error)
	ListScores(ctx context.Context) ([]models.Score, error)
}

type QuizHandler struct {
	log     logger.Log
	service QuizService
}

func NewQuizHandler(l logger.Log, s QuizService) *QuizHandler {
	return &QuizHandler{
		log:     l,
		service: s,
	}
}

func (h *QuizHandler) Topics(c *gin.Context) {
	topics, err := h.service.Topics(c.Request.Context())
	if err != nil {
		h.log.ErrorErr("Topics failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

func (h *QuizHandler) QuestionsByTopic(c *gin.Context) {
	topic := c.Param("topic")

	questions, err := h.service.QuestionsByTopic(c.Request.Context(), topic)
	if err != nil {
		if errors.Is(err, app_errors.ErrTopicNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("QuestionsByTopic failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

type newQuestionRequest struct {
	Topic         string `json:"topic" binding:"required"`
	Text          string `json:"text" binding:"required"`
	OptionA       string `json:"option_a" binding:"required"`
	OptionB       string `json:"option_b" binding:"required"`
	OptionC       string `json:"option_c" binding:"required"`
	OptionD       string `json:"option_d" binding:"required"`
	CorrectAnswer string `json:"correct_answer" binding:"required"`
	CourseID      string `json:"course_id"`
}

type addQuestionsRequest struct {
	Questions []newQuestionRequest `json:"questions" binding:"required"`
}

func (h *QuizHandler) AddQuestions(c *gin.Context) {
	var input addQuestionsRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	questions := make([]models.Question, 0, len(input.Questions))
	for _, q := range input.Questions {
		question := models.Question{
			Topic:         q.Topic,
			Text:          q.Text,
			OptionA:       q.OptionA,
			OptionB:       q.OptionB,
			OptionC:       q.OptionC,
			OptionD:       q.OptionD,
			CorrectAnswer: q.CorrectAnswer,
		}
		if q.CourseID != "" {
			courseID, err := uuid.Parse(q.CourseID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
				return
			}
			question.CourseID = &courseID
		}
		questions = append(questions, question)
	}

	if err := h.service.AddQuestions(c.Request.Context(), questions); err != nil {
		if errors.Is(err, app_errors.ErrInvalidQuestion) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("AddQuestions failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "questions added"})
}

type submitRequest struct {
	Answers map[string]string `json:"answers" binding:"required"`
}

func (h *QuizHandler) Submit(c *gin.Context) {
	userIDVal, exists := c.Get(middleware.ClientIDCtx)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	userID := userIDVal.(uuid.UUID)

	var input submitRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submissions := make([]quiz.AnswerSubmission, 0, len(input.Answers))
	for questionID, letter := range input.Answers {
		id, err := uuid.Parse(questionID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid question id: " + questionID})
			return
		}
		submissions = append(submissions, quiz.AnswerSubmission{QuestionID: id, Selected: letter})
	}

	score, err := h.service.SubmitAttempt(c.Request.Context(), userID, submissions)
	if err != nil {
		if errors.Is(err, app_errors.ErrQuestionNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("Submit failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, score)
}

type generateRequest struct {
	Count int `json:"count"`
}

func (h *QuizHandler) Generate(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	// the body is optional, a bare POST generates the default batch
	var input generateRequest
	_ = c.ShouldBindJSON(&input)

	questions, err := h.service.GenerateQuiz(c.Request.Context(), courseID, input.Count)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrCourseNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, app_errors.ErrBadQuizPayload):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		case errors.Is(err, app_errors.ErrCompletionUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		default:
			h.log.ErrorErr("Generate failed", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"mcqs": questions})
}

func (h *QuizHandler) MyScores(c *gin.Context) {
	userIDVal, exists := c.Get(middleware.ClientIDCtx)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	userID := userIDVal.(uuid.UUID)

	scores, err := h.service.ScoresByUser(c.Request.Context(), userID)
	if err != nil {
		h.log.ErrorErr("MyScores failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"scores": scores})
}

func (h *QuizHandler) MyLatestScore(c *gin.Context) {
	userIDVal, exists := c.Get(middleware.ClientIDCtx)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	userID := userIDVal.(uuid.UUID)

	score, err := h.service.LatestScore(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, app_errors.ErrScoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("MyLatestScore failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, score)
}

// ListScores is the admin view across all users.
func (h *QuizHandler) ListScores(c *gin.Context) {
	scores, err := h.service.ListScores(c.Request.Context())
	if err != nil {
		h.log.ErrorErr("ListScores failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"scores": scores})
}
