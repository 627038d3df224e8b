package course

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kkarthika293/Learn-Edge/internal/app_errors"
	"github.com/kkarthika293/Learn-Edge/internal/models"
	"github.com/kkarthika293/Learn-Edge/pkg/logger"
)

type QueryService interface {
	ListCourses(ctx context.Context) ([]models.CoursePreview, error)
	SearchCourses(ctx context.Context, query string, size int) ([]models.CoursePreview, error)
	ViewCourse(ctx context.Context, id uuid.UUID) (*models.CourseDetail, error)
	CompleteCourse(ctx context.Context, id uuid.UUID) error
	PDFDownloadURL(ctx context.Context, courseID uuid.UUID) (string, error)
}

type QueryHandler struct {
	log     logger.Log
	service QueryService
}

func NewQueryHandler(log logger.Log, s QueryService) *QueryHandler {
	return &QueryHandler{
		log:     log,
		service: s,
	}
}

func (h *QueryHandler) ListCourses(c *gin.Context) {
	previews, err := h.service.ListCourses(c.Request.Context())
	if err != nil {
		h.log.ErrorErr("ListCourses failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch courses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": previews})
}

func (h *QueryHandler) SearchCourses(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	size := 10
	if s := c.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		size = v
	}

	previews, err := h.service.SearchCourses(c.Request.Context(), q, size)
	if err != nil {
		h.log.ErrorErr("SearchCourses failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not search courses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": previews})
}

// ViewCourse returns the full detail with video links and bumps the view
// counter.
func (h *QueryHandler) ViewCourse(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	detail, err := h.service.ViewCourse(c.Request.Context(), courseID)
	if err != nil {
		if errors.Is(err, app_errors.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("ViewCourse failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *QueryHandler) CompleteCourse(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	if err := h.service.CompleteCourse(c.Request.Context(), courseID); err != nil {
		if errors.Is(err, app_errors.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("CompleteCourse failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "completion recorded"})
}

func (h *QueryHandler) DownloadPDF(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	url, err := h.service.PDFDownloadURL(c.Request.Context(), courseID)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrCourseNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, app_errors.ErrFileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			h.log.ErrorErr("DownloadPDF failed", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
