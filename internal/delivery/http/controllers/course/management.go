package course

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kkarthika293/Learn-Edge/internal/app_errors"
	"github.com/kkarthika293/Learn-Edge/internal/models"
	"github.com/kkarthika293/Learn-Edge/internal/service/course"
	"github.com/kkarthika293/Learn-Edge/pkg/logger"
)

type ManagementService interface {
	CreateCourse(ctx context.Context, c models.Course, videoLinks []string, thumbnail, pdf *course.Upload) (uuid.UUID, error)
	UpdateCourse(ctx context.Context, c models.Course) error
	DeleteCourse(ctx context.Context, id uuid.UUID) error
	Analytics(ctx context.Context) ([]models.CourseStats, error)
}

type ManagementHandler struct {
	log     logger.Log
	service ManagementService
}

func NewManagementHandler(l logger.Log, s ManagementService) *ManagementHandler {
	return &ManagementHandler{
		log:     l,
		service: s,
	}
}

// CreateCourse accepts a multipart form so the metadata, the video links and
// both file uploads arrive in a single request. The duration field tolerates
// any non-numeric value and falls back to zero.
func (h *ManagementHandler) CreateCourse(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	duration, _ := strconv.Atoi(c.PostForm("duration"))

	input := models.Course{
		Name:        name,
		Contents:    c.PostForm("contents"),
		Duration:    duration,
		Description: c.PostForm("description"),
		Difficulty:  c.PostForm("difficulty"),
		Category:    c.PostForm("category"),
	}
	videoLinks := c.PostFormArray("video_links")

	thumbnail, err := formUpload(c, "thumbnail")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot open uploaded thumbnail"})
		return
	}
	if thumbnail != nil {
		defer thumbnail.close()
	}
	pdf, err := formUpload(c, "pdf")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot open uploaded pdf"})
		return
	}
	if pdf != nil {
		defer pdf.close()
	}

	id, err := h.service.CreateCourse(c.Request.Context(), input, videoLinks, thumbnail.upload(), pdf.upload())
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrVideoLimit), errors.Is(err, app_errors.ErrNotPDF):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.log.ErrorErr("CreateCourse failed", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type formFile struct {
	file   multipart.File
	header *multipart.FileHeader
}

func formUpload(c *gin.Context, field string) (*formFile, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	return &formFile{file: file, header: header}, nil
}

func (f *formFile) close() {
	_ = f.file.Close()
}

func (f *formFile) upload() *course.Upload {
	if f == nil {
		return nil
	}
	contentType := f.header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(f.header.Filename)))
	}
	return &course.Upload{
		Filename:    f.header.Filename,
		Reader:      io.Reader(f.file),
		Size:        f.header.Size,
		ContentType: contentType,
	}
}

type updateCourseRequest struct {
	Name        string `json:"name" binding:"required"`
	Contents    string `json:"contents"`
	Duration    int    `json:"duration"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	Category    string `json:"category"`
}

func (h *ManagementHandler) UpdateCourse(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	var input updateCourseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = h.service.UpdateCourse(c.Request.Context(), models.Course{
		ID:          courseID,
		Name:        input.Name,
		Contents:    input.Contents,
		Duration:    input.Duration,
		Description: input.Description,
		Difficulty:  input.Difficulty,
		Category:    input.Category,
	})
	if err != nil {
		if errors.Is(err, app_errors.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("UpdateCourse failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "course updated"})
}

func (h *ManagementHandler) DeleteCourse(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	if err := h.service.DeleteCourse(c.Request.Context(), courseID); err != nil {
		if errors.Is(err, app_errors.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.ErrorErr("DeleteCourse failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "course deleted"})
}

func (h *ManagementHandler) Analytics(c *gin.Context) {
	stats, err := h.service.Analytics(c.Request.Context())
	if err != nil {
		h.log.ErrorErr("Analytics failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": stats})
}
