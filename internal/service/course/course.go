package course

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/kkarthika293/Learn-Edge/internal/app_errors"
	"github.com/kkarthika293/Learn-Edge/internal/models"
	"github.com/kkarthika293/Learn-Edge/pkg/logger"
)

const maxVideoLinks = 10

type courseRepo interface {
	NewCourse(ctx context.Context, course *models.Course, videoLinks []string) (uuid.UUID, error)
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	ListCourses(ctx context.Context) ([]models.Course, error)
	UpdateCourse(ctx context.Context, course *models.Course) error
	DeleteCourse(ctx context.Context, id uuid.UUID) error
	VideosByCourse(ctx context.Context, courseID uuid.UUID) ([]models.CourseVideo, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	IncrementCompleted(ctx context.Context, id uuid.UUID) error
	CourseStats(ctx context.Context) ([]models.CourseStats, error)
}

type mediaStorage interface {
	UploadThumbnail(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
	UploadPDF(ctx context.Context, filename string, reader io.Reader, size int64) (string, error)
	GetURL(ctx context.Context, objectKey string) (string, error)
	Delete(ctx context.Context, objectKey string) error
}

type searchRepo interface {
	Index(ctx context.Context, course models.Course) error
	Update(ctx context.Context, course models.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string, size int) ([]uuid.UUID, error)
}

type Upload struct {
	Filename    string
	Reader      io.Reader
	Size        int64
	ContentType string
}

type CourseService struct {
	log          logger.Log
	courseRepo   courseRepo
	mediaStorage mediaStorage
	searchRepo   searchRepo
}

func NewCourseService(l logger.Log, repo courseRepo, media mediaStorage, search searchRepo) *CourseService {
	return &CourseService{
		log:          l,
		courseRepo:   repo,
		mediaStorage: media,
		searchRepo:   search,
	}
}

// CreateCourse persists the course with up to ten video links and the optional
// thumbnail/PDF uploads. Only the duration gets type coercion upstream; no
// further validation by design.
func (s *CourseService) CreateCourse(ctx context.Context, course models.Course, videoLinks []string, thumbnail, pdf *Upload) (uuid.UUID, error) {
	if len(videoLinks) > maxVideoLinks {
		return uuid.Nil, app_errors.ErrVideoLimit
	}
	if course.Difficulty == "" {
		course.Difficulty = models.DefaultDifficulty
	}

	if thumbnail != nil {
		key, err := s.mediaStorage.UploadThumbnail(ctx, thumbnail.Filename, thumbnail.Reader, thumbnail.Size, thumbnail.ContentType)
		if err != nil {
			return uuid.Nil, err
		}
		course.ThumbnailKey = key
	}
	if pdf != nil {
		if !strings.EqualFold(filepath.Ext(pdf.Filename), ".pdf") {
			return uuid.Nil, app_errors.ErrNotPDF
		}
		key, err := s.mediaStorage.UploadPDF(ctx, pdf.Filename, pdf.Reader, pdf.Size)
		if err != nil {
			return uuid.Nil, err
		}
		course.PDFKey = key
	}

	id, err := s.courseRepo.NewCourse(ctx, &course, videoLinks)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.searchRepo.Index(ctx, course); err != nil {
		s.log.ErrorErr("CreateCourse: failed to index course", err)
	}
	return id, nil
}

func (s *CourseService) UpdateCourse(ctx context.Context, course models.Course) error {
	existing, err := s.courseRepo.CourseByID(ctx, course.ID)
	if err != nil {
		return err
	}
	course.ThumbnailKey = existing.ThumbnailKey
	course.PDFKey = existing.PDFKey

	if err := s.courseRepo.UpdateCourse(ctx, &course); err != nil {
		return err
	}
	if err := s.searchRepo.Update(ctx, course); err != nil {
		s.log.ErrorErr("UpdateCourse: failed to update search index", err)
	}
	return nil
}

// DeleteCourse removes the row (videos and questions cascade, scores are
// detached), then cleans up media objects and the search document.
func (s *CourseService) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	course, err := s.courseRepo.CourseByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.courseRepo.DeleteCourse(ctx, id); err != nil {
		return err
	}

	if course.ThumbnailKey != "" {
		if err := s.mediaStorage.Delete(ctx, course.ThumbnailKey); err != nil {
			s.log.ErrorErr("DeleteCourse: failed to delete thumbnail", err)
		}
	}
	if course.PDFKey != "" {
		if err := s.mediaStorage.Delete(ctx, course.PDFKey); err != nil {
			s.log.ErrorErr("DeleteCourse: failed to delete pdf", err)
		}
	}
	if err := s.searchRepo.Delete(ctx, id); err != nil {
		s.log.ErrorErr("DeleteCourse: failed to delete search document", err)
	}
	return nil
}

func (s *CourseService) preview(ctx context.Context, course models.Course) models.CoursePreview {
	thumbnailURL := ""
	if course.ThumbnailKey != "" {
		u, err := s.mediaStorage.GetURL(ctx, course.ThumbnailKey)
		if err != nil {
			s.log.ErrorErr("preview: failed to get thumbnail URL", err)
		} else {
			thumbnailURL = u
		}
	}
	return models.CoursePreview{
		ID:             course.ID,
		Name:           course.Name,
		Description:    course.Description,
		Difficulty:     course.Difficulty,
		Category:       course.Category,
		Duration:       course.Duration,
		ThumbnailURL:   thumbnailURL,
		Views:          course.Views,
		UsersCompleted: course.UsersCompleted,
	}
}

func (s *CourseService) ListCourses(ctx context.Context) ([]models.CoursePreview, error) {
	courses, err := s.courseRepo.ListCourses(ctx)
	if err != nil {
		return nil, err
	}

	previews := make([]models.CoursePreview, 0, len(courses))
	for _, c := range courses {
		previews = append(previews, s.preview(ctx, c))
	}
	return previews, nil
}

// ViewCourse returns the course detail and counts the visit. Every visit
// counts; there is no per-user dedup.
func (s *CourseService) ViewCourse(ctx context.Context, id uuid.UUID) (*models.CourseDetail, error) {
	if err := s.courseRepo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	course, err := s.courseRepo.CourseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	videos, err := s.courseRepo.VideosByCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.CourseDetail{Course: *course, Videos: videos}, nil
}

func (s *CourseService) CompleteCourse(ctx context.Context, id uuid.UUID) error {
	return s.courseRepo.IncrementCompleted(ctx, id)
}

func (s *CourseService) SearchCourses(ctx context.Context, query string, size int) ([]models.CoursePreview, error) {
	ids, err := s.searchRepo.Search(ctx, query, size)
	if err != nil {
		return nil, err
	}

	previews := make([]models.CoursePreview, 0, len(ids))
	for _, id := range ids {
		course, err := s.courseRepo.CourseByID(ctx, id)
		if err != nil {
			s.log.ErrorErr("SearchCourses: failed to load course by id", err)
			continue
		}
		previews = append(previews, s.preview(ctx, *course))
	}
	return previews, nil
}

func (s *CourseService) PDFDownloadURL(ctx context.Context, courseID uuid.UUID) (string, error) {
	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return "", err
	}
	if course.PDFKey == "" {
		return "", app_errors.ErrFileNotFound
	}
	return s.mediaStorage.GetURL(ctx, course.PDFKey)
}

func (s *CourseService) Analytics(ctx context.Context) ([]models.CourseStats, error) {
	return s.courseRepo.CourseStats(ctx)
}
