package course

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/kkarthika293/Learn-Edge/internal/app_errors"
	"github.com/kkarthika293/Learn-Edge/internal/models"
	"github.com/kkarthika293/Learn-Edge/pkg/logger"
)

type fakeCourseRepo struct {
	courses map[uuid.UUID]*models.Course
	videos  map[uuid.UUID][]models.CourseVideo
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{
		courses: make(map[uuid.UUID]*models.Course),
		videos:  make(map[uuid.UUID][]models.CourseVideo),
	}
}

func (r *fakeCourseRepo) NewCourse(_ context.Context, course *models.Course, videoLinks []string) (uuid.UUID, error) {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	c := *course
	r.courses[c.ID] = &c
	for _, link := range videoLinks {
		r.videos[c.ID] = append(r.videos[c.ID], models.CourseVideo{
			ID:        uuid.New(),
			VideoLink: link,
			CourseID:  c.ID,
		})
	}
	return c.ID, nil
}

func (r *fakeCourseRepo) CourseByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, app_errors.ErrCourseNotFound
	}
	return c, nil
}

func (r *fakeCourseRepo) ListCourses(_ context.Context) ([]models.Course, error) {
	var out []models.Course
	for _, c := range r.courses {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCourseRepo) UpdateCourse(_ context.Context, course *models.Course) error {
	if _, ok := r.courses[course.ID]; !ok {
		return app_errors.ErrCourseNotFound
	}
	c := *course
	r.courses[c.ID] = &c
	return nil
}

func (r *fakeCourseRepo) DeleteCourse(_ context.Context, id uuid.UUID) error {
	if _, ok := r.courses[id]; !ok {
		return app_errors.ErrCourseNotFound
	}
	delete(r.courses, id)
	delete(r.videos, id)
	return nil
}

func (r *fakeCourseRepo) VideosByCourse(_ context.Context, courseID uuid.UUID) ([]models.CourseVideo, error) {
	return r.videos[courseID], nil
}

func (r *fakeCourseRepo) IncrementViews(_ context.Context, id uuid.UUID) error {
	c, ok := r.courses[id]
	if !ok {
		return app_errors.ErrCourseNotFound
	}
	c.Views++
	return nil
}

func (r *fakeCourseRepo) IncrementCompleted(_ context.Context, id uuid.UUID) error {
	c, ok := r.courses[id]
	if !ok {
		return app_errors.ErrCourseNotFound
	}
	c.UsersCompleted++
	return nil
}

func (r *fakeCourseRepo) CourseStats(_ context.Context) ([]models.CourseStats, error) {
	var out []models.CourseStats
	for _, c := range r.courses {
		out = append(out, models.CourseStats{
			ID:             c.ID,
			Name:           c.Name,
			Views:          c.Views,
			UsersCompleted: c.UsersCompleted,
		})
	}
	return out, nil
}

type fakeMediaStorage struct {
	objects map[string][]byte
	deleted []string
}

func newFakeMediaStorage() *fakeMediaStorage {
	return &fakeMediaStorage{objects: make(map[string][]byte)}
}

func (s *fakeMediaStorage) UploadThumbnail(_ context.Context, filename string, reader io.Reader, _ int64, _ string) (string, error) {
	key := "thumbnails/" + filename
	data, _ := io.ReadAll(reader)
	s.objects[key] = data
	return key, nil
}

func (s *fakeMediaStorage) UploadPDF(_ context.Context, filename string, reader io.Reader, _ int64) (string, error) {
	key := "pdf/" + filename
	data, _ := io.ReadAll(reader)
	s.objects[key] = data
	return key, nil
}

func (s *fakeMediaStorage) GetURL(_ context.Context, objectKey string) (string, error) {
	if _, ok := s.objects[objectKey]; !ok {
		return "", app_errors.ErrFileNotFound
	}
	return "http://minio.local/" + objectKey, nil
}

func (s *fakeMediaStorage) Delete(_ context.Context, objectKey string) error {
	delete(s.objects, objectKey)
	s.deleted = append(s.deleted, objectKey)
	return nil
}

type fakeSearchRepo struct {
	docs    map[uuid.UUID]models.Course
	deleted []uuid.UUID
}

func newFakeSearchRepo() *fakeSearchRepo {
	return &fakeSearchRepo{docs: make(map[uuid.UUID]models.Course)}
}

func (r *fakeSearchRepo) Index(_ context.Context, course models.Course) error {
	r.docs[course.ID] = course
	return nil
}

func (r *fakeSearchRepo) Update(_ context.Context, course models.Course) error {
	r.docs[course.ID] = course
	return nil
}

func (r *fakeSearchRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.docs, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeSearchRepo) Search(_ context.Context, query string, size int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id, c := range r.docs {
		if len(ids) >= size {
			break
		}
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func newTestService() (*CourseService, *fakeCourseRepo, *fakeMediaStorage, *fakeSearchRepo) {
	repo := newFakeCourseRepo()
	media := newFakeMediaStorage()
	search := newFakeSearchRepo()
	svc := NewCourseService(logger.New("local"), repo, media, search)
	return svc, repo, media, search
}

func TestCreateCourse(t *testing.T) {
	svc, repo, media, search := newTestService()
	ctx := context.Background()

	id, err := svc.CreateCourse(ctx, models.Course{Name: "Go Basics"},
		[]string{"https://videos/1", "https://videos/2"},
		&Upload{Filename: "logo.png", Reader: strings.NewReader("img"), Size: 3, ContentType: "image/png"},
		&Upload{Filename: "notes.pdf", Reader: strings.NewReader("pdf"), Size: 3},
	)
	assert.NoError(t, err)

	stored := repo.courses[id]
	assert.Equal(t, models.DefaultDifficulty, stored.Difficulty)
	assert.Equal(t, "thumbnails/logo.png", stored.ThumbnailKey)
	assert.Equal(t, "pdf/notes.pdf", stored.PDFKey)
	assert.Len(t, repo.videos[id], 2)
	assert.Contains(t, search.docs, id)
	assert.Contains(t, media.objects, "thumbnails/logo.png")
}

func TestCreateCourseVideoLimit(t *testing.T) {
	svc, _, _, _ := newTestService()

	links := make([]string, 11)
	for i := range links {
		links[i] = "https://videos/x"
	}
	_, err := svc.CreateCourse(context.Background(), models.Course{Name: "Go"}, links, nil, nil)
	assert.ErrorIs(t, err, app_errors.ErrVideoLimit)
}

func TestCreateCourseRejectsNonPDF(t *testing.T) {
	svc, repo, _, _ := newTestService()

	_, err := svc.CreateCourse(context.Background(), models.Course{Name: "Go"}, nil,
		nil,
		&Upload{Filename: "notes.docx", Reader: strings.NewReader("doc"), Size: 3},
	)
	assert.ErrorIs(t, err, app_errors.ErrNotPDF)
	assert.Empty(t, repo.courses)
}

func TestViewCourseCountsVisit(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	id, err := svc.CreateCourse(ctx, models.Course{Name: "Go"}, []string{"https://videos/1"}, nil, nil)
	assert.NoError(t, err)

	detail, err := svc.ViewCourse(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, 1, detail.Course.Views)
	assert.Len(t, detail.Videos, 1)

	_, err = svc.ViewCourse(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, 2, repo.courses[id].Views)

	_, err = svc.ViewCourse(ctx, uuid.New())
	assert.ErrorIs(t, err, app_errors.ErrCourseNotFound)
}

func TestCompleteCourse(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	id, err := svc.CreateCourse(ctx, models.Course{Name: "Go"}, nil, nil, nil)
	assert.NoError(t, err)

	assert.NoError(t, svc.CompleteCourse(ctx, id))
	assert.Equal(t, 1, repo.courses[id].UsersCompleted)

	assert.ErrorIs(t, svc.CompleteCourse(ctx, uuid.New()), app_errors.ErrCourseNotFound)
}

func TestUpdateCoursePreservesMediaKeys(t *testing.T) {
	svc, repo, _, search := newTestService()
	ctx := context.Background()

	id, err := svc.CreateCourse(ctx, models.Course{Name: "Go"}, nil,
		&Upload{Filename: "logo.png", Reader: strings.NewReader("img"), Size: 3, ContentType: "image/png"},
		nil,
	)
	assert.NoError(t, err)

	err = svc.UpdateCourse(ctx, models.Course{ID: id, Name: "Go Advanced", Category: "programming"})
	assert.NoError(t, err)

	updated := repo.courses[id]
	assert.Equal(t, "Go Advanced", updated.Name)
	assert.Equal(t, "thumbnails/logo.png", updated.ThumbnailKey)
	assert.Equal(t, "Go Advanced", search.docs[id].Name)
}

func TestDeleteCourseCleansUp(t *testing.T) {
	svc, repo, media, search := newTestService()
	ctx := context.Background()

	id, err := svc.CreateCourse(ctx, models.Course{Name: "Go"}, nil,
		&Upload{Filename: "logo.png", Reader: strings.NewReader("img"), Size: 3, ContentType: "image/png"},
		&Upload{Filename: "notes.pdf", Reader: strings.NewReader("pdf"), Size: 3},
	)
	assert.NoError(t, err)

	assert.NoError(t, svc.DeleteCourse(ctx, id))
	assert.Empty(t, repo.courses)
	assert.Contains(t, media.deleted, "thumbnails/logo.png")
	assert.Contains(t, media.deleted, "pdf/notes.pdf")
	assert.Contains(t, search.deleted, id)
}

func TestSearchCourses(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateCourse(ctx, models.Course{Name: "Go Basics"}, nil, nil, nil)
	assert.NoError(t, err)
	_, err = svc.CreateCourse(ctx, models.Course{Name: "Rust Basics"}, nil, nil, nil)
	assert.NoError(t, err)

	previews, err := svc.SearchCourses(ctx, "go", 10)
	assert.NoError(t, err)
	assert.Len(t, previews, 1)
	assert.Equal(t, "Go Basics", previews[0].Name)
}

func TestPDFDownloadURL(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	withPDF, err := svc.CreateCourse(ctx, models.Course{Name: "Go"}, nil, nil,
		&Upload{Filename: "notes.pdf", Reader: strings.NewReader("pdf"), Size: 3},
	)
	assert.NoError(t, err)
	withoutPDF, err := svc.CreateCourse(ctx, models.Course{Name: "Rust"}, nil, nil, nil)
	assert.NoError(t, err)

	url, err := svc.PDFDownloadURL(ctx, withPDF)
	assert.NoError(t, err)
	assert.Equal(t, "http://minio.local/pdf/notes.pdf", url)

	_, err = svc.PDFDownloadURL(ctx, withoutPDF)
	assert.ErrorIs(t, err, app_errors.ErrFileNotFound)

	_, err = svc.PDFDownloadURL(ctx, uuid.New())
	assert.ErrorIs(t, err, app_errors.ErrCourseNotFound)
}
