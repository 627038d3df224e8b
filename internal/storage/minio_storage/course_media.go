package minio_storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
)

// MediaStorage holds uploaded course thumbnails and PDFs. Object keys are
// derived from the uploaded filename, so a repeated filename overwrites the
// earlier object.
type MediaStorage struct {
	storage      *MinioStorage
	bucket       string
	presignedTTL time.Duration
}

func NewMediaStorage(storage *MinioStorage, bucketName string, presignedTTL time.Duration) (*MediaStorage, error) {
	exists, err := storage.client.BucketExists(context.Background(), bucketName)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err = storage.client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &MediaStorage{storage: storage, bucket: bucketName, presignedTTL: presignedTTL}, nil
}

func (s *MediaStorage) upload(ctx context.Context, objectKey, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(filename))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
	}

	_, err := s.storage.client.PutObject(
		ctx,
		s.bucket,
		objectKey,
		reader,
		size,
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", err
	}
	return objectKey, nil
}

func (s *MediaStorage) UploadThumbnail(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	return s.upload(ctx, fmt.Sprintf("thumbnails/%s", filepath.Base(filename)), filename, reader, size, contentType)
}

func (s *MediaStorage) UploadPDF(ctx context.Context, filename string, reader io.Reader, size int64) (string, error) {
	return s.upload(ctx, fmt.Sprintf("pdf/%s", filepath.Base(filename)), filename, reader, size, "application/pdf")
}

func (s *MediaStorage) GetURL(ctx context.Context, objectKey string) (string, error) {
	if objectKey == "" {
		return "", errors.New("empty object key")
	}
	reqParams := make(url.Values)
	presignedURL, err := s.storage.client.PresignedGetObject(
		ctx,
		s.bucket,
		objectKey,
		s.presignedTTL,
		reqParams,
	)
	if err != nil {
		return "", err
	}
	return presignedURL.String(), nil
}

func (s *MediaStorage) Delete(ctx context.Context, objectKey string) error {
	return s.storage.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{})
}
