package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/victoramevor/ai-video-transcoder/internal/config"
	"github.com/victoramevor/ai-video-transcoder/internal/core/domain"
)

// Adapter is an adapter for minio
type Adapter struct {
	client *minio.Client
	config config.MinioConfig
	logger *slog.Logger
}

// NewAdapter returns Adapter
func NewAdapter(ctx context.Context, cfg config.MinioConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &Adapter{client: client, config: cfg, logger: logger}, nil
}

// PresignPutObject generates a presigned PUT url bound to the object key and
// the declared content type. A PUT with a different Content-Type header fails
// signature validation on the storage side.
func (a *Adapter) PresignPutObject(ctx context.Context, key string, contentType string, expiry time.Duration) (string, *time.Time, error) {
	requestHeaders := make(http.Header)
	requestHeaders.Set("Content-Type", contentType)

	presignedURL, err := a.client.PresignHeader(ctx, http.MethodPut, a.config.BucketName, key, expiry, nil, requestHeaders)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate pre-signed URL: %w", err)
	}

	expiresAt := time.Now().Add(expiry)

	return presignedURL.String(), &expiresAt, nil
}

// PutObject streams body into the bucket under key. size may be -1 when the
// caller does not know the length up front.
func (a *Adapter) PutObject(ctx context.Context, key string, contentType string, body io.Reader, size int64) error {
	opts := minio.PutObjectOptions{ContentType: contentType}

	_, err := a.client.PutObject(ctx, a.config.BucketName, key, body, size, opts)
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}

	return nil
}

// GetObject retrieves an object
func (a *Adapter) GetObject(ctx context.Context, key string) (io.ReadCloser, error) {
	object, err := a.client.GetObject(ctx, a.config.BucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	return object, nil
}

// StatObject retrieves object info
func (a *Adapter) StatObject(ctx context.Context, key string) (*domain.StoredObject, error) {
	info, err := a.client.StatObject(ctx, a.config.BucketName, key, minio.StatObjectOptions{})
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return nil, domain.ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to stat object: %w", err)
	}

	return &domain.StoredObject{
		Key:          info.Key,
		Size:         info.Size,
		ContentType:  info.ContentType,
		LastModified: info.LastModified,
	}, nil
}

// ListObjects lists all objects under prefix
func (a *Adapter) ListObjects(ctx context.Context, prefix string) ([]domain.StoredObject, error) {
	var objects []domain.StoredObject

	for info := range a.client.ListObjects(ctx, a.config.BucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if info.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", info.Err)
		}
		objects = append(objects, domain.StoredObject{
			Key:          info.Key,
			Size:         info.Size,
			LastModified: info.LastModified,
		})
	}

	return objects, nil
}

// DeleteObject deletes an object from storage
func (a *Adapter) DeleteObject(ctx context.Context, key string) error {
	err := a.client.RemoveObject(ctx, a.config.BucketName, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	a.logger.Info("object deleted",
		slog.String("key", key),
		slog.String("bucket", a.config.BucketName))

	return nil
}
