package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/narith-dev/RentSign/internal/config"
	"github.com/narith-dev/RentSign/internal/util"
	"go.uber.org/zap"
)

var ErrObjectNotFound = errors.New("object not found")

// Service wraps the shared MinIO client with the bucket and key conventions
// of the document pipeline. It is stateless and safe for concurrent use.
type Service struct {
	s3     *minio.Client
	bucket string
	logger *zap.SugaredLogger

	Keys KeyBuilder
}

func NewService(s3 *minio.Client, cfg config.StorageConfig, logger *zap.SugaredLogger) *Service {
	// For unit test
	if logger == nil {
		logger = util.NewLogger()
	}

	return &Service{
		s3:     s3,
		bucket: cfg.BUCKET,
		logger: logger,
		Keys: KeyBuilder{
			Bucket:    cfg.BUCKET,
			PublicURL: cfg.PUBLIC_URL,
		},
	}
}

func (s *Service) ensureBucket(ctx context.Context) error {
	exists, err := s.s3.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}

	if !exists {
		if err := s.s3.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) Put(ctx context.Context, key string, payload []byte, contentType, contentEncoding string) error {
	if err := s.ensureBucket(ctx); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	_, err := s.s3.PutObject(
		ctx,
		s.bucket,
		key,
		bytes.NewReader(payload),
		int64(len(payload)),
		minio.PutObjectOptions{
			ContentType:     contentType,
			ContentEncoding: contentEncoding,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	return nil
}

// Get returns the object bytes and its content encoding. A key that misses
// in the tenant-scoped format falls back to the legacy format
// transparently.
func (s *Service) Get(ctx context.Context, key string) ([]byte, string, error) {
	payload, encoding, err := s.getObject(ctx, key)
	if err == nil {
		return payload, encoding, nil
	}

	if !errors.Is(err, ErrObjectNotFound) {
		return nil, "", err
	}

	// Legacy keys have no tenant segment: "{folder}/{filename}".
	if legacy, ok := s.Keys.LegacyFromScoped(key); ok {
		s.logger.Debugf("Object %s not found, trying legacy key %s", key, legacy)
		return s.getObject(ctx, legacy)
	}

	return nil, "", err
}

func (s *Service) getObject(ctx context.Context, key string) ([]byte, string, error) {
	obj, err := s.s3.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", err
	}
	defer obj.Close()

	stat, err := obj.Stat()
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, "", ErrObjectNotFound
		}
		return nil, "", err
	}

	payload, err := io.ReadAll(obj)
	if err != nil {
		return nil, "", err
	}

	return payload, stat.Metadata.Get("Content-Encoding"), nil
}

func (s *Service) Delete(ctx context.Context, key string) error {
	return s.s3.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

// List returns all object keys under the given prefix.
func (s *Service) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string

	for obj := range s.s3.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		keys = append(keys, obj.Key)
	}

	return keys, nil
}
