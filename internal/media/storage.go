// Package media stores post attachments in S3-compatible object storage.
package media

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"forum-service/configs"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Storage struct {
	bucket string
	client *minio.Client
}

func New(cfg *configs.Config) (*Storage, error) {
	cl, err := minio.New(strings.TrimPrefix(cfg.MinioEndpoint, "http://"), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: strings.HasPrefix(cfg.MinioEndpoint, "https://"),
	})
	if err != nil {
		return nil, err
	}
	return &Storage{bucket: cfg.MinioBucket, client: cl}, nil
}

func (s *Storage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !exists {
		return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	}
	return nil
}

// Put streams an upload under a fresh key and returns that key.
func (s *Storage) Put(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error) {
	key := fmt.Sprintf("posts/%s%s", uuid.NewString(), path.Ext(filename))
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (s *Storage) Remove(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

func (s *Storage) PresignGet(ctx context.Context, key string, ttl time.Duration) (*url.URL, error) {
	return s.client.PresignedGetObject(ctx, s.bucket, key, ttl, nil)
}
