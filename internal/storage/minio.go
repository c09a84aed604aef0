package storage

import (
	"Folio/internal/config"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioStore struct {
	client    *minio.Client
	bucket    string
	urlExpiry time.Duration
}

func NewMinioStore(ctx context.Context, cfg config.MinioConfig, urlExpiry time.Duration) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
	}
	return &MinioStore{client: client, bucket: cfg.Bucket, urlExpiry: urlExpiry}, nil
}

func (s *MinioStore) Put(ctx context.Context, objectPath string, body io.Reader, size int64, contentType string) (*BlobInfo, error) {
	key, err := CleanObjectPath(objectPath)
	if err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	hasher := sha256.New()
	info, err := s.client.PutObject(ctx, s.bucket, key, io.TeeReader(body, hasher), size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("put object %s: %w", key, err)
	}
	url, err := s.URL(ctx, key)
	if err != nil {
		_ = s.Delete(ctx, key)
		return nil, err
	}
	return &BlobInfo{
		Path:        key,
		DownloadURL: url,
		SHA256:      hex.EncodeToString(hasher.Sum(nil)),
		Size:        info.Size,
	}, nil
}

// URL returns a presigned GET link valid for the configured expiry.
func (s *MinioStore) URL(ctx context.Context, objectPath string) (string, error) {
	key, err := CleanObjectPath(objectPath)
	if err != nil {
		return "", err
	}
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.urlExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return u.String(), nil
}

func (s *MinioStore) Delete(ctx context.Context, objectPath string) error {
	key, err := CleanObjectPath(objectPath)
	if err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" {
			return nil
		}
		return fmt.Errorf("remove object %s: %w", key, err)
	}
	return nil
}
