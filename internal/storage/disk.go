package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type DiskStore struct {
	root      string
	publicURL string
}

func NewDiskStore(root, publicURL string) (*DiskStore, error) {
	if err := os.MkdirAll(root, os.ModePerm); err != nil {
		return nil, err
	}
	if publicURL == "" {
		publicURL = "/blobs"
	}
	return &DiskStore{root: root, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

func (s *DiskStore) Root() string {
	return s.root
}

func (s *DiskStore) Put(ctx context.Context, objectPath string, body io.Reader, size int64, contentType string) (*BlobInfo, error) {
	key, err := CleanObjectPath(objectPath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	destinationPath := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(destinationPath), os.ModePerm); err != nil {
		return nil, err
	}

	dst, err := os.Create(destinationPath)
	if err != nil {
		return nil, err
	}
	sha256Hasher := sha256.New()
	writer := io.MultiWriter(dst, sha256Hasher)
	written, err := io.Copy(writer, body)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(destinationPath)
		return nil, fmt.Errorf("write blob %s: %w", key, err)
	}
	if size >= 0 && written != size {
		_ = os.Remove(destinationPath)
		return nil, fmt.Errorf("write blob %s: expected %d bytes, got %d", key, size, written)
	}

	url, _ := s.URL(ctx, key)
	return &BlobInfo{
		Path:        key,
		DownloadURL: url,
		SHA256:      hex.EncodeToString(sha256Hasher.Sum(nil)),
		Size:        written,
	}, nil
}

func (s *DiskStore) URL(_ context.Context, objectPath string) (string, error) {
	key, err := CleanObjectPath(objectPath)
	if err != nil {
		return "", err
	}
	return s.publicURL + "/" + key, nil
}

func (s *DiskStore) Delete(ctx context.Context, objectPath string) error {
	key, err := CleanObjectPath(objectPath)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
