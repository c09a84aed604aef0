package storage

import (
	"Folio/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
)

// BlobInfo describes a stored object.
type BlobInfo struct {
	Path        string
	DownloadURL string
	SHA256      string
	Size        int64
}

// BlobStore is the opaque object store behind file records.
type BlobStore interface {
	Put(ctx context.Context, objectPath string, body io.Reader, size int64, contentType string) (*BlobInfo, error)
	URL(ctx context.Context, objectPath string) (string, error)
	// Delete removes the object; a missing object is not an error.
	Delete(ctx context.Context, objectPath string) error
}

var ErrInvalidPath = errors.New("invalid object path")

func NewBlobStore(configuration *config.Configuration) (BlobStore, error) {
	switch configuration.Storage.Backend {
	case "disk":
		return NewDiskStore(configuration.Storage.Path, configuration.Storage.PublicURL)
	case "minio":
		return NewMinioStore(context.Background(), configuration.Storage.Minio, configuration.Storage.URLExpiry)
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", configuration.Storage.Backend)
	}
}

// CleanObjectPath rejects absolute paths and parent references and returns
// the slash-separated key.
func CleanObjectPath(objectPath string) (string, error) {
	if objectPath == "" || strings.HasPrefix(objectPath, "/") || strings.Contains(objectPath, "\\") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, objectPath)
	}
	for _, part := range strings.Split(objectPath, "/") {
		if part == ".." || part == "." || part == "" {
			return "", fmt.Errorf("%w: %q", ErrInvalidPath, objectPath)
		}
	}
	return path.Clean(objectPath), nil
}

var dashRuns = regexp.MustCompile(`-{2,}`)

// SanitizeName keeps a file name usable as the last segment of an object key.
// Separators and ".." become "-" and runs of "-" collapse to one.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)
	replacer := strings.NewReplacer("/", "-", "\\", "-", "..", "-")
	name = dashRuns.ReplaceAllString(replacer.Replace(name), "-")
	if name == "" || name == "." {
		return "unnamed"
	}
	return name
}
