// Package storage persists uploaded assets on a local directory or an object
// store, addressed by slash-separated keys such as "projects/cover_ab12.jpg".
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/rpupo63/portfolio-backend/config"
)

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrInvalidKey     = errors.New("invalid object key")
)

// ObjectStorage defines common object operations across backends.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Bucket() string
}

// Storage validates keys before handing them to a backend.
type Storage struct {
	backend ObjectStorage
	name    string
}

func NewStorage(name string, backend ObjectStorage) *Storage {
	return &Storage{backend: backend, name: name}
}

// Name is the configured backend, e.g. "local" or "s3".
func (s *Storage) Name() string {
	return s.name
}

func (s *Storage) EnsureBucket(ctx context.Context) error {
	return s.backend.EnsureBucket(ctx)
}

func (s *Storage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	clean, err := CleanKey(key)
	if err != nil {
		return err
	}
	return s.backend.Put(ctx, clean, r, size, contentType)
}

// Get opens the object and reports its content type, guessed from the key's extension.
func (s *Storage) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	clean, err := CleanKey(key)
	if err != nil {
		return nil, "", err
	}
	rc, err := s.backend.Get(ctx, clean)
	if err != nil {
		return nil, "", err
	}
	return rc, ContentType(clean), nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	clean, err := CleanKey(key)
	if err != nil {
		return err
	}
	return s.backend.Delete(ctx, clean)
}

func (s *Storage) Bucket() string {
	return s.backend.Bucket()
}

// CleanKey normalises key and rejects anything that could escape the storage root.
func CleanKey(key string) (string, error) {
	key = strings.ReplaceAll(key, "\\", "/")
	for _, segment := range strings.Split(key, "/") {
		if segment == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}

	clean := strings.TrimPrefix(path.Clean("/"+key), "/")
	if clean == "" || clean == "." {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return clean, nil
}

// ContentType guesses the MIME type from the key's extension.
func ContentType(key string) string {
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(key))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// New builds the backend named by STORAGE_BACKEND (local, s3, minio or gcs)
// and makes sure its bucket or directory exists.
func New(ctx context.Context, c map[string]string) (*Storage, error) {
	name := strings.ToLower(config.GetString(c, "STORAGE_BACKEND", "local"))
	bucket := config.GetString(c, "STORAGE_BUCKET", "")

	var (
		backend ObjectStorage
		err     error
	)
	switch name {
	case "local":
		backend = NewLocalDisk(config.GetString(c, "UPLOAD_FOLDER", "uploads"))
	case "s3":
		backend, err = NewS3Client(ctx, S3Config{
			Bucket:    bucket,
			Region:    config.GetString(c, "S3_REGION", ""),
			Endpoint:  config.GetString(c, "S3_ENDPOINT", ""),
			PathStyle: config.GetBool(c, "S3_PATH_STYLE", false),
		})
	case "minio":
		backend, err = NewMinioClient(MinioConfig{
			Endpoint:  config.GetString(c, "MINIO_ENDPOINT", ""),
			AccessKey: config.GetString(c, "MINIO_ACCESS_KEY", ""),
			SecretKey: config.GetString(c, "MINIO_SECRET_KEY", ""),
			UseSSL:    config.GetBool(c, "MINIO_USE_SSL", false),
			Bucket:    bucket,
		})
	case "gcs":
		backend, err = NewGCSClient(ctx, GCSConfig{
			Bucket:          bucket,
			ProjectID:       config.GetString(c, "GCS_PROJECT_ID", ""),
			CredentialsFile: config.GetString(c, "GCS_CREDENTIALS_FILE", ""),
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", name)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s storage: %w", name, err)
	}

	if err := backend.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure %s bucket %q: %w", name, backend.Bucket(), err)
	}
	return NewStorage(name, backend), nil
}
