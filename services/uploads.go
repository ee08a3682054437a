package services

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/storage"
	"github.com/rs/zerolog/log"
)

// AssetKind names a family of accepted upload extensions.
type AssetKind string

const (
	AssetImage    AssetKind = "images"
	AssetVideo    AssetKind = "videos"
	AssetDocument AssetKind = "documents"
)

// Asset subfolders.
const (
	FolderProjects     = "projects"
	FolderAchievements = "achievements"
	FolderAbout        = "about"
	FolderProfiles     = "profiles"
)

const (
	maxImageWidth  = 800
	maxImageHeight = 600
	imageQuality   = 85
)

var allowedExtensions = map[AssetKind]map[string]bool{
	AssetImage:    {".png": true, ".jpg": true, ".jpeg": true, ".gif": true},
	AssetVideo:    {".mp4": true, ".webm": true, ".ogg": true},
	AssetDocument: {".pdf": true, ".doc": true, ".docx": true},
}

// Upload is a file received from a client.
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// ObjectStore is the part of storage.Storage the file store works through.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
}

// AssetStore persists uploads and returns their storage key.
type AssetStore interface {
	Store(ctx context.Context, field string, upload *Upload, subfolder string, kind AssetKind) (*string, error)
	// Remove deletes a stored asset. Failures are logged, not returned.
	Remove(ctx context.Context, key string)
}

// FileStore names, resizes and writes uploaded assets.
type FileStore struct {
	objects   ObjectStore
	randomHex func() (string, error)
}

func NewFileStore(objects ObjectStore) *FileStore {
	return &FileStore{objects: objects, randomHex: randomHex}
}

// Store writes upload to <subfolder>/<name>_<16 hex chars><ext>. A nil upload
// stores nothing. A disallowed extension is a validation error on field. A
// storage failure is logged and reported as no asset, so the surrounding
// edit still goes through.
func (f *FileStore) Store(ctx context.Context, field string, upload *Upload, subfolder string, kind AssetKind) (*string, error) {
	if upload == nil || upload.Filename == "" {
		return nil, nil
	}

	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if !allowedExtensions[kind][ext] {
		return nil, errs.NewUnsupportedMediaTypeError(field, upload.Filename, AllowedExtensions(kind))
	}

	suffix, err := f.randomHex()
	if err != nil {
		log.Error().Err(err).Str("field", field).Msg("Failed to name upload")
		return nil, nil
	}
	key := path.Join(subfolder, fmt.Sprintf("%s_%s%s", sanitizeFilename(upload.Filename), suffix, ext))

	data, err := io.ReadAll(upload.Content)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to read upload")
		return nil, nil
	}
	if kind == AssetImage {
		data = resizeImage(data, ext)
	}

	if err := f.objects.Put(ctx, key, bytes.NewReader(data), int64(len(data)), storage.ContentType(key)); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to store upload")
		return nil, nil
	}

	log.Debug().Str("key", key).Int("bytes", len(data)).Msg("Stored upload")
	return &key, nil
}

// Remove deletes key. An object that is already gone is not an error.
func (f *FileStore) Remove(ctx context.Context, key string) {
	if key == "" {
		return
	}
	err := f.objects.Delete(ctx, key)
	switch {
	case err == nil:
		log.Debug().Str("key", key).Msg("Removed replaced upload")
	case errors.Is(err, storage.ErrObjectNotFound):
	default:
		log.Warn().Err(err).Str("key", key).Msg("Failed to remove replaced upload")
	}
}

// AllowedExtensions lists the accepted extensions for kind, sorted.
func AllowedExtensions(kind AssetKind) []string {
	var exts []string
	for ext := range allowedExtensions[kind] {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// resizeImage shrinks the image to fit 800x600 keeping its aspect ratio. Data
// that cannot be decoded is kept as uploaded.
func resizeImage(data []byte, ext string) []byte {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		log.Warn().Err(err).Msg("Failed to decode image, storing original")
		return data
	}

	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return data
	}

	var buf bytes.Buffer
	fitted := imaging.Fit(img, maxImageWidth, maxImageHeight, imaging.Lanczos)
	if err := imaging.Encode(&buf, fitted, format, imaging.JPEGQuality(imageQuality)); err != nil {
		log.Warn().Err(err).Msg("Failed to encode resized image, storing original")
		return data
	}
	return buf.Bytes()
}

// sanitizeFilename keeps the base name's ASCII letters, digits, dots, dashes
// and underscores, turning whitespace into underscores.
func sanitizeFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.TrimSuffix(base, path.Ext(base))

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		case r == ' ' || r == '\t':
			b.WriteRune('_')
		}
	}

	name := strings.Trim(b.String(), "._")
	if name == "" {
		return "file"
	}
	return name
}

func randomHex() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
