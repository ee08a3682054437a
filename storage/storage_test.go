package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCleanKey(t *testing.T) {
	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{key: "projects/a.png", want: "projects/a.png"},
		{key: "/projects//a.png", want: "projects/a.png"},
		{key: "projects/./a.png", want: "projects/a.png"},
		{key: `profiles\me.jpg`, want: "profiles/me.jpg"},
		{key: "../etc/passwd", wantErr: true},
		{key: "projects/../../secret", wantErr: true},
		{key: `..\secret`, wantErr: true},
		{key: "", wantErr: true},
		{key: "/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := CleanKey(tt.key)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidKey) {
					t.Fatalf("expected ErrInvalidKey, got %q, %v", got, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("CleanKey(%q) = %q, %v; want %q", tt.key, got, err, tt.want)
			}
		})
	}
}

func TestContentType(t *testing.T) {
	if got := ContentType("about/resume.PDF"); got != "application/pdf" {
		t.Errorf("unexpected pdf type %q", got)
	}
	if got := ContentType("projects/blob"); got != "application/octet-stream" {
		t.Errorf("unexpected fallback type %q", got)
	}
}

func TestLocalStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store, err := New(ctx, map[string]string{"STORAGE_BACKEND": "local", "UPLOAD_FOLDER": root})
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}
	if store.Name() != "local" || store.Bucket() != root {
		t.Fatalf("unexpected backend %s at %s", store.Name(), store.Bucket())
	}

	body := "fake image bytes"
	if err := store.Put(ctx, "projects/cover.png", strings.NewReader(body), int64(len(body)), "image/png"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "projects", "cover.png")); err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}

	rc, contentType, err := store.Get(ctx, "projects/cover.png")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != body || contentType != "image/png" {
		t.Errorf("got %q (%s)", data, contentType)
	}

	if err := store.Delete(ctx, "projects/cover.png"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, _, err := store.Get(ctx, "projects/cover.png"); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}
	if err := store.Delete(ctx, "projects/cover.png"); err != nil {
		t.Errorf("expected deleting a missing object to succeed, got %v", err)
	}
}

func TestLocalStorageRejectsTraversalAndDirectories(t *testing.T) {
	ctx := context.Background()
	store := NewStorage("local", NewLocalDisk(t.TempDir()))

	if _, _, err := store.Get(ctx, "../outside.txt"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected traversal to be rejected, got %v", err)
	}
	if err := store.Put(ctx, "a/../../b", strings.NewReader("x"), 1, ""); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected traversal put to be rejected, got %v", err)
	}

	if err := store.Put(ctx, "projects/a.txt", strings.NewReader("x"), 1, ""); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, _, err := store.Get(ctx, "projects"); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("expected directory to read as not found, got %v", err)
	}
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	if _, err := New(context.Background(), map[string]string{"STORAGE_BACKEND": "ftp"}); err == nil {
		t.Fatal("expected unknown backend to fail")
	}
	if _, err := New(context.Background(), map[string]string{"STORAGE_BACKEND": "minio"}); err == nil {
		t.Fatal("expected minio without endpoint to fail")
	}
}
