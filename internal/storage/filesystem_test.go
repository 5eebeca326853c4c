package storage

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/caresign/caresign/internal/config"
)

func testStorage(t *testing.T) System {
	t.Helper()
	cfg := &config.StorageConfig{BasePath: t.TempDir()}
	s, err := New(cfg, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("create storage: %v", err)
	}
	if err := s.Init(); err != nil {
		t.Fatalf("init storage: %v", err)
	}
	return s
}

func TestStoreRetrieve(t *testing.T) {
	s := testStorage(t)
	ctx := context.Background()

	data := []byte("%PDF-1.4 content")
	if err := s.Store(ctx, "documents/abc/original.pdf", data); err != nil {
		t.Fatalf("store: %v", err)
	}

	got, err := s.Retrieve(ctx, "documents/abc/original.pdf")
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("got %q, want %q", got, data)
	}
}

func TestRetrieveMissing(t *testing.T) {
	s := testStorage(t)

	if _, err := s.Retrieve(context.Background(), "nope.pdf"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestStoreOverwrites(t *testing.T) {
	s := testStorage(t)
	ctx := context.Background()

	key := "documents/abc/current.pdf"
	if err := s.Store(ctx, key, []byte("first")); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := s.Store(ctx, key, []byte("second")); err != nil {
		t.Fatalf("store: %v", err)
	}

	got, err := s.Retrieve(ctx, key)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("got %q, want %q", got, "second")
	}
}

func TestDeleteAndExists(t *testing.T) {
	s := testStorage(t)
	ctx := context.Background()

	key := "documents/abc/signature.png"
	if err := s.Store(ctx, key, []byte("png")); err != nil {
		t.Fatalf("store: %v", err)
	}

	exists, err := s.Exists(ctx, key)
	if err != nil || !exists {
		t.Fatalf("exists = %v, %v; want true, nil", exists, err)
	}

	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("delete: %v", err)
	}

	exists, err = s.Exists(ctx, key)
	if err != nil || exists {
		t.Fatalf("exists after delete = %v, %v; want false, nil", exists, err)
	}

	// Deleting again is a no-op.
	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestInvalidKeys(t *testing.T) {
	s := testStorage(t)
	ctx := context.Background()

	for _, key := range []string{"", "../escape.pdf", "/absolute.pdf", "a/../../b.pdf"} {
		if err := s.Store(ctx, key, []byte("x")); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Store(%q) error = %v, want ErrInvalidKey", key, err)
		}
		if _, err := s.Retrieve(ctx, key); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Retrieve(%q) error = %v, want ErrInvalidKey", key, err)
		}
	}
}

func TestDeleteCleansEmptyDirectories(t *testing.T) {
	cfg := &config.StorageConfig{BasePath: t.TempDir()}
	s, err := New(cfg, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("create storage: %v", err)
	}
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	ctx := context.Background()

	if err := s.Store(ctx, "documents/abc/original.pdf", []byte("x")); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := s.Delete(ctx, "documents/abc/original.pdf"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	base, _ := filepath.Abs(cfg.BasePath)
	if _, err := os.Stat(filepath.Join(base, "documents", "abc")); !os.IsNotExist(err) {
		t.Error("empty directory not removed after delete")
	}
}
