package worker

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeMediaFile(t *testing.T, dir, name string, age time.Duration, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, make([]byte, size), 0o600); err != nil {
		t.Fatal(err)
	}
	mtime := time.Now().Add(-age)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSweeper_RemovesExpiredFiles(t *testing.T) {
	dir := t.TempDir()
	expired := writeMediaFile(t, dir, "old.m4a", 48*time.Hour, 100)
	fresh := writeMediaFile(t, dir, "new.m4a", time.Hour, 50)

	s := &Sweeper{Dir: dir, Retention: 24 * time.Hour, MaxConcurrent: 2, Logger: slog.Default()}
	stats, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if stats.Scanned != 2 {
		t.Errorf("scanned = %d, want 2", stats.Scanned)
	}
	if stats.Removed != 1 {
		t.Errorf("removed = %d, want 1", stats.Removed)
	}
	if stats.BytesReclaimed != 100 {
		t.Errorf("bytes reclaimed = %d, want 100", stats.BytesReclaimed)
	}
	if _, err := os.Stat(expired); !os.IsNotExist(err) {
		t.Error("expired file should be gone")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Errorf("fresh file should survive: %v", err)
	}
}

func TestSweeper_EmptyDir(t *testing.T) {
	s := &Sweeper{Dir: t.TempDir(), Retention: time.Hour, MaxConcurrent: 2, Logger: slog.Default()}
	stats, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Scanned != 0 || stats.Removed != 0 {
		t.Errorf("stats = %+v, want empty", stats)
	}
}

func TestSweeper_MissingDir(t *testing.T) {
	s := &Sweeper{Dir: filepath.Join(t.TempDir(), "nope"), Retention: time.Hour, MaxConcurrent: 2, Logger: slog.Default()}
	if _, err := s.Run(context.Background()); err == nil {
		t.Error("expected error for missing media dir")
	}
}

func TestSweeper_SkipsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o750); err != nil {
		t.Fatal(err)
	}
	writeMediaFile(t, dir, "old.m4a", 48*time.Hour, 10)

	s := &Sweeper{Dir: dir, Retention: 24 * time.Hour, MaxConcurrent: 2, Logger: slog.Default()}
	stats, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if stats.Scanned != 1 {
		t.Errorf("scanned = %d, want 1 (directories are not media files)", stats.Scanned)
	}
	if _, err := os.Stat(filepath.Join(dir, "nested")); err != nil {
		t.Errorf("subdirectory should survive: %v", err)
	}
}

func TestSweeper_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	writeMediaFile(t, dir, "old.m4a", 48*time.Hour, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &Sweeper{Dir: dir, Retention: 24 * time.Hour, MaxConcurrent: 2, Logger: slog.Default()}
	if _, err := s.Run(ctx); err == nil {
		t.Error("expected error from canceled context")
	}
}

func TestSweeper_ManyFilesConcurrent(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 20; i++ {
		writeMediaFile(t, dir, "old"+string(rune('a'+i))+".m4a", 48*time.Hour, 10)
	}

	s := &Sweeper{Dir: dir, Retention: 24 * time.Hour, MaxConcurrent: 8, Logger: slog.Default()}
	stats, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Removed != 20 {
		t.Errorf("removed = %d, want 20", stats.Removed)
	}
	if stats.BytesReclaimed != 200 {
		t.Errorf("bytes reclaimed = %d, want 200", stats.BytesReclaimed)
	}
}
