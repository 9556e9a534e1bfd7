package mediafetch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "media")
	t.Setenv("MEDIA_DIR", dir)
	t.Setenv("MEDIA_FETCH_TIMEOUT", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig err=%v", err)
	}
	if cfg.Dir != dir {
		t.Errorf("Dir = %q, want %q", cfg.Dir, dir)
	}
	if cfg.Timeout != 5*time.Minute {
		t.Errorf("Timeout = %v, want 5m", cfg.Timeout)
	}

	// The media directory must exist after loading.
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("media dir should be created: %v", err)
	}
}

func TestLoadConfig_CustomTimeout(t *testing.T) {
	t.Setenv("MEDIA_DIR", filepath.Join(t.TempDir(), "m"))
	t.Setenv("MEDIA_FETCH_TIMEOUT", "90s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig err=%v", err)
	}
	if cfg.Timeout != 90*time.Second {
		t.Errorf("Timeout = %v, want 90s", cfg.Timeout)
	}
}

func TestConfig_Check(t *testing.T) {
	t.Run("writable dir passes", func(t *testing.T) {
		cfg := &Config{Dir: t.TempDir(), Timeout: time.Minute}
		if err := cfg.Check(); err != nil {
			t.Errorf("Check: %v", err)
		}
		// The probe file must not linger.
		entries, err := os.ReadDir(cfg.Dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 0 {
			t.Errorf("probe file left behind: %v", entries)
		}
	})

	t.Run("missing dir fails", func(t *testing.T) {
		cfg := &Config{Dir: filepath.Join(t.TempDir(), "gone"), Timeout: time.Minute}
		if err := cfg.Check(); err == nil {
			t.Error("expected error for missing dir")
		}
	})

	t.Run("file instead of dir fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notadir")
		if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
		cfg := &Config{Dir: path, Timeout: time.Minute}
		if err := cfg.Check(); err == nil {
			t.Error("expected error for non-directory")
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{Dir: "", Timeout: time.Minute}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty dir")
	}

	cfg = &Config{Dir: "media", Timeout: 0}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero timeout")
	}

	cfg = &Config{Dir: "media", Timeout: time.Minute}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
