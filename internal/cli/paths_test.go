package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/coursegrid/pkg/config"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	want := filepath.Join(home, ".cache", "coursegrid")
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "xdg")
	t.Setenv("XDG_CACHE_HOME", custom)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(custom, "coursegrid"); dir != want {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}
}

func TestCacheLabel(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	tests := []struct {
		name    string
		url     string
		noCache bool
		want    string
	}{
		{"disabled", "redis://localhost:6379", true, "disabled"},
		{"file default", "", false, filepath.Join(xdg, "coursegrid")},
		{"redis", "redis://localhost:6379/0", false, "redis://localhost:6379/0"},
		{"password hidden", "mongodb://app:secret@db:27017", false, "mongodb://app:xxxxx@db:27017"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Cache.URL = tt.url
			if got := cacheLabel(cfg, tt.noCache); got != tt.want {
				t.Errorf("cacheLabel(%q, %v) = %q, want %q", tt.url, tt.noCache, got, tt.want)
			}
		})
	}
}
