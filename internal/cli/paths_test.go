package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	// Clear XDG_CACHE_HOME to test default behavior
	oldXdg := os.Getenv("XDG_CACHE_HOME")
	os.Unsetenv("XDG_CACHE_HOME")
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CACHE_HOME", oldXdg)
		}
	}()

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
	if !strings.HasSuffix(dir, appName) {
		t.Errorf("cacheDir() = %q, should end with %q", dir, appName)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := "/tmp/custom-cache"
	oldXdg := os.Getenv("XDG_CACHE_HOME")
	os.Setenv("XDG_CACHE_HOME", customCache)
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CACHE_HOME", oldXdg)
		} else {
			os.Unsetenv("XDG_CACHE_HOME")
		}
	}()

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestManifestPath(t *testing.T) {
	if got := manifestPath(nil); got != "distmeta.toml" {
		t.Errorf("manifestPath(nil) = %q, want default manifest", got)
	}
	if got := manifestPath([]string{"project/meta.toml"}); got != "project/meta.toml" {
		t.Errorf("manifestPath = %q, want explicit path", got)
	}
}

func TestContact(t *testing.T) {
	tests := []struct {
		name, email, want string
	}{
		{"Jane Doe", "jane@example.org", "Jane Doe <jane@example.org>"},
		{"Jane Doe", "", "Jane Doe"},
		{"", "jane@example.org", "jane@example.org"},
		{"", "", ""},
	}
	for _, tt := range tests {
		if got := contact(tt.name, tt.email); got != tt.want {
			t.Errorf("contact(%q, %q) = %q, want %q", tt.name, tt.email, got, tt.want)
		}
	}
}
