package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	home, _ := os.UserHomeDir()
	xdg := t.TempDir()
	override := t.TempDir()

	tests := []struct {
		name     string
		override string
		xdg      string
		want     string
	}{
		{"default", "", "", filepath.Join(home, ".cache", appName)},
		{"xdg", "", xdg, filepath.Join(xdg, appName)},
		{"override wins", override + "/", xdg, override},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(envCacheDir, tt.override)
			t.Setenv("XDG_CACHE_HOME", tt.xdg)

			dir, err := cacheDir()
			if err != nil {
				t.Fatalf("cacheDir() error: %v", err)
			}
			if dir != tt.want {
				t.Errorf("cacheDir() = %q, want %q", dir, tt.want)
			}
		})
	}
}
