package cli

import (
	"os"
	"path/filepath"
)

// envCacheDir overrides the result cache location.
const envCacheDir = "TAGCLOUD_CACHE_DIR"

// cacheDir resolves the result cache directory: $TAGCLOUD_CACHE_DIR, then
// $XDG_CACHE_HOME/tagcloud, then ~/.cache/tagcloud.
func cacheDir() (string, error) {
	if dir := os.Getenv(envCacheDir); dir != "" {
		return filepath.Clean(dir), nil
	}
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, appName), nil
}
