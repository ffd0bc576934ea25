// Package security validates user-supplied file paths for imports and
// report exports.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// forbiddenChars are shell metacharacters rejected in paths.
const forbiddenChars = ";&|$`(){}<>!\n\r"

// ValidateFilePath cleans path, makes it absolute and resolves symlinks when
// the file exists.
func ValidateFilePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("file path cannot be empty")
	}
	if i := strings.IndexAny(path, forbiddenChars); i >= 0 {
		return "", fmt.Errorf("file path contains forbidden character %q: %s", path[i], path)
	}

	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve file path: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return abs, nil
		}
		return "", fmt.Errorf("failed to resolve file path: %w", err)
	}
	return resolved, nil
}

// ValidateFilePathInDir validates path and ensures it stays inside baseDir.
func ValidateFilePathInDir(path, baseDir string) (string, error) {
	if baseDir == "" {
		return "", fmt.Errorf("base directory cannot be empty")
	}
	clean, err := ValidateFilePath(path)
	if err != nil {
		return "", err
	}
	base, err := ValidateFilePath(baseDir)
	if err != nil {
		return "", err
	}

	// The trailing separator keeps /reports from matching /reports-old.
	if clean != base && !strings.HasPrefix(clean, base+string(filepath.Separator)) {
		return "", fmt.Errorf("file path escapes base directory: %s is not within %s", path, baseDir)
	}
	return clean, nil
}

// SafeOpen opens a file after validating the path.
func SafeOpen(path string) (*os.File, error) {
	clean, err := ValidateFilePath(path)
	if err != nil {
		return nil, err
	}
	// #nosec G304 - path is validated above
	return os.Open(clean)
}
