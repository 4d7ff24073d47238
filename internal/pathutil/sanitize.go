package pathutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// SanitizeOutputPath returns the absolute, cleaned form of path. A missing
// target is fine; an existing one has to be a regular file.
func SanitizeOutputPath(path string) (string, error) {
	if path == "" {
		return "", errors.New("pathutil: empty output path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("pathutil: resolve %q: %w", path, err)
	}

	info, err := os.Lstat(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return abs, nil
	}
	if err != nil {
		return "", fmt.Errorf("pathutil: stat %s: %w", abs, err)
	}
	switch mode := info.Mode(); {
	case mode&fs.ModeSymlink != 0:
		return "", fmt.Errorf("pathutil: refusing to write to symlink: %s", abs)
	case mode.IsDir():
		return "", fmt.Errorf("pathutil: output path is a directory: %s", abs)
	case !mode.IsRegular():
		return "", fmt.Errorf("pathutil: output path is not a regular file: %s", abs)
	}
	return abs, nil
}
