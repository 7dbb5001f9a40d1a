package importer

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"filmimport/internal/logging"
)

// Discover returns every directory under root that directly contains a
// regular file (or a symlink to one) whose name ends with marker. Directories are returned in walk
// order, each once. Unreadable subtrees are logged and skipped; only a root
// that cannot be walked at all is an error.
func Discover(root, marker string, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	var dirs []string
	seen := make(map[string]struct{})

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			logging.WarnWithContext(logger, "skipping unreadable path", "walk_failed",
				logging.String(logging.FieldPath, path),
				logging.Error(walkErr),
				logging.String(logging.FieldErrorHint, "check directory permissions"),
				logging.String(logging.FieldImpact, "stocks below this path are not imported"),
			)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), marker) || !isRegularFile(path, d) {
			return nil
		}
		dir := filepath.Dir(path)
		if _, ok := seen[dir]; ok {
			return nil
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return dirs, nil
}

// isRegularFile accepts regular files and symlinks that resolve to one.
func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
