// Package walk lists the regular files below a directory.
package walk

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/luismascotto/vtt2srt/internal/logging"
)

// Files returns the regular files in root in lexical order. Without recursive
// only the immediate children are listed. Symlinks to regular files are
// followed; anything else that is neither a file nor a directory (devices,
// sockets, symlinks to directories, dangling links) is skipped with a warning.
// A root that is itself a symlink to a directory is followed in both modes and
// returned paths keep the root as given.
func Files(root string, recursive bool, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if !recursive {
		return children(root, logger)
	}

	walkRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	var files []string
	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == walkRoot {
				return err
			}
			logger.Warn("skipping unreadable entry", logging.String("path", path), logging.Error(err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(walkRoot, path)
		if err != nil {
			return err
		}
		path = filepath.Join(root, rel)
		if regularFile(path, d, logger) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

func children(root string, logger *slog.Logger) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", root, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(root, entry.Name())
		if regularFile(path, entry, logger) {
			files = append(files, path)
		}
	}
	return files, nil
}

func regularFile(path string, d fs.DirEntry, logger *slog.Logger) bool {
	mode := d.Type()
	if mode.IsRegular() {
		return true
	}
	if mode&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		if err != nil {
			logger.Warn("skipping broken symlink", logging.String("path", path), logging.Error(err))
			return false
		}
		if info.Mode().IsRegular() {
			return true
		}
	}
	logger.Warn("skipping irregular file", logging.String("path", path), logging.String("type", mode.String()))
	return false
}
