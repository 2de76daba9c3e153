// Package discover enumerates the Rust source files of one contract tree:
// walk, extension and size filters, exclude globs, and language
// confirmation. Per-file read errors are collected, not fatal; only
// single-file mode aborts on a bad path.
package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/src-d/enry/v2"

	"github.com/solstat/solstat/pkg/metrics"
)

// rustLanguage is the enry language name confirmed for collected files.
const rustLanguage = "Rust"

// ErrNotRegularFile is returned in single-file mode when the argument path
// exists but is not a regular file.
var ErrNotRegularFile = errors.New("path is not a regular file")

// SourceFile is one discovered (path, content) pair handed to the engine.
type SourceFile struct {
	Path    string
	Content []byte
}

// Options controls discovery filtering.
type Options struct {
	// ExcludeGlobs are matched against the slash-separated path relative
	// to the scan root and against the file's base name.
	ExcludeGlobs []string

	// MaxFileSize skips files larger than this many bytes; 0 disables the
	// limit.
	MaxFileSize uint64
}

// Collect returns the Rust source files under root, sorted by path, plus
// the per-file read failures encountered along the way. When root is a
// regular file, exactly that file is collected; when it is neither a
// directory nor a regular file, the run cannot continue.
func Collect(root string, opts Options, logger *slog.Logger) ([]SourceFile, []metrics.FileFailure, error) {
	if logger == nil {
		logger = slog.Default()
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, nil, fmt.Errorf("stat %s: %w", root, err)
	}

	if !info.IsDir() {
		return collectSingle(root, info)
	}

	return collectTree(root, opts, logger)
}

// collectSingle handles single-file mode. There is no "skip and continue"
// fallback here, so any problem is fatal.
func collectSingle(root string, info os.FileInfo) ([]SourceFile, []metrics.FileFailure, error) {
	if !info.Mode().IsRegular() {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotRegularFile, root)
	}

	content, err := os.ReadFile(root)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", root, err)
	}

	return []SourceFile{{Path: root, Content: content}}, nil, nil
}

func collectTree(root string, opts Options, logger *slog.Logger) ([]SourceFile, []metrics.FileFailure, error) {
	var (
		files    []SourceFile
		failures []metrics.FileFailure
	)

	walkErr := filepath.WalkDir(root, func(filePath string, entry os.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist) {
				if entry != nil && entry.IsDir() {
					return filepath.SkipDir
				}

				return nil
			}

			return err
		}

		if entry.IsDir() {
			if skipDir(entry.Name()) {
				return filepath.SkipDir
			}

			return nil
		}

		if !strings.EqualFold(filepath.Ext(filePath), ".rs") {
			return nil
		}

		if excluded(root, filePath, opts.ExcludeGlobs) {
			logger.Debug("excluded by glob", "path", filePath)

			return nil
		}

		if opts.MaxFileSize > 0 {
			if fileInfo, infoErr := entry.Info(); infoErr == nil && uint64(fileInfo.Size()) > opts.MaxFileSize {
				logger.Debug("skipped oversized file", "path", filePath, "size", fileInfo.Size())

				return nil
			}
		}

		content, readErr := os.ReadFile(filePath)
		if readErr != nil {
			logger.Warn("unreadable file skipped", "path", filePath, "error", readErr)
			failures = append(failures, metrics.FileFailure{
				Path:   filePath,
				Kind:   metrics.FailureIO,
				Reason: readErr.Error(),
			})

			return nil
		}

		if lang := enry.GetLanguage(filepath.Base(filePath), content); lang != rustLanguage {
			logger.Debug("non-rust content skipped", "path", filePath, "language", lang)

			return nil
		}

		files = append(files, SourceFile{Path: filePath, Content: content})

		return nil
	})
	if walkErr != nil {
		return nil, nil, fmt.Errorf("walk %s: %w", root, walkErr)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	return files, failures, nil
}

// skipDir filters directories that never hold first-party contract source.
func skipDir(name string) bool {
	switch name {
	case ".git", "target", "node_modules":
		return true
	default:
		return false
	}
}

func excluded(root, filePath string, globs []string) bool {
	if len(globs) == 0 {
		return false
	}

	rel, err := filepath.Rel(root, filePath)
	if err != nil {
		rel = filePath
	}

	rel = filepath.ToSlash(rel)
	base := path.Base(rel)

	for _, glob := range globs {
		if matched, _ := path.Match(glob, rel); matched {
			return true
		}

		if matched, _ := path.Match(glob, base); matched {
			return true
		}
	}

	return false
}
