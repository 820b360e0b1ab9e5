// Package batch parses every resume below a directory with a bounded
// worker pool.
package batch

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spigell/resume-parser/internal/document"
)

// Stats counts what the directory walk saw.
type Stats struct {
	Files       int
	Unsupported int
	Hidden      int
}

// Collect returns the sorted paths of supported files below root. Hidden
// files and directories are skipped.
func Collect(root string, supports func(ext string) bool) ([]string, Stats, error) {
	var (
		paths []string
		stats Stats
	)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path != root && strings.HasPrefix(d.Name(), ".") {
			stats.Hidden++
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		if !supports(document.Ext(path)) {
			stats.Unsupported++
			return nil
		}

		stats.Files++
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Strings(paths)
	return paths, stats, nil
}
