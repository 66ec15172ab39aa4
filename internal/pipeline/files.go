package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// SplitPaths splits a user-typed list of paths on commas and whitespace.
func SplitPaths(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// ReadFiles loads paths in order. Paths outside AcceptedExtensions are
// skipped, and returned in skipped, unless anyFormat is set. A path that
// cannot be read fails the whole batch.
func ReadFiles(paths []string, anyFormat bool) (uploads []Upload, skipped []string, err error) {
	for _, p := range paths {
		if !anyFormat && !Accepted(p) {
			skipped = append(skipped, p)
			continue
		}
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, skipped, fmt.Errorf("failed to read file '%s': %w", p, err)
		}
		uploads = append(uploads, Upload{Name: filepath.Base(p), Content: content})
	}
	return uploads, skipped, nil
}
