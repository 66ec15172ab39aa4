// Package reader turns uploaded documents into plain text, dispatching on the
// file extension to one registered Format.
package reader

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for extensions no Format claims.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrMalformedDocument wraps any parser failure for a claimed extension.
	ErrMalformedDocument = errors.New("malformed document")
)

// Format defines a file format reader for extracting text.
type Format interface {
	Name() string
	Extensions() []string
	Extract(content []byte) (string, error)
}

var registry = map[string]Format{}

// Register adds a format reader to the registry. A later registration for the
// same extension replaces the earlier one.
func Register(f Format) {
	for _, e := range f.Extensions() {
		registry[strings.ToLower(e)] = f
	}
}

// Lookup returns the format registered for the file's extension.
func Lookup(filename string) (Format, bool) {
	f, ok := registry[strings.ToLower(filepath.Ext(filename))]
	return f, ok
}

// Supported reports whether any format claims the file's extension.
func Supported(filename string) bool {
	_, ok := Lookup(filename)
	return ok
}

// Extract extracts text from the named content. Unknown extensions yield
// ErrUnsupportedFormat; parser errors and parser panics yield an error
// wrapping ErrMalformedDocument. The returned text is empty whenever err is set.
func Extract(filename string, content []byte) (text string, err error) {
	f, ok := Lookup(filename)
	if !ok {
		return "", fmt.Errorf("%s: %w", filename, ErrUnsupportedFormat)
	}

	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%s: %w: %v", filename, ErrMalformedDocument, r)
		}
	}()

	text, err = f.Extract(content)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", filename, ErrMalformedDocument, err)
	}
	return text, nil
}

// ExtractText is Extract with every failure mapped to the empty string, so a
// bad file never aborts a batch.
func ExtractText(filename string, content []byte) string {
	text, err := Extract(filename, content)
	if err != nil {
		return ""
	}
	return text
}

// SupportedFormats returns registered format names with their extensions.
func SupportedFormats() []string {
	seen := map[Format]bool{}
	var out []string
	for _, f := range registry {
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f.Name()+" ("+strings.Join(f.Extensions(), ", ")+")")
	}
	sort.Strings(out)
	return out
}
