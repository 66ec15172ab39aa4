package reader

import "strings"

// TextFormat implements Format for plain text files.
type TextFormat struct{}

func init() {
	Register(&TextFormat{})
}

func (f *TextFormat) Name() string         { return "Text" }
func (f *TextFormat) Extensions() []string { return []string{".txt"} }
func (f *TextFormat) Extract(content []byte) (string, error) {
	return decodeUTF8(content), nil
}

// decodeUTF8 drops invalid byte sequences instead of failing.
func decodeUTF8(b []byte) string {
	return strings.ToValidUTF8(string(b), "")
}
