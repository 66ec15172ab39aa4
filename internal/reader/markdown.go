package reader

// MarkdownFormat implements Format for Markdown files. Markup is kept as is;
// "term (ABBR)" patterns read the same in source and rendered form.
type MarkdownFormat struct{}

func init() {
	Register(&MarkdownFormat{})
}

func (f *MarkdownFormat) Name() string         { return "Markdown" }
func (f *MarkdownFormat) Extensions() []string { return []string{".md", ".markdown"} }

func (f *MarkdownFormat) Extract(content []byte) (string, error) {
	return decodeUTF8(content), nil
}
