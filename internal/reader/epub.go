package reader

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
	"golang.org/x/net/html"
)

// EPUBFormat implements Format for EPUB files.
type EPUBFormat struct{}

func init() {
	Register(&EPUBFormat{})
}

func (f *EPUBFormat) Name() string         { return "EPUB" }
func (f *EPUBFormat) Extensions() []string { return []string{".epub"} }
func (f *EPUBFormat) Extract(content []byte) (string, error) {
	return ExtractTextFromEPUB(content)
}

// ExtractTextFromEPUB extracts the text of every spine item, in reading order.
// Spine items that cannot be read are skipped.
func ExtractTextFromEPUB(content []byte) (string, error) {
	rc, err := epub.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to open epub: %w", err)
	}

	if len(rc.Rootfiles) == 0 {
		return "", fmt.Errorf("no rootfiles found in epub")
	}

	book := rc.Rootfiles[0]
	var chapters []string

	for _, ref := range book.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		r, err := ref.Item.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			continue
		}
		chapters = append(chapters, extractTextFromHTML(data))
	}

	return strings.Join(chapters, "\n"), nil
}

func extractTextFromHTML(data []byte) string {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	return strings.Join(textNodes(doc), "\n")
}
