package reader

import (
	"strings"
	"testing"
)

func TestPDFExtract(t *testing.T) {
	doc := buildPDF(t, "Hello PDF")

	text, err := Extract("hello.pdf", doc)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !strings.Contains(text, "Hello") {
		t.Errorf("text = %q, want it to contain %q", text, "Hello")
	}
}

func TestPDFTruncatedFile(t *testing.T) {
	doc := buildPDF(t, "Hello PDF")
	if got := ExtractText("cut.pdf", doc[:len(doc)/2]); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
