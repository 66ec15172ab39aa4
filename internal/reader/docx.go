package reader

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

const docxMainPart = "word/document.xml"

// DOCXFormat implements Format for Word (Office Open XML) documents.
type DOCXFormat struct{}

func init() {
	Register(&DOCXFormat{})
}

func (f *DOCXFormat) Name() string         { return "Word" }
func (f *DOCXFormat) Extensions() []string { return []string{".docx"} }

// Extract returns one line per body paragraph, in document order. Table cell
// paragraphs are not body paragraphs and are left out.
func (f *DOCXFormat) Extract(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", err
	}

	for _, file := range zr.File {
		if file.Name != docxMainPart {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()

		paragraphs, err := docxParagraphs(rc)
		if err != nil {
			return "", err
		}
		return strings.Join(paragraphs, "\n"), nil
	}

	return "", errors.New("no " + docxMainPart + " in archive")
}

// docxParagraphs walks the WordprocessingML token stream. Run children map to
// text as w:t -> content, w:tab -> "\t", w:br and w:cr -> "\n".
func docxParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		stack      []string
		paragraphs []string
		cur        *strings.Builder
		inText     bool
	)

	parent := func() string {
		if len(stack) == 0 {
			return ""
		}
		return stack[len(stack)-1]
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			switch {
			case name == "p" && parent() == "body":
				cur = &strings.Builder{}
			case cur != nil && parent() == "r":
				switch name {
				case "t":
					inText = true
				case "tab":
					cur.WriteByte('\t')
				case "br", "cr":
					cur.WriteByte('\n')
				}
			}
			stack = append(stack, name)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			switch name := t.Name.Local; {
			case name == "t":
				inText = false
			case name == "p" && cur != nil && parent() == "body":
				paragraphs = append(paragraphs, cur.String())
				cur = nil
			}

		case xml.CharData:
			if inText && cur != nil {
				cur.Write(t)
			}
		}
	}

	return paragraphs, nil
}
