package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/metcalfc/docqa/internal/abbrev"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by RenderIndex and RenderAnswer.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	// FormatMarkdown is for rich text panes; every entry is its own list item.
	FormatMarkdown = "markdown"
)

// NoneFound is printed for a file without abbreviations.
const NoneFound = "No abbreviations found in this article."

// IndexResult is the serialized shape of one FileIndex.
type IndexResult struct {
	File          string         `json:"file" yaml:"file"`
	Found         bool           `json:"found" yaml:"found"`
	Abbreviations []abbrev.Entry `json:"abbreviations" yaml:"abbreviations"`
}

// FileSummary is the serialized shape of one FileText.
type FileSummary struct {
	Name  string `json:"name" yaml:"name"`
	Chars int    `json:"chars" yaml:"chars"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// AnswerResult is the serialized shape of an Answer.
type AnswerResult struct {
	Question string        `json:"question" yaml:"question"`
	Preview  string        `json:"preview" yaml:"preview"`
	Answer   string        `json:"answer" yaml:"answer"`
	Files    []FileSummary `json:"files" yaml:"files"`
}

// IndexResults converts results for serialization. Abbreviations are sorted
// by acronym and never nil.
func IndexResults(results []FileIndex) []IndexResult {
	out := make([]IndexResult, 0, len(results))
	for _, r := range results {
		entries := r.Index.Sorted()
		if entries == nil {
			entries = []abbrev.Entry{}
		}
		out = append(out, IndexResult{File: r.Name, Found: len(entries) > 0, Abbreviations: entries})
	}
	return out
}

// Result converts a for serialization.
func (a *Answer) Result() AnswerResult {
	files := make([]FileSummary, 0, len(a.Files))
	for _, f := range a.Files {
		s := FileSummary{Name: f.Name, Chars: f.Chars}
		if f.Err != nil {
			s.Error = f.Err.Error()
		}
		files = append(files, s)
	}
	return AnswerResult{Question: a.Question, Preview: a.Preview, Answer: a.Text, Files: files}
}

// RenderIndex writes results in the named format.
func RenderIndex(w io.Writer, results []FileIndex, format string) error {
	switch format {
	case FormatText, "":
		for i, r := range results {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "#### Abbreviation index for %s\n", r.Name)
			if r.Index.Empty() {
				fmt.Fprintln(w, NoneFound)
				continue
			}
			for _, e := range r.Index.Sorted() {
				fmt.Fprintf(w, "%s: %s\n", e.Acronym, e.Term)
			}
		}
		return nil
	case FormatMarkdown:
		for i, r := range results {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "#### Abbreviation index for **%s**\n\n", escapeMarkdown(r.Name))
			if r.Index.Empty() {
				fmt.Fprintln(w, NoneFound)
				continue
			}
			for _, e := range r.Index.Sorted() {
				fmt.Fprintf(w, "- **%s**: %s\n", e.Acronym, escapeMarkdown(e.Term))
			}
		}
		return nil
	case FormatJSON:
		return writeJSON(w, map[string]any{"results": IndexResults(results)})
	case FormatYAML:
		return writeYAML(w, map[string]any{"results": IndexResults(results)})
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// RenderAnswer writes a in the named format.
func RenderAnswer(w io.Writer, a *Answer, format string) error {
	switch format {
	case FormatText, "":
		fmt.Fprintln(w, "### Preview of the document text:")
		fmt.Fprintln(w, a.Preview)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "## Answer:")
		fmt.Fprintln(w, a.Text)
		return nil
	case FormatMarkdown:
		fence := codeFence(a.Preview)
		fmt.Fprintf(w, "### Preview of the document text:\n\n%s\n%s\n%s\n\n", fence, a.Preview, fence)
		fmt.Fprintf(w, "## Answer:\n\n%s\n", escapeMarkdown(a.Text))
		return nil
	case FormatJSON:
		return writeJSON(w, a.Result())
	case FormatYAML:
		return writeYAML(w, a.Result())
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "#", `\#`,
	"[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`, "|", `\|`,
)

// escapeMarkdown keeps s literal inside a markdown paragraph. Line breaks
// become hard breaks so multi-line answers keep their shape.
func escapeMarkdown(s string) string {
	s = markdownEscaper.Replace(s)
	return strings.ReplaceAll(s, "\n", "  \n")
}

// codeFence returns a backtick fence longer than any backtick run in s.
func codeFence(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r != '`' {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	return strings.Repeat("`", max(3, longest+1))
}
