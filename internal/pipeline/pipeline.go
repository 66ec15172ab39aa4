// Package pipeline drives the two docqa actions over a batch of uploads:
// answering a question from their combined text, and building one
// abbreviation index per upload.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/metcalfc/docqa/internal/abbrev"
	"github.com/metcalfc/docqa/internal/logging"
	"github.com/metcalfc/docqa/internal/qa"
	"github.com/metcalfc/docqa/internal/reader"
	"go.uber.org/zap"
)

const (
	// ContextLimit is the most characters of combined text an answerer sees.
	ContextLimit = 4000
	// PreviewLimit is how many characters of combined text the preview shows.
	PreviewLimit = 500
	// PreviewNotice follows every preview.
	PreviewNotice = "...\n\n(Only showing the beginning.)"
)

// AcceptedExtensions is the upload whitelist enforced by the CLI, TUI, GUI
// and HTTP API. The extractor handles anything else by returning "".
var AcceptedExtensions = []string{".pdf", ".docx", ".txt", ".html", ".htm"}

var (
	ErrNoQuestion   = errors.New("no question given")
	ErrNoFiles      = errors.New("no files uploaded")
	ErrNoText       = errors.New("no extractable text in uploads")
	ErrAnswerFailed = errors.New("answerer failed")

	// ErrNoArticles is ErrNoFiles as reported by index mode.
	ErrNoArticles = fmt.Errorf("%w: nothing to index", ErrNoFiles)
)

// Upload is one uploaded file.
type Upload struct {
	Name    string
	Content []byte
}

// FileText records how extraction went for one upload.
type FileText struct {
	Name  string
	Chars int
	Err   error
}

// FileIndex is the abbreviation index of one upload.
type FileIndex struct {
	Name  string
	Index abbrev.Index
}

// Answer is the outcome of one question run.
type Answer struct {
	Question string
	Context  string
	Preview  string
	Text     string
	Files    []FileText
}

// Accepted reports whether filename carries a whitelisted extension.
func Accepted(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range AcceptedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Header is the delimiter placed before each file's text in the combined
// context.
func Header(name string) string {
	return "\n\n===== " + name + " =====\n\n"
}

// Combine extracts every upload in order and concatenates the results, each
// preceded by its Header. hasText is false when every extracted text is
// blank; the headers alone never count as text.
func Combine(ctx context.Context, uploads []Upload) (combined string, files []FileText, hasText bool) {
	logger := logging.FromContext(ctx)

	var sb strings.Builder
	files = make([]FileText, 0, len(uploads))
	for _, u := range uploads {
		text, err := reader.Extract(u.Name, u.Content)
		if err != nil {
			logger.Debug("extraction failed", zap.String("file", u.Name), zap.Error(err))
		}
		sb.WriteString(Header(u.Name))
		sb.WriteString(text)

		files = append(files, FileText{Name: u.Name, Chars: len([]rune(text)), Err: err})
		if strings.TrimSpace(text) != "" {
			hasText = true
		}
	}
	return sb.String(), files, hasText
}

// Ask answers question from the combined text of uploads. Input problems are
// reported as ErrNoQuestion, ErrNoFiles or ErrNoText before the answerer is
// called. The answerer receives at most ContextLimit characters.
func Ask(ctx context.Context, answerer qa.Answerer, question string, uploads []Upload) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrNoQuestion
	}
	if len(uploads) == 0 {
		return nil, ErrNoFiles
	}

	logger := logging.FromContext(ctx)
	combined, files, hasText := Combine(ctx, uploads)
	if !hasText {
		return nil, ErrNoText
	}

	start := time.Now()
	text, err := answerer.Answer(ctx, question, Truncate(combined, ContextLimit))
	if err != nil {
		logger.Warn("answer failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrAnswerFailed, err)
	}

	logger.Info("answered question",
		zap.Int("files", len(uploads)),
		zap.Int("chars", len([]rune(combined))),
		zap.Duration("took", time.Since(start)))

	return &Answer{
		Question: question,
		Context:  combined,
		Preview:  Preview(combined),
		Text:     text,
		Files:    files,
	}, nil
}

// Index builds one abbreviation index per upload, in upload order. Files are
// never merged.
func Index(ctx context.Context, uploads []Upload) ([]FileIndex, error) {
	if len(uploads) == 0 {
		return nil, ErrNoArticles
	}

	logger := logging.FromContext(ctx)
	out := make([]FileIndex, 0, len(uploads))
	total := 0
	for _, u := range uploads {
		text, err := reader.Extract(u.Name, u.Content)
		if err != nil {
			logger.Debug("extraction failed", zap.String("file", u.Name), zap.Error(err))
		}
		idx := abbrev.Extract(text)
		total += idx.Len()
		out = append(out, FileIndex{Name: u.Name, Index: idx})
	}

	logger.Info("built abbreviation index", zap.Int("files", len(uploads)), zap.Int("abbreviations", total))
	return out, nil
}

// Preview returns the first PreviewLimit characters of combined followed by
// PreviewNotice.
func Preview(combined string) string {
	return Truncate(combined, PreviewLimit) + PreviewNotice
}

// Truncate returns the first n characters of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// Message returns the user-facing wording for an input error, or err's own
// text for anything else.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrNoQuestion):
		return "Please type a question first."
	case errors.Is(err, ErrNoArticles):
		return "Please upload at least one article."
	case errors.Is(err, ErrNoFiles):
		return "Please upload at least one document."
	case errors.Is(err, ErrNoText):
		return "I could not read any text from the uploaded files."
	default:
		return err.Error()
	}
}
