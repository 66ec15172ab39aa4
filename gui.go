//go:build gui

package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/metcalfc/docqa/internal/config"
	"github.com/metcalfc/docqa/internal/logging"
	"github.com/metcalfc/docqa/internal/pipeline"
	"github.com/metcalfc/docqa/internal/qa"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var modes = []string{"Ask questions about documents", "Build abbreviation index"}

type model struct {
	ctx      context.Context
	answerer qa.Answerer
	uploads  []pipeline.Upload
	indexing bool
}

// job is one action captured on the UI thread. It owns its uploads so the
// form can change while it runs elsewhere.
type job struct {
	indexing bool
	question string
	uploads  []pipeline.Upload
}

func (m *model) job(question string) job {
	return job{
		indexing: m.indexing,
		question: question,
		uploads:  append([]pipeline.Upload(nil), m.uploads...),
	}
}

// run performs j and returns markdown for the result pane, or a warning.
func (m *model) run(j job) (output, warning string) {
	ctx := logging.StartRun(m.ctx)
	var buf bytes.Buffer

	if j.indexing {
		results, err := pipeline.Index(ctx, j.uploads)
		if err != nil {
			return "", pipeline.Message(err)
		}
		if err := pipeline.RenderIndex(&buf, results, pipeline.FormatMarkdown); err != nil {
			return "", err.Error()
		}
		return buf.String(), ""
	}

	ans, err := pipeline.Ask(ctx, m.answerer, j.question, j.uploads)
	if err != nil {
		return "", pipeline.Message(err)
	}
	if err := pipeline.RenderAnswer(&buf, ans, pipeline.FormatMarkdown); err != nil {
		return "", err.Error()
	}
	return buf.String(), ""
}

func (m *model) fileNames() string {
	if len(m.uploads) == 0 {
		return "No files selected."
	}
	names := make([]string, len(m.uploads))
	for i, u := range m.uploads {
		names[i] = u.Name
	}
	return strings.Join(names, ", ")
}

func main() {
	configPath := flag.String("config", "", "config file (default is $XDG_CONFIG_HOME/docqa/config.yaml)")
	showVersion := flag.Bool("v", false, "Show version information")
	showVersionLong := flag.Bool("version", false, "Show version information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "docqa-gui - Document Question Answering\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  docqa-gui [options] [file...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion || *showVersionLong {
		fmt.Printf("docqa-gui %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(os.Stderr, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	answerer, err := qa.New(cfg.Answerer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	uploads, skipped, err := pipeline.ReadFiles(flag.Args(), false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, s := range skipped {
		fmt.Fprintf(os.Stderr, "Skipping unsupported file '%s'\n", s)
	}

	m := &model{
		ctx:      logging.WithLogger(context.Background(), logger),
		answerer: answerer,
		uploads:  uploads,
	}

	a := app.New()
	w := a.NewWindow("docqa - Document Question Answering")

	question := widget.NewEntry()
	question.SetPlaceHolder("Enter your question")

	filesLabel := widget.NewLabel(m.fileNames())
	filesLabel.Wrapping = fyne.TextWrapWord

	warning := widget.NewLabel("")
	warning.Importance = widget.WarningImportance
	warning.Hide()

	result := widget.NewRichTextFromMarkdown("")
	result.Wrapping = fyne.TextWrapWord

	progress := widget.NewProgressBarInfinite()
	progress.Hide()

	var (
		action               *widget.Button
		addFiles, clearFiles *widget.Button
		mode                 *widget.RadioGroup
	)
	// inputs lists every widget that can change the model; they stay
	// disabled while a job runs.
	inputs := func() []fyne.Disableable {
		return []fyne.Disableable{action, addFiles, clearFiles, mode, question}
	}

	action = widget.NewButton("Get Answer", func() {
		warning.Hide()
		result.ParseMarkdown("")
		for _, in := range inputs() {
			in.Disable()
		}
		progress.Show()

		j := m.job(question.Text)
		go func() {
			output, warn := m.run(j)
			fyne.Do(func() {
				progress.Hide()
				for _, in := range inputs() {
					in.Enable()
				}
				if warn != "" {
					warning.SetText(warn)
					warning.Show()
					return
				}
				result.ParseMarkdown(output)
			})
		}()
	})
	action.Importance = widget.HighImportance

	addFiles = widget.NewButton("Add file…", func() {
		open := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil || rc == nil {
				return
			}
			defer rc.Close()
			content, err := io.ReadAll(rc)
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			m.uploads = append(m.uploads, pipeline.Upload{Name: rc.URI().Name(), Content: content})
			filesLabel.SetText(m.fileNames())
		}, w)
		open.SetFilter(storage.NewExtensionFileFilter(pipeline.AcceptedExtensions))
		open.Show()
	})
	clearFiles = widget.NewButton("Clear", func() {
		m.uploads = nil
		filesLabel.SetText(m.fileNames())
	})

	questionRow := container.NewBorder(nil, nil, widget.NewLabel("Question:"), nil, question)

	mode = widget.NewRadioGroup(modes, func(s string) {
		m.indexing = s == modes[1]
		warning.Hide()
		result.ParseMarkdown("")
		if m.indexing {
			questionRow.Hide()
			action.SetText("Generate Abbreviation Index")
			return
		}
		questionRow.Show()
		action.SetText("Get Answer")
	})
	mode.Horizontal = true
	mode.Required = true
	mode.SetSelected(modes[0])

	form := container.NewVBox(
		widget.NewLabelWithStyle("What do you want to do?", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		mode,
		questionRow,
		container.NewBorder(nil, nil, widget.NewLabel("Files:"), container.NewHBox(addFiles, clearFiles), filesLabel),
		action,
		progress,
		warning,
	)

	w.SetContent(container.NewBorder(form, nil, nil, nil, container.NewVScroll(result)))
	w.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		if key.Name == fyne.KeyEscape {
			a.Quit()
		}
	})
	w.Resize(fyne.NewSize(800, 600))
	w.ShowAndRun()
}
