// Package tui is the interactive terminal front end: pick a mode, type a
// question and some file paths, and read the result.
package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/metcalfc/docqa/internal/logging"
	"github.com/metcalfc/docqa/internal/pipeline"
	"github.com/metcalfc/docqa/internal/qa"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Width(10)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)
)

// Mode selects which action Enter runs.
type Mode int

const (
	ModeAsk Mode = iota
	ModeIndex
)

func (m Mode) String() string {
	if m == ModeIndex {
		return "Build abbreviation index"
	}
	return "Ask questions about documents"
}

type focus int

const (
	focusQuestion focus = iota
	focusFiles
)

// headerLines is how many rows sit above the result viewport.
const headerLines = 7

// resultMsg carries the rendered outcome of one run.
type resultMsg struct {
	output  string
	warning string
	skipped []string
}

// Options configure a Model.
type Options struct {
	Answerer  qa.Answerer
	Mode      Mode
	Question  string
	Files     []string
	AnyFormat bool
	// Context carries the logger; runs derive their own run ID from it.
	Context context.Context
}

// Model is the bubbletea model for the two-mode app.
type Model struct {
	opts     Options
	mode     Mode
	focus    focus
	question textinput.Model
	files    textinput.Model
	spinner  spinner.Model
	result   viewport.Model
	running  bool
	warning  string
	notice   string
	done     bool
	quitting bool
	width    int
	height   int
}

// New returns a model ready for tea.NewProgram.
func New(opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	q := textinput.New()
	q.Placeholder = "What is this document about?"
	q.SetValue(opts.Question)

	f := textinput.New()
	f.Placeholder = "paper.pdf, notes.docx, page.html"
	f.SetValue(strings.Join(opts.Files, ", "))

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := Model{
		opts:     opts,
		mode:     opts.Mode,
		question: q,
		files:    f,
		spinner:  sp,
		result:   viewport.New(80, 24-headerLines),
		width:    80,
		height:   24,
	}
	if m.mode == ModeIndex {
		m.focus = focusFiles
	}
	m.applyFocus()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) applyFocus() {
	if m.focus == focusQuestion {
		m.question.Focus()
		m.files.Blur()
		return
	}
	m.question.Blur()
	m.files.Focus()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "ctrl+t":
			if m.running {
				return m, nil
			}
			if m.mode == ModeAsk {
				m.mode, m.focus = ModeIndex, focusFiles
			} else {
				m.mode, m.focus = ModeAsk, focusQuestion
			}
			m.applyFocus()
			m.warning, m.notice, m.done = "", "", false
			m.result.SetContent("")
			return m, nil

		case "tab", "shift+tab":
			if m.mode == ModeAsk {
				if m.focus == focusQuestion {
					m.focus = focusFiles
				} else {
					m.focus = focusQuestion
				}
				m.applyFocus()
			}
			return m, nil

		case "enter":
			if m.running {
				return m, nil
			}
			return m.start()

		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.result, cmd = m.result.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.result.Width = msg.Width
		m.result.Height = max(msg.Height-headerLines, 3)
		m.question.Width = max(msg.Width-14, 10)
		m.files.Width = max(msg.Width-14, 10)
		return m, nil

	case resultMsg:
		m.running = false
		m.done = msg.output != ""
		m.warning = msg.warning
		m.notice = ""
		if len(msg.skipped) > 0 {
			m.notice = "Skipped unsupported files: " + strings.Join(msg.skipped, ", ")
		}
		m.result.SetContent(lipgloss.NewStyle().Width(m.result.Width).Render(msg.output))
		m.result.GotoTop()
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	if m.focus == focusQuestion {
		m.question, cmd = m.question.Update(msg)
	} else {
		m.files, cmd = m.files.Update(msg)
	}
	return m, cmd
}

// start validates the form and launches the selected action.
func (m Model) start() (tea.Model, tea.Cmd) {
	m.warning, m.notice = "", ""
	question := strings.TrimSpace(m.question.Value())
	paths := pipeline.SplitPaths(m.files.Value())

	if m.mode == ModeAsk && question == "" {
		m.warning = pipeline.Message(pipeline.ErrNoQuestion)
		return m, nil
	}
	if len(paths) == 0 {
		missing := pipeline.ErrNoFiles
		if m.mode == ModeIndex {
			missing = pipeline.ErrNoArticles
		}
		m.warning = pipeline.Message(missing)
		return m, nil
	}

	m.running, m.done = true, false
	m.result.SetContent("")
	return m, tea.Batch(m.spinner.Tick, run(m.opts, m.mode, question, paths))
}

// run performs one action off the render loop.
func run(opts Options, mode Mode, question string, paths []string) tea.Cmd {
	return func() tea.Msg {
		ctx := logging.StartRun(opts.Context)
		uploads, skipped, err := pipeline.ReadFiles(paths, opts.AnyFormat)
		if err != nil {
			return resultMsg{warning: err.Error(), skipped: skipped}
		}

		var buf bytes.Buffer
		switch mode {
		case ModeIndex:
			results, err := pipeline.Index(ctx, uploads)
			if err != nil {
				return resultMsg{warning: pipeline.Message(err), skipped: skipped}
			}
			if err := pipeline.RenderIndex(&buf, results, pipeline.FormatText); err != nil {
				return resultMsg{warning: err.Error(), skipped: skipped}
			}
		default:
			ans, err := pipeline.Ask(ctx, opts.Answerer, question, uploads)
			if err != nil {
				return resultMsg{warning: pipeline.Message(err), skipped: skipped}
			}
			if err := pipeline.RenderAnswer(&buf, ans, pipeline.FormatText); err != nil {
				return resultMsg{warning: err.Error(), skipped: skipped}
			}
		}
		return resultMsg{output: buf.String(), skipped: skipped}
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("docqa · " + m.mode.String()))
	sb.WriteString("\n\n")

	if m.mode == ModeAsk {
		sb.WriteString(labelStyle.Render("Question") + m.question.View())
	}
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("Files") + m.files.View())
	sb.WriteString("\n\n")

	switch {
	case m.running:
		sb.WriteString(statusStyle.Render(m.spinner.View() + " Reading your documents now..."))
	case m.warning != "":
		sb.WriteString(warnStyle.Render(m.warning))
	case m.notice != "":
		sb.WriteString(statusStyle.Render(m.notice))
	case m.done:
		sb.WriteString(successStyle.Render("Done."))
	}
	sb.WriteString("\n")

	sb.WriteString(m.result.View())
	sb.WriteString("\n")

	action := "Get Answer"
	if m.mode == ModeIndex {
		action = "Generate Abbreviation Index"
	}
	sb.WriteString(controlsStyle.Render(fmt.Sprintf("ENTER: %s  TAB: next field  CTRL+T: switch mode  PGUP/PGDN: scroll  ESC: quit", action)))
	return sb.String()
}

// Mode reports the current mode.
func (m Model) Mode() Mode { return m.mode }

// Warning reports the warning shown to the user, if any.
func (m Model) Warning() string { return m.warning }

// Running reports whether an action is in flight.
func (m Model) Running() bool { return m.running }
