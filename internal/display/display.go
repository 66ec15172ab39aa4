// Package display prints styled status lines for the docqa CLI.
package display

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Out is where every helper writes.
var Out io.Writer = os.Stdout

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "21", Dark: "33"})
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

func Info(text string) {
	fmt.Fprintln(Out, infoStyle.Render(text))
}

func Success(text string) {
	fmt.Fprintln(Out, successStyle.Render(text))
}

// Warn prints a recoverable problem, such as missing input.
func Warn(text string) {
	fmt.Fprintln(Out, warnStyle.Render(text))
}

func Heading(text string) {
	fmt.Fprintln(Out, headingStyle.Render(text))
}

// Error prints err and any additional messages.
func Error(err error, msgs ...string) {
	if err == nil || err.Error() == "" {
		return
	}
	ErrorMsg(err.Error())
	ErrorMsg(msgs...)
}

func ErrorMsg(msgs ...string) {
	for _, msg := range msgs {
		fmt.Fprintln(Out, errorStyle.Render(msg))
	}
}
