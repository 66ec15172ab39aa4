package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/metcalfc/docqa/internal/display"
	"github.com/metcalfc/docqa/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args against a clean config and flag
// state, returning what it wrote to stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("DOCQA_ANSWERER_BACKEND", "extractive")

	debugFlag, configPath = false, ""
	askQuestion, askFormat, askAnyFormat = "", pipeline.FormatText, false
	indexFormat, indexAnyFormat = pipeline.FormatText, false
	interactive = func() bool { return false }

	prevOut := display.Out
	t.Cleanup(func() { display.Out = prevOut })

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"ask", "index", "formats", "serve", "tui", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "docqa dev (commit: none, built: unknown)\n", out)
}

func TestFormats(t *testing.T) {
	out, _, err := execute(t, "formats")
	require.NoError(t, err)
	assert.Contains(t, out, "Accepted uploads: .pdf .docx .txt .html .htm")
	assert.Contains(t, out, "Word (.docx)")
	assert.Contains(t, out, "EPUB (.epub)")
}

func TestIndexText(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "bravo term (BT) then alpha term (AT). Later bravo thing (BT).")
	b := writeFile(t, dir, "b.html", "<html><body><p>plain</p></body></html>")
	c := writeFile(t, dir, "c.epub", "skipped")

	out, errOut, err := execute(t, "index", a, b, c)
	require.NoError(t, err)
	assert.Equal(t, "#### Abbreviation index for a.txt\n"+
		"AT: then alpha term\n"+
		"BT: bravo term\n"+
		"\n"+
		"#### Abbreviation index for b.html\n"+
		"No abbreviations found in this article.\n", out)
	assert.Contains(t, errOut, "Skipping unsupported files")
	assert.Contains(t, errOut, c)
}

func TestIndexJSON(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "weighted degree centrality (WDC)")

	out, _, err := execute(t, "index", "--format", "json", a)
	require.NoError(t, err)

	var got struct {
		Results []pipeline.IndexResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Results, 1)
	assert.Equal(t, "weighted degree centrality", got.Results[0].Abbreviations[0].Term)
}

func TestIndexAnyFormat(t *testing.T) {
	dir := t.TempDir()
	md := writeFile(t, dir, "notes.md", "large language model (LLM)")

	out, _, err := execute(t, "index", "--any-format", md)
	require.NoError(t, err)
	assert.Contains(t, out, "LLM: large language model")
}

func TestIndexNoFiles(t *testing.T) {
	_, _, err := execute(t, "index")
	assert.ErrorIs(t, err, pipeline.ErrNoArticles)
	assert.EqualError(t, err, "Please upload at least one article.")
}

func TestAsk(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "minutes.txt", "The budget passed. The meeting was held in Oslo.")

	out, _, err := execute(t, "ask", "-q", "Where was the meeting held?", a)
	require.NoError(t, err)
	assert.Contains(t, out, "### Preview of the document text:")
	assert.Contains(t, out, "===== minutes.txt =====")
	assert.Contains(t, out, "(Only showing the beginning.)")
	assert.Contains(t, out, "## Answer:\nThe meeting was held in Oslo.\n")
}

func TestAskInputErrors(t *testing.T) {
	dir := t.TempDir()
	empty := writeFile(t, dir, "empty.txt", "   ")

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no question", []string{"ask", empty}, pipeline.ErrNoQuestion},
		{"no files", []string{"ask", "-q", "why?"}, pipeline.ErrNoFiles},
		{"no text", []string{"ask", "-q", "why?", empty}, pipeline.ErrNoText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, pipeline.Message(tt.want), err.Error())
		})
	}
}

func TestAskMissingFile(t *testing.T) {
	_, _, err := execute(t, "ask", "-q", "why?", filepath.Join(t.TempDir(), "gone.txt"))
	assert.Error(t, err)
}

func TestBadConfigPath(t *testing.T) {
	_, _, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "formats")
	assert.Error(t, err)
}
