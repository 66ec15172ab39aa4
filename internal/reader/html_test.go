package reader

import (
	"strings"
	"testing"
)

func TestHTMLStripsScriptAndStyle(t *testing.T) {
	page := `<!DOCTYPE html>
<html><head>
<style>body { color: red; }</style>
<script>console.log("tracking (GA)")</script>
</head><body>
<!-- a comment (CMT) -->
<p>Natural language processing (NLP)</p><p>is fun</p>
<script type="module">import x from "y";</script>
</body></html>`

	got := ExtractText("page.html", []byte(page))

	for _, leaked := range []string{"color: red", "console.log", "import x", "a comment", "DOCTYPE"} {
		if strings.Contains(got, leaked) {
			t.Errorf("output contains %q: %q", leaked, got)
		}
	}
	if !strings.Contains(got, "Natural language processing (NLP)\nis fun") {
		t.Errorf("text nodes not newline-joined: %q", got)
	}
}

func TestHTMLTextNodesJoinedWithNewlines(t *testing.T) {
	got := ExtractText("frag.htm", []byte(`<p>one</p><p>two</p><p>three</p>`))
	if got != "one\ntwo\nthree" {
		t.Errorf("got %q, want %q", got, "one\ntwo\nthree")
	}
}

func TestHTMLDecodesEntities(t *testing.T) {
	got := ExtractText("e.html", []byte(`<p>Fish &amp; chips &lt;3</p>`))
	if got != "Fish & chips <3" {
		t.Errorf("got %q", got)
	}
}
