package qa

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/metcalfc/docqa/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindSentenceStarts(t *testing.T) {
	tests := []struct {
		name     string
		words    []string
		expected []int
	}{
		{"single sentence", []string{"Hello", "world."}, []int{0}},
		{"two sentences", []string{"Hello.", "World."}, []int{0, 1}},
		{"exclamation and question", []string{"Wow!", "Really?", "Yes."}, []int{0, 1, 2}},
		{"no terminal punctuation", []string{"no", "end", "here"}, []int{0}},
		{"empty word", []string{"", "a."}, []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FindSentenceStarts(tt.words))
		})
	}
}

func TestSentences(t *testing.T) {
	got := Sentences("One two. Three four! Five")
	assert.Equal(t, [][]string{{"One", "two."}, {"Three", "four!"}, {"Five"}}, got)
	assert.Nil(t, Sentences("   "))
}

func TestExtractiveAnswer(t *testing.T) {
	passage := "\n\n===== paper.txt =====\n\n" +
		"Graphs are everywhere. Weighted degree centrality (WDC) sums edge weights at a node. " +
		"Other measures exist.\n\n===== notes.txt =====\n\nThe conference was held in Lisbon."

	e := NewExtractive()
	tests := []struct {
		question string
		want     string
	}{
		{"What does weighted degree centrality sum?", "Weighted degree centrality (WDC) sums edge weights at a node."},
		{"Where was the conference held?", "The conference was held in Lisbon."},
		{"What is the airspeed of a swallow?", ""},
		{"what is the", ""},
	}
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			got, err := e.Answer(context.Background(), tt.question, passage)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractiveTiesGoToEarliest(t *testing.T) {
	got, err := NewExtractive().Answer(context.Background(), "cats", "Cats sleep. Cats purr.")
	require.NoError(t, err)
	assert.Equal(t, "Cats sleep.", got)
}

func TestExtractiveHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewExtractive().Answer(ctx, "q", "p")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFunc(t *testing.T) {
	var a Answerer = Func(func(_ context.Context, q, p string) (string, error) {
		return q + "|" + p, nil
	})
	got, err := a.Answer(context.Background(), "q", "p")
	require.NoError(t, err)
	assert.Equal(t, "q|p", got)
}

func TestNew(t *testing.T) {
	a, err := New(config.Answerer{Backend: config.BackendExtractive})
	require.NoError(t, err)
	assert.IsType(t, &Extractive{}, a)

	a, err = New(config.Answerer{Backend: config.BackendOpenAI, APIKey: "k", Model: "m"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAI{}, a)

	_, err = New(config.Answerer{Backend: "oracle"})
	assert.Error(t, err)
}

const completionBody = `{"id":"c1","object":"chat.completion","created":1,"model":"test-model",
"choices":[{"index":0,"message":{"role":"assistant","content":"  Lisbon \n"},"finish_reason":"stop"}]}`

func newTestOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAI {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	o := NewOpenAI(config.Answerer{
		Backend:    config.BackendOpenAI,
		BaseURL:    srv.URL + "/v1",
		APIKey:     "sk-test",
		Model:      "test-model",
		MaxRetries: 2,
		Timeout:    5 * time.Second,
	})
	o.backoff = time.Millisecond
	return o
}

func TestOpenAIAnswer(t *testing.T) {
	var gotPrompt string
	o := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 1)
		gotPrompt = req.Messages[0].Content

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, completionBody)
	})

	got, err := o.Answer(context.Background(), "Where?", "It was in Lisbon.")
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", got)
	assert.Contains(t, gotPrompt, "Question: Where?")
	assert.Contains(t, gotPrompt, "It was in Lisbon.")
}

func TestOpenAIRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	o := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			io.WriteString(w, `{"error":{"message":"overloaded","type":"server_error"}}`)
			return
		}
		io.WriteString(w, completionBody)
	})

	got, err := o.Answer(context.Background(), "Where?", "Lisbon.")
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", got)
	assert.Equal(t, int32(2), calls.Load())
}

func TestOpenAIDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	o := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":{"message":"bad model","type":"invalid_request_error"}}`)
	})

	_, err := o.Answer(context.Background(), "Where?", "Lisbon.")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "bad model"), err.Error())
	assert.Equal(t, int32(1), calls.Load())
}

func TestOpenAIZeroRetries(t *testing.T) {
	var calls atomic.Int32
	o := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, `{"error":{"message":"overloaded","type":"server_error"}}`)
	})
	o.maxRetries = 0

	_, err := o.Answer(context.Background(), "Where?", "Lisbon.")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}
