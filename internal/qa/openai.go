package qa

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"text/template"
	"time"

	"github.com/metcalfc/docqa/internal/config"
	"github.com/sashabaranov/go-openai"
	"github.com/sethvargo/go-retry"
)

const answerPrompt = `Answer the question using only the context below.
Reply with the shortest span of the context that answers the question, copied verbatim.
If the context does not contain the answer, reply with an empty string.

Context:
{{.Context}}

Question: {{.Question}}`

var answerPromptTemplate = template.Must(template.New("answer").Parse(answerPrompt))

// OpenAI answers through any OpenAI-compatible chat completion endpoint.
type OpenAI struct {
	cl         *openai.Client
	model      string
	maxRetries uint64
	timeout    time.Duration
	backoff    time.Duration
}

// NewOpenAI builds a client from cfg. An empty BaseURL means api.openai.com.
func NewOpenAI(cfg config.Answerer) *OpenAI {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAI{
		cl:         openai.NewClientWithConfig(clientConfig),
		model:      cfg.Model,
		maxRetries: uint64(cfg.MaxRetries),
		timeout:    cfg.Timeout,
		backoff:    time.Second,
	}
}

func (o *OpenAI) Answer(ctx context.Context, question, passage string) (string, error) {
	buf := new(bytes.Buffer)
	if err := answerPromptTemplate.Execute(buf, struct {
		Question string
		Context  string
	}{
		Question: question,
		Context:  passage,
	}); err != nil {
		return "", err
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	b := retry.NewFibonacci(o.backoff)
	b = retry.WithMaxRetries(o.maxRetries, b)

	var resp openai.ChatCompletionResponse
	if err := retry.Do(ctx, b, func(ctx context.Context) error {
		var err error
		resp, err = o.cl.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: o.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: buf.String()},
			},
			Temperature: 0,
			MaxTokens:   256,
		})
		if err != nil && retryable(err) {
			return retry.RetryableError(err)
		}
		return err
	}); err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// retryable reports rate limiting and server-side failures.
func retryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests || reqErr.HTTPStatusCode >= 500
	}
	return false
}
