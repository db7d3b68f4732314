// Package provider wraps the Anthropic client used for optional
// natural-language summaries.
package provider

import (
	"context"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
)

// DefaultModel is used when ANTHROPIC_MODEL is unset.
const DefaultModel = anthropic.ModelClaude3_7SonnetLatest

// Available reports whether an API key is configured. Callers skip
// the hosted model entirely when it is not.
func Available() bool {
	return os.Getenv("ANTHROPIC_API_KEY") != ""
}

// NewClient returns a client using the API key from the env.
func NewClient() *anthropic.Client {
	c := anthropic.NewClient()
	return &c
}

// Model resolves the model from ANTHROPIC_MODEL, defaulting to
// DefaultModel.
func Model() anthropic.Model {
	if m := os.Getenv("ANTHROPIC_MODEL"); m != "" {
		return anthropic.Model(m)
	}
	return DefaultModel
}

// Complete sends a single user prompt and returns the concatenated
// text blocks of the reply, trimmed.
func Complete(ctx context.Context, client *anthropic.Client, model anthropic.Model, prompt string, maxTokens int64) (string, error) {
	msg, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(0.2),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}
	var out strings.Builder
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			out.WriteString(tb.Text)
		}
	}
	return strings.TrimSpace(out.String()), nil
}
