package market

import (
	"context"
	"fmt"
	"math"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/petasbytes/nanda-agents/internal/provider"
)

// Summarizer produces the optional one-sentence human summary.
type Summarizer interface {
	Summarize(ctx context.Context, snap Snapshot) string
}

// FallbackBlurb is the deterministic sentence used when no language
// model is configured or the call fails.
func FallbackBlurb(s Snapshot) string {
	updown := "up"
	if s.Change < 0 {
		updown = "down"
	}
	return fmt.Sprintf("S&P 500 closed %s %.2f (%.2f%%) at %.2f.",
		updown, math.Abs(s.Change), s.ChangePct, s.Close)
}

// StaticSummarizer always returns the deterministic sentence.
type StaticSummarizer struct{}

// Summarize implements Summarizer.
func (StaticSummarizer) Summarize(_ context.Context, snap Snapshot) string {
	return FallbackBlurb(snap)
}

// LLMSummarizer asks the configured Anthropic model for the blurb,
// falling back to the deterministic sentence on any failure. The
// summary is best-effort decoration; it never fails a request.
type LLMSummarizer struct {
	Client *anthropic.Client
	Model  anthropic.Model
}

// Summarize implements Summarizer.
func (l *LLMSummarizer) Summarize(ctx context.Context, snap Snapshot) string {
	prompt := fmt.Sprintf(
		"Write one sentence summarizing today's S&P 500 move in a neutral tone. "+
			"Close: %.2f. Change: %+.2f (%+.2f%%). Keep it under 20 words. No emojis.",
		snap.Close, snap.Change, snap.ChangePct)

	text, err := provider.Complete(ctx, l.Client, l.Model, prompt, 60)
	if err != nil || text == "" {
		return FallbackBlurb(snap)
	}
	return text
}
