package anthropic

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const polishSystem = "You are a helpful relocation assistant. " +
	"Rewrite the assistant message to be concise, friendly, and easy to read. " +
	"Preserve all numbers and facts. Reply with the rewritten message only."

// Polisher rewrites a formatted answer into friendlier prose. Calls are
// rate limited; on any failure the draft answer is returned unchanged so a
// flaky API never breaks the conversation.
type Polisher struct {
	client    Client
	model     string
	maxTokens int64
	limiter   *rate.Limiter
}

// NewPolisher creates a Polisher capped at rps polish calls per second.
func NewPolisher(client Client, model string, rps float64) *Polisher {
	if rps <= 0 {
		rps = 1
	}
	return &Polisher{
		client:    client,
		model:     model,
		maxTokens: 1024,
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Polish rewrites draft in the context of the user's message.
func (p *Polisher) Polish(ctx context.Context, userMessage, draft string) string {
	if err := p.limiter.Wait(ctx); err != nil {
		return draft
	}

	prompt := fmt.Sprintf("User message:\n%s\n\nDraft assistant answer:\n%s", userMessage, draft)
	resp, err := p.client.CreateMessage(ctx, MessageRequest{
		Model:     p.model,
		MaxTokens: p.maxTokens,
		System:    polishSystem,
		Messages:  []Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		zap.L().Warn("polish failed, using draft answer", zap.Error(err))
		return draft
	}

	out := strings.TrimSpace(resp.Text())
	if out == "" {
		return draft
	}
	return out
}
