// Package assistant wires the interpreter, engine, and formatter into the
// turn-level chat handler.
package assistant

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/relocate-cli/internal/engine"
	"github.com/sells-group/relocate-cli/internal/format"
	"github.com/sells-group/relocate-cli/internal/interpret"
	"github.com/sells-group/relocate-cli/internal/model"
	"github.com/sells-group/relocate-cli/internal/resolve"
	"github.com/sells-group/relocate-cli/internal/store"
	"github.com/sells-group/relocate-cli/pkg/anthropic"
)

const greeting = "Hi! Tell me your budget, ask for the cheapest or " +
	"fastest-growing metros, or ask me to compare two cities."

// Answer is one completed chat turn.
type Answer struct {
	Query  model.Query            `json:"query"`
	Result model.ComparisonResult `json:"result"`
	Text   string                 `json:"text"`
}

// Assistant answers one message at a time. It is safe for concurrent use:
// every collaborator reads the same immutable index.
type Assistant struct {
	interp   *interpret.Interpreter
	engine   *engine.Engine
	polisher *anthropic.Polisher
}

// New builds an Assistant from an index. A nil polisher skips the polish
// pass.
func New(ix *store.Index, aliasOverrides map[string]string, polisher *anthropic.Polisher) *Assistant {
	resolver := resolve.New(ix, aliasOverrides)
	return &Assistant{
		interp:   interpret.New(resolver),
		engine:   engine.New(ix),
		polisher: polisher,
	}
}

// Reply handles one message end to end. Unusable input gets the greeting
// rather than an error; the session must keep responding.
func (a *Assistant) Reply(ctx context.Context, message string) (*Answer, error) {
	q, err := a.interp.Interpret(message)
	if err != nil {
		if eris.Is(err, model.ErrQuery) {
			return &Answer{Query: q, Text: greeting}, nil
		}
		return nil, err
	}

	res, err := a.engine.Evaluate(q)
	if err != nil {
		return nil, eris.Wrap(err, "assistant: evaluate")
	}

	text := format.Render(res)
	if a.polisher != nil {
		text = a.polisher.Polish(ctx, message, text)
	}

	zap.L().Debug("answered",
		zap.String("mode", string(q.Mode)),
		zap.Int("ranked", len(res.Ranked)),
		zap.Int("unresolved", len(res.Unresolved)),
	)

	return &Answer{Query: q, Result: res, Text: text}, nil
}
