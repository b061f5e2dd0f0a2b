// Package agent turns raw model output into completed tool-augmented turns:
// it builds the system prompt, calls the provider, extracts directives from
// the reply, and dispatches them.
package agent

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/rekabot/rekabot/internal/extract"
	"github.com/rekabot/rekabot/internal/schema"
	"github.com/rekabot/rekabot/internal/tools"
)

// toolsPlaceholder stands in for assistant text when the model's entire reply
// was directives.
const toolsPlaceholder = "Using tools..."

// Orchestrator runs the single-pass extract→dispatch pipeline over one model
// reply. It never re-invokes the model: feeding results back is the caller's
// decision, on the next turn.
type Orchestrator struct {
	dispatcher *tools.Dispatcher
}

// NewOrchestrator creates an Orchestrator over the dispatcher.
func NewOrchestrator(dispatcher *tools.Dispatcher) *Orchestrator {
	return &Orchestrator{dispatcher: dispatcher}
}

// Orchestrate extracts directives from modelText and dispatches them all
// concurrently, waiting for every result. Results are paired with their calls
// by id and reported in extraction order. Faulty calls produce failure
// Results; nothing here fails the turn.
func (o *Orchestrator) Orchestrate(ctx context.Context, modelText string) schema.TurnOutput {
	calls, residual, report := extract.Extract(modelText)
	if report.Candidates > 0 {
		slog.Info("directive scan",
			"candidates", report.Candidates,
			"parsed", report.Parsed,
			"malformed", report.Malformed)
	}

	if len(calls) == 0 {
		return schema.TurnOutput{Text: residual}
	}

	results := make([]schema.ToolResult, len(calls))
	g, gctx := errgroup.WithContext(ctx)
	for i, call := range calls {
		g.Go(func() error {
			results[i] = schema.ToolResult{
				ToolCallID: call.ID,
				ToolName:   call.Name,
				Result:     o.dispatcher.Dispatch(gctx, call),
			}
			return nil
		})
	}
	_ = g.Wait() // dispatch absorbs all faults; nothing to propagate

	text := residual
	if text == "" {
		text = toolsPlaceholder
	}
	return schema.TurnOutput{Text: text, ToolCalls: calls, ToolResults: results}
}
