package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rekabot/rekabot/internal/rag"
	"github.com/rekabot/rekabot/internal/schema"
	"github.com/rekabot/rekabot/internal/shared/llmutils"
	"github.com/rekabot/rekabot/internal/tools"
)

// RetrievalOptions tunes document grounding. Zero values select the rag
// package defaults.
type RetrievalOptions struct {
	ChunkSize int
	Overlap   int
	TopK      int
}

// Agent runs complete turns: system prompt → one provider call → directive
// orchestration. It holds no conversation state; callers own the history.
type Agent struct {
	provider  schema.LLMProvider
	orch      *Orchestrator
	ctxBuild  *ContextBuilder
	opts      schema.ChatOptions
	retrieval RetrievalOptions
}

// New creates an Agent.
func New(provider schema.LLMProvider, registry *tools.Registry, dispatcher *tools.Dispatcher,
	opts schema.ChatOptions, retrieval RetrievalOptions) *Agent {
	return &Agent{
		provider:  provider,
		orch:      NewOrchestrator(dispatcher),
		ctxBuild:  NewContextBuilder(registry),
		opts:      opts,
		retrieval: retrieval,
	}
}

// Turn runs one turn over history. With useTools the reply is scanned for
// directives and they are dispatched; without it the reply text passes
// through untouched. document, when non-empty, is chunked and ranked against
// the latest user message, and the best excerpts ground the system prompt.
//
// Only a provider failure returns an error; every tool-side fault is
// absorbed into the TurnOutput.
func (a *Agent) Turn(ctx context.Context, history schema.Messages, useTools bool, document string) (schema.TurnOutput, error) {
	var grounding []string
	if document != "" {
		grounding = rag.RelevantContext(latestUserContent(history), document,
			a.retrieval.ChunkSize, a.retrieval.Overlap, a.retrieval.TopK)
	}

	conversation := schema.NewMessages(
		schema.NewSystemMessage(a.ctxBuild.SystemPrompt(useTools, grounding)))
	conversation.Append(history)

	resp, err := a.provider.Chat(ctx, conversation, a.opts)
	if err != nil {
		slog.Error("provider call failed", "err", err)
		return schema.TurnOutput{}, fmt.Errorf("chat provider: %w", err)
	}

	text := llmutils.StripThink(resp.Content)
	if !useTools {
		return schema.TurnOutput{Text: strings.TrimSpace(text)}, nil
	}

	out := a.orch.Orchestrate(ctx, text)
	if len(out.ToolCalls) > 0 {
		slog.Info("tools dispatched", "calls", llmutils.ToolHint(out.ToolCalls))
	}
	return out, nil
}

// latestUserContent returns the content of the last user message, or "".
func latestUserContent(history schema.Messages) string {
	for i := len(history.Messages) - 1; i >= 0; i-- {
		if history.Messages[i].Role == "user" {
			return history.Messages[i].Content
		}
	}
	return ""
}
