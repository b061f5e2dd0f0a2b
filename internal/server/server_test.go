package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rekabot/rekabot/internal/agent"
	"github.com/rekabot/rekabot/internal/schema"
	"github.com/rekabot/rekabot/internal/tools"
)

type cannedProvider struct {
	reply string
	err   error
}

func (p *cannedProvider) Chat(context.Context, schema.Messages, schema.ChatOptions) (schema.LLMResponse, error) {
	if p.err != nil {
		return schema.LLMResponse{}, p.err
	}
	return schema.LLMResponse{Content: p.reply, FinishReason: "stop"}, nil
}

func (p *cannedProvider) DefaultModel() string { return "canned" }

func newTestServer(t *testing.T, p schema.LLMProvider) *Server {
	t.Helper()
	reg, err := tools.NewRegistryBuilder().WithTool(tools.NewCalculatorTool()).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	a := agent.New(p, reg, tools.NewDispatcher(reg, 0),
		schema.NewChatOptions("canned", 1024, 0.7), agent.RetrievalOptions{})
	return New(a, reg, 0)
}

func postChat(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestChatPlainTurn(t *testing.T) {
	s := newTestServer(t, &cannedProvider{reply: "Hello there."})
	rec := postChat(t, s.Handler(), `{"messages":[{"role":"user","content":"hi"}]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out schema.TurnOutput
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Text != "Hello there." || len(out.ToolCalls) != 0 {
		t.Fatalf("unexpected output %+v", out)
	}
}

func TestChatToolTurn(t *testing.T) {
	s := newTestServer(t, &cannedProvider{
		reply: `On it. {"tool": "calculator", "expression": "25 * 4 + sqrt(81)"}`,
	})
	rec := postChat(t, s.Handler(),
		`{"messages":[{"role":"user","content":"what is 25*4+sqrt(81)?"}],"useTools":true}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out schema.TurnOutput
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Text != "On it." {
		t.Fatalf("unexpected text %q", out.Text)
	}
	if len(out.ToolResults) != 1 {
		t.Fatalf("expected 1 tool result, got %d", len(out.ToolResults))
	}
	if got := out.ToolResults[0].Result["result"].(float64); got != 109 {
		t.Fatalf("expected 109, got %v", got)
	}
}

func TestChatProviderFailureIs502(t *testing.T) {
	s := newTestServer(t, &cannedProvider{err: errors.New("model unavailable")})
	rec := postChat(t, s.Handler(),
		`{"messages":[{"role":"user","content":"hi"}],"useTools":true}`)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "model unavailable") {
		t.Fatalf("cause missing from body: %s", rec.Body.String())
	}
}

func TestChatValidation(t *testing.T) {
	s := newTestServer(t, &cannedProvider{reply: "ok"})
	h := s.Handler()

	cases := []struct {
		name string
		body string
	}{
		{"empty messages", `{"messages":[]}`},
		{"bad json", `{messages`},
		{"bad role", `{"messages":[{"role":"admin","content":"x"}]}`},
	}
	for _, tc := range cases {
		rec := postChat(t, h, tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tc.name, rec.Code)
		}
	}
}

func TestChatMethodRouting(t *testing.T) {
	s := newTestServer(t, &cannedProvider{reply: "ok"})
	req := httptest.NewRequest(http.MethodGet, "/api/chat", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for GET /api/chat, got %d", rec.Code)
	}
}

func TestToolsCatalog(t *testing.T) {
	s := newTestServer(t, &cannedProvider{reply: "ok"})
	req := httptest.NewRequest(http.MethodGet, "/api/tools", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var out struct {
		Tools []struct {
			Name       string `json:"name"`
			Parameters struct {
				Required []string `json:"required"`
			} `json:"parameters"`
		} `json:"tools"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Tools) != 1 || out.Tools[0].Name != "calculator" {
		t.Fatalf("unexpected catalog %+v", out)
	}
	if len(out.Tools[0].Parameters.Required) != 1 || out.Tools[0].Parameters.Required[0] != "expression" {
		t.Fatalf("parameters missing from catalog: %+v", out.Tools[0])
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, &cannedProvider{reply: "ok"})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
