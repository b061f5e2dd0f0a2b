// Package providers implements schema.LLMProvider backends with direct HTTP
// calls — no vendor SDKs.
package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rekabot/rekabot/internal/schema"
)

const defaultGeminiBase = "https://generativelanguage.googleapis.com/v1beta"

// GeminiProvider calls the Gemini generateContent API.
type GeminiProvider struct {
	apiKey       string
	apiBase      string
	defaultModel string
	httpClient   *http.Client
}

// NewGeminiProvider constructs a provider from raw config values.
// The caller extracts these from config.Config to avoid an import cycle.
func NewGeminiProvider(apiKey, apiBase, defaultModel string) *GeminiProvider {
	if apiBase == "" {
		apiBase = defaultGeminiBase
	}
	return &GeminiProvider{
		apiKey:       apiKey,
		apiBase:      strings.TrimRight(apiBase, "/"),
		defaultModel: defaultModel,
		httpClient:   &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *GeminiProvider) DefaultModel() string { return p.defaultModel }

// Chat implements schema.LLMProvider. Any failure — missing key, transport
// error, non-200 status, unparseable body — is returned as an error: provider
// failures are fatal to the turn, there is no soft path.
func (p *GeminiProvider) Chat(ctx context.Context, messages schema.Messages, opts schema.ChatOptions) (schema.LLMResponse, error) {
	if p.apiKey == "" {
		return schema.LLMResponse{}, fmt.Errorf("gemini API key is not configured")
	}

	model := opts.Model
	if model == "" {
		model = p.defaultModel
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	system, contents := convertMessages(messages)
	body := map[string]any{
		"contents": contents,
		"generationConfig": map[string]any{
			"maxOutputTokens": maxTokens,
			"temperature":     opts.Temperature,
		},
	}
	if system != "" {
		body["system_instruction"] = map[string]any{
			"parts": []map[string]any{{"text": system}},
		}
	}

	data, err := json.Marshal(body)
	if err != nil {
		return schema.LLMResponse{}, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.apiBase, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return schema.LLMResponse{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return schema.LLMResponse{}, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return schema.LLMResponse{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return schema.LLMResponse{}, fmt.Errorf("gemini HTTP %d: %s", resp.StatusCode, friendlyHTTPError(resp.StatusCode, raw))
	}

	return parseGeminiResponse(raw)
}

// convertMessages maps the conversation to Gemini's wire format. System
// messages merge into the system instruction. Gemini has no native tool-result
// role in this protocol: tool messages are rendered as user text carrying the
// JSON payload, which is how results re-enter the model's context.
func convertMessages(messages schema.Messages) (string, []map[string]any) {
	var system string
	var contents []map[string]any

	appendText := func(role, text string) {
		// Gemini rejects two consecutive turns with the same role; merge.
		if n := len(contents); n > 0 && contents[n-1]["role"] == role {
			parts := contents[n-1]["parts"].([]map[string]any)
			contents[n-1]["parts"] = append(parts, map[string]any{"text": text})
			return
		}
		contents = append(contents, map[string]any{
			"role":  role,
			"parts": []map[string]any{{"text": text}},
		})
	}

	for _, msg := range messages.Messages {
		switch msg.Role {
		case "system":
			if system != "" {
				system += "\n\n"
			}
			system += msg.Content

		case "user":
			appendText("user", msg.Content)

		case "assistant":
			appendText("model", msg.Content)

		case "tool":
			appendText("user", fmt.Sprintf("Tool result (%s): %s", msg.ToolName, msg.Content))
		}
	}
	return system, contents
}

// geminiRespBody is the subset of the generateContent response we care about.
type geminiRespBody struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

func parseGeminiResponse(raw []byte) (schema.LLMResponse, error) {
	var body geminiRespBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return schema.LLMResponse{}, fmt.Errorf("parse gemini response: %w", err)
	}
	if len(body.Candidates) == 0 {
		return schema.LLMResponse{}, fmt.Errorf("empty candidates in response")
	}

	cand := body.Candidates[0]
	var content strings.Builder
	for _, part := range cand.Content.Parts {
		content.WriteString(part.Text)
	}

	finish := strings.ToLower(cand.FinishReason)
	if finish == "" {
		finish = "stop"
	}

	return schema.LLMResponse{
		Content:      content.String(),
		FinishReason: finish,
		Usage: map[string]int{
			"prompt_tokens":     body.UsageMetadata.PromptTokenCount,
			"completion_tokens": body.UsageMetadata.CandidatesTokenCount,
			"total_tokens":      body.UsageMetadata.TotalTokenCount,
		},
	}, nil
}

func friendlyHTTPError(code int, body []byte) string {
	if code == http.StatusTooManyRequests {
		return "rate limit exceeded"
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 300 {
		s = s[:300]
	}
	return s
}
