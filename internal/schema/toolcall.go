package schema

// ToolCall is one extracted directive, ready for dispatch. ID is assigned at
// extraction time and pairs the call with its ToolResult.
type ToolCall struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// ToolResult pairs one executed call with its payload.
type ToolResult struct {
	ToolCallID string `json:"toolCallId"`
	ToolName   string `json:"toolName"`
	Result     Result `json:"result"`
}

// TurnOutput is the complete outcome of one orchestrated turn: the assistant
// text with directives removed, plus the calls made and their results in
// extraction order.
type TurnOutput struct {
	Text        string       `json:"text"`
	ToolCalls   []ToolCall   `json:"toolCalls,omitempty"`
	ToolResults []ToolResult `json:"toolResults,omitempty"`
}
