package schema

// Message is one entry in the conversation history.
//
// Role is one of: "system", "user", "assistant", "tool".
//
// ToolCalls is populated for assistant messages whose text contained
// directives. ToolCallID and ToolName are set for tool-result messages,
// whose Content is the JSON-encoded Result payload.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"` // "tool" role only
	ToolName   string     `json:"name,omitempty"`         // "tool" role only
}

func NewSystemMessage(content string) Message {
	return Message{Role: "system", Content: content}
}

func NewUserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}

func NewAssistantMessage(content string, toolCalls []ToolCall) Message {
	return Message{Role: "assistant", Content: content, ToolCalls: toolCalls}
}

func NewToolResultMessage(toolCallID, toolName, result string) Message {
	return Message{Role: "tool", Content: result, ToolCallID: toolCallID, ToolName: toolName}
}
