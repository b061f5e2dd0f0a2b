// Package session manages per-conversation history for the chat REPL,
// persisted as JSONL files under the data directory.
//
// File format:
//
//	Line 1:  {"_type":"metadata","key":"…","created_at":"…","updated_at":"…"}
//	Line 2+: one JSON message object per line
package session

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rekabot/rekabot/internal/schema"
)

// Session holds one conversation's messages and metadata.
type Session struct {
	Key       string
	Messages  schema.Messages
	CreatedAt time.Time
	UpdatedAt time.Time

	mu sync.Mutex
}

// AddUser appends a user message.
func (s *Session) AddUser(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages.AddUser(content)
	s.UpdatedAt = time.Now()
}

// AddTurn appends a completed turn: the assistant message (with any tool
// calls it made) followed by one tool message per result, so the model sees
// its own calls and their payloads on the next turn.
func (s *Session) AddTurn(out schema.TurnOutput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages.AddAssistant(out.Text, out.ToolCalls)
	for _, tr := range out.ToolResults {
		payload, err := json.Marshal(tr.Result)
		if err != nil {
			payload = []byte(`{"success":false,"error":"unencodable result"}`)
		}
		s.Messages.AddToolResult(tr.ToolCallID, tr.ToolName, string(payload))
	}
	s.UpdatedAt = time.Now()
}

// GetHistory returns the last maxMessages messages for the LLM.
// maxMessages <= 0 returns everything.
func (s *Session) GetHistory(maxMessages int) schema.Messages {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.Messages.Messages
	if maxMessages > 0 && len(msgs) > maxMessages {
		msgs = msgs[len(msgs)-maxMessages:]
	}

	out := schema.NewMessages()
	out.Messages = append(out.Messages, msgs...)
	return out
}

// Len returns the number of messages in the session.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Messages.Messages)
}

// Clear drops all messages.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages = schema.NewMessages()
	s.UpdatedAt = time.Now()
}

// snapshot returns copies of the fields Save needs, under the lock.
func (s *Session) snapshot() (schema.Messages, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Messages.Clone(), s.CreatedAt
}
