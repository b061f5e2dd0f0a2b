package session

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rekabot/rekabot/internal/schema"
)

// Manager loads and persists sessions as JSONL files.
type Manager struct {
	sessionsDir string
	cache       sync.Map // key → *Session
}

// NewManager creates a Manager rooted at the data directory.
// It creates the sessions subdirectory if necessary.
func NewManager(dataDir string) (*Manager, error) {
	dir := filepath.Join(dataDir, "sessions")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create sessions dir: %w", err)
	}
	return &Manager{sessionsDir: dir}, nil
}

// GetOrCreate returns the cached session for key, loading from disk if needed,
// or creating an empty new one.
func (m *Manager) GetOrCreate(key string) *Session {
	if v, ok := m.cache.Load(key); ok {
		return v.(*Session)
	}

	s := m.load(key)
	if s == nil {
		s = &Session{
			Key:       key,
			Messages:  schema.NewMessages(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
	}

	actual, _ := m.cache.LoadOrStore(key, s)
	return actual.(*Session)
}

// Save writes the session to disk and updates the cache.
func (m *Manager) Save(s *Session) error {
	msgs, createdAt := s.snapshot()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	meta := map[string]any{
		"_type":      "metadata",
		"key":        s.Key,
		"created_at": createdAt.UTC().Format(time.RFC3339),
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}
	if err := enc.Encode(meta); err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}

	for _, msg := range msgs.Messages {
		if err := enc.Encode(msg); err != nil {
			return fmt.Errorf("encode message: %w", err)
		}
	}

	path := m.sessionPath(s.Key)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write session %s: %w", path, err)
	}

	m.cache.Store(s.Key, s)
	return nil
}

// load reads a session file, or returns nil when none exists or it is
// unreadable.
func (m *Manager) load(key string) *Session {
	f, err := os.Open(m.sessionPath(key))
	if err != nil {
		return nil
	}
	defer f.Close()

	s := &Session{Key: key, Messages: schema.NewMessages(), CreatedAt: time.Now(), UpdatedAt: time.Now()}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	first := true
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		if first {
			first = false
			var meta struct {
				Type      string `json:"_type"`
				CreatedAt string `json:"created_at"`
				UpdatedAt string `json:"updated_at"`
			}
			if json.Unmarshal(line, &meta) == nil && meta.Type == "metadata" {
				if t, err := time.Parse(time.RFC3339, meta.CreatedAt); err == nil {
					s.CreatedAt = t
				}
				if t, err := time.Parse(time.RFC3339, meta.UpdatedAt); err == nil {
					s.UpdatedAt = t
				}
				continue
			}
			// No metadata line: fall through and treat it as a message.
		}

		var msg schema.Message
		if err := json.Unmarshal(line, &msg); err != nil {
			continue // skip corrupt lines, keep the rest
		}
		s.Messages.Add(msg)
	}

	return s
}

// sessionPath maps a session key to its file, flattening path separators.
func (m *Manager) sessionPath(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(key)
	return filepath.Join(m.sessionsDir, safe+".jsonl")
}
