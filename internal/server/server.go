// Package server exposes the chat agent over a small JSON HTTP API.
//
// Endpoints:
//   - POST /api/chat  — run one turn: {messages, useTools, document?}
//   - GET  /api/tools — the tool catalog (names, descriptions, parameters)
//   - GET  /healthz   — health check
//
// The API is stateless: callers send the full conversation each request and
// get the completed turn back.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rekabot/rekabot/internal/agent"
	"github.com/rekabot/rekabot/internal/schema"
	"github.com/rekabot/rekabot/internal/tools"
)

const (
	// maxRequestBodySize caps request bodies (documents included) at 2MB.
	maxRequestBodySize = 2 * 1024 * 1024

	// maxMessageCount bounds conversation length per request.
	maxMessageCount = 100

	readTimeout     = 15 * time.Second
	writeTimeout    = 180 * time.Second // provider call + tools fit inside
	shutdownTimeout = 10 * time.Second
)

// validRoles is the accepted message role whitelist.
var validRoles = map[string]bool{
	"user":      true,
	"assistant": true,
	"tool":      true,
}

// Server wires the agent into net/http.
type Server struct {
	agent    *agent.Agent
	registry *tools.Registry
	port     int
}

// New creates a Server.
func New(a *agent.Agent, registry *tools.Registry, port int) *Server {
	return &Server{agent: a, registry: registry, port: port}
}

// Handler returns the routed HTTP handler, exported for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /api/tools", s.handleTools)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// Run serves until ctx is cancelled, then drains with a shutdown grace
// period.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP API listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// chatRequest mirrors the client payload.
type chatRequest struct {
	Messages []schema.Message `json:"messages"`
	UseTools bool             `json:"useTools"`
	Document string           `json:"document,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "messages is empty")
		return
	}
	if len(req.Messages) > maxMessageCount {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("too many messages (max %d)", maxMessageCount))
		return
	}
	for i, msg := range req.Messages {
		if !validRoles[msg.Role] {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("invalid role %q at message %d", msg.Role, i))
			return
		}
	}

	history := schema.NewMessages(req.Messages...)
	out, err := s.agent.Turn(r.Context(), history, req.UseTools, req.Document)
	if err != nil {
		// Provider failures are the one fatal path; tool faults never land here.
		slog.Error("chat turn failed", "err", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// toolInfo is one catalog entry in the /api/tools response.
type toolInfo struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  schema.ParameterSchema `json:"parameters"`
}

func (s *Server) handleTools(w http.ResponseWriter, _ *http.Request) {
	catalog := make([]toolInfo, 0)
	for _, t := range s.registry.All() {
		catalog = append(catalog, toolInfo{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"tools": catalog})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}
