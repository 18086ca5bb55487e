package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/mcp-training/splinemcp/session"
)

// SessionHeader carries the session id on every request after the first.
const SessionHeader = "Mcp-Session-Id"

// maxBodyBytes bounds a single JSON-RPC message.
const maxBodyBytes = 4 << 20

const invalidSession = "Invalid or missing session ID"

// HTTPHandler serves the MCP protocol at /mcp with one session per client.
//
// POST without a session header starts a session and returns its id in the
// Mcp-Session-Id header. POST with a known id dispatches within it. GET opens
// a server-sent event stream of notifications for the session; DELETE ends
// it. An unknown or missing id on GET or DELETE gets a plain 400.
type HTTPHandler struct {
	server *server.MCPServer
	store  *session.Store
	logger *log.Logger
	router *mux.Router
}

// NewHTTPHandler wires s to the sessions in store.
func NewHTTPHandler(s *server.MCPServer, store *session.Store, logger *log.Logger) *HTTPHandler {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	h := &HTTPHandler{
		server: s,
		store:  store,
		logger: logger,
		router: mux.NewRouter(),
	}
	h.setupRoutes()
	return h
}

func (h *HTTPHandler) setupRoutes() {
	h.router.HandleFunc("/mcp", h.handlePost).Methods(http.MethodPost)
	h.router.HandleFunc("/mcp", h.handleStream).Methods(http.MethodGet)
	h.router.HandleFunc("/mcp", h.handleDelete).Methods(http.MethodDelete)
}

// ServeHTTP implements http.Handler
func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// Sessions exposes the backing store.
func (h *HTTPHandler) Sessions() *session.Store {
	return h.store
}

func (h *HTTPHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "Failed to read request", http.StatusBadRequest)
		return
	}
	if !json.Valid(body) {
		respondRPCError(w, http.StatusBadRequest, -32700, "Parse error")
		return
	}

	var sess *session.Session
	if id := r.Header.Get(SessionHeader); id != "" {
		sess, err = h.store.Get(id)
		if err != nil {
			respondRPCError(w, http.StatusBadRequest, -32000, "Bad Request: "+invalidSession)
			return
		}
	} else {
		sess, err = h.open(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	w.Header().Set(SessionHeader, sess.SessionID())

	ctx := h.server.WithContext(r.Context(), sess)
	response := h.server.HandleMessage(ctx, body)
	if response == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	responseData, err := json.Marshal(response)
	if err != nil {
		http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
		return
	}
	w.Write(responseData)
}

// open creates a session and registers it with the MCP server.
func (h *HTTPHandler) open(ctx context.Context) (*session.Session, error) {
	sess := h.store.Create()
	if err := h.server.RegisterSession(ctx, sess); err != nil {
		h.store.Remove(sess.SessionID())
		return nil, fmt.Errorf("register session: %w", err)
	}
	h.logger.Printf("MCP session %s opened (%d active)", sess.SessionID(), h.store.Count())
	return sess, nil
}

func (h *HTTPHandler) handleStream(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set(SessionHeader, sess.SessionID())
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-sess.Done():
			return
		case notification := <-sess.Notifications():
			data, err := json.Marshal(notification)
			if err != nil {
				h.logger.Printf("MCP session %s: encode notification: %v", sess.SessionID(), err)
				continue
			}
			fmt.Fprintf(w, "event: message\ndata: %s\n\n", data)
			flusher.Flush()
			sess.Touch()
		}
	}
}

func (h *HTTPHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.close(r.Context(), sess.SessionID())
	w.WriteHeader(http.StatusOK)
}

func (h *HTTPHandler) close(ctx context.Context, id string) {
	if err := h.store.Remove(id); err != nil && !errors.Is(err, session.ErrSessionNotFound) {
		h.logger.Printf("MCP session %s: %v", id, err)
	}
	h.server.UnregisterSession(ctx, id)
	h.logger.Printf("MCP session %s closed", id)
}

// lookup resolves the session header, answering 400 when it is missing or
// unknown.
func (h *HTTPHandler) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		respondPlain(w, http.StatusBadRequest, invalidSession)
		return nil, false
	}
	sess, err := h.store.Get(id)
	if err != nil {
		respondPlain(w, http.StatusBadRequest, invalidSession)
		return nil, false
	}
	return sess, true
}

// RunSweeper closes sessions idle longer than ttl, checking every interval,
// until ctx is done.
func (h *HTTPHandler) RunSweeper(ctx context.Context, ttl, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Sweep(ctx, ttl)
		}
	}
}

// Sweep closes every session idle longer than ttl and returns their ids.
func (h *HTTPHandler) Sweep(ctx context.Context, ttl time.Duration) []string {
	expired := h.store.CleanupExpired(ttl)
	for _, id := range expired {
		h.server.UnregisterSession(ctx, id)
	}
	if len(expired) > 0 {
		h.logger.Printf("Cleaned up %d expired MCP sessions", len(expired))
	}
	return expired
}

func respondPlain(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, message)
}

func respondRPCError(w http.ResponseWriter, status int, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"jsonrpc": "2.0",
		"error":   map[string]any{"code": code, "message": message},
		"id":      nil,
	})
}
