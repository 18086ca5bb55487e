package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/mcp-training/splinemcp/resources"
	"github.com/wricardo/mcp-training/splinemcp/session"
	"github.com/wricardo/mcp-training/splinemcp/spline"
	"github.com/wricardo/mcp-training/splinemcp/tools"
)

const initializeBody = `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`

func newTestServer(t *testing.T) *server.MCPServer {
	t.Helper()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Scene not found"}`))
	}))
	t.Cleanup(upstream.Close)

	logger := log.New(io.Discard, "", 0)
	client := spline.NewClient(spline.Config{BaseURL: upstream.URL, APIKey: "k", Logger: logger})
	reg := tools.New(tools.Deps{Spline: client, Logger: logger})
	return NewServer(reg, resources.NewCatalog(client))
}

func newTestHandler(t *testing.T) (*HTTPHandler, *httptest.Server) {
	t.Helper()
	h := NewHTTPHandler(newTestServer(t), session.NewStore(), nil)
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return h, ts
}

func post(t *testing.T, url, sessionID, body string) *http.Response {
	t.Helper()
	req, _ := http.NewRequest(http.MethodPost, url+"/mcp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(SessionHeader, sessionID)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /mcp: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func send(t *testing.T, method, url, sessionID string) *http.Response {
	t.Helper()
	req, _ := http.NewRequest(method, url+"/mcp", nil)
	if sessionID != "" {
		req.Header.Set(SessionHeader, sessionID)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s /mcp: %v", method, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestPost_WithoutSessionCreatesOne(t *testing.T) {
	h, ts := newTestHandler(t)

	first := post(t, ts.URL, "", initializeBody)
	if first.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", first.StatusCode)
	}
	id := first.Header.Get(SessionHeader)
	if id == "" {
		t.Fatal("Expected a session id header")
	}

	var rpc struct {
		Result struct {
			ServerInfo struct {
				Name string `json:"name"`
			} `json:"serverInfo"`
		} `json:"result"`
	}
	json.NewDecoder(first.Body).Decode(&rpc)
	if rpc.Result.ServerInfo.Name != ServerName {
		t.Errorf("Expected server name %q, got %q", ServerName, rpc.Result.ServerInfo.Name)
	}

	second := post(t, ts.URL, "", initializeBody)
	if other := second.Header.Get(SessionHeader); other == "" || other == id {
		t.Errorf("Expected a fresh session id, got %q (first %q)", other, id)
	}
	if h.Sessions().Count() != 2 {
		t.Errorf("Expected 2 sessions, got %d", h.Sessions().Count())
	}
}

func TestPost_KnownSessionDispatches(t *testing.T) {
	_, ts := newTestHandler(t)
	id := post(t, ts.URL, "", initializeBody).Header.Get(SessionHeader)

	resp := post(t, ts.URL, id, `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"getScene","arguments":{"sceneId":"nope"}}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get(SessionHeader); got != id {
		t.Errorf("Expected session header %q, got %q", id, got)
	}

	var rpc struct {
		Result struct {
			IsError bool `json:"isError"`
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"result"`
	}
	json.NewDecoder(resp.Body).Decode(&rpc)
	if !rpc.Result.IsError {
		t.Error("Expected isError result for upstream 404")
	}
	if len(rpc.Result.Content) != 1 || rpc.Result.Content[0].Text != "Error retrieving scene: Scene not found (status 404)" {
		t.Errorf("Unexpected content: %+v", rpc.Result.Content)
	}
}

func TestPost_ValidationFailureIsRPCError(t *testing.T) {
	_, ts := newTestHandler(t)
	id := post(t, ts.URL, "", initializeBody).Header.Get(SessionHeader)

	resp := post(t, ts.URL, id, `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"getScene","arguments":{}}}`)
	var rpc struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	json.NewDecoder(resp.Body).Decode(&rpc)
	if rpc.Error == nil || !strings.Contains(rpc.Error.Message, `missing properties: ["sceneId"]`) {
		t.Errorf("Expected JSON-RPC validation error, got %+v", rpc.Error)
	}
}

func TestPost_Notification(t *testing.T) {
	_, ts := newTestHandler(t)
	id := post(t, ts.URL, "", initializeBody).Header.Get(SessionHeader)

	resp := post(t, ts.URL, id, `{"jsonrpc":"2.0","method":"notifications/initialized"}`)
	if resp.StatusCode != http.StatusAccepted {
		t.Errorf("Expected status 202, got %d", resp.StatusCode)
	}
}

func TestPost_UnknownSession(t *testing.T) {
	_, ts := newTestHandler(t)

	resp := post(t, ts.URL, "does-not-exist", initializeBody)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
}

func TestPost_MalformedBody(t *testing.T) {
	h, ts := newTestHandler(t)

	resp := post(t, ts.URL, "", `{not json`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
	if h.Sessions().Count() != 0 {
		t.Errorf("Expected no session for a malformed body, got %d", h.Sessions().Count())
	}
}

func TestGetAndDelete_InvalidSession(t *testing.T) {
	_, ts := newTestHandler(t)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		for _, id := range []string{"", "random-unknown-id"} {
			resp := send(t, method, ts.URL, id)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("%s with id %q: expected status 400, got %d", method, id, resp.StatusCode)
			}
			body, _ := io.ReadAll(resp.Body)
			if string(body) != "Invalid or missing session ID" {
				t.Errorf("%s with id %q: unexpected body %q", method, id, body)
			}
		}
	}
}

func TestGet_StreamsNotifications(t *testing.T) {
	h, ts := newTestHandler(t)
	id := post(t, ts.URL, "", initializeBody).Header.Get(SessionHeader)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/mcp", nil)
	req.Header.Set(SessionHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /mcp: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected text/event-stream, got %q", ct)
	}

	if err := h.server.SendNotificationToSpecificClient(id, "notifications/message", map[string]any{"hello": "world"}); err != nil {
		t.Fatalf("SendNotificationToSpecificClient: %v", err)
	}

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			t.Fatalf("Reading stream: %v", err)
		}
		if strings.HasPrefix(line, "data: ") {
			if !strings.Contains(line, `"hello":"world"`) {
				t.Errorf("Unexpected event data %q", line)
			}
			break
		}
	}
}

func TestDelete_ClosesSession(t *testing.T) {
	h, ts := newTestHandler(t)
	id := post(t, ts.URL, "", initializeBody).Header.Get(SessionHeader)

	if resp := send(t, http.MethodDelete, ts.URL, id); resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	if h.Sessions().Count() != 0 {
		t.Errorf("Expected no sessions, got %d", h.Sessions().Count())
	}

	if resp := send(t, http.MethodGet, ts.URL, id); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected closed session to be rejected, got %d", resp.StatusCode)
	}
	if resp := post(t, ts.URL, id, initializeBody); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected closed session id to stay invalid, got %d", resp.StatusCode)
	}
}

func TestSweep(t *testing.T) {
	h, ts := newTestHandler(t)
	id := post(t, ts.URL, "", initializeBody).Header.Get(SessionHeader)

	if expired := h.Sweep(context.Background(), time.Hour); len(expired) != 0 {
		t.Errorf("Expected nothing to expire, got %v", expired)
	}

	time.Sleep(5 * time.Millisecond)
	expired := h.Sweep(context.Background(), time.Millisecond)
	if len(expired) != 1 || expired[0] != id {
		t.Errorf("Expected %s to expire, got %v", id, expired)
	}
	if err := h.server.SendNotificationToSpecificClient(id, "x", nil); err != server.ErrSessionNotFound {
		t.Errorf("Expected session to be unregistered, got %v", err)
	}
}

func TestNewMinimalServer(t *testing.T) {
	s := NewMinimalServer()
	ctx := context.Background()

	msg := s.HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"hello","arguments":{"name":"Ada"}}}`))
	data, _ := json.Marshal(msg)
	if !strings.Contains(string(data), "Hello, Ada!") {
		t.Errorf("Unexpected hello result: %s", data)
	}

	msg = s.HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":2,"method":"resources/read","params":{"uri":"spline://test"}}`))
	data, _ = json.Marshal(msg)
	if !strings.Contains(string(data), "This is a test resource.") {
		t.Errorf("Unexpected resource result: %s", data)
	}
}

func TestNewServer_Catalog(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	msg := s.HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":1,"method":"resources/read","params":{"uri":"spline://scene/s1/objects"}}`))
	data, _ := json.Marshal(msg)
	if !strings.Contains(string(data), "Error retrieving objects: Scene not found (status 404)") {
		t.Errorf("Expected rendered upstream failure, got %s", data)
	}

	msg = s.HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":2,"method":"prompts/get","params":{"name":"create-cube","arguments":{"sceneId":"s1"}}}`))
	data, _ = json.Marshal(msg)
	if !strings.Contains(string(data), "Create a cube in scene s1") {
		t.Errorf("Unexpected prompt result: %s", data)
	}
}
