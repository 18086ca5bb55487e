package spline

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(url string) *Client {
	return NewClient(Config{
		BaseURL: url,
		APIKey:  "test-key",
		Logger:  log.New(io.Discard, "", 0),
	})
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{})

	if client.BaseURL() != DefaultBaseURL {
		t.Errorf("Expected base URL %s, got %s", DefaultBaseURL, client.BaseURL())
	}
	if client.httpClient.Timeout != DefaultTimeout {
		t.Errorf("Expected timeout %v, got %v", DefaultTimeout, client.httpClient.Timeout)
	}
	if client.HasCredentials() {
		t.Error("Expected no credentials")
	}
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://example.test/"})
	if client.BaseURL() != "http://example.test" {
		t.Errorf("Expected trailing slash to be trimmed, got %s", client.BaseURL())
	}
}

func TestRequest_SendsBearerAndJSONBody(t *testing.T) {
	var gotAuth, gotContentType, gotMethod, gotPath string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"obj-1"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.CreateObject(context.Background(), "scene-1", map[string]any{"type": "cube"})
	if err != nil {
		t.Fatalf("CreateObject failed: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Expected bearer header, got %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("Expected JSON content type, got %q", gotContentType)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("Expected POST, got %s", gotMethod)
	}
	if gotPath != "/scenes/scene-1/objects" {
		t.Errorf("Expected path /scenes/scene-1/objects, got %s", gotPath)
	}
	if gotBody["type"] != "cube" {
		t.Errorf("Expected body type cube, got %v", gotBody["type"])
	}

	obj, ok := result.(map[string]any)
	if !ok || obj["id"] != "obj-1" {
		t.Errorf("Expected decoded id obj-1, got %v", result)
	}
}

func TestRequest_GetEncodesQuery(t *testing.T) {
	var gotQuery map[string][]string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.ListScenes(context.Background(), ListOptions{Limit: 5, Offset: 10, ProjectID: "p1"})
	if err != nil {
		t.Fatalf("ListScenes failed: %v", err)
	}

	if got := gotQuery["limit"]; len(got) != 1 || got[0] != "5" {
		t.Errorf("Expected limit=5, got %v", got)
	}
	if got := gotQuery["offset"]; len(got) != 1 || got[0] != "10" {
		t.Errorf("Expected offset=10, got %v", got)
	}
	if got := gotQuery["projectId"]; len(got) != 1 || got[0] != "p1" {
		t.Errorf("Expected projectId=p1, got %v", got)
	}
	if len(gotBody) != 0 {
		t.Errorf("Expected empty body for GET, got %q", gotBody)
	}
}

func TestRequest_NonSuccessBecomesAPIError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{"message field", http.StatusNotFound, `{"message":"Scene not found"}`, "Scene not found"},
		{"error field", http.StatusBadRequest, `{"error":"bad input"}`, "bad input"},
		{"nested error", http.StatusConflict, `{"error":{"message":"already exists"}}`, "already exists"},
		{"plain text", http.StatusInternalServerError, "boom", "boom"},
		{"empty body", http.StatusBadGateway, "", "502 Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(server.URL)
			_, err := client.GetScene(context.Background(), "missing")

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Expected *APIError, got %T (%v)", err, err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, apiErr.StatusCode)
			}
			if apiErr.Message != tt.wantMessage {
				t.Errorf("Expected message %q, got %q", tt.wantMessage, apiErr.Message)
			}
		})
	}
}

func TestRequest_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := newTestClient(url)
	_, err := client.GetScene(context.Background(), "s1")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != 0 {
		t.Errorf("Expected status 0 for transport failure, got %d", apiErr.StatusCode)
	}
	if StatusCode(err) != 0 {
		t.Errorf("Expected StatusCode helper to return 0")
	}
}

func TestRequest_EmptyAndTextBodies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	result, err := client.DeleteObject(context.Background(), "s1", "o1")
	if err != nil {
		t.Fatalf("DeleteObject failed: %v", err)
	}
	if result != nil {
		t.Errorf("Expected nil result for empty body, got %v", result)
	}

	result, err = client.GetScene(context.Background(), "s1")
	if err != nil {
		t.Fatalf("GetScene failed: %v", err)
	}
	if result != "ok" {
		t.Errorf("Expected raw text result, got %v", result)
	}
}

func TestCall_DecodesIntoStruct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"s1","name":"Demo"}`))
	}))
	defer server.Close()

	var scene struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	client := newTestClient(server.URL)
	if err := client.Call(context.Background(), http.MethodGet, Path("scenes", "s1"), nil, &scene); err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if scene.Name != "Demo" {
		t.Errorf("Expected name Demo, got %s", scene.Name)
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(&APIError{StatusCode: 404, Message: "x"}) {
		t.Error("Expected 404 to be not found")
	}
	if IsNotFound(&APIError{StatusCode: 500}) {
		t.Error("Expected 500 not to be not found")
	}
	if IsNotFound(errors.New("plain")) {
		t.Error("Expected plain error not to be not found")
	}
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{StatusCode: 404, Message: "Scene not found"}
	if !strings.Contains(err.Error(), "Scene not found") || !strings.Contains(err.Error(), "404") {
		t.Errorf("Unexpected error text: %s", err.Error())
	}

	err = &APIError{Message: "dial tcp: refused"}
	if err.Error() != "dial tcp: refused" {
		t.Errorf("Unexpected error text: %s", err.Error())
	}
}

func TestPath_EscapesSegments(t *testing.T) {
	got := Path("scenes", "a b", "objects", "x/y")
	want := "/scenes/a%20b/objects/x%2Fy"
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}
