package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// chatRequest is the subset of the completion request body the tests inspect.
type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

func TestGenerateText(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("Unexpected auth header %q", r.Header.Get("Authorization"))
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  hello there \n"}}]}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "sk-test"})
	text, err := client.GenerateText(context.Background(), CompletionRequest{
		Prompt:      "say hi",
		Model:       "gpt-4o",
		MaxTokens:   32,
		Temperature: 0.2,
	})
	if err != nil {
		t.Fatalf("GenerateText failed: %v", err)
	}
	if text != "hello there" {
		t.Errorf("Expected trimmed text, got %q", text)
	}

	if got.Model != "gpt-4o" {
		t.Errorf("Expected model gpt-4o, got %s", got.Model)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "say hi" {
		t.Errorf("Unexpected messages: %+v", got.Messages)
	}
	if got.MaxTokens != 32 {
		t.Errorf("Expected max_tokens 32, got %d", got.MaxTokens)
	}
	if got.Temperature != 0.2 {
		t.Errorf("Expected temperature 0.2, got %v", got.Temperature)
	}
}

func TestGenerateText_BaseURLWithPath(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL + "/v1/", APIKey: "k"})
	if _, err := client.GenerateText(context.Background(), CompletionRequest{Prompt: "x"}); err != nil {
		t.Fatalf("GenerateText failed: %v", err)
	}
	if path != "/v1/chat/completions" {
		t.Errorf("Expected /v1/chat/completions, got %s", path)
	}
}

func TestGenerateText_MissingKey(t *testing.T) {
	client := NewClient(Config{})
	_, err := client.GenerateText(context.Background(), CompletionRequest{Prompt: "x"})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Expected ErrMissingAPIKey, got %v", err)
	}
}

func TestGenerateText_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key"}}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "bad"})
	_, err := client.GenerateText(context.Background(), CompletionRequest{Prompt: "x"})
	if err == nil || !strings.Contains(err.Error(), "Incorrect API key") {
		t.Errorf("Expected upstream message in error, got %v", err)
	}
}

func TestGenerateText_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "k"})
	if _, err := client.GenerateText(context.Background(), CompletionRequest{Prompt: "x"}); err == nil {
		t.Error("Expected error for empty choices")
	}
}

func TestGenerateText_NoRetry(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"overloaded"}}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, APIKey: "k"})
	_, err := client.GenerateText(context.Background(), CompletionRequest{Prompt: "x"})
	if err == nil || !strings.Contains(err.Error(), "status 500") {
		t.Errorf("Expected status 500 error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected a single request, got %d", calls)
	}
}
