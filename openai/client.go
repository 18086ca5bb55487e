// Package openai wraps the OpenAI SDK for the generateTextWithOpenAI tool.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-3.5-turbo"
	systemPrompt   = "You are a helpful assistant."
)

// ErrMissingAPIKey is returned when no key was configured.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not set")

// Config for NewClient.
type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client generates text through the chat completions API.
type Client struct {
	apiKey string
	sdk    sdk.Client
}

// NewClient creates a client from an explicit configuration. Settings
// given here take precedence over the SDK's OPENAI_* environment defaults.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		apiKey: cfg.APIKey,
		sdk: sdk.NewClient(
			option.WithBaseURL(baseURL+"/"),
			option.WithAPIKey(cfg.APIKey),
			option.WithHTTPClient(httpClient),
			option.WithMaxRetries(0),
		),
	}
}

// APIKey returns the configured key, possibly empty.
func (c *Client) APIKey() string {
	return c.apiKey
}

// CompletionRequest describes one single-turn generation.
type CompletionRequest struct {
	Prompt      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// GenerateText sends the prompt with a fixed system message and returns the
// trimmed content of the first choice.
func (c *Client) GenerateText(ctx context.Context, req CompletionRequest) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	model := req.Model
	if model == "" {
		model = DefaultModel
	}

	params := sdk.ChatCompletionNewParams{
		Model: sdk.ChatModel(model),
		Messages: []sdk.ChatCompletionMessageParamUnion{
			sdk.SystemMessage(systemPrompt),
			sdk.UserMessage(req.Prompt),
		},
		Temperature: sdk.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = sdk.Int(int64(req.MaxTokens))
	}

	completion, err := c.sdk.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *sdk.Error
		if errors.As(err, &apiErr) {
			if apiErr.Message != "" {
				return "", fmt.Errorf("openai error (status %d): %s", apiErr.StatusCode, apiErr.Message)
			}
			return "", fmt.Errorf("openai error (status %d)", apiErr.StatusCode)
		}
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("openai response contained no choices")
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
