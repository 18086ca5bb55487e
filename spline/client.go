package spline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// DefaultBaseURL is the public Spline REST endpoint.
const DefaultBaseURL = "https://api.spline.design"

// DefaultTimeout bounds every upstream call.
const DefaultTimeout = 30 * time.Second

// Config carries everything the client needs. It is read once by NewClient.
type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *log.Logger
}

// Client is a thin wrapper over the Spline REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *log.Logger
}

// NewClient creates a client from an explicit configuration.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		logger:     logger,
	}
}

// BaseURL returns the upstream root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HasCredentials reports whether a bearer key was configured.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// Request performs one call and returns the decoded JSON body.
//
// For GET the payload is sent as query parameters; every other method sends
// it as a JSON body. A non-2xx status or a transport failure is returned as
// *APIError. An empty body decodes to nil, a non-JSON body to its raw text.
func (c *Client) Request(ctx context.Context, method, path string, payload any) (any, error) {
	body, err := c.do(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		return string(body), nil
	}
	return result, nil
}

// Call is like Request but decodes the response into result.
func (c *Client) Call(ctx context.Context, method, path string, payload, result any) error {
	body, err := c.do(ctx, method, path, payload)
	if err != nil {
		return err
	}
	if result == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to decode response from %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	endpoint := c.baseURL + path

	var reqBody io.Reader
	if payload != nil {
		if method == http.MethodGet {
			query, err := encodeQuery(payload)
			if err != nil {
				return nil, &APIError{Message: err.Error()}
			}
			if query != "" {
				sep := "?"
				if strings.Contains(endpoint, "?") {
					sep = "&"
				}
				endpoint += sep + query
			}
		} else {
			data, err := json.Marshal(payload)
			if err != nil {
				return nil, &APIError{Message: fmt.Sprintf("failed to encode request: %v", err)}
			}
			reqBody = bytes.NewReader(data)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("Spline API error: %s %s: %v", method, path, err)
		return nil, &APIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body, resp.Status),
		}
		c.logger.Printf("Spline API error: %s %s: status %d: %s", method, path, apiErr.StatusCode, apiErr.Message)
		return nil, apiErr
	}

	return body, nil
}

// errorMessage pulls a human readable message out of an error body.
func errorMessage(body []byte, status string) string {
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err == nil {
		for _, key := range []string{"message", "error", "detail"} {
			switch v := decoded[key].(type) {
			case string:
				if v != "" {
					return v
				}
			case map[string]any:
				if msg, ok := v["message"].(string); ok && msg != "" {
					return msg
				}
			}
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return status
}

// encodeQuery flattens a GET payload into a query string. Nil values are
// dropped and slices become repeated keys.
func encodeQuery(payload any) (string, error) {
	switch p := payload.(type) {
	case url.Values:
		return p.Encode(), nil
	case map[string]string:
		values := url.Values{}
		for k, v := range p {
			values.Set(k, v)
		}
		return values.Encode(), nil
	}

	fields, err := cast.ToStringMapE(payload)
	if err != nil {
		// Fall back to a JSON round trip for structs.
		data, merr := json.Marshal(payload)
		if merr != nil {
			return "", fmt.Errorf("unsupported query payload %T", payload)
		}
		if err := json.Unmarshal(data, &fields); err != nil {
			return "", fmt.Errorf("unsupported query payload %T", payload)
		}
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := url.Values{}
	for _, k := range keys {
		switch v := fields[k].(type) {
		case nil:
		case []any:
			for _, item := range v {
				values.Add(k, cast.ToString(item))
			}
		case []string:
			for _, item := range v {
				values.Add(k, item)
			}
		default:
			values.Set(k, cast.ToString(v))
		}
	}
	return values.Encode(), nil
}

// Path joins escaped segments into an API path: Path("scenes", id) is
// "/scenes/<id>".
func Path(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}
