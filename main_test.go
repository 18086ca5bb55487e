package main

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wricardo/mcp-training/splinemcp/config"
	"github.com/wricardo/mcp-training/splinemcp/webhook"
)

// unsetEnv clears key for the test and restores it afterwards.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// parse runs the CLI with args and returns the options it would start with.
func parse(t *testing.T, args ...string) (options, error) {
	t.Helper()
	var got options
	cmd := newCommand(func(_ context.Context, opts options) error {
		got = opts
		return nil
	})
	cmd.Writer = io.Discard
	cmd.ErrWriter = io.Discard

	err := cmd.Run(context.Background(), append([]string{"splinemcp"}, args...))
	return got, err
}

func TestConstants(t *testing.T) {
	if Version != "1.0.0" {
		t.Errorf("Expected version 1.0.0, got %s", Version)
	}
	if AppName != "Spline.design MCP Server" {
		t.Errorf("Expected app name Spline.design MCP Server, got %s", AppName)
	}
}

func TestFlagDefaults(t *testing.T) {
	unsetEnv(t, "PORT", "SPLINE_MCP_VERBOSE")

	opts, err := parse(t)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if opts.Mode != modeMCP {
		t.Errorf("Expected mode mcp, got %s", opts.Mode)
	}
	if opts.Transport != transportStdio {
		t.Errorf("Expected transport stdio, got %s", opts.Transport)
	}
	if opts.Port != 3000 || opts.PortSet {
		t.Errorf("Expected unset port 3000, got %d (set=%v)", opts.Port, opts.PortSet)
	}
	if opts.ConfigPath != "config/.env" || opts.ConfigSet {
		t.Errorf("Expected default config path, got %s (set=%v)", opts.ConfigPath, opts.ConfigSet)
	}
	if opts.Verbose {
		t.Error("Expected verbose off")
	}
	if opts.Flavour != webhook.Enhanced {
		t.Errorf("Expected enhanced flavour, got %s", opts.Flavour)
	}
	if opts.SessionTTL != 24*time.Hour {
		t.Errorf("Expected 24h session TTL, got %v", opts.SessionTTL)
	}
}

func TestFlagAliases(t *testing.T) {
	unsetEnv(t, "PORT", "SPLINE_MCP_VERBOSE")

	opts, err := parse(t, "-m", "webhook", "-t", "http", "-p", "4000", "-c", "custom.env", "-v",
		"--webhook-flavour", "simple", "--ngrok", "--ngrok-domain", "demo.ngrok.app")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if opts.Mode != modeWebhook || opts.Transport != transportHTTP {
		t.Errorf("Expected webhook/http, got %s/%s", opts.Mode, opts.Transport)
	}
	if opts.Port != 4000 || !opts.PortSet {
		t.Errorf("Expected port 4000 set, got %d (set=%v)", opts.Port, opts.PortSet)
	}
	if opts.ConfigPath != "custom.env" || !opts.ConfigSet {
		t.Errorf("Expected custom.env, got %s", opts.ConfigPath)
	}
	if !opts.Verbose {
		t.Error("Expected verbose on")
	}
	if opts.Flavour != webhook.Simple {
		t.Errorf("Expected simple flavour, got %s", opts.Flavour)
	}
	if !opts.Ngrok.Enabled || opts.Ngrok.Domain != "demo.ngrok.app" {
		t.Errorf("Expected ngrok enabled with domain, got %+v", opts.Ngrok)
	}
}

func TestPortFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "5050")

	opts, err := parse(t)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if opts.Port != 5050 {
		t.Errorf("Expected port 5050 from PORT, got %d", opts.Port)
	}
}

func TestInvalidFlags(t *testing.T) {
	unsetEnv(t, "PORT")

	tests := []struct {
		name string
		args []string
	}{
		{"unknown mode", []string{"--mode", "desktop"}},
		{"unknown transport", []string{"--transport", "sse"}},
		{"port out of range", []string{"--port", "70000"}},
		{"unknown flavour", []string{"--webhook-flavour", "fancy"}},
		{"session ttl too short", []string{"--session-ttl", "1ns"}},
		{"zero session ttl", []string{"--session-ttl", "0s"}},
		{"negative session ttl", []string{"--session-ttl=-5m"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parse(t, tt.args...); err == nil {
				t.Errorf("Expected error for %v", tt.args)
			}
		})
	}
}

func TestMergeNgrok(t *testing.T) {
	cfg := config.Ngrok{Enabled: false, AuthToken: "from-config", Domain: "cfg.ngrok.app"}

	got := mergeNgrok(config.Ngrok{Enabled: true, Domain: "flag.ngrok.app"}, cfg)
	if !got.Enabled {
		t.Error("Expected flag to enable the tunnel")
	}
	if got.AuthToken != "from-config" {
		t.Errorf("Expected configured token, got %s", got.AuthToken)
	}
	if got.Domain != "flag.ngrok.app" {
		t.Errorf("Expected flag domain, got %s", got.Domain)
	}

	got = mergeNgrok(config.Ngrok{}, config.Ngrok{Enabled: true})
	if !got.Enabled {
		t.Error("Expected configured tunnel to stay enabled")
	}
}

func TestSweepInterval(t *testing.T) {
	tests := []struct {
		ttl  time.Duration
		want time.Duration
	}{
		{24 * time.Hour, time.Hour},
		{30 * time.Minute, 15 * time.Minute},
		{0, time.Hour},
		{time.Nanosecond, time.Hour},
		{-time.Minute, time.Hour},
		{time.Second, 500 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := sweepInterval(tt.ttl); got != tt.want {
			t.Errorf("sweepInterval(%v) = %v, want %v", tt.ttl, got, tt.want)
		}
	}
}

func TestSessionTTLMinimum(t *testing.T) {
	opts, err := parse(t, "--session-ttl", "1s")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if opts.SessionTTL != time.Second {
		t.Errorf("Expected 1s session TTL, got %v", opts.SessionTTL)
	}
}

func TestLocalURL(t *testing.T) {
	tests := []struct {
		addr net.Addr
		want string
	}{
		{&net.TCPAddr{IP: net.IPv4zero, Port: 3000}, "http://localhost:3000"},
		{&net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 3001}, "http://localhost:3001"},
		{&net.TCPAddr{IP: net.IPv4(10, 0, 0, 5), Port: 8080}, "http://10.0.0.5:8080"},
	}
	for _, tt := range tests {
		if got := localURL(tt.addr); got != tt.want {
			t.Errorf("localURL(%v) = %s, want %s", tt.addr, got, tt.want)
		}
	}
}

func TestNewMCPServer(t *testing.T) {
	cfg := config.Default()
	cfg.APIKey = "test-key"

	s := newMCPServer(cfg)
	if s == nil {
		t.Fatal("Expected MCP server")
	}

	resp := s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Failed to marshal response: %v", err)
	}
	for _, name := range []string{"getScene", "createObject", "exportSceneCode", "createParticleSystem"} {
		if !strings.Contains(string(data), `"name":"`+name+`"`) {
			t.Errorf("Expected tool %s in tools/list", name)
		}
	}
}

func TestRunHTTPServer_ServesUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := webhook.NewServer(webhook.Options{Flavour: webhook.Simple})
	baseURL := make(chan string, 1)

	done := make(chan error, 1)
	go func() {
		done <- runHTTPServer(ctx, httpOptions{
			Addr:         "127.0.0.1:0",
			Handler:      srv,
			WriteTimeout: 15 * time.Second,
			Banner: func(w io.Writer, url string) {
				baseURL <- url
			},
			Out: io.Discard,
		})
	}()

	var url string
	select {
	case url = <-baseURL:
	case <-time.After(2 * time.Second):
		t.Fatal("Server did not start")
	}

	resp, err := http.Get(url + "/webhooks")
	if err != nil {
		t.Fatalf("GET /webhooks failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean shutdown, got %v", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("Server did not stop")
	}
}

func TestRunHTTPServer_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}
	defer ln.Close()

	err = runHTTPServer(context.Background(), httpOptions{Addr: ln.Addr().String(), Handler: http.NotFoundHandler()})
	if err == nil {
		t.Error("Expected error when the address is in use")
	}
}

func TestStart_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("port = \"not a number"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	err := start(context.Background(), options{Mode: modeMCP, Transport: transportHTTP, ConfigPath: path, ConfigSet: true})
	if err == nil {
		t.Fatal("Expected configuration error")
	}
	if !strings.Contains(err.Error(), "Failed to load configuration") {
		t.Errorf("Expected configuration error, got %v", err)
	}
}
