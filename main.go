// Command splinemcp exposes the Spline.design API to MCP clients.
//
// It supports three modes:
//  1. "mcp" (default) – the full tool, resource and prompt catalog over stdio or HTTP
//  2. "minimal" – a single hello tool and test resource for checking client setup
//  3. "webhook" – the standalone webhook demo server with its web interface
//
// Configuration comes from a .env (or .toml) file and the environment. Flags
// select the mode, transport, port and optional ngrok tunneling.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/splinemcp/config"
	"github.com/wricardo/mcp-training/splinemcp/openai"
	"github.com/wricardo/mcp-training/splinemcp/resources"
	"github.com/wricardo/mcp-training/splinemcp/session"
	"github.com/wricardo/mcp-training/splinemcp/spline"
	"github.com/wricardo/mcp-training/splinemcp/tools"
	"github.com/wricardo/mcp-training/splinemcp/transport/mcp"
	"github.com/wricardo/mcp-training/splinemcp/transport/websocket"
	"github.com/wricardo/mcp-training/splinemcp/webhook"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
)

// Version information
const (
	Version = mcp.Version
	AppName = mcp.ServerName
)

const (
	modeMCP     = "mcp"
	modeMinimal = "minimal"
	modeWebhook = "webhook"

	transportStdio = "stdio"
	transportHTTP  = "http"
)

const (
	defaultSessionTTL = 24 * time.Hour
	minSessionTTL     = time.Second
)

func init() {
	// -v belongs to --verbose.
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}
}

// options is the parsed command line.
type options struct {
	Mode       string
	Transport  string
	Port       int
	PortSet    bool
	ConfigPath string
	ConfigSet  bool
	Verbose    bool
	Flavour    webhook.Flavour
	SessionTTL time.Duration
	Ngrok      config.Ngrok
}

// newCommand builds the CLI. run receives the parsed options.
func newCommand(run func(context.Context, options) error) *cli.Command {
	return &cli.Command{
		Name:    "splinemcp",
		Usage:   "Spline.design MCP server",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      "mode",
				Aliases:   []string{"m"},
				Value:     modeMCP,
				Usage:     "server mode: mcp, minimal or webhook",
				Validator: oneOf("mode", modeMCP, modeMinimal, modeWebhook),
			},
			&cli.StringFlag{
				Name:      "transport",
				Aliases:   []string{"t"},
				Value:     transportStdio,
				Usage:     "MCP transport: stdio or http",
				Validator: oneOf("transport", transportStdio, transportHTTP),
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   config.DefaultPort,
				Usage:   "HTTP port (webhook mode defaults to 3000 or 3001 by flavour)",
				Sources: cli.EnvVars("PORT"),
				Validator: func(port int) error {
					if port < 0 || port > 65535 {
						return fmt.Errorf("port %d out of range", port)
					}
					return nil
				},
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultPath,
				Usage:   "path to a .env or .toml configuration file",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable verbose logging",
				Sources: cli.EnvVars("SPLINE_MCP_VERBOSE"),
			},
			&cli.StringFlag{
				Name:  "webhook-flavour",
				Value: string(webhook.Enhanced),
				Usage: "webhook server flavour: simple or enhanced",
				Validator: func(s string) error {
					_, err := webhook.ParseFlavour(s)
					return err
				},
			},
			&cli.DurationFlag{
				Name:  "session-ttl",
				Value: defaultSessionTTL,
				Usage: "close HTTP MCP sessions idle longer than this",
				Validator: func(ttl time.Duration) error {
					if ttl < minSessionTTL {
						return fmt.Errorf("session TTL %v is shorter than %v", ttl, minSessionTTL)
					}
					return nil
				},
			},
			&cli.BoolFlag{
				Name:  "ngrok",
				Usage: "expose the HTTP server through an ngrok tunnel",
			},
			&cli.StringFlag{
				Name:  "ngrok-auth",
				Usage: "ngrok auth token (or NGROK_AUTHTOKEN)",
			},
			&cli.StringFlag{
				Name:  "ngrok-domain",
				Usage: "custom ngrok domain (optional)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			flavour, _ := webhook.ParseFlavour(cmd.String("webhook-flavour"))
			return run(ctx, options{
				Mode:       cmd.String("mode"),
				Transport:  cmd.String("transport"),
				Port:       cmd.Int("port"),
				PortSet:    cmd.IsSet("port"),
				ConfigPath: cmd.String("config"),
				ConfigSet:  cmd.IsSet("config"),
				Verbose:    cmd.Bool("verbose"),
				Flavour:    flavour,
				SessionTTL: cmd.Duration("session-ttl"),
				Ngrok: config.Ngrok{
					Enabled:   cmd.Bool("ngrok"),
					AuthToken: cmd.String("ngrok-auth"),
					Domain:    cmd.String("ngrok-domain"),
				},
			})
		},
	}
}

func oneOf(flag string, allowed ...string) func(string) error {
	return func(v string) error {
		for _, a := range allowed {
			if v == a {
				return nil
			}
		}
		return fmt.Errorf("unknown %s %q (want %s)", flag, v, strings.Join(allowed, ", "))
	}
}

func main() {
	if err := newCommand(start).Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// start loads configuration and runs the selected mode until it stops.
func start(ctx context.Context, opts options) error {
	if opts.Verbose {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}

	if opts.ConfigSet {
		if err := config.Check(opts.ConfigPath); errors.Is(err, config.ErrConfigNotFound) {
			log.Printf("Warning: %v; falling back to ./.env and the environment", err)
		}
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to load configuration: %v", err), 1)
	}
	if cfg.Source != "" {
		log.Printf("Loaded configuration from %s", cfg.Source)
	}

	tunnel := mergeNgrok(opts.Ngrok, cfg.Ngrok)

	switch opts.Mode {
	case modeMCP:
		cfg.WarnMissing(log.Default())
		port := cfg.Port
		if opts.PortSet {
			port = opts.Port
		}
		return serveMCP(ctx, newMCPServer(cfg), opts, port, tunnel)

	case modeMinimal:
		port := cfg.Port
		if opts.PortSet {
			port = opts.Port
		}
		return serveMCP(ctx, mcp.NewMinimalServer(), opts, port, tunnel)

	case modeWebhook:
		port := opts.Flavour.DefaultPort()
		if opts.PortSet {
			port = opts.Port
		}
		return serveWebhook(ctx, opts.Flavour, port, tunnel)
	}
	return cli.Exit(fmt.Sprintf("Unknown mode: %s", opts.Mode), 1)
}

// mergeNgrok lets flags override the configured tunnel settings.
func mergeNgrok(flags, cfg config.Ngrok) config.Ngrok {
	merged := cfg
	if flags.Enabled {
		merged.Enabled = true
	}
	if flags.AuthToken != "" {
		merged.AuthToken = flags.AuthToken
	}
	if flags.Domain != "" {
		merged.Domain = flags.Domain
	}
	return merged
}

// newMCPServer wires the Spline and OpenAI clients into the full catalog.
func newMCPServer(cfg *config.Config) *server.MCPServer {
	splineClient := spline.NewClient(cfg.SplineConfig())
	registry := tools.New(tools.Deps{
		Spline: splineClient,
		OpenAI: openai.NewClient(cfg.OpenAIConfig()),
		HTTP:   &http.Client{Timeout: cfg.Timeout.Duration()},
		Logger: log.Default(),
	})
	return mcp.NewServer(registry, resources.NewCatalog(splineClient))
}

func serveMCP(ctx context.Context, s *server.MCPServer, opts options, port int, tunnel config.Ngrok) error {
	switch opts.Transport {
	case transportStdio:
		log.Printf("Starting %s v%s (mode: %s, transport: stdio)", AppName, Version, opts.Mode)
		if err := mcp.ServeStdio(s, log.New(os.Stderr, "[mcp] ", log.LstdFlags)); err != nil {
			return cli.Exit(fmt.Sprintf("MCP stdio server error: %v", err), 1)
		}
		return nil

	case transportHTTP:
		log.Printf("Starting %s v%s (mode: %s, transport: http)", AppName, Version, opts.Mode)

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		handler := mcp.NewHTTPHandler(s, session.NewStore(), log.Default())
		go handler.RunSweeper(ctx, opts.SessionTTL, sweepInterval(opts.SessionTTL))

		return runHTTPServer(ctx, httpOptions{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: handler,
			// GET /mcp streams stay open, so writes must not time out.
			WriteTimeout: 0,
			Tunnel:       tunnel,
			Banner: func(w io.Writer, baseURL string) {
				fmt.Fprintf(w, "%s MCP endpoint: %s/mcp\n", color.GreenString("✓"), baseURL)
			},
			Out: os.Stderr,
		})
	}
	return cli.Exit(fmt.Sprintf("Unknown transport: %s", opts.Transport), 1)
}

// sweepInterval checks hourly, or twice per ttl when the ttl is short. The
// result is always positive.
func sweepInterval(ttl time.Duration) time.Duration {
	half := ttl / 2
	switch {
	case half <= 0:
		return time.Hour
	case half < time.Hour:
		return half
	}
	return time.Hour
}

func serveWebhook(ctx context.Context, flavour webhook.Flavour, port int, tunnel config.Ngrok) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hub := websocket.NewHub(log.Default())
	go hub.Run(ctx)

	srv := webhook.NewServer(webhook.Options{
		Flavour: flavour,
		Hub:     hub,
		Logger:  log.Default(),
	})

	return runHTTPServer(ctx, httpOptions{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      srv,
		WriteTimeout: 15 * time.Second,
		Tunnel:       tunnel,
		Banner:       srv.Banner,
		Out:          os.Stdout,
	})
}

type httpOptions struct {
	Addr         string
	Handler      http.Handler
	WriteTimeout time.Duration
	Tunnel       config.Ngrok
	// Banner prints the endpoints once the listener is up.
	Banner func(w io.Writer, baseURL string)
	Out    io.Writer
}

// runHTTPServer serves until ctx is done or a shutdown signal arrives. If the
// tunnel is enabled, it also provisions a public ngrok endpoint.
func runHTTPServer(ctx context.Context, opts httpOptions) error {
	listener, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to listen on %s: %v", opts.Addr, err), 1)
	}

	httpServer := &http.Server{
		Handler:      opts.Handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: opts.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Handle shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	var wg sync.WaitGroup
	serveErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		if opts.Banner != nil && opts.Out != nil {
			opts.Banner(opts.Out, localURL(listener.Addr()))
		}
		if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	if opts.Tunnel.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runTunnel(ctx, opts)
		}()
	}

	var result error
	select {
	case sig := <-stop:
		log.Printf("Received signal: %v. Shutting down...", sig)
	case <-ctx.Done():
	case err := <-serveErr:
		result = cli.Exit(fmt.Sprintf("HTTP server failed: %v", err), 1)
	}
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")
	return result
}

func runTunnel(ctx context.Context, opts httpOptions) {
	if opts.Tunnel.AuthToken == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if opts.Tunnel.Domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(opts.Tunnel.Domain))
		log.Printf("Using custom ngrok domain: %s", opts.Tunnel.Domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(opts.Tunnel.AuthToken))
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}

	tunnelServer := &http.Server{Handler: opts.Handler}
	go func() {
		<-ctx.Done()
		tunnelServer.Close()
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	log.Printf("Ngrok tunnel established: %s", tun.URL())
	if opts.Banner != nil && opts.Out != nil {
		opts.Banner(opts.Out, tun.URL())
	}

	if err := tunnelServer.Serve(tun); err != nil && err != http.ErrServerClosed {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// localURL turns a listener address into a URL a local browser can open.
func localURL(addr net.Addr) string {
	host := "localhost"
	port := addr.String()
	if tcp, ok := addr.(*net.TCPAddr); ok {
		port = fmt.Sprint(tcp.Port)
		if !tcp.IP.IsUnspecified() && !tcp.IP.IsLoopback() {
			host = tcp.IP.String()
		}
	}
	return "http://" + net.JoinHostPort(host, port)
}
