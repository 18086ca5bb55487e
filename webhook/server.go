package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gorilla/mux"
	"github.com/wricardo/mcp-training/splinemcp/transport/websocket"
)

// Flavour selects which of the two demo servers to run.
type Flavour string

const (
	// Simple only records and logs payloads.
	Simple Flavour = "simple"
	// Enhanced can forward payloads to a Spline webhook URL.
	Enhanced Flavour = "enhanced"
)

const maxBodyBytes = 1 << 20

// ParseFlavour accepts "simple" or "enhanced".
func ParseFlavour(s string) (Flavour, error) {
	switch f := Flavour(strings.ToLower(s)); f {
	case Simple, Enhanced:
		return f, nil
	}
	return "", fmt.Errorf("unknown webhook flavour %q (want simple or enhanced)", s)
}

// DefaultPort is the port each flavour listens on when none is given.
func (f Flavour) DefaultPort() int {
	if f == Enhanced {
		return 3001
	}
	return 3000
}

func (f Flavour) Title() string {
	if f == Enhanced {
		return "Enhanced Spline Webhook Server"
	}
	return "Spline Webhook Server"
}

// Options configures a Server. Zero values pick sensible defaults.
type Options struct {
	Flavour Flavour
	Store   *Store

	// Hub, when set, serves /ws and receives an event per delivery.
	Hub *websocket.Hub

	// HTTPClient forwards payloads in the enhanced flavour.
	HTTPClient *http.Client
	Logger     *log.Logger
}

// Server is the webhook demo HTTP server.
type Server struct {
	flavour Flavour
	store   *Store
	hub     *websocket.Hub
	client  *http.Client
	logger  *log.Logger
	router  *mux.Router
}

// NewServer creates a webhook server
func NewServer(opts Options) *Server {
	if opts.Flavour == "" {
		opts.Flavour = Enhanced
	}
	if opts.Store == nil {
		opts.Store = NewStore()
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}

	s := &Server{
		flavour: opts.Flavour,
		store:   opts.Store,
		hub:     opts.Hub,
		client:  opts.HTTPClient,
		logger:  opts.Logger,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/create-webhook", s.handleCreate).Methods("POST")
	s.router.HandleFunc("/webhooks", s.handleList).Methods("GET")
	s.router.HandleFunc("/webhook/{id}", s.handleReceive).Methods("POST")

	if s.hub != nil {
		s.router.HandleFunc("/ws", s.handleWebSocket).Methods("GET")
	}

	s.router.HandleFunc("/", s.handleIndex).Methods("GET")
	s.router.HandleFunc("/index.html", s.handleIndex).Methods("GET")

	s.router.NotFoundHandler = http.HandlerFunc(notFound)
	s.router.MethodNotAllowedHandler = http.HandlerFunc(notFound)
}

// ServeHTTP implements http.Handler. Every response carries CORS headers and
// preflight requests are answered before routing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.router.ServeHTTP(w, r)
}

func (s *Server) Flavour() Flavour { return s.flavour }

// Banner prints the startup summary for a server reachable at baseURL.
func (s *Server) Banner(w io.Writer, baseURL string) {
	rule := strings.Repeat("=", 50)
	bold := color.New(color.Bold)

	fmt.Fprintln(w, rule)
	bold.Fprintln(w, s.flavour.Title())
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Server running on %s\n", color.CyanString(baseURL))
	fmt.Fprintf(w, "Create a webhook: POST to %s/create-webhook\n", baseURL)
	fmt.Fprintf(w, "List webhooks: GET %s/webhooks\n", baseURL)
	fmt.Fprintf(w, "Send data to a webhook: POST to %s/webhook/:id\n", baseURL)
	if s.hub != nil {
		fmt.Fprintf(w, "Watch deliveries: %s/ws?webhook=:id\n", strings.Replace(baseURL, "http", "ws", 1))
	}
	fmt.Fprintf(w, "Web interface available at %s/\n", baseURL)
	fmt.Fprintln(w, rule)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Success: false, Error: message})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusNotFound)
	io.WriteString(w, "Not Found")
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type createRequest struct {
	Name             string `json:"name"`
	Variables        []any  `json:"variables"`
	SplineWebhookURL string `json:"splineWebhookUrl"`
}

type createResponse struct {
	Success    bool     `json:"success"`
	Webhook    *Webhook `json:"webhook"`
	WebhookURL string   `json:"webhookUrl"`
}

type listedWebhook struct {
	*Webhook
	FullURL string `json:"fullUrl"`
}

type listResponse struct {
	Success  bool            `json:"success"`
	Webhooks []listedWebhook `json:"webhooks"`
}

type receiveResponse struct {
	Success        bool    `json:"success"`
	Message        string  `json:"message"`
	Webhook        string  `json:"webhook"`
	ReceivedData   any     `json:"receivedData"`
	SplineResponse *string `json:"splineResponse"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	forward := ""
	if s.flavour == Enhanced {
		forward = req.SplineWebhookURL
	}
	wh := s.store.Create(req.Name, req.Variables, forward)
	s.logger.Printf("%s %s (%s)", color.GreenString("Created webhook"), wh.Name, wh.ID)

	if s.hub != nil {
		s.hub.Publish(wh.ID, "webhook_created", wh)
	}

	respondJSON(w, http.StatusCreated, createResponse{
		Success:    true,
		Webhook:    wh,
		WebhookURL: serverURL(r) + wh.URL,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	base := serverURL(r)
	webhooks := s.store.List()

	listed := make([]listedWebhook, len(webhooks))
	for i, wh := range webhooks {
		listed[i] = listedWebhook{Webhook: wh, FullURL: base + wh.URL}
	}
	respondJSON(w, http.StatusOK, listResponse{Success: true, Webhooks: listed})
}

func (s *Server) handleReceive(w http.ResponseWriter, r *http.Request) {
	wh, err := s.store.Get(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, "Webhook not found")
		return
	}

	var data any
	if err := decodeBody(w, r, &data); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	pretty, _ := json.MarshalIndent(data, "", "  ")
	s.logger.Printf("%s %s (%s):\n%s", color.CyanString("Webhook"), wh.Name, wh.ID, pretty)

	var reply *string
	if s.flavour == Enhanced && wh.SplineWebhookURL != nil {
		text := s.forward(r, *wh.SplineWebhookURL, data)
		reply = &text
	}

	if s.hub != nil {
		s.hub.Publish(wh.ID, "webhook_received", data)
	}

	respondJSON(w, http.StatusOK, receiveResponse{
		Success:        true,
		Message:        "Data received successfully",
		Webhook:        wh.Name,
		ReceivedData:   data,
		SplineResponse: reply,
	})
}

// forward posts data to target and returns the response text, or
// "Error: <msg>" when the request could not be made.
func (s *Server) forward(r *http.Request, target string, data any) string {
	body, err := json.Marshal(data)
	if err != nil {
		return "Error: " + err.Error()
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return "Error: " + err.Error()
	}
	req.Header.Set("Content-Type", "application/json")

	s.logger.Printf("Forwarding data to Spline webhook: %s", target)
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Printf("%s %v", color.RedString("Error forwarding to Spline webhook:"), err)
		return "Error: " + err.Error()
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "Error: " + err.Error()
	}
	s.logger.Printf("Spline webhook response: %s", text)
	return string(text)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("webhook")
	if topic != websocket.AllTopics {
		if _, err := s.store.Get(topic); err != nil {
			http.Error(w, "Webhook not found", http.StatusNotFound)
			return
		}
	}
	s.hub.ServeWS(w, r, topic)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	if err := renderIndex(w, s.page()); err != nil {
		s.logger.Printf("Error rendering interface: %v", err)
	}
}

// decodeBody reads one JSON document. Trailing data after the value is an
// error, as is an empty body.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

// serverURL is the scheme and host the client used to reach us.
func serverURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	host := r.Host
	if host == "" {
		host = "localhost"
	}
	return scheme + "://" + host
}
