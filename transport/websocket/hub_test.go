package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func newTestClient(hub *Hub, topic string) *Client {
	return &Client{
		hub:   hub,
		topic: topic,
		send:  make(chan []byte, sendBuffer),
	}
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub(nil)
	client := newTestClient(hub, "wh-1")

	hub.registerClient(client)

	if !hub.topics["wh-1"][client] {
		t.Error("Client was not registered under its topic")
	}
	if len(hub.topics["wh-1"]) != 1 {
		t.Errorf("Expected 1 client for topic, got %d", len(hub.topics["wh-1"]))
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub(nil)
	client := newTestClient(hub, "wh-1")

	hub.registerClient(client)
	hub.unregisterClient(client)

	if _, exists := hub.topics["wh-1"]; exists {
		t.Error("Topic should have been cleaned up after last client unregistered")
	}
	if _, ok := <-client.send; ok {
		t.Error("Expected send channel to be closed")
	}

	// A second unregister is a no-op.
	hub.unregisterClient(client)
}

func TestHubMultipleClientsInTopic(t *testing.T) {
	hub := NewHub(nil)
	client1 := newTestClient(hub, "wh-1")
	client2 := newTestClient(hub, "wh-1")

	hub.registerClient(client1)
	hub.registerClient(client2)
	if len(hub.topics["wh-1"]) != 2 {
		t.Errorf("Expected 2 clients, got %d", len(hub.topics["wh-1"]))
	}

	hub.unregisterClient(client1)
	if !hub.topics["wh-1"][client2] {
		t.Error("client2 should still be registered")
	}
}

func TestHubBroadcastRouting(t *testing.T) {
	hub := NewHub(nil)
	watcher := newTestClient(hub, "wh-1")
	other := newTestClient(hub, "wh-2")
	firehose := newTestClient(hub, AllTopics)
	hub.registerClient(watcher)
	hub.registerClient(other)
	hub.registerClient(firehose)

	hub.broadcastMessage(&Message{Topic: "wh-1", Event: "data_received", Data: map[string]any{"temp": 72.0}})

	for name, c := range map[string]*Client{"watcher": watcher, "firehose": firehose} {
		select {
		case data := <-c.send:
			var message Message
			if err := json.Unmarshal(data, &message); err != nil {
				t.Fatalf("%s: failed to unmarshal message: %v", name, err)
			}
			if message.Topic != "wh-1" || message.Event != "data_received" {
				t.Errorf("%s: unexpected message %+v", name, message)
			}
		default:
			t.Errorf("%s: expected a message", name)
		}
	}

	select {
	case <-other.send:
		t.Error("Client of another topic should not receive the message")
	default:
	}
}

func TestHubDropsSlowConsumer(t *testing.T) {
	hub := NewHub(nil)
	slow := &Client{hub: hub, topic: "wh-1", send: make(chan []byte)}
	hub.registerClient(slow)

	hub.broadcastMessage(&Message{Topic: "wh-1", Event: "x"})

	if _, exists := hub.topics["wh-1"]; exists {
		t.Error("Slow consumer should have been unregistered")
	}
}

func TestHubPublish(t *testing.T) {
	hub := NewHub(nil)

	hub.Publish("wh-9", "created", "payload")

	select {
	case message := <-hub.broadcast:
		if message.Topic != "wh-9" || message.Event != "created" || message.Data != "payload" {
			t.Errorf("Unexpected message %+v", message)
		}
		if message.Timestamp.IsZero() {
			t.Error("Expected a timestamp")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("No broadcast message queued")
	}
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for hub.Clients() != want {
		if time.Now().After(deadline) {
			t.Fatalf("Expected %d clients, got %d", want, hub.Clients())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWebSocketEndToEnd(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, r.URL.Query().Get("webhook"))
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?webhook=wh-7"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	waitForClients(t, hub, 1)

	hub.Publish("wh-7", "data_received", map[string]any{"temp": 72})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read WebSocket message: %v", err)
	}

	var message struct {
		WebhookID string         `json:"webhookId"`
		Event     string         `json:"event"`
		Data      map[string]any `json:"data"`
	}
	if err := json.Unmarshal(data, &message); err != nil {
		t.Fatalf("Failed to unmarshal message: %v", err)
	}
	if message.WebhookID != "wh-7" || message.Event != "data_received" || message.Data["temp"] != 72.0 {
		t.Errorf("Unexpected message %+v", message)
	}

	conn.Close()
	waitForClients(t, hub, 0)
}
