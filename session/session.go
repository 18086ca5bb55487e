package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// notificationBuffer bounds the per-session notification queue. The MCP
// server drops notifications for a session whose queue is full.
const notificationBuffer = 100

// Session is one HTTP client connection to the MCP server. It satisfies
// server.ClientSession so the MCP server can route notifications to it.
type Session struct {
	id            string
	notifications chan mcp.JSONRPCNotification
	initialized   atomic.Bool
	lastAccess    atomic.Int64
	done          chan struct{}
	closeOnce     sync.Once

	CreatedAt time.Time
}

var _ server.ClientSession = (*Session)(nil)

func newSession(id string) *Session {
	now := time.Now()
	s := &Session{
		id:            id,
		notifications: make(chan mcp.JSONRPCNotification, notificationBuffer),
		done:          make(chan struct{}),
		CreatedAt:     now,
	}
	s.lastAccess.Store(now.UnixNano())
	return s
}

func (s *Session) SessionID() string { return s.id }

func (s *Session) Initialize() { s.initialized.Store(true) }

func (s *Session) Initialized() bool { return s.initialized.Load() }

func (s *Session) NotificationChannel() chan<- mcp.JSONRPCNotification {
	return s.notifications
}

// Notifications is the receive side of the notification queue, drained by
// the SSE stream.
func (s *Session) Notifications() <-chan mcp.JSONRPCNotification {
	return s.notifications
}

// Touch records activity on the session.
func (s *Session) Touch() {
	s.lastAccess.Store(time.Now().UnixNano())
}

// LastAccessedAt reports the time of the last Touch.
func (s *Session) LastAccessedAt() time.Time {
	return time.Unix(0, s.lastAccess.Load())
}

// Done is closed once the session has been removed from its store.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// close is idempotent. The notification channel stays open because the MCP
// server may still hold a reference and sends to it without a lock.
func (s *Session) close() {
	s.closeOnce.Do(func() { close(s.done) })
}
