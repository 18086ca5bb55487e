package webhook

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrWebhookNotFound = errors.New("webhook not found")

// Webhook is a receive endpoint created through the demo server.
type Webhook struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Variables are stored as sent, usually {"name", "type"} objects.
	Variables []any     `json:"variables"`
	CreatedAt time.Time `json:"createdAt"`
	URL       string    `json:"url"`

	// SplineWebhookURL, when set, receives a copy of every payload.
	SplineWebhookURL *string `json:"splineWebhookUrl"`
}

// Store keeps webhooks in memory in creation order.
type Store struct {
	mu       sync.RWMutex
	webhooks []*Webhook
	byID     map[string]*Webhook
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		byID: make(map[string]*Webhook),
		now:  time.Now,
	}
}

// Create records a new webhook. An empty name becomes "Webhook <id>" and an
// empty forward URL is stored as null.
func (s *Store) Create(name string, variables []any, forwardURL string) *Webhook {
	id := uuid.NewString()
	if name == "" {
		name = "Webhook " + id
	}
	if variables == nil {
		variables = []any{}
	}

	wh := &Webhook{
		ID:        id,
		Name:      name,
		Variables: cloneValue(variables).([]any),
		CreatedAt: s.now().UTC(),
		URL:       "/webhook/" + id,
	}
	if forwardURL != "" {
		wh.SplineWebhookURL = &forwardURL
	}

	s.mu.Lock()
	s.webhooks = append(s.webhooks, wh)
	s.byID[id] = wh
	s.mu.Unlock()

	return wh.clone()
}

func (s *Store) Get(id string) (*Webhook, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wh, ok := s.byID[id]
	if !ok {
		return nil, ErrWebhookNotFound
	}
	return wh.clone(), nil
}

// List returns copies of all webhooks, oldest first.
func (s *Store) List() []*Webhook {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*Webhook, len(s.webhooks))
	for i, wh := range s.webhooks {
		list[i] = wh.clone()
	}
	return list
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.webhooks)
}

func (w *Webhook) clone() *Webhook {
	c := *w
	c.Variables = cloneValue(w.Variables).([]any)
	if w.SplineWebhookURL != nil {
		u := *w.SplineWebhookURL
		c.SplineWebhookURL = &u
	}
	return &c
}

// cloneValue deep-copies decoded JSON.
func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, e := range val {
			m[k] = cloneValue(e)
		}
		return m
	case []any:
		l := make([]any, len(val))
		for i, e := range val {
			l[i] = cloneValue(e)
		}
		return l
	}
	return v
}
