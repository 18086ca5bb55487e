package webhook

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateDefaults(t *testing.T) {
	store := NewStore()

	wh := store.Create("", nil, "")
	assert.Equal(t, "Webhook "+wh.ID, wh.Name)
	assert.Equal(t, "/webhook/"+wh.ID, wh.URL)
	assert.NotNil(t, wh.Variables)
	assert.Empty(t, wh.Variables)
	assert.Nil(t, wh.SplineWebhookURL)
	assert.False(t, wh.CreatedAt.IsZero())
}

func TestStore_GetAndList(t *testing.T) {
	store := NewStore()
	a := store.Create("a", []any{map[string]any{"name": "temp", "type": "number"}}, "https://example.com/hook")
	b := store.Create("b", nil, "")

	got, err := store.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name)
	require.NotNil(t, got.SplineWebhookURL)
	assert.Equal(t, "https://example.com/hook", *got.SplineWebhookURL)

	_, err = store.Get("missing")
	assert.ErrorIs(t, err, ErrWebhookNotFound)

	list := store.List()
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, b.ID, list[1].ID)
}

func TestStore_ReturnsCopies(t *testing.T) {
	store := NewStore()
	vars := []any{map[string]any{"name": "x", "type": "string"}}
	wh := store.Create("a", vars, "")

	wh.Name = "changed"
	wh.Variables[0].(map[string]any)["name"] = "changed"
	vars[0].(map[string]any)["name"] = "mutated by caller"

	got, err := store.Get(wh.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name)
	assert.Equal(t, "x", got.Variables[0].(map[string]any)["name"])
}

func TestStore_ConcurrentCreate(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Create("", nil, "")
			store.List()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, store.Count())
}
