package extract

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGemini serves generateContent replies from a handler func.
func fakeGemini(t *testing.T, handler http.HandlerFunc) (*Gemini, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	g, err := NewGemini(context.Background(), Config{
		APIKey:          "test-key",
		Endpoint:        server.URL,
		BreakerFailures: 2,
		BreakerCooldown: time.Minute,
	})
	require.NoError(t, err)
	return g, &calls
}

func replyWith(t *testing.T, w http.ResponseWriter, text string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]any{
		"candidates": []any{map[string]any{
			"content": map[string]any{
				"role":  "model",
				"parts": []any{map[string]any{"text": text}},
			},
		}},
	})
	require.NoError(t, err)
}

func TestGemini_Extract(t *testing.T) {
	var body map[string]any
	g, _ := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-1.5-flash:generateContent"), r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		replyWith(t, w, `{"items":[{"name":"Burger","price":12.99},{"name":"TOTAL","price":12.99}]}`)
	})

	items, err := g.Extract(context.Background(), "data:image/png;base64,iVBORw0KGgo=")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "item-1", items[0].ID)
	assert.Equal(t, "Burger", items[0].Name)

	contents := body["contents"].([]any)
	parts := contents[0].(map[string]any)["parts"].([]any)
	require.Len(t, parts, 2)
	assert.Contains(t, parts[0].(map[string]any)["text"], "Receipt Analysis")
	inline := parts[1].(map[string]any)["inlineData"].(map[string]any)
	assert.Equal(t, "image/png", inline["mimeType"])
	assert.Equal(t, "iVBORw0KGgo=", inline["data"])
}

func TestGemini_NotFoundIsUnavailable(t *testing.T) {
	g, _ := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":404,"message":"model not found"}}`, http.StatusNotFound)
	})

	_, err := g.Extract(context.Background(), "AAAA")
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestGemini_InvalidReply(t *testing.T) {
	g, _ := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		replyWith(t, w, "sorry, no receipt here")
	})

	items, err := g.Extract(context.Background(), "AAAA")
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Nil(t, items)
}

func TestGemini_BreakerOpensAfterFailures(t *testing.T) {
	g, calls := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":500,"message":"boom"}}`, http.StatusInternalServerError)
	})

	for i := 0; i < 2; i++ {
		_, err := g.Extract(context.Background(), "AAAA")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrServiceUnavailable)
	}
	seen := atomic.LoadInt32(calls)

	_, err := g.Extract(context.Background(), "AAAA")
	assert.ErrorIs(t, err, ErrServiceUnavailable)
	assert.Equal(t, seen, atomic.LoadInt32(calls), "open breaker must not call the API")
}

func TestGemini_EmptyImage(t *testing.T) {
	g, calls := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := g.Extract(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoImage)
	assert.Zero(t, atomic.LoadInt32(calls))
}

func TestGemini_UndecodableImage(t *testing.T) {
	g, calls := fakeGemini(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := g.Extract(context.Background(), "data:image/png;base64,not base64!")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoImage)
	assert.Zero(t, atomic.LoadInt32(calls))
}

func TestGemini_ModelPrefixTrimmed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-2.0-flash:generateContent"), r.URL.Path)
		assert.NotContains(t, r.URL.Path, "models/models/")
		replyWith(t, w, `{"items":[]}`)
	}))
	t.Cleanup(server.Close)

	g, err := NewGemini(context.Background(), Config{
		APIKey:   "test-key",
		Model:    "models/gemini-2.0-flash",
		Endpoint: server.URL,
	})
	require.NoError(t, err)

	items, err := g.Extract(context.Background(), "AAAA")
	require.NoError(t, err)
	assert.Empty(t, items)
}
