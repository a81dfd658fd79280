package chatbot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nest/internal/models"
	"nest/internal/structures"
	"nest/internal/testutil"
)

func TestOpenAICompleter_Complete(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"  Take a slow breath.  "},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	conf := &structures.Config{LLM: structures.LLMConfig{BaseURL: srv.URL, APIKey: "test", Model: "companion"}}
	c := NewOpenAICompleter(conf, &testutil.MockLogger{})

	reply, err := c.Complete(context.Background(), []models.HistoryMessage{
		{Role: models.RoleSystem, Content: "sys"},
		{Role: models.RoleUser, Content: "hi"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Take a slow breath.", reply)

	assert.Equal(t, "companion", got["model"])
	assert.EqualValues(t, 512, got["max_tokens"])
	assert.InDelta(t, 0.7, got["temperature"], 1e-6)
	assert.InDelta(t, 0.9, got["top_p"], 1e-6)
	assert.Len(t, got["messages"], 2)
}

func TestOpenAICompleter_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","choices":[]}`))
	}))
	defer srv.Close()

	conf := &structures.Config{LLM: structures.LLMConfig{BaseURL: srv.URL, Model: "m"}}
	_, err := NewOpenAICompleter(conf, &testutil.MockLogger{}).Complete(context.Background(), nil)
	assert.ErrorIs(t, err, errNoChoices)
}

func TestOpenAICompleter_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
	}))
	defer srv.Close()

	logger := &testutil.MockLogger{}
	conf := &structures.Config{LLM: structures.LLMConfig{BaseURL: srv.URL, Model: "m"}}
	_, err := NewOpenAICompleter(conf, logger).Complete(context.Background(), nil)
	assert.Error(t, err)
	assert.Equal(t, 1, logger.Count("error"))
}
