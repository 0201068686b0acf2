package difficulty

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ollama/ollama/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func newOllama(t *testing.T, cl *http.Client, base string) *Ollama {
	o, err := NewOllama(slog.Default(), cl, base, DefaultOllamaModel)
	require.NoError(t, err)
	return o
}

func TestOllama_Complete(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req api.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.1", req.Model)
		require.NotNil(t, req.Stream)
		assert.False(t, *req.Stream)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "how hard?", req.Messages[0].Content)

		_, _ = w.Write([]byte(`{"model":"llama3.1","message":{"role":"assistant","content":"4,5"},"done":true}` + "\n"))
	}))
	defer ts.Close()

	answer, err := newOllama(t, ts.Client(), ts.URL).Complete(context.Background(), "how hard?")
	require.NoError(t, err)
	assert.Equal(t, "4,5", answer)
}

func TestOllama_CompleteErrors(t *testing.T) {
	tbl := []struct {
		name    string
		status  int
		body    string
		errText string
	}{
		{name: "server error", status: http.StatusNotFound, body: `{"error":"model \"llama3.1\" not found"}`,
			errText: `model "llama3.1" not found`},
		{name: "bad status", status: http.StatusInternalServerError, body: `{}`, errText: "bad status code: 500"},
		{name: "bad body", status: http.StatusOK, body: `not json`, errText: "chat: "},
		{name: "empty body", status: http.StatusOK, body: ``, errText: "empty response from ollama"},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			_, err := newOllama(t, ts.Client(), ts.URL).Complete(context.Background(), "p")
			assert.ErrorContains(t, err, tt.errText)
		})
	}

	t.Run("unreachable", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		u := ts.URL
		ts.Close()

		_, err := newOllama(t, http.DefaultClient, u).Complete(context.Background(), "p")
		assert.ErrorContains(t, err, "chat: ")
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := NewOllama(slog.Default(), http.DefaultClient, "http://[::1", "m")
		assert.ErrorContains(t, err, "parse ollama url")
	})
}
