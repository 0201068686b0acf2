package announce

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestService_Fetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(http.StatusOK)
		_, err := w.Write(announceHTML)
		require.NoError(t, err)
	}))
	defer ts.Close()

	svc := NewService(slog.Default(), ts.Client(), ts.URL, Parser{Year: 2025})

	quizzes, err := svc.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, quizzes, 4)
	assert.Equal(t, 2025, quizzes[0].Date.Year())
}

func TestService_FetchBadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	svc := NewService(slog.Default(), ts.Client(), ts.URL, Parser{})

	_, err := svc.Fetch(context.Background())
	assert.EqualError(t, err, "bad status code: 502")
}

func TestService_FetchNoContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>maintenance</body></html>`))
	}))
	defer ts.Close()

	svc := NewService(slog.Default(), ts.Client(), ts.URL, Parser{})

	_, err := svc.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrNoContent)
}
