package botmw

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Semior001/quizpoll/pkg/botx"
	"github.com/Semior001/quizpoll/pkg/logx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

var req = botx.Request{Chat: botx.Chat{ID: "1", Username: "quizzers"}, Text: "/createpoll"}

func TestRequestID(t *testing.T) {
	var got string
	h := RequestID()(func(ctx context.Context, _ botx.Request) ([]botx.Response, error) {
		var ok bool
		got, ok = logx.RequestIDFromContext(ctx)
		assert.True(t, ok)
		return nil, nil
	})

	_, err := h(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, got, 36)
}

func TestAppendRequestIDOnError(t *testing.T) {
	ctx := logx.ContextWithRequestID(context.Background(), "req-1")

	t.Run("no error", func(t *testing.T) {
		resps, err := AppendRequestIDOnError()(func(context.Context, botx.Request) ([]botx.Response, error) {
			return []botx.Response{{ChatID: "1", Text: "ok"}}, nil
		})(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, []botx.Response{{ChatID: "1", Text: "ok"}}, resps)
	})

	t.Run("error without responses", func(t *testing.T) {
		resps, err := AppendRequestIDOnError()(func(context.Context, botx.Request) ([]botx.Response, error) {
			return nil, errors.New("boom")
		})(ctx, req)
		assert.EqualError(t, err, "boom")
		assert.Equal(t, []botx.Response{{
			ChatID: "1",
			Text:   "Что-то пошло не так, попробуй позже.\n\nRequest ID: req-1",
		}}, resps)
	})

	t.Run("error with responses", func(t *testing.T) {
		poll := &botx.Poll{Question: "q", Options: []string{"a", "b"}}
		resps, err := AppendRequestIDOnError()(func(context.Context, botx.Request) ([]botx.Response, error) {
			return []botx.Response{{ChatID: "1", Text: "partial"}, {ChatID: "1", Poll: poll}}, errors.New("boom")
		})(ctx, req)
		assert.Error(t, err)
		assert.Equal(t, []botx.Response{
			{ChatID: "1", Text: "partial\n\nRequest ID: req-1"},
			{ChatID: "1", Poll: poll},
		}, resps)
	})
}

func TestTimeout(t *testing.T) {
	t.Run("in time", func(t *testing.T) {
		resps, err := Timeout(time.Second)(func(context.Context, botx.Request) ([]botx.Response, error) {
			return []botx.Response{{Text: "ok"}}, nil
		})(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, []botx.Response{{Text: "ok"}}, resps)
	})

	t.Run("timed out", func(t *testing.T) {
		canceled := make(chan struct{})
		resps, err := Timeout(10*time.Millisecond)(func(ctx context.Context, _ botx.Request) ([]botx.Response, error) {
			<-ctx.Done()
			close(canceled)
			return []botx.Response{{Text: "late"}}, nil
		})(context.Background(), req)
		assert.ErrorIs(t, err, ErrTimeout)
		assert.Empty(t, resps)

		select {
		case <-canceled:
		case <-time.After(time.Second):
			t.Fatal("handler context must be canceled")
		}
	})
}

func TestRecover(t *testing.T) {
	resps, err := Recover(slog.New(logx.NoOp()))(func(context.Context, botx.Request) ([]botx.Response, error) {
		panic("nil map")
	})(context.Background(), req)
	assert.EqualError(t, err, "panic: nil map")
	assert.Empty(t, resps)
}

func TestLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	lg := slog.New(slog.HandlerOptions{Level: slog.LevelInfo}.NewTextHandler(buf))

	_, err := Logger(lg)(func(context.Context, botx.Request) ([]botx.Response, error) {
		return []botx.Response{{ChatID: "1", Text: "secret answer"}}, nil
	})(context.Background(), req)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "request received")
	assert.Contains(t, out, "request processed")
	assert.Contains(t, out, "chat_username=quizzers")
	assert.NotContains(t, out, "/createpoll", "commands are logged only in debug")
	assert.NotContains(t, out, "secret answer", "texts are logged only in debug")
}
