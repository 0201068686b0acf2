package botx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(text string) Handler {
	return func(_ context.Context, req Request) ([]Response, error) {
		return []Response{{ChatID: req.Chat.ID, Text: text}}, nil
	}
}

func trace(steps *[]string, name string) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req Request) ([]Response, error) {
			*steps = append(*steps, name)
			return next(ctx, req)
		}
	}
}

func TestRouter_Handle(t *testing.T) {
	rtr := NewRouter()
	rtr.Add("/register", respond("register"))
	rtr.Add("/registered", respond("registered"))
	rtr.Add("register:", respond("callback"))

	tbl := []struct {
		text string
		want string
	}{
		{text: "/register", want: "register"},
		{text: "/register@quizpoll_bot", want: "register"},
		{text: "/registered games", want: "registered"},
		{text: "register:abc", want: "callback"},
		{text: "/unknown", want: "command not found"},
	}

	for _, tt := range tbl {
		t.Run(tt.text, func(t *testing.T) {
			resps, err := rtr.Handle(context.Background(), Request{Chat: Chat{ID: "1"}, Text: tt.text})
			require.NoError(t, err)
			assert.Equal(t, []Response{{ChatID: "1", Text: tt.want}}, resps)
		})
	}

	t.Run("empty text", func(t *testing.T) {
		resps, err := rtr.Handle(context.Background(), Request{Chat: Chat{ID: "1"}})
		require.NoError(t, err)
		assert.Empty(t, resps)
	})
}

func TestRouter_Middlewares(t *testing.T) {
	var steps []string

	rtr := NewRouter()
	rtr.Use(trace(&steps, "outer"), trace(&steps, "inner"))
	rtr.NotFound(func(context.Context, Request) ([]Response, error) {
		steps = append(steps, "not found")
		return nil, nil
	})
	rtr.Add("/public", func(context.Context, Request) ([]Response, error) {
		steps = append(steps, "public")
		return nil, nil
	})
	rtr.Group(func(rtr *Router) {
		rtr.Use(trace(&steps, "group"))
		rtr.Add("/private", func(context.Context, Request) ([]Response, error) {
			steps = append(steps, "private")
			return nil, nil
		})
	})

	for _, text := range []string{"/public", "/private", "hello"} {
		_, err := rtr.Handle(context.Background(), Request{Text: text})
		require.NoError(t, err)
	}

	assert.Equal(t, []string{
		"outer", "inner", "public",
		"outer", "inner", "group", "private",
		"outer", "inner", "not found",
	}, steps)
}

func TestRouter_With(t *testing.T) {
	var steps []string

	rtr := NewRouter()
	rtr.Add("/a", respond("a"))

	traced := rtr.With(trace(&steps, "traced"))
	traced.Add("/b", respond("b"))

	_, err := rtr.Handle(context.Background(), Request{Text: "/b"})
	require.NoError(t, err)
	assert.Empty(t, steps, "original router must stay untouched")

	resps, err := traced.Handle(context.Background(), Request{Text: "/a"})
	require.NoError(t, err)
	assert.Equal(t, "a", resps[0].Text)
	assert.Equal(t, []string{"traced"}, steps)
}
