// Package bot contains routers and controllers for bots.
package bot

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Semior001/quizpoll/app/store"
	"github.com/Semior001/quizpoll/pkg/botx"
	"github.com/Semior001/quizpoll/pkg/botx/botmw"
	cache "github.com/go-pkgz/expirable-cache/v2"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

//go:generate moq -out mock_announcer.go . Announcer
//go:generate moq -out mock_estimator.go . Estimator

// Announcer provides quizzes from the latest announcement.
type Announcer interface {
	Fetch(ctx context.Context) ([]store.Quiz, error)
}

// Estimator sets difficulties of quizzes.
type Estimator interface {
	EstimateAll(ctx context.Context, quizzes []store.Quiz) ([]store.Quiz, error)
	CacheStat() cache.Stats
}

// Commands is the menu of the bot.
var Commands = []botx.Command{
	{Command: "createpoll", Description: "Создать опрос на базе последнего анонса игр."},
	{Command: "register", Description: "Отметить игру, на которую была произведена регистрация."},
	{Command: "upcoming", Description: "Получить список игр, на которые была произведена регистрация."},
}

// Ctrl provides routes and controllers for bot updates.
type Ctrl struct {
	Logger         *slog.Logger
	Store          store.Interface
	Announces      Announcer
	Estimator      Estimator
	API            botx.API
	AdminIDs       []string
	HandlerTimeout time.Duration
	Now            func() time.Time
}

// Routes returns a multiplexer for bot controllers.
func (c *Ctrl) Routes() *botx.Router {
	rtr := botx.NewRouter()

	rtr.Use(
		botmw.RequestID(),
		botmw.AppendRequestIDOnError(),
		botmw.Logger(c.Logger),
		botmw.Timeout(c.HandlerTimeout),
		botmw.Recover(c.Logger),
	)

	// the bot may sit in group chats, ordinary messages are not for it
	rtr.NotFound(ignore)
	rtr.Add("/createpoll", c.createPoll)
	rtr.Add("/register", c.register)
	rtr.Add(registerPrefix, c.handleRegister)
	rtr.Add("/upcoming", c.upcoming)

	rtr.Group(func(rtr *botx.Router) {
		rtr.Use(c.ensureAdmin)

		rtr.Add("/cache", c.cacheStats)
	})

	return rtr
}

func (c *Ctrl) cacheStats(_ context.Context, req botx.Request) ([]botx.Response, error) {
	stats := c.Estimator.CacheStat()
	return []botx.Response{{
		ChatID: req.Chat.ID,
		Text: fmt.Sprintf("hits: %d, misses: %d, evictions: %d, size: %d\n",
			stats.Hits, stats.Misses, stats.Evicted, stats.Added),
	}}, nil
}

func (c *Ctrl) ensureAdmin(h botx.Handler) botx.Handler {
	return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
		if !lo.Contains(c.AdminIDs, req.Chat.ID) {
			return nil, nil
		}

		return h(ctx, req)
	}
}

// NotifyAdmins sends a message to all admins.
func (c *Ctrl) NotifyAdmins(ctx context.Context, msg string) error {
	for _, adminID := range c.AdminIDs {
		if err := c.API.SendMessage(ctx, botx.Response{
			ChatID: adminID,
			Text:   msg,
		}); err != nil {
			return fmt.Errorf("send message to admin: %w", err)
		}
	}

	return nil
}

func (c *Ctrl) now() time.Time {
	if c.Now == nil {
		return time.Now().UTC()
	}
	return c.Now()
}

func ignore(context.Context, botx.Request) ([]botx.Response, error) { return nil, nil }

func chatID(req botx.Request) (int64, error) {
	id, err := strconv.ParseInt(req.Chat.ID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse chat id %q: %w", req.Chat.ID, err)
	}
	return id, nil
}

func reply(req botx.Request, text string) []botx.Response {
	return []botx.Response{{ChatID: req.Chat.ID, Text: text}}
}
