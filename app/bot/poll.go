package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Semior001/quizpoll/app/store"
	"github.com/Semior001/quizpoll/pkg/botx"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

const (
	pollQuestion   = "Господа и дамы."
	maxPollOptions = 10
	maxOptionLen   = 100 // telegram limit in characters
)

func (c *Ctrl) createPoll(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	id, err := chatID(req)
	if err != nil {
		return nil, err
	}

	announced, err := c.Announces.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch announcements: %w", err)
	}

	reg := c.Store.Load(ctx)
	chat := reg.GetOrCreate(id)

	fresh := chat.Unknown(announced)
	if c.Logger.Handler().Enabled(ctx, slog.LevelDebug) {
		for _, q := range lo.Without(announced, fresh...) {
			c.Logger.DebugCtx(ctx, "quiz is already known", slog.String("title", q.Title))
		}
	}

	if len(fresh) == 0 {
		return reply(req, "Нет новых игр."), nil
	}

	c.Logger.InfoCtx(ctx, "got new quizzes", slog.Int("count", len(fresh)))

	if err = c.API.SendMessage(ctx, botx.Response{
		ChatID: req.Chat.ID,
		Text:   fmt.Sprintf("Новых игр: %d, оцениваю сложность, это может занять время...", len(fresh)),
	}); err != nil {
		c.Logger.WarnCtx(ctx, "failed to send progress message", slog.Any("err", err))
	}

	estimated, err := c.Estimator.EstimateAll(ctx, fresh)
	if err != nil {
		return nil, fmt.Errorf("estimate difficulties: %w", err)
	}

	// timed out handlers must not touch the registry
	if err = ctx.Err(); err != nil {
		return nil, fmt.Errorf("estimated too late: %w", err)
	}

	added := chat.RecordNewQuizzes(estimated)

	if err = c.Store.Save(ctx, reg); err != nil {
		return nil, fmt.Errorf("save registry: %w", err)
	}

	// telegram rejects polls with a single option
	if len(added) == 1 {
		return reply(req, "Новая игра: "+optionText(added[0])), nil
	}

	return lo.Map(pollChunks(added), func(chunk []store.Quiz, _ int) botx.Response {
		return botx.Response{
			ChatID: req.Chat.ID,
			Poll: &botx.Poll{
				Question:        pollQuestion,
				Options:         lo.Map(chunk, func(q store.Quiz, _ int) string { return optionText(q) }),
				Anonymous:       false,
				MultipleAnswers: true,
			},
		}
	}), nil
}

// pollChunks splits quizzes into polls, the chunk size is decreased
// when the last chunk would have a single option.
func pollChunks(quizzes []store.Quiz) [][]store.Quiz {
	if len(quizzes) == 0 {
		return nil
	}

	size := maxPollOptions
	if len(quizzes)%maxPollOptions == 1 {
		size = maxPollOptions - 1
	}

	return lo.Chunk(quizzes, size)
}

func optionText(q store.Quiz) string {
	s := q.Title + ", сложность " + formatDifficulty(q.Difficulty)
	if utf8.RuneCountInString(s) <= maxOptionLen {
		return s
	}
	return string([]rune(s)[:maxOptionLen-1]) + "…"
}

func formatDifficulty(d *float64) string {
	if d == nil {
		return "неизвестна"
	}

	s := strconv.FormatFloat(*d, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
