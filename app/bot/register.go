package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Semior001/quizpoll/app/store"
	"github.com/Semior001/quizpoll/pkg/botx"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

const registerPrefix = "register:"

func (c *Ctrl) register(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	id, err := chatID(req)
	if err != nil {
		return nil, err
	}

	chat := c.Store.Load(ctx).GetOrCreate(id)
	if len(chat.Known) == 0 {
		return reply(req, "Прежде чем отмечать зарегистрированные турниры, нужно хоть раз выполнить команду /createpoll."), nil
	}

	selectable := chat.SelectableForRegistration(c.now())
	if len(selectable) == 0 {
		return reply(req, "Нет игр, на которые можно зарегистрироваться."), nil
	}

	return []botx.Response{{
		ChatID: req.Chat.ID,
		Text:   "Выбери игру, на которую ты зарегал команду:",
		Buttons: lo.Map(selectable, func(q store.Quiz, _ int) []botx.Button {
			return []botx.Button{{Text: q.Title, Data: registerPrefix + q.ID}}
		}),
	}}, nil
}

func (c *Ctrl) handleRegister(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	if !req.IsCallback() {
		return nil, nil
	}

	id, err := chatID(req)
	if err != nil {
		return nil, err
	}

	quizID := strings.TrimPrefix(req.Text, registerPrefix)

	reg := c.Store.Load(ctx)
	q, err := reg.GetOrCreate(id).RegisterQuiz(quizID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.Logger.WarnCtx(ctx, "quiz to register not found", slog.String("quiz_id", quizID))
		return edit(req, "Игра не найдена, попробуй /register ещё раз."), nil
	case errors.Is(err, store.ErrAlreadyRegistered):
		return edit(req, "Уже зарегистрировались на игру: "+q.Title), nil
	case err != nil:
		return nil, fmt.Errorf("register quiz %q: %w", quizID, err)
	}

	if err = c.Store.Save(ctx, reg); err != nil {
		return nil, fmt.Errorf("save registry: %w", err)
	}

	return edit(req, "Зарегистрировались на игру: "+q.Title), nil
}

func (c *Ctrl) upcoming(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	id, err := chatID(req)
	if err != nil {
		return nil, err
	}

	games := c.Store.Load(ctx).GetOrCreate(id).Upcoming(c.now())
	if len(games) == 0 {
		return reply(req, "Нет зарегистрированных игр."), nil
	}

	sb := &strings.Builder{}
	sb.WriteString("Зарегистрированные игры:")
	for _, q := range games {
		sb.WriteString("\n- ")
		sb.WriteString(q.Title)
	}
	sb.WriteString(".")

	return reply(req, sb.String()), nil
}

func edit(req botx.Request, text string) []botx.Response {
	return []botx.Response{{ChatID: req.Chat.ID, EditMessageID: req.MessageID, Text: text}}
}
