// Package botapi contains implementations of bot API interfaces.
package botapi

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Semior001/quizpoll/pkg/botx"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

// Telegram is a controller that handles requests from telegram.
type Telegram struct {
	log     *slog.Logger
	api     *tgbotapi.BotAPI
	updates chan botx.Request
}

// NewTelegram returns a new telegram bot controller.
func NewTelegram(lg *slog.Logger, token string, bufferSize int) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("make new api: %w", err)
	}

	stdlibLogger := slog.NewLogLogger(lg.Handler(), slog.LevelWarn)
	stdlibLogger.SetPrefix("telegram-bot-api: ")

	if err = tgbotapi.SetLogger(stdlibLogger); err != nil {
		return nil, fmt.Errorf("set logger: %w", err)
	}

	return &Telegram{
		log:     lg,
		api:     api,
		updates: make(chan botx.Request, bufferSize),
	}, nil
}

// Run runs telegram bot listener until Stop is called.
func (b *Telegram) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	defer close(b.updates)

	for {
		update, ok := <-updates
		if !ok {
			return
		}

		if req, ok := b.toRequest(update); ok {
			b.updates <- req
		}
	}
}

func (b *Telegram) toRequest(update tgbotapi.Update) (botx.Request, bool) {
	if q := update.CallbackQuery; q != nil {
		// answer right away, so the client stops showing the spinner
		if _, err := b.api.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
			b.log.Warn("answer callback query", slog.String("callback_id", q.ID), slog.Any("err", err))
		}

		if q.Message == nil || q.Message.Chat == nil || q.Data == "" {
			return botx.Request{}, false
		}

		return botx.Request{
			MessageID:  strconv.Itoa(q.Message.MessageID),
			CallbackID: q.ID,
			Chat: botx.Chat{
				ID:       strconv.FormatInt(q.Message.Chat.ID, 10),
				Username: q.Message.Chat.UserName,
			},
			Text: q.Data,
		}, true
	}

	if update.Message == nil || update.Message.Chat == nil || update.Message.Text == "" {
		return botx.Request{}, false
	}

	return botx.Request{
		MessageID: strconv.Itoa(update.Message.MessageID),
		Chat: botx.Chat{
			ID:       strconv.FormatInt(update.Message.Chat.ID, 10),
			Username: update.Message.Chat.UserName,
		},
		Text: update.Message.Text,
	}, true
}

// Stop stops telegram bot listener, updates channel is closed
// once Run returns.
func (b *Telegram) Stop() {
	b.api.StopReceivingUpdates()
}

// Updates returns updates channel.
func (b *Telegram) Updates() <-chan botx.Request {
	return b.updates
}

// SetCommands publishes the commands menu.
func (b *Telegram) SetCommands(_ context.Context, cmds []botx.Command) error {
	cfg := tgbotapi.NewSetMyCommands(lo.Map(cmds, func(c botx.Command, _ int) tgbotapi.BotCommand {
		return tgbotapi.BotCommand{Command: c.Command, Description: c.Description}
	})...)

	if _, err := b.api.Request(cfg); err != nil {
		return fmt.Errorf("set my commands: %w", err)
	}

	return nil
}

// SendMessage sends message, poll or message edit to telegram chat.
func (b *Telegram) SendMessage(ctx context.Context, resp botx.Response) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	chatID, err := strconv.ParseInt(resp.ChatID, 10, 64)
	if err != nil {
		return fmt.Errorf("parse chat id: %w", err)
	}

	var msg tgbotapi.Chattable

	switch {
	case resp.Poll != nil:
		poll := tgbotapi.NewPoll(chatID, resp.Poll.Question, resp.Poll.Options...)
		poll.IsAnonymous = resp.Poll.Anonymous
		poll.AllowsMultipleAnswers = resp.Poll.MultipleAnswers
		msg = poll
	case resp.EditMessageID != "":
		msgID, err := strconv.Atoi(resp.EditMessageID)
		if err != nil {
			return fmt.Errorf("parse edit message id: %w", err)
		}

		edit := tgbotapi.NewEditMessageText(chatID, msgID, resp.Text)
		edit.DisableWebPagePreview = true
		if len(resp.Buttons) > 0 {
			kb := keyboard(resp.Buttons)
			edit.ReplyMarkup = &kb
		}
		msg = edit
	default:
		m := tgbotapi.NewMessage(chatID, resp.Text)
		m.DisableWebPagePreview = true
		if resp.ReplyToMessageID != "" {
			if m.ReplyToMessageID, err = strconv.Atoi(resp.ReplyToMessageID); err != nil {
				return fmt.Errorf("parse reply to message id: %w", err)
			}
		}
		if len(resp.Buttons) > 0 {
			m.ReplyMarkup = keyboard(resp.Buttons)
		}
		msg = m
	}

	if _, err = b.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

func keyboard(rows [][]botx.Button) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(lo.Map(rows, func(row []botx.Button, _ int) []tgbotapi.InlineKeyboardButton {
		return tgbotapi.NewInlineKeyboardRow(lo.Map(row, func(btn botx.Button, _ int) tgbotapi.InlineKeyboardButton {
			return tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.Data)
		})...)
	})...)
}
