package botx

import "context"

// Handler handles requests.
type Handler func(ctx context.Context, req Request) ([]Response, error)

// Middleware wraps a handler.
type Middleware func(Handler) Handler

// Request is a request for handler.
// For inline button presses Text holds the callback data and
// MessageID points to the message with the keyboard.
type Request struct {
	MessageID  string
	CallbackID string
	Chat       Chat
	Text       string
}

// IsCallback reports whether the request came from an inline button.
func (r Request) IsCallback() bool { return r.CallbackID != "" }

// Chat contains chat information.
type Chat struct {
	ID       string
	Username string
}

// Response is a response from handler.
// If EditMessageID is set, the message with this id is edited instead of
// sending a new one. If Poll is set, Text is ignored.
type Response struct {
	ReplyToMessageID string
	EditMessageID    string
	ChatID           string
	Text             string
	Buttons          [][]Button
	Poll             *Poll
}

// Button is an inline keyboard button.
type Button struct {
	Text string
	Data string
}

// Poll describes a poll to send.
type Poll struct {
	Question        string
	Options         []string
	Anonymous       bool
	MultipleAnswers bool
}

// Command is an entry of the bot commands menu.
type Command struct {
	Command     string
	Description string
}

// NotFound is a default handler for not found commands.
func NotFound(_ context.Context, req Request) ([]Response, error) {
	return []Response{{
		ChatID: req.Chat.ID,
		Text:   "command not found",
	}}, nil
}
