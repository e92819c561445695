package ports

import "context"

// CommandEvent is an inbound slash command from a chat.
type CommandEvent struct {
	ChatID  int64
	Command string
	Args    string
}

// CallbackEvent is an inbound inline-button press.
type CallbackEvent struct {
	CallbackID string
	ChatID     int64
	MessageID  int
	Data       string
}

// UpdateHandler consumes decoded Telegram updates. Returned errors are for
// the transport to log; user-visible feedback is the handler's own concern.
type UpdateHandler interface {
	HandleCommand(ctx context.Context, ev CommandEvent) error
	HandleCallback(ctx context.Context, ev CallbackEvent) error
}
