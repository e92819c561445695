package ports

import "context"

// Button is a single inline keyboard button carrying a callback token.
type Button struct {
	Text string
	Data string
}

// Keyboard is an inline keyboard: rows of buttons.
type Keyboard [][]Button

// Messenger delivers text, keyboards and documents to a Telegram chat.
// Failures are per-recipient and non-fatal to callers.
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string, kb *Keyboard) error
	// EditMessage rewrites an existing message in place. An edit that leaves
	// the rendered message unchanged is treated as success.
	EditMessage(ctx context.Context, chatID int64, messageID int, text string, kb *Keyboard) error
	// AnswerCallback acknowledges a button press; alert makes the text a
	// visible popup instead of a transient toast.
	AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error
	SendDocument(ctx context.Context, chatID int64, path, caption string) error
}

// IdentityResolver turns a human-readable handle into a numeric chat id.
// Resolution is best-effort and network-dependent.
type IdentityResolver interface {
	ResolveUsername(ctx context.Context, username string) (int64, error)
}
