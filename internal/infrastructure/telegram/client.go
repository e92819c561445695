// Package telegram adapts the Bot API transport to the core ports. All
// knowledge of tgbotapi types stays inside this package.
package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/stroyservice/intake-system/internal/core/ports"
)

// Client wraps a tgbotapi.BotAPI as ports.Messenger and
// ports.IdentityResolver.
type Client struct {
	api *tgbotapi.BotAPI
	log zerolog.Logger
}

func New(token string, log zerolog.Logger) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Info().Str("username", api.Self.UserName).Msg("telegram bot authorized")
	return &Client{api: api, log: log}, nil
}

func (c *Client) SendMessage(_ context.Context, chatID int64, text string, kb *ports.Keyboard) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if kb != nil {
		msg.ReplyMarkup = toMarkup(*kb)
	}
	_, err := c.api.Send(msg)
	return err
}

// EditMessage rewrites a message in place. Telegram rejects edits that change
// nothing; that rejection is the expected outcome of an idempotent re-render
// and is swallowed here.
func (c *Client) EditMessage(_ context.Context, chatID int64, messageID int, text string, kb *ports.Keyboard) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if kb != nil {
		markup := toMarkup(*kb)
		edit.ReplyMarkup = &markup
	}
	_, err := c.api.Send(edit)
	if err != nil && strings.Contains(err.Error(), "message is not modified") {
		return nil
	}
	return err
}

func (c *Client) AnswerCallback(_ context.Context, callbackID, text string, alert bool) error {
	cb := tgbotapi.NewCallback(callbackID, text)
	cb.ShowAlert = alert
	_, err := c.api.Request(cb)
	return err
}

func (c *Client) SendDocument(_ context.Context, chatID int64, path, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = caption
	_, err := c.api.Send(doc)
	return err
}

// toMarkup converts a port keyboard into the wire inline-keyboard markup.
func toMarkup(kb ports.Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb))
	for _, row := range kb {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// ResolveUsername looks a public @username up through the platform. Best
// effort: private or unknown handles fail.
func (c *Client) ResolveUsername(_ context.Context, username string) (int64, error) {
	chat, err := c.api.GetChat(tgbotapi.ChatInfoConfig{
		ChatConfig: tgbotapi.ChatConfig{SuperGroupUsername: "@" + username},
	})
	if err != nil {
		return 0, err
	}
	return chat.ID, nil
}
