package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/stroyservice/intake-system/internal/core/ports"
)

const (
	pollTimeout   = 30 * time.Second
	handleTimeout = 30 * time.Second
)

// Poll runs the long-poll loop until ctx is cancelled, decoding updates into
// port events and handing each one to h in its own goroutine. Any pending
// webhook is dropped first so polling can take over cleanly.
func (c *Client) Poll(ctx context.Context, h ports.UpdateHandler) {
	if _, err := c.api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true}); err != nil {
		c.log.Warn().Err(err).Msg("failed to clear webhook")
	}

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = int(pollTimeout.Seconds())
	updates := c.api.GetUpdatesChan(cfg)

	c.log.Info().Msg("telegram polling started")
	for {
		select {
		case <-ctx.Done():
			c.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go c.dispatch(ctx, h, update)
		}
	}
}

func (c *Client) dispatch(ctx context.Context, h ports.UpdateHandler, update tgbotapi.Update) {
	ctx, cancel := context.WithTimeout(ctx, handleTimeout)
	defer cancel()

	switch {
	case update.Message != nil && update.Message.IsCommand():
		ev := ports.CommandEvent{
			ChatID:  update.Message.Chat.ID,
			Command: update.Message.Command(),
			Args:    update.Message.CommandArguments(),
		}
		if err := h.HandleCommand(ctx, ev); err != nil {
			c.log.Error().Err(err).Str("command", ev.Command).Int64("chat_id", ev.ChatID).Msg("command handling failed")
		}
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		cq := update.CallbackQuery
		ev := ports.CallbackEvent{
			CallbackID: cq.ID,
			ChatID:     cq.Message.Chat.ID,
			MessageID:  cq.Message.MessageID,
			Data:       cq.Data,
		}
		if err := h.HandleCallback(ctx, ev); err != nil {
			c.log.Error().Err(err).Str("data", ev.Data).Int64("chat_id", ev.ChatID).Msg("callback handling failed")
		}
	}
}
