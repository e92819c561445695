// Package bot implements the role-gated command and callback dispatchers over
// the order store, role registry and log view. It is transport-agnostic: all
// Telegram traffic goes through ports.Messenger, and updates arrive already
// decoded as ports events.
package bot

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stroyservice/intake-system/internal/core/ports"
)

// RestartFunc triggers a full process replacement. It only returns on failure.
type RestartFunc func() error

// Bot owns no state of its own: every operation resolves the caller's role
// and loads a fresh store snapshot.
type Bot struct {
	msg      ports.Messenger
	resolver ports.IdentityResolver
	roles    ports.RoleRegistry
	orders   ports.OrderRepository
	logs     ports.LogReader
	restart  RestartFunc
	log      zerolog.Logger
}

func New(
	msg ports.Messenger,
	resolver ports.IdentityResolver,
	roles ports.RoleRegistry,
	orders ports.OrderRepository,
	logs ports.LogReader,
	restart RestartFunc,
	log zerolog.Logger,
) *Bot {
	return &Bot{
		msg:      msg,
		resolver: resolver,
		roles:    roles,
		orders:   orders,
		logs:     logs,
		restart:  restart,
		log:      log,
	}
}

// sendLogs delivers one page of the log view as a new message.
func (b *Bot) sendLogs(ctx context.Context, chatID int64, offset int) error {
	lines, err := b.logs.Page(offset)
	if err != nil {
		b.log.Error().Err(err).Msg("failed to read log page")
		return b.msg.SendMessage(ctx, chatID, msgLogsReadError, nil)
	}
	if len(lines) == 0 {
		return b.msg.SendMessage(ctx, chatID, msgNoMoreLogs, nil)
	}

	text := tail("Последние логи:\n\n"+strings.Join(lines, "\n"), maxMessageLen)
	kb := logsKeyboard(offset + ports.LogPageSize)
	return b.msg.SendMessage(ctx, chatID, text, &kb)
}
