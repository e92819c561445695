package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/stroyservice/intake-system/internal/api/metrics"
	"github.com/stroyservice/intake-system/internal/core/domain"
	"github.com/stroyservice/intake-system/internal/core/ports"
)

const (
	outcomeOK       = "ok"
	outcomeDenied   = "denied"
	outcomeInvalid  = "invalid"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

// HandleCommand resolves the caller's role and dispatches a slash command.
// The role gate runs before any side effect; a caller below the minimum gets
// a fixed refusal and nothing is mutated. Unknown commands are ignored.
func (b *Bot) HandleCommand(ctx context.Context, ev ports.CommandEvent) error {
	role := b.roles.Resolve(ctx, ev.ChatID)

	var outcome string
	var err error
	switch ev.Command {
	case "start", "help":
		outcome, err = b.cmdStart(ctx, ev, role)
	case "id":
		outcome, err = b.cmdID(ctx, ev, role)
	case "getid":
		outcome, err = b.cmdGetID(ctx, ev, role)
	case "grant":
		outcome, err = b.cmdGrant(ctx, ev, role)
	case "revoke":
		outcome, err = b.cmdRevoke(ctx, ev, role)
	case "restart":
		outcome, err = b.cmdRestart(ctx, ev, role)
	case "logs":
		outcome, err = b.cmdLogs(ctx, ev, role)
	case "users":
		outcome, err = b.cmdUsers(ctx, ev, role)
	case "user_add":
		outcome, err = b.cmdUserAdd(ctx, ev, role)
	case "user_del":
		outcome, err = b.cmdUserDel(ctx, ev, role)
	default:
		return nil
	}

	metrics.CommandsTotal.WithLabelValues(ev.Command, outcome).Inc()
	return err
}

func (b *Bot) cmdStart(ctx context.Context, ev ports.CommandEvent, role domain.Role) (string, error) {
	if !role.AtLeast(domain.RoleUser) {
		return outcomeDenied, b.msg.SendMessage(ctx, ev.ChatID, msgNoAccess, nil)
	}
	kb := mainMenuKeyboard(role)
	return outcomeOK, b.msg.SendMessage(ctx, ev.ChatID, greetingText(role), &kb)
}

func (b *Bot) cmdID(ctx context.Context, ev ports.CommandEvent, role domain.Role) (string, error) {
	text := fmt.Sprintf("Ваш chat_id: %d\nВаша роль: %s", ev.ChatID, role)
	return outcomeOK, b.msg.SendMessage(ctx, ev.ChatID, text, nil)
}

func (b *Bot) cmdGetID(ctx context.Context, ev ports.CommandEvent, role domain.Role) (string, error) {
	if !role.AtLeast(domain.RoleAdmin) {
		return outcomeDenied, b.msg.SendMessage(ctx, ev.ChatID, msgNoAccess, nil)
	}
	args := strings.TrimSpace(ev.Args)
	if args == "" {
		return outcomeInvalid, b.msg.SendMessage(ctx, ev.ChatID, "Использование: /getid @username", nil)
	}

	username := strings.TrimPrefix(args, "@")
	id, err := b.resolver.ResolveUsername(ctx, username)
	if err != nil {
		b.log.Warn().Err(err).Str("username", username).Msg("username resolution failed")
		return outcomeError, b.msg.SendMessage(ctx, ev.ChatID, fmt.Sprintf("Не удалось найти @%s", username), nil)
	}
	return outcomeOK, b.msg.SendMessage(ctx, ev.ChatID, fmt.Sprintf("ID пользователя @%s: %d", username, id), nil)
}

func (b *Bot) cmdGrant(ctx context.Context, ev ports.CommandEvent, role domain.Role) (string, error) {
	if !role.AtLeast(domain.RoleDeveloper) {
		return outcomeDenied, b.msg.SendMessage(ctx, ev.ChatID, msgNoAccess, nil)
	}
	fields := strings.Fields(ev.Args)
	if len(fields) != 2 {
		return outcomeInvalid, b.msg.SendMessage(ctx, ev.ChatID, "Использование: /grant <user_id> <role>", nil)
	}

	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return outcomeInvalid, b.msg.SendMessage(ctx, ev.ChatID, "Использование: /grant <user_id> <role>", nil)
	}
	target, err := domain.ParseRole(fields[1])
	if err != nil {
		return outcomeInvalid, b.msg.SendMessage(ctx, ev.ChatID, "Недопустимая роль. Используй admin, developer, user", nil)
	}

	if err := b.roles.Grant(ctx, id, target); err != nil {
		b.log.Error().Err(err).Int64("target", id).Msg("grant failed")
		return outcomeError, b.msg.SendMessage(ctx, ev.ChatID, "Не удалось сохранить роль.", nil)
	}
	return outcomeOK, b.msg.SendMessage(ctx, ev.ChatID, fmt.Sprintf("✅ Пользователю %d выдана роль %s", id, target), nil)
}

func (b *Bot) cmdRevoke(ctx context.Context, ev ports.CommandEvent, role domain.Role) (string, error) {
	if !role.AtLeast(domain.RoleDeveloper) {
		return outcomeDenied, b.msg.SendMessage(ctx, ev.ChatID, msgNoAccess, nil)
	}
	fields := strings.Fields(ev.Args)
	if len(fields) != 1 {
		return outcomeInvalid, b.msg.SendMessage(ctx, ev.ChatID, "Использование: /revoke <user_id>", nil)
	}
	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return outcomeInvalid, b.msg.SendMessage(ctx, ev.ChatID, "Использование: /revoke <user_id>", nil)
	}

	removed, err := b.roles.RevokeAll(ctx, id)
	if err != nil {
		b.log.Error().Err(err).Int64("target", id).Msg("revoke failed")
		return outcomeError, b.msg.SendMessage(ctx, ev.ChatID, "Не удалось сохранить роль.", nil)
	}
	if !removed {
		return outcomeNotFound, b.msg.SendMessage(ctx, ev.ChatID, "Пользователь не найден.", nil)
	}
	return outcomeOK, b.msg.SendMessage(ctx, ev.ChatID, "✅ Роль удалена.", nil)
}

func (b *Bot) cmdRestart(ctx context.Context, ev ports.CommandEvent, role domain.Role) (string, error) {
	if !role.AtLeast(domain.RoleDeveloper) {
		return outcomeDenied, b.msg.SendMessage(ctx, ev.ChatID, msgNoAccess, nil)
	}
	if err := b.msg.SendMessage(ctx, ev.ChatID, msgRestarting, nil); err != nil {
		b.log.Warn().Err(err).Msg("failed to announce restart")
	}

	b.log.Info().Int64("chat_id", ev.ChatID).Msg("restart requested")
	if err := b.restart(); err != nil {
		b.log.Error().Err(err).Msg("process restart failed")
		return outcomeError, b.msg.SendMessage(ctx, ev.ChatID, msgRestartFailed, nil)
	}
	return outcomeOK, nil
}

func (b *Bot) cmdLogs(ctx context.Context, ev ports.CommandEvent, role domain.Role) (string, error) {
	if !role.AtLeast(domain.RoleDeveloper) {
		return outcomeDenied, b.msg.SendMessage(ctx, ev.ChatID, msgNoAccess, nil)
	}
	return outcomeOK, b.sendLogs(ctx, ev.ChatID, 0)
}

func (b *Bot) cmdUsers(ctx context.Context, ev ports.CommandEvent, role domain.Role) (string, error) {
	if !role.AtLeast(domain.RoleAdmin) {
		return outcomeDenied, b.msg.SendMessage(ctx, ev.ChatID, msgNoAccess, nil)
	}

	sets, err := b.roles.List(ctx)
	if err != nil {
		b.log.Error().Err(err).Msg("failed to list role sets")
		return outcomeError, b.msg.SendMessage(ctx, ev.ChatID, "Не удалось загрузить список пользователей.", nil)
	}

	text := "👥 Список пользователей по ролям:\n\n" +
		formatRoleSet("DEVELOPERS", sets[domain.RoleDeveloper]) + "\n" +
		formatRoleSet("ADMINS", sets[domain.RoleAdmin]) + "\n" +
		formatRoleSet("USERS", sets[domain.RoleUser])
	return outcomeOK, b.msg.SendMessage(ctx, ev.ChatID, text, nil)
}

func (b *Bot) cmdUserAdd(ctx context.Context, ev ports.CommandEvent, role domain.Role) (string, error) {
	if !role.AtLeast(domain.RoleAdmin) {
		return outcomeDenied, b.msg.SendMessage(ctx, ev.ChatID, msgNoAccess, nil)
	}
	fields := strings.Fields(ev.Args)
	if len(fields) == 0 {
		return outcomeInvalid, b.msg.SendMessage(ctx, ev.ChatID, "Использование: /user_add <@username|id> [role=user|admin|developer]", nil)
	}

	target := domain.RoleUser
	if len(fields) > 1 {
		parsed, err := domain.ParseRole(strings.ToLower(fields[1]))
		if err != nil {
			return outcomeInvalid, b.msg.SendMessage(ctx, ev.ChatID, "Роль должна быть: user | admin | developer", nil)
		}
		target = parsed
	}

	id, ok := b.resolveTarget(ctx, fields[0])
	if !ok {
		return outcomeError, b.msg.SendMessage(ctx, ev.ChatID, "Не удалось определить пользователя по аргументу", nil)
	}

	if err := b.roles.Grant(ctx, id, target); err != nil {
		b.log.Error().Err(err).Int64("target", id).Msg("user_add failed")
		return outcomeError, b.msg.SendMessage(ctx, ev.ChatID, "Не удалось сохранить роль.", nil)
	}
	return outcomeOK, b.msg.SendMessage(ctx, ev.ChatID, fmt.Sprintf("✅ Пользователь %d добавлен в роль %s", id, target), nil)
}

func (b *Bot) cmdUserDel(ctx context.Context, ev ports.CommandEvent, role domain.Role) (string, error) {
	if !role.AtLeast(domain.RoleAdmin) {
		return outcomeDenied, b.msg.SendMessage(ctx, ev.ChatID, msgNoAccess, nil)
	}
	fields := strings.Fields(ev.Args)
	if len(fields) == 0 {
		return outcomeInvalid, b.msg.SendMessage(ctx, ev.ChatID, "Использование: /user_del <@username|id> [role=user|admin|developer]", nil)
	}

	id, ok := b.resolveTarget(ctx, fields[0])
	if !ok {
		return outcomeError, b.msg.SendMessage(ctx, ev.ChatID, "Не удалось определить пользователя по аргументу", nil)
	}

	var removed bool
	var err error
	if len(fields) > 1 {
		target, parseErr := domain.ParseRole(strings.ToLower(fields[1]))
		if parseErr != nil {
			return outcomeInvalid, b.msg.SendMessage(ctx, ev.ChatID, "Роль должна быть: user | admin | developer", nil)
		}
		removed, err = b.roles.Revoke(ctx, id, target)
	} else {
		removed, err = b.roles.RevokeAll(ctx, id)
	}
	if err != nil {
		b.log.Error().Err(err).Int64("target", id).Msg("user_del failed")
		return outcomeError, b.msg.SendMessage(ctx, ev.ChatID, "Не удалось сохранить роль.", nil)
	}
	if !removed {
		return outcomeNotFound, b.msg.SendMessage(ctx, ev.ChatID, "Пользователь не найден в указанных ролях", nil)
	}
	return outcomeOK, b.msg.SendMessage(ctx, ev.ChatID, fmt.Sprintf("✅ Пользователь %d удалён из указанных ролей", id), nil)
}

// resolveTarget turns a command argument into a chat id: either a literal
// numeric id or an @username resolved through the messaging platform.
func (b *Bot) resolveTarget(ctx context.Context, arg string) (int64, bool) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return 0, false
	}
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return id, true
	}

	id, err := b.resolver.ResolveUsername(ctx, strings.TrimPrefix(arg, "@"))
	if err != nil {
		b.log.Warn().Err(err).Str("arg", arg).Msg("target resolution failed")
		return 0, false
	}
	return id, true
}

func formatRoleSet(name string, ids []int64) string {
	if len(ids) == 0 {
		return name + ": —"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return name + ": " + strings.Join(parts, ", ")
}
