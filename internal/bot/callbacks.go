package bot

import (
	"context"

	"github.com/stroyservice/intake-system/internal/api/metrics"
	"github.com/stroyservice/intake-system/internal/core/domain"
	"github.com/stroyservice/intake-system/internal/core/ports"
)

// HandleCallback decodes a button press and runs the corresponding UI
// transition. Every callback is acknowledged — an authorization failure is
// answered with a visible alert instead of a silent drop — and an edit that
// changes nothing is treated as success by the transport.
func (b *Bot) HandleCallback(ctx context.Context, ev ports.CallbackEvent) error {
	action, err := ParseAction(ev.Data)
	if err != nil {
		b.log.Warn().Str("data", ev.Data).Msg("unparsable callback token")
		metrics.CallbacksTotal.WithLabelValues("unknown", outcomeInvalid).Inc()
		return b.msg.AnswerCallback(ctx, ev.CallbackID, "", false)
	}

	role := b.roles.Resolve(ctx, ev.ChatID)

	var outcome string
	switch a := action.(type) {
	case MainMenu:
		outcome, err = b.cbMainMenu(ctx, ev, role)
	case ViewOrders:
		outcome, err = b.cbViewOrders(ctx, ev, role)
	case OrderDetail:
		outcome, err = b.cbOrderDetail(ctx, ev, role, a.ID)
	case SetStatus:
		outcome, err = b.cbSetStatus(ctx, ev, role, a)
	case DeleteOrder:
		outcome, err = b.cbDeleteOrder(ctx, ev, role, a.ID)
	case LogsOpen:
		outcome, err = b.cbLogs(ctx, ev, role, 0, false)
	case LogsMore:
		outcome, err = b.cbLogs(ctx, ev, role, a.Offset, true)
	}

	metrics.CallbacksTotal.WithLabelValues(actionName(action), outcome).Inc()
	return err
}

// deny acknowledges the callback with a visible alert and no state change.
func (b *Bot) deny(ctx context.Context, ev ports.CallbackEvent) (string, error) {
	return outcomeDenied, b.msg.AnswerCallback(ctx, ev.CallbackID, msgNoAccess, true)
}

// ack clears the client's pending-press state, optionally with a toast.
func (b *Bot) ack(ctx context.Context, ev ports.CallbackEvent, text string) {
	if err := b.msg.AnswerCallback(ctx, ev.CallbackID, text, false); err != nil {
		b.log.Warn().Err(err).Msg("failed to answer callback")
	}
}

func (b *Bot) cbMainMenu(ctx context.Context, ev ports.CallbackEvent, role domain.Role) (string, error) {
	if !role.AtLeast(domain.RoleUser) {
		return b.deny(ctx, ev)
	}
	b.ack(ctx, ev, "")

	kb := mainMenuKeyboard(role)
	return outcomeOK, b.msg.EditMessage(ctx, ev.ChatID, ev.MessageID, greetingText(role), &kb)
}

func (b *Bot) cbViewOrders(ctx context.Context, ev ports.CallbackEvent, role domain.Role) (string, error) {
	if !role.AtLeast(domain.RoleUser) {
		return b.deny(ctx, ev)
	}
	b.ack(ctx, ev, "")

	orders, err := b.orders.LoadAll(ctx)
	if err != nil {
		return outcomeError, err
	}
	kb := ordersListKeyboard(orders)
	return outcomeOK, b.msg.EditMessage(ctx, ev.ChatID, ev.MessageID, ordersListText(len(orders)), &kb)
}

func (b *Bot) cbOrderDetail(ctx context.Context, ev ports.CallbackEvent, role domain.Role, orderID string) (string, error) {
	if !role.AtLeast(domain.RoleUser) {
		return b.deny(ctx, ev)
	}
	b.ack(ctx, ev, "")

	order, err := b.orders.FindByID(ctx, orderID)
	if err != nil {
		// Stale button: fall back to the list with a not-found note.
		orders, loadErr := b.orders.LoadAll(ctx)
		if loadErr != nil {
			return outcomeError, loadErr
		}
		kb := ordersListKeyboard(orders)
		return outcomeOK, b.msg.EditMessage(ctx, ev.ChatID, ev.MessageID, msgOrderNotFound, &kb)
	}

	kb := orderDetailKeyboard(order.ID, role)
	return outcomeOK, b.msg.EditMessage(ctx, ev.ChatID, ev.MessageID, formatOrder(*order), &kb)
}

func (b *Bot) cbSetStatus(ctx context.Context, ev ports.CallbackEvent, role domain.Role, a SetStatus) (string, error) {
	if !role.AtLeast(domain.RoleUser) {
		return b.deny(ctx, ev)
	}
	if !a.Status.Valid() {
		return outcomeInvalid, b.msg.AnswerCallback(ctx, ev.CallbackID, msgBadStatus, true)
	}
	b.ack(ctx, ev, msgStatusUpdated)

	if _, err := b.orders.UpdateStatus(ctx, a.ID, a.Status); err != nil {
		return outcomeError, err
	}

	order, err := b.orders.FindByID(ctx, a.ID)
	if err != nil {
		orders, loadErr := b.orders.LoadAll(ctx)
		if loadErr != nil {
			return outcomeError, loadErr
		}
		kb := ordersListKeyboard(orders)
		return outcomeOK, b.msg.EditMessage(ctx, ev.ChatID, ev.MessageID, msgOrderNotFound, &kb)
	}

	// Re-render; pressing the already-active status renders identically and
	// the transport swallows the no-op edit.
	kb := orderDetailKeyboard(order.ID, role)
	return outcomeOK, b.msg.EditMessage(ctx, ev.ChatID, ev.MessageID, formatOrder(*order), &kb)
}

func (b *Bot) cbDeleteOrder(ctx context.Context, ev ports.CallbackEvent, role domain.Role, orderID string) (string, error) {
	if !role.AtLeast(domain.RoleAdmin) {
		return b.deny(ctx, ev)
	}
	b.ack(ctx, ev, msgOrderDeleted)

	remaining, err := b.orders.Delete(ctx, orderID)
	if err != nil {
		return outcomeError, err
	}

	kb := ordersListKeyboard(remaining)
	return outcomeOK, b.msg.EditMessage(ctx, ev.ChatID, ev.MessageID, orderDeletedText(orderID, len(remaining)), &kb)
}

// cbLogs serves a log page as a fresh message. Paging forward additionally
// ships the whole log artifact as a document.
func (b *Bot) cbLogs(ctx context.Context, ev ports.CallbackEvent, role domain.Role, offset int, withFile bool) (string, error) {
	if !role.AtLeast(domain.RoleDeveloper) {
		return b.deny(ctx, ev)
	}
	b.ack(ctx, ev, "")

	if err := b.sendLogs(ctx, ev.ChatID, offset); err != nil {
		return outcomeError, err
	}
	if withFile {
		if err := b.msg.SendDocument(ctx, ev.ChatID, b.logs.Path(), "Файл логов"); err != nil {
			b.log.Error().Err(err).Msg("failed to send log file")
		}
	}
	return outcomeOK, nil
}
