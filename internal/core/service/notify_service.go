package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/stroyservice/intake-system/internal/core/domain"
	"github.com/stroyservice/intake-system/internal/core/ports"
)

type notifyService struct {
	roles ports.RoleRegistry
	queue ports.DeliveryQueue
	log   zerolog.Logger
}

// NewNotifyService returns a Notifier that fans new-order messages out to the
// union of the admin and developer sets, once per distinct recipient.
func NewNotifyService(roles ports.RoleRegistry, queue ports.DeliveryQueue, log zerolog.Logger) ports.Notifier {
	return &notifyService{roles: roles, queue: queue, log: log}
}

// NotifyNewOrder enqueues one delivery per privileged recipient. Failures are
// the dispatcher's concern; nothing here propagates to the caller.
func (s *notifyService) NotifyNewOrder(ctx context.Context, o domain.Order) {
	recipients, err := s.recipients(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("order_id", o.ID).Msg("failed to resolve notification recipients")
		return
	}
	if len(recipients) == 0 {
		s.log.Warn().Str("order_id", o.ID).Msg("no privileged recipients configured, notification skipped")
		return
	}

	text := formatNewOrder(o)
	for _, chatID := range recipients {
		s.queue.Enqueue(ports.Delivery{ChatID: chatID, Text: text})
	}
	s.log.Info().Str("order_id", o.ID).Int("recipients", len(recipients)).Msg("new order notification enqueued")
}

// recipients returns the deduplicated union of the admin and developer sets,
// sorted for deterministic delivery order. An id present in both sets appears
// exactly once.
func (s *notifyService) recipients(ctx context.Context) ([]int64, error) {
	sets, err := s.roles.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{})
	var out []int64
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleDeveloper} {
		for _, id := range sets[role] {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func formatNewOrder(o domain.Order) string {
	return fmt.Sprintf(
		"📩 Новый заказ (ID: %s)\n"+
			"👤 Имя: %s\n"+
			"📞 Телефон: %s\n"+
			"📧 Email: %s\n"+
			"📌 Тема: %s\n"+
			"✉️ Сообщение:\n%s\n\n"+
			"⏱ Создано: %s\n"+
			"Статус: %s",
		o.ID, o.Name, o.Telephone, o.Email, o.Subject, o.Message, o.CreatedAt, o.Status,
	)
}
