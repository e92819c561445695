package bot

import (
	"fmt"

	"github.com/stroyservice/intake-system/internal/core/domain"
)

// User-facing copy. Identifiers and logs are English; everything shown to the
// end user is Russian, matching the product's audience.
const (
	msgNoAccess      = "🚫 Недостаточно прав."
	msgRestarting    = "♻️ Перезапуск бота..."
	msgRestartFailed = "Не удалось перезапустить бота."
	msgNoMoreLogs    = "📜 Больше логов нет."
	msgLogsReadError = "Ошибка чтения логов."
	msgOrderNotFound = "Заказ не найден"
	msgStatusUpdated = "Статус обновлён"
	msgOrderDeleted  = "Удалено"
	msgBadStatus     = "Недопустимый статус."
)

// maxMessageLen is the hard Telegram text limit the log view must stay under.
const maxMessageLen = 4000

func greetingText(role domain.Role) string {
	return fmt.Sprintf("Здравствуйте! Ваша роль: %s\nВыберите действие ниже:", role)
}

func ordersListText(count int) string {
	return fmt.Sprintf("Найдено заказов: %d", count)
}

func orderDeletedText(orderID string, remaining int) string {
	return fmt.Sprintf("Заказ %s удалён. Всего заказов: %d", orderID, remaining)
}

// formatOrder renders the detail view of one order.
func formatOrder(o domain.Order) string {
	return fmt.Sprintf(
		"🆔 ID: %s\n"+
			"👤 Имя: %s\n"+
			"📞 Телефон: %s\n"+
			"📧 Email: %s\n"+
			"📌 Тема: %s\n"+
			"✉️ Сообщение:\n%s\n\n"+
			"⏱ Создано: %s\n"+
			"📦 Статус: %s",
		o.ID, o.Name, o.Telephone, o.Email, o.Subject, o.Message, o.CreatedAt, o.Status,
	)
}

// tail returns at most n trailing runes of s.
func tail(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
