package bot

import (
	"github.com/stroyservice/intake-system/internal/core/domain"
	"github.com/stroyservice/intake-system/internal/core/ports"
)

// listLimit caps how many recent orders appear as buttons in the list screen.
const listLimit = 10

func button(text string, a Action) ports.Button {
	return ports.Button{Text: text, Data: a.Data()}
}

// mainMenuKeyboard builds the main menu. Developers additionally get direct
// access to the log view.
func mainMenuKeyboard(role domain.Role) ports.Keyboard {
	kb := ports.Keyboard{
		{button("📋 Заказы", ViewOrders{})},
	}
	if role == domain.RoleDeveloper {
		kb = append(kb, []ports.Button{button("📜 Логи", LogsOpen{})})
	}
	return kb
}

// logsKeyboard pages the log view. nextOffset is the offset for the page
// behind the one just shown.
func logsKeyboard(nextOffset int) ports.Keyboard {
	return ports.Keyboard{
		{button("📜 Показать ещё", LogsMore{Offset: nextOffset})},
		{button("🏠 Меню", MainMenu{})},
	}
}

// ordersListKeyboard renders one button per recent order plus navigation.
func ordersListKeyboard(orders []domain.Order) ports.Keyboard {
	start := 0
	if len(orders) > listLimit {
		start = len(orders) - listLimit
	}

	var kb ports.Keyboard
	for _, o := range orders[start:] {
		kb = append(kb, []ports.Button{
			button(o.Name+" | "+o.Telephone, OrderDetail{ID: o.ID}),
		})
	}
	return append(kb, []ports.Button{button("🏠 Меню", MainMenu{})})
}

// orderDetailKeyboard builds the management keyboard for one order. The
// delete button is rendered only for admins and developers; the callback
// handler enforces the same minimum again.
func orderDetailKeyboard(orderID string, role domain.Role) ports.Keyboard {
	kb := ports.Keyboard{
		{
			button("🟡 В работе", SetStatus{ID: orderID, Status: domain.StatusInProgress}),
			button("🟢 Готово", SetStatus{ID: orderID, Status: domain.StatusDone}),
		},
	}
	if role.AtLeast(domain.RoleAdmin) {
		kb = append(kb, []ports.Button{button("🗑 Удалить", DeleteOrder{ID: orderID})})
	}
	return append(kb, []ports.Button{button("⬅️ Назад", ViewOrders{})})
}
