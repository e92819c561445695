package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/stroyservice/intake-system/internal/core/domain"
)

var ErrUnknownAction = errors.New("unknown callback action")

// Action is the decoded form of a callback token. The concrete types below
// are the only implementations; dispatch over them is exhaustive.
type Action interface {
	// Data serializes the action back into its callback token.
	Data() string
}

// MainMenu returns the user to the main menu screen.
type MainMenu struct{}

// ViewOrders opens the orders list screen.
type ViewOrders struct{}

// OrderDetail opens the detail screen of one order.
type OrderDetail struct{ ID string }

// SetStatus changes the status of one order from its detail screen.
type SetStatus struct {
	ID     string
	Status domain.OrderStatus
}

// DeleteOrder removes one order and returns to the list screen.
type DeleteOrder struct{ ID string }

// LogsOpen opens the first page of the log view.
type LogsOpen struct{}

// LogsMore advances the log view to the page ending Offset lines from the
// end of the stream.
type LogsMore struct{ Offset int }

func (MainMenu) Data() string      { return "main_menu" }
func (ViewOrders) Data() string    { return "view_orders" }
func (a OrderDetail) Data() string { return "order:" + a.ID }
func (a SetStatus) Data() string   { return "order_status:" + a.ID + ":" + string(a.Status) }
func (a DeleteOrder) Data() string { return "order_del:" + a.ID }
func (LogsOpen) Data() string      { return "logs_open" }
func (a LogsMore) Data() string    { return "logs_more:" + strconv.Itoa(a.Offset) }

// ParseAction decodes a colon-delimited callback token into an Action.
func ParseAction(data string) (Action, error) {
	head, rest, _ := strings.Cut(data, ":")
	switch head {
	case "main_menu":
		return MainMenu{}, nil
	case "view_orders":
		return ViewOrders{}, nil
	case "logs_open":
		return LogsOpen{}, nil
	case "order":
		if rest == "" {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAction, data)
		}
		return OrderDetail{ID: rest}, nil
	case "order_status":
		id, status, ok := strings.Cut(rest, ":")
		if !ok || id == "" || status == "" {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAction, data)
		}
		return SetStatus{ID: id, Status: domain.OrderStatus(status)}, nil
	case "order_del":
		if rest == "" {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAction, data)
		}
		return DeleteOrder{ID: rest}, nil
	case "logs_more":
		offset, err := strconv.Atoi(rest)
		if err != nil || offset < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAction, data)
		}
		return LogsMore{Offset: offset}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, data)
}

// actionName labels an action for metrics and logs.
func actionName(a Action) string {
	switch a.(type) {
	case MainMenu:
		return "main_menu"
	case ViewOrders:
		return "view_orders"
	case OrderDetail:
		return "order"
	case SetStatus:
		return "order_status"
	case DeleteOrder:
		return "order_del"
	case LogsOpen:
		return "logs_open"
	case LogsMore:
		return "logs_more"
	}
	return "unknown"
}
