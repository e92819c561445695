package bot

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stroyservice/intake-system/internal/core/domain"
)

func TestParseAction(t *testing.T) {
	cases := []struct {
		data string
		want Action
	}{
		{"main_menu", MainMenu{}},
		{"view_orders", ViewOrders{}},
		{"logs_open", LogsOpen{}},
		{"order:abc123", OrderDetail{ID: "abc123"}},
		{"order_status:abc123:in_progress", SetStatus{ID: "abc123", Status: domain.StatusInProgress}},
		{"order_status:abc123:done", SetStatus{ID: "abc123", Status: domain.StatusDone}},
		{"order_del:abc123", DeleteOrder{ID: "abc123"}},
		{"logs_more:0", LogsMore{Offset: 0}},
		{"logs_more:60", LogsMore{Offset: 60}},
	}
	for _, tc := range cases {
		got, err := ParseAction(tc.data)
		if err != nil {
			t.Errorf("ParseAction(%q) error: %v", tc.data, err)
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ParseAction(%q) = %#v, want %#v", tc.data, got, tc.want)
		}
	}
}

func TestParseAction_RoundTrip(t *testing.T) {
	actions := []Action{
		MainMenu{},
		ViewOrders{},
		LogsOpen{},
		OrderDetail{ID: "abc123"},
		SetStatus{ID: "abc123", Status: domain.StatusDone},
		DeleteOrder{ID: "abc123"},
		LogsMore{Offset: 30},
	}
	for _, a := range actions {
		got, err := ParseAction(a.Data())
		if err != nil {
			t.Errorf("ParseAction(%q) error: %v", a.Data(), err)
			continue
		}
		if !reflect.DeepEqual(got, a) {
			t.Errorf("round trip of %#v via %q = %#v", a, a.Data(), got)
		}
	}
}

func TestParseAction_Unknown(t *testing.T) {
	for _, data := range []string{
		"",
		"orders",
		"order:",
		"order_status:abc123",
		"order_status::done",
		"order_del:",
		"logs_more:",
		"logs_more:-30",
		"logs_more:many",
		"drop_tables",
	} {
		if _, err := ParseAction(data); !errors.Is(err, ErrUnknownAction) {
			t.Errorf("ParseAction(%q) error = %v, want ErrUnknownAction", data, err)
		}
	}
}
