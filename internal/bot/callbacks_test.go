package bot

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stroyservice/intake-system/internal/core/domain"
)

func TestHandleCallback_UnknownTokenAckedSilently(t *testing.T) {
	f := newFixture(t)

	if err := f.bot.HandleCallback(context.Background(), callback(developerChat, "gibberish")); err != nil {
		t.Fatal(err)
	}

	if len(f.msg.answered) != 1 {
		t.Fatalf("answered %d times, want 1", len(f.msg.answered))
	}
	if a := f.msg.answered[0]; a.text != "" || a.alert {
		t.Errorf("unknown token must be acked without an alert, got %+v", a)
	}
	if len(f.msg.sent) != 0 || len(f.msg.edited) != 0 {
		t.Error("unknown token must not render anything")
	}
}

func TestHandleCallback_GuestDeniedWithAlert(t *testing.T) {
	f := newFixture(t)

	if err := f.bot.HandleCallback(context.Background(), callback(guestChat, "main_menu")); err != nil {
		t.Fatal(err)
	}

	if len(f.msg.answered) != 1 {
		t.Fatalf("answered %d times, want 1", len(f.msg.answered))
	}
	if a := f.msg.answered[0]; a.text != msgNoAccess || !a.alert {
		t.Errorf("denial must be a visible alert, got %+v", a)
	}
	if len(f.msg.edited) != 0 {
		t.Error("denial must not edit the message")
	}
}

func TestHandleCallback_MainMenu(t *testing.T) {
	f := newFixture(t)

	if err := f.bot.HandleCallback(context.Background(), callback(userChat, "main_menu")); err != nil {
		t.Fatal(err)
	}

	got := f.msg.lastEdited(t)
	if got.chatID != userChat || got.messageID != 77 {
		t.Errorf("edited wrong message: %+v", got)
	}
	if !hasButton(got.kb, "view_orders") {
		t.Error("menu should contain the orders button")
	}
}

func TestHandleCallback_ViewOrdersShowsLastTen(t *testing.T) {
	f := newFixture(t)
	for i := 1; i <= 12; i++ {
		f.addOrder(t, fmt.Sprintf("order%02d", i), domain.StatusNew)
	}

	if err := f.bot.HandleCallback(context.Background(), callback(userChat, "view_orders")); err != nil {
		t.Fatal(err)
	}

	got := f.msg.lastEdited(t)
	if got.text != ordersListText(12) {
		t.Errorf("text = %q, want the full count", got.text)
	}
	// 10 most recent orders plus the menu row.
	if len(*got.kb) != 11 {
		t.Fatalf("keyboard has %d rows, want 11", len(*got.kb))
	}
	if hasButton(got.kb, "order:order02") {
		t.Error("order02 is outside the last-ten window")
	}
	if !hasButton(got.kb, "order:order03") || !hasButton(got.kb, "order:order12") {
		t.Error("last-ten window should span order03..order12")
	}
}

func TestHandleCallback_OrderDetail(t *testing.T) {
	f := newFixture(t)
	o := f.addOrder(t, "abc123def456", domain.StatusNew)

	if err := f.bot.HandleCallback(context.Background(), callback(userChat, "order:abc123def456")); err != nil {
		t.Fatal(err)
	}

	got := f.msg.lastEdited(t)
	for _, want := range []string{o.ID, o.Name, o.Telephone, o.Subject} {
		if !strings.Contains(got.text, want) {
			t.Errorf("detail %q should contain %q", got.text, want)
		}
	}
	if hasButton(got.kb, "order_del:abc123def456") {
		t.Error("user must not see the delete button")
	}
	if !hasButton(got.kb, "order_status:abc123def456:done") {
		t.Error("detail should offer status buttons")
	}
}

func TestHandleCallback_OrderDetailAdminSeesDelete(t *testing.T) {
	f := newFixture(t)
	f.addOrder(t, "abc123def456", domain.StatusNew)

	if err := f.bot.HandleCallback(context.Background(), callback(adminChat, "order:abc123def456")); err != nil {
		t.Fatal(err)
	}
	if !hasButton(f.msg.lastEdited(t).kb, "order_del:abc123def456") {
		t.Error("admin detail should offer the delete button")
	}
}

func TestHandleCallback_OrderDetailStaleID(t *testing.T) {
	f := newFixture(t)
	f.addOrder(t, "livelive0001", domain.StatusNew)

	if err := f.bot.HandleCallback(context.Background(), callback(userChat, "order:goneforever")); err != nil {
		t.Fatal(err)
	}

	got := f.msg.lastEdited(t)
	if got.text != msgOrderNotFound {
		t.Errorf("text = %q, want %q", got.text, msgOrderNotFound)
	}
	if !hasButton(got.kb, "order:livelive0001") {
		t.Error("stale detail should fall back to the current list")
	}
}

func TestHandleCallback_SetStatus(t *testing.T) {
	f := newFixture(t)
	f.addOrder(t, "abc123def456", domain.StatusNew)
	ctx := context.Background()

	if err := f.bot.HandleCallback(ctx, callback(userChat, "order_status:abc123def456:in_progress")); err != nil {
		t.Fatal(err)
	}

	stored, err := f.orders.FindByID(ctx, "abc123def456")
	if err != nil {
		t.Fatal(err)
	}
	if stored.Status != domain.StatusInProgress {
		t.Errorf("status = %q, want in_progress", stored.Status)
	}
	if a := f.msg.answered[len(f.msg.answered)-1]; a.text != msgStatusUpdated {
		t.Errorf("toast = %q, want %q", a.text, msgStatusUpdated)
	}
	if !strings.Contains(f.msg.lastEdited(t).text, string(domain.StatusInProgress)) {
		t.Error("re-rendered detail should show the new status")
	}
}

func TestHandleCallback_SetStatusInvalid(t *testing.T) {
	f := newFixture(t)
	f.addOrder(t, "abc123def456", domain.StatusNew)
	ctx := context.Background()

	if err := f.bot.HandleCallback(ctx, callback(userChat, "order_status:abc123def456:shipped")); err != nil {
		t.Fatal(err)
	}

	if a := f.msg.answered[len(f.msg.answered)-1]; a.text != msgBadStatus || !a.alert {
		t.Errorf("want a %q alert, got %+v", msgBadStatus, a)
	}
	stored, err := f.orders.FindByID(ctx, "abc123def456")
	if err != nil {
		t.Fatal(err)
	}
	if stored.Status != domain.StatusNew {
		t.Errorf("status = %q, must stay new", stored.Status)
	}
}

func TestHandleCallback_DeleteRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	f.addOrder(t, "abc123def456", domain.StatusNew)
	ctx := context.Background()

	if err := f.bot.HandleCallback(ctx, callback(userChat, "order_del:abc123def456")); err != nil {
		t.Fatal(err)
	}

	if a := f.msg.answered[len(f.msg.answered)-1]; a.text != msgNoAccess || !a.alert {
		t.Errorf("want a refusal alert, got %+v", a)
	}
	if _, err := f.orders.FindByID(ctx, "abc123def456"); err != nil {
		t.Error("order must survive a denied delete")
	}
}

func TestHandleCallback_Delete(t *testing.T) {
	f := newFixture(t)
	f.addOrder(t, "abc123def456", domain.StatusNew)
	f.addOrder(t, "keepkeep0001", domain.StatusNew)
	ctx := context.Background()

	if err := f.bot.HandleCallback(ctx, callback(adminChat, "order_del:abc123def456")); err != nil {
		t.Fatal(err)
	}

	if _, err := f.orders.FindByID(ctx, "abc123def456"); err == nil {
		t.Error("order should be gone")
	}
	got := f.msg.lastEdited(t)
	if got.text != orderDeletedText("abc123def456", 1) {
		t.Errorf("text = %q", got.text)
	}
	if !hasButton(got.kb, "order:keepkeep0001") {
		t.Error("list should still show the remaining order")
	}
}

func TestHandleCallback_LogsOpen(t *testing.T) {
	f := newFixture(t)
	f.writeLog(t, 40)

	if err := f.bot.HandleCallback(context.Background(), callback(developerChat, "logs_open")); err != nil {
		t.Fatal(err)
	}

	got := f.msg.lastSent(t)
	if !strings.Contains(got.text, "log line 40") || strings.Contains(got.text, "log line 10\n") {
		t.Errorf("first page should cover lines 11..40, got %q", got.text)
	}
	if !hasButton(got.kb, "logs_more:30") {
		t.Error("page should offer the next-page button")
	}
	if len(f.msg.docs) != 0 {
		t.Error("opening the log view must not send the file")
	}
}

func TestHandleCallback_LogsMoreSendsFile(t *testing.T) {
	f := newFixture(t)
	f.writeLog(t, 40)

	if err := f.bot.HandleCallback(context.Background(), callback(developerChat, "logs_more:30")); err != nil {
		t.Fatal(err)
	}

	got := f.msg.lastSent(t)
	if !strings.Contains(got.text, "log line 10") || strings.Contains(got.text, "log line 11") {
		t.Errorf("second page should cover lines 1..10, got %q", got.text)
	}
	if len(f.msg.docs) != 1 || f.msg.docs[0] != f.logPath {
		t.Errorf("paging should ship the log file, got %v", f.msg.docs)
	}
}

func TestHandleCallback_LogsDeniedBelowDeveloper(t *testing.T) {
	f := newFixture(t)
	f.writeLog(t, 5)

	if err := f.bot.HandleCallback(context.Background(), callback(adminChat, "logs_open")); err != nil {
		t.Fatal(err)
	}
	if a := f.msg.answered[len(f.msg.answered)-1]; a.text != msgNoAccess || !a.alert {
		t.Errorf("want a refusal alert, got %+v", a)
	}
	if len(f.msg.sent) != 0 {
		t.Error("denied caller must not receive log pages")
	}
}
