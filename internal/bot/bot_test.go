package bot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/stroyservice/intake-system/internal/core/domain"
	"github.com/stroyservice/intake-system/internal/core/ports"
	"github.com/stroyservice/intake-system/internal/infrastructure/storage"
)

// ---------------------------------------------------------------------------
// Test harness: recording messenger + real file-backed stores in a temp dir
// ---------------------------------------------------------------------------

type sentMessage struct {
	chatID int64
	text   string
	kb     *ports.Keyboard
}

type editedMessage struct {
	chatID    int64
	messageID int
	text      string
	kb        *ports.Keyboard
}

type answeredCallback struct {
	id    string
	text  string
	alert bool
}

type stubMessenger struct {
	sent     []sentMessage
	edited   []editedMessage
	answered []answeredCallback
	docs     []string
}

func (m *stubMessenger) SendMessage(_ context.Context, chatID int64, text string, kb *ports.Keyboard) error {
	m.sent = append(m.sent, sentMessage{chatID: chatID, text: text, kb: kb})
	return nil
}

func (m *stubMessenger) EditMessage(_ context.Context, chatID int64, messageID int, text string, kb *ports.Keyboard) error {
	m.edited = append(m.edited, editedMessage{chatID: chatID, messageID: messageID, text: text, kb: kb})
	return nil
}

func (m *stubMessenger) AnswerCallback(_ context.Context, id, text string, alert bool) error {
	m.answered = append(m.answered, answeredCallback{id: id, text: text, alert: alert})
	return nil
}

func (m *stubMessenger) SendDocument(_ context.Context, _ int64, path, _ string) error {
	m.docs = append(m.docs, path)
	return nil
}

func (m *stubMessenger) lastSent(t *testing.T) sentMessage {
	t.Helper()
	if len(m.sent) == 0 {
		t.Fatal("no message sent")
	}
	return m.sent[len(m.sent)-1]
}

func (m *stubMessenger) lastEdited(t *testing.T) editedMessage {
	t.Helper()
	if len(m.edited) == 0 {
		t.Fatal("no message edited")
	}
	return m.edited[len(m.edited)-1]
}

type stubResolver struct {
	id  int64
	err error
}

func (r *stubResolver) ResolveUsername(_ context.Context, _ string) (int64, error) {
	return r.id, r.err
}

// Fixed chat ids used across the bot tests.
const (
	guestChat     int64 = 1
	userChat      int64 = 2
	adminChat     int64 = 3
	developerChat int64 = 4
)

type fixture struct {
	bot       *Bot
	msg       *stubMessenger
	resolver  *stubResolver
	roles     *storage.RoleStore
	orders    *storage.OrderStore
	logPath   string
	restarted *bool
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()

	roles := storage.NewRoleStore(filepath.Join(dir, "keys.json"), zerolog.Nop())
	orders := storage.NewOrderStore(filepath.Join(dir, "orders.json"), zerolog.Nop())
	logPath := filepath.Join(dir, "bot.log")

	ctx := context.Background()
	mustGrant := func(id int64, role domain.Role) {
		if err := roles.Grant(ctx, id, role); err != nil {
			t.Fatal(err)
		}
	}
	mustGrant(userChat, domain.RoleUser)
	mustGrant(adminChat, domain.RoleAdmin)
	mustGrant(developerChat, domain.RoleDeveloper)

	msg := &stubMessenger{}
	resolver := &stubResolver{}
	restarted := false
	b := New(msg, resolver, roles, orders, storage.NewLogFile(logPath), func() error {
		restarted = true
		return nil
	}, zerolog.Nop())

	return &fixture{
		bot:       b,
		msg:       msg,
		resolver:  resolver,
		roles:     roles,
		orders:    orders,
		logPath:   logPath,
		restarted: &restarted,
	}
}

func (f *fixture) addOrder(t *testing.T, id string, status domain.OrderStatus) domain.Order {
	t.Helper()
	o := domain.Order{
		ID:        id,
		Name:      "Иван",
		Telephone: "+79161234567",
		Email:     "ivan@example.com",
		Subject:   "Вентиляция",
		Message:   "Нужен расчёт",
		CreatedAt: "2025-03-01 10:30:00",
		Status:    status,
	}
	if err := f.orders.Append(context.Background(), o); err != nil {
		t.Fatal(err)
	}
	return o
}

func (f *fixture) writeLog(t *testing.T, lines int) {
	t.Helper()
	var b strings.Builder
	for i := 1; i <= lines; i++ {
		fmt.Fprintf(&b, "log line %d\n", i)
	}
	if err := os.WriteFile(f.logPath, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
}

func command(chatID int64, cmd, args string) ports.CommandEvent {
	return ports.CommandEvent{ChatID: chatID, Command: cmd, Args: args}
}

func callback(chatID int64, data string) ports.CallbackEvent {
	return ports.CallbackEvent{CallbackID: "cb-1", ChatID: chatID, MessageID: 77, Data: data}
}
