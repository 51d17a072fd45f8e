package assistant

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mcsmartbytes/smartassist/internal/intent"
	"github.com/mcsmartbytes/smartassist/internal/plugin"
	"github.com/mcsmartbytes/smartassist/internal/store"
	"github.com/mcsmartbytes/smartassist/internal/timeparse"
)

// captureMessenger records outgoing texts instead of sending them.
type captureMessenger struct {
	phone string
	body  string
}

func (m *captureMessenger) SendSMS(ctx context.Context, phone, body string) error {
	m.phone = phone
	m.body = body
	return nil
}

func newTestAssistant(t *testing.T, collab plugin.Collaborators) (*Assistant, *store.Store) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "assistant.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	pol := timeparse.DefaultPolicy()
	registry := plugin.NewDefaultRegistry(s, pol, nil, collab)
	resolver := intent.NewFallbackResolver(intent.NewKeywordResolver(registry, pol))

	return New(Config{Store: s, Resolver: resolver, Plugins: registry}), s
}

func TestHandle_ReminderEndToEnd(t *testing.T) {
	a, s := newTestAssistant(t, plugin.Collaborators{})
	ctx := context.Background()

	reply := a.Handle(ctx, "Remind me to call John in 30 minutes")
	if reply.Action != "create" {
		t.Fatalf("expected create action, got %q (message %q)", reply.Action, reply.Message)
	}
	if !strings.Contains(reply.Message, "call John") {
		t.Errorf("reply should echo the task, got %q", reply.Message)
	}
	if !strings.Contains(reply.Message, "in 30 minutes") {
		t.Errorf("reply should echo the relative time, got %q", reply.Message)
	}

	reminders, err := s.ActiveReminders(ctx, time.Now())
	if err != nil {
		t.Fatalf("ActiveReminders: %v", err)
	}
	if len(reminders) != 1 || reminders[0].Content != "call John" {
		t.Errorf("expected one stored reminder for call John, got %+v", reminders)
	}
}

func TestHandle_SMSResolvesContact(t *testing.T) {
	msgr := &captureMessenger{}
	a, s := newTestAssistant(t, plugin.Collaborators{Messenger: msgr})
	ctx := context.Background()

	if _, err := s.AddContact(ctx, "Mom", "555-0100", ""); err != nil {
		t.Fatalf("AddContact: %v", err)
	}

	reply := a.Handle(ctx, "text Mom hello there")
	if reply.Action != "send" {
		t.Fatalf("expected send action, got %q (message %q)", reply.Action, reply.Message)
	}
	if msgr.phone != "555-0100" {
		t.Errorf("expected contact phone 555-0100, got %q", msgr.phone)
	}
	if msgr.body != "hello there" {
		t.Errorf("expected body %q, got %q", "hello there", msgr.body)
	}
}

func TestHandle_ConversationPassesThrough(t *testing.T) {
	a, _ := newTestAssistant(t, plugin.Collaborators{})

	reply := a.Handle(context.Background(), "hello")
	if reply.Action != "" {
		t.Errorf("greeting should not dispatch, got action %q", reply.Action)
	}
	if reply.Message == "" {
		t.Error("greeting should still get a message")
	}
}

func TestHandle_EmptyUtterance(t *testing.T) {
	a, _ := newTestAssistant(t, plugin.Collaborators{})

	reply := a.Handle(context.Background(), "   ")
	if reply.Message == "" {
		t.Error("empty utterance should get a prompt to repeat")
	}
}

func TestHandle_NoStoreConfigured(t *testing.T) {
	pol := timeparse.DefaultPolicy()
	registry := plugin.NewDefaultRegistry(nil, pol, nil, plugin.Collaborators{})
	resolver := intent.NewFallbackResolver(intent.NewKeywordResolver(registry, pol))
	a := New(Config{Resolver: resolver, Plugins: registry})

	reply := a.Handle(context.Background(), "hello")
	if reply.Message == "" {
		t.Error("assistant without storage should still reply")
	}
}

func TestHandle_BusyRejectsSecondUtterance(t *testing.T) {
	a, _ := newTestAssistant(t, plugin.Collaborators{})

	a.busy.Store(true)
	reply := a.Handle(context.Background(), "take a note buy milk")
	if reply.Message != busyMessage {
		t.Errorf("expected busy message, got %q", reply.Message)
	}
	a.busy.Store(false)

	reply = a.Handle(context.Background(), "take a note buy milk")
	if reply.Message == busyMessage {
		t.Error("assistant should accept utterances again once free")
	}
}
