package plugin

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mcsmartbytes/smartassist/internal/intent"
)

func newTestDispatcher(plugins ...Plugin) *Dispatcher {
	r := NewRegistry()
	for _, p := range plugins {
		r.Register(p)
	}
	return NewDispatcher(r, nil, "Portland, OR")
}

func TestDispatch_Success(t *testing.T) {
	stub := &stubPlugin{key: "notes", result: &Result{Success: true, Message: "Saved."}}
	d := newTestDispatcher(stub)

	out := d.Dispatch(context.Background(), &intent.Resolution{
		Intent: &intent.Intent{Plugin: "notes", Action: "create", Params: map[string]any{"content": "milk"}},
	}, "note to self milk")

	if out.Message != "Saved." || out.Action != "create" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if stub.lastReq.RawText != "note to self milk" {
		t.Errorf("raw text not passed through, got %q", stub.lastReq.RawText)
	}
	if stub.lastReq.Str("content") != "milk" {
		t.Errorf("params not passed through, got %+v", stub.lastReq.Args)
	}
}

func TestDispatch_NilIntentPassesMessageThrough(t *testing.T) {
	d := newTestDispatcher()
	out := d.Dispatch(context.Background(), &intent.Resolution{Message: "Hi!"}, "hello")
	if out.Message != "Hi!" || out.Action != "" {
		t.Fatalf("conversation should pass through untouched, got %+v", out)
	}
}

func TestDispatch_UnknownPluginDegradesToConversation(t *testing.T) {
	d := newTestDispatcher()
	out := d.Dispatch(context.Background(), &intent.Resolution{
		Intent:  &intent.Intent{Plugin: "rockets", Action: "launch"},
		Message: "Launching!",
	}, "launch")
	if out.Message != "Launching!" || out.Action != "" {
		t.Fatalf("unknown plugin should fall back to the resolver message, got %+v", out)
	}
}

func TestDispatch_ErrorBecomesFailureMessage(t *testing.T) {
	stub := &stubPlugin{key: "notes", err: errors.New("disk full")}
	d := newTestDispatcher(stub)

	out := d.Dispatch(context.Background(), &intent.Resolution{
		Intent: &intent.Intent{Plugin: "notes", Action: "create"},
	}, "note something")
	if out.Message != failureMessage {
		t.Errorf("plugin errors must become the generic failure message, got %q", out.Message)
	}
}

func TestDispatch_PanicIsContained(t *testing.T) {
	stub := &stubPlugin{key: "notes", panics: true}
	d := newTestDispatcher(stub)

	out := d.Dispatch(context.Background(), &intent.Resolution{
		Intent: &intent.Intent{Plugin: "notes", Action: "create"},
	}, "note something")
	if out.Message != failureMessage {
		t.Errorf("panics must become the generic failure message, got %q", out.Message)
	}
}

func TestDispatch_ListDataIsBulleted(t *testing.T) {
	stub := &stubPlugin{key: "tasks", result: &Result{
		Success: true,
		Message: "You have 2 task(s):",
		Data:    []string{"buy milk", "walk dog"},
	}}
	d := newTestDispatcher(stub)

	out := d.Dispatch(context.Background(), &intent.Resolution{
		Intent: &intent.Intent{Plugin: "tasks", Action: "list"},
	}, "show my tasks")

	for _, want := range []string{"You have 2 task(s):", "• buy milk", "• walk dog"} {
		if !strings.Contains(out.Message, want) {
			t.Errorf("bulleted output missing %q, got %q", want, out.Message)
		}
	}
}

func TestDispatch_NeedsAuth(t *testing.T) {
	stub := &stubPlugin{key: "email", result: &Result{NeedsAuth: "an email account"}}
	d := newTestDispatcher(stub)

	out := d.Dispatch(context.Background(), &intent.Resolution{
		Intent: &intent.Intent{Plugin: "email", Action: "send"},
	}, "email bob hi")
	if !strings.Contains(out.Message, "an email account") {
		t.Errorf("needs-auth message missing provider, got %q", out.Message)
	}
}

func TestDispatch_NeedsAuthKeepsPluginMessage(t *testing.T) {
	stub := &stubPlugin{key: "recording", result: &Result{
		Message:   "Recording isn't set up on this device.",
		NeedsAuth: "a microphone",
	}}
	d := newTestDispatcher(stub)

	out := d.Dispatch(context.Background(), &intent.Resolution{
		Intent: &intent.Intent{Plugin: "recording", Action: "start"},
	}, "start recording")
	if out.Message != "Recording isn't set up on this device." {
		t.Errorf("plugin's own message should win, got %q", out.Message)
	}
}

func TestDispatch_ContentQueryAliasing(t *testing.T) {
	stub := &stubPlugin{key: "search", result: &Result{Success: true, Message: "ok"}}
	d := newTestDispatcher(stub)

	d.Dispatch(context.Background(), &intent.Resolution{
		Intent: &intent.Intent{Plugin: "search", Action: "search", Params: map[string]any{"content": "coffee"}},
	}, "search coffee")

	if stub.lastReq.Str("query") != "coffee" {
		t.Errorf("content should alias to query, got %+v", stub.lastReq.Args)
	}
	if stub.lastReq.Str("location") != "Portland, OR" {
		t.Errorf("search should get the ambient location, got %+v", stub.lastReq.Args)
	}
}
