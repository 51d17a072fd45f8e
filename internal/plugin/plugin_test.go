package plugin

import (
	"context"
	"testing"
)

// stubPlugin is a minimal plugin for registry and dispatcher tests.
type stubPlugin struct {
	key     string
	result  *Result
	err     error
	panics  bool
	lastReq *Params
}

func (s *stubPlugin) Key() string         { return s.key }
func (s *stubPlugin) DisplayName() string { return s.key }
func (s *stubPlugin) Icon() string        { return "" }
func (s *stubPlugin) Keywords() []string  { return []string{s.key} }

func (s *stubPlugin) Execute(ctx context.Context, p *Params) (*Result, error) {
	s.lastReq = p
	if s.panics {
		panic("stub exploded")
	}
	return s.result, s.err
}

func TestRegistry_OrderAndReplace(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubPlugin{key: "alpha"})
	r.Register(&stubPlugin{key: "beta"})
	r.Register(&stubPlugin{key: "gamma"})

	infos := r.ActivePlugins()
	want := []string{"alpha", "beta", "gamma"}
	if len(infos) != len(want) {
		t.Fatalf("expected %d plugins, got %d", len(want), len(infos))
	}
	for i, key := range want {
		if infos[i].Key != key {
			t.Errorf("position %d: got %s, want %s", i, infos[i].Key, key)
		}
	}

	// Re-registering keeps the original slot.
	replacement := &stubPlugin{key: "beta"}
	r.Register(replacement)
	if got := r.ActivePlugins(); len(got) != 3 || got[1].Key != "beta" {
		t.Errorf("re-registration must keep position, got %+v", got)
	}
	if p, _ := r.Get("beta"); p != Plugin(replacement) {
		t.Error("re-registration must replace the plugin")
	}

	if _, ok := r.Get("missing"); ok {
		t.Error("Get should miss for unknown keys")
	}
}

func TestParams_Str(t *testing.T) {
	p := &Params{Args: map[string]any{"content": "milk", "count": 3}}
	if p.Str("content") != "milk" {
		t.Errorf("Str(content) = %q", p.Str("content"))
	}
	if p.Str("count") != "" {
		t.Error("non-string args should read as empty")
	}
	if p.Str("absent") != "" {
		t.Error("missing args should read as empty")
	}
	var nilParams *Params
	if nilParams.Str("anything") != "" {
		t.Error("nil receiver should read as empty")
	}
}
