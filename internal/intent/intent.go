// Package intent turns a raw user utterance into a structured action. Two
// resolver strategies produce the same Intent shape: an AI-backed resolver
// asking a remote model, and a deterministic keyword cascade used when the
// model is unavailable or fails. Feature plugins never know which one ran.
package intent

import (
	"context"

	"github.com/mcsmartbytes/smartassist/internal/store"
)

// Intent is the canonical result of interpreting one utterance.
type Intent struct {
	Plugin string         // key of a registered plugin
	Action string         // plugin-specific: create, list, send, ...
	Params map[string]any // extracted fields: content, phone, listName, query, ...
}

// Resolution is one resolver's answer. Intent is nil for pure conversation;
// Message always carries something displayable.
type Resolution struct {
	Intent  *Intent
	Message string
}

// Resolver is either interpretation strategy. A nil Resolution means the
// resolver has no answer and the next strategy should run; resolvers never
// surface transport or parse errors to the caller.
type Resolver interface {
	Resolve(ctx context.Context, text string, snap *store.Snapshot) *Resolution
}

// PluginInfo is the slice of a plugin the keyword matcher needs: its key and
// keyword substrings, in registration order.
type PluginInfo struct {
	Key      string
	Keywords []string
}

// PluginLister exposes the registered plugin list to the matcher without
// coupling it to the registry implementation.
type PluginLister interface {
	ActivePlugins() []PluginInfo
}

// FallbackResolver composes resolvers in order and returns the first
// non-nil resolution. The last resolver in the chain is expected to always
// answer.
type FallbackResolver struct {
	chain []Resolver
}

// NewFallbackResolver builds a resolver chain. Untyped nil entries are
// skipped; an unconfigured AI resolver (typed nil) may also be passed
// directly, since its Resolve answers nothing on a nil receiver.
func NewFallbackResolver(resolvers ...Resolver) *FallbackResolver {
	chain := make([]Resolver, 0, len(resolvers))
	for _, r := range resolvers {
		if r != nil {
			chain = append(chain, r)
		}
	}
	return &FallbackResolver{chain: chain}
}

// Resolve tries each strategy in order.
func (f *FallbackResolver) Resolve(ctx context.Context, text string, snap *store.Snapshot) *Resolution {
	for _, r := range f.chain {
		if res := r.Resolve(ctx, text, snap); res != nil {
			return res
		}
	}
	return nil
}
