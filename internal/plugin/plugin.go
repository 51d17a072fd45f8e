// Package plugin provides the feature plugin framework: the uniform execute
// contract every feature module implements, an insertion-ordered registry,
// and the dispatcher that routes resolved intents to plugins and normalizes
// their results into user-facing messages.
package plugin

import (
	"context"

	"github.com/mcsmartbytes/smartassist/internal/intent"
)

// Params is the parameter shape handed to a plugin's Execute. Args carries
// the resolver's extracted fields; RawText is the original utterance for
// plugins that re-parse it (reminder and calendar times).
type Params struct {
	Action  string
	RawText string
	Args    map[string]any
}

// Str returns a string argument, empty when absent or mistyped.
func (p *Params) Str(key string) string {
	if p == nil || p.Args == nil {
		return ""
	}
	s, _ := p.Args[key].(string)
	return s
}

// Result is the contract every plugin's Execute returns. Success=false is a
// user-visible message, never an error.
type Result struct {
	Success   bool
	Message   string
	Data      any
	NeedsAuth string // non-empty names the provider the user must connect
}

// Plugin is a self-contained feature handler.
type Plugin interface {
	Key() string
	DisplayName() string
	Icon() string
	Keywords() []string
	Execute(ctx context.Context, p *Params) (*Result, error)
}

// Registry holds the plugins for the process lifetime. Registration order is
// observable: the keyword cascade walks plugins in the order they were
// registered, so earlier plugins win ties.
type Registry struct {
	order   []string
	plugins map[string]Plugin
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]Plugin)}
}

// Register appends a plugin. Re-registering a key replaces the plugin but
// keeps its original position.
func (r *Registry) Register(p Plugin) {
	if _, exists := r.plugins[p.Key()]; !exists {
		r.order = append(r.order, p.Key())
	}
	r.plugins[p.Key()] = p
}

// Get retrieves a plugin by key.
func (r *Registry) Get(key string) (Plugin, bool) {
	p, ok := r.plugins[key]
	return p, ok
}

// List returns all plugins in registration order.
func (r *Registry) List() []Plugin {
	out := make([]Plugin, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.plugins[key])
	}
	return out
}

// ActivePlugins implements intent.PluginLister for the keyword cascade.
func (r *Registry) ActivePlugins() []intent.PluginInfo {
	infos := make([]intent.PluginInfo, 0, len(r.order))
	for _, key := range r.order {
		infos = append(infos, intent.PluginInfo{
			Key:      key,
			Keywords: r.plugins[key].Keywords(),
		})
	}
	return infos
}
