// Package assistant wires the interpretation pipeline together: one
// utterance in, one reply out. It fetches a data snapshot for the
// resolvers, runs the resolver chain, and dispatches the result to a
// plugin.
package assistant

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/mcsmartbytes/smartassist/internal/intent"
	"github.com/mcsmartbytes/smartassist/internal/logging"
	"github.com/mcsmartbytes/smartassist/internal/plugin"
	"github.com/mcsmartbytes/smartassist/internal/store"
)

// Reply is the assistant's answer to one utterance.
type Reply struct {
	Message string
	Action  string
	Data    any
}

// busyMessage is returned when an utterance arrives while another is still
// being handled. One utterance at a time keeps plugin side effects ordered.
const busyMessage = "One moment, I'm still working on your last request."

// Config collects the pipeline's collaborators.
type Config struct {
	Store    *store.Store
	Resolver intent.Resolver
	Plugins  *plugin.Registry
	Log      *logging.Logger
	Location string
}

// Assistant runs the full command interpretation pipeline.
type Assistant struct {
	store      *store.Store
	resolver   intent.Resolver
	dispatcher *plugin.Dispatcher
	log        *logging.Logger
	busy       atomic.Bool
}

// New creates an assistant from its parts.
func New(cfg Config) *Assistant {
	log := cfg.Log
	if log == nil {
		log = logging.New()
	}
	return &Assistant{
		store:      cfg.Store,
		resolver:   cfg.Resolver,
		dispatcher: plugin.NewDispatcher(cfg.Plugins, log, cfg.Location),
		log:        log,
	}
}

// Handle interprets one utterance and returns a reply. It never returns an
// error: resolver and plugin failures become apologetic messages so the
// conversation keeps going. A second call while one is in flight is
// rejected with a busy message.
func (a *Assistant) Handle(ctx context.Context, text string) *Reply {
	text = strings.TrimSpace(text)
	if text == "" {
		return &Reply{Message: "I didn't catch that. Could you say it again?"}
	}

	if !a.busy.CompareAndSwap(false, true) {
		return &Reply{Message: busyMessage}
	}
	defer a.busy.Store(false)

	snap := a.store.Snapshot(ctx)
	res := a.resolver.Resolve(ctx, text, snap)
	if res == nil {
		a.log.Warn("no resolver answered", "text", text)
		return &Reply{Message: "Sorry, I'm not sure what to do with that."}
	}
	if res.Intent != nil {
		a.log.Info("intent resolved", "plugin", res.Intent.Plugin, "action", res.Intent.Action)
	}

	out := a.dispatcher.Dispatch(ctx, res, text)
	return &Reply{Message: out.Message, Action: out.Action, Data: out.Data}
}
