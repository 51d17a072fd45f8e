package plugin

import (
	"context"
	"fmt"
	"strings"

	"github.com/mcsmartbytes/smartassist/internal/intent"
	"github.com/mcsmartbytes/smartassist/internal/logging"
)

// Outcome is what the dispatcher hands back to the caller: always a
// displayable message, never an error.
type Outcome struct {
	Message string
	Action  string
	Data    any
}

// failureMessage is shown when a plugin errors or panics; the pipeline
// itself stays healthy for the next utterance.
const failureMessage = "Sorry, something went wrong doing that. Please try again."

// listingActions are the actions whose list-shaped data is flattened into a
// bulleted message.
var listingActions = map[string]bool{
	"list":  true,
	"show":  true,
	"today": true,
}

// Dispatcher routes a resolved intent to its plugin and normalizes the
// result.
type Dispatcher struct {
	registry *Registry
	log      *logging.Logger
	location string // ambient context injected into search queries
}

// NewDispatcher creates a dispatcher. location may be empty.
func NewDispatcher(registry *Registry, log *logging.Logger, location string) *Dispatcher {
	if log == nil {
		log = logging.New()
	}
	return &Dispatcher{registry: registry, log: log, location: location}
}

// Dispatch executes the resolution's intent, if any. A nil intent or an
// unregistered plugin key is treated as conversation: the resolver's own
// message passes through un-dispatched.
func (d *Dispatcher) Dispatch(ctx context.Context, res *intent.Resolution, rawText string) *Outcome {
	if res == nil {
		return &Outcome{Message: failureMessage}
	}
	if res.Intent == nil {
		return &Outcome{Message: res.Message}
	}

	p, ok := d.registry.Get(res.Intent.Plugin)
	if !ok {
		d.log.Debug("intent names unregistered plugin", "plugin", res.Intent.Plugin)
		return &Outcome{Message: res.Message}
	}

	params := d.buildParams(res.Intent, rawText)
	result := d.execute(ctx, p, params)

	out := &Outcome{Action: res.Intent.Action, Data: result.Data}
	switch {
	case result.NeedsAuth != "":
		// Plugins may explain the missing capability themselves.
		out.Message = result.Message
		if out.Message == "" {
			out.Message = fmt.Sprintf("You'll need to connect %s before I can do that.", result.NeedsAuth)
		}
	case listingActions[res.Intent.Action]:
		out.Message = bulleted(result.Message, result.Data)
	default:
		out.Message = result.Message
	}
	if out.Message == "" {
		out.Message = res.Message
	}
	if out.Message == "" {
		out.Message = "Done."
	}
	return out
}

// buildParams maps the intent's generic fields onto the plugin's expected
// shape and injects ambient context.
func (d *Dispatcher) buildParams(it *intent.Intent, rawText string) *Params {
	args := make(map[string]any, len(it.Params)+1)
	for k, v := range it.Params {
		args[k] = v
	}

	// Generic field aliases: resolvers may say content where a plugin reads
	// query, and vice versa.
	if _, ok := args["query"]; !ok {
		if c, ok := args["content"].(string); ok {
			args["query"] = c
		}
	}
	if _, ok := args["content"]; !ok {
		if q, ok := args["query"].(string); ok {
			args["content"] = q
		}
	}
	if it.Plugin == "search" && d.location != "" {
		args["location"] = d.location
	}

	return &Params{Action: it.Action, RawText: rawText, Args: args}
}

// execute invokes the plugin, converting errors and panics into a failure
// Result. Nothing a plugin does may abort the interpretation pipeline.
func (d *Dispatcher) execute(ctx context.Context, p Plugin, params *Params) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("plugin panicked", "plugin", p.Key(), "panic", r)
			result = &Result{Success: false, Message: failureMessage}
		}
	}()

	res, err := p.Execute(ctx, params)
	if err != nil {
		d.log.Warn("plugin failed", "plugin", p.Key(), "action", params.Action, "error", err)
		return &Result{Success: false, Message: failureMessage}
	}
	if res == nil {
		return &Result{Success: false, Message: failureMessage}
	}
	return res
}

// bulleted renders list-shaped data under the plugin's message.
func bulleted(message string, data any) string {
	items := stringItems(data)
	if len(items) == 0 {
		return message
	}
	var sb strings.Builder
	sb.WriteString(message)
	for _, it := range items {
		sb.WriteString("\n• ")
		sb.WriteString(it)
	}
	return sb.String()
}

func stringItems(data any) []string {
	switch v := data.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return nil
	}
}
