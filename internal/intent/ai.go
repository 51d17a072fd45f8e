package intent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kaptinlin/jsonrepair"

	"github.com/mcsmartbytes/smartassist/internal/logging"
	"github.com/mcsmartbytes/smartassist/internal/store"
)

// AIConfig configures the AI-backed resolver.
type AIConfig struct {
	URL     string        // provider endpoint, empty disables the resolver
	Token   string        // bearer token, optional
	Model   string        // provider-specific model name, optional
	Timeout time.Duration // per-request ceiling, defaults to 30s

	// Circuit breaker knobs; zero values take defaults.
	FailureThreshold int
	RecoveryTimeout  time.Duration
}

// AIResolver asks a remote language model for a structured action. Every
// transport, status or parse failure resolves to nil so the keyword cascade
// can take over; nothing from this resolver ever reaches the user as an
// error.
type AIResolver struct {
	cfg     AIConfig
	client  *http.Client
	breaker *providerBreaker
	log     *logging.Logger
}

// NewAIResolver creates the resolver. Returns nil when no endpoint is
// configured, which the fallback chain treats as "not present".
func NewAIResolver(cfg AIConfig, log *logging.Logger) *AIResolver {
	if cfg.URL == "" {
		return nil
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if log == nil {
		log = logging.New()
	}
	return &AIResolver{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: newProviderBreaker(cfg.FailureThreshold, cfg.RecoveryTimeout),
		log:     log,
	}
}

// providerRequest is the wire format sent to the provider.
type providerRequest struct {
	SystemPrompt string `json:"systemPrompt"`
	UserMessage  string `json:"userMessage"`
	Model        string `json:"model,omitempty"`
}

// modelReply is the strict JSON contract expected back from the model.
type modelReply struct {
	Message string         `json:"message"`
	Action  string         `json:"action"`
	Params  map[string]any `json:"params"`
}

// Resolve implements Resolver. A nil receiver resolves nothing, so the
// result of NewAIResolver can go straight into a fallback chain even when
// no endpoint was configured.
func (r *AIResolver) Resolve(ctx context.Context, text string, snap *store.Snapshot) *Resolution {
	if r == nil {
		return nil
	}
	if !r.breaker.allow() {
		r.log.Debug("AI provider circuit open, skipping")
		return nil
	}

	raw, err := r.complete(ctx, text, snap)
	if err != nil {
		r.breaker.recordFailure()
		r.log.Warn("AI resolve failed, falling back", "error", err)
		return nil
	}
	r.breaker.recordSuccess()

	reply, ok := parseModelReply(raw)
	if !ok {
		r.log.Warn("AI response unparseable, falling back", "len", len(raw))
		return nil
	}

	if reply.Action == "" || reply.Action == actionConversation {
		return &Resolution{Message: reply.Message}
	}
	target, known := actionMap[strings.ToLower(reply.Action)]
	if !known {
		// Unknown action names degrade to conversation, never to an error.
		r.log.Debug("unknown AI action", "action", reply.Action)
		return &Resolution{Message: reply.Message}
	}

	params := reply.Params
	if params == nil {
		params = map[string]any{}
	}
	return &Resolution{
		Intent:  &Intent{Plugin: target.Plugin, Action: target.Action, Params: params},
		Message: reply.Message,
	}
}

// complete performs the single provider round trip.
func (r *AIResolver) complete(ctx context.Context, text string, snap *store.Snapshot) (string, error) {
	body, err := json.Marshal(providerRequest{
		SystemPrompt: r.systemPrompt(snap),
		UserMessage:  text,
		Model:        r.cfg.Model,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.cfg.Token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("provider error %d: %s", resp.StatusCode, string(respBody))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	return string(raw), nil
}

// systemPrompt enumerates the closed action set and embeds the context
// snapshot as plain text.
func (r *AIResolver) systemPrompt(snap *store.Snapshot) string {
	var sb strings.Builder
	sb.WriteString("You are the intent classifier for a personal assistant.\n")
	sb.WriteString("Convert the user's utterance into exactly one JSON object. Output ONLY JSON, no markdown, no explanations.\n\n")
	sb.WriteString("OUTPUT FORMAT:\n")
	sb.WriteString(`{"message": "<short confirmation to show the user>", "action": "<one of the actions below>", "params": { ... }}`)
	sb.WriteString("\n\nACTIONS (canonical, snake_case):\n")
	for _, name := range ActionNames() {
		sb.WriteString("- " + name + "\n")
	}
	sb.WriteString("\nPARAMS by action: content (notes/tasks/reminders), listName and item (lists), ")
	sb.WriteString("name/phone/email (contacts), title (calendar), query (search), ")
	sb.WriteString("to/subject/body (email), phone or contactName plus body (sms).\n")
	sb.WriteString("Use \"conversation\" when no action applies. Never invent data the user did not say.\n")

	if ctx := snap.Render(); ctx != "" {
		sb.WriteString("\nCURRENT USER DATA:\n")
		sb.WriteString(ctx)
	}
	return sb.String()
}

// parseModelReply extracts the first top-level JSON object from the model
// output, defensively against prose wrapping, and repairs near-JSON before
// giving up.
func parseModelReply(raw string) (*modelReply, bool) {
	block, ok := firstJSONObject(raw)
	if !ok {
		return nil, false
	}

	var reply modelReply
	if err := json.Unmarshal([]byte(block), &reply); err == nil {
		return &reply, true
	}

	repaired, err := jsonrepair.JSONRepair(block)
	if err != nil {
		return nil, false
	}
	if err := json.Unmarshal([]byte(repaired), &reply); err != nil {
		return nil, false
	}
	return &reply, true
}

// firstJSONObject returns the first balanced top-level {...} block,
// honoring string literals and escapes.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	// Unterminated object: hand the tail to the repairer.
	return s[start:], true
}
