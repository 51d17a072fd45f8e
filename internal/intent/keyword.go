package intent

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mcsmartbytes/smartassist/internal/store"
	"github.com/mcsmartbytes/smartassist/internal/timeparse"
)

// KeywordResolver is the deterministic fallback: an ordered cascade of
// keyword and regex rules. Plugins are tried in registration order and each
// plugin's branches in declaration order; the first branch that produces a
// non-empty extraction wins. There is no scoring, so ordering is part of the
// observable contract.
type KeywordResolver struct {
	plugins PluginLister
	rules   map[string][]Branch
	policy  timeparse.Policy
	now     func() time.Time
}

// Branch is one (predicate, extractor) rule for a plugin. Extract returns
// false when the branch does not apply, letting the cascade continue.
type Branch struct {
	Action  string
	Extract func(u *Utterance) (map[string]any, bool)
}

// Utterance carries one parse attempt through the cascade.
type Utterance struct {
	Text   string
	Lower  string
	Now    time.Time
	Policy timeparse.Policy
}

// NewKeywordResolver builds the resolver with the default rule set.
func NewKeywordResolver(plugins PluginLister, pol timeparse.Policy) *KeywordResolver {
	return &KeywordResolver{
		plugins: plugins,
		rules:   defaultRules(),
		policy:  pol,
		now:     time.Now,
	}
}

// Resolve implements Resolver. It always answers: if no plugin branch
// matches, the conversational tier does.
func (r *KeywordResolver) Resolve(ctx context.Context, text string, snap *store.Snapshot) *Resolution {
	u := &Utterance{
		Text:   strings.TrimSpace(text),
		Lower:  strings.ToLower(strings.TrimSpace(text)),
		Now:    r.now(),
		Policy: r.policy,
	}
	if u.Text == "" {
		return &Resolution{Message: "I didn't catch that."}
	}

	for _, p := range r.plugins.ActivePlugins() {
		branches, ok := r.rules[p.Key]
		if !ok || !keywordHit(u.Lower, p.Keywords) {
			continue
		}
		for _, b := range branches {
			params, ok := b.Extract(u)
			if !ok {
				continue
			}
			return &Resolution{Intent: &Intent{Plugin: p.Key, Action: b.Action, Params: params}}
		}
	}

	return r.conversational(u)
}

func keywordHit(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// conversational is the tier below the plugin cascade: help, greetings,
// thanks, bare questions routed to search, and finally a save-as-note offer
// carrying no intent.
func (r *KeywordResolver) conversational(u *Utterance) *Resolution {
	switch {
	case strings.Contains(u.Lower, "help"):
		return &Resolution{Message: r.helpMessage()}
	case greetingRe.MatchString(u.Lower):
		return &Resolution{Message: "Hi! Tell me what you need, like \"remind me to call John in 30 minutes\" or \"add milk to my shopping list\"."}
	case strings.Contains(u.Lower, "thank"):
		return &Resolution{Message: "You're welcome!"}
	case strings.HasSuffix(u.Text, "?"):
		query := strings.TrimSpace(strings.TrimSuffix(u.Text, "?"))
		if query != "" {
			return &Resolution{Intent: &Intent{
				Plugin: "search",
				Action: "search",
				Params: map[string]any{"query": query},
			}}
		}
	}
	return &Resolution{Message: "I'm not sure what to do with that. Would you like me to save it as a note?"}
}

func (r *KeywordResolver) helpMessage() string {
	var sb strings.Builder
	sb.WriteString("Here's what I can do:\n")
	for _, p := range r.plugins.ActivePlugins() {
		fmt.Fprintf(&sb, "• %s — try words like %s\n", p.Key, strings.Join(p.Keywords, ", "))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// ── rule definitions ───────────────────────────────────────────────────

var (
	greetingRe = regexp.MustCompile(`^(hi|hey|hello|good (morning|afternoon|evening))\b`)

	noteCreateRe    = regexp.MustCompile(`(?i)^(?:please\s+)?(?:take|make)?\s*(?:a\s+)?note(?:\s+(?:that|to self))?[:,]?\s*(.*)$`)
	rememberRe      = regexp.MustCompile(`(?i)^remember(?:\s+that)?\s+(.+)$`)
	noteDeleteRe    = regexp.MustCompile(`(?i)delete (?:the |my )?note(?:s)?(?: about| containing)?\s+(.+)$`)
	taskCreateRe    = regexp.MustCompile(`(?i)(?:add|create|new)\s+(?:a\s+)?(?:task|todo|to-do)(?:\s+to)?[:,]?\s*(.+)$`)
	taskCompleteRe  = regexp.MustCompile(`(?i)(?:complete|finish|done with|mark)\s+(?:the\s+|my\s+)?(?:task\s+)?(.+?)(?:\s+(?:task|as done|done))?$`)
	listCreateRe    = regexp.MustCompile(`(?i)(?:create|make|start)\s+(?:a\s+|new\s+)*(.+?)\s+list\b`)
	listCreateAltRe = regexp.MustCompile(`(?i)(?:create|make|start)\s+(?:a\s+|new\s+)*list(?:\s+(?:called|named))?\s+(.+)$`)
	listAddRe       = regexp.MustCompile(`(?i)add\s+(.+?)\s+to\s+(?:my\s+|the\s+)?(.+?)\s+list\b`)
	listShowRe      = regexp.MustCompile(`(?i)(?:show|what'?s on|what is on)\s+(?:my\s+|the\s+)?(.+?)\s+list\b`)
	contactAddRe    = regexp.MustCompile(`(?i)(?:add|create|new|save)\s+(?:a\s+)?contact(?:\s+(?:named|called|for))?\s+([A-Za-z]+)(?:\D*?(\+?\d[\d\s\-().]{5,}\d))?`)
	contactDelRe    = regexp.MustCompile(`(?i)(?:delete|remove)\s+(?:the\s+)?contact\s+(.+)$`)
	calendarAddRe   = regexp.MustCompile(`(?i)^(?:add|schedule|create|set up|put)\s+(?:an?\s+)?(.+?)(?:\s+(?:to|on|in)\s+(?:my\s+)?calendar)?$`)
	smsPhoneRe      = regexp.MustCompile(`(?i)\b(?:text|sms|message)\s+(\+?\d[\d\s\-().]{5,}\d)\s+(.+)$`)
	smsNameRe       = regexp.MustCompile(`(?i)\b(?:text|sms|message)\s+(\S+)\s+(.+)$`)
	smsSendToRe     = regexp.MustCompile(`(?i)send\s+(?:a\s+)?(?:text|sms|message)\s+to\s+(\S+)\s+(?:saying\s+|that says\s+)?(.+)$`)
	emailSendRe     = regexp.MustCompile(`(?i)\b(?:email|mail)\s+([A-Za-z@.\-_]+)\s+(?:about\s+|saying\s+)?(.+)$`)
	searchPrefixRe  = regexp.MustCompile(`(?i)^(?:search(?:\s+for)?|look up|google|find out(?:\s+about)?)\s+(.+)$`)
)

func defaultRules() map[string][]Branch {
	return map[string][]Branch{
		"notes": {
			{Action: "clear", Extract: func(u *Utterance) (map[string]any, bool) {
				if strings.Contains(u.Lower, "clear") || strings.Contains(u.Lower, "delete all") {
					return map[string]any{}, true
				}
				return nil, false
			}},
			{Action: "delete", Extract: func(u *Utterance) (map[string]any, bool) {
				if m := noteDeleteRe.FindStringSubmatch(u.Text); m != nil {
					return map[string]any{"content": strings.TrimSpace(m[1])}, true
				}
				return nil, false
			}},
			{Action: "list", Extract: listingPredicate},
			{Action: "create", Extract: func(u *Utterance) (map[string]any, bool) {
				if m := rememberRe.FindStringSubmatch(u.Text); m != nil {
					return map[string]any{"content": strings.TrimSpace(m[1])}, true
				}
				if m := noteCreateRe.FindStringSubmatch(u.Text); m != nil && strings.TrimSpace(m[1]) != "" {
					return map[string]any{"content": strings.TrimSpace(m[1])}, true
				}
				return nil, false
			}},
		},

		"reminders": {
			{Action: "list", Extract: listingPredicate},
			{Action: "create", Extract: func(u *Utterance) (map[string]any, bool) {
				parsed := timeparse.ParseWithPolicy(u.Text, u.Now, u.Policy)
				content := timeparse.ExtractContent(u.Text, parsed.Matched)
				if content == "" {
					return nil, false
				}
				return map[string]any{"content": content}, true
			}},
		},

		"tasks": {
			{Action: "list", Extract: listingPredicate},
			{Action: "complete", Extract: func(u *Utterance) (map[string]any, bool) {
				if !strings.Contains(u.Lower, "complete") && !strings.Contains(u.Lower, "finish") &&
					!strings.Contains(u.Lower, "done") && !strings.Contains(u.Lower, "mark") {
					return nil, false
				}
				if m := taskCompleteRe.FindStringSubmatch(u.Text); m != nil && strings.TrimSpace(m[1]) != "" {
					return map[string]any{"content": strings.TrimSpace(m[1])}, true
				}
				return nil, false
			}},
			{Action: "create", Extract: func(u *Utterance) (map[string]any, bool) {
				if m := taskCreateRe.FindStringSubmatch(u.Text); m != nil && strings.TrimSpace(m[1]) != "" {
					return map[string]any{"content": strings.TrimSpace(m[1])}, true
				}
				return nil, false
			}},
		},

		"lists": {
			{Action: "add", Extract: func(u *Utterance) (map[string]any, bool) {
				if m := listAddRe.FindStringSubmatch(u.Text); m != nil {
					return map[string]any{
						"item":     strings.TrimSpace(m[1]),
						"listName": strings.TrimSpace(m[2]),
					}, true
				}
				return nil, false
			}},
			{Action: "create", Extract: func(u *Utterance) (map[string]any, bool) {
				if m := listCreateRe.FindStringSubmatch(u.Text); m != nil {
					return map[string]any{"listName": strings.TrimSpace(m[1])}, true
				}
				if m := listCreateAltRe.FindStringSubmatch(u.Text); m != nil {
					return map[string]any{"listName": strings.TrimSpace(m[1])}, true
				}
				return nil, false
			}},
			{Action: "list", Extract: func(u *Utterance) (map[string]any, bool) {
				if strings.Contains(u.Lower, "my lists") || strings.Contains(u.Lower, "all lists") ||
					strings.Contains(u.Lower, "what lists") {
					return map[string]any{}, true
				}
				return nil, false
			}},
			{Action: "show", Extract: func(u *Utterance) (map[string]any, bool) {
				if m := listShowRe.FindStringSubmatch(u.Text); m != nil {
					return map[string]any{"listName": strings.TrimSpace(m[1])}, true
				}
				return nil, false
			}},
		},

		"contacts": {
			{Action: "delete", Extract: func(u *Utterance) (map[string]any, bool) {
				if m := contactDelRe.FindStringSubmatch(u.Text); m != nil {
					return map[string]any{"name": strings.TrimSpace(m[1])}, true
				}
				return nil, false
			}},
			{Action: "create", Extract: func(u *Utterance) (map[string]any, bool) {
				if m := contactAddRe.FindStringSubmatch(u.Text); m != nil {
					params := map[string]any{"name": m[1]}
					if m[2] != "" {
						params["phone"] = strings.TrimSpace(m[2])
					}
					return params, true
				}
				return nil, false
			}},
			{Action: "list", Extract: listingPredicate},
		},

		"calendar": {
			{Action: "today", Extract: func(u *Utterance) (map[string]any, bool) {
				if strings.Contains(u.Lower, "today") {
					return map[string]any{}, true
				}
				return nil, false
			}},
			{Action: "list", Extract: listingPredicate},
			{Action: "add", Extract: func(u *Utterance) (map[string]any, bool) {
				// Weekday words resolve through the same rule as reminders.
				parsed := timeparse.ParseWithPolicy(u.Text, u.Now, u.Policy)
				title := timeparse.ExtractContent(u.Text, parsed.Matched)
				if m := calendarAddRe.FindStringSubmatch(title); m != nil {
					title = m[1]
				}
				title = strings.TrimSpace(title)
				if title == "" {
					return nil, false
				}
				return map[string]any{"title": title}, true
			}},
		},

		"sms": {
			{Action: "send", Extract: func(u *Utterance) (map[string]any, bool) {
				if m := smsPhoneRe.FindStringSubmatch(u.Text); m != nil {
					return map[string]any{
						"phone": strings.TrimSpace(m[1]),
						"body":  strings.TrimSpace(m[2]),
					}, true
				}
				if m := smsSendToRe.FindStringSubmatch(u.Text); m != nil {
					return map[string]any{
						"contactName": strings.TrimSpace(m[1]),
						"body":        strings.TrimSpace(m[2]),
					}, true
				}
				if m := smsNameRe.FindStringSubmatch(u.Text); m != nil {
					return map[string]any{
						"contactName": strings.TrimSpace(m[1]),
						"body":        strings.TrimSpace(m[2]),
					}, true
				}
				return nil, false
			}},
		},

		"email": {
			{Action: "send", Extract: func(u *Utterance) (map[string]any, bool) {
				if m := emailSendRe.FindStringSubmatch(u.Text); m != nil {
					return map[string]any{
						"to":   strings.TrimSpace(m[1]),
						"body": strings.TrimSpace(m[2]),
					}, true
				}
				return nil, false
			}},
		},

		"search": {
			{Action: "search", Extract: func(u *Utterance) (map[string]any, bool) {
				if m := searchPrefixRe.FindStringSubmatch(u.Text); m != nil {
					return map[string]any{"query": strings.TrimSpace(m[1])}, true
				}
				if strings.HasPrefix(u.Lower, "what is ") || strings.HasPrefix(u.Lower, "who is ") ||
					strings.Contains(u.Lower, "weather") {
					return map[string]any{"query": strings.TrimSuffix(u.Text, "?")}, true
				}
				return nil, false
			}},
		},

		"recording": {
			{Action: "stop", Extract: func(u *Utterance) (map[string]any, bool) {
				if strings.Contains(u.Lower, "stop") || strings.Contains(u.Lower, "end") {
					return map[string]any{}, true
				}
				return nil, false
			}},
			{Action: "start", Extract: func(u *Utterance) (map[string]any, bool) {
				if strings.Contains(u.Lower, "start") || strings.Contains(u.Lower, "begin") ||
					strings.Contains(u.Lower, "record a") || strings.HasPrefix(u.Lower, "record") {
					return map[string]any{}, true
				}
				return nil, false
			}},
			{Action: "list", Extract: listingPredicate},
		},
	}
}

// listingPredicate is the shared "show me my things" branch.
func listingPredicate(u *Utterance) (map[string]any, bool) {
	if strings.Contains(u.Lower, "show") || strings.Contains(u.Lower, "list my") ||
		strings.Contains(u.Lower, "what are my") || strings.Contains(u.Lower, "what's my") ||
		strings.Contains(u.Lower, "see my") {
		return map[string]any{}, true
	}
	return nil, false
}
