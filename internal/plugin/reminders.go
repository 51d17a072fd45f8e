package plugin

import (
	"context"
	"fmt"
	"time"

	"github.com/mcsmartbytes/smartassist/internal/store"
	"github.com/mcsmartbytes/smartassist/internal/timeparse"
)

// RemindersPlugin creates and lists reminders. The remind time comes from
// re-parsing the raw utterance; without a recognizable expression the
// default is one hour from now.
type RemindersPlugin struct {
	store  *store.Store
	policy timeparse.Policy
	now    func() time.Time
}

// NewRemindersPlugin creates the reminders plugin.
func NewRemindersPlugin(s *store.Store, pol timeparse.Policy) *RemindersPlugin {
	return &RemindersPlugin{store: s, policy: pol, now: time.Now}
}

func (p *RemindersPlugin) Key() string         { return "reminders" }
func (p *RemindersPlugin) DisplayName() string { return "Reminders" }
func (p *RemindersPlugin) Icon() string        { return "⏰" }

func (p *RemindersPlugin) Keywords() []string {
	return []string{"remind", "reminder"}
}

func (p *RemindersPlugin) Execute(ctx context.Context, params *Params) (*Result, error) {
	switch params.Action {
	case "create":
		now := p.now()
		parsed := timeparse.ParseWithPolicy(params.RawText, now, p.policy)

		content := params.Str("content")
		if content == "" {
			content = timeparse.ExtractContent(params.RawText, parsed.Matched)
		}
		if content == "" {
			return &Result{Success: false, Message: "What should I remind you about?"}, nil
		}

		remindAt := now.Add(time.Hour)
		if parsed.Ok() {
			remindAt = parsed.When
		}

		if _, err := p.store.AddReminder(ctx, content, remindAt); err != nil {
			return nil, err
		}
		return &Result{
			Success: true,
			Message: fmt.Sprintf("I'll remind you to %s %s.", content, timeparse.FormatRelative(remindAt, now)),
		}, nil

	case "list":
		reminders, err := p.store.ActiveReminders(ctx, p.now())
		if err != nil {
			return nil, err
		}
		if len(reminders) == 0 {
			return &Result{Success: true, Message: "No active reminders."}, nil
		}
		now := p.now()
		items := make([]string, len(reminders))
		for i, r := range reminders {
			items[i] = fmt.Sprintf("%s — %s", r.Content, timeparse.FormatRelative(r.RemindAt, now))
		}
		return &Result{
			Success: true,
			Message: fmt.Sprintf("You have %d reminder(s):", len(reminders)),
			Data:    items,
		}, nil

	default:
		return &Result{Success: false, Message: fmt.Sprintf("Reminders can't do %q.", params.Action)}, nil
	}
}
