package plugin

import (
	"context"
	"fmt"
	"time"

	"github.com/mcsmartbytes/smartassist/internal/store"
	"github.com/mcsmartbytes/smartassist/internal/timeparse"
)

// CalendarPlugin manages calendar events. Event times come from re-parsing
// the raw utterance with the same weekday rules the reminder path uses.
type CalendarPlugin struct {
	store  *store.Store
	policy timeparse.Policy
	now    func() time.Time
}

// NewCalendarPlugin creates the calendar plugin.
func NewCalendarPlugin(s *store.Store, pol timeparse.Policy) *CalendarPlugin {
	return &CalendarPlugin{store: s, policy: pol, now: time.Now}
}

func (p *CalendarPlugin) Key() string         { return "calendar" }
func (p *CalendarPlugin) DisplayName() string { return "Calendar" }
func (p *CalendarPlugin) Icon() string        { return "📅" }

func (p *CalendarPlugin) Keywords() []string {
	return []string{"calendar", "meeting", "appointment", "schedule", "event"}
}

func (p *CalendarPlugin) Execute(ctx context.Context, params *Params) (*Result, error) {
	now := p.now()
	switch params.Action {
	case "add":
		title := params.Str("title")
		if title == "" {
			title = params.Str("content")
		}
		if title == "" {
			return &Result{Success: false, Message: "What's the event?"}, nil
		}

		startsAt := now.Add(time.Hour)
		if parsed := timeparse.ParseWithPolicy(params.RawText, now, p.policy); parsed.Ok() {
			startsAt = parsed.When
		}
		if _, err := p.store.AddEvent(ctx, title, startsAt); err != nil {
			return nil, err
		}
		return &Result{
			Success: true,
			Message: fmt.Sprintf("Scheduled %q %s.", title, timeparse.FormatRelative(startsAt, now)),
		}, nil

	case "today":
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		events, err := p.store.EventsBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1))
		if err != nil {
			return nil, err
		}
		if len(events) == 0 {
			return &Result{Success: true, Message: "Nothing on your calendar today."}, nil
		}
		items := make([]string, len(events))
		for i, e := range events {
			items[i] = fmt.Sprintf("%s at %s", e.Title, e.StartsAt.Format("3:04 PM"))
		}
		return &Result{Success: true, Message: "Today:", Data: items}, nil

	case "list":
		events, err := p.store.EventsBetween(ctx, now, now.AddDate(0, 0, 14))
		if err != nil {
			return nil, err
		}
		if len(events) == 0 {
			return &Result{Success: true, Message: "Nothing coming up in the next two weeks."}, nil
		}
		items := make([]string, len(events))
		for i, e := range events {
			items[i] = fmt.Sprintf("%s — %s", e.Title, timeparse.FormatRelative(e.StartsAt, now))
		}
		return &Result{Success: true, Message: "Coming up:", Data: items}, nil

	default:
		return &Result{Success: false, Message: fmt.Sprintf("Calendar can't do %q.", params.Action)}, nil
	}
}
