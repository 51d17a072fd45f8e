// Package store implements the assistant's persistence layer for notes,
// tasks, reminders, lists, contacts and calendar events, and builds the
// read-only context snapshot the AI resolver embeds in its prompt.
package store

import (
	"fmt"
	"strings"
	"time"
)

// Note is a free-form saved note.
type Note struct {
	ID        string
	Content   string
	CreatedAt time.Time
}

// Task is a to-do item.
type Task struct {
	ID        string
	Content   string
	Done      bool
	DueAt     time.Time
	CreatedAt time.Time
}

// Reminder is a piece of content with a remind time.
type Reminder struct {
	ID        string
	Content   string
	RemindAt  time.Time
	CreatedAt time.Time
}

// List is a named collection of items.
type List struct {
	ID    string
	Name  string
	Items []ListItem
}

// ListItem is one entry in a list.
type ListItem struct {
	ID      string
	ListID  string
	Content string
}

// Contact is an address-book entry.
type Contact struct {
	ID    string
	Name  string
	Phone string
	Email string
}

// Event is a calendar entry.
type Event struct {
	ID       string
	Title    string
	StartsAt time.Time
}

// Snapshot is a read-only aggregation of the user's current data. It is
// consumed by the AI resolver to ground its answers and has no lifecycle of
// its own.
type Snapshot struct {
	Notes     []Note
	Tasks     []Task
	Reminders []Reminder
	Lists     []List
	Contacts  []Contact
	Events    []Event
}

// Render flattens the snapshot into plain prompt text.
func (s *Snapshot) Render() string {
	if s == nil {
		return ""
	}
	var sb strings.Builder

	if len(s.Notes) > 0 {
		sb.WriteString("Recent notes:\n")
		for _, n := range s.Notes {
			fmt.Fprintf(&sb, "- %s\n", n.Content)
		}
	}
	if len(s.Tasks) > 0 {
		sb.WriteString("Open tasks:\n")
		for _, t := range s.Tasks {
			fmt.Fprintf(&sb, "- %s\n", t.Content)
		}
	}
	if len(s.Reminders) > 0 {
		sb.WriteString("Active reminders:\n")
		for _, r := range s.Reminders {
			fmt.Fprintf(&sb, "- %s (%s)\n", r.Content, r.RemindAt.Format("Mon Jan 2 3:04 PM"))
		}
	}
	for _, l := range s.Lists {
		fmt.Fprintf(&sb, "List %q:\n", l.Name)
		for _, it := range l.Items {
			fmt.Fprintf(&sb, "- %s\n", it.Content)
		}
	}
	if len(s.Contacts) > 0 {
		sb.WriteString("Contacts:\n")
		for _, c := range s.Contacts {
			fmt.Fprintf(&sb, "- %s", c.Name)
			if c.Phone != "" {
				fmt.Fprintf(&sb, " (%s)", c.Phone)
			}
			sb.WriteString("\n")
		}
	}
	if len(s.Events) > 0 {
		sb.WriteString("Upcoming events:\n")
		for _, e := range s.Events {
			fmt.Fprintf(&sb, "- %s (%s)\n", e.Title, e.StartsAt.Format("Mon Jan 2 3:04 PM"))
		}
	}
	return sb.String()
}
