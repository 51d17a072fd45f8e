package plugin

import (
	"context"
	"fmt"

	"github.com/mcsmartbytes/smartassist/internal/store"
)

// NotesPlugin saves and recalls free-form notes.
type NotesPlugin struct {
	store *store.Store
}

// NewNotesPlugin creates the notes plugin.
func NewNotesPlugin(s *store.Store) *NotesPlugin {
	return &NotesPlugin{store: s}
}

func (p *NotesPlugin) Key() string         { return "notes" }
func (p *NotesPlugin) DisplayName() string { return "Notes" }
func (p *NotesPlugin) Icon() string        { return "📝" }

func (p *NotesPlugin) Keywords() []string {
	return []string{"note", "remember"}
}

func (p *NotesPlugin) Execute(ctx context.Context, params *Params) (*Result, error) {
	switch params.Action {
	case "create":
		content := params.Str("content")
		if content == "" {
			return &Result{Success: false, Message: "What should the note say?"}, nil
		}
		if _, err := p.store.AddNote(ctx, content); err != nil {
			return nil, err
		}
		return &Result{Success: true, Message: fmt.Sprintf("Noted: %q", content)}, nil

	case "list":
		notes, err := p.store.RecentNotes(ctx, 20)
		if err != nil {
			return nil, err
		}
		if len(notes) == 0 {
			return &Result{Success: true, Message: "You don't have any notes yet."}, nil
		}
		items := make([]string, len(notes))
		for i, n := range notes {
			items[i] = n.Content
		}
		return &Result{
			Success: true,
			Message: fmt.Sprintf("You have %d notes:", len(notes)),
			Data:    items,
		}, nil

	case "delete":
		phrase := params.Str("content")
		if phrase == "" {
			return &Result{Success: false, Message: "Which note should I delete?"}, nil
		}
		n, err := p.store.DeleteNoteMatching(ctx, phrase)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return &Result{Success: false, Message: fmt.Sprintf("I couldn't find a note about %q.", phrase)}, nil
		}
		return &Result{Success: true, Message: fmt.Sprintf("Deleted %d note(s).", n)}, nil

	case "clear":
		n, err := p.store.ClearNotes(ctx)
		if err != nil {
			return nil, err
		}
		return &Result{Success: true, Message: fmt.Sprintf("Cleared %d note(s).", n)}, nil

	default:
		return &Result{Success: false, Message: fmt.Sprintf("Notes can't do %q.", params.Action)}, nil
	}
}
