package plugin

import (
	"context"
	"fmt"

	"github.com/mcsmartbytes/smartassist/internal/store"
)

// ContactsPlugin manages the address book the SMS and email plugins resolve
// names against.
type ContactsPlugin struct {
	store *store.Store
}

// NewContactsPlugin creates the contacts plugin.
func NewContactsPlugin(s *store.Store) *ContactsPlugin {
	return &ContactsPlugin{store: s}
}

func (p *ContactsPlugin) Key() string         { return "contacts" }
func (p *ContactsPlugin) DisplayName() string { return "Contacts" }
func (p *ContactsPlugin) Icon() string        { return "👤" }

func (p *ContactsPlugin) Keywords() []string {
	return []string{"contact"}
}

func (p *ContactsPlugin) Execute(ctx context.Context, params *Params) (*Result, error) {
	switch params.Action {
	case "create":
		name := params.Str("name")
		if name == "" {
			return &Result{Success: false, Message: "What's the contact's name?"}, nil
		}
		if _, err := p.store.AddContact(ctx, name, params.Str("phone"), params.Str("email")); err != nil {
			return nil, err
		}
		return &Result{Success: true, Message: fmt.Sprintf("Saved contact %s.", name)}, nil

	case "list":
		contacts, err := p.store.Contacts(ctx)
		if err != nil {
			return nil, err
		}
		if len(contacts) == 0 {
			return &Result{Success: true, Message: "No contacts saved yet."}, nil
		}
		items := make([]string, len(contacts))
		for i, c := range contacts {
			items[i] = c.Name
			if c.Phone != "" {
				items[i] += " — " + c.Phone
			}
		}
		return &Result{
			Success: true,
			Message: fmt.Sprintf("You have %d contact(s):", len(contacts)),
			Data:    items,
		}, nil

	case "delete":
		name := params.Str("name")
		if name == "" {
			return &Result{Success: false, Message: "Which contact should I remove?"}, nil
		}
		n, err := p.store.DeleteContactMatching(ctx, name)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return &Result{Success: false, Message: fmt.Sprintf("I couldn't find a contact named %q.", name)}, nil
		}
		return &Result{Success: true, Message: fmt.Sprintf("Removed %d contact(s).", n)}, nil

	default:
		return &Result{Success: false, Message: fmt.Sprintf("Contacts can't do %q.", params.Action)}, nil
	}
}
