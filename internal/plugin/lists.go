package plugin

import (
	"context"
	"fmt"

	"github.com/mcsmartbytes/smartassist/internal/store"
)

// ListsPlugin manages named lists (shopping, packing, ...).
type ListsPlugin struct {
	store *store.Store
}

// NewListsPlugin creates the lists plugin.
func NewListsPlugin(s *store.Store) *ListsPlugin {
	return &ListsPlugin{store: s}
}

func (p *ListsPlugin) Key() string         { return "lists" }
func (p *ListsPlugin) DisplayName() string { return "Lists" }
func (p *ListsPlugin) Icon() string        { return "🛒" }

func (p *ListsPlugin) Keywords() []string {
	return []string{"list", "shopping"}
}

func (p *ListsPlugin) Execute(ctx context.Context, params *Params) (*Result, error) {
	switch params.Action {
	case "create":
		name := params.Str("listName")
		if name == "" {
			return &Result{Success: false, Message: "What should the list be called?"}, nil
		}
		if _, err := p.store.CreateList(ctx, name); err != nil {
			return nil, err
		}
		return &Result{Success: true, Message: fmt.Sprintf("Created the %s list.", name)}, nil

	case "add":
		name := params.Str("listName")
		item := params.Str("item")
		if name == "" || item == "" {
			return &Result{Success: false, Message: "Tell me the item and the list, like \"add milk to my shopping list\"."}, nil
		}
		if _, err := p.store.AddListItem(ctx, name, item); err != nil {
			return nil, err
		}
		return &Result{Success: true, Message: fmt.Sprintf("Added %s to the %s list.", item, name)}, nil

	case "show":
		name := params.Str("listName")
		if name == "" {
			return &Result{Success: false, Message: "Which list?"}, nil
		}
		l, err := p.store.FindList(ctx, name)
		if err != nil {
			return nil, err
		}
		if l == nil {
			return &Result{Success: false, Message: fmt.Sprintf("There's no %s list yet.", name)}, nil
		}
		if len(l.Items) == 0 {
			return &Result{Success: true, Message: fmt.Sprintf("The %s list is empty.", l.Name)}, nil
		}
		items := make([]string, len(l.Items))
		for i, it := range l.Items {
			items[i] = it.Content
		}
		return &Result{
			Success: true,
			Message: fmt.Sprintf("%s (%d items):", l.Name, len(items)),
			Data:    items,
		}, nil

	case "list":
		lists, err := p.store.Lists(ctx)
		if err != nil {
			return nil, err
		}
		if len(lists) == 0 {
			return &Result{Success: true, Message: "You don't have any lists yet."}, nil
		}
		items := make([]string, len(lists))
		for i, l := range lists {
			items[i] = fmt.Sprintf("%s (%d items)", l.Name, len(l.Items))
		}
		return &Result{Success: true, Message: "Your lists:", Data: items}, nil

	default:
		return &Result{Success: false, Message: fmt.Sprintf("Lists can't do %q.", params.Action)}, nil
	}
}
