package plugin

import (
	"context"
	"fmt"
	"time"

	"github.com/mcsmartbytes/smartassist/internal/store"
	"github.com/mcsmartbytes/smartassist/internal/timeparse"
)

// TasksPlugin manages the to-do list.
type TasksPlugin struct {
	store  *store.Store
	policy timeparse.Policy
	now    func() time.Time
}

// NewTasksPlugin creates the tasks plugin.
func NewTasksPlugin(s *store.Store, pol timeparse.Policy) *TasksPlugin {
	return &TasksPlugin{store: s, policy: pol, now: time.Now}
}

func (p *TasksPlugin) Key() string         { return "tasks" }
func (p *TasksPlugin) DisplayName() string { return "Tasks" }
func (p *TasksPlugin) Icon() string        { return "✅" }

func (p *TasksPlugin) Keywords() []string {
	return []string{"task", "todo", "to-do"}
}

func (p *TasksPlugin) Execute(ctx context.Context, params *Params) (*Result, error) {
	switch params.Action {
	case "create":
		content := params.Str("content")
		if content == "" {
			return &Result{Success: false, Message: "What's the task?"}, nil
		}
		// An optional due time may ride along in the raw text.
		var dueAt time.Time
		if parsed := timeparse.ParseWithPolicy(params.RawText, p.now(), p.policy); parsed.Ok() {
			dueAt = parsed.When
			content = timeparse.ExtractContent(content, parsed.Matched)
		}
		if _, err := p.store.AddTask(ctx, content, dueAt); err != nil {
			return nil, err
		}
		return &Result{Success: true, Message: fmt.Sprintf("Added task: %s", content)}, nil

	case "list":
		tasks, err := p.store.OpenTasks(ctx, 50)
		if err != nil {
			return nil, err
		}
		if len(tasks) == 0 {
			return &Result{Success: true, Message: "Your task list is empty. Nice."}, nil
		}
		items := make([]string, len(tasks))
		for i, t := range tasks {
			items[i] = t.Content
			if !t.DueAt.IsZero() {
				items[i] += " (due " + timeparse.FormatRelative(t.DueAt, p.now()) + ")"
			}
		}
		return &Result{
			Success: true,
			Message: fmt.Sprintf("You have %d open task(s):", len(tasks)),
			Data:    items,
		}, nil

	case "complete":
		phrase := params.Str("content")
		if phrase == "" {
			return &Result{Success: false, Message: "Which task did you finish?"}, nil
		}
		n, err := p.store.CompleteTaskMatching(ctx, phrase)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return &Result{Success: false, Message: fmt.Sprintf("I couldn't find an open task matching %q.", phrase)}, nil
		}
		return &Result{Success: true, Message: fmt.Sprintf("Marked %d task(s) done.", n)}, nil

	default:
		return &Result{Success: false, Message: fmt.Sprintf("Tasks can't do %q.", params.Action)}, nil
	}
}
