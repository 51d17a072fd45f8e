package intent

// actionConversation is the sentinel for chat with no dispatch.
const actionConversation = "conversation"

// actionTarget maps one model action name to a plugin operation.
type actionTarget struct {
	Plugin string
	Action string
}

// actionMap is the closed set of action names the AI provider may return.
// It must stay in sync with the plugin registry's action names; anything
// outside it degrades to conversation, never to an error.
var actionMap = map[string]actionTarget{
	"note_create":     {"notes", "create"},
	"note_list":       {"notes", "list"},
	"note_delete":     {"notes", "delete"},
	"note_clear":      {"notes", "clear"},
	"reminder_create": {"reminders", "create"},
	"reminder_list":   {"reminders", "list"},
	"task_create":     {"tasks", "create"},
	"task_list":       {"tasks", "list"},
	"task_complete":   {"tasks", "complete"},
	"list_create":     {"lists", "create"},
	"list_show":       {"lists", "show"},
	"list_add":        {"lists", "add"},
	"list_list":       {"lists", "list"},
	"contact_create":  {"contacts", "create"},
	"contact_list":    {"contacts", "list"},
	"contact_delete":  {"contacts", "delete"},
	"calendar_add":    {"calendar", "add"},
	"calendar_today":  {"calendar", "today"},
	"calendar_list":   {"calendar", "list"},
	"search":          {"search", "search"},
	"email_send":      {"email", "send"},
	"sms_send":        {"sms", "send"},
	"recording_start": {"recording", "start"},
	"recording_stop":  {"recording", "stop"},
	"recording_list":  {"recording", "list"},
}

// ActionNames returns the legal action names in a stable order for the
// system prompt.
func ActionNames() []string {
	names := []string{
		"note_create", "note_list", "note_delete", "note_clear",
		"reminder_create", "reminder_list",
		"task_create", "task_list", "task_complete",
		"list_create", "list_show", "list_add", "list_list",
		"contact_create", "contact_list", "contact_delete",
		"calendar_add", "calendar_today", "calendar_list",
		"search",
		"email_send", "sms_send",
		"recording_start", "recording_stop", "recording_list",
		actionConversation,
	}
	return names
}
