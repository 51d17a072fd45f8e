package plugin

import (
	"github.com/mcsmartbytes/smartassist/internal/store"
	"github.com/mcsmartbytes/smartassist/internal/timeparse"
)

// Collaborators holds the outbound side channels plugins may use. Any of
// the fields may be nil; plugins degrade to a helpful message instead.
type Collaborators struct {
	Mailer    Mailer
	Messenger Messenger
	Recorder  Recorder
}

// NewDefaultRegistry creates a registry with every built-in plugin
// registered. Registration order decides keyword precedence, so it is
// part of the observable behavior and should not be reshuffled.
func NewDefaultRegistry(s *store.Store, pol timeparse.Policy, search *SearchConfig, collab Collaborators) *Registry {
	r := NewRegistry()

	r.Register(NewNotesPlugin(s))
	r.Register(NewRemindersPlugin(s, pol))
	r.Register(NewTasksPlugin(s, pol))
	r.Register(NewListsPlugin(s))
	r.Register(NewContactsPlugin(s))
	r.Register(NewCalendarPlugin(s, pol))
	r.Register(NewSMSPlugin(s, collab.Messenger))
	r.Register(NewEmailPlugin(s, collab.Mailer))
	r.Register(NewSearchPlugin(search))
	r.Register(NewRecordingPlugin(collab.Recorder))

	return r
}
