package plugin

import (
	"context"
	"fmt"
	"strings"

	"github.com/mcsmartbytes/smartassist/internal/store"
)

// EmailPlugin sends email through the mailer collaborator. Targets that
// aren't address-shaped are resolved via contacts.
type EmailPlugin struct {
	store  *store.Store
	mailer Mailer
}

// NewEmailPlugin creates the email plugin.
func NewEmailPlugin(s *store.Store, m Mailer) *EmailPlugin {
	return &EmailPlugin{store: s, mailer: m}
}

func (p *EmailPlugin) Key() string         { return "email" }
func (p *EmailPlugin) DisplayName() string { return "Email" }
func (p *EmailPlugin) Icon() string        { return "📧" }

func (p *EmailPlugin) Keywords() []string {
	return []string{"email", "mail"}
}

func (p *EmailPlugin) Execute(ctx context.Context, params *Params) (*Result, error) {
	if params.Action != "send" {
		return &Result{Success: false, Message: fmt.Sprintf("Email can't do %q.", params.Action)}, nil
	}

	if p.mailer == nil {
		return &Result{Success: false, NeedsAuth: "an email account"}, nil
	}

	to := params.Str("to")
	if to == "" {
		return &Result{Success: false, Message: "Who should I email?"}, nil
	}
	body := params.Str("body")
	if body == "" {
		return &Result{Success: false, Message: "What should the email say?"}, nil
	}
	subject := params.Str("subject")
	if subject == "" {
		subject = firstWords(body, 6)
	}

	display := to
	if !strings.Contains(to, "@") {
		contact, err := p.store.FindContact(ctx, to)
		if err != nil {
			return nil, err
		}
		if contact == nil || contact.Email == "" {
			return &Result{Success: false, Message: fmt.Sprintf("I don't have an email address for %s.", to)}, nil
		}
		to = contact.Email
		display = contact.Name
	}

	if err := p.mailer.Send(ctx, to, subject, body); err != nil {
		return nil, fmt.Errorf("send email to %s: %w", to, err)
	}
	return &Result{Success: true, Message: fmt.Sprintf("Email sent to %s.", display)}, nil
}

func firstWords(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}
