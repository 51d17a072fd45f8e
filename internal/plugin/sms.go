package plugin

import (
	"context"
	"fmt"

	"github.com/mcsmartbytes/smartassist/internal/store"
)

// SMSPlugin sends text messages through the messenger collaborator. A
// name-shaped target is resolved to a phone number via the contact book;
// a number-shaped target is used directly.
type SMSPlugin struct {
	store     *store.Store
	messenger Messenger
}

// NewSMSPlugin creates the SMS plugin.
func NewSMSPlugin(s *store.Store, m Messenger) *SMSPlugin {
	return &SMSPlugin{store: s, messenger: m}
}

func (p *SMSPlugin) Key() string         { return "sms" }
func (p *SMSPlugin) DisplayName() string { return "Text Messages" }
func (p *SMSPlugin) Icon() string        { return "💬" }

func (p *SMSPlugin) Keywords() []string {
	return []string{"text ", "sms", "send a message", "message "}
}

func (p *SMSPlugin) Execute(ctx context.Context, params *Params) (*Result, error) {
	if params.Action != "send" {
		return &Result{Success: false, Message: fmt.Sprintf("Text messages can't do %q.", params.Action)}, nil
	}

	if p.messenger == nil {
		return &Result{Success: false, NeedsAuth: "a messaging provider"}, nil
	}

	body := params.Str("body")
	if body == "" {
		return &Result{Success: false, Message: "What should the message say?"}, nil
	}

	phone := params.Str("phone")
	display := phone
	if phone == "" {
		name := params.Str("contactName")
		if name == "" {
			return &Result{Success: false, Message: "Who should I text?"}, nil
		}
		contact, err := p.store.FindContact(ctx, name)
		if err != nil {
			return nil, err
		}
		if contact == nil || contact.Phone == "" {
			return &Result{Success: false, Message: fmt.Sprintf("I don't have a number for %s.", name)}, nil
		}
		phone = contact.Phone
		display = contact.Name
	}

	if err := p.messenger.SendSMS(ctx, phone, body); err != nil {
		return nil, fmt.Errorf("send sms to %s: %w", phone, err)
	}
	return &Result{Success: true, Message: fmt.Sprintf("Text sent to %s: %q", display, body)}, nil
}
