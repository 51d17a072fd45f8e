package plugin

import (
	"context"

	"github.com/mcsmartbytes/smartassist/internal/logging"
)

// Mailer is the narrow interface to the email collaborator.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Messenger is the narrow interface to the SMS collaborator.
type Messenger interface {
	SendSMS(ctx context.Context, phone, body string) error
}

// Recorder is the narrow interface to the audio recording collaborator.
type Recorder interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) (name string, err error)
	Recordings(ctx context.Context) ([]string, error)
}

// LogMailer logs instead of sending; the default until a provider is
// connected.
type LogMailer struct {
	Log *logging.Logger
}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	m.Log.Info("email queued", "to", to, "subject", subject, "bytes", len(body))
	return nil
}

// LogMessenger logs instead of texting.
type LogMessenger struct {
	Log *logging.Logger
}

func (m *LogMessenger) SendSMS(ctx context.Context, phone, body string) error {
	m.Log.Info("sms queued", "phone", phone, "bytes", len(body))
	return nil
}
