package plugin

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RecordingPlugin starts and stops voice memos through the recorder
// collaborator. When no recorder is wired it reports that recording needs
// to be set up rather than failing.
type RecordingPlugin struct {
	recorder Recorder

	mu        sync.Mutex
	active    bool
	startedAt time.Time
}

// NewRecordingPlugin creates the recording plugin. recorder may be nil.
func NewRecordingPlugin(r Recorder) *RecordingPlugin {
	return &RecordingPlugin{recorder: r}
}

func (p *RecordingPlugin) Key() string         { return "recording" }
func (p *RecordingPlugin) DisplayName() string { return "Recording" }
func (p *RecordingPlugin) Icon() string        { return "🎙️" }

func (p *RecordingPlugin) Keywords() []string {
	return []string{"record"}
}

func (p *RecordingPlugin) Execute(ctx context.Context, params *Params) (*Result, error) {
	if p.recorder == nil {
		return &Result{Success: false, Message: "Recording isn't set up on this device.", NeedsAuth: "a microphone"}, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	switch params.Action {
	case "start":
		if p.active {
			return &Result{Success: false, Message: "Already recording."}, nil
		}
		if err := p.recorder.Start(ctx); err != nil {
			return nil, fmt.Errorf("start recording: %w", err)
		}
		p.active = true
		p.startedAt = time.Now()
		return &Result{Success: true, Message: "Recording started. Say \"stop recording\" when you're done."}, nil

	case "stop":
		if !p.active {
			return &Result{Success: false, Message: "I'm not recording right now."}, nil
		}
		name, err := p.recorder.Stop(ctx)
		if err != nil {
			return nil, fmt.Errorf("stop recording: %w", err)
		}
		p.active = false
		dur := time.Since(p.startedAt).Round(time.Second)
		return &Result{Success: true, Message: fmt.Sprintf("Saved %s (%s).", name, dur)}, nil

	case "list":
		names, err := p.recorder.Recordings(ctx)
		if err != nil {
			return nil, fmt.Errorf("list recordings: %w", err)
		}
		if len(names) == 0 {
			return &Result{Success: true, Message: "No recordings yet."}, nil
		}
		return &Result{Success: true, Message: fmt.Sprintf("You have %d recording(s):", len(names)), Data: names}, nil

	default:
		return &Result{Success: false, Message: fmt.Sprintf("Recording can't do %q.", params.Action)}, nil
	}
}
