package timeparse

import (
	"strings"
	"testing"
	"time"
)

func TestFormatRelativeBuckets(t *testing.T) {
	now := time.Date(2026, time.March, 11, 10, 0, 0, 0, time.Local)

	tests := []struct {
		when time.Time
		want string
	}{
		{now.Add(10 * time.Minute), "in 10 minutes"},
		{now.Add(59 * time.Minute), "in 59 minutes"},
		{now.Add(time.Minute), "in 1 minute"},
		{time.Date(2026, time.March, 11, 15, 0, 0, 0, time.Local), "today at 3:00 PM"},
		{time.Date(2026, time.March, 12, 9, 30, 0, 0, time.Local), "tomorrow at 9:30 AM"},
		{time.Date(2026, time.March, 14, 18, 0, 0, 0, time.Local), "Saturday at 6:00 PM"},
		{time.Date(2026, time.March, 25, 10, 0, 0, 0, time.Local), "Wed, March 25 at 10:00 AM"},
	}

	for _, tt := range tests {
		got := FormatRelative(tt.when, now)
		if got != tt.want {
			t.Errorf("FormatRelative(%v) = %q, want %q", tt.when, got, tt.want)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	now := time.Date(2026, time.March, 11, 10, 0, 0, 0, time.Local)

	p := Parse("remind me in 10 minutes", now)
	if !p.Ok() {
		t.Fatal("expected a match")
	}
	if got := FormatRelative(p.When, now); got != "in 10 minutes" {
		t.Errorf("round trip = %q, want %q", got, "in 10 minutes")
	}

	p = Parse("tomorrow at 3pm", now)
	if !p.Ok() {
		t.Fatal("expected a match")
	}
	if got := FormatRelative(p.When, now); !strings.HasPrefix(got, "tomorrow at") {
		t.Errorf("round trip = %q, want tomorrow bucket", got)
	}
}

func TestExtractContent(t *testing.T) {
	tests := []struct {
		full    string
		matched string
		want    string
	}{
		{"remind me to call John in 30 minutes", "in 30 minutes", "call John"},
		{"set a reminder to water the plants tomorrow", "tomorrow", "water the plants"},
		{"call John in 30 minutes", "in 30 minutes", "call John"},
		{"to call John in 30 minutes", "in 30 minutes", "call John"},
		{"pick up groceries tomorrow at 5pm", "tomorrow at 5pm", "pick up groceries"},
		{"buy milk", "", "buy milk"},
		{"remind me to stretch", "", "stretch"},
		{"submit the report at end of day", "end of day", "submit the report"},
		{"about the dentist tomorrow", "tomorrow", "the dentist"},
	}

	for _, tt := range tests {
		got := ExtractContent(tt.full, tt.matched)
		if got != tt.want {
			t.Errorf("ExtractContent(%q, %q) = %q, want %q", tt.full, tt.matched, got, tt.want)
		}
	}
}

func TestExtractContentSplitPhrases(t *testing.T) {
	// Day and clock phrases that were not adjacent in the original text are
	// joined with a space in the matched string; each piece is removed.
	got := ExtractContent("tomorrow take out the trash at 7pm", "tomorrow at 7pm")
	if got != "take out the trash" {
		t.Errorf("got %q, want %q", got, "take out the trash")
	}
}
