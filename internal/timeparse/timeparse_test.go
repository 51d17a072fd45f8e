package timeparse

import (
	"testing"
	"time"
)

// A fixed reference point: Wednesday, March 11, 2026, 10:00 local time.
var refNow = time.Date(2026, time.March, 11, 10, 0, 0, 0, time.Local)

func TestParseRelativeOffsets(t *testing.T) {
	tests := []struct {
		text string
		want time.Time
	}{
		{"remind me to call John in 30 minutes", refNow.Add(30 * time.Minute)},
		{"in 1 minute", refNow.Add(time.Minute)},
		{"ping me in 45 min", refNow.Add(45 * time.Minute)},
		{"in 2 hours check the oven", refNow.Add(2 * time.Hour)},
		{"in 1 hr", refNow.Add(time.Hour)},
		{"follow up in 3 days", refNow.AddDate(0, 0, 3)},
		{"renew in 2 weeks", refNow.AddDate(0, 0, 14)},
	}

	for _, tt := range tests {
		got := Parse(tt.text, refNow)
		if !got.Ok() {
			t.Errorf("Parse(%q): expected a match", tt.text)
			continue
		}
		if !got.When.Equal(tt.want) {
			t.Errorf("Parse(%q) = %v, want %v", tt.text, got.When, tt.want)
		}
		if got.Matched == "" {
			t.Errorf("Parse(%q): matched text missing alongside instant", tt.text)
		}
	}
}

func TestParseTomorrowAtTime(t *testing.T) {
	got := Parse("tomorrow at 3pm", refNow)
	if !got.Ok() {
		t.Fatal("expected a match")
	}
	want := time.Date(2026, time.March, 12, 15, 0, 0, 0, time.Local)
	if !got.When.Equal(want) {
		t.Errorf("got %v, want %v", got.When, want)
	}
	if got.Matched != "tomorrow at 3pm" {
		t.Errorf("matched = %q, want %q", got.Matched, "tomorrow at 3pm")
	}
}

func TestParseDaypartAlongsideClock(t *testing.T) {
	got := Parse("remind me to take out the trash tomorrow evening at 7pm", refNow)
	if !got.Ok() {
		t.Fatal("expected a match")
	}
	// The explicit clock sets the hour; the daypart word is still part of
	// the time phrase.
	want := time.Date(2026, time.March, 12, 19, 0, 0, 0, time.Local)
	if !got.When.Equal(want) {
		t.Errorf("got %v, want %v", got.When, want)
	}
	if got.Matched != "tomorrow evening at 7pm" {
		t.Errorf("matched = %q, want %q", got.Matched, "tomorrow evening at 7pm")
	}
	if content := ExtractContent("remind me to take out the trash tomorrow evening at 7pm", got.Matched); content != "take out the trash" {
		t.Errorf("ExtractContent = %q, want %q", content, "take out the trash")
	}
}

func TestParseClockForms(t *testing.T) {
	tests := []struct {
		text         string
		hour, minute int
	}{
		{"tomorrow at 10:30am", 10, 30},
		{"tomorrow at 14:00", 14, 0},
		{"tomorrow at 3pm", 15, 0},
		{"tomorrow at 12am", 0, 0},
		{"tomorrow at 12pm", 12, 0},
		{"tomorrow 9am", 9, 0},
	}

	for _, tt := range tests {
		got := Parse(tt.text, refNow)
		if !got.Ok() {
			t.Errorf("Parse(%q): expected a match", tt.text)
			continue
		}
		if got.When.Hour() != tt.hour || got.When.Minute() != tt.minute {
			t.Errorf("Parse(%q) = %02d:%02d, want %02d:%02d",
				tt.text, got.When.Hour(), got.When.Minute(), tt.hour, tt.minute)
		}
	}
}

func TestBareHourPMHeuristic(t *testing.T) {
	// Hours 1-7 without a marker skew afternoon.
	got := Parse("today at 3", refNow)
	if !got.Ok() || got.When.Hour() != 15 {
		t.Errorf("expected 15:00, got %+v", got)
	}

	// Hour >= 8 stays literal.
	got = Parse("today at 9", refNow)
	if !got.Ok() || got.When.Hour() != 9 {
		t.Errorf("expected 09:00, got %+v", got)
	}

	// The heuristic is policy, not grammar.
	got = ParseWithPolicy("today at 3", refNow, Policy{AssumePM: false, RollSameWeekday: true})
	if !got.Ok() || got.When.Hour() != 3 {
		t.Errorf("expected 03:00 with AssumePM off, got %+v", got)
	}
}

func TestPastClockRollsForward(t *testing.T) {
	// 8am already passed at the 10:00 reference; no day word present.
	got := Parse("at 8am", refNow)
	if !got.Ok() {
		t.Fatal("expected a match")
	}
	want := time.Date(2026, time.March, 12, 8, 0, 0, 0, time.Local)
	if !got.When.Equal(want) {
		t.Errorf("got %v, want %v", got.When, want)
	}

	// With an explicit day word the time is applied as-is.
	got = Parse("today at 8am", refNow)
	if !got.Ok() || got.When.Day() != 11 {
		t.Errorf("expected today, got %+v", got)
	}
}

func TestWeekdayResolution(t *testing.T) {
	// Reference day is a Wednesday.
	tests := []struct {
		text     string
		daysFrom int
	}{
		{"on friday", 2},
		{"next friday", 9},
		{"on wednesday", 7}, // same weekday rolls forward
		{"on monday", 5},
		{"next monday", 5}, // naive diff plus a week lands on the coming Monday
		{"this friday", 2},
	}

	for _, tt := range tests {
		got := Parse(tt.text, refNow)
		if !got.Ok() {
			t.Errorf("Parse(%q): expected a match", tt.text)
			continue
		}
		want := midnight(refNow).AddDate(0, 0, tt.daysFrom)
		if !midnight(got.When).Equal(want) {
			t.Errorf("Parse(%q) resolved to %v, want day %v", tt.text, got.When, want)
		}
	}
}

func TestNextWeekdayBounds(t *testing.T) {
	// "next friday" is strictly ahead and at most 13 days out from any day.
	for d := 0; d < 7; d++ {
		now := refNow.AddDate(0, 0, d)
		got := Parse("next friday", now)
		if !got.Ok() {
			t.Fatalf("day offset %d: expected a match", d)
		}
		ahead := int(midnight(got.When).Sub(midnight(now)).Hours() / 24)
		if ahead <= 0 || ahead > 13 {
			t.Errorf("day offset %d: resolved %d days ahead", d, ahead)
		}
		if got.When.Weekday() != time.Friday {
			t.Errorf("day offset %d: resolved to %v", d, got.When.Weekday())
		}
	}
}

func TestDayOnlyDaypartDefaults(t *testing.T) {
	tests := []struct {
		text string
		day  int
		hour int
	}{
		{"tomorrow morning", 12, 9},
		{"tomorrow afternoon", 12, 14},
		{"tomorrow evening", 12, 18},
		{"tomorrow night", 12, 21},
		{"tomorrow", 12, 9},
		{"tonight", 11, 18},
		{"day after tomorrow", 13, 9},
		{"next week", 18, 9},
		{"in a week", 18, 9},
	}

	for _, tt := range tests {
		got := Parse(tt.text, refNow)
		if !got.Ok() {
			t.Errorf("Parse(%q): expected a match", tt.text)
			continue
		}
		if got.When.Day() != tt.day || got.When.Hour() != tt.hour {
			t.Errorf("Parse(%q) = day %d %02d:00, want day %d %02d:00",
				tt.text, got.When.Day(), got.When.Hour(), tt.day, tt.hour)
		}
	}
}

func TestEndOfDay(t *testing.T) {
	got := Parse("finish the report by end of day", refNow)
	if !got.Ok() || got.When.Hour() != 17 || got.When.Day() != 11 {
		t.Errorf("expected today 17:00, got %+v", got)
	}

	// Already past 17:00: rolls to tomorrow.
	evening := time.Date(2026, time.March, 11, 18, 30, 0, 0, time.Local)
	got = Parse("eod", evening)
	if !got.Ok() || got.When.Day() != 12 {
		t.Errorf("expected tomorrow 17:00, got %+v", got)
	}
}

func TestBareDayparts(t *testing.T) {
	got := Parse("this afternoon", refNow)
	if !got.Ok() || got.When.Hour() != 14 || got.When.Day() != 11 {
		t.Errorf("expected today 14:00, got %+v", got)
	}
	if got.Matched != "this afternoon" {
		t.Errorf("matched = %q", got.Matched)
	}
}

func TestNoMatch(t *testing.T) {
	for _, text := range []string{
		"buy milk",
		"call John about the invoice",
		"",
		"the meeting ran long",
	} {
		got := Parse(text, refNow)
		if got.Ok() {
			t.Errorf("Parse(%q): unexpected match %+v", text, got)
		}
		if !got.When.IsZero() || got.Matched != "" {
			t.Errorf("Parse(%q): fields must clear together, got %+v", text, got)
		}
	}
}
