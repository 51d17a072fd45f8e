// Package timeparse turns natural-language time expressions into absolute
// instants. It is deliberately permissive: ambiguous input yields no match
// rather than a guess, and callers supply their own default.
package timeparse

import (
	"regexp"
	"strings"
	"time"
)

// ParsedTime is the result of one parse. When and Matched are set together
// or not at all; a zero ParsedTime means nothing in the text looked like a
// time expression.
type ParsedTime struct {
	When    time.Time
	Matched string
}

// Ok reports whether the parse found a time expression.
func (p ParsedTime) Ok() bool {
	return !p.When.IsZero() && p.Matched != ""
}

// Policy holds the interpretation heuristics that are guesses about user
// intent rather than grammar. They are configurable because they are
// plausibly wrong for some users (a 6am request, for example).
type Policy struct {
	// AssumePM treats a bare hour 1-7 with no am/pm marker as afternoon.
	AssumePM bool
	// RollSameWeekday resolves a plain weekday name that lands on or before
	// the current day of week to next week's occurrence.
	RollSameWeekday bool
}

// DefaultPolicy returns the reference behavior.
func DefaultPolicy() Policy {
	return Policy{AssumePM: true, RollSameWeekday: true}
}

// Precompiled expression patterns, tried in resolution order.
var (
	relOffsetRe = regexp.MustCompile(`(?i)\bin\s+(\d+)\s+(minutes?|mins?|min|hours?|hrs?|hr|days?|weeks?)\b`)

	dayAfterRe  = regexp.MustCompile(`(?i)\bday after tomorrow\b`)
	tomorrowRe  = regexp.MustCompile(`(?i)\btomorrow\b`)
	todayRe     = regexp.MustCompile(`(?i)\btoday\b`)
	tonightRe   = regexp.MustCompile(`(?i)\btonight\b`)
	nextWeekRe  = regexp.MustCompile(`(?i)\b(?:next week|in a week)\b`)
	weekdayRe   = regexp.MustCompile(`(?i)\b(?:(next|this)\s+)?(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	daypartRe   = regexp.MustCompile(`(?i)\b(?:this\s+)?(morning|afternoon|evening|night)\b`)
	endOfDayRe  = regexp.MustCompile(`(?i)\b(?:end of (?:the )?day|eod)\b`)

	clockAtRe    = regexp.MustCompile(`(?i)\bat\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b`)
	clockColonRe = regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})\s*(am|pm)?\b`)
	clockAmPmRe  = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(am|pm)\b`)
)

// Default clock times for day-only expressions.
var daypartHours = map[string]int{
	"morning":   9,
	"afternoon": 14,
	"evening":   18,
	"tonight":   18,
	"night":     21,
}

// Parse resolves a natural-language time expression against now using the
// default policy. It never fails; a zero ParsedTime means no match.
func Parse(text string, now time.Time) ParsedTime {
	return ParseWithPolicy(text, now, DefaultPolicy())
}

// ParseWithPolicy is Parse with explicit heuristics. Resolution order, first
// match wins:
//  1. relative offset ("in 30 minutes")
//  2. day word / weekday / clock time, evaluated together
//  3. day-only expressions defaulted by daypart table
//  4. end of day
//  5. bare dayparts ("this morning")
func ParseWithPolicy(text string, now time.Time, pol Policy) ParsedTime {
	if p := parseRelativeOffset(text, now); p.Ok() {
		return p
	}
	if p := parseDayAndClock(text, now, pol); p.Ok() {
		return p
	}
	if p := parseEndOfDay(text, now); p.Ok() {
		return p
	}
	if p := parseBareDaypart(text, now); p.Ok() {
		return p
	}
	return ParsedTime{}
}

func parseRelativeOffset(text string, now time.Time) ParsedTime {
	m := relOffsetRe.FindStringSubmatchIndex(text)
	if m == nil {
		return ParsedTime{}
	}
	matched := text[m[0]:m[1]]
	n := atoi(text[m[2]:m[3]])
	unit := strings.ToLower(text[m[4]:m[5]])

	var when time.Time
	switch {
	case strings.HasPrefix(unit, "min"):
		when = now.Add(time.Duration(n) * time.Minute)
	case strings.HasPrefix(unit, "h"):
		when = now.Add(time.Duration(n) * time.Hour)
	case strings.HasPrefix(unit, "d"):
		when = now.AddDate(0, 0, n)
	case strings.HasPrefix(unit, "w"):
		when = now.AddDate(0, 0, n*7)
	default:
		return ParsedTime{}
	}
	return ParsedTime{When: when, Matched: matched}
}

// span tracks where a sub-expression matched so adjacent pieces can be
// reassembled into the matched text.
type span struct {
	start, end int
}

type dayMatch struct {
	date    time.Time // midnight on the resolved day
	span    span
	daypart string // non-empty when the day word implies a daypart (tonight)
	found   bool
}

type clockMatch struct {
	hour, minute int
	span         span
	found        bool
}

func parseDayAndClock(text string, now time.Time, pol Policy) ParsedTime {
	day := findDayPhrase(text, now, pol)
	clock := findClock(text, pol)
	part, partSpan, partFound := findDaypart(text)

	if !day.found && !clock.found {
		return ParsedTime{}
	}

	base := midnight(now)
	if day.found {
		base = day.date
	}

	var when time.Time
	spans := make([]span, 0, 3)
	if day.found {
		spans = append(spans, day.span)
	}

	switch {
	case clock.found:
		when = base.Add(time.Duration(clock.hour)*time.Hour + time.Duration(clock.minute)*time.Minute)
		spans = append(spans, clock.span)
		// The clock wins the hour, but a daypart word alongside it was
		// still part of the time phrase and must be consumed.
		if partFound {
			spans = append(spans, partSpan)
		}
		// A clock time with no day word that already passed today means
		// the next occurrence.
		if !day.found && when.Before(now) {
			when = when.AddDate(0, 0, 1)
		}
	case day.found:
		hour := 9
		if day.daypart != "" {
			hour = daypartHours[day.daypart]
		} else if partFound {
			hour = daypartHours[part]
			spans = append(spans, partSpan)
		}
		when = base.Add(time.Duration(hour) * time.Hour)
	default:
		return ParsedTime{}
	}

	return ParsedTime{When: when, Matched: joinSpans(text, spans)}
}

func parseEndOfDay(text string, now time.Time) ParsedTime {
	m := endOfDayRe.FindStringIndex(text)
	if m == nil {
		return ParsedTime{}
	}
	when := midnight(now).Add(17 * time.Hour)
	if when.Before(now) {
		when = when.AddDate(0, 0, 1)
	}
	return ParsedTime{When: when, Matched: text[m[0]:m[1]]}
}

func parseBareDaypart(text string, now time.Time) ParsedTime {
	part, s, found := findDaypart(text)
	if !found {
		return ParsedTime{}
	}
	when := midnight(now).Add(time.Duration(daypartHours[part]) * time.Hour)
	return ParsedTime{When: when, Matched: text[s.start:s.end]}
}

func findDayPhrase(text string, now time.Time, pol Policy) dayMatch {
	today := midnight(now)

	if m := dayAfterRe.FindStringIndex(text); m != nil {
		return dayMatch{date: today.AddDate(0, 0, 2), span: span{m[0], m[1]}, found: true}
	}
	if m := tomorrowRe.FindStringIndex(text); m != nil {
		return dayMatch{date: today.AddDate(0, 0, 1), span: span{m[0], m[1]}, found: true}
	}
	if m := tonightRe.FindStringIndex(text); m != nil {
		return dayMatch{date: today, span: span{m[0], m[1]}, daypart: "tonight", found: true}
	}
	if m := todayRe.FindStringIndex(text); m != nil {
		return dayMatch{date: today, span: span{m[0], m[1]}, found: true}
	}
	if m := nextWeekRe.FindStringIndex(text); m != nil {
		return dayMatch{date: today.AddDate(0, 0, 7), span: span{m[0], m[1]}, found: true}
	}
	if m := weekdayRe.FindStringSubmatchIndex(text); m != nil {
		qualifier := strings.ToLower(group(text, m, 1))
		target := weekdayIndex(group(text, m, 2))
		daysUntil := target - int(now.Weekday())
		switch qualifier {
		case "next":
			// Always the occurrence beyond the naive same-week one.
			daysUntil += 7
		default:
			if daysUntil < 0 || (daysUntil == 0 && pol.RollSameWeekday) {
				daysUntil += 7
			}
		}
		return dayMatch{date: today.AddDate(0, 0, daysUntil), span: span{m[0], m[1]}, found: true}
	}
	return dayMatch{}
}

func weekdayIndex(name string) int {
	switch strings.ToLower(name) {
	case "sunday":
		return int(time.Sunday)
	case "monday":
		return int(time.Monday)
	case "tuesday":
		return int(time.Tuesday)
	case "wednesday":
		return int(time.Wednesday)
	case "thursday":
		return int(time.Thursday)
	case "friday":
		return int(time.Friday)
	case "saturday":
		return int(time.Saturday)
	}
	return 0
}

func findDaypart(text string) (string, span, bool) {
	m := daypartRe.FindStringSubmatchIndex(text)
	if m == nil {
		return "", span{}, false
	}
	return strings.ToLower(text[m[2]:m[3]]), span{m[0], m[1]}, true
}

func findClock(text string, pol Policy) clockMatch {
	for _, re := range []*regexp.Regexp{clockAtRe, clockColonRe, clockAmPmRe} {
		m := re.FindStringSubmatchIndex(text)
		if m == nil {
			continue
		}
		hour := atoi(group(text, m, 1))
		minute := 0
		marker := ""
		switch re {
		case clockAtRe, clockColonRe:
			if g := group(text, m, 2); g != "" {
				minute = atoi(g)
			}
			marker = strings.ToLower(group(text, m, 3))
		case clockAmPmRe:
			marker = strings.ToLower(group(text, m, 2))
		}
		if hour > 23 || minute > 59 {
			continue
		}
		switch marker {
		case "pm":
			if hour < 12 {
				hour += 12
			}
		case "am":
			if hour == 12 {
				hour = 0
			}
		default:
			// Bare hour heuristic: small hours skew afternoon/evening.
			if pol.AssumePM && hour >= 1 && hour <= 7 {
				hour += 12
			}
		}
		return clockMatch{hour: hour, minute: minute, span: span{m[0], m[1]}, found: true}
	}
	return clockMatch{}
}

// joinSpans reassembles matched pieces into a single substring. Pieces that
// are contiguous up to whitespace merge into one span of the original text;
// otherwise they are joined with a single space.
func joinSpans(text string, spans []span) string {
	if len(spans) == 0 {
		return ""
	}
	sortSpans(spans)
	merged := spans[:1]
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.start >= last.end && strings.TrimSpace(text[last.end:s.start]) == "" {
			last.end = s.end
			continue
		}
		merged = append(merged, s)
	}
	parts := make([]string, len(merged))
	for i, s := range merged {
		parts[i] = text[s.start:s.end]
	}
	return strings.Join(parts, " ")
}

func sortSpans(spans []span) {
	for i := 1; i < len(spans); i++ {
		for j := i; j > 0 && spans[j].start < spans[j-1].start; j-- {
			spans[j], spans[j-1] = spans[j-1], spans[j]
		}
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

func group(text string, m []int, i int) string {
	if 2*i+1 >= len(m) || m[2*i] < 0 {
		return ""
	}
	return text[m[2*i]:m[2*i+1]]
}
