package timeparse

import (
	"fmt"
	"time"
)

// FormatRelative renders an absolute instant as a relative human phrase.
// Buckets, nearest first: minutes away, today, tomorrow, this week, then a
// dated form. Purely presentational.
func FormatRelative(when, now time.Time) string {
	if diff := when.Sub(now); diff > 0 && diff < time.Hour {
		mins := int(diff.Round(time.Minute).Minutes())
		if mins < 1 {
			mins = 1
		}
		if mins == 1 {
			return "in 1 minute"
		}
		return fmt.Sprintf("in %d minutes", mins)
	}

	clock := when.Format("3:04 PM")
	whenDay := midnight(when)
	nowDay := midnight(now)
	switch days := int(whenDay.Sub(nowDay).Hours() / 24); {
	case days == 0:
		return "today at " + clock
	case days == 1:
		return "tomorrow at " + clock
	case days > 1 && days < 7:
		return when.Format("Monday") + " at " + clock
	default:
		return when.Format("Mon, January 2") + " at " + clock
	}
}
