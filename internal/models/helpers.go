package models

import (
	"fmt"
	"time"
)

// Truncate shortens s to max runes, appending an ellipsis when cut.
// Used by list views where a summary has to fit one line.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

// FormatWhen renders a timestamp relative to now for history listings:
// time-of-day for today, "yesterday", otherwise a short date.
func FormatWhen(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	t = t.Local()
	now = now.Local()
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	if ty == ny && tm == nm && td == nd {
		return t.Format("15:04")
	}
	yesterday := now.AddDate(0, 0, -1)
	yy, ym, yd := yesterday.Date()
	if ty == yy && tm == ym && td == yd {
		return "yesterday"
	}
	if ty == ny {
		return t.Format("Jan 2")
	}
	return t.Format("2006-01-02")
}

// ShortID returns the first 8 characters of an id for compact display.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// CountLabel pluralizes a count, e.g. "1 page", "3 pages".
func CountLabel(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
