package model

import (
	"fmt"
	"strings"
	"time"
)

// RelativeTime renders a timestamp the way list rows display it:
// "Just now", "5m ago", "3h ago", "2d ago", then an absolute date.
func RelativeTime(t time.Time, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
	if t.Year() != now.Year() {
		return t.Format("Jan 2, 2006")
	}
	return t.Format("Jan 2")
}

// Initials derives a one-or-two letter avatar placeholder from a display
// name, username, or email.
func Initials(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "U"
	}
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '@'
	})
	if len(parts) >= 2 && parts[0] != "" && parts[1] != "" {
		return strings.ToUpper(string([]rune(parts[0])[0]) + string([]rune(parts[1])[0]))
	}
	r := []rune(name)
	if len(r) >= 2 {
		return strings.ToUpper(string(r[:2]))
	}
	return strings.ToUpper(string(r))
}

// Truncate shortens s to at most n runes, appending an ellipsis when cut.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
