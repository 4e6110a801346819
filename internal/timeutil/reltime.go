// Package timeutil renders timestamps as human-readable relative strings.
//
// One bucketing rule covers both directions: session end dates count forward
// from now, publish and save dates count backward.
package timeutil

import (
	"fmt"
	"time"
)

// Bucket renders a whole-day distance using day/week/month/year thresholds:
// <7 days stay days, <30 floor to weeks, <365 floor to months, else years.
func Bucket(days int) string {
	switch {
	case days == 1:
		return "1 day"
	case days < 7:
		return fmt.Sprintf("%d days", days)
	case days < 30:
		return fmt.Sprintf("%d weeks", days/7)
	case days < 365:
		return fmt.Sprintf("%d months", days/30)
	default:
		return fmt.Sprintf("%d years", days/365)
	}
}

// Until renders how far t lies ahead of now, e.g. a session end date.
// A date that has passed (or is today) renders "Ended".
func Until(t, now time.Time) string {
	days := wholeDays(now, t)
	if days <= 0 {
		return "Ended"
	}
	return Bucket(days)
}

// Since renders how far t lies behind now, e.g. a video publish date.
func Since(t, now time.Time) string {
	days := wholeDays(t, now)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	default:
		return Bucket(days) + " ago"
	}
}

func wholeDays(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}

// FormatMinutes renders a duration as "N min" under an hour and
// "H hr" / "H hr M min" above it.
func FormatMinutes(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	mins := int(d.Minutes())
	if mins < 60 {
		return fmt.Sprintf("%d min", mins)
	}
	hours := mins / 60
	rem := mins % 60
	if rem > 0 {
		return fmt.Sprintf("%d hr %d min", hours, rem)
	}
	return fmt.Sprintf("%d hr", hours)
}
