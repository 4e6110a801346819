package domain

import (
	"regexp"
	"strconv"
	"time"
)

// DefaultDailyGoal is used when the free-form goal string cannot be parsed.
const DefaultDailyGoal = 60 * time.Minute

var (
	hourPattern = regexp.MustCompile(`(\d+(\.\d+)?)\s*hr`)
	minPattern  = regexp.MustCompile(`(\d+)\s*min`)
	numPattern  = regexp.MustCompile(`(\d+(\.\d+)?)`)
)

// ParseDailyGoal interprets a free-form daily goal string such as "1 hr",
// "30 min" or "1.5 hr". An explicit hour unit wins over an explicit minute
// unit; a bare number is read as hours. Anything unparsable falls back to
// DefaultDailyGoal.
func ParseDailyGoal(goal string) time.Duration {
	if goal == "" {
		return DefaultDailyGoal
	}

	if m := hourPattern.FindStringSubmatch(goal); m != nil {
		hours, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return time.Duration(hours * float64(time.Hour))
		}
	}

	if m := minPattern.FindStringSubmatch(goal); m != nil {
		mins, err := strconv.Atoi(m[1])
		if err == nil {
			return time.Duration(mins) * time.Minute
		}
	}

	if m := numPattern.FindStringSubmatch(goal); m != nil {
		hours, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return time.Duration(hours * float64(time.Hour))
		}
	}

	return DefaultDailyGoal
}
