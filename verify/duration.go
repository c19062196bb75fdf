package verify

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var durationPattern = regexp.MustCompile(`^(\d+)([dwmy])$`)

// ParseDuration parses the age-requirement format used in community
// settings: digits followed by a single unit letter. Months and years are
// approximated as 30 and 365 days. A bad value is a configuration bug and
// surfaces as an error, never as a user-facing rejection.
func ParseDuration(s string) (time.Duration, error) {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid duration %q: want digits followed by d, w, m or y", s)
	}
	amount, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}

	day := 24 * time.Hour
	switch m[2] {
	case "d":
		return time.Duration(amount) * day, nil
	case "w":
		return time.Duration(amount) * 7 * day, nil
	case "m":
		return time.Duration(amount) * 30 * day, nil
	case "y":
		return time.Duration(amount) * 365 * day, nil
	}
	return 0, fmt.Errorf("invalid duration unit in %q", s)
}

// ValidDurationString reports whether s is an acceptable age-requirement
// value. Used at the admin command boundary before a setting is written.
func ValidDurationString(s string) bool {
	return durationPattern.MatchString(s)
}
