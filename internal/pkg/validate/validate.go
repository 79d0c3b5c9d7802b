package validate

import (
	"regexp"
	"strings"
)

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}

// ClockTime reports whether the value is a 24h HH:MM wall-clock string, the
// format business hours are stored and compared in.
func ClockTime(value string) bool {
	return clockPattern.MatchString(value)
}
