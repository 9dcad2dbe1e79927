package services

import (
	"strconv"
	"strings"
)

// ParseDurationSeconds converts a "MM:SS" label into seconds. Anything
// that is not exactly two numeric parts joined by one colon yields 0;
// the function never fails.
func ParseDurationSeconds(label string) int {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0
	}

	parts := strings.Split(label, ":")
	if len(parts) != 2 {
		return 0
	}

	minutes, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0
	}

	return minutes*60 + seconds
}
