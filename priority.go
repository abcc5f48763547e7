package remindkit

import (
	"fmt"
	"strings"
)

// Priority is the ordinal urgency of a reminder on the store's 0-9 scale.
// 0 means no priority. The named levels hold the canonical values the store
// writes; any other value on the scale compares equal to the level of its
// band (1-4 low, 5 medium, 6-9 high).
type Priority int

const (
	PriorityNone   Priority = 0
	PriorityLow    Priority = 1
	PriorityMedium Priority = 5
	PriorityHigh   Priority = 9
)

// Valid reports whether p is on the 0-9 scale.
func (p Priority) Valid() bool {
	return p >= 0 && p <= 9
}

// Level collapses p to its named level: 1-4 to PriorityLow, 5 to
// PriorityMedium, 6-9 to PriorityHigh, anything else to PriorityNone.
func (p Priority) Level() Priority {
	switch {
	case p >= 1 && p <= 4:
		return PriorityLow
	case p == 5:
		return PriorityMedium
	case p >= 6 && p <= 9:
		return PriorityHigh
	default:
		return PriorityNone
	}
}

func (p Priority) String() string {
	switch p.Level() {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	default:
		return "none"
	}
}

// ParsePriority parses a named priority level. The empty string parses as
// PriorityNone.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return PriorityNone, nil
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	}
	return PriorityNone, fmt.Errorf("unknown priority %q", s)
}
