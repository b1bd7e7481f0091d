package domain

import (
	"fmt"
	"strings"
)

// Priority ranks a backlog task. The zero value means no priority marker.
type Priority int

const (
	PriorityNone Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
)

// String returns the lowercase name of the priority
func (p Priority) String() string {
	switch p {
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

// Marker returns the inline backlog marker for the priority ("[!]", "[!!]", "[!!!]")
func (p Priority) Marker() string {
	if p <= PriorityNone || p > PriorityHigh {
		return ""
	}
	return "[" + strings.Repeat("!", int(p)) + "]"
}

// MarshalText implements encoding.TextMarshaler
func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Priority) UnmarshalText(text []byte) error {
	parsed, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePriority converts a priority name into a Priority
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
	return PriorityNone, fmt.Errorf("invalid priority %q (expected none, low, medium or high)", s)
}

// Task is one checklist item of the backlog.
// LineNumber and RawLine are only set for tasks loaded from a persisted backlog.
type Task struct {
	Completed   bool     `json:"completed"`
	Description string   `json:"description"`
	ID          string   `json:"id"`
	LineNumber  int      `json:"line_number,omitempty"`
	Priority    Priority `json:"priority"`
	RawLine     string   `json:"raw_line,omitempty"`
	Tags        []string `json:"tags"`
}

// IsPersisted reports whether the task came from a backlog file line
func (t Task) IsPersisted() bool {
	return t.LineNumber > 0
}

// HasTag reports whether the task carries the given tag (without '#')
func (t Task) HasTag(tag string) bool {
	tag = strings.TrimPrefix(tag, "#")
	for _, existing := range t.Tags {
		if strings.EqualFold(existing, tag) {
			return true
		}
	}
	return false
}

// TaskStats summarizes backlog progress
type TaskStats struct {
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completion_rate"`
	Pending        int     `json:"pending"`
	Total          int     `json:"total"`
}
