package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/obreiro/internal/domain"
)

// Text styles
var (
	BranchStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorPending)
)

// Outcome styles
var (
	FailureStyle = lipgloss.NewStyle().
			Foreground(ColorFailure).
			Bold(true)

	PendingStyle = lipgloss.NewStyle().
			Foreground(ColorPending)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)
)

// Priority styles
var (
	PriorityHighStyle = lipgloss.NewStyle().
				Foreground(ColorPriorityHigh).
				Bold(true)

	PriorityLowStyle = lipgloss.NewStyle().
				Foreground(ColorPriorityLow)

	PriorityMediumStyle = lipgloss.NewStyle().
				Foreground(ColorPriorityMedium)

	PriorityNoneStyle = lipgloss.NewStyle().
				Foreground(ColorPriorityNone)
)

// Icons
const (
	IconCheck   = "✓"
	IconCross   = "✗"
	IconPending = "○"
	IconSkip    = "-"
)

// PriorityStyle returns the style for a task priority
func PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return PriorityHighStyle
	case domain.PriorityMedium:
		return PriorityMediumStyle
	case domain.PriorityLow:
		return PriorityLowStyle
	default:
		return PriorityNoneStyle
	}
}

// OutcomeStyle returns the style for a run outcome
func OutcomeStyle(o domain.RunOutcome) lipgloss.Style {
	switch o {
	case domain.RunOutcomeCommitted:
		return SuccessStyle
	case domain.RunOutcomeFailed:
		return FailureStyle
	case domain.RunOutcomeNoChanges, domain.RunOutcomeNoTask:
		return MutedStyle
	default:
		return PendingStyle
	}
}

// GateIcon renders the pass/fail marker of a quality gate
func GateIcon(passed bool) string {
	if passed {
		return SuccessStyle.Render(IconCheck)
	}
	return FailureStyle.Render(IconCross)
}

// TaskIcon renders the completion marker of a task
func TaskIcon(completed bool) string {
	if completed {
		return SuccessStyle.Render(IconCheck)
	}
	return MutedStyle.Render(IconPending)
}
