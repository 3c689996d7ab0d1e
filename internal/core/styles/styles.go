// Package styles provides shared lipgloss styles for CLI output.
package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/fieldworks/sitecmd/internal/core/dashboard"
	"github.com/fieldworks/sitecmd/internal/core/item"
	"github.com/fieldworks/sitecmd/internal/core/notify"
)

var (
	Heading = lipgloss.NewStyle().Bold(true)
	Muted   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	success = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warning = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	danger  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	info    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))

	priorityStyles = map[item.Priority]lipgloss.Style{
		item.PriorityCritical: danger.Bold(true),
		item.PriorityHigh:     danger,
		item.PriorityMedium:   warning,
		item.PriorityLow:      Muted,
	}

	bucketStyles = map[dashboard.BucketKey]lipgloss.Style{
		dashboard.BucketOverdue:   danger.Bold(true),
		dashboard.BucketDueToday:  info.Bold(true),
		dashboard.BucketUpcoming:  Heading,
		dashboard.BucketNoDueDate: Muted.Bold(true),
	}

	statusStyles = map[item.Status]lipgloss.Style{
		item.StatusOpen:       info,
		item.StatusInProgress: warning,
		item.StatusBlocked:    danger,
		item.StatusDone:       success,
		item.StatusCancelled:  Muted,
	}
)

// PriorityBadge renders a priority label in its severity color.
func PriorityBadge(p item.Priority) string {
	style, ok := priorityStyles[p]
	if !ok {
		style = Muted
	}
	return style.Render(string(p))
}

// BucketHeading renders a bucket title with its entry count.
func BucketHeading(key dashboard.BucketKey, count int) string {
	style, ok := bucketStyles[key]
	if !ok {
		style = Heading
	}
	return style.Render(key.Title()) + Muted.Render(countSuffix(count))
}

// StatusLabel renders a lifecycle status in its color.
func StatusLabel(s item.Status) string {
	style, ok := statusStyles[s]
	if !ok {
		style = Muted
	}
	return style.Render(string(s))
}

// NotifyLine renders a notification message by severity.
func NotifyLine(level notify.Level, msg string) string {
	switch level {
	case notify.LevelError:
		return danger.Render(msg)
	case notify.LevelWarning:
		return warning.Render(msg)
	default:
		return info.Render(msg)
	}
}

// Success renders a confirmation message.
func Success(msg string) string {
	return success.Render(msg)
}

// Warning renders a cautionary message.
func Warning(msg string) string {
	return warning.Render(msg)
}

// Error renders an error message.
func Error(msg string) string {
	return danger.Render(msg)
}

func countSuffix(count int) string {
	if count == 1 {
		return " (1 item)"
	}
	return fmt.Sprintf(" (%d items)", count)
}
