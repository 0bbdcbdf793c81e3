package ui

import (
	"github.com/charmbracelet/lipgloss"

	"buckets/internal/task"
)

var (
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8B5CF6"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6D6D6D"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ABABAB"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#B9B9B9"))
	doneStyle     = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("#ABABAB"))
	selectedStyle = lipgloss.NewStyle().Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6A6A"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2).
			MarginBottom(1)
	activeCardStyle = cardStyle.BorderForeground(lipgloss.Color("#8B5CF6"))
)

var bucketColors = map[task.Bucket]lipgloss.Color{
	task.BucketDaily:    lipgloss.Color("#A031C8"),
	task.BucketTomorrow: lipgloss.Color("#037BF8"),
	task.BucketPlanned:  lipgloss.Color("#F59E0B"),
}

var priorityColors = map[task.Priority]lipgloss.Color{
	task.PriorityHigh:   lipgloss.Color("#FF6A6A"),
	task.PriorityMedium: lipgloss.Color("#FFB433"),
	task.PriorityLow:    lipgloss.Color("#0559FF"),
}

func bucketTitle(b task.Bucket) string {
	return lipgloss.NewStyle().Bold(true).Foreground(bucketColors[b]).Render(b.Label())
}

func priorityTag(p task.Priority) string {
	if p == task.PriorityNone {
		return ""
	}
	return lipgloss.NewStyle().Foreground(priorityColors[p]).Render(string(p))
}
