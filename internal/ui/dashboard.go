package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"buckets/internal/form"
	"buckets/internal/task"
)

func (m Model) updateDashboard(key string) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(task.Buckets))
	case m.cfg.Keys.Up, "up":
		m.cursor = clampCursor(m.cursor-1, len(task.Buckets))
	case m.cfg.Keys.Open:
		return m.openBucket(task.Buckets[clampCursor(m.cursor, len(task.Buckets))]), nil
	case m.cfg.Keys.Add:
		return m.openForm(form.New(""), screenDashboard)
	}
	return m, nil
}

func (m Model) openBucket(b task.Bucket) Model {
	m.screen = screenBucket
	m.bucket = b
	m.cursor = 0
	m.showCompleted = false
	m.status = fmt.Sprintf("%s: %s to toggle, %s to add", b.Label(), keyLabel(m.cfg.Keys.Toggle), m.cfg.Keys.Add)
	return m
}

func (m Model) viewDashboard() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("BUCKETS"))
	b.WriteString("\n\n")

	for i, s := range m.memo.Overview(m.snapshot()) {
		style := cardStyle
		if i == m.cursor {
			style = activeCardStyle
		}
		card := fmt.Sprintf("%s\n%s %3d%%\n%s",
			bucketTitle(s.Bucket),
			m.bar.ViewAs(s.Percentage),
			s.Percent(),
			mutedStyle.Render(fmt.Sprintf("%d/%d completed", s.Completed, s.Total)))
		b.WriteString(style.Render(card))
		b.WriteString("\n")
	}
	return b.String()
}
