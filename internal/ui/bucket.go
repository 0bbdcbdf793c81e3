package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"buckets/internal/form"
	"buckets/internal/stats"
	"buckets/internal/task"
)

// rows lists the selectable tasks of the open bucket: pending first, then
// completed when that section is expanded.
func (m Model) rows() []task.Task {
	pending, completed, err := stats.SplitByCompletion(m.snapshot().Tasks(), m.bucket)
	if err != nil {
		return nil
	}
	if m.showCompleted {
		return append(pending, completed...)
	}
	return pending
}

func (m Model) cursorLimit() int {
	if m.screen == screenDashboard {
		return len(task.Buckets)
	}
	return len(m.rows())
}

func (m Model) selected() (task.Task, bool) {
	rows := m.rows()
	if len(rows) == 0 {
		return task.Task{}, false
	}
	return rows[clampCursor(m.cursor, len(rows))], true
}

func (m Model) updateBucket(key string) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Back:
		m.screen = screenDashboard
		m.cursor = bucketIndex(m.bucket)
		m.status = ""
	case m.cfg.Keys.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(m.rows()))
	case m.cfg.Keys.Up, "up":
		m.cursor = clampCursor(m.cursor-1, len(m.rows()))
	case m.cfg.Keys.ShowCompleted:
		m.showCompleted = !m.showCompleted
		m.cursor = clampCursor(m.cursor, len(m.rows()))
	case m.cfg.Keys.Add:
		return m.openForm(form.New(m.bucket), screenBucket)
	case m.cfg.Keys.Open, m.cfg.Keys.Edit:
		t, ok := m.selected()
		if !ok {
			m.status = "No tasks"
			return m, nil
		}
		return m.openForm(form.Open(t), screenBucket)
	case m.cfg.Keys.Toggle:
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m.perform(operation{
			done: screenBucket,
			run: func() (string, error) {
				toggled, err := m.store.ToggleCompleted(t.ID)
				if err != nil {
					return "", err
				}
				if toggled.Completed {
					return fmt.Sprintf("Completed %q", toggled.Title), nil
				}
				return fmt.Sprintf("Reopened %q", toggled.Title), nil
			},
		})
	case m.cfg.Keys.Delete:
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.confirmDel = true
		m.pendingDel = &t
		m.status = fmt.Sprintf("Delete %q? y/n", t.Title)
	}
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", "esc":
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		m.confirmDel = false
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			return m, nil
		}
		id := m.pendingDel.ID
		m.pendingDel = nil
		return m.perform(operation{
			done: screenBucket,
			run: func() (string, error) {
				if err := m.store.Delete(id); err != nil {
					return "", err
				}
				return "Deleted task", nil
			},
		})
	default:
		return m, nil
	}
}

func (m Model) viewBucket() string {
	tasks := m.snapshot().Tasks()
	pending, completed, _ := stats.SplitByCompletion(tasks, m.bucket)
	st := m.memo.Get(m.snapshot(), m.bucket)

	var b strings.Builder
	b.WriteString(bucketTitle(m.bucket))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %3d%%  %s\n\n",
		m.bar.ViewAs(st.Percentage), st.Percent(),
		mutedStyle.Render(fmt.Sprintf("%d/%d completed", st.Completed, st.Total))))

	if len(pending) == 0 {
		b.WriteString(mutedStyle.Render("No tasks in progress..."))
		b.WriteString("\n")
	}
	for i, t := range pending {
		b.WriteString(m.renderRow(i, t))
	}

	arrow := "▾"
	if m.showCompleted {
		arrow = "▴"
	}
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("COMPLETED (%d) %s", len(completed), arrow)))
	b.WriteString("\n")
	if m.showCompleted {
		if len(completed) == 0 {
			b.WriteString(mutedStyle.Render("No completed tasks..."))
			b.WriteString("\n")
		}
		for i, t := range completed {
			b.WriteString(m.renderRow(len(pending)+i, t))
		}
	}
	return b.String()
}

func (m Model) renderRow(i int, t task.Task) string {
	cursor := " "
	if i == m.cursor {
		cursor = ">"
	}
	checkbox := "[ ]"
	title := t.Title
	if t.Completed {
		checkbox = "[x]"
		title = doneStyle.Render(title)
	} else if i == m.cursor {
		title = selectedStyle.Render(title)
	}

	line := fmt.Sprintf("%s %s %s", cursor, checkbox, title)
	if tag := priorityTag(t.Priority); tag != "" {
		line += "  " + tag
	}
	if t.DueDate != nil {
		line += "  " + mutedStyle.Render(formatDate(*t.DueDate))
	}
	return line + "\n"
}

func bucketIndex(b task.Bucket) int {
	for i, v := range task.Buckets {
		if v == b {
			return i
		}
	}
	return 0
}
