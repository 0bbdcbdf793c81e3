package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"buckets/internal/form"
	"buckets/internal/task"
)

type field int

const (
	fieldTitle field = iota
	fieldDescription
	fieldPriority
	fieldBucket
	fieldDue
	fieldCount
)

const dateLayout = "2006-01-02"

var bucketNames = map[task.Bucket]string{
	task.BucketDaily:    "Today",
	task.BucketTomorrow: "Tomorrow",
	task.BucketPlanned:  "Planned",
}

func (m Model) openForm(f *form.Form, back screen) (tea.Model, tea.Cmd) {
	m.form = f
	m.formBack = back
	m.screen = screenForm
	m.field = fieldTitle
	m.title.SetValue(f.Title())
	m.desc.SetValue(f.Description())
	m.due.SetValue("")
	if d, ok := f.DueDate(); ok {
		m.due.SetValue(formatDate(d))
	}
	m.focusField()

	switch f.Mode() {
	case form.ModeCompleted:
		m.status = fmt.Sprintf("Completed task: %s or enter deletes it", m.cfg.Keys.Submit)
	case form.ModeEdit:
		m.status = "Editing task"
	default:
		m.status = "New task: type a title and pick a bucket"
	}
	return m, textinput.Blink
}

func (m *Model) leaveForm() {
	m.form = nil
	m.title.Blur()
	m.desc.Blur()
	m.due.Blur()
	m.title.SetValue("")
	m.desc.SetValue("")
	m.due.SetValue("")
}

func (m *Model) focusField() {
	m.title.Blur()
	m.desc.Blur()
	m.due.Blur()
	if m.form == nil || m.form.ReadOnly() {
		return
	}
	switch m.field {
	case fieldTitle:
		m.title.Focus()
	case fieldDescription:
		m.desc.Focus()
	case fieldDue:
		m.due.Focus()
	}
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.screen = screenDashboard
		return m, nil
	}

	switch key := msg.String(); key {
	case m.cfg.Keys.Cancel:
		m.leaveForm()
		m.screen = m.formBack
		m.cursor = clampCursor(m.cursor, m.cursorLimit())
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.NextField, m.cfg.Keys.PrevField:
		if m.field == fieldDue {
			if err := m.applyDue(); err != nil {
				m.status = fmt.Sprintf("due date invalid: %v", err)
				return m, nil
			}
		}
		step := 1
		if key == m.cfg.Keys.PrevField {
			step = -1
		}
		m.field = field(wrapIndex(int(m.field)+step, int(fieldCount)))
		m.focusField()
		m.status = m.fieldPrompt()
		return m, nil
	case m.cfg.Keys.Submit, "enter":
		return m.submitForm()
	case "left", "right":
		step := 1
		if key == "left" {
			step = -1
		}
		switch m.field {
		case fieldPriority:
			m.form.CyclePriority(step)
			return m, nil
		case fieldBucket:
			m.cycleBucket(step)
			return m, nil
		}
	}

	if m.form.ReadOnly() {
		return m, nil
	}
	var cmd tea.Cmd
	switch m.field {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
		m.form.SetTitle(m.title.Value())
	case fieldDescription:
		m.desc, cmd = m.desc.Update(msg)
		m.form.SetDescription(m.desc.Value())
	case fieldDue:
		m.due, cmd = m.due.Update(msg)
	}
	return m, cmd
}

func (m *Model) cycleBucket(step int) {
	if m.form.ReadOnly() {
		return
	}
	next := task.Buckets[0]
	if cur := m.form.Bucket(); cur.Valid() {
		next = task.Buckets[wrapIndex(bucketIndex(cur)+step, len(task.Buckets))]
	}
	if err := m.form.ChooseBucket(next); err != nil {
		m.status = err.Error()
		return
	}
	if _, ok := m.form.DueDate(); !ok {
		m.due.SetValue("")
	}
}

// applyDue copies the due date input into the form. A date forces the
// planned bucket.
func (m *Model) applyDue() error {
	if m.form.ReadOnly() {
		return nil
	}
	d, err := parseDate(m.due.Value())
	if err != nil {
		return err
	}
	if d.IsZero() {
		m.form.ClearDate()
		return nil
	}
	m.form.PickDate(d)
	return nil
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if err := m.applyDue(); err != nil {
		m.status = fmt.Sprintf("due date invalid: %v", err)
		return m, nil
	}
	if err := m.form.Validate(); err != nil {
		m.status = fmt.Sprintf("cannot save: %v", err)
		return m, nil
	}

	f := m.form
	return m.perform(operation{
		done: m.formBack,
		run: func() (string, error) {
			res, err := f.Commit(m.store)
			if err != nil {
				return "", err
			}
			if res.Action == form.ActionDeleted {
				return "Deleted task", nil
			}
			return fmt.Sprintf("Task %q %s", res.Task.Title, res.Action), nil
		},
	})
}

func (m Model) fieldPrompt() string {
	switch m.field {
	case fieldPriority:
		return "Priority: ←/→ to choose"
	case fieldBucket:
		return "Bucket: ←/→ to choose (leaving Planned clears the date)"
	case fieldDue:
		return "Due date: YYYY-MM-DD, empty for none (sets Planned)"
	default:
		return ""
	}
}

func (m Model) viewForm() string {
	f := m.form
	if f == nil {
		return ""
	}

	var b strings.Builder
	heading := "NEW TASK"
	if f.Bucket().Valid() {
		heading = f.Bucket().Label()
	}
	b.WriteString(headerStyle.Render(heading))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render(f.Mode().String()))
	b.WriteString("\n\n")

	b.WriteString(m.formRow(fieldTitle, "Title", m.inputOrText(m.title, f.Title())))
	b.WriteString(m.formRow(fieldDescription, "Description", m.inputOrText(m.desc, emptyPlaceholder(f.Description()))))
	b.WriteString(m.formRow(fieldPriority, "Priority", renderChoices(priorityLabels(), string(f.Priority()))))

	var buckets []string
	for _, bk := range task.Buckets {
		buckets = append(buckets, bucketNames[bk])
	}
	b.WriteString(m.formRow(fieldBucket, "Bucket", renderChoices(buckets, bucketNames[f.Bucket()])))

	due := "(none)"
	if d, ok := f.DueDate(); ok {
		due = formatDate(d)
	}
	b.WriteString(m.formRow(fieldDue, "Due", m.inputOrText(m.due, due)))

	b.WriteString("\n")
	label := "[ Save ]"
	switch f.Mode() {
	case form.ModeCreate:
		label = "[ Create ]"
	case form.ModeCompleted:
		label = "[ Delete ]"
	}
	if f.CanCommit() {
		b.WriteString(selectedStyle.Render(label))
	} else {
		b.WriteString(mutedStyle.Render(label))
		if err := f.Validate(); err != nil {
			b.WriteString("  ")
			b.WriteString(errorStyle.Render(err.Error()))
		}
	}
	return b.String()
}

func (m Model) formRow(fd field, label, value string) string {
	prefix := " "
	if fd == m.field {
		prefix = ">"
	}
	return fmt.Sprintf("%s %-12s %s\n", prefix, label, value)
}

func (m Model) inputOrText(in textinput.Model, text string) string {
	if m.form.ReadOnly() {
		return mutedStyle.Render(text)
	}
	return in.View()
}

func priorityLabels() []string {
	out := make([]string, 0, len(task.Priorities))
	for _, p := range task.Priorities {
		out = append(out, string(p))
	}
	return out
}

func renderChoices(options []string, current string) string {
	parts := make([]string, 0, len(options))
	for _, o := range options {
		if o == current {
			parts = append(parts, selectedStyle.Render("("+o+")"))
		} else {
			parts = append(parts, mutedStyle.Render(" "+o+" "))
		}
	}
	return strings.Join(parts, " ")
}

func parseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, v)
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func emptyPlaceholder(v string) string {
	if strings.TrimSpace(v) == "" {
		return "(empty)"
	}
	return v
}
