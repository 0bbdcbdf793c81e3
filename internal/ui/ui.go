package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"buckets/internal/config"
	"buckets/internal/form"
	"buckets/internal/logger"
	"buckets/internal/stats"
	"buckets/internal/store"
	"buckets/internal/task"
)

type screen int

const (
	screenDashboard screen = iota
	screenBucket
	screenForm
)

// operation is a store mutation queued behind the processing spinner.
type operation struct {
	run  func() (string, error)
	done screen
}

type operationDueMsg struct{}

type Model struct {
	store *store.Store
	cfg   config.Config
	memo  *stats.Memo
	delay time.Duration

	screen        screen
	cursor        int
	bucket        task.Bucket
	showCompleted bool
	confirmDel    bool
	pendingDel    *task.Task

	form     *form.Form
	formBack screen
	field    field
	title    textinput.Model
	desc     textinput.Model
	due      textinput.Model

	bar     progress.Model
	spinner spinner.Model
	busy    *operation

	status string
	width  int
}

func New(s *store.Store, cfg config.Config) (Model, error) {
	delay, err := cfg.Delay()
	if err != nil {
		return Model{}, err
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = accentStyle

	return Model{
		store:   s,
		cfg:     cfg,
		memo:    &stats.Memo{},
		delay:   delay,
		screen:  screenDashboard,
		title:   newInput("New Task", 256),
		desc:    newInput("Description", 1024),
		due:     newInput("YYYY-MM-DD", 10),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage()),
		spinner: sp,
		status:  fmt.Sprintf("Press '%s' to open a bucket, '%s' to add a task.", keyLabel(cfg.Keys.Open), cfg.Keys.Add),
	}, nil
}

func Run(s *store.Store, cfg config.Config) error {
	m, err := New(s, cfg)
	if err != nil {
		return err
	}
	logger.Info("ui: starting", zap.Int("tasks", s.Snapshot().Len()), zap.Duration("processing_delay", m.delay))
	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	return ti
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.busy != nil {
			return m, nil
		}
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		switch m.screen {
		case screenBucket:
			return m.updateBucket(msg.String())
		case screenForm:
			return m.updateForm(msg)
		default:
			return m.updateDashboard(msg.String())
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = clampWidth(msg.Width-30, 10, 60)
		m.title.Width = clampWidth(msg.Width-20, 10, 80)
		m.desc.Width = m.title.Width
	case spinner.TickMsg:
		if m.busy == nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case operationDueMsg:
		return m.finish()
	}
	return m, nil
}

// perform applies op right away, or after the configured processing delay
// with the spinner running.
func (m Model) perform(op operation) (tea.Model, tea.Cmd) {
	if m.delay <= 0 {
		m.busy = &op
		return m.finish()
	}
	m.busy = &op
	m.status = "Processing..."
	return m, tea.Batch(m.spinner.Tick, tea.Tick(m.delay, func(time.Time) tea.Msg {
		return operationDueMsg{}
	}))
}

func (m Model) finish() (tea.Model, tea.Cmd) {
	if m.busy == nil {
		return m, nil
	}
	op := *m.busy
	m.busy = nil

	msg, err := op.run()
	if err != nil {
		logger.Warn("ui: operation failed", zap.Error(err))
		m.status = fmt.Sprintf("failed: %v", err)
		return m, nil
	}
	m.status = msg
	if op.done != m.screen {
		m.leaveForm()
		m.screen = op.done
	}
	m.cursor = clampCursor(m.cursor, m.cursorLimit())
	return m, nil
}

func (m Model) View() string {
	var body string
	switch m.screen {
	case screenBucket:
		body = m.viewBucket()
	case screenForm:
		body = m.viewForm()
	default:
		body = m.viewDashboard()
	}

	status := statusStyle.Render(m.status)
	if m.busy != nil {
		status = m.spinner.View() + " " + status
	}
	return body + "\n\n" + status + "\n" + helpStyle.Render(m.help())
}

func (m Model) help() string {
	k := m.cfg.Keys
	switch m.screen {
	case screenBucket:
		return fmt.Sprintf("%s/%s move • %s toggle • %s/%s open • %s add • %s delete • %s completed • %s back • %s quit",
			k.Up, k.Down, keyLabel(k.Toggle), keyLabel(k.Open), k.Edit, k.Add, k.Delete, k.ShowCompleted, k.Back, k.Quit)
	case screenForm:
		return fmt.Sprintf("%s/%s field • ←/→ choose • %s or enter save • %s cancel",
			k.NextField, k.PrevField, k.Submit, k.Cancel)
	default:
		return fmt.Sprintf("%s/%s move • %s open • %s add • %s quit",
			k.Up, k.Down, keyLabel(k.Open), k.Add, k.Quit)
	}
}

func (m Model) snapshot() store.Snapshot {
	return m.store.Snapshot()
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}

func clampWidth(w, lo, hi int) int {
	if w < lo {
		return lo
	}
	if w > hi {
		return hi
	}
	return w
}
