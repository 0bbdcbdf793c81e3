package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buckets/internal/config"
	"buckets/internal/form"
	"buckets/internal/store"
	"buckets/internal/task"
)

func newModel(t *testing.T, cfg config.Config) (Model, *store.Store) {
	t.Helper()
	s, err := store.New(store.WithTasks(store.Seed(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))))
	require.NoError(t, err)
	m, err := New(s, cfg)
	require.NoError(t, err)
	return m, s
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	save  = tea.KeyMsg{Type: tea.KeyCtrlS}
	right = tea.KeyMsg{Type: tea.KeyRight}
)

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestDashboardShowsEveryBucket(t *testing.T) {
	m, _ := newModel(t, config.Default())
	view := m.View()
	for _, b := range task.Buckets {
		assert.Contains(t, view, b.Label())
	}
	assert.Contains(t, view, "1/2 completed")
	assert.Contains(t, view, "0/1 completed")
}

func TestDashboardCursorStaysInRange(t *testing.T) {
	m, _ := newModel(t, config.Default())
	m = press(t, m, runes("k"))
	assert.Equal(t, 0, m.cursor)
	m = press(t, m, runes("j"), runes("j"), runes("j"), runes("j"))
	assert.Equal(t, 2, m.cursor)

	m = press(t, m, enter)
	assert.Equal(t, screenBucket, m.screen)
	assert.Equal(t, task.BucketPlanned, m.bucket)

	m = press(t, m, esc)
	assert.Equal(t, screenDashboard, m.screen)
	assert.Equal(t, 2, m.cursor)
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t, config.Default())
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestToggleFromBucketScreen(t *testing.T) {
	m, s := newModel(t, config.Default())
	m = press(t, m, enter)
	require.Equal(t, task.BucketDaily, m.bucket)

	m = press(t, m, space)
	got, _ := s.Snapshot().Get(1)
	assert.True(t, got.Completed)
	assert.Contains(t, m.status, "Completed")
	assert.Contains(t, m.View(), "2/2 completed")
	assert.Contains(t, m.View(), "No tasks in progress")
}

func TestShowCompletedAndReopen(t *testing.T) {
	m, s := newModel(t, config.Default())
	m = press(t, m, enter, runes("c"))
	require.True(t, m.showCompleted)
	require.Len(t, m.rows(), 2)

	m = press(t, m, runes("j"), space)
	got, _ := s.Snapshot().Get(2)
	assert.False(t, got.Completed)
	assert.Contains(t, m.status, "Reopened")
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m, s := newModel(t, config.Default())
	m = press(t, m, enter, runes("d"))
	require.True(t, m.confirmDel)

	m = press(t, m, runes("n"))
	assert.False(t, m.confirmDel)
	assert.Equal(t, 5, s.Snapshot().Len())

	m = press(t, m, runes("d"), runes("y"))
	assert.Equal(t, 4, s.Snapshot().Len())
	_, ok := s.Snapshot().Get(1)
	assert.False(t, ok)
	assert.Equal(t, "Deleted task", m.status)
}

func TestAddFromBucketPresetsBucket(t *testing.T) {
	m, s := newModel(t, config.Default())
	m = press(t, m, runes("j"), enter, runes("a"))
	require.Equal(t, screenForm, m.screen)
	require.Equal(t, form.ModeCreate, m.form.Mode())

	m = press(t, m, runes("Buy milk"), save)
	assert.Equal(t, screenBucket, m.screen)
	assert.Nil(t, m.form)

	require.Equal(t, 6, s.Snapshot().Len())
	created := s.Snapshot().Tasks()[0]
	assert.Equal(t, "Buy milk", created.Title)
	assert.Equal(t, task.BucketTomorrow, created.Bucket)
	assert.False(t, created.Completed)
}

func TestFormRefusesInvalidCommit(t *testing.T) {
	m, s := newModel(t, config.Default())
	m = press(t, m, runes("a"))
	require.Equal(t, screenForm, m.screen)

	m = press(t, m, runes("Orphan"), save)
	assert.Equal(t, screenForm, m.screen)
	assert.Contains(t, m.status, "cannot save")
	assert.Equal(t, 5, s.Snapshot().Len())
	assert.Contains(t, m.View(), "bucket must be chosen")

	m = press(t, m, esc)
	assert.Equal(t, screenDashboard, m.screen)
	assert.Equal(t, "Cancelled", m.status)
}

func TestFormDueDateForcesPlanned(t *testing.T) {
	m, s := newModel(t, config.Default())
	m = press(t, m, runes("a"), runes("Dentist"), tab, tab, tab, tab)
	require.Equal(t, fieldDue, m.field)

	m = press(t, m, runes("2025-07-01"), save)
	require.Equal(t, screenDashboard, m.screen)

	created := s.Snapshot().Tasks()[0]
	assert.Equal(t, "Dentist", created.Title)
	assert.Equal(t, task.BucketPlanned, created.Bucket)
	require.NotNil(t, created.DueDate)
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), *created.DueDate)
}

func TestFormRejectsBadDate(t *testing.T) {
	m, s := newModel(t, config.Default())
	m = press(t, m, runes("a"), runes("Dentist"), tab, tab, tab, tab, runes("tomorrow"), save)
	assert.Equal(t, screenForm, m.screen)
	assert.Contains(t, m.status, "due date invalid")
	assert.Equal(t, 5, s.Snapshot().Len())
}

func TestEditMovesTaskOutOfPlanned(t *testing.T) {
	m, s := newModel(t, config.Default())
	// planned bucket, first pending task is #4 with a due date
	m = press(t, m, runes("j"), runes("j"), enter, runes("e"))
	require.Equal(t, form.ModeEdit, m.form.Mode())
	require.Equal(t, task.ID(4), m.form.TaskID())
	assert.Equal(t, "2024-12-20", m.due.Value())

	m = press(t, m, tab, tab, tab, right)
	assert.Equal(t, task.BucketDaily, m.form.Bucket())
	assert.Empty(t, m.due.Value())

	m = press(t, m, save)
	assert.Equal(t, screenBucket, m.screen)
	got, _ := s.Snapshot().Get(4)
	assert.Equal(t, task.BucketDaily, got.Bucket)
	assert.Nil(t, got.DueDate)
	assert.NotNil(t, got.UpdatedAt)
}

func TestCompletedTaskFormDeletes(t *testing.T) {
	m, s := newModel(t, config.Default())
	m = press(t, m, enter, runes("c"), runes("j"), enter)
	require.Equal(t, form.ModeCompleted, m.form.Mode())
	assert.Contains(t, m.View(), "[ Delete ]")

	// read-only: typing changes nothing
	m = press(t, m, runes("xyz"))
	assert.Equal(t, "Review pull requests", m.form.Title())

	m = press(t, m, enter)
	_, ok := s.Snapshot().Get(2)
	assert.False(t, ok)
	assert.Equal(t, screenBucket, m.screen)
}

func TestProcessingDelayShowsSpinner(t *testing.T) {
	cfg := config.Default()
	cfg.ProcessingDelay = "1500ms"
	m, s := newModel(t, cfg)
	m = press(t, m, enter)

	next, cmd := m.Update(space)
	m = next.(Model)
	require.NotNil(t, cmd)
	require.NotNil(t, m.busy)
	assert.Equal(t, "Processing...", m.status)
	got, _ := s.Snapshot().Get(1)
	assert.False(t, got.Completed, "nothing applied before the delay elapses")

	// keys are ignored while busy
	m = press(t, m, runes("d"))
	assert.False(t, m.confirmDel)

	m = press(t, m, operationDueMsg{})
	assert.Nil(t, m.busy)
	got, _ = s.Snapshot().Get(1)
	assert.True(t, got.Completed)
}

func TestNewRejectsBadDelay(t *testing.T) {
	s, err := store.New()
	require.NoError(t, err)
	cfg := config.Default()
	cfg.ProcessingDelay = "later"
	_, err = New(s, cfg)
	assert.Error(t, err)
}

func TestCustomKeymap(t *testing.T) {
	cfg := config.Default()
	cfg.Keys.Open = "o"
	cfg.Keys.Toggle = "x"
	m, s := newModel(t, cfg)

	m = press(t, m, enter)
	assert.Equal(t, screenDashboard, m.screen)

	m = press(t, m, runes("o"), runes("x"))
	got, _ := s.Snapshot().Get(1)
	assert.True(t, got.Completed)
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, 0, clampCursor(-1, 3))
	assert.Equal(t, 2, clampCursor(7, 3))
	assert.Equal(t, 0, clampCursor(4, 0))
	assert.Equal(t, 2, wrapIndex(-1, 3))
	assert.Equal(t, 0, wrapIndex(3, 3))

	d, err := parseDate(" 2024-12-18 ")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-18", formatDate(d))
	_, err = parseDate("18/12/2024")
	assert.Error(t, err)
}
