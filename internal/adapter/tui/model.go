package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	domain "github.com/ItsmeMIGUEL/sample-crud-app/internal/domain/user"
	"github.com/ItsmeMIGUEL/sample-crud-app/internal/usecase/directory"
	"github.com/ItsmeMIGUEL/sample-crud-app/internal/usecase/form"
)

// Focus identifies which surface receives keyboard input.
type Focus int

const (
	// FocusList means navigation keys move the user list cursor and
	// action keys open the form or the delete confirmation.
	FocusList Focus = iota
	// FocusForm means keystrokes go to the form inputs. While the
	// form session is in its discard-confirmation sub-state, only the
	// keep-editing/discard keys are honored.
	FocusForm
	// FocusConfirmDelete means the delete confirmation modal is
	// active.
	FocusConfirmDelete
)

// loadResultMsg carries the outcome of a list fetch.
type loadResultMsg struct {
	users []domain.User
	err   error
}

// addResultMsg carries the outcome of a create call along with the
// submitted draft, whose name the success notification quotes.
type addResultMsg struct {
	draft   domain.User
	created *domain.User
	err     error
}

// updateResultMsg carries the outcome of an update call.
type updateResultMsg struct {
	name    string
	updated *domain.User
	err     error
}

// deleteResultMsg carries the outcome of a delete call.
type deleteResultMsg struct {
	id   int64
	name string
	err  error
}

// alertExpiredMsg is sent when a notification's display lifetime ends.
// The sequence number guards against a stale timer clearing a newer
// notification.
type alertExpiredMsg struct {
	seq int
}

// Model is the root bubbletea model: the single actor that owns the
// reconciler, the open form session, and all focus routing. Gateway
// calls run as commands on background goroutines; every state
// transition happens inside Update.
type Model struct {
	rec   *directory.Reconciler
	log   *zap.Logger
	keys  KeyMap
	theme Theme

	width  int
	height int

	cursor        int
	focus         Focus
	form          *formModel
	deleting      *domain.User
	quitRequested bool
}

// NewModel creates the root model over a reconciler.
func NewModel(rec *directory.Reconciler, log *zap.Logger) Model {
	return Model{
		rec:   rec,
		log:   log,
		keys:  DefaultKeyMap,
		theme: DefaultTheme(),
	}
}

// Init starts the initial list load.
func (m Model) Init() tea.Cmd {
	if err := m.rec.BeginLoad(); err != nil {
		return nil
	}
	return fetchUsers(m.rec.Gateway())
}

func fetchUsers(gw directory.Gateway) tea.Cmd {
	return func() tea.Msg {
		users, err := gw.List(context.Background())
		return loadResultMsg{users: users, err: err}
	}
}

func createUser(gw directory.Gateway, draft domain.User) tea.Cmd {
	return func() tea.Msg {
		created, err := gw.Create(context.Background(), draft)
		return addResultMsg{draft: draft, created: created, err: err}
	}
}

func updateUser(gw directory.Gateway, u domain.User) tea.Cmd {
	return func() tea.Msg {
		updated, err := gw.Update(context.Background(), u.ID, u)
		return updateResultMsg{name: u.Name, updated: updated, err: err}
	}
}

func deleteUser(gw directory.Gateway, u domain.User) tea.Cmd {
	return func() tea.Msg {
		err := gw.Delete(context.Background(), u.ID)
		return deleteResultMsg{id: u.ID, name: u.Name, err: err}
	}
}

// alertTimer schedules the auto-dismiss of the current notification.
func (m Model) alertTimer() tea.Cmd {
	seq := m.rec.AlertSeq()
	return tea.Tick(directory.AlertLifetime, func(time.Time) tea.Msg {
		return alertExpiredMsg{seq: seq}
	})
}

// Update is the single completion handler for every event: key
// presses, window resizes, operation results, and timer expiries.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadResultMsg:
		m.rec.FinishLoad(msg.users, msg.err)
		m.clampCursor()
		return m, m.alertTimer()

	case addResultMsg:
		m.rec.FinishAdd(msg.draft, msg.created, msg.err)
		if msg.err == nil {
			m.form = nil
			m.focus = FocusList
		}
		return m, m.alertTimer()

	case updateResultMsg:
		m.rec.FinishUpdate(msg.name, msg.updated, msg.err)
		if msg.err == nil {
			m.form = nil
			m.focus = FocusList
		}
		return m, m.alertTimer()

	case deleteResultMsg:
		m.rec.FinishDelete(msg.id, msg.name, msg.err)
		if msg.err == nil {
			m.deleting = nil
			m.focus = FocusList
		}
		m.clampCursor()
		return m, m.alertTimer()

	case alertExpiredMsg:
		m.rec.ExpireAlert(msg.seq)
		return m, nil

	case tea.KeyMsg:
		switch m.focus {
		case FocusForm:
			return m.updateForm(msg)
		case FocusConfirmDelete:
			return m.updateConfirmDelete(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	users := m.rec.Users()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(users)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		m.rec.DismissAlert()
		m.rec.DismissLoadError()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if err := m.rec.BeginLoad(); err != nil {
			return m, nil
		}
		// No alert is emitted until the load finishes; the expiry
		// timer is scheduled by the result handler.
		return m, fetchUsers(m.rec.Gateway())

	case key.Matches(msg, m.keys.Add):
		if m.rec.Busy() {
			return m, nil
		}
		m.form = newFormModel(nil, m.theme, m.keys)
		m.focus = FocusForm
		return m, m.form.focusCmd()

	case key.Matches(msg, m.keys.Edit):
		if m.rec.Busy() || len(users) == 0 {
			return m, nil
		}
		selected := users[m.cursor]
		m.form = newFormModel(&selected, m.theme, m.keys)
		m.focus = FocusForm
		return m, m.form.focusCmd()

	case key.Matches(msg, m.keys.Delete):
		if m.rec.Busy() || len(users) == 0 {
			return m, nil
		}
		selected := users[m.cursor]
		m.deleting = &selected
		m.focus = FocusConfirmDelete
		return m, nil
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form

	// The discard-confirmation sub-state has exactly two exits.
	if f.session.Phase() == form.PhaseConfirmingDiscard {
		switch {
		case key.Matches(msg, m.keys.Deny):
			f.session.KeepEditing()
			m.quitRequested = false
			return m, nil
		case key.Matches(msg, m.keys.Confirm):
			f.session.Discard()
			m.form = nil
			m.focus = FocusList
			if m.quitRequested {
				return m, tea.Quit
			}
			return m, nil
		}
		return m, nil
	}

	switch {
	case msg.Type == tea.KeyCtrlC:
		// Quitting the program with unsaved work routes through the
		// same discard confirmation as closing the form.
		if f.session.RequestClose() {
			return m, tea.Quit
		}
		m.quitRequested = true
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		if f.session.RequestClose() {
			m.form = nil
			m.focus = FocusList
		}
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.rec.Busy() {
			return m, nil
		}
		f.blurCurrent()
		draft, ok := f.session.Submit()
		if !ok {
			return m, nil
		}
		if f.session.IsEdit() {
			if err := m.rec.BeginUpdate(draft.Name); err != nil {
				return m, nil
			}
			return m, tea.Batch(updateUser(m.rec.Gateway(), draft), m.alertTimer())
		}
		if err := m.rec.BeginAdd(); err != nil {
			return m, nil
		}
		return m, tea.Batch(createUser(m.rec.Gateway(), draft), m.alertTimer())

	case key.Matches(msg, m.keys.NextField):
		return m, f.focusField(f.focusIndex + 1)

	case key.Matches(msg, m.keys.PrevField):
		return m, f.focusField(f.focusIndex - 1)
	}

	return m, f.handleInput(msg)
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Deny):
		if m.rec.Busy() {
			return m, nil
		}
		m.deleting = nil
		m.focus = FocusList
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if err := m.rec.BeginDelete(m.deleting.Name); err != nil {
			return m, nil
		}
		return m, tea.Batch(deleteUser(m.rec.Gateway(), *m.deleting), m.alertTimer())
	}
	return m, nil
}

// clampCursor keeps the selection inside the list after it shrinks.
func (m *Model) clampCursor() {
	if n := len(m.rec.Users()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
