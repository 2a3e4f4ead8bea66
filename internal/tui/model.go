// Package tui is the interactive todo viewer: a search box, a date range
// filter, an add form and a paged list, all driven by a session.Controller.
package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/idilsaglam/todoview/internal/model"
	"github.com/idilsaglam/todoview/internal/session"
	"github.com/idilsaglam/todoview/internal/view"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeDates
	modeAdd
)

type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusError
)

const msgCreatePending = "Still adding the previous todo"

type fetchedMsg struct {
	todos []model.Todo
	err   error
}

type createdMsg struct {
	todo model.Todo
	err  error
}

// Model is the Bubble Tea model. All Store mutations happen in Update.
type Model struct {
	ctx      context.Context
	ctrl     *session.Controller
	renderer *view.Renderer
	keys     keyMap
	help     help.Model
	spinner  spinner.Model

	mode     mode
	loading  int  // requests in flight
	creating bool // a create is in flight; further submits are ignored
	pending  session.Draft

	search      textinput.Model
	from, to    textinput.Model
	title, date textinput.Model
	field       int // focused field within the current form

	status      string
	statusLevel statusLevel
	width       int
	height      int
}

// New builds the model. Init starts the initial fetch, so the model begins
// in the loading state.
func New(ctx context.Context, ctrl *session.Controller, renderer *view.Renderer) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	m := Model{
		ctx:      ctx,
		ctrl:     ctrl,
		renderer: renderer,
		keys:     newKeyMap(),
		help:     help.New(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		loading:  1,
		search:   newInput("type to filter titles", 200),
		from:     newInput(session.DateLayout, 10),
		to:       newInput(session.DateLayout, 10),
		title:    newInput("New task title...", 200),
		date:     newInput(session.DateLayout, 10),
	}
	return m
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, ctrl *session.Controller, renderer *view.Renderer) error {
	if ctrl == nil {
		return fmt.Errorf("session controller is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(New(ctx, ctrl, renderer), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	return ti
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.renderer.Width = max(msg.Width-4, 20)
		m.help.Width = msg.Width
		return m, nil
	case spinner.TickMsg:
		if m.loading == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case fetchedMsg:
		return m.handleFetched(msg), nil
	case createdMsg:
		return m.handleCreated(msg), nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeDates:
			return m.updateDates(msg)
		case modeAdd:
			return m.updateAdd(msg)
		}
		return m.updateBrowse(msg)
	}

	// cursor blink and friends
	if in := m.focusedInput(); in != nil {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleFetched(msg fetchedMsg) Model {
	m.loading = max(m.loading-1, 0)
	if msg.err != nil {
		m.setStatus(fmt.Sprintf("%s: %v", session.MsgFetchFailed, msg.err), statusError)
		return m
	}
	m.ctrl.Loaded(msg.todos)
	m.clearFilterInputs()
	m.setStatus(fmt.Sprintf("Loaded %d todos", len(msg.todos)), statusInfo)
	return m
}

func (m Model) handleCreated(msg createdMsg) Model {
	m.loading = max(m.loading-1, 0)
	m.creating = false
	m.pending = session.Draft{}
	if msg.err != nil {
		m.setStatus(fmt.Sprintf("%s: %v", session.MsgCreateFailed, msg.err), statusError)
		return m
	}
	m.ctrl.Created(msg.todo)
	m.title.SetValue("")
	m.date.SetValue("")
	m.clearFilterInputs()
	if m.mode == modeAdd {
		m.setMode(modeBrowse)
	}
	m.setStatus("Added "+strconv.Quote(msg.todo.Title), statusInfo)
	return m
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Search):
		return m.enter(modeSearch)
	case key.Matches(msg, m.keys.DateFilter):
		return m.enter(modeDates)
	case key.Matches(msg, m.keys.Add):
		return m.enter(modeAdd)
	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	case key.Matches(msg, m.keys.PrevPage):
		m.stepPage(-1)
	case key.Matches(msg, m.keys.NextPage):
		m.stepPage(1)
	case key.Matches(msg, m.keys.FirstPage):
		m.goToPage(1)
	case key.Matches(msg, m.keys.LastPage):
		m.goToPage(m.pageCount())
	case key.Matches(msg, m.keys.JumpPage):
		n, err := strconv.Atoi(msg.String())
		if err == nil {
			m.goToPage(n)
		}
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit), key.Matches(msg, m.keys.Cancel):
		m.setMode(modeBrowse)
		return m, nil
	case msg.Type == tea.KeyPgUp:
		m.stepPage(-1)
		return m, nil
	case msg.Type == tea.KeyPgDown:
		m.stepPage(1)
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.ctrl.Search(m.search.Value())
		m.from.SetValue("")
		m.to.SetValue("")
	}
	return m, cmd
}

func (m Model) updateDates(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.setMode(modeBrowse)
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		return m, m.toggleField()
	case key.Matches(msg, m.keys.Submit):
		matched, err := m.ctrl.FilterDates(m.from.Value(), m.to.Value())
		if err != nil {
			m.setStatus(err.Error(), statusError)
			return m, nil
		}
		m.search.SetValue("")
		m.setMode(modeBrowse)
		m.setStatus(fmt.Sprintf("%d todos in range", len(matched)), statusInfo)
		return m, nil
	}
	return m.updateFocused(msg)
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.setMode(modeBrowse)
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		return m, m.toggleField()
	case key.Matches(msg, m.keys.Submit):
		if m.creating {
			m.setStatus(msgCreatePending, statusError)
			return m, nil
		}
		draft, err := m.ctrl.Loader().Validate(m.title.Value(), m.date.Value())
		if err != nil {
			m.setStatus(err.Error(), statusError)
			return m, nil
		}
		m.creating = true
		m.pending = draft
		m.loading++
		m.setStatus("", statusNone)
		return m, tea.Batch(m.spinner.Tick, m.createCmd(draft))
	}
	return m.updateFocused(msg)
}

func (m Model) enter(target mode) (tea.Model, tea.Cmd) {
	m.setMode(target)
	if in := m.focusedInput(); in != nil {
		return m, in.Focus()
	}
	return m, nil
}

func (m *Model) setMode(target mode) {
	m.mode = target
	m.field = 0
	for _, in := range []*textinput.Model{&m.search, &m.from, &m.to, &m.title, &m.date} {
		in.Blur()
	}
}

func (m *Model) focusedInput() *textinput.Model {
	switch m.mode {
	case modeSearch:
		return &m.search
	case modeDates:
		if m.field == 1 {
			return &m.to
		}
		return &m.from
	case modeAdd:
		if m.field == 1 {
			return &m.date
		}
		return &m.title
	}
	return nil
}

func (m *Model) toggleField() tea.Cmd {
	if in := m.focusedInput(); in != nil {
		in.Blur()
	}
	m.field = 1 - m.field
	if in := m.focusedInput(); in != nil {
		return in.Focus()
	}
	return nil
}

func (m Model) updateFocused(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	in := m.focusedInput()
	if in == nil {
		return m, nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return m, cmd
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	if m.loading > 0 {
		return m, nil
	}
	m.loading++
	return m, tea.Batch(m.spinner.Tick, m.fetchCmd())
}

func (m Model) pageCount() int {
	return view.PageCount(len(m.ctrl.Candidates()))
}

func (m *Model) goToPage(n int) {
	if n < 1 || n > m.pageCount() {
		return
	}
	m.ctrl.GoToPage(n)
}

func (m *Model) stepPage(delta int) {
	m.goToPage(m.ctrl.Page() + delta)
}

func (m *Model) clearFilterInputs() {
	m.search.SetValue("")
	m.from.SetValue("")
	m.to.SetValue("")
}

func (m *Model) setStatus(text string, level statusLevel) {
	m.status = text
	m.statusLevel = level
}

func (m Model) fetchCmd() tea.Cmd {
	loader := m.ctrl.Loader()
	ctx := m.ctx
	return func() tea.Msg {
		todos, err := loader.Fetch(ctx)
		return fetchedMsg{todos: todos, err: err}
	}
}

func (m Model) createCmd(d session.Draft) tea.Cmd {
	loader := m.ctrl.Loader()
	ctx := m.ctx
	return func() tea.Msg {
		created, err := loader.Create(ctx, d)
		return createdMsg{todo: created, err: err}
	}
}
