package ui

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasklist/internal/config"
	"tasklist/internal/task"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeSearch
	modeDate
)

const (
	fieldTitle = iota
	fieldDescription
)

type Model struct {
	store      *task.Store
	cfg        config.Config
	filter     task.Filter
	view       task.View
	cursor     int
	mode       mode
	fields     [2]textinput.Model
	index      int
	input      textinput.Model
	editor     task.Editor
	status     string
	confirmDel bool
	pendingDel *task.Task
}

func New(store *task.Store, cfg config.Config) Model {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 256
	title.Width = 40

	desc := textinput.New()
	desc.Placeholder = "Description"
	desc.CharLimit = 1024
	desc.Width = 40

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		store:  store,
		cfg:    cfg,
		filter: task.NewFilter(),
		fields: [2]textinput.Model{title, desc},
		input:  ti,
		mode:   modeList,
		status: fmt.Sprintf("Press '%s' to add, '%s' to search.", cfg.Keys.Add, cfg.Keys.Search),
	}
	m.refresh()
	return m
}

func Run(store *task.Store, cfg config.Config) error {
	program := tea.NewProgram(New(store, cfg), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		w := max(msg.Width-16, 10)
		m.input.Width = w
		m.fields[fieldTitle].Width = w
		m.fields[fieldDescription].Width = w
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch m.mode {
	case modeAdd:
		return m.updateAddMode(key, msg)
	case modeEdit:
		return m.updateEditMode(key, msg)
	case modeSearch:
		return m.updateSearchMode(key, msg)
	case modeDate:
		return m.updateDateMode(key, msg)
	}
	return m.updateListMode(key)
}

// refresh recomputes the visible page from the store and the filter.
func (m *Model) refresh() {
	m.view = task.Derive(m.store.Tasks(), m.filter)
	m.cursor = clampCursor(m.cursor, len(m.view.Tasks))
}

func (m Model) selected() (task.Task, bool) {
	if len(m.view.Tasks) == 0 {
		return task.Task{}, false
	}
	return m.view.Tasks[clampCursor(m.cursor, len(m.view.Tasks))], true
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(m.view.Tasks))
	case m.cfg.Keys.Up, "up":
		m.cursor = clampCursor(m.cursor-1, len(m.view.Tasks))
	case m.cfg.Keys.NextPage, "right":
		if m.filter.Page < m.view.PageCount {
			m.filter = m.filter.WithPage(m.filter.Page + 1)
			m.cursor = 0
			m.refresh()
		}
	case m.cfg.Keys.PrevPage, "left":
		if m.filter.Page > 1 {
			m.filter = m.filter.WithPage(m.filter.Page - 1)
			m.cursor = 0
			m.refresh()
		}
	case m.cfg.Keys.Add:
		return m.startForm(modeAdd, task.Task{})
	case m.cfg.Keys.Edit:
		t, ok := m.selected()
		if !ok {
			m.status = "No tasks to edit"
			return m, nil
		}
		m.editor.Begin(t)
		return m.startForm(modeEdit, t)
	case m.cfg.Keys.Toggle:
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		if updated, ok := m.store.ToggleStatus(t.ID); ok {
			m.status = fmt.Sprintf("%q is now %s", updated.Title, updated.Status.Label())
		}
		m.refresh()
	case m.cfg.Keys.Delete:
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.confirmDel = true
		m.pendingDel = &t
		m.status = fmt.Sprintf("Delete \"%s\"? y/n", t.Title)
	case m.cfg.Keys.Search:
		m.mode = modeSearch
		m.input.Placeholder = "search title or description"
		m.input.SetValue(m.filter.Search)
		m.input.CursorEnd()
		m.status = "Search: type to filter, enter or esc to return"
		cmd := m.input.Focus()
		return m, cmd
	case m.cfg.Keys.FilterDate:
		m.mode = modeDate
		m.input.Placeholder = "YYYY-MM-DD (empty clears)"
		m.input.SetValue(formatDate(m.filter.Date))
		m.input.CursorEnd()
		m.status = "Date filter: enter to apply, esc to cancel"
		cmd := m.input.Focus()
		return m, cmd
	case m.cfg.Keys.HideCompleted:
		m.filter = m.filter.WithHideCompleted(!m.filter.HideCompleted)
		m.refresh()
		if m.filter.HideCompleted {
			m.status = "Hiding completed tasks"
		} else {
			m.status = "Showing completed tasks"
		}
	case m.cfg.Keys.ClearFilters:
		m.filter = m.filter.Reset()
		m.cursor = 0
		m.refresh()
		m.status = "Filters cleared"
	}
	return m, nil
}

func (m Model) startForm(md mode, t task.Task) (tea.Model, tea.Cmd) {
	m.mode = md
	m.index = fieldTitle
	m.fields[fieldTitle].SetValue(t.Title)
	m.fields[fieldDescription].SetValue(t.Description)
	for i := range m.fields {
		m.fields[i].CursorEnd()
	}
	m.fields[fieldDescription].Blur()
	if md == modeEdit {
		m.status = "Edit task: tab to switch field, enter to save, esc to cancel"
	} else {
		m.status = "New task: tab to switch field, enter to add, esc to cancel"
	}
	cmd := m.fields[fieldTitle].Focus()
	return m, cmd
}

func (m Model) closeForm() Model {
	m.mode = modeList
	for i := range m.fields {
		m.fields[i].SetValue("")
		m.fields[i].Blur()
	}
	m.index = fieldTitle
	return m
}

func (m Model) switchField() (Model, tea.Cmd) {
	m.fields[m.index].Blur()
	m.index = (m.index + 1) % len(m.fields)
	cmd := m.fields[m.index].Focus()
	return m, cmd
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m = m.closeForm()
		m.status = "Cancelled"
		return m, nil
	case "tab", "shift+tab":
		return m.switchField()
	case m.cfg.Keys.Confirm:
		if m.index == fieldTitle {
			return m.switchField()
		}
		created := m.store.Create(m.fields[fieldTitle].Value(), m.fields[fieldDescription].Value())
		m = m.closeForm()
		m.refresh()
		m.status = fmt.Sprintf("Added task #%d", created.ID)
		return m, nil
	default:
		var cmd tea.Cmd
		m.fields[m.index], cmd = m.fields[m.index].Update(msg)
		return m, cmd
	}
}

func (m Model) updateEditMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.editor.Cancel()
		m = m.closeForm()
		m.status = "Edit cancelled"
		return m, nil
	case "tab", "shift+tab":
		return m.switchField()
	case m.cfg.Keys.Confirm:
		if m.index == fieldTitle {
			return m.switchField()
		}
		applied, err := m.editor.Save(m.store)
		m = m.closeForm()
		m.refresh()
		switch {
		case err != nil:
			m.status = fmt.Sprintf("save failed: %v", err)
		case !applied:
			m.status = "Task no longer exists"
		default:
			m.status = "Task saved"
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.fields[m.index], cmd = m.fields[m.index].Update(msg)
		if m.index == fieldTitle {
			_ = m.editor.SetTitle(m.fields[fieldTitle].Value())
		} else {
			_ = m.editor.SetDescription(m.fields[fieldDescription].Value())
		}
		return m, cmd
	}
}

func (m Model) updateSearchMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Confirm, m.cfg.Keys.Cancel:
		m.mode = modeList
		m.input.Blur()
		m.status = fmt.Sprintf("%d matching", m.view.Matched)
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.filter = m.filter.WithSearch(m.input.Value())
		m.refresh()
		return m, cmd
	}
}

func (m Model) updateDateMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.mode = modeList
		m.input.Blur()
		m.status = "Date filter unchanged"
		return m, nil
	case m.cfg.Keys.Confirm:
		v := strings.TrimSpace(m.input.Value())
		if v == "" {
			m.filter = m.filter.WithoutDate()
			m.status = "Date filter cleared"
		} else {
			d, err := civil.ParseDate(v)
			if err != nil {
				m.status = "Date must be YYYY-MM-DD"
				return m, nil
			}
			m.filter = m.filter.WithDate(d)
			m.status = "Showing tasks created " + d.String()
		}
		m.mode = modeList
		m.input.Blur()
		m.refresh()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.confirmDel = false
			return m, nil
		}
		if m.store.Delete(m.pendingDel.ID) {
			m.status = "Deleted task"
		} else {
			m.status = "Task already gone"
		}
		m.refresh()
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	default:
		return m, nil
	}
}

func formatDate(d *civil.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
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
