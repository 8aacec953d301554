// Package tui is the terminal dashboard. All state changes go through dashboard.Controller;
// network calls run as commands and report back as messages.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/client/dashboard"
	"taskboard/internal/client/model"
	"taskboard/internal/client/taskform"
	"taskboard/internal/client/tasklist"
	"taskboard/internal/core/domain"
)

type mode int

const (
	modeList mode = iota
	modeSearch
	modeEdit
	modeConfirmDelete
)

// Edit field indices
const (
	fieldTitle = iota
	fieldDescription
	fieldDueDate
	fieldPriority
	fieldStatus
	fieldCount
)

var (
	statusFilters   = []string{tasklist.All, "todo", "in-progress", "done", "canceled"}
	priorityFilters = []string{tasklist.All, "low", "medium", "high"}
)

type loadedMsg struct{ err error }

// savedMsg and suggestedMsg carry the controller's editor session they were issued from; a
// reply for a session that has since ended is ignored.
type savedMsg struct {
	session uint64
	err     error
}

type deletedMsg struct{ err error }

type suggestedMsg struct {
	session  uint64
	priority string
	err      error
}

type Model struct {
	ctx  context.Context
	ctrl *dashboard.Controller

	mode   mode
	cursor int
	width  int
	height int

	search textinput.Model

	form      *taskform.Form
	inputs    []textinput.Model
	field     int
	fieldErrs map[string]string
	busy      bool
	session   uint64
}

// New builds the model. The first Load runs from Init.
func New(ctx context.Context, ctrl *dashboard.Controller) Model {
	search := textinput.New()
	search.Placeholder = "Search titles..."
	search.Prompt = "/ "
	search.CharLimit = 100
	search.PromptStyle = labelStyle

	inputs := make([]textinput.Model, fieldDueDate+1)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 50
		switch i {
		case fieldTitle:
			inputs[i].Placeholder = "Title"
			inputs[i].CharLimit = domain.TitleMaxLength
		case fieldDescription:
			inputs[i].Placeholder = "Description"
			inputs[i].CharLimit = 1000
		case fieldDueDate:
			inputs[i].Placeholder = "YYYY-MM-DD"
			inputs[i].CharLimit = len(domain.DateLayout)
		}
	}

	return Model{
		ctx:    ctx,
		ctrl:   ctrl,
		search: search,
		inputs: inputs,
	}
}

func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		m.busy = false
		m.clampCursor()
		return m, nil

	case savedMsg:
		if msg.session != m.session {
			m.clampCursor()
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			var verr *taskform.ValidationError
			if errors.As(msg.err, &verr) {
				m.fieldErrs = verr.Fields
			}
			return m, nil
		}
		m.leaveEditor()
		m.clampCursor()
		return m, nil

	case deletedMsg:
		m.busy = false
		m.clampCursor()
		return m, nil

	case suggestedMsg:
		if msg.session != m.session {
			return m, nil
		}
		m.busy = false
		if msg.err == nil && m.form != nil {
			m.form.Priority = msg.priority
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "ctrl+c":
		m.ctrl.Close()
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.ctrl.View())-1 {
			m.cursor++
		}

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "n":
		m.enterEditor(m.ctrl.OpenCreate())
		return m, textinput.Blink

	case "e", "enter":
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		form, err := m.ctrl.OpenEdit(task.ID)
		if err != nil {
			return m, nil
		}
		m.enterEditor(form)
		return m, textinput.Blink

	case "d":
		if _, ok := m.selectedTask(); ok {
			m.mode = modeConfirmDelete
		}

	case "/":
		m.mode = modeSearch
		m.search.SetValue(m.ctrl.State().Filter.Search)
		return m, m.search.Focus()

	case "s":
		filter := m.ctrl.State().Filter
		filter.Status = next(statusFilters, filter.Status)
		_ = m.ctrl.SetFilter(filter)
		m.clampCursor()

	case "p":
		filter := m.ctrl.State().Filter
		filter.Priority = next(priorityFilters, filter.Priority)
		_ = m.ctrl.SetFilter(filter)
		m.clampCursor()

	case "1", "2", "3", "4", "5":
		idx := int(key[0] - '1')
		m.ctrl.ToggleSort(columns[idx].key)

	case "r":
		return m, m.load()

	case "x":
		m.ctrl.DismissNotices()
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.SetValue("")
		m.applySearch()
		m.search.Blur()
		m.mode = modeList
		return m, nil
	case "enter":
		m.search.Blur()
		m.mode = modeList
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applySearch()
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeList
	if msg.String() != "y" && msg.String() != "Y" {
		return m, nil
	}
	task, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	m.busy = true
	ctx, ctrl, id := m.ctx, m.ctrl, task.ID
	return m, func() tea.Msg {
		return deletedMsg{err: ctrl.Delete(ctx, id)}
	}
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.ctrl.CloseEditor()
		m.leaveEditor()
		return m, nil

	case "tab", "down":
		m.focus((m.field + 1) % fieldCount)
		return m, textinput.Blink

	case "shift+tab", "up":
		m.focus((m.field + fieldCount - 1) % fieldCount)
		return m, textinput.Blink

	case "left", "right":
		if m.field == fieldPriority || m.field == fieldStatus {
			m.cycleField(msg.String() == "right")
			return m, nil
		}

	case "ctrl+s":
		if m.busy {
			return m, nil
		}
		m.syncForm()
		m.busy = true
		form := *m.form
		ctx, ctrl, session := m.ctx, m.ctrl, m.session
		return m, func() tea.Msg {
			return savedMsg{session: session, err: ctrl.SaveFor(ctx, session, &form)}
		}

	case "ctrl+p":
		if m.busy {
			return m, nil
		}
		m.syncForm()
		m.busy = true
		form := *m.form
		ctx, ctrl, session := m.ctx, m.ctrl, m.session
		return m, func() tea.Msg {
			err := ctrl.SuggestFor(ctx, session, &form)
			return suggestedMsg{session: session, priority: form.Priority, err: err}
		}
	}

	if m.field <= fieldDueDate {
		var cmd tea.Cmd
		m.inputs[m.field], cmd = m.inputs[m.field].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) load() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return loadedMsg{err: ctrl.Load(ctx)}
	}
}

func (m *Model) enterEditor(form *taskform.Form) {
	m.session = m.ctrl.Session()
	m.busy = false
	m.form = form
	m.fieldErrs = nil
	m.mode = modeEdit
	m.inputs[fieldTitle].SetValue(form.Title)
	m.inputs[fieldDescription].SetValue(form.Description)
	m.inputs[fieldDueDate].SetValue(form.DueDate)
	m.focus(fieldTitle)
}

func (m *Model) leaveEditor() {
	m.session = m.ctrl.Session()
	m.busy = false
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.form = nil
	m.fieldErrs = nil
	m.field = fieldTitle
	m.mode = modeList
}

func (m *Model) focus(field int) {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.field = field
	if field <= fieldDueDate {
		m.inputs[field].Focus()
	}
}

func (m *Model) cycleField(forward bool) {
	values, current := priorityFilters[1:], &m.form.Priority
	if m.field == fieldStatus {
		values, current = statusFilters[1:], &m.form.Status
	}
	if forward {
		*current = next(values, *current)
		return
	}
	*current = prev(values, *current)
}

func (m *Model) syncForm() {
	m.form.Title = m.inputs[fieldTitle].Value()
	m.form.Description = m.inputs[fieldDescription].Value()
	m.form.DueDate = m.inputs[fieldDueDate].Value()
}

func (m *Model) applySearch() {
	filter := m.ctrl.State().Filter
	filter.Search = m.search.Value()
	_ = m.ctrl.SetFilter(filter)
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.View())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selectedTask() (model.Task, bool) {
	tasks := m.ctrl.View()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m Model) View() string {
	state := m.ctrl.State()

	if m.mode == modeEdit && m.form != nil {
		return m.renderEditor(state)
	}

	var b strings.Builder
	title := fmt.Sprintf("Tasks (%d)", len(m.ctrl.View()))
	if state.Loading {
		title += " loading..."
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("status:%s  priority:%s  sort:%s",
		state.Filter.Status, state.Filter.Priority, sortLabel(state.Sort))))
	b.WriteString("\n")
	if m.mode == modeSearch {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	} else if state.Filter.Search != "" {
		b.WriteString(labelStyle.Render("search: " + state.Filter.Search))
		b.WriteString("\n")
	}

	table := RenderTable(m.ctrl.View(), m.cursor, state.Sort, m.width-2)
	b.WriteString(borderStyle.Render(table))
	b.WriteString("\n")

	if m.mode == modeConfirmDelete {
		if task, ok := m.selectedTask(); ok {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Delete %q? (y/N)", task.Title)))
			b.WriteString("\n")
		}
	}
	b.WriteString(renderNotices(state.Notices))
	b.WriteString(labelStyle.Render("j/k move • n new • e edit • d delete • / search • s status • p priority • 1-5 sort • r reload • q quit"))
	return b.String()
}

func (m Model) renderEditor(state dashboard.ViewState) string {
	heading := "New task"
	if m.form.IsEdit() {
		heading = "Edit task " + m.form.ID
	}

	rows := []string{headerStyle.Render(heading), ""}
	labels := []string{"Title", "Description", "Due date"}
	keys := []string{"title", "description", "dueDate"}
	for i, input := range m.inputs {
		rows = append(rows, labelStyle.Render(labels[i]), input.View())
		if msg, ok := m.fieldErrs[keys[i]]; ok {
			rows = append(rows, errorStyle.Render(msg))
		}
	}

	rows = append(rows,
		m.choice("Priority", m.form.Priority, fieldPriority),
		m.choice("Status", m.form.Status, fieldStatus),
		"",
		renderNotices(state.Notices),
		labelStyle.Render("tab next • ←/→ change • ctrl+p suggest priority • ctrl+s save • esc cancel"),
	)
	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) choice(label, value string, field int) string {
	line := fmt.Sprintf("%s: < %s >", label, value)
	if m.field == field {
		return selectedStyle.Render(line)
	}
	return line
}

func renderNotices(notices []dashboard.Notice) string {
	var b strings.Builder
	for _, notice := range notices {
		if notice.Level == dashboard.NoticeError {
			b.WriteString(errorStyle.Render(notice.Message))
		} else {
			b.WriteString(notice.Message)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func next(values []string, current string) string {
	for i, value := range values {
		if value == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

func prev(values []string, current string) string {
	for i, value := range values {
		if value == current {
			return values[(i+len(values)-1)%len(values)]
		}
	}
	return values[0]
}
