// Package ui is the interactive single-page screen: a task table for
// the selected list with keys to toggle, add, and delete tasks.
//
// All remote work runs as bubbletea commands. Their messages arrive in
// completion order, not dispatch order, and each successful call has
// already applied its store command by the time the message lands; the
// view only ever renders the current cache snapshot. A message from a
// superseded call (say, after switching lists) still applies — last
// writer wins, and the next refresh makes it right.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskpad/internal/api"
	"taskpad/internal/remote"
	"taskpad/internal/store"
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tabStyle      = lipgloss.NewStyle().Padding(0, 1).Faint(true)
	activeTab     = lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true)
	cursorStyle   = lipgloss.NewStyle().Bold(true)
	closedStyle   = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	statusStyle   = lipgloss.NewStyle().Faint(true)
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	progressStyle = lipgloss.NewStyle().Bold(true)
)

// Messages delivered as asynchronous calls resolve.
type (
	listsLoadedMsg struct{ lists []api.TaskList }
	tasksLoadedMsg struct{ listID string }
	actionOKMsg    struct{ listID string }
	errMsg         struct{ err error }
)

// Model is the screen state. The cached entities themselves live in
// the client's store; the model holds only selection and input state.
type Model struct {
	ctx    context.Context
	client *remote.Client

	lists   []api.TaskList
	listIdx int
	cursor  int
	mode    mode
	input   textinput.Model
	status  string
	err     error
	width   int
	height  int
}

// New builds the screen model around an already-wired client.
func New(ctx context.Context, client *remote.Client) Model {
	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = 256
	ti.Width = 40

	return Model{
		ctx:    ctx,
		client: client,
		input:  ti,
		status: "space toggle / a add / d delete / tab next list / r refresh / q quit",
	}
}

// Run starts the screen and blocks until the user quits.
func Run(ctx context.Context, client *remote.Client) error {
	p := tea.NewProgram(New(ctx, client), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.fetchLists()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		return m, nil

	case listsLoadedMsg:
		m.lists = typed.lists
		m.err = nil
		if m.listIdx >= len(m.lists) {
			m.listIdx = 0
		}
		if len(m.lists) > 0 {
			return m, m.fetchTasks(m.lists[m.listIdx].ID)
		}
		return m, nil

	case tasksLoadedMsg, actionOKMsg:
		// The store already holds the new truth; just re-clamp the
		// cursor against whatever the snapshot now shows.
		m.err = nil
		m.cursor = clamp(m.cursor, len(m.currentTasks()))
		return m, nil

	case errMsg:
		m.err = typed.err
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeAdd {
			return m.updateAdd(typed)
		}
		return m.updateBrowse(typed)
	}

	return m, nil
}

func (m Model) updateBrowse(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		m.cursor = clamp(m.cursor+1, len(m.currentTasks()))
		return m, nil

	case "k", "up":
		m.cursor = clamp(m.cursor-1, len(m.currentTasks()))
		return m, nil

	case "tab", "right", "l":
		return m.switchList(m.listIdx + 1)

	case "shift+tab", "left", "h":
		return m.switchList(m.listIdx - 1)

	case "r":
		// Deliberately parallel: list-fetch and task-fetch race and
		// each applies on arrival.
		if list, ok := m.currentList(); ok {
			return m, tea.Batch(m.fetchLists(), m.fetchTasks(list.ID))
		}
		return m, m.fetchLists()

	case " ":
		return m, m.toggleCurrent()

	case "d":
		return m, m.deleteCurrent()

	case "a":
		if _, ok := m.currentList(); !ok {
			return m, nil
		}
		m.mode = modeAdd
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) updateAdd(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil

	case "enter":
		title := strings.TrimSpace(m.input.Value())
		m.mode = modeBrowse
		m.input.Blur()
		if title == "" {
			return m, nil
		}
		return m, m.addTask(title)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m Model) switchList(idx int) (tea.Model, tea.Cmd) {
	if len(m.lists) == 0 {
		return m, nil
	}
	m.listIdx = (idx + len(m.lists)) % len(m.lists)
	m.cursor = 0
	return m, m.fetchTasks(m.lists[m.listIdx].ID)
}

// currentList returns the selected list, if any.
func (m Model) currentList() (api.TaskList, bool) {
	if m.listIdx >= len(m.lists) {
		return api.TaskList{}, false
	}
	return m.lists[m.listIdx], true
}

// currentTasks reads the selected list's tasks from the cache snapshot.
func (m Model) currentTasks() []api.Task {
	list, ok := m.currentList()
	if !ok {
		return nil
	}
	tasks, _ := m.client.Store().Snapshot().TasksFor(list.ID)
	return tasks
}

func (m Model) fetchLists() tea.Cmd {
	return func() tea.Msg {
		lists, err := m.client.FetchTaskLists(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return listsLoadedMsg{lists: lists}
	}
}

func (m Model) fetchTasks(listID string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.client.FetchTasks(m.ctx, listID); err != nil {
			return errMsg{err}
		}
		return tasksLoadedMsg{listID: listID}
	}
}

func (m Model) toggleCurrent() tea.Cmd {
	list, ok := m.currentList()
	if !ok {
		return nil
	}
	tasks := m.currentTasks()
	if m.cursor >= len(tasks) {
		return nil
	}
	task := tasks[m.cursor]
	return func() tea.Msg {
		if _, err := m.client.UpdateTaskAndRefresh(m.ctx, list.ID, task.ID, task.Toggled()); err != nil {
			return errMsg{err}
		}
		return actionOKMsg{listID: list.ID}
	}
}

func (m Model) deleteCurrent() tea.Cmd {
	list, ok := m.currentList()
	if !ok {
		return nil
	}
	tasks := m.currentTasks()
	if m.cursor >= len(tasks) {
		return nil
	}
	task := tasks[m.cursor]
	return func() tea.Msg {
		if err := m.client.DeleteTaskAndRefresh(m.ctx, list.ID, task.ID); err != nil {
			return errMsg{err}
		}
		return actionOKMsg{listID: list.ID}
	}
}

func (m Model) addTask(title string) tea.Cmd {
	list, ok := m.currentList()
	if !ok {
		return nil
	}
	draft := api.Task{Title: title, Priority: api.PriorityMedium, Status: api.StatusOpen}
	return func() tea.Msg {
		if _, err := m.client.CreateTaskAndRefresh(m.ctx, list.ID, draft); err != nil {
			return errMsg{err}
		}
		return actionOKMsg{listID: list.ID}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("taskpad"))
	b.WriteString("\n")

	if len(m.lists) == 0 {
		b.WriteString(statusStyle.Render("no lists"))
		b.WriteString("\n")
	} else {
		var tabs []string
		for i, list := range m.lists {
			style := tabStyle
			if i == m.listIdx {
				style = activeTab
			}
			tabs = append(tabs, style.Render(list.Title))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
		b.WriteString("\n\n")
	}

	tasks := m.currentTasks()
	for i, task := range tasks {
		line := renderTask(task)
		if i == m.cursor && m.mode == modeBrowse {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(tasks) == 0 && len(m.lists) > 0 {
		b.WriteString(statusStyle.Render("  (no tasks)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(progressStyle.Render(fmt.Sprintf("%.0f%% done", store.Completion(tasks))))
	b.WriteString("\n")

	if m.mode == modeAdd {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	} else {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	return b.String()
}

func renderTask(task api.Task) string {
	mark := "[ ]"
	if task.Status == api.StatusClosed {
		mark = "[x]"
	}
	line := fmt.Sprintf("%s %s", mark, task.Title)
	extra := strings.ToLower(string(task.Priority))
	if task.Due != nil {
		extra += ", due " + task.Due.String()
	}
	line += statusStyle.Render("  (" + extra + ")")
	if task.Status == api.StatusClosed {
		return closedStyle.Render(line)
	}
	return line
}

func clamp(i, n int) int {
	if n == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
