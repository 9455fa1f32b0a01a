package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	tasksdto "cutrack/internal/modules/tasks/dto"
	"cutrack/internal/platform/timeutil"
	"cutrack/internal/ui/theme"
)

type TasksPort interface {
	Mine(ctx context.Context, sortBy string) ([]tasksdto.MyTaskOutput, error)
	List(ctx context.Context) ([]tasksdto.TaskOutput, error)
}

type Mode int

const (
	ModeMine Mode = iota
	ModeAssigned
)

type MineLoadedMsg struct {
	Tasks []tasksdto.MyTaskOutput
	Err   error
}

type AssignedLoadedMsg struct {
	Tasks []tasksdto.TaskOutput
	Err   error
}

type taskItem struct {
	task    tasksdto.TaskOutput
	mine    *tasksdto.MyTaskOutput
	running bool
	elapsed int64
}

func (i taskItem) Title() string {
	if i.running {
		return "● " + i.task.Name
	}
	return i.task.Name
}

func (i taskItem) Description() string {
	switch {
	case i.running:
		return fmt.Sprintf("%s  running %s", i.task.ProjectName, timeutil.FormatSeconds(i.elapsed))
	case i.mine != nil:
		return fmt.Sprintf("%s  %s tracked", i.task.ProjectName, i.mine.TotalTrackedFormatted)
	default:
		return fmt.Sprintf("%s  %s", i.task.ProjectName, i.task.Status)
	}
}

func (i taskItem) FilterValue() string { return i.task.Name + " " + i.task.ID }

type Model struct {
	port    TasksPort
	mode    Mode
	sortBy  string
	list    list.Model
	detail  viewport.Model
	spinner spinner.Model
	loading bool
	active  string
	elapsed int64
	width   int
	height  int
}

func New(port TasksPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	m := Model{
		port:    port,
		sortBy:  "newest",
		list:    l,
		detail:  vp,
		spinner: sp,
		loading: true,
	}
	m.list.Title = m.title()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case MineLoadedMsg:
		m.loading = false
		if m.mode != ModeMine {
			return m, nil
		}
		if msg.Err != nil {
			m.list.Title = m.title() + ": " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = m.title()
		items := make([]list.Item, len(msg.Tasks))
		for i := range msg.Tasks {
			t := msg.Tasks[i]
			items[i] = taskItem{task: t.Task, mine: &t}
		}
		cmds = append(cmds, m.list.SetItems(m.markActive(items)))

	case AssignedLoadedMsg:
		m.loading = false
		if m.mode != ModeAssigned {
			return m, nil
		}
		if msg.Err != nil {
			m.list.Title = m.title() + ": " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = m.title()
		items := make([]list.Item, len(msg.Tasks))
		for i, t := range msg.Tasks {
			items[i] = taskItem{task: t}
		}
		cmds = append(cmds, m.list.SetItems(m.markActive(items)))

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)

		var vCmd tea.Cmd
		m.detail, vCmd = m.detail.Update(msg)
		cmds = append(cmds, vCmd)
	}
	m.detail.SetContent(m.renderDetail())

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading tasks…")
	}

	listW := m.width * 5 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := theme.Pane.
		Padding(0).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Reload fetches the list for the current mode.
func (m Model) Reload() tea.Cmd {
	if m.mode == ModeAssigned {
		return func() tea.Msg {
			tasks, err := m.port.List(context.Background())
			return AssignedLoadedMsg{Tasks: tasks, Err: err}
		}
	}
	sortBy := m.sortBy
	return func() tea.Msg {
		tasks, err := m.port.Mine(context.Background(), sortBy)
		return MineLoadedMsg{Tasks: tasks, Err: err}
	}
}

// ToggleMode switches between my tasks and all assigned tasks.
func (m *Model) ToggleMode() tea.Cmd {
	if m.mode == ModeMine {
		m.mode = ModeAssigned
	} else {
		m.mode = ModeMine
	}
	m.loading = true
	m.list.Title = m.title()
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m *Model) SetSort(sortBy string) tea.Cmd {
	m.sortBy = sortBy
	m.mode = ModeMine
	m.list.Title = m.title()
	return m.Reload()
}

func (m Model) Mode() Mode { return m.mode }

// SetActive marks taskID as the running task, or clears the marker when
// taskID is empty.
func (m *Model) SetActive(taskID string, elapsed int64) {
	m.active = taskID
	m.elapsed = elapsed
	m.list.SetItems(m.markActive(m.list.Items()))
	m.detail.SetContent(m.renderDetail())
}

func (m Model) SelectedTaskID() (string, bool) {
	if item, ok := m.list.SelectedItem().(taskItem); ok {
		return item.task.ID, true
	}
	return "", false
}

func (m Model) SelectedTaskName() string {
	if item, ok := m.list.SelectedItem().(taskItem); ok {
		return item.task.Name
	}
	return ""
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m *Model) resize() {
	listW := m.width * 5 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 4
}

func (m Model) title() string {
	if m.mode == ModeAssigned {
		return "Assigned"
	}
	return "My tasks (" + m.sortBy + ")"
}

func (m Model) markActive(items []list.Item) []list.Item {
	out := make([]list.Item, len(items))
	for i, it := range items {
		item, ok := it.(taskItem)
		if !ok {
			out[i] = it
			continue
		}
		item.running = m.active != "" && item.task.ID == m.active
		item.elapsed = m.elapsed
		out[i] = item
	}
	return out
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(taskItem)
	if !ok {
		return theme.Muted.Render("Select a task to see details")
	}
	t := item.task
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(t.Name) + "\n\n")
	sb.WriteString(theme.Muted.Render("id:      ") + t.ID + "\n")
	sb.WriteString(theme.Muted.Render("status:  ") + t.Status + "\n")
	if t.ProjectName != "" {
		sb.WriteString(theme.Muted.Render("project: ") + t.ProjectName + "\n")
	}
	if t.ListName != "" {
		sb.WriteString(theme.Muted.Render("list:    ") + t.ListName + "\n")
	}
	if t.URL != "" {
		sb.WriteString(theme.Muted.Render("url:     ") + t.URL + "\n")
	}
	if mt := item.mine; mt != nil {
		sb.WriteString(theme.Muted.Render("tracked: ") + mt.TotalTrackedFormatted + "\n")
		if mt.LastTracked != nil {
			sb.WriteString(theme.Muted.Render("last:    ") + mt.LastTracked.Format("2006-01-02 15:04") + "\n")
		}
	}
	if item.running {
		sb.WriteString("\n" + theme.Running.Render("● "+timeutil.FormatSeconds(item.elapsed)) + "\n")
	}
	if t.Description != "" {
		sb.WriteString("\n" + t.Description + "\n")
	}
	hint := "s: start/stop  a: assigned"
	if m.mode == ModeAssigned {
		hint = "s: start/stop  +: add to my tasks  a: my tasks"
	}
	sb.WriteString("\n" + theme.Muted.Render(hint))
	return sb.String()
}
