package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	accountdto "cutrack/internal/modules/account/dto"
	statsdto "cutrack/internal/modules/stats/dto"
	tasksdto "cutrack/internal/modules/tasks/dto"
	trackerdto "cutrack/internal/modules/tracker/dto"
	"cutrack/internal/platform/timeutil"
	"cutrack/internal/ui/components"
	"cutrack/internal/ui/theme"
	statsview "cutrack/internal/ui/views/stats"
	tasksview "cutrack/internal/ui/views/tasks"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type tasksPort interface {
	Mine(ctx context.Context, sortBy string) ([]tasksdto.MyTaskOutput, error)
	List(ctx context.Context) ([]tasksdto.TaskOutput, error)
	Add(ctx context.Context, taskID string) (tasksdto.AddOutput, error)
	Remove(ctx context.Context, taskID string) (bool, error)
	ClearCompleted(ctx context.Context) (int, error)
}

type trackerPort interface {
	Start(ctx context.Context, taskID, taskName string) (trackerdto.StartOutput, error)
	Stop(ctx context.Context, taskID string) (trackerdto.StopOutput, error)
	Status(ctx context.Context) trackerdto.StatusOutput
	History(ctx context.Context, days int) ([]trackerdto.HistoryRecordOutput, error)
}

type statsPort interface {
	Productivity(ctx context.Context) statsdto.StatisticsOutput
}

type accountPort interface {
	WhoAmI(ctx context.Context) (accountdto.AccountOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTasks tabID = iota
	tabStats
	tabCount
)

var tabLabels = [tabCount]string{"Tasks", "Stats"}

var paletteHints = []string{
	"track:start [task-id]",
	"track:stop",
	"tasks:add <task-id>",
	"tasks:remove <task-id>",
	"tasks:clear-completed",
	"tasks:sort <newest|oldest|name|project>",
	"tasks:assigned",
	"tasks:mine",
	"stats:refresh",
}

// ─── async messages ───────────────────────────────────────────────────────────

// TrackerEventMsg carries a tracker event into the program.
type TrackerEventMsg trackerdto.Event

type statusLoadedMsg struct {
	status trackerdto.StatusOutput
}

type accountLoadedMsg struct {
	account accountdto.AccountOutput
	err     error
}

type actionDoneMsg struct {
	status string
	err    error
	reload bool
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Toggle  key.Binding
	Stop    key.Binding
	Add     key.Binding
	Remove  key.Binding
	Mode    key.Binding
	Refresh key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Toggle:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start/stop task")),
		Stop:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop tracking")),
		Add:     key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "add to my tasks")),
		Remove:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove from my tasks")),
		Mode:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "mine/assigned")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Toggle, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Toggle, k.Stop},
		{k.Add, k.Remove, k.Mode, k.Refresh},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the running
// timer shown in the status bar, the help overlay and the command palette.
type Model struct {
	tasks   tasksPort
	tracker trackerPort
	account accountPort

	taskView  tasksview.Model
	statsView statsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	session   trackerdto.StatusOutput
	user      string
	status    string
	width     int
	height    int
}

func NewModel(tasks tasksPort, tracker trackerPort, stats statsPort, account accountPort, historyDays int) Model {
	return Model{
		tasks:     tasks,
		tracker:   tracker,
		account:   account,
		taskView:  tasksview.New(tasks),
		statsView: statsview.New(stats, tracker, historyDays),
		activeTab: tabTasks,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(paletteHints),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.taskView.Init(),
		m.statsView.Init(),
		m.loadStatusCmd(),
		m.loadAccountCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts keys while open; tracker events still land.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		if _, isKey := msg.(tea.KeyMsg); isKey {
			return m, cmd
		}
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case statusLoadedMsg:
		m.session = msg.status
		if m.session.Active {
			m.taskView.SetActive(m.session.TaskID, m.session.ElapsedSeconds)
		}
		return m, nil

	case accountLoadedMsg:
		switch {
		case msg.err != nil:
			m.status = "account: " + msg.err.Error()
		case !msg.account.Authenticated:
			m.status = "not logged in: run cutrack auth login"
		default:
			m.user = msg.account.Username
		}
		return m, nil

	case TrackerEventMsg:
		return m.applyTrackerEvent(trackerdto.Event(msg))

	case actionDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = msg.status
		if msg.reload {
			return m, m.taskView.Reload()
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case statsview.LoadedMsg:
		var cmd tea.Cmd
		m.statsView, cmd = m.statsView.Update(msg)
		return m, cmd

	case tasksview.MineLoadedMsg, tasksview.AssignedLoadedMsg:
		var cmd tea.Cmd
		m.taskView, cmd = m.taskView.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the list filter while it is open.
		if m.activeTab == tabTasks && m.taskView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab", "shift+tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			if m.activeTab == tabStats {
				cmds = append(cmds, m.statsView.Refresh())
			}
			return m, tea.Batch(cmds...)
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "x":
			return m, m.stopCmd()
		case "r":
			if m.activeTab == tabStats {
				return m, m.statsView.Refresh()
			}
			return m, m.taskView.Reload()
		}

		if m.activeTab == tabTasks {
			switch msg.String() {
			case "s":
				id, ok := m.taskView.SelectedTaskID()
				if !ok {
					return m, nil
				}
				if m.session.Active && m.session.TaskID == id {
					return m, m.stopCmd()
				}
				return m, m.startCmd(id, m.taskView.SelectedTaskName())
			case "+":
				if id, ok := m.taskView.SelectedTaskID(); ok {
					return m, m.addCmd(id)
				}
				return m, nil
			case "d":
				if id, ok := m.taskView.SelectedTaskID(); ok && m.taskView.Mode() == tasksview.ModeMine {
					return m, m.removeCmd(id)
				}
				return m, nil
			case "a":
				return m, m.taskView.ToggleMode()
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabTasks:
		m.taskView, tabCmd = m.taskView.Update(msg)
	case tabStats:
		m.statsView, tabCmd = m.statsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) applyTrackerEvent(e trackerdto.Event) (tea.Model, tea.Cmd) {
	switch e.Kind {
	case trackerdto.EventStarted, trackerdto.EventSessionRestored:
		m.session = trackerdto.StatusOutput{
			Active:         true,
			SessionID:      e.SessionID,
			TaskID:         e.TaskID,
			TaskName:       e.TaskName,
			StartedAt:      e.StartTime,
			ElapsedSeconds: e.Seconds,
		}
		m.taskView.SetActive(e.TaskID, e.Seconds)
		m.status = "tracking " + displayName(e.TaskName, e.TaskID)
		return m, m.taskView.Reload()

	case trackerdto.EventTick:
		if m.session.Active && m.session.SessionID == e.SessionID {
			m.session.ElapsedSeconds = e.Seconds
			m.taskView.SetActive(e.TaskID, e.Seconds)
		}
		return m, nil

	case trackerdto.EventStopped:
		m.session = trackerdto.StatusOutput{}
		m.taskView.SetActive("", 0)
		m.status = fmt.Sprintf("stopped %s after %s", displayName(e.TaskName, e.TaskID), timeutil.FormatSeconds(e.Seconds))
		return m, tea.Batch(m.taskView.Reload(), m.statsView.Refresh())

	case trackerdto.EventRemoteSyncFailed:
		m.status = "saved locally, ClickUp sync failed: " + errText(e.Err)
		return m, nil

	case trackerdto.EventError:
		m.status = "tracker: " + errText(e.Err)
		return m, nil
	}
	return m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.activeTab == tabStats:
		content = m.statsView.View()
	default:
		content = m.taskView.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	bar := "cutrack  " + strings.Join(parts, theme.Muted.Render(" │ "))
	if m.user != "" {
		bar += theme.Muted.Render("   " + m.user)
	}
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.session.Active {
		timer := timeutil.FormatSeconds(m.session.ElapsedSeconds)
		left = theme.Running.Render("● "+timer+" "+displayName(m.session.TaskName, m.session.TaskID)) + "  " + left
	}
	right := theme.Muted.Render("?:help  s:start/stop  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(left+strings.Repeat(" ", gap)+right)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	arg := ""
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch parts[0] {
	case "track:start":
		if arg != "" {
			return m, m.startCmd(arg, "")
		}
		id, ok := m.taskView.SelectedTaskID()
		if !ok {
			m.status = "no task selected"
			return m, nil
		}
		return m, m.startCmd(id, m.taskView.SelectedTaskName())
	case "track:stop":
		return m, m.stopCmd()
	case "tasks:add":
		if arg == "" {
			m.status = "usage: tasks:add <task-id>"
			return m, nil
		}
		return m, m.addCmd(arg)
	case "tasks:remove":
		if arg == "" {
			m.status = "usage: tasks:remove <task-id>"
			return m, nil
		}
		return m, m.removeCmd(arg)
	case "tasks:clear-completed":
		return m, m.clearCompletedCmd()
	case "tasks:sort":
		if arg == "" {
			m.status = "usage: tasks:sort <newest|oldest|name|project>"
			return m, nil
		}
		m.activeTab = tabTasks
		return m, m.taskView.SetSort(arg)
	case "tasks:assigned", "tasks:mine":
		m.activeTab = tabTasks
		want := tasksview.ModeMine
		if parts[0] == "tasks:assigned" {
			want = tasksview.ModeAssigned
		}
		if m.taskView.Mode() != want {
			return m, m.taskView.ToggleMode()
		}
		return m, nil
	case "stats:refresh":
		m.activeTab = tabStats
		return m, m.statsView.Refresh()
	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.taskView, _ = m.taskView.Update(sz)
	m.statsView, _ = m.statsView.Update(sz)
}

func displayName(name, id string) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	return id
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadStatusCmd() tea.Cmd {
	return func() tea.Msg {
		return statusLoadedMsg{status: m.tracker.Status(context.Background())}
	}
}

func (m Model) loadAccountCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.account.WhoAmI(context.Background())
		return accountLoadedMsg{account: out, err: err}
	}
}

// startCmd and stopCmd report only failures; success arrives as tracker
// events.
func (m Model) startCmd(taskID, taskName string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.tracker.Start(context.Background(), taskID, taskName)
		if err != nil {
			return actionDoneMsg{err: fmt.Errorf("start failed: %w", err)}
		}
		if out.AlreadyRunning {
			return actionDoneMsg{status: "already tracking " + displayName(out.TaskName, out.TaskID)}
		}
		return nil
	}
}

func (m Model) stopCmd() tea.Cmd {
	return func() tea.Msg {
		if _, err := m.tracker.Stop(context.Background(), ""); err != nil {
			return actionDoneMsg{err: fmt.Errorf("stop failed: %w", err)}
		}
		return nil
	}
}

func (m Model) addCmd(taskID string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.tasks.Add(context.Background(), taskID)
		if err != nil {
			return actionDoneMsg{err: fmt.Errorf("add failed: %w", err)}
		}
		if !out.Added {
			return actionDoneMsg{status: out.Task.Task.Name + " is already in my tasks"}
		}
		return actionDoneMsg{status: "added " + out.Task.Task.Name, reload: true}
	}
}

func (m Model) removeCmd(taskID string) tea.Cmd {
	return func() tea.Msg {
		removed, err := m.tasks.Remove(context.Background(), taskID)
		if err != nil {
			return actionDoneMsg{err: fmt.Errorf("remove failed: %w", err)}
		}
		if !removed {
			return actionDoneMsg{status: taskID + " is not in my tasks"}
		}
		return actionDoneMsg{status: "removed " + taskID, reload: true}
	}
}

func (m Model) clearCompletedCmd() tea.Cmd {
	return func() tea.Msg {
		n, err := m.tasks.ClearCompleted(context.Background())
		if err != nil {
			return actionDoneMsg{err: fmt.Errorf("clear failed: %w", err)}
		}
		return actionDoneMsg{status: fmt.Sprintf("cleared %d completed tasks", n), reload: true}
	}
}
