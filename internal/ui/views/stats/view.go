package stats

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	statsdto "cutrack/internal/modules/stats/dto"
	trackerdto "cutrack/internal/modules/tracker/dto"
	"cutrack/internal/platform/timeutil"
	"cutrack/internal/ui/theme"
)

type StatsPort interface {
	Productivity(ctx context.Context) statsdto.StatisticsOutput
}

type HistoryPort interface {
	History(ctx context.Context, days int) ([]trackerdto.HistoryRecordOutput, error)
}

type LoadedMsg struct {
	Stats   statsdto.StatisticsOutput
	History []trackerdto.HistoryRecordOutput
	Err     error
}

type Model struct {
	stats   StatsPort
	history HistoryPort
	days    int
	data    statsdto.StatisticsOutput
	records []trackerdto.HistoryRecordOutput
	err     error
	vp      viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(stats StatsPort, history HistoryPort, days int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{
		stats:   stats,
		history: history,
		days:    days,
		vp:      viewport.New(0, 0),
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Refresh(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = msg.Height - lipgloss.Height(m.renderSummary())
	case LoadedMsg:
		m.loading = false
		m.data = msg.Stats
		m.records = msg.History
		m.err = msg.Err
		m.vp.SetContent(m.renderHistory())
		return m, nil
	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading statistics…")
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderSummary(), m.vp.View())
}

// Refresh reloads totals and local history.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		out := LoadedMsg{Stats: m.stats.Productivity(ctx)}
		out.History, out.Err = m.history.History(ctx, m.days)
		return out
	}
}

func (m Model) renderSummary() string {
	today := theme.Pane.Render(theme.Muted.Render("Today") + "\n" + theme.Figure.Render(m.data.TodayFormatted))
	week := theme.Pane.Render(theme.Muted.Render("Week "+m.data.WeekRange) + "\n" + theme.Figure.Render(m.data.WeekFormatted))
	source := theme.Muted.Render("source: " + m.data.Source)
	return lipgloss.JoinHorizontal(lipgloss.Top, today, " ", week) + "\n" + source + "\n"
}

func (m Model) renderHistory() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fmt.Sprintf("Sessions, last %d days", m.days)) + "\n\n")
	if m.err != nil {
		sb.WriteString(theme.Failure.Render("history: "+m.err.Error()) + "\n")
		return sb.String()
	}
	if len(m.records) == 0 {
		sb.WriteString(theme.Muted.Render("no sessions recorded"))
		return sb.String()
	}
	for _, r := range m.records {
		mark := theme.Muted.Render("local")
		if r.RemoteEntryID != "" {
			mark = theme.Running.Render("synced")
		}
		sb.WriteString(fmt.Sprintf("%s  %s  %s-%s  %s  %s\n",
			r.Date,
			timeutil.FormatSeconds(r.Duration),
			r.StartTime.Local().Format("15:04"),
			r.EndTime.Local().Format("15:04"),
			mark,
			r.TaskID,
		))
	}
	return sb.String()
}
