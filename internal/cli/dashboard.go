package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/plancraft/plancraft/pkg/models"
	"github.com/spf13/cobra"
)

// Dashboard panel indices.
const (
	panelTasks = iota
	panelProgress
	panelNext
	panelCount
)

type dashboardModel struct {
	projectRoot string
	activePanel int
	width       int
	height      int

	// Data.
	status    *models.ParsedStatus
	nextTasks []string

	// State.
	loading bool
	err     error
}

// planLoadedMsg carries loaded plan data back to the model.
type planLoadedMsg struct {
	status    *models.ParsedStatus
	nextTasks []string
	err       error
}

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	taskDoneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	taskPendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	progressBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	nextTaskStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newDashboardModel(projectRoot string) dashboardModel {
	return dashboardModel{
		projectRoot: projectRoot,
		activePanel: panelTasks,
		loading:     true,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.loadPlan
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activePanel = (m.activePanel + 1) % panelCount
			return m, nil
		case "shift+tab":
			m.activePanel = (m.activePanel - 1 + panelCount) % panelCount
			return m, nil
		case "r":
			m.loading = true
			return m, m.loadPlan
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case planLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = msg.status
		m.nextTasks = msg.nextTasks
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := titleStyle.Render(" Plancraft Dashboard ")
	help := helpStyle.Render("tab: switch panel | r: refresh | q: quit")

	if m.loading {
		return fmt.Sprintf("%s\n\n  Loading plan...\n\n%s", title, help)
	}

	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}

	tasksPanel := m.renderTasksPanel()
	progressPanel := m.renderProgressPanel()
	nextPanel := m.renderNextPanel()

	availableWidth := m.width - 2

	var body string
	if availableWidth > 120 {
		colWidth := availableWidth / 3
		tasksPanel = m.applyPanelStyle(panelTasks, tasksPanel, colWidth-4)
		progressPanel = m.applyPanelStyle(panelProgress, progressPanel, colWidth-4)
		nextPanel = m.applyPanelStyle(panelNext, nextPanel, colWidth-4)
		body = lipgloss.JoinHorizontal(lipgloss.Top, tasksPanel, progressPanel, nextPanel)
	} else {
		panelWidth := availableWidth - 4
		if panelWidth < 20 {
			panelWidth = 20
		}
		tasksPanel = m.applyPanelStyle(panelTasks, tasksPanel, panelWidth)
		progressPanel = m.applyPanelStyle(panelProgress, progressPanel, panelWidth)
		nextPanel = m.applyPanelStyle(panelNext, nextPanel, panelWidth)
		body = lipgloss.JoinVertical(lipgloss.Left, tasksPanel, progressPanel, nextPanel)
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, body, help)
}

func (m dashboardModel) applyPanelStyle(panel int, content string, width int) string {
	style := panelStyle
	if m.activePanel == panel {
		style = activePanelStyle
	}
	return style.Width(width).Render(content)
}

func (m dashboardModel) renderTasksPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Tasks"))
	b.WriteString("\n")

	if m.status == nil || len(m.status.Tasks) == 0 {
		b.WriteString("  No tasks found.")
		return b.String()
	}

	for _, task := range m.status.Tasks {
		if task.Completed {
			b.WriteString(taskDoneStyle.Render("  [x] " + task.Title))
		} else {
			b.WriteString(taskPendingStyle.Render("  [ ] " + task.Title))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m dashboardModel) renderProgressPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Progress"))
	b.WriteString("\n")

	if m.status == nil {
		b.WriteString("  No plan loaded.")
		return b.String()
	}

	st := m.status
	b.WriteString(fmt.Sprintf("  Project: %s\n", st.ProjectName))
	b.WriteString(fmt.Sprintf("  Status:  %s\n", st.Status))
	b.WriteString(fmt.Sprintf("  Updated: %s\n\n", st.LastUpdated))

	b.WriteString(fmt.Sprintf("  %s %d/%d\n", renderProgressBar(st.CompletedTasks, st.TotalTasks, 20), st.CompletedTasks, st.TotalTasks))

	return b.String()
}

func (m dashboardModel) renderNextPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Next Up"))
	b.WriteString("\n")

	if len(m.nextTasks) == 0 {
		b.WriteString("  Nothing left to do.")
		return b.String()
	}

	for _, title := range m.nextTasks {
		b.WriteString(nextTaskStyle.Render("  > " + title))
		b.WriteString("\n")
	}

	return b.String()
}

// renderProgressBar draws a fixed-width completion bar.
func renderProgressBar(completed, total, width int) string {
	if total == 0 {
		return progressBarStyle.Render(strings.Repeat("░", width))
	}
	filled := completed * width / total
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return progressBarStyle.Render(bar)
}

func (m dashboardModel) loadPlan() tea.Msg {
	result := planLoadedMsg{}

	if Planner == nil {
		result.err = fmt.Errorf("planner not initialized")
		return result
	}

	statusResult := Planner.GetStatus(m.projectRoot)
	if !statusResult.Success {
		result.err = fmt.Errorf("loading plan: %s", statusResult.Message)
		return result
	}
	result.status = statusResult.Status

	resumeResult := Planner.ResumeProject(m.projectRoot)
	if resumeResult.Success {
		result.nextTasks = resumeResult.NextTasks
	}

	return result
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI view of the project plan",
	Long: `Launch an interactive terminal dashboard showing the task checklist,
completion progress, and suggested next tasks.

Navigate between panels with Tab, refresh with r, quit with q.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, _ := cmd.Flags().GetString("root")
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}

		p := tea.NewProgram(newDashboardModel(absRoot), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

func init() {
	dashboardCmd.Flags().String("root", ".", "Project root containing the plan file")
	rootCmd.AddCommand(dashboardCmd)
}
