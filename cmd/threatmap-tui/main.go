package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-threatmap/pkg/document"
	threatmodel "github.com/dd0wney/cluso-threatmap/pkg/model"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type view int

const (
	elementsView view = iota
	flowsView
	threatsView
	mitigationsView
	lintView
	viewCount
)

var viewNames = [viewCount]string{"Elements", "Flows", "Threats", "Mitigations", "Lint"}

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.ShiftTab, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Tab, k.ShiftTab}, {k.Quit}}
}

type uiModel struct {
	tm          *threatmodel.ThreatModel
	currentView view
	tables      [viewCount]table.Model
	violations  []string
	passed      bool
	help        help.Model
	keys        keyMap
	width       int
	height      int
}

func styledTable(columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(14),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func initialModel(tm *threatmodel.ThreatModel) uiModel {
	m := uiModel{tm: tm, help: help.New(), keys: keys}

	var elementRows []table.Row
	for _, e := range tm.Elements() {
		elementRows = append(elementRows, table.Row{e.ID, e.Name, e.Type.String()})
	}
	m.tables[elementsView] = styledTable([]table.Column{
		{Title: "ID", Width: 24},
		{Title: "Name", Width: 30},
		{Title: "Type", Width: 16},
	}, elementRows)

	var flowRows []table.Row
	for _, f := range tm.Flows() {
		dir := "→"
		if f.Bidirectional {
			dir = "↔"
		}
		flowRows = append(flowRows, table.Row{f.Name, f.FirstNode, dir, f.SecondNode})
	}
	m.tables[flowsView] = styledTable([]table.Column{
		{Title: "Name", Width: 26},
		{Title: "From", Width: 20},
		{Title: "", Width: 3},
		{Title: "To", Width: 20},
	}, flowRows)

	var threatRows []table.Row
	for _, t := range tm.Threats() {
		threatRows = append(threatRows, table.Row{
			t.ID, t.Name, t.Category.String(), t.Status.String(), t.DFDElement,
		})
	}
	m.tables[threatsView] = styledTable([]table.Column{
		{Title: "ID", Width: 10},
		{Title: "Name", Width: 42},
		{Title: "Category", Width: 22},
		{Title: "Status", Width: 22},
		{Title: "Element", Width: 18},
	}, threatRows)

	var mitigationRows []table.Row
	for _, mit := range tm.Mitigations() {
		mitigationRows = append(mitigationRows, table.Row{mit.ID, mit.Name})
	}
	m.tables[mitigationsView] = styledTable([]table.Column{
		{Title: "ID", Width: 10},
		{Title: "Name", Width: 60},
	}, mitigationRows)

	m.violations, m.passed = tm.Check()
	var lintRows []table.Row
	for _, v := range m.violations {
		lintRows = append(lintRows, table.Row{v})
	}
	m.tables[lintView] = styledTable([]table.Column{
		{Title: "Violation", Width: 90},
	}, lintRows)

	return m
}

func (m uiModel) Init() tea.Cmd {
	return nil
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.currentView = (m.currentView + 1) % viewCount
		case key.Matches(msg, m.keys.ShiftTab):
			if m.currentView == 0 {
				m.currentView = viewCount - 1
			} else {
				m.currentView--
			}
		}
	}

	var cmd tea.Cmd
	m.tables[m.currentView], cmd = m.tables[m.currentView].Update(msg)
	return m, cmd
}

func (m uiModel) View() string {
	title := titleStyle.Render(fmt.Sprintf("threatmap: %s", m.tm.Name))

	var tabs string
	for v := view(0); v < viewCount; v++ {
		if v == m.currentView {
			tabs += activeTabStyle.Render(viewNames[v])
		} else {
			tabs += inactiveTabStyle.Render(viewNames[v])
		}
	}

	content := m.tables[m.currentView].View()
	if m.currentView == lintView {
		verdict := passStyle.Render("✓ all checks passed")
		if !m.passed {
			verdict = failStyle.Render(fmt.Sprintf("✗ %d violation(s)", len(m.violations)))
		}
		content = verdict + "\n" + content
	}

	return title + "\n" +
		contentStyle.Render(tabs) + "\n" +
		contentStyle.Render(content) + "\n" +
		helpStyle.Render(m.help.View(m.keys))
}

func main() {
	modelPath := flag.String("model", "", "Model YAML file")
	flag.Parse()

	if *modelPath == "" {
		fmt.Fprintln(os.Stderr, "❌ -model is required")
		os.Exit(2)
	}

	tm, err := document.Load(*modelPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load model: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(initialModel(tm), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ TUI error: %v\n", err)
		os.Exit(1)
	}
}
