package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"settingsexporter/internal/tui/design"
	"settingsexporter/pkg/logging"
)

// MenuTitle is shown at the top of the menu.
const MenuTitle = "Settings Exporter"

const (
	logRefreshInterval = 250 * time.Millisecond
	defaultLogLines    = 6
)

// Choice is the menu entry the user picked.
type Choice int

const (
	ChoiceNone Choice = iota
	ChoiceExport
	ChoiceCopyPath
	ChoiceQuit
)

func (c Choice) String() string {
	switch c {
	case ChoiceExport:
		return "export"
	case ChoiceCopyPath:
		return "copy-path"
	case ChoiceQuit:
		return "quit"
	default:
		return "none"
	}
}

// Status is the one-line outcome of the previous action.
type Status struct {
	Text string
	Err  bool
}

// MenuOptions seeds a menu.
type MenuOptions struct {
	Status   Status
	LastPath string
	Logs     *LogBuffer
	LogLines int
}

type menuItem struct {
	title  string
	desc   string
	choice Choice
}

type tickMsg time.Time

// MenuModel is the bubbletea model of the main menu. It finishes as soon as
// an entry is selected; the caller runs the action and opens a new menu.
type MenuModel struct {
	keys     KeyMap
	help     help.Model
	items    []menuItem
	cursor   int
	choice   Choice
	status   Status
	lastPath string
	logs     *LogBuffer
	logLines int
	width    int
}

// NewMenu creates the menu model.
func NewMenu(opts MenuOptions) MenuModel {
	logLines := opts.LogLines
	if logLines <= 0 {
		logLines = defaultLogLines
	}
	return MenuModel{
		keys: DefaultKeyMap(),
		help: help.New(),
		items: []menuItem{
			{title: "Export settings", desc: "Dump metadata and settings of the active machine to JSON", choice: ChoiceExport},
			{title: "Copy last export path", desc: "Put the path of the last export on the clipboard", choice: ChoiceCopyPath},
			{title: "Quit", desc: "Leave the exporter", choice: ChoiceQuit},
		},
		status:   opts.Status,
		lastPath: opts.LastPath,
		logs:     opts.Logs,
		logLines: logLines,
		width:    design.MinContentWidth * 2,
	}
}

// Choice returns the selected entry, ChoiceNone while the menu is running.
func (m MenuModel) Choice() Choice {
	return m.choice
}

func (m MenuModel) Init() tea.Cmd {
	if m.logs == nil {
		return nil
	}
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(logRefreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, design.MinContentWidth)
		m.help.Width = m.width
		return m, nil

	case tickMsg:
		// Logs are read in View; the tick only triggers a repaint.
		return m, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.choice = ChoiceQuit
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(m.items) - 1
			}
		case key.Matches(msg, m.keys.Down):
			m.cursor = (m.cursor + 1) % len(m.items)
		case key.Matches(msg, m.keys.Enter):
			m.choice = m.items[m.cursor].choice
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString(design.TitleStyle.Render(MenuTitle))
	b.WriteString("\n")
	if m.lastPath != "" {
		b.WriteString(design.SubtitleStyle.Render(truncate("Last export: "+m.lastPath, m.width)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, item := range m.items {
		if i == m.cursor {
			b.WriteString(design.SelectedItemStyle.Render(design.IconPointer + " " + item.title))
			b.WriteString("  ")
			b.WriteString(design.SubtitleStyle.Render(truncate(item.desc, m.width-lipgloss.Width(item.title)-6)))
		} else {
			b.WriteString(design.ItemStyle.Render(item.title))
		}
		b.WriteString("\n")
	}

	if m.status.Text != "" {
		icon := design.IconCheck
		if m.status.Err {
			icon = design.IconCross
		}
		b.WriteString("\n")
		b.WriteString(design.StatusStyle(m.status.Err).Render(truncate(icon+" "+m.status.Text, m.width)))
		b.WriteString("\n")
	}

	b.WriteString(design.HelpStyle.Render(m.help.View(m.keys)))

	if logs := m.renderLogs(); logs != "" {
		b.WriteString("\n\n")
		b.WriteString(logs)
	}
	return b.String()
}

func (m MenuModel) renderLogs() string {
	entries := m.logs.Tail(m.logLines)
	if len(entries) == 0 {
		return ""
	}
	// Border and padding take four cells.
	inner := max(m.width-4, 1)
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		style := design.LogStyle
		switch entry.Level {
		case logging.LevelError:
			style = design.LogErrorStyle
		case logging.LevelWarn:
			style = design.LogWarnStyle
		}
		lines = append(lines, style.Render(truncate(formatLogLine(entry), inner)))
	}
	return design.PanelStyle.Width(inner + 2).Render(strings.Join(lines, "\n"))
}

// RunMenu shows the menu until the user picks an entry.
func RunMenu(ctx context.Context, opts MenuOptions, progOpts ...tea.ProgramOption) (Choice, error) {
	progOpts = append([]tea.ProgramOption{tea.WithContext(ctx)}, progOpts...)
	p := tea.NewProgram(NewMenu(opts), progOpts...)
	final, err := p.Run()
	if err != nil {
		return ChoiceNone, fmt.Errorf("menu: %w", err)
	}
	m, ok := final.(MenuModel)
	if !ok {
		return ChoiceNone, fmt.Errorf("menu: unexpected model %T", final)
	}
	return m.Choice(), nil
}
