package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"settingsexporter/internal/prompt"
	"settingsexporter/internal/tui/design"
)

// DialogModel asks for a file path in a single text input.
type DialogModel struct {
	keys      DialogKeyMap
	help      help.Model
	input     textinput.Model
	req       prompt.SaveRequest
	problem   string
	path      string
	cancelled bool
}

// NewDialog creates a save dialog prefilled with the suggested path.
func NewDialog(req prompt.SaveRequest) DialogModel {
	ti := textinput.New()
	ti.Placeholder = "path/to/" + req.DefaultName
	ti.Prompt = design.IconSave + " "
	ti.CharLimit = 4096
	ti.Width = design.MinContentWidth
	ti.SetValue(req.SuggestedPath())
	ti.CursorEnd()
	ti.Focus()

	return DialogModel{
		keys:  DefaultDialogKeyMap(),
		help:  help.New(),
		input: ti,
		req:   req,
	}
}

// Path returns the submitted path; empty when the dialog was cancelled.
func (m DialogModel) Path() string {
	return m.path
}

// Cancelled reports whether the user dismissed the dialog.
func (m DialogModel) Cancelled() bool {
	return m.cancelled
}

func (m DialogModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m DialogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-8, design.MinContentWidth)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.cancelled = true
			m.path = ""
			return m, tea.Quit

		case key.Matches(msg, m.keys.Submit):
			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				m.problem = "Enter a file name or press esc to cancel"
				return m, nil
			}
			if err := prompt.CheckSavePath(value); err != nil {
				m.problem = err.Error()
				return m, nil
			}
			m.path = value
			return m, tea.Quit

		case key.Matches(msg, m.keys.Complete):
			m.input.SetValue(completeExtension(m.input.Value(), m.req.Filter))
			m.input.CursorEnd()
			m.problem = ""
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		m.problem = ""
	}
	return m, cmd
}

func (m DialogModel) View() string {
	title := m.req.Title
	if title == "" {
		title = "Save File"
	}

	var b strings.Builder
	b.WriteString(design.TitleStyle.Render(title))
	b.WriteString("\n")
	if m.req.Filter.Name != "" {
		b.WriteString(design.SubtitleStyle.Render(m.req.Filter.String()))
		b.WriteString("\n")
	}
	b.WriteString(m.input.View())
	if m.problem != "" {
		b.WriteString("\n")
		b.WriteString(design.StatusErrorStyle.Render(design.IconWarning + " " + m.problem))
	}
	b.WriteString("\n")
	b.WriteString(design.HelpStyle.Render(m.help.View(m.keys)))
	return design.DialogStyle.Render(b.String())
}

// completeExtension appends the first extension of filter to a path that has
// none.
func completeExtension(path string, filter prompt.Filter) string {
	path = strings.TrimSpace(path)
	if path == "" || strings.HasSuffix(path, string(filepath.Separator)) || filepath.Ext(path) != "" {
		return path
	}
	for _, p := range filter.Patterns {
		if ext := filepath.Ext(p); ext != "" && !strings.ContainsAny(ext, "*?[") {
			return path + ext
		}
	}
	return path
}

// DialogPrompter implements prompt.SavePrompter with a bubbletea dialog.
type DialogPrompter struct {
	opts []tea.ProgramOption
}

var _ prompt.SavePrompter = (*DialogPrompter)(nil)

// NewDialogPrompter returns a prompter; opts are passed to every program it starts.
func NewDialogPrompter(opts ...tea.ProgramOption) *DialogPrompter {
	return &DialogPrompter{opts: opts}
}

// PromptSavePath runs the dialog and blocks until it is submitted or cancelled.
func (d *DialogPrompter) PromptSavePath(ctx context.Context, req prompt.SaveRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, d.opts...)
	final, err := tea.NewProgram(NewDialog(req), opts...).Run()
	if err != nil {
		return "", fmt.Errorf("save dialog: %w", err)
	}
	m, ok := final.(DialogModel)
	if !ok {
		return "", fmt.Errorf("save dialog: unexpected model %T", final)
	}
	if m.Cancelled() {
		return "", nil
	}
	return m.Path(), nil
}
