package tui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"settingsexporter/internal/prompt"
)

func saveRequest(dir string) prompt.SaveRequest {
	return prompt.SaveRequest{
		Title:       "Save File",
		Directory:   dir,
		DefaultName: "settings.json",
		Filter:      prompt.JSONFilter,
	}
}

func TestDialog_SubmitSuggestedPath(t *testing.T) {
	dir := t.TempDir()
	m, cmd := press(t, NewDialog(saveRequest(dir)), keyEnter)

	d := m.(DialogModel)
	assert.True(t, isQuit(cmd))
	assert.False(t, d.Cancelled())
	assert.Equal(t, filepath.Join(dir, "settings.json"), d.Path())
}

func TestDialog_Cancel(t *testing.T) {
	tests := map[string]tea.KeyMsg{
		"esc":    keyEsc,
		"ctrl+c": keyCtrlC,
	}
	for name, k := range tests {
		t.Run(name, func(t *testing.T) {
			m, cmd := press(t, NewDialog(saveRequest(t.TempDir())), k)

			d := m.(DialogModel)
			assert.True(t, isQuit(cmd))
			assert.True(t, d.Cancelled())
			assert.Empty(t, d.Path())
		})
	}
}

func TestDialog_Typing(t *testing.T) {
	m, _ := press(t, NewDialog(prompt.SaveRequest{Filter: prompt.JSONFilter}), runes("o"), runes("u"), runes("t"), keyTab)
	d := m.(DialogModel)
	assert.Equal(t, "out.json", d.input.Value())

	m, cmd := press(t, d, keyEnter)
	assert.True(t, isQuit(cmd))
	assert.Equal(t, "out.json", m.(DialogModel).Path())
}

func TestDialog_RejectsEmptyAndDirectory(t *testing.T) {
	m, cmd := press(t, NewDialog(prompt.SaveRequest{}), keyEnter)
	assert.False(t, isQuit(cmd))
	assert.Contains(t, m.View(), "Enter a file name")

	dir := t.TempDir()
	d := NewDialog(prompt.SaveRequest{})
	d.input.SetValue(dir)
	m, cmd = press(t, d, keyEnter)
	assert.False(t, isQuit(cmd))
	assert.Empty(t, m.(DialogModel).Path())
	assert.Contains(t, m.View(), "is a directory")
}

func TestDialog_View(t *testing.T) {
	view := NewDialog(saveRequest("")).View()
	assert.Contains(t, view, "Save File")
	assert.Contains(t, view, "JSON (*.json)")
}

func TestCompleteExtension(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "out", want: "out.json"},
		{in: "  out  ", want: "out.json"},
		{in: "out.json", want: "out.json"},
		{in: "out.txt", want: "out.txt"},
		{in: "", want: ""},
		{in: "dir" + string(filepath.Separator), want: "dir" + string(filepath.Separator)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, completeExtension(tt.in, prompt.JSONFilter), "input %q", tt.in)
	}

	assert.Equal(t, "out", completeExtension("out", prompt.Filter{Name: "Any", Patterns: []string{"*"}}))
}

func TestDialogPrompter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path, err := NewDialogPrompter().PromptSavePath(ctx, saveRequest(t.TempDir()))
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, path)
}
