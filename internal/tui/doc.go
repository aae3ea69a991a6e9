// Package tui holds the bubbletea front end: the main menu and the save
// dialog used as a prompt.SavePrompter.
//
// Each screen is its own short-lived tea.Program. The menu quits as soon as
// an entry is picked so the caller can run the export, which may open the
// dialog, before showing a fresh menu with the outcome. Log entries keep
// flowing into a LogBuffer in between, so nothing logged during an export is
// lost.
package tui
