package tui

import (
	"fmt"
	"sync"

	"github.com/mattn/go-runewidth"

	"settingsexporter/pkg/logging"
)

// MaxLogLines is how many entries a LogBuffer keeps.
const MaxLogLines = 200

// LogBuffer drains a logging channel in the background and keeps the most
// recent entries. The menu reads snapshots of it while it is on screen, so
// entries produced during an export are not lost while no menu is running.
type LogBuffer struct {
	mu      sync.RWMutex
	entries []logging.LogEntry
	max     int
	done    chan struct{}
}

// NewLogBuffer starts draining ch. The goroutine exits when ch is closed.
// A nil channel yields an empty buffer.
func NewLogBuffer(ch <-chan logging.LogEntry, size int) *LogBuffer {
	if size <= 0 {
		size = MaxLogLines
	}
	b := &LogBuffer{max: size, done: make(chan struct{})}
	if ch == nil {
		close(b.done)
		return b
	}
	go func() {
		defer close(b.done)
		for entry := range ch {
			b.Append(entry)
		}
	}()
	return b
}

// Append adds an entry, dropping the oldest once the buffer is full.
func (b *LogBuffer) Append(entry logging.LogEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, entry)
	if len(b.entries) > b.max {
		b.entries = b.entries[len(b.entries)-b.max:]
	}
}

// Tail returns up to n of the most recent entries, oldest first.
func (b *LogBuffer) Tail(n int) []logging.LogEntry {
	if b == nil || n <= 0 {
		return nil
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	start := len(b.entries) - n
	if start < 0 {
		start = 0
	}
	out := make([]logging.LogEntry, len(b.entries)-start)
	copy(out, b.entries[start:])
	return out
}

// Done is closed once the source channel has been closed and drained.
func (b *LogBuffer) Done() <-chan struct{} {
	return b.done
}

// formatLogLine renders an entry the way the activity panel shows it.
func formatLogLine(entry logging.LogEntry) string {
	line := fmt.Sprintf("[%s] %s %s: %s",
		entry.Timestamp.Format("15:04:05"),
		entry.Level,
		entry.Subsystem,
		entry.Message,
	)
	if entry.Err != nil {
		line += " (" + entry.Err.Error() + ")"
	}
	return line
}

// truncate cuts s to width terminal cells, accounting for wide runes.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
