package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{in: "debug", want: LevelDebug},
		{in: "INFO", want: LevelInfo},
		{in: "", want: LevelInfo},
		{in: "warning", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "loud", want: LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCLIMode_WritesSubsystemAndError(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelDebug, &buf)

	Default().Error("Exporter", errors.New("boom"), "export failed for %s", "printer")

	out := buf.String()
	assert.Contains(t, out, "export failed for printer")
	assert.Contains(t, out, "subsystem=Exporter")
	assert.Contains(t, out, "error=boom")
}

func TestCLIMode_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelWarn, &buf)

	Info("Exporter", "hidden")
	Warn("Exporter", "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestTUIMode_SendsToChannel(t *testing.T) {
	ch := InitForTUI(LevelInfo)
	defer func() {
		CloseTUIChannel()
		InitForCLI(LevelInfo, &bytes.Buffer{})
	}()
	require.NotNil(t, ch)

	Debug("Menu", "filtered out")
	Info("Menu", "opened %d", 1)

	select {
	case entry := <-ch:
		assert.Equal(t, LevelInfo, entry.Level)
		assert.Equal(t, "Menu", entry.Subsystem)
		assert.Equal(t, "opened 1", entry.Message)
	default:
		t.Fatal("expected a log entry on the TUI channel")
	}
}

func TestTUIMode_FullBufferDoesNotBlock(t *testing.T) {
	ch := Initcommon("tui", LevelInfo, nil, 1)
	defer func() {
		CloseTUIChannel()
		InitForCLI(LevelInfo, &bytes.Buffer{})
	}()

	Info("Menu", "first")
	Info("Menu", "second")

	entry := <-ch
	assert.Equal(t, "first", entry.Message)
}
