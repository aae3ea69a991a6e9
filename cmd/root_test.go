package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestSetVersion(t *testing.T) {
	testVersion := "1.2.3-test"
	SetVersion(testVersion)

	if rootCmd.Version != testVersion {
		t.Errorf("Expected version to be %s, got %s", testVersion, rootCmd.Version)
	}
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "settingsexporter" {
		t.Errorf("Expected Use to be 'settingsexporter', got %s", rootCmd.Use)
	}
	if rootCmd.Short == "" {
		t.Error("Expected Short description to be set")
	}
	if rootCmd.Long == "" {
		t.Error("Expected Long description to be set")
	}
	if !rootCmd.SilenceUsage {
		t.Error("Expected SilenceUsage to be true")
	}
	for _, name := range []string{"config", "debug"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected persistent flag --%s", name)
		}
	}
}

func TestVersionTemplate(t *testing.T) {
	testCmd := &cobra.Command{
		Use:     "test",
		Version: "1.0.0",
	}
	testCmd.SetVersionTemplate(`{{printf "settingsexporter version %s\n" .Version}}`)

	var buf bytes.Buffer
	testCmd.SetOut(&buf)
	testCmd.SetArgs([]string{"--version"})
	if err := testCmd.Execute(); err != nil {
		t.Fatalf("Error executing version command: %v", err)
	}

	expected := "settingsexporter version 1.0.0\n"
	if got := buf.String(); got != expected {
		t.Errorf("Expected version output %q, got %q", expected, got)
	}
}

func TestSubcommands(t *testing.T) {
	found := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		found[cmd.Name()] = true
	}
	for _, expected := range []string{"version", "export", "menu", "inspect"} {
		if !found[expected] {
			t.Errorf("Expected subcommand %q to be registered", expected)
		}
	}
}

func TestExportFlags(t *testing.T) {
	cmd := newExportCmd()
	for _, name := range []string{"machine", "machines-dir", "output", "prompt", "stringify-resolved"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("Expected export flag --%s", name)
		}
	}
	if f := cmd.Flags().ShorthandLookup("o"); f == nil || f.Name != "output" {
		t.Error("Expected -o to be the shorthand for --output")
	}
}

// writeWorkspace lays out a config directory and a one-machine store.
func writeWorkspace(t *testing.T) (configDir, root string) {
	t.Helper()
	root = t.TempDir()
	files := map[string]string{
		"machines/mini/machine.yaml":    "id: mini\ncontainers:\n  definition: definition.yaml\n",
		"machines/mini/definition.yaml": "id: mini_def\nvalues:\n  machine_width: 180\n",
		"config/config.yaml":            fmt.Sprintf("store:\n  machinesDir: %s\n", filepath.Join(root, "machines")),
	}
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return filepath.Join(root, "config"), root
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestExportCommand(t *testing.T) {
	configDir, root := writeWorkspace(t)
	target := filepath.Join(root, "out")

	out, err := execute(t, "export", "--config", configDir, "-o", target, "--stringify-resolved")
	if err != nil {
		t.Fatalf("export failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Settings exported to: "+target+".json") {
		t.Errorf("unexpected output: %q", out)
	}

	data, err := os.ReadFile(target + ".json")
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Settings struct {
			Global map[string]map[string]any `json:"global"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if got := doc.Settings.Global["all"]["machine_width"]; got != "180" {
		t.Errorf("expected stringified resolved value \"180\", got %#v", got)
	}
}

func TestExportCommand_BadPrompt(t *testing.T) {
	configDir, _ := writeWorkspace(t)
	if _, err := execute(t, "export", "--config", configDir, "--prompt", "zenity"); err == nil {
		t.Error("expected an error for an unknown prompt")
	}
}

func TestInspectCommand(t *testing.T) {
	configDir, _ := writeWorkspace(t)

	out, err := execute(t, "inspect", "--config", configDir, "--format", "yaml")
	if err != nil {
		t.Fatalf("inspect failed: %v\n%s", err, out)
	}
	for _, want := range []string{"machine: mini", "id: mini_def", "resolvedKeys: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output is missing %q:\n%s", want, out)
		}
	}

	out, err = execute(t, "inspect", "--config", configDir, "--format", "yaml", "--keys")
	if err != nil {
		t.Fatalf("inspect --keys failed: %v\n%s", err, out)
	}
	for _, want := range []string{"key: machine_width", "role: definition", "container: mini_def"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect --keys output is missing %q:\n%s", want, out)
		}
	}

	if _, err := execute(t, "inspect", "--config", configDir, "--format", "xml"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
