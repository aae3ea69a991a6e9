package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"settingsexporter/internal/stack"
)

func testMachine(t *testing.T) *stack.Machine {
	t.Helper()
	global := stack.NewGlobalStack("s5", nil)
	require.NoError(t, global.SetContainer(stack.RoleDefinition,
		stack.NewContainer("ultimaker_s5", "Ultimaker S5", map[string]any{"type": "machine"}, map[string]any{
			"machine_width":  330,
			"machine_height": 300,
		})))
	require.NoError(t, global.SetContainer(stack.RoleUser,
		stack.NewContainer("s5_user", "User", map[string]any{"type": "user"}, map[string]any{
			"adhesion_type": "brim",
		})))

	m := stack.NewMachine(global)
	for _, pos := range []int{1, 0} {
		ext := stack.NewExtruderStack("s5_extruder_"+string(rune('0'+pos)), pos, nil, global)
		require.NoError(t, ext.SetContainer(stack.RoleMaterial,
			stack.NewContainer("pla", "PLA", map[string]any{"type": "material"}, map[string]any{
				"material_print_temperature": 210,
			})))
		require.NoError(t, m.AddExtruder(ext))
	}
	return m
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{in: "", want: OutputFormatTable},
		{in: "table", want: OutputFormatTable},
		{in: "JSON", want: OutputFormatJSON},
		{in: " yaml ", want: OutputFormatYAML},
		{in: "xml", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestSummarize(t *testing.T) {
	sum := Summarize(testMachine(t), SummaryOptions{})

	assert.Equal(t, "s5", sum.Machine)
	assert.Equal(t, 2, sum.Extruders)
	require.Len(t, sum.Stacks, 3)
	assert.Equal(t, StackSummary{Stack: "global", ID: "s5", ResolvedKeys: 3}, sum.Stacks[0])
	assert.Equal(t, "extruder 0", sum.Stacks[1].Stack)
	assert.Equal(t, 4, sum.Stacks[1].ResolvedKeys)

	// Eight positions per stack.
	require.Len(t, sum.Containers, 24)
	first := sum.Containers[0]
	assert.Equal(t, ContainerRow{Stack: "global", Role: "user", ID: "s5_user", Name: "User", Type: "user", Keys: 1}, first)

	var empties int
	for _, row := range sum.Containers {
		if row.Empty {
			empties++
			assert.Zero(t, row.Keys)
		}
	}
	assert.Equal(t, 24-4, empties)
}

func TestSummarize_KeySources(t *testing.T) {
	m := testMachine(t)
	require.NoError(t, m.Extruders[0].SetContainer(stack.RoleUser,
		stack.NewContainer("e0_user", "User", map[string]any{"type": "user"}, map[string]any{
			"adhesion_type": "raft",
		})))

	sum := Summarize(m, SummaryOptions{Keys: true})

	sources := make(map[string]KeySource)
	for _, k := range sum.Keys {
		sources[k.Stack+"/"+k.Key] = k
	}
	assert.Len(t, sum.Keys, 3+4+4)
	assert.Equal(t, KeySource{Stack: "global", Key: "adhesion_type", Source: "global", Role: "user", Container: "s5_user"}, sources["global/adhesion_type"])
	assert.Equal(t, KeySource{Stack: "global", Key: "machine_width", Source: "global", Role: "definition", Container: "ultimaker_s5"}, sources["global/machine_width"])
	assert.Equal(t, KeySource{Stack: "extruder 0", Key: "adhesion_type", Source: "extruder 0", Role: "user", Container: "e0_user"}, sources["extruder 0/adhesion_type"])
	assert.Equal(t, KeySource{Stack: "extruder 1", Key: "adhesion_type", Source: "global", Role: "user", Container: "s5_user"}, sources["extruder 1/adhesion_type"])
	assert.Equal(t, KeySource{Stack: "extruder 1", Key: "material_print_temperature", Source: "extruder 1", Role: "material", Container: "pla"}, sources["extruder 1/material_print_temperature"])

	assert.Empty(t, Summarize(m, SummaryOptions{}).Keys)
}

func TestRender_TableWithKeys(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Summarize(testMachine(t), SummaryOptions{Keys: true}), OutputFormatTable))

	out := buf.String()
	for _, want := range []string{"resolved keys", "KEY", "CONTAINER", "material_print_temperature", "machine_height"} {
		assert.True(t, strings.Contains(out, want), "table is missing %q:\n%s", want, out)
	}
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Summarize(testMachine(t), SummaryOptions{}), OutputFormatJSON))

	var decoded Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, Summarize(testMachine(t), SummaryOptions{}), decoded)
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Summarize(testMachine(t), SummaryOptions{}), OutputFormatYAML))

	out := buf.String()
	assert.Contains(t, out, "machine: s5")
	assert.Contains(t, out, "resolvedKeys: 3")
	assert.Contains(t, out, "role: definition_changes")
}

func TestRender_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Summarize(testMachine(t), SummaryOptions{}), OutputFormatTable))

	out := buf.String()
	for _, want := range []string{"s5 (2 extruders)", "ROLE", "ultimaker_s5", "Ultimaker S5", "empty_quality", "extruder 1", "resolved"} {
		assert.True(t, strings.Contains(out, want), "table is missing %q:\n%s", want, out)
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, Summary{}, OutputFormat("xml"))
	assert.Error(t, err)
}
