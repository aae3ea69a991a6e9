package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"settingsexporter/internal/stack"
)

// OutputFormat represents the output format for CLI commands
type OutputFormat string

const (
	OutputFormatTable OutputFormat = "table"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
)

// ParseOutputFormat validates a --format value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		return f, nil
	case "":
		return OutputFormatTable, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use table, json or yaml)", s)
	}
}

// ContainerRow describes one position of one stack.
type ContainerRow struct {
	Stack string `json:"stack" yaml:"stack"`
	Role  string `json:"role" yaml:"role"`
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type" yaml:"type"`
	Keys  int    `json:"keys" yaml:"keys"`
	Empty bool   `json:"empty" yaml:"empty"`
}

// StackSummary is the resolved view of one stack.
type StackSummary struct {
	Stack        string `json:"stack" yaml:"stack"`
	ID           string `json:"id" yaml:"id"`
	ResolvedKeys int    `json:"resolvedKeys" yaml:"resolvedKeys"`
}

// KeySource names the container a stack resolves one key from. Keys an
// extruder inherits report the global stack as their source.
type KeySource struct {
	Stack     string `json:"stack" yaml:"stack"`
	Key       string `json:"key" yaml:"key"`
	Source    string `json:"source" yaml:"source"`
	Role      string `json:"role" yaml:"role"`
	Container string `json:"container" yaml:"container"`
}

// Summary is what inspect prints for a machine.
type Summary struct {
	Machine    string         `json:"machine" yaml:"machine"`
	Extruders  int            `json:"extruders" yaml:"extruders"`
	Stacks     []StackSummary `json:"stacks" yaml:"stacks"`
	Containers []ContainerRow `json:"containers" yaml:"containers"`
	Keys       []KeySource    `json:"keys,omitempty" yaml:"keys,omitempty"`
}

// SummaryOptions selects the optional parts of a Summary.
type SummaryOptions struct {
	// Keys lists where every resolved key comes from.
	Keys bool
}

func stackLabel(s *stack.Stack) string {
	if s.Kind() == stack.KindGlobal {
		return "global"
	}
	return "extruder " + strconv.Itoa(s.Position())
}

// Summarize collects the layout of m: the global stack first, then the
// extruders in position order.
func Summarize(m *stack.Machine, opts SummaryOptions) Summary {
	sum := Summary{
		Machine:   m.Global.ID,
		Extruders: len(m.Extruders),
	}
	add := func(s *stack.Stack) {
		label := stackLabel(s)
		sum.Stacks = append(sum.Stacks, StackSummary{Stack: label, ID: s.ID, ResolvedKeys: len(s.Keys())})
		for i, c := range s.Containers() {
			role := stack.Roles()[i]
			sum.Containers = append(sum.Containers, ContainerRow{
				Stack: label,
				Role:  role.String(),
				ID:    c.ID,
				Name:  c.Name,
				Type:  c.Type(),
				Keys:  c.Len(),
				Empty: c.ID == stack.Empty(role).ID,
			})
		}
		if !opts.Keys {
			return
		}
		for _, key := range s.Keys() {
			src, role, ok := s.Source(key)
			if !ok {
				continue
			}
			sum.Keys = append(sum.Keys, KeySource{
				Stack:     label,
				Key:       key,
				Source:    stackLabel(src),
				Role:      role.String(),
				Container: src.Container(role).ID,
			})
		}
	}
	add(m.Global)
	for _, e := range m.Extruders {
		add(e)
	}
	return sum
}

// Render writes the summary to w in the requested format.
func Render(w io.Writer, sum Summary, format OutputFormat) error {
	switch format {
	case OutputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	case OutputFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(sum); err != nil {
			return err
		}
		return enc.Close()
	case OutputFormatTable, "":
		renderTable(w, sum)
		return nil
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func renderTable(w io.Writer, sum Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle("%s (%d extruders)", sum.Machine, sum.Extruders)

	headers := table.Row{}
	for _, col := range []string{"stack", "role", "id", "name", "type", "keys"} {
		headers = append(headers, text.FgHiCyan.Sprint(strings.ToUpper(col)))
	}
	t.AppendHeader(headers)

	for _, row := range sum.Containers {
		if row.Empty {
			t.AppendRow(table.Row{row.Stack, row.Role, text.FgHiBlack.Sprint(row.ID), "", text.FgHiBlack.Sprint("-"), 0})
			continue
		}
		t.AppendRow(table.Row{row.Stack, row.Role, row.ID, row.Name, row.Type, row.Keys})
	}
	t.AppendSeparator()
	for _, s := range sum.Stacks {
		t.AppendRow(table.Row{s.Stack, text.FgHiBlue.Sprint("resolved"), s.ID, "", "", s.ResolvedKeys})
	}
	t.Render()

	if len(sum.Keys) > 0 {
		renderKeys(w, sum.Keys)
	}
}

// renderKeys prints one row per resolved key. Inherited keys name their
// source stack.
func renderKeys(w io.Writer, keys []KeySource) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle("resolved keys")

	headers := table.Row{}
	for _, col := range []string{"stack", "key", "role", "container"} {
		headers = append(headers, text.FgHiCyan.Sprint(strings.ToUpper(col)))
	}
	t.AppendHeader(headers)

	for _, k := range keys {
		role := k.Role
		if k.Source != k.Stack {
			role = text.FgHiBlack.Sprint(k.Source+" ") + role
		}
		t.AppendRow(table.Row{k.Stack, k.Key, role, k.Container})
	}
	t.Render()
}
