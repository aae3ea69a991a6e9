package exporter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"settingsexporter/internal/stack"
)

const (
	// ResolvedKey holds the resolved value of every key known to a stack.
	ResolvedKey = "all"
	// StackKey holds the stack's own metadata in the metadata section.
	StackKey = "stack"
)

// ErrUnserializable is wrapped by every UnserializableError.
var ErrUnserializable = errors.New("document contains values that are not JSON serializable")

// UnserializableError lists the document paths whose values could not be
// converted to a JSON scalar.
type UnserializableError struct {
	Paths []string
}

func (e *UnserializableError) Error() string {
	return fmt.Sprintf("%d value(s) not JSON serializable: %s", len(e.Paths), strings.Join(e.Paths, ", "))
}

func (e *UnserializableError) Unwrap() error {
	return ErrUnserializable
}

// Scope maps a container name (a role, "all" or "stack") to its leaf values.
type Scope map[string]map[string]any

// Section splits a document half into the global stack and the extruders,
// keyed by enumeration index.
type Section struct {
	Global    Scope            `json:"global"`
	Extruders map[string]Scope `json:"extruders"`
}

// Document is the exported artifact.
type Document struct {
	Metadata Section `json:"metadata"`
	Settings Section `json:"settings"`
}

// BuildOptions tune how leaves are rendered.
type BuildOptions struct {
	// StringifyResolved renders the resolved view as strings like every other leaf.
	StringifyResolved bool
}

// Build snapshots machine into a Document. Every leaf is converted to a JSON
// scalar up front; values that cannot be converted are left in place and
// reported through an *UnserializableError alongside the document.
func Build(machine *stack.Machine, opts BuildOptions) (*Document, error) {
	doc := &Document{
		Metadata: Section{Extruders: make(map[string]Scope, len(machine.Extruders))},
		Settings: Section{Extruders: make(map[string]Scope, len(machine.Extruders))},
	}
	b := &builder{opts: opts}

	doc.Metadata.Global, doc.Settings.Global = b.snapshot(machine.Global, "global")
	for i, ext := range machine.Extruders {
		idx := strconv.Itoa(i)
		doc.Metadata.Extruders[idx], doc.Settings.Extruders[idx] = b.snapshot(ext, "extruders."+idx)
	}

	if len(b.problems) > 0 {
		sort.Strings(b.problems)
		return doc, &UnserializableError{Paths: b.problems}
	}
	return doc, nil
}

type builder struct {
	opts     BuildOptions
	problems []string
}

func (b *builder) snapshot(s *stack.Stack, scope string) (metadata, settings Scope) {
	metadata = make(Scope)
	settings = make(Scope)

	metadata[StackKey] = b.stringifyAll(s.Metadata(), "metadata."+scope+"."+StackKey)

	resolved := make(map[string]any)
	for _, key := range s.Keys() {
		v, _ := s.Resolve(key)
		resolved[key] = b.resolvedLeaf(v, "settings."+scope+"."+ResolvedKey+"."+key)
	}
	settings[ResolvedKey] = resolved

	for _, role := range stack.Roles() {
		c := s.Container(role)
		name := role.String()
		metadata[name] = b.stringifyAll(c.Metadata(), "metadata."+scope+"."+name)

		values := make(map[string]any, c.Len())
		for _, key := range c.Keys() {
			v, _ := c.Value(key)
			values[key] = v
		}
		settings[name] = b.stringifyAll(values, "settings."+scope+"."+name)
	}
	return metadata, settings
}

func (b *builder) stringifyAll(in map[string]any, path string) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = b.stringLeaf(v, path+"."+k)
	}
	return out
}

// stringLeaf keeps nil as JSON null and renders everything else as text.
func (b *builder) stringLeaf(v any, path string) any {
	if v == nil {
		return nil
	}
	s, err := Stringify(v)
	if err != nil {
		b.problems = append(b.problems, path)
		return v
	}
	return s
}

func (b *builder) resolvedLeaf(v any, path string) any {
	if !b.opts.StringifyResolved {
		if scalar, ok := jsonScalar(v); ok {
			return scalar
		}
	}
	return b.stringLeaf(v, path)
}

// Encode renders doc as two-space indented JSON with a trailing newline.
// Object keys are sorted, so equal documents encode to equal bytes.
func Encode(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnserializable, err)
	}
	return buf.Bytes(), nil
}

// Dump renders doc for the operator log, including values Encode rejects.
func (d *Document) Dump() string {
	return fmt.Sprintf("%+v", *d)
}
