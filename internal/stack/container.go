package stack

import (
	"maps"
	"slices"
)

// Container is one layer of a stack: descriptive metadata plus the setting
// values it defines itself. A Container is not modified after construction.
type Container struct {
	ID       string
	Name     string
	metadata map[string]any
	values   map[string]any
}

// NewContainer copies metadata and values into a new container.
func NewContainer(id, name string, metadata, values map[string]any) *Container {
	c := &Container{
		ID:       id,
		Name:     name,
		metadata: make(map[string]any, len(metadata)),
		values:   make(map[string]any, len(values)),
	}
	maps.Copy(c.metadata, metadata)
	maps.Copy(c.values, values)
	return c
}

// Empty returns the placeholder for an unset position.
func Empty(role Role) *Container {
	id := "empty_" + role.String()
	return NewContainer(id, "Empty", map[string]any{"type": role.String()}, nil)
}

// Metadata returns a copy of the container metadata.
func (c *Container) Metadata() map[string]any {
	return maps.Clone(c.metadata)
}

// MetadataEntry returns a single metadata value.
func (c *Container) MetadataEntry(key string) (any, bool) {
	v, ok := c.metadata[key]
	return v, ok
}

// Type returns the self-declared "type" metadata entry, or "".
func (c *Container) Type() string {
	if t, ok := c.metadata["type"].(string); ok {
		return t
	}
	return ""
}

// Keys returns the container's own setting keys, sorted.
func (c *Container) Keys() []string {
	var keys []string
	for k := range c.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Value returns the container's own value for key.
func (c *Container) Value(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Len is the number of settings the container defines.
func (c *Container) Len() int {
	return len(c.values)
}
