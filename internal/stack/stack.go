package stack

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strconv"
)

// Kind distinguishes the global machine stack from per-extruder stacks.
type Kind int

const (
	KindGlobal Kind = iota
	KindExtruder
)

// String returns the stack type tag recorded in stack metadata.
func (k Kind) String() string {
	switch k {
	case KindGlobal:
		return "machine"
	case KindExtruder:
		return "extruder_train"
	default:
		return "unknown"
	}
}

// Stack is an ordered set of containers at fixed positions. Resolution walks
// positions from RoleUser towards RoleDefinition and, for extruder stacks,
// continues into the global stack.
type Stack struct {
	ID         string
	kind       Kind
	position   int
	metadata   map[string]any
	containers [roleCount]*Container
	next       *Stack
}

// NewGlobalStack creates a global stack with every position empty.
func NewGlobalStack(id string, metadata map[string]any) *Stack {
	s := newStack(id, KindGlobal, metadata)
	s.metadata["type"] = KindGlobal.String()
	return s
}

// NewExtruderStack creates an extruder stack that falls back to global.
func NewExtruderStack(id string, position int, metadata map[string]any, global *Stack) *Stack {
	s := newStack(id, KindExtruder, metadata)
	s.position = position
	s.next = global
	s.metadata["type"] = KindExtruder.String()
	s.metadata["position"] = strconv.Itoa(position)
	return s
}

func newStack(id string, kind Kind, metadata map[string]any) *Stack {
	s := &Stack{
		ID:       id,
		kind:     kind,
		metadata: make(map[string]any, len(metadata)+2),
	}
	maps.Copy(s.metadata, metadata)
	for _, r := range Roles() {
		s.containers[r] = Empty(r)
	}
	return s
}

// Kind returns whether this is the global or an extruder stack.
func (s *Stack) Kind() Kind { return s.kind }

// Position is the extruder position; always 0 for the global stack.
func (s *Stack) Position() int { return s.position }

// Next returns the stack consulted after this one, or nil.
func (s *Stack) Next() *Stack { return s.next }

// Metadata returns a copy of the stack's own metadata.
func (s *Stack) Metadata() map[string]any {
	return maps.Clone(s.metadata)
}

// SetContainer places c at role. A nil container resets the position to empty.
func (s *Stack) SetContainer(role Role, c *Container) error {
	if !role.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownRole, int(role))
	}
	if c == nil {
		c = Empty(role)
	}
	s.containers[role] = c
	return nil
}

// Container returns the container at role. Unset positions hold Empty(role).
func (s *Stack) Container(role Role) *Container {
	if !role.Valid() {
		return nil
	}
	return s.containers[role]
}

// Containers returns the containers in index order.
func (s *Stack) Containers() []*Container {
	return slices.Clone(s.containers[:])
}

// Keys returns every setting key known to the stack, sorted and unique.
func (s *Stack) Keys() []string {
	seen := make(map[string]struct{})
	for cur := s; cur != nil; cur = cur.next {
		for _, c := range cur.containers {
			for k := range c.values {
				seen[k] = struct{}{}
			}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Resolve returns the effective value of key: the first container that
// defines it wins.
func (s *Stack) Resolve(key string) (any, bool) {
	for cur := s; cur != nil; cur = cur.next {
		for _, c := range cur.containers {
			if v, ok := c.values[key]; ok {
				return v, true
			}
		}
	}
	return nil, false
}

// Source reports which stack and role supply the resolved value of key.
func (s *Stack) Source(key string) (*Stack, Role, bool) {
	for cur := s; cur != nil; cur = cur.next {
		for r, c := range cur.containers {
			if _, ok := c.values[key]; ok {
				return cur, Role(r), true
			}
		}
	}
	return nil, 0, false
}
