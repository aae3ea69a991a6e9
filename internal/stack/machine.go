package stack

import (
	"errors"
	"fmt"
	"sort"
)

// Machine is one complete printer configuration: the global stack and its
// extruder stacks ordered by position.
type Machine struct {
	Global    *Stack
	Extruders []*Stack
}

// NewMachine returns a machine around global with no extruders.
func NewMachine(global *Stack) *Machine {
	return &Machine{Global: global}
}

// AddExtruder inserts an extruder stack keeping position order.
func (m *Machine) AddExtruder(s *Stack) error {
	if s == nil {
		return errors.New("extruder stack is nil")
	}
	if s.Kind() != KindExtruder {
		return fmt.Errorf("stack %q is not an extruder stack", s.ID)
	}
	for _, e := range m.Extruders {
		if e.Position() == s.Position() {
			return fmt.Errorf("duplicate extruder position %d (%q and %q)", s.Position(), e.ID, s.ID)
		}
	}
	m.Extruders = append(m.Extruders, s)
	sort.SliceStable(m.Extruders, func(i, j int) bool {
		return m.Extruders[i].Position() < m.Extruders[j].Position()
	})
	return nil
}
