package stack

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRole is returned when a container role name is not one of the
// fixed stack positions.
var ErrUnknownRole = errors.New("unknown container role")

// Role is the fixed position a container occupies inside a stack. Lower
// indexes take precedence during resolution.
type Role int

const (
	RoleUser Role = iota
	RoleQualityChanges
	RoleIntent
	RoleQuality
	RoleMaterial
	RoleVariant
	RoleDefinitionChanges
	RoleDefinition

	roleCount
)

var roleNames = [roleCount]string{
	RoleUser:              "user",
	RoleQualityChanges:    "quality_changes",
	RoleIntent:            "intent",
	RoleQuality:           "quality",
	RoleMaterial:          "material",
	RoleVariant:           "variant",
	RoleDefinitionChanges: "definition_changes",
	RoleDefinition:        "definition",
}

// String returns the positional type name used as the export key.
func (r Role) String() string {
	if r < 0 || r >= roleCount {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roleNames[r]
}

// Index returns the position of the role in the stack.
func (r Role) Index() int {
	return int(r)
}

// Valid reports whether r is one of the known positions.
func (r Role) Valid() bool {
	return r >= 0 && r < roleCount
}

// Roles returns every role in index order.
func Roles() []Role {
	roles := make([]Role, 0, roleCount)
	for r := RoleUser; r < roleCount; r++ {
		roles = append(roles, r)
	}
	return roles
}

// ParseRole maps a positional type name to its Role. "machine" is accepted
// as an alias for the machine definition.
func ParseRole(name string) (Role, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "machine" {
		return RoleDefinition, nil
	}
	for r, rn := range roleNames {
		if rn == n {
			return Role(r), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRole, name)
}
