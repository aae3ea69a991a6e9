// Package stack models a printer configuration as layered containers.
//
// A Stack holds one Container per Role. Roles are fixed positions:
//
//	0 user
//	1 quality_changes
//	2 intent
//	3 quality
//	4 material
//	5 variant
//	6 definition_changes
//	7 definition
//
// Resolving a setting returns the value from the lowest index that defines
// it. Extruder stacks continue the lookup in the global stack, so a value set
// only on the machine is visible from every extruder.
//
// A Machine groups the global stack with its extruder stacks, ordered by
// extruder position.
package stack
