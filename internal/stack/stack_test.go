package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMachine(t *testing.T) *Machine {
	t.Helper()

	global := NewGlobalStack("printer", map[string]any{"name": "Printer"})
	require.NoError(t, global.SetContainer(RoleDefinition, NewContainer("printer_def", "Printer", map[string]any{"type": "machine"}, map[string]any{
		"layer_height":      0.1,
		"machine_width":     200,
		"adhesion_type":     "skirt",
		"material_diameter": 2.85,
	})))
	require.NoError(t, global.SetContainer(RoleQuality, NewContainer("normal", "Normal", map[string]any{"type": "quality"}, map[string]any{
		"layer_height": 0.15,
	})))
	require.NoError(t, global.SetContainer(RoleUser, NewContainer("user", "User", map[string]any{"type": "user"}, map[string]any{
		"adhesion_type": "brim",
	})))

	m := NewMachine(global)

	e1 := NewExtruderStack("right", 1, nil, global)
	require.NoError(t, e1.SetContainer(RoleMaterial, NewContainer("pla", "PLA", map[string]any{"type": "material"}, map[string]any{
		"material_print_temperature": 210,
	})))
	e0 := NewExtruderStack("left", 0, nil, global)
	require.NoError(t, e0.SetContainer(RoleMaterial, NewContainer("abs", "ABS", map[string]any{"type": "material"}, map[string]any{
		"material_print_temperature": 240,
		"material_diameter":          1.75,
	})))

	require.NoError(t, m.AddExtruder(e1))
	require.NoError(t, m.AddExtruder(e0))
	return m
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		want    Role
		wantErr bool
	}{
		{name: "user", want: RoleUser},
		{name: "quality_changes", want: RoleQualityChanges},
		{name: "Definition_Changes", want: RoleDefinitionChanges},
		{name: "machine", want: RoleDefinition},
		{name: "definition", want: RoleDefinition},
		{name: "extruder", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRole(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownRole)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoles_IndexOrder(t *testing.T) {
	roles := Roles()
	require.Len(t, roles, 8)
	for i, r := range roles {
		assert.Equal(t, i, r.Index())
	}
	assert.Equal(t, "user", roles[0].String())
	assert.Equal(t, "definition", roles[7].String())
}

func TestStack_EmptyPositions(t *testing.T) {
	s := NewGlobalStack("g", nil)
	for _, r := range Roles() {
		c := s.Container(r)
		require.NotNil(t, c)
		assert.Equal(t, "empty_"+r.String(), c.ID)
		assert.Zero(t, c.Len())
	}
	assert.Empty(t, s.Keys())
	assert.Equal(t, "machine", s.Metadata()["type"])
}

func TestStack_ResolveFirstDefinedWins(t *testing.T) {
	m := newTestMachine(t)

	v, ok := m.Global.Resolve("layer_height")
	require.True(t, ok)
	assert.Equal(t, 0.15, v, "quality overrides definition")

	v, ok = m.Global.Resolve("adhesion_type")
	require.True(t, ok)
	assert.Equal(t, "brim", v, "user overrides definition")

	_, ok = m.Global.Resolve("does_not_exist")
	assert.False(t, ok)
}

func TestStack_ExtruderFallsBackToGlobal(t *testing.T) {
	m := newTestMachine(t)
	left := m.Extruders[0]

	v, ok := left.Resolve("layer_height")
	require.True(t, ok)
	assert.Equal(t, 0.15, v)

	v, ok = left.Resolve("material_diameter")
	require.True(t, ok)
	assert.Equal(t, 1.75, v, "extruder value shadows global")

	src, role, ok := left.Source("layer_height")
	require.True(t, ok)
	assert.Same(t, m.Global, src)
	assert.Equal(t, RoleQuality, role)
}

func TestStack_KeysUniqueAndSorted(t *testing.T) {
	m := newTestMachine(t)

	assert.Equal(t, []string{"adhesion_type", "layer_height", "machine_width", "material_diameter"}, m.Global.Keys())
	assert.Equal(t, []string{
		"adhesion_type",
		"layer_height",
		"machine_width",
		"material_diameter",
		"material_print_temperature",
	}, m.Extruders[0].Keys())
}

func TestMachine_ExtrudersOrderedByPosition(t *testing.T) {
	m := newTestMachine(t)
	require.Len(t, m.Extruders, 2)
	assert.Equal(t, "left", m.Extruders[0].ID)
	assert.Equal(t, "right", m.Extruders[1].ID)
	assert.Equal(t, "extruder_train", m.Extruders[0].Metadata()["type"])
	assert.Equal(t, "0", m.Extruders[0].Metadata()["position"])
}

func TestMachine_AddExtruderRejectsDuplicates(t *testing.T) {
	m := newTestMachine(t)
	err := m.AddExtruder(NewExtruderStack("dup", 0, nil, m.Global))
	assert.ErrorContains(t, err, "duplicate extruder position 0")

	err = m.AddExtruder(NewGlobalStack("g2", nil))
	assert.Error(t, err)
}

func TestContainer_CopiesInput(t *testing.T) {
	values := map[string]any{"a": 1}
	meta := map[string]any{"type": "user"}
	c := NewContainer("c", "C", meta, values)
	values["a"] = 2
	meta["type"] = "quality"

	v, _ := c.Value("a")
	assert.Equal(t, 1, v)
	assert.Equal(t, "user", c.Type())

	got := c.Metadata()
	got["type"] = "changed"
	assert.Equal(t, "user", c.Type())
}

func TestStack_SetContainerNilResets(t *testing.T) {
	s := NewGlobalStack("g", nil)
	require.NoError(t, s.SetContainer(RoleUser, NewContainer("u", "U", nil, map[string]any{"x": 1})))
	require.NoError(t, s.SetContainer(RoleUser, nil))
	assert.Equal(t, "empty_user", s.Container(RoleUser).ID)
	assert.Error(t, s.SetContainer(Role(42), nil))
	assert.Nil(t, s.Container(Role(-1)))
}
