package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"settingsexporter/internal/stack"
)

// ErrMachineNotFound is returned when the requested machine directory has no manifest.
var ErrMachineNotFound = errors.New("machine not found")

// ManifestFileName is the file that marks a directory as a machine.
const ManifestFileName = "machine.yaml"

// manifest describes one machine: its global stack and extruder stacks. Container
// paths are relative to the manifest directory and keyed by role name.
type manifest struct {
	ID         string             `yaml:"id"`
	Name       string             `yaml:"name"`
	Metadata   map[string]any     `yaml:"metadata"`
	Containers map[string]string  `yaml:"containers"`
	Extruders  []extruderManifest `yaml:"extruders"`
}

type extruderManifest struct {
	ID         string            `yaml:"id"`
	Position   int               `yaml:"position"`
	Metadata   map[string]any    `yaml:"metadata"`
	Containers map[string]string `yaml:"containers"`
}

// MachineStore reads machines from a directory tree:
//
//	<dir>/<machine>/machine.yaml
//	<dir>/<machine>/<container files>
type MachineStore struct {
	dir    string
	active string
}

// NewMachineStore returns a store rooted at dir. active names the machine
// returned by Active; empty means the only machine present.
func NewMachineStore(dir, active string) *MachineStore {
	return &MachineStore{dir: dir, active: active}
}

// Dir returns the root directory of the store.
func (s *MachineStore) Dir() string { return s.dir }

// List returns the names of all machines in the store, sorted.
func (s *MachineStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read machines directory %s: %w", s.dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(s.dir, e.Name(), ManifestFileName)); err == nil {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Active loads the configured machine, or the only machine if none is configured.
func (s *MachineStore) Active(ctx context.Context) (*stack.Machine, error) {
	name := s.active
	if name == "" {
		names, err := s.List()
		if err != nil {
			return nil, err
		}
		switch len(names) {
		case 0:
			return nil, fmt.Errorf("%w: no machines in %s", ErrMachineNotFound, s.dir)
		case 1:
			name = names[0]
		default:
			return nil, fmt.Errorf("%d machines in %s, set store.activeMachine to one of: %s", len(names), s.dir, strings.Join(names, ", "))
		}
	}
	return s.Load(ctx, name)
}

// Load reads the machine called name.
func (s *MachineStore) Load(ctx context.Context, name string) (*stack.Machine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	machineDir := filepath.Join(s.dir, name)
	data, err := os.ReadFile(filepath.Join(machineDir, ManifestFileName))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMachineNotFound, name)
	}
	if err != nil {
		return nil, err
	}

	var mf manifest
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("machine %s: invalid manifest: %w", name, err)
	}
	if mf.ID == "" {
		mf.ID = name
	}

	metadata := cloneMetadata(mf.Metadata)
	if mf.Name != "" {
		metadata["name"] = mf.Name
	}
	global := stack.NewGlobalStack(mf.ID, metadata)
	if err := loadContainers(machineDir, global, mf.Containers); err != nil {
		return nil, fmt.Errorf("machine %s: %w", name, err)
	}

	machine := stack.NewMachine(global)
	for i, em := range mf.Extruders {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id := em.ID
		if id == "" {
			id = fmt.Sprintf("%s_extruder_%d", mf.ID, em.Position)
		}
		ext := stack.NewExtruderStack(id, em.Position, cloneMetadata(em.Metadata), global)
		if err := loadContainers(machineDir, ext, em.Containers); err != nil {
			return nil, fmt.Errorf("machine %s: extruder %d: %w", name, i, err)
		}
		if err := machine.AddExtruder(ext); err != nil {
			return nil, fmt.Errorf("machine %s: %w", name, err)
		}
	}
	return machine, nil
}

func loadContainers(dir string, s *stack.Stack, files map[string]string) error {
	// Sorted so the first reported error is stable.
	roles := make([]string, 0, len(files))
	for r := range files {
		roles = append(roles, r)
	}
	sort.Strings(roles)

	for _, roleName := range roles {
		role, err := stack.ParseRole(roleName)
		if err != nil {
			return err
		}
		path := files[roleName]
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		c, err := LoadContainer(path)
		if err != nil {
			return err
		}
		if _, ok := c.MetadataEntry("type"); !ok {
			md := c.Metadata()
			md["type"] = role.String()
			c = stack.NewContainer(c.ID, c.Name, md, valuesOf(c))
		}
		if err := s.SetContainer(role, c); err != nil {
			return err
		}
	}
	return nil
}

func valuesOf(c *stack.Container) map[string]any {
	values := make(map[string]any, c.Len())
	for _, k := range c.Keys() {
		values[k], _ = c.Value(k)
	}
	return values
}

func cloneMetadata(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
