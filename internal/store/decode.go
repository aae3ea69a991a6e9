package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"

	"settingsexporter/internal/stack"
)

// containerFile is the on-disk shape shared by the YAML and TOML formats.
type containerFile struct {
	ID       string         `yaml:"id" toml:"id"`
	Name     string         `yaml:"name" toml:"name"`
	Metadata map[string]any `yaml:"metadata" toml:"metadata"`
	Values   map[string]any `yaml:"values" toml:"values"`
}

var containerSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "id"},
		{Name: "name"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "metadata"},
		{Type: "values"},
	},
}

// LoadContainer reads a container file. The format is chosen by extension:
// .yaml/.yml, .toml or .hcl. HCL values are kept as cty.Value.
func LoadContainer(path string) (*stack.Container, error) {
	var (
		cf  containerFile
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		cf, err = decodeYAML(path)
	case ".toml":
		cf, err = decodeTOML(path)
	case ".hcl":
		cf, err = decodeHCL(path)
	default:
		return nil, fmt.Errorf("container %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("container %s: %w", path, err)
	}

	if cf.ID == "" {
		base := filepath.Base(path)
		cf.ID = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if cf.Name == "" {
		cf.Name = cf.ID
	}
	return stack.NewContainer(cf.ID, cf.Name, cf.Metadata, cf.Values), nil
}

func decodeYAML(path string) (containerFile, error) {
	var cf containerFile
	data, err := os.ReadFile(path)
	if err != nil {
		return containerFile{}, err
	}
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return containerFile{}, err
	}
	return cf, nil
}

func decodeTOML(path string) (containerFile, error) {
	var cf containerFile
	md, err := toml.DecodeFile(path, &cf)
	if err != nil {
		return containerFile{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return containerFile{}, fmt.Errorf("unknown keys: %v", undecoded)
	}
	return cf, nil
}

func decodeHCL(path string) (containerFile, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return containerFile{}, diags
	}

	content, diags := file.Body.Content(containerSchema)
	if diags.HasErrors() {
		return containerFile{}, diags
	}

	var cf containerFile
	for name, attr := range content.Attributes {
		v, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return containerFile{}, diags
		}
		if v.IsNull() || !v.IsKnown() || v.Type() != cty.String {
			return containerFile{}, fmt.Errorf("%s: attribute %q must be a string", attr.Range, name)
		}
		switch name {
		case "id":
			cf.ID = v.AsString()
		case "name":
			cf.Name = v.AsString()
		}
	}

	for _, block := range content.Blocks {
		attrs, diags := block.Body.JustAttributes()
		if diags.HasErrors() {
			return containerFile{}, diags
		}
		m := make(map[string]any, len(attrs))
		for name, attr := range attrs {
			v, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return containerFile{}, diags
			}
			m[name] = v
		}

		switch block.Type {
		case "metadata":
			if cf.Metadata != nil {
				return containerFile{}, fmt.Errorf("%s: duplicate metadata block", block.DefRange)
			}
			cf.Metadata = m
		case "values":
			if cf.Values != nil {
				return containerFile{}, fmt.Errorf("%s: duplicate values block", block.DefRange)
			}
			cf.Values = m
		}
	}
	return cf, nil
}
