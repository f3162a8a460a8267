package plan

import (
	"fmt"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hostsnap/hostsnap/pkg/errors"
)

// UnmarshalYAML decodes a plan from a YAML mapping of module name to
// collection plan. Mapping order is preserved; it becomes collection order.
func (p *Plan) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("plan must be a mapping of module name to collection plan")
	}

	modules := make(Plan, 0, len(node.Content)/2)
	for i := 0; i < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valNode := node.Content[i+1]

		var cp CollectionPlan
		if err := valNode.Decode(&cp); err != nil {
			return fmt.Errorf("module %q: %w", keyNode.Value, err)
		}
		modules = append(modules, Module{Name: keyNode.Value, Plan: cp})
	}

	*p = modules
	return nil
}

// MarshalYAML encodes the plan as a YAML mapping in module order.
func (p Plan) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, m := range p {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: m.Name}
		valNode := &yaml.Node{}
		if err := valNode.Encode(m.Plan); err != nil {
			return nil, fmt.Errorf("module %q: %w", m.Name, err)
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

// Load reads and validates a collection plan from a YAML file.
func Load(filePath string) (Plan, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPlan, "failed to read plan file", err)
	}

	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPlan, "failed to parse plan file", err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the plan for structural problems: empty or duplicate
// module names, missing commands, and dirnames that would escape the
// snapshot tree.
func (p Plan) Validate() error {
	if len(p) == 0 {
		return errors.New(errors.ErrCodeInvalidPlan, "plan contains no modules")
	}

	seen := make(map[string]bool, len(p))
	for _, m := range p {
		if strings.TrimSpace(m.Name) == "" {
			return errors.New(errors.ErrCodeInvalidPlan, "module name cannot be empty")
		}
		if seen[m.Name] {
			return errors.New(errors.ErrCodeInvalidPlan,
				fmt.Sprintf("duplicate module name: %q", m.Name))
		}
		seen[m.Name] = true

		if err := m.Plan.validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPlan,
				fmt.Sprintf("module %q", m.Name), err)
		}
	}
	return nil
}

func (cp CollectionPlan) validate() error {
	for _, c := range cp.Commands {
		if c.Command == "" {
			return fmt.Errorf("command capture with empty command")
		}
		if err := checkDirname(c.Dirname); err != nil {
			return err
		}
	}
	for _, f := range cp.InlineFiles {
		if f.Command == "" {
			return fmt.Errorf("inline file capture with empty command")
		}
		if f.Filename == "" {
			return fmt.Errorf("inline file capture with empty filename")
		}
		if err := checkDirname(f.Dirname); err != nil {
			return err
		}
	}
	if cp.MSRs != nil {
		if cp.MSRs.Filename == "" {
			return fmt.Errorf("register batch with empty filename")
		}
		if err := checkDirname(cp.MSRs.Dirname); err != nil {
			return err
		}
	}
	return nil
}

func checkDirname(dirname string) error {
	if dirname == "" {
		return fmt.Errorf("capture with empty dirname")
	}
	if path.IsAbs(dirname) {
		return fmt.Errorf("dirname %q must be relative", dirname)
	}
	for _, part := range strings.Split(path.Clean(dirname), "/") {
		if part == ".." {
			return fmt.Errorf("dirname %q escapes the snapshot tree", dirname)
		}
	}
	return nil
}
