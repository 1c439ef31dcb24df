// Package def loads declarative machine definitions from YAML or JSON
// and applies them to a string-keyed fsm.Machine.
package def

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/machinic/fsm"
)

// Definition is a declarative machine description: the state set, the
// initial state, and the transition table. Behaviors stay in code; the
// definition only carries structure.
type Definition struct {
	Name        string          `json:"name,omitempty" yaml:"name,omitempty"`
	Initial     string          `json:"initial" yaml:"initial"`
	States      []string        `json:"states" yaml:"states"`
	Transitions []TransitionDef `json:"transitions" yaml:"transitions"`
}

// TransitionDef is one transition row.
type TransitionDef struct {
	From string `json:"from" yaml:"from"`
	On   string `json:"on" yaml:"on"`
	To   string `json:"to" yaml:"to"`
}

// ParseYAML decodes a YAML definition and validates it.
func ParseYAML(data []byte) (Definition, error) {
	var d Definition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Definition{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Definition{}, err
	}
	return d, nil
}

// ParseJSON decodes a JSON definition and validates it.
func ParseJSON(data []byte) (Definition, error) {
	var d Definition
	if err := json.Unmarshal(data, &d); err != nil {
		return Definition{}, fmt.Errorf("json unmarshal: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Definition{}, err
	}
	return d, nil
}

// LoadFile reads a definition from path, choosing the decoder by file
// extension (.json, .yaml or .yml).
func LoadFile(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Definition{}, fmt.Errorf("def: unsupported definition format %q", filepath.Ext(path))
	}
}

// Validate checks internal consistency: a non-empty registered initial
// state, unique state names, and transitions referencing known states.
func (d Definition) Validate() error {
	if len(d.States) == 0 {
		return fmt.Errorf("def: definition has no states")
	}
	known := make(map[string]bool, len(d.States))
	for _, s := range d.States {
		if s == "" {
			return fmt.Errorf("def: empty state name")
		}
		if known[s] {
			return fmt.Errorf("def: duplicate state %q", s)
		}
		known[s] = true
	}
	if d.Initial == "" {
		return fmt.Errorf("def: no initial state")
	}
	if !known[d.Initial] {
		return fmt.Errorf("def: initial state %q is not in the state list", d.Initial)
	}
	for _, t := range d.Transitions {
		if t.On == "" {
			return fmt.Errorf("def: transition %q -> %q has no trigger", t.From, t.To)
		}
		if !known[t.From] {
			return fmt.Errorf("def: transition source %q is not in the state list", t.From)
		}
		if !known[t.To] {
			return fmt.Errorf("def: transition target %q is not in the state list", t.To)
		}
	}
	return nil
}

// Apply configures m from the definition. Behaviors are taken from the
// behaviors map by state name; states without a supplied behavior get an
// inert fsm.FuncState, which suits pure-routing machines.
func (d Definition) Apply(m *fsm.Machine[string, string], behaviors map[string]fsm.State) error {
	if err := d.Validate(); err != nil {
		return err
	}
	for _, s := range d.States {
		behavior := behaviors[s]
		if behavior == nil {
			behavior = fsm.NewFuncState()
		}
		if err := m.AddState(s, behavior); err != nil {
			return fmt.Errorf("def: add state %q: %w", s, err)
		}
	}
	for _, t := range d.Transitions {
		if err := m.AddTransition(t.From, t.On, t.To); err != nil {
			return fmt.Errorf("def: add transition %q --%s--> %q: %w", t.From, t.On, t.To, err)
		}
	}
	if err := m.SetInitialState(d.Initial); err != nil {
		return fmt.Errorf("def: set initial state %q: %w", d.Initial, err)
	}
	return nil
}

// Build creates a new machine configured from the definition.
func (d Definition) Build(behaviors map[string]fsm.State) (*fsm.Machine[string, string], error) {
	m := fsm.New[string, string]()
	if err := d.Apply(m, behaviors); err != nil {
		return nil, err
	}
	return m, nil
}
