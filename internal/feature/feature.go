// Package feature loads gateway feature flags from a YAML file.
package feature

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Known flags.
const (
	// TournamentExpansion lets tournament rows open speaker results.
	TournamentExpansion = "tournament_expansion"
	// JudgeNavigation makes judge record rows link to team pages.
	JudgeNavigation = "judge_navigation"
)

// Flag is one named toggle.
type Flag struct {
	Name        string `yaml:"-" json:"name"`
	Enabled     bool   `yaml:"enabled" json:"enabled"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Set is the loaded flag collection. The zero Set has every flag disabled.
type Set struct {
	Flags map[string]Flag `yaml:"flags"`
}

// Load reads flags from path. A missing file yields an empty Set.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Set{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read feature file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML feature document.
func Parse(data []byte) (*Set, error) {
	var s Set
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid feature file: %w", err)
	}
	for name, f := range s.Flags {
		f.Name = name
		s.Flags[name] = f
	}
	return &s, nil
}

// Enabled reports whether the named flag is on.
func (s *Set) Enabled(name string) bool {
	if s == nil {
		return false
	}
	return s.Flags[name].Enabled
}

// List returns the flags sorted by name.
func (s *Set) List() []Flag {
	if s == nil {
		return []Flag{}
	}
	out := make([]Flag, 0, len(s.Flags))
	for _, f := range s.Flags {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
