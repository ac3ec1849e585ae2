// Package builtin registers the skills compiled into this binary.
package builtin

import (
	"fmt"

	"github.com/hb-chen/safeskill/internal/skill"
	"github.com/hb-chen/safeskill/internal/skill/safe"
)

// Skills returns the descriptors of all built-in skills
func Skills() []skill.Skill {
	return []skill.Skill{
		safe.Descriptor(),
	}
}

// NewRegistry returns a registry holding every built-in skill
func NewRegistry() (*skill.Registry, error) {
	registry := skill.NewRegistry()
	for _, s := range Skills() {
		if err := registry.Register(s); err != nil {
			return nil, fmt.Errorf("failed to register skill %s: %w", s.Name, err)
		}
	}
	return registry, nil
}
