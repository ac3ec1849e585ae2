package cmd

import (
	"fmt"

	"github.com/hb-chen/safeskill/internal/config"
	"github.com/hb-chen/safeskill/internal/skill"
	"github.com/hb-chen/safeskill/internal/skill/builtin"
	"github.com/hb-chen/safeskill/internal/tracer"
)

// newRouter wires the built-in skills, the optional per-skill config and
// the execution tracer
func newRouter(cfg *config.Config) (*skill.Router, error) {
	registry, err := builtin.NewRegistry()
	if err != nil {
		return nil, err
	}

	skillsConfig := skill.GetDefaultConfig()
	if cfg.Skills.Config != "" {
		skillsConfig, err = skill.LoadConfig(cfg.Skills.Config)
		if err != nil {
			return nil, fmt.Errorf("failed to load skills config: %w", err)
		}
	}

	return skill.NewRouter(registry, skillsConfig,
		skill.WithTracer(tracer.New(cfg.Tracing.Enabled, cfg.Tracing.Level)),
		skill.WithTimeout(cfg.Skills.Timeout),
	), nil
}
