package skill

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SkillConfig represents configuration for a skill
type SkillConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// Config represents the skills configuration file
type Config struct {
	Skills map[string]SkillConfig `yaml:"skills"`
}

// LoadConfig loads skill configuration from a file
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := GetDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.Skills == nil {
		config.Skills = make(map[string]SkillConfig)
	}

	return config, nil
}

// GetSkillConfig gets configuration for a specific skill
func (c *Config) GetSkillConfig(skillName string) (SkillConfig, bool) {
	config, exists := c.Skills[skillName]
	return config, exists
}

// IsEnabled reports whether a skill may be executed. Skills without an
// entry, or without an explicit enabled flag, are enabled.
func (c *Config) IsEnabled(skillName string) bool {
	if c == nil {
		return true
	}
	config, exists := c.GetSkillConfig(skillName)
	if !exists || config.Enabled == nil {
		return true
	}
	return *config.Enabled
}

// GetDefaultConfig returns a default configuration
func GetDefaultConfig() *Config {
	return &Config{
		Skills: make(map[string]SkillConfig),
	}
}
