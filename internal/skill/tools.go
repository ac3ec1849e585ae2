package skill

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/tools"
)

// ConvertSkillToTool converts a Skill to a langchaingo Tool executed through the router
func ConvertSkillToTool(s *Skill, router *Router) tools.Tool {
	return &skillTool{
		skill:  s,
		router: router,
	}
}

// skillTool implements the tools.Tool interface
type skillTool struct {
	skill  *Skill
	router *Router
}

// Name returns the tool name
func (t *skillTool) Name() string {
	return t.skill.Name
}

// Description returns the tool description
func (t *skillTool) Description() string {
	if t.skill.Description == "" {
		return fmt.Sprintf("%s (version %s)", t.skill.Name, t.skill.Version)
	}
	return t.skill.Description
}

// Call executes the skill and returns its result as JSON. JSON input is
// decoded before it reaches the skill, blank input is absent, and anything
// else is passed as a string.
func (t *skillTool) Call(ctx context.Context, input string) (string, error) {
	var value any
	if strings.TrimSpace(input) != "" {
		value = input
		if decoded, err := DecodeInput([]byte(input)); err == nil {
			value = decoded
		}
	}

	inv, err := t.router.Execute(ctx, t.skill.Name, value)
	if err != nil {
		return "", fmt.Errorf("skill execution failed: %w", err)
	}

	out, err := json.Marshal(inv.Result)
	if err != nil {
		return "", fmt.Errorf("failed to encode skill result: %w", err)
	}
	return string(out), nil
}

// GetTools converts all skills in the registry to tools
func (r *Router) GetTools() []tools.Tool {
	skills := r.registry.List()
	result := make([]tools.Tool, 0, len(skills))

	for _, s := range skills {
		if !r.IsEnabled(s.Name) {
			continue
		}
		result = append(result, ConvertSkillToTool(s, r))
	}

	return result
}
