package skill

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/tools"
	"gopkg.in/yaml.v3"

	"github.com/hb-chen/safeskill/internal/skill/mcp"
)

const resourceScheme = "skill://"

// MCPAdapter adapts skills to MCP tools and resources
type MCPAdapter struct {
	registry *Registry
}

// NewMCPAdapter creates a new MCP adapter
func NewMCPAdapter(registry *Registry) *MCPAdapter {
	return &MCPAdapter{
		registry: registry,
	}
}

// ToolToMCP describes a skill tool as an MCP tool
func (a *MCPAdapter) ToolToMCP(t tools.Tool) mcp.Tool {
	return mcp.Tool{
		Name:        t.Name(),
		Description: t.Description(),
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				// no "type": any JSON value is accepted
				"input": map[string]interface{}{
					"description": "Value passed to the skill; rendered as text in the result message",
				},
			},
		},
	}
}

// ToolCallInput re-encodes the "input" argument of a tool call as the JSON
// text a skill tool accepts. A missing argument yields "", an absent input;
// an explicit null yields "null".
func (a *MCPAdapter) ToolCallInput(call mcp.ToolCallParams) (string, error) {
	v, ok := call.Arguments["input"]
	if !ok {
		return "", nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode input argument: %w", err)
	}
	return string(data), nil
}

// ToolResult converts a skill tool's output, or the error that ended the
// call, to an MCP tool call result
func (a *MCPAdapter) ToolResult(out string, callErr error) *mcp.ToolCallResult {
	if callErr != nil {
		return &mcp.ToolCallResult{
			Content: []mcp.Content{{
				Type: "text",
				Text: fmt.Sprintf("Error: %s", callErr.Error()),
			}},
			IsError: true,
		}
	}
	return &mcp.ToolCallResult{
		Content: []mcp.Content{{
			Type: "text",
			Text: out,
		}},
	}
}

// SkillToResource converts a skill to an MCP resource describing it
func SkillToResource(s *Skill) mcp.Resource {
	return mcp.Resource{
		URI:         resourceScheme + s.Name,
		Name:        s.Name,
		Description: s.Description,
		MimeType:    "application/yaml",
	}
}

// SkillsToResources converts multiple skills to MCP resources
func SkillsToResources(skills []*Skill) []mcp.Resource {
	resources := make([]mcp.Resource, 0, len(skills))
	for _, s := range skills {
		resources = append(resources, SkillToResource(s))
	}
	return resources
}

// ReadResource renders the descriptor behind a skill:// URI as YAML
func (a *MCPAdapter) ReadResource(uri string) (*mcp.ResourceReadResult, error) {
	name, ok := strings.CutPrefix(uri, resourceScheme)
	if !ok || name == "" {
		return nil, mcp.NewJSONRPCError(mcp.ErrCodeInvalidParams, fmt.Sprintf("invalid skill URI: %s", uri), nil)
	}

	s, err := a.registry.Get(strings.TrimSuffix(name, "/"))
	if err != nil {
		return nil, err
	}

	data, err := yaml.Marshal(s.Describe())
	if err != nil {
		return nil, fmt.Errorf("failed to render descriptor: %w", err)
	}

	return &mcp.ResourceReadResult{
		Contents: []mcp.Content{{
			Type:     "text",
			URI:      uri,
			MimeType: "application/yaml",
			Text:     string(data),
		}},
	}, nil
}
