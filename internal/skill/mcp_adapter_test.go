package skill

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/hb-chen/safeskill/internal/skill/mcp"
)

func TestMCPAdapterTools(t *testing.T) {
	registry := newTestRegistry(echoSkill("echo"))
	adapter := NewMCPAdapter(registry)
	router := NewRouter(registry, nil)

	skillTools := router.GetTools()
	require.Len(t, skillTools, 1)
	tool := adapter.ToolToMCP(skillTools[0])
	assert.Equal(t, "echo", tool.Name)
	assert.Equal(t, "echoes its input", tool.Description)

	call := mcp.ToolCallParams{Name: "echo", Arguments: map[string]interface{}{"input": "hi"}}
	assert.NoError(t, mcp.ValidateToolCall(tool, call))
}

func TestMCPAdapterToolCallInput(t *testing.T) {
	adapter := NewMCPAdapter(NewRegistry())

	tests := []struct {
		name   string
		params string
		want   string
	}{
		{name: "missing", params: `{"name":"echo"}`, want: ""},
		{name: "null", params: `{"name":"echo","arguments":{"input":null}}`, want: "null"},
		{name: "string", params: `{"name":"echo","arguments":{"input":"hi"}}`, want: `"hi"`},
		{name: "large integer", params: `{"name":"echo","arguments":{"input":12345678901234567890}}`, want: "12345678901234567890"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var call mcp.ToolCallParams
			require.NoError(t, json.Unmarshal([]byte(tt.params), &call))

			got, err := adapter.ToolCallInput(call)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMCPAdapterToolResult(t *testing.T) {
	registry := newTestRegistry(echoSkill("echo"))
	adapter := NewMCPAdapter(registry)
	tool := NewRouter(registry, nil).GetTools()[0]

	out, err := tool.Call(context.Background(), `"x"`)
	require.NoError(t, err)

	res := adapter.ToolResult(out, nil)
	assert.False(t, res.IsError)
	require.Len(t, res.Content, 1)

	var decoded Result
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].Text), &decoded))
	assert.Equal(t, "echo: x", decoded.Message)

	res = adapter.ToolResult("", errors.New("boom"))
	assert.True(t, res.IsError)
	assert.Equal(t, "Error: boom", res.Content[0].Text)
}

func TestMCPAdapterResources(t *testing.T) {
	registry := newTestRegistry(echoSkill("echo"))
	adapter := NewMCPAdapter(registry)

	resources := SkillsToResources(registry.List())
	require.Len(t, resources, 1)
	assert.Equal(t, "skill://echo", resources[0].URI)

	read, err := adapter.ReadResource("skill://echo")
	require.NoError(t, err)
	require.Len(t, read.Contents, 1)

	var d Descriptor
	require.NoError(t, yaml.Unmarshal([]byte(read.Contents[0].Text), &d))
	assert.Equal(t, Descriptor{Name: "echo", Version: "1.0.0", Description: "echoes its input"}, d)

	_, err = adapter.ReadResource("file:///etc/passwd")
	assert.Error(t, err)

	_, err = adapter.ReadResource("skill://missing")
	assert.ErrorIs(t, err, ErrSkillNotFound)
}
