package servers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tmc/langchaingo/tools"

	"github.com/hb-chen/safeskill/internal/skill"
	"github.com/hb-chen/safeskill/internal/skill/mcp"
	"github.com/hb-chen/safeskill/pkg/logger"
)

// SkillServer exposes each enabled skill's tool as an MCP tool and every
// skill descriptor as an MCP resource
type SkillServer struct {
	server  *mcp.Server
	router  *skill.Router
	adapter *skill.MCPAdapter
}

// NewSkillServer creates a new MCP server over the router's skills
func NewSkillServer(name, version string, router *skill.Router) *SkillServer {
	server := mcp.NewServer(name, version)
	server.SetCapabilities(mcp.ServerCapabilities{
		Tools: &mcp.ToolsCapability{},
		Resources: &mcp.ResourcesCapability{
			Subscribe:   false,
			ListChanged: false,
		},
	})

	ss := &SkillServer{
		server:  server,
		router:  router,
		adapter: skill.NewMCPAdapter(router.GetRegistry()),
	}
	ss.registerHandlers()

	return ss
}

func (ss *SkillServer) registerHandlers() {
	ss.server.RegisterHandler(mcp.MethodToolsList, ss.handleToolsList)
	ss.server.RegisterHandler(mcp.MethodToolsCall, ss.handleToolsCall)
	ss.server.RegisterHandler(mcp.MethodResourcesList, ss.handleResourcesList)
	ss.server.RegisterHandler(mcp.MethodResourcesRead, ss.handleResourcesRead)
}

// handleToolsList advertises the tools of enabled skills only
func (ss *SkillServer) handleToolsList(ctx context.Context, params json.RawMessage) (interface{}, error) {
	skillTools := ss.router.GetTools()
	result := mcp.ToolsListResult{
		Tools: make([]mcp.Tool, 0, len(skillTools)),
	}
	for _, t := range skillTools {
		result.Tools = append(result.Tools, ss.adapter.ToolToMCP(t))
	}
	return result, nil
}

func (ss *SkillServer) handleToolsCall(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var callParams mcp.ToolCallParams
	if err := json.Unmarshal(params, &callParams); err != nil {
		return nil, mcp.NewJSONRPCError(mcp.ErrCodeInvalidParams, fmt.Sprintf("invalid tool call parameters: %v", err), nil)
	}

	tool, ok := ss.lookupTool(callParams.Name)
	if !ok {
		return nil, mcp.NewJSONRPCError(mcp.ErrCodeInvalidParams, fmt.Sprintf("unknown tool: %s", callParams.Name), nil)
	}
	if err := mcp.ValidateToolCall(ss.adapter.ToolToMCP(tool), callParams); err != nil {
		return nil, err
	}

	input, err := ss.adapter.ToolCallInput(callParams)
	if err != nil {
		return nil, mcp.NewJSONRPCError(mcp.ErrCodeInvalidParams, err.Error(), nil)
	}

	out, callErr := tool.Call(ctx, input)
	if callErr != nil {
		logger.Warnf("[MCP] Tool call failed: tool=%s, error=%v", callParams.Name, callErr)
	}

	// Execution failures are reported in the tool result, not as RPC errors
	return ss.adapter.ToolResult(out, callErr), nil
}

func (ss *SkillServer) lookupTool(name string) (tools.Tool, bool) {
	for _, t := range ss.router.GetTools() {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

func (ss *SkillServer) handleResourcesList(ctx context.Context, params json.RawMessage) (interface{}, error) {
	return mcp.ResourcesListResult{
		Resources: skill.SkillsToResources(ss.router.GetRegistry().List()),
	}, nil
}

func (ss *SkillServer) handleResourcesRead(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var readParams mcp.ResourceReadParams
	if err := json.Unmarshal(params, &readParams); err != nil {
		return nil, mcp.NewJSONRPCError(mcp.ErrCodeInvalidParams, fmt.Sprintf("invalid resource read parameters: %v", err), nil)
	}
	return ss.adapter.ReadResource(readParams.URI)
}

// GetServer returns the underlying MCP server
func (ss *SkillServer) GetServer() *mcp.Server {
	return ss.server
}
