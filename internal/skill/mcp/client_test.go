package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// Client represents an MCP client speaking newline-delimited JSON-RPC
type Client struct {
	decoder  *json.Decoder
	encoder  *json.Encoder
	writeMu  sync.Mutex
	requests map[string]chan *JSONRPCResponse
	mu       sync.Mutex
	nextID   int64
}

// NewClient creates a new MCP client. Start must be running for calls to
// receive responses.
func NewClient(reader io.Reader, writer io.Writer) *Client {
	return &Client{
		decoder:  json.NewDecoder(reader),
		encoder:  json.NewEncoder(writer),
		requests: make(map[string]chan *JSONRPCResponse),
		nextID:   1,
	}
}

// Initialize performs the initialize handshake
func (c *Client) Initialize(ctx context.Context, clientInfo ClientInfo) (*InitializeResult, error) {
	params := InitializeParams{
		ProtocolVersion: ProtocolVersion,
		Capabilities:    ClientCapabilities{},
		ClientInfo:      clientInfo,
	}

	var result InitializeResult
	if err := c.Call(ctx, MethodInitialize, params, &result); err != nil {
		return nil, fmt.Errorf("initialize failed: %w", err)
	}

	notif, err := NewJSONRPCRequest(nil, MethodInitialized, nil)
	if err != nil {
		return nil, err
	}
	if err := c.send(notif); err != nil {
		return nil, fmt.Errorf("failed to send initialized notification: %w", err)
	}

	return &result, nil
}

// Call makes a JSON-RPC call and waits for response
func (c *Client) Call(ctx context.Context, method string, params interface{}, result interface{}) error {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	key := idKey(id)
	respChan := make(chan *JSONRPCResponse, 1)
	c.requests[key] = respChan
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.requests, key)
		c.mu.Unlock()
	}()

	req, err := NewJSONRPCRequest(id, method, params)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if err := c.send(req); err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case resp := <-respChan:
		if resp.Error != nil {
			return resp.Error
		}
		if result != nil && resp.Result != nil {
			if err := json.Unmarshal(resp.Result, result); err != nil {
				return fmt.Errorf("failed to unmarshal result: %w", err)
			}
		}
		return nil
	}
}

func (c *Client) send(req *JSONRPCRequest) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.encoder.Encode(req)
}

// Start runs the response loop until the reader hits EOF or fails. Cancel
// by closing the underlying reader.
func (c *Client) Start() error {
	for {
		var resp JSONRPCResponse
		if err := c.decoder.Decode(&resp); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("failed to decode response: %w", err)
		}

		c.mu.Lock()
		respChan, exists := c.requests[idKey(resp.ID)]
		c.mu.Unlock()

		if exists {
			select {
			case respChan <- &resp:
			default:
			}
		}
	}
}

// ListTools lists available tools
func (c *Client) ListTools(ctx context.Context) (*ToolsListResult, error) {
	var result ToolsListResult
	if err := c.Call(ctx, MethodToolsList, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CallTool calls a tool
func (c *Client) CallTool(ctx context.Context, name string, arguments map[string]interface{}) (*ToolCallResult, error) {
	params := ToolCallParams{
		Name:      name,
		Arguments: arguments,
	}

	var result ToolCallResult
	if err := c.Call(ctx, MethodToolsCall, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListResources lists available resources
func (c *Client) ListResources(ctx context.Context) (*ResourcesListResult, error) {
	var result ResourcesListResult
	if err := c.Call(ctx, MethodResourcesList, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ReadResource reads a resource
func (c *Client) ReadResource(ctx context.Context, uri string) (*ResourceReadResult, error) {
	params := ResourceReadParams{
		URI: uri,
	}

	var result ResourceReadResult
	if err := c.Call(ctx, MethodResourcesRead, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
