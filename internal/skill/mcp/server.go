package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/hb-chen/safeskill/pkg/logger"
)

// Server represents an MCP server
type Server struct {
	name         string
	version      string
	capabilities ServerCapabilities
	handlers     map[string]HandlerFunc
	mu           sync.RWMutex
}

// HandlerFunc represents a handler function for MCP methods
type HandlerFunc func(ctx context.Context, params json.RawMessage) (interface{}, error)

// NewServer creates a new MCP server
func NewServer(name, version string) *Server {
	s := &Server{
		name:         name,
		version:      version,
		capabilities: ServerCapabilities{},
		handlers:     make(map[string]HandlerFunc),
	}
	s.handlers[MethodPing] = func(context.Context, json.RawMessage) (interface{}, error) {
		return struct{}{}, nil
	}
	return s
}

// SetCapabilities sets server capabilities
func (s *Server) SetCapabilities(caps ServerCapabilities) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.capabilities = caps
}

// RegisterHandler registers a handler for an MCP method
func (s *Server) RegisterHandler(method string, handler HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[method] = handler
}

// HandleRequest handles a JSON-RPC request. Notifications yield a nil response.
func (s *Server) HandleRequest(ctx context.Context, req *JSONRPCRequest) (*JSONRPCResponse, error) {
	if req.IsNotification() {
		logger.Debugf("[MCP] Notification received: %s", req.Method)
		return nil, nil
	}

	if req.Method == MethodInitialize {
		return s.handleInitialize(req)
	}

	s.mu.RLock()
	handler, exists := s.handlers[req.Method]
	s.mu.RUnlock()

	if !exists {
		return NewJSONRPCResponse(req.ID, nil, NewJSONRPCError(
			ErrCodeMethodNotFound,
			fmt.Sprintf("Method not found: %s", req.Method),
			nil,
		))
	}

	result, err := handler(ctx, req.Params)
	if err != nil {
		code := ErrCodeInternalError
		var rpcErr *JSONRPCError
		if errors.As(err, &rpcErr) {
			code = rpcErr.Code
		}
		return NewJSONRPCResponse(req.ID, nil, NewJSONRPCError(code, err.Error(), nil))
	}

	return NewJSONRPCResponse(req.ID, result, nil)
}

// handleInitialize handles the initialize method
func (s *Server) handleInitialize(req *JSONRPCRequest) (*JSONRPCResponse, error) {
	var params InitializeParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return NewJSONRPCResponse(req.ID, nil, NewJSONRPCError(
			ErrCodeInvalidParams,
			"Invalid initialize parameters",
			nil,
		))
	}
	logger.Infof("[MCP] Client connected: %s %s (protocol %s)",
		params.ClientInfo.Name, params.ClientInfo.Version, params.ProtocolVersion)

	s.mu.RLock()
	caps := s.capabilities
	s.mu.RUnlock()

	return NewJSONRPCResponse(req.ID, InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities:    caps,
		ServerInfo: ServerInfo{
			Name:    s.name,
			Version: s.version,
		},
	}, nil)
}

// Serve reads newline-delimited requests from reader and writes responses
// to writer until EOF or ctx is done
func (s *Server) Serve(ctx context.Context, reader io.Reader, writer io.Writer) error {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	encoder := json.NewEncoder(writer)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var resp *JSONRPCResponse
		var req JSONRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			resp, _ = NewJSONRPCResponse(nil, nil, NewJSONRPCError(ErrCodeParseError, "Parse error", nil))
		} else {
			var err error
			resp, err = s.HandleRequest(ctx, &req)
			if err != nil {
				resp, _ = NewJSONRPCResponse(req.ID, nil, NewJSONRPCError(ErrCodeInternalError, err.Error(), nil))
			}
		}

		if resp == nil {
			continue
		}
		if err := encoder.Encode(resp); err != nil {
			return fmt.Errorf("failed to encode response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read request: %w", err)
	}
	return nil
}
