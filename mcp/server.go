package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/prflow/prflow/logger"
	"github.com/prflow/prflow/workflow"
)

const (
	ProtocolVersion = "2024-11-05"
	ServerName      = "prflow"
	ServerVersion   = "1.0.0"
)

// ToolHandler executes one tool invocation against a validated-at-boundary
// arguments map and returns the workflow result to serialize.
type ToolHandler func(ctx context.Context, args map[string]any) workflow.Result

// Tool pairs a tool definition with its handler.
type Tool struct {
	Definition ToolDefinition
	Handle     ToolHandler
}

// Server implements an MCP server exposing the Git workflow tools over
// newline-delimited JSON-RPC 2.0.
type Server struct {
	reader *bufio.Reader
	writer io.Writer
	tools  []Tool
	byName map[string]Tool
	mu     sync.Mutex
	log    *slog.Logger
}

// NewServer creates a new MCP server bound to the given streams and
// workflow service.
func NewServer(r io.Reader, w io.Writer, svc *workflow.Service) *Server {
	s := &Server{
		reader: bufio.NewReader(r),
		writer: w,
		tools:  defineTools(svc),
		byName: make(map[string]Tool),
		log:    logger.WithComponent("mcp"),
	}
	for _, tool := range s.tools {
		s.byName[tool.Definition.Name] = tool
	}
	return s
}

// Run starts the MCP server loop. It returns nil on EOF.
func (s *Server) Run() error {
	s.log.Info("server starting")

	for {
		line, err := s.reader.ReadString('\n')
		if err == io.EOF {
			s.log.Info("EOF received, shutting down")
			return nil
		}
		if err != nil {
			s.log.Error("read error", "error", err)
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		s.log.Debug("received message", "line", line)

		var req JSONRPCRequest
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			s.log.Error("JSON parse error", "error", err)
			s.sendError(nil, -32700, "Parse error", nil)
			continue
		}

		s.handleRequest(&req)
	}
}

func (s *Server) handleRequest(req *JSONRPCRequest) {
	switch req.Method {
	case "initialize":
		s.handleInitialize(req)
	case "initialized":
		// Notification, no response needed
		s.log.Debug("initialized notification received")
	case "tools/list":
		s.handleToolsList(req)
	case "tools/call":
		s.handleToolsCall(req)
	default:
		s.log.Warn("unknown method", "method", req.Method)
		s.sendError(req.ID, -32601, "Method not found", nil)
	}
}

func (s *Server) handleInitialize(req *JSONRPCRequest) {
	result := InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities: Capability{
			Tools: &ToolCapability{},
		},
		ServerInfo: ServerInfo{
			Name:    ServerName,
			Version: ServerVersion,
		},
		Instructions: "This server automates Git/GitHub contribution workflows: commit and push, pull request creation, and merging.",
	}

	s.sendResult(req.ID, result)
}

func (s *Server) handleToolsList(req *JSONRPCRequest) {
	defs := make([]ToolDefinition, 0, len(s.tools))
	for _, tool := range s.tools {
		defs = append(defs, tool.Definition)
	}
	s.sendResult(req.ID, ToolsListResult{Tools: defs})
}

func (s *Server) handleToolsCall(req *JSONRPCRequest) {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.log.Error("failed to parse tool call params", "error", err)
		s.sendError(req.ID, -32602, "Invalid params", nil)
		return
	}

	tool, ok := s.byName[params.Name]
	if !ok {
		s.log.Warn("unknown tool", "tool", params.Name)
		s.sendError(req.ID, -32602, "Unknown tool", nil)
		return
	}

	runID := uuid.NewString()
	log := logger.WithRun(runID).With("tool", params.Name)
	log.Info("tool call started")

	// Catch-all: nothing a handler does may crash the server. Failures that
	// escape the workflow layer become error-flagged responses.
	defer func() {
		if r := recover(); r != nil {
			log.Error("tool handler panicked", "panic", r)
			s.sendWorkflowResult(req.ID, workflow.Fail("%v", r), true)
		}
	}()

	result := tool.Handle(context.Background(), params.Arguments)
	log.Info("tool call finished", "success", result.Success)
	s.sendWorkflowResult(req.ID, result, false)
}

// sendWorkflowResult serializes a workflow result as the tool response
// payload. isError marks dispatcher-level failures; leaf and composite
// failures travel as ordinary payloads with success=false.
func (s *Server) sendWorkflowResult(id any, result workflow.Result, isError bool) {
	payload, err := json.Marshal(result)
	if err != nil {
		s.log.Error("failed to marshal workflow result", "error", err)
		s.sendError(id, -32603, "Internal error", nil)
		return
	}
	s.sendToolResult(id, isError, string(payload))
}

func (s *Server) sendToolResult(id any, isError bool, text string) {
	toolResult := ToolCallResult{
		Content: []ContentItem{
			{
				Type: "text",
				Text: text,
			},
		},
		IsError: isError,
	}

	s.sendResult(id, toolResult)
}

func (s *Server) sendResult(id any, result any) {
	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}

	s.send(resp)
}

func (s *Server) sendError(id any, code int, message string, data any) {
	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &RPCError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}

	s.send(resp)
}

func (s *Server) send(resp JSONRPCResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.log.Error("failed to marshal response", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = fmt.Fprintf(s.writer, "%s\n", data)
	if err != nil {
		s.log.Error("failed to write response", "error", err)
	} else {
		s.log.Debug("sent response", "data", string(data))
	}
}
