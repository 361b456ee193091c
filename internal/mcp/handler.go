package mcp

import (
	"encoding/json"
	"fmt"

	cgerrors "cgraph/internal/errors"
)

// handleMessage processes an incoming message and returns a response, or nil
// for notifications.
func (s *Server) handleMessage(msg *Message) *Message {
	if msg.IsRequest() {
		return s.handleRequest(msg)
	}
	if msg.IsNotification() {
		s.handleNotification(msg)
		return nil
	}
	return NewErrorMessage(msg.Id, InvalidRequest, "invalid message: not a request or notification", nil)
}

func (s *Server) handleRequest(msg *Message) *Message {
	s.logger.Debug("handling request", map[string]interface{}{
		"method": msg.Method,
		"id":     msg.Id,
	})

	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "tools/list":
		return s.handleListTools(msg)
	case "tools/call":
		return s.handleCallTool(msg)
	default:
		return NewErrorMessage(msg.Id, MethodNotFound, fmt.Sprintf("method not found: %s", msg.Method), nil)
	}
}

func (s *Server) handleNotification(msg *Message) {
	switch msg.Method {
	case "notifications/initialized":
		s.logger.Info("client initialized", nil)
	default:
		s.logger.Debug("unknown notification", map[string]interface{}{
			"method": msg.Method,
		})
	}
}

func (s *Server) handleInitialize(msg *Message) *Message {
	return NewResultMessage(msg.Id, map[string]interface{}{
		"protocolVersion": "2024-11-05",
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    "cgraph",
			"version": s.version,
		},
	})
}

func (s *Server) handleListTools(msg *Message) *Message {
	return NewResultMessage(msg.Id, map[string]interface{}{
		"tools": s.toolDefinitions(),
	})
}

// callToolParams is the expected shape of tools/call params.
type callToolParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

func (s *Server) handleCallTool(msg *Message) *Message {
	raw, err := json.Marshal(msg.Params)
	if err != nil {
		return NewErrorMessage(msg.Id, InvalidParams, "invalid tool call params", nil)
	}
	var params callToolParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return NewErrorMessage(msg.Id, InvalidParams, "invalid tool call params", nil)
	}

	handler, ok := s.tools[params.Name]
	if !ok {
		return NewErrorMessage(msg.Id, MethodNotFound, fmt.Sprintf("unknown tool: %s", params.Name), nil)
	}

	result, err := handler(params.Arguments)
	if err != nil {
		// Analysis errors carry structured details worth forwarding.
		if ae, ok := err.(*cgerrors.AnalysisError); ok {
			return NewErrorMessage(msg.Id, InternalError, ae.Message, ae)
		}
		return NewErrorMessage(msg.Id, InternalError, err.Error(), nil)
	}

	return NewResultMessage(msg.Id, result)
}
