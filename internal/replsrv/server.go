// This file is part of secd - https://github.com/gitter-badger/seax
//
// Copyright 2024 The Seax Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package replsrv exposes the VM to a host agent process as an MCP tool
// server (§6.4), the way the teacher exposes the VM to Retro programs via
// custom port-I/O handlers in cmd/retro/main.go — except the transport
// here is MCP instead of VM port I/O, and every call is a single-shot
// secd.Run rather than a long-lived I/O channel.
package replsrv

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"

	secd "github.com/gitter-badger/seax"
	"github.com/gitter-badger/seax/internal/config"
	"github.com/gitter-badger/seax/vm"
)

const toolName = "scheme_eval"

// Server wraps an mcp-go server.MCPServer bound to a single evaluation
// tool. Each Server instance carries its own session id (§9.4), attached
// to every log line and error payload it emits.
type Server struct {
	mcp       *server.MCPServer
	sessionID uuid.UUID
	log       *config.Logger
	opts      []vm.Option
}

// New builds a Server configured from cfg's step-limit and debug flags.
func New(cfg *config.Config) *Server {
	s := &Server{
		mcp:       server.NewMCPServer("secd", "0.1.0"),
		sessionID: uuid.New(),
		log:       config.NewStderrLogger(cfg),
		opts:      cfg.Options(),
	}

	tool := mcp.NewTool(toolName,
		mcp.WithDescription("Evaluate one SECD Scheme source fragment and return its result cell"),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("A single top-level Scheme expression, e.g. \"(+ 1 2)\""),
		),
	)
	s.mcp.AddTool(tool, s.handleEval)

	return s
}

// Serve runs the server over stdio until the transport closes, matching
// mcp-go's ServeStdio convention used throughout the retrieved corpus's
// MCP examples.
func (s *Server) Serve() error {
	s.log.Infof("mcp server %s: starting scheme_eval tool on stdio", s.sessionID)
	return errors.Wrap(server.ServeStdio(s.mcp), "replsrv: serving stdio")
}

func (s *Server) handleEval(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, ok := request.Params.Arguments["source"].(string)
	if !ok || source == "" {
		return mcp.NewToolResultError(fmt.Sprintf("session %s: \"source\" argument is required", s.sessionID)), nil
	}

	s.log.Debugf("session %s: evaluating fragment %q", s.sessionID, source)
	result, err := secd.Run(source, s.opts...)
	if err != nil {
		s.log.Errorf(errors.Wrapf(err, "session %s", s.sessionID))
		return mcp.NewToolResultError(fmt.Sprintf("session %s: %v", s.sessionID, err)), nil
	}

	return mcp.NewToolResultText(result.String()), nil
}
