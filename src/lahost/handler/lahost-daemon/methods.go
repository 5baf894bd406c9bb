package lahostdaemon

import (
	"context"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/polder-ide/lahost/src/lahost/mapper"
)

const _handlerName = "lahost"

// Initialize answers the front-end's handshake. The daemon advertises no
// language capabilities of its own; all analysis flows through the managed
// server.
func (r *jsonRPCRouter) Initialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	result := protocol.InitializeResult{
		ServerInfo: &protocol.ServerInfo{
			Name:    _handlerName,
			Version: r.version,
		},
	}
	return reply(ctx, result, nil)
}

// Initialized completes the front-end handshake.
func (r *jsonRPCRouter) Initialized(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	return reply(ctx, nil, nil)
}

// Shutdown acknowledges the front-end's shutdown request. The daemon and its
// managed server stay up for other editor sessions.
func (r *jsonRPCRouter) Shutdown(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	return reply(ctx, nil, nil)
}

// Exit ends the front-end session. The connection teardown is driven by the
// front-end closing its socket.
func (r *jsonRPCRouter) Exit(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	return reply(ctx, nil, nil)
}

// Start launches the analysis server.
func (r *jsonRPCRouter) Start(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	err := r.lifecycle.Start(ctx)
	return reply(ctx, nil, err)
}

// Stop tears the analysis server down.
func (r *jsonRPCRouter) Stop(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	err := r.lifecycle.Stop(ctx)
	return reply(ctx, nil, err)
}

// Restart replaces the analysis server with a fresh process.
func (r *jsonRPCRouter) Restart(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	err := r.lifecycle.Restart(ctx)
	return reply(ctx, nil, err)
}

// WorkspaceDidChange reconciles the server against the front-end's new
// workspace topology.
func (r *jsonRPCRouter) WorkspaceDidChange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	ws, err := mapper.RequestToWorkspace(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.lifecycle.OnWorkspaceChange(ctx, ws)
	return reply(ctx, nil, err)
}

// ExecuteCommand dispatches an editor command through the command gate.
func (r *jsonRPCRouter) ExecuteCommand(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	params, err := mapper.RequestToExecuteCommandParams(req)
	if err != nil {
		return reply(ctx, nil, err)
	}

	err = r.gate.Execute(ctx, params.Command)
	return reply(ctx, nil, err)
}
