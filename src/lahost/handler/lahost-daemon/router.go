package lahostdaemon

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/uber-go/tally"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/polder-ide/lahost/src/lahost/controller/commands"
	"github.com/polder-ide/lahost/src/lahost/controller/lifecycle"
)

// Custom request methods accepted from the editor front-end.
const (
	MethodStart              = "lahost/start"
	MethodStop               = "lahost/stop"
	MethodRestart            = "lahost/restart"
	MethodExecuteCommand     = "lahost/executeCommand"
	MethodWorkspaceDidChange = "lahost/workspaceDidChange"
)

type jsonRPCRouter struct {
	lifecycle lifecycle.Controller
	gate      commands.Gate
	uuid      uuid.UUID
	version   string
	stats     tally.Scope
}

// HandleReq handles routing for a single request.
func (r *jsonRPCRouter) HandleReq(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	switch req.Method() {
	// Lifecycle related methods.
	case protocol.MethodInitialize:
		return r.Initialize(ctx, reply, req)

	case protocol.MethodInitialized:
		return r.Initialized(ctx, reply, req)

	case protocol.MethodShutdown:
		return r.Shutdown(ctx, reply, req)

	case protocol.MethodExit:
		return r.Exit(ctx, reply, req)

	// Server control methods.
	case MethodStart:
		return r.Start(ctx, reply, req)

	case MethodStop:
		return r.Stop(ctx, reply, req)

	case MethodRestart:
		return r.Restart(ctx, reply, req)

	// Workspace methods.
	case MethodWorkspaceDidChange:
		return r.WorkspaceDidChange(ctx, reply, req)

	case MethodExecuteCommand, protocol.MethodWorkspaceExecuteCommand:
		return r.ExecuteCommand(ctx, reply, req)

	default:
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}

func (r *jsonRPCRouter) UUID() uuid.UUID {
	return r.uuid
}
