// Package lahostdaemon wires editor front-end connections to the daemon's
// controllers.
package lahostdaemon

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/uber-go/tally"
	"go.lsp.dev/jsonrpc2"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polder-ide/lahost/src/lahost/controller/commands"
	"github.com/polder-ide/lahost/src/lahost/controller/health"
	"github.com/polder-ide/lahost/src/lahost/controller/lifecycle"
	"github.com/polder-ide/lahost/src/lahost/gateway/editor"
	"github.com/polder-ide/lahost/src/lahost/internal/jsonrpcfx"
)

// Module is the Fx module for this package.
var Module = fx.Invoke(Register)

// Params are the dependencies for the daemon handler.
type Params struct {
	fx.In

	Logger    *zap.SugaredLogger
	Stats     tally.Scope
	JSONRPC   jsonrpcfx.JSONRPCModule
	Lifecycle lifecycle.Controller
	Gate      commands.Gate
	Health    health.Tracker
	Editor    editor.Gateway
	Version   string `name:"hostVersion"`
}

// Register installs the connection manager that serves editor connections.
func Register(p Params) error {
	c := jsonRPCConnectionManager{
		logger:    p.Logger,
		stats:     p.Stats.SubScope("json_rpc"),
		lifecycle: p.Lifecycle,
		gate:      p.Gate,
		health:    p.Health,
		editor:    p.Editor,
		version:   p.Version,
	}
	return p.JSONRPC.RegisterConnectionManager(&c)
}

type jsonRPCConnectionManager struct {
	logger    *zap.SugaredLogger
	stats     tally.Scope
	lifecycle lifecycle.Controller
	gate      commands.Gate
	health    health.Tracker
	editor    editor.Gateway
	version   string
}

// NewConnection attaches a new editor connection and returns its router. The
// fresh editor immediately receives the current status and command set.
func (c *jsonRPCConnectionManager) NewConnection(ctx context.Context, conn *jsonrpc2.Conn) (jsonrpcfx.Router, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	if err := c.editor.RegisterConnection(ctx, conn); err != nil {
		return nil, err
	}

	c.health.Refresh(ctx)
	if err := c.gate.UpdateCommands(ctx, false); err != nil {
		c.logger.Warnw("publishing command set to new editor", zap.Error(err))
	}

	return &jsonRPCRouter{
		lifecycle: c.lifecycle,
		gate:      c.gate,
		uuid:      id,
		version:   c.version,
		stats:     c.stats,
	}, nil
}

// RemoveConnection cleans up after a closed editor connection. The server
// keeps running; a reconnecting editor picks the state back up.
func (c *jsonRPCConnectionManager) RemoveConnection(ctx context.Context, id uuid.UUID) {
	if err := c.editor.DeregisterConnection(ctx); err != nil {
		c.logger.Warnw("deregistering editor connection", zap.Stringer("uuid", id), zap.Error(err))
	}
}
