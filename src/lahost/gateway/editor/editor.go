// Package editor is the outbound gateway to the editor front-end connection.
package editor

import (
	"context"
	"fmt"
	"sync"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polder-ide/lahost/src/lahost/entity"
)

const (
	_errSendToEditor = "sending call/notification to editor: %w"

	// MethodStatusRender notifies the editor of a new status-bar render.
	MethodStatusRender = "lahost/statusRender"
	// MethodCommandEnablement notifies the editor which commands are live.
	MethodCommandEnablement = "lahost/commandEnablement"
	// MethodOpenLog asks the editor to open the server log file.
	MethodOpenLog = "lahost/openLog"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Gateway sends outbound notifications and calls to the editor front-end.
// At most one editor connection is active at a time; calls made while no
// editor is connected are dropped with a debug log so the daemon stays
// usable headless.
type Gateway interface {
	// RegisterConnection stores the active editor connection. Called each
	// time the front-end connects.
	RegisterConnection(ctx context.Context, conn *jsonrpc2.Conn) error
	// DeregisterConnection clears the active editor connection.
	DeregisterConnection(ctx context.Context) error

	// ShowMessage surfaces a message dialog in the editor.
	ShowMessage(ctx context.Context, params *protocol.ShowMessageParams) error
	// ShowError surfaces an error dialog in the editor.
	ShowError(ctx context.Context, message string) error
	// LogMessage appends to the editor's output panel.
	LogMessage(ctx context.Context, params *protocol.LogMessageParams) error

	// RenderStatus pushes a derived status-bar summary.
	RenderStatus(ctx context.Context, render entity.StatusRender) error
	// SetCommandEnablement pushes the current enabled/disabled command map.
	SetCommandEnablement(ctx context.Context, enabled map[string]bool) error
	// OpenServerLog asks the editor to open the server log at path.
	OpenServerLog(ctx context.Context, path string) error
}

type gateway struct {
	mu     sync.Mutex
	conn   *jsonrpc2.Conn
	client protocol.Client
	logger *zap.Logger
}

// New returns a Gateway for the single editor front-end connection.
func New(logger *zap.Logger) Gateway {
	return &gateway{logger: logger}
}

func (g *gateway) RegisterConnection(ctx context.Context, conn *jsonrpc2.Conn) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.conn = conn
	g.client = protocol.ClientDispatcher(*conn, g.logger)
	return nil
}

func (g *gateway) DeregisterConnection(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.conn = nil
	g.client = nil
	return nil
}

func (g *gateway) ShowMessage(ctx context.Context, params *protocol.ShowMessageParams) error {
	client, ok := g.currentClient()
	if !ok {
		g.logger.Debug("no editor connected, dropping message", zap.String("message", params.Message))
		return nil
	}
	if err := client.ShowMessage(ctx, params); err != nil {
		return fmt.Errorf(_errSendToEditor, err)
	}
	return nil
}

func (g *gateway) ShowError(ctx context.Context, message string) error {
	return g.ShowMessage(ctx, &protocol.ShowMessageParams{
		Type:    protocol.MessageTypeError,
		Message: message,
	})
}

func (g *gateway) LogMessage(ctx context.Context, params *protocol.LogMessageParams) error {
	client, ok := g.currentClient()
	if !ok {
		return nil
	}
	if err := client.LogMessage(ctx, params); err != nil {
		return fmt.Errorf(_errSendToEditor, err)
	}
	return nil
}

func (g *gateway) RenderStatus(ctx context.Context, render entity.StatusRender) error {
	return g.notify(ctx, MethodStatusRender, render)
}

func (g *gateway) SetCommandEnablement(ctx context.Context, enabled map[string]bool) error {
	return g.notify(ctx, MethodCommandEnablement, enabled)
}

func (g *gateway) OpenServerLog(ctx context.Context, path string) error {
	return g.notify(ctx, MethodOpenLog, map[string]string{"path": path})
}

func (g *gateway) notify(ctx context.Context, method string, params interface{}) error {
	g.mu.Lock()
	conn := g.conn
	g.mu.Unlock()

	if conn == nil {
		g.logger.Debug("no editor connected, dropping notification", zap.String("method", method))
		return nil
	}
	if err := (*conn).Notify(ctx, method, params); err != nil {
		return fmt.Errorf(_errSendToEditor, err)
	}
	return nil
}

func (g *gateway) currentClient() (protocol.Client, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client == nil {
		return nil, false
	}
	return g.client, true
}
