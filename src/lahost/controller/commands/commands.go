// Package commands gates the editor-facing command set. Every command stays
// registered for the lifetime of the daemon; what changes is whether its
// bound handler is live or a stub that explains why the command is
// unavailable.
package commands

import (
	"context"
	"fmt"
	"sync"

	"github.com/uber-go/tally"
	"go.lsp.dev/protocol"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polder-ide/lahost/src/lahost/controller/health"
	"github.com/polder-ide/lahost/src/lahost/entity"
	"github.com/polder-ide/lahost/src/lahost/gateway/editor"
)

const (
	_nameKey = "commands"

	_statsExecuted = "executed"
	_statsRejected = "rejected"
	_statsFailed   = "failed"

	_unavailableMessage = "vela-analyzer server is not running"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Action is the handler bound to a single command.
type Action func(ctx context.Context) error

// Gate owns the mapping from command identifiers to live handlers.
type Gate interface {
	// RegisterActions installs the command handlers. Called once during
	// startup by the lifecycle controller; registering twice is an error.
	RegisterActions(actions map[string]Action) error
	// UpdateCommands recomputes command enablement from the current
	// health state and pushes it to the editor. Previous bindings are
	// released before the new set takes effect, so a command can never be
	// observed in both states. forceDisable gates everything off
	// regardless of health, for use during teardown.
	UpdateCommands(ctx context.Context, forceDisable bool) error
	// Execute runs the command with the given identifier. Disabled
	// commands are rejected with a message to the editor rather than an
	// error, since a racing click is not the editor's fault.
	Execute(ctx context.Context, id string) error
	// Dispose permanently disables all commands.
	Dispose(ctx context.Context) error
}

// Params are the dependencies for a new Gate.
type Params struct {
	fx.In

	Logger *zap.SugaredLogger
	Stats  tally.Scope
	Editor editor.Gateway
	Health health.Tracker
}

// binding is one generation of command enablement. Replaced wholesale on
// every UpdateCommands so a stale in-flight Execute sees a consistent set.
type binding struct {
	enabled map[string]bool
}

type gate struct {
	logger *zap.SugaredLogger
	stats  tally.Scope
	editor editor.Gateway
	health health.Tracker

	mu       sync.Mutex
	actions  map[string]Action
	current  *binding
	disposed bool
}

// alwaysEnabled lists the commands that remain usable while no server is
// running.
var alwaysEnabled = map[string]bool{
	entity.CommandStartServer: true,
	entity.CommandOpenLogs:    true,
	entity.CommandVersionInfo: true,
}

// New creates a new Gate.
func New(p Params) Gate {
	return &gate{
		logger: p.Logger,
		stats:  p.Stats.SubScope(_nameKey),
		editor: p.Editor,
		health: p.Health,
	}
}

func (g *gate) RegisterActions(actions map[string]Action) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.actions != nil {
		return fmt.Errorf("command actions already registered")
	}
	g.actions = actions
	return nil
}

func (g *gate) UpdateCommands(ctx context.Context, forceDisable bool) error {
	g.mu.Lock()
	if g.disposed {
		g.mu.Unlock()
		return nil
	}
	serverUp := g.health.CommandsEnabled()

	next := &binding{enabled: make(map[string]bool, len(entity.AllCommands()))}
	for _, id := range entity.AllCommands() {
		next.enabled[id] = !forceDisable && (alwaysEnabled[id] || serverUp)
	}

	// Replacing the binding wholesale releases the previous generation
	// before the new one takes effect.
	g.current = next
	enabled := copyEnablement(next.enabled)
	g.mu.Unlock()

	return g.editor.SetCommandEnablement(ctx, enabled)
}

func (g *gate) Execute(ctx context.Context, id string) error {
	g.mu.Lock()
	action, ok := g.actions[id]
	live := g.current != nil && g.current.enabled[id]
	g.mu.Unlock()

	if !ok {
		return fmt.Errorf("unknown command %q", id)
	}
	if !live {
		g.stats.Counter(_statsRejected).Inc(1)
		g.logger.Infow("rejecting disabled command", "command", id)
		return g.editor.ShowMessage(ctx, &protocol.ShowMessageParams{
			Type:    protocol.MessageTypeWarning,
			Message: _unavailableMessage,
		})
	}

	g.stats.Counter(_statsExecuted).Inc(1)
	if err := action(ctx); err != nil {
		g.stats.Counter(_statsFailed).Inc(1)
		g.logger.Warnw("command failed", "command", id, zap.Error(err))
		return err
	}
	return nil
}

func (g *gate) Dispose(ctx context.Context) error {
	g.mu.Lock()
	g.disposed = true
	g.current = nil
	g.mu.Unlock()

	disabled := make(map[string]bool, len(entity.AllCommands()))
	for _, id := range entity.AllCommands() {
		disabled[id] = false
	}
	return g.editor.SetCommandEnablement(ctx, disabled)
}

func copyEnablement(src map[string]bool) map[string]bool {
	dst := make(map[string]bool, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
