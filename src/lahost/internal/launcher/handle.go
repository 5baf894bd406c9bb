package launcher

import (
	"context"
	"encoding/json"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/polder-ide/lahost/src/lahost/internal/clock"
)

const _stopGracePeriod = 3 * time.Second

// NotificationHandler receives the raw params of a server notification.
type NotificationHandler func(ctx context.Context, params json.RawMessage)

// Handle is a live connection to one running server process. All methods are
// safe for concurrent use.
type Handle interface {
	// Generation uniquely identifies this process instance. Callbacks
	// carrying a different generation refer to an already-replaced server.
	Generation() uuid.UUID
	// Running reports whether the process has not yet exited.
	Running() bool
	// ServerInfo returns the name and version the server reported during
	// the initialize handshake, or nil if it reported none.
	ServerInfo() *protocol.ServerInfo
	// Server exposes the full typed LSP surface of the process.
	Server() protocol.Server
	// Request issues a custom request outside the standard LSP surface.
	Request(ctx context.Context, method string, params, result interface{}) error
	// Notify sends a custom notification.
	Notify(ctx context.Context, method string, params interface{}) error
	// Subscribe routes server notifications for method to handler,
	// replacing any previous handler for the same method.
	Subscribe(method string, handler NotificationHandler)
	// ReleaseSubscriptions drops all handlers. Called before teardown so
	// in-flight notifications from a dying process are discarded.
	ReleaseSubscriptions()
	// Exited is closed once the process has exited, however it ended.
	Exited() <-chan struct{}
	// Err returns the process exit error, valid once Exited is closed.
	Err() error
	// Stop shuts the server down gracefully, escalating to a kill after a
	// grace period.
	Stop(ctx context.Context) error
}

type handleParams struct {
	generation uuid.UUID
	cmd        *exec.Cmd
	conn       jsonrpc2.Conn
	logger     *zap.SugaredLogger
	clock      clock.Clock
}

type handle struct {
	generation uuid.UUID
	cmd        *exec.Cmd
	conn       jsonrpc2.Conn
	server     protocol.Server
	logger     *zap.SugaredLogger
	clock      clock.Clock
	stopGrace  time.Duration

	running atomic.Bool
	exited  chan struct{}

	mu         sync.RWMutex
	subs       map[string]NotificationHandler
	serverInfo *protocol.ServerInfo
	exitErr    error
}

func newHandle(p handleParams) *handle {
	h := &handle{
		generation: p.generation,
		cmd:        p.cmd,
		conn:       p.conn,
		server:     protocol.ServerDispatcher(p.conn, p.logger.Desugar()),
		logger:     p.logger,
		clock:      p.clock,
		stopGrace:  _stopGracePeriod,
		exited:     make(chan struct{}),
		subs:       make(map[string]NotificationHandler),
	}
	h.running.Store(true)
	return h
}

func (h *handle) Generation() uuid.UUID { return h.generation }

func (h *handle) Running() bool { return h.running.Load() }

func (h *handle) ServerInfo() *protocol.ServerInfo {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.serverInfo
}

func (h *handle) Server() protocol.Server { return h.server }

func (h *handle) Request(ctx context.Context, method string, params, result interface{}) error {
	return protocol.Call(ctx, h.conn, method, params, result)
}

func (h *handle) Notify(ctx context.Context, method string, params interface{}) error {
	return h.conn.Notify(ctx, method, params)
}

func (h *handle) Subscribe(method string, handler NotificationHandler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[method] = handler
}

func (h *handle) ReleaseSubscriptions() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs = make(map[string]NotificationHandler)
}

func (h *handle) Exited() <-chan struct{} { return h.exited }

func (h *handle) Err() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.exitErr
}

func (h *handle) Stop(ctx context.Context) error {
	if !h.Running() {
		return nil
	}

	// Best effort: a wedged server may never answer shutdown, the grace
	// timer below covers that.
	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Warnw("server shutdown request failed", zap.Stringer("generation", h.generation), zap.Error(err))
	}
	if err := h.server.Exit(ctx); err != nil {
		h.logger.Debugw("server exit notification failed", zap.Stringer("generation", h.generation), zap.Error(err))
	}
	h.conn.Close()

	select {
	case <-h.exited:
	case <-h.clock.After(h.stopGrace):
		h.logger.Warnw("server did not exit within grace period, killing", zap.Stringer("generation", h.generation))
		h.kill()
		<-h.exited
	case <-ctx.Done():
		h.kill()
		return ctx.Err()
	}
	return nil
}

// initialize performs the LSP handshake with the freshly started process.
func (h *handle) initialize(ctx context.Context, spec LaunchSpec) error {
	result, err := h.server.Initialize(ctx, initializeParams(spec))
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.serverInfo = result.ServerInfo
	h.mu.Unlock()

	return h.server.Initialized(ctx, &protocol.InitializedParams{})
}

// dispatch routes inbound traffic from the server process. Notifications go
// to the subscribed handler for their method; everything else falls through
// to the standard method-not-found reply.
func (h *handle) dispatch(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	h.mu.RLock()
	sub, ok := h.subs[req.Method()]
	h.mu.RUnlock()

	if ok {
		sub(ctx, req.Params())
		if _, isCall := req.(*jsonrpc2.Call); isCall {
			return reply(ctx, nil, nil)
		}
		return nil
	}

	return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
}

// watch blocks until the process exits and records the outcome.
func (h *handle) watch() {
	err := h.cmd.Wait()

	h.running.Store(false)
	h.mu.Lock()
	h.exitErr = err
	h.mu.Unlock()

	h.conn.Close()
	close(h.exited)

	if err != nil {
		h.logger.Warnw("server process exited with error", zap.Stringer("generation", h.generation), zap.Error(err))
	} else {
		h.logger.Infow("server process exited", zap.Stringer("generation", h.generation))
	}
}

func (h *handle) kill() {
	if h.cmd.Process != nil {
		h.cmd.Process.Kill()
	}
}
