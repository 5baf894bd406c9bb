// Package lifecycle owns the analysis-server process state machine. Every
// transition between stopped and running flows through this controller, one
// operation at a time.
package lifecycle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/uber-go/tally"
	"go.lsp.dev/protocol"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/polder-ide/lahost/src/lahost/controller/commands"
	"github.com/polder-ide/lahost/src/lahost/controller/health"
	"github.com/polder-ide/lahost/src/lahost/entity"
	"github.com/polder-ide/lahost/src/lahost/gateway/editor"
	"github.com/polder-ide/lahost/src/lahost/internal/bootstrap"
	"github.com/polder-ide/lahost/src/lahost/internal/executor"
	"github.com/polder-ide/lahost/src/lahost/internal/launcher"
	"github.com/polder-ide/lahost/src/lahost/internal/serverlog"
	"github.com/polder-ide/lahost/src/lahost/internal/watcher"
	"github.com/polder-ide/lahost/src/lahost/mapper"
)

const (
	_nameKey = "lifecycle"

	_methodReloadWorkspace = "vela-analyzer/reloadWorkspace"
	_methodRebuildDeps     = "vela-analyzer/rebuildDependencies"

	_settingCheckOnSave        = "checkOnSave"
	_settingDiscoveredProjects = "discoveredProjects"

	_statsStarts        = "starts"
	_statsStartFailures = "start_failures"
	_statsStops         = "stops"
	_statsRestarts      = "restarts"
	_statsCrashes       = "crashes"
)

// State is the lifecycle position of the managed server.
type State int

const (
	// StateStopped means no server process exists.
	StateStopped State = iota
	// StateStarting means a launch is in flight.
	StateStarting
	// StateRunning means a server is serving requests.
	StateRunning
	// StateStopping means a teardown is in flight.
	StateStopping
	// StateDisposed means the controller has shut down for good.
	StateDisposed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Controller drives the server process lifecycle.
type Controller interface {
	// Start launches the server for the current workspace. Starting an
	// already-running server is a logged no-op.
	Start(ctx context.Context) error
	// Stop tears the server down. Stopping a stopped server is a no-op.
	Stop(ctx context.Context) error
	// Restart is a stop followed by a start under a single lock hold, so
	// no other operation can interleave.
	Restart(ctx context.Context) error
	// Dispose stops the server and permanently retires the controller.
	Dispose(ctx context.Context) error
	// OnWorkspaceChange reconciles the server against a new topology.
	OnWorkspaceChange(ctx context.Context, next entity.Workspace) error
	// State returns the current lifecycle state.
	State() State
}

// Params are the dependencies for a new Controller.
type Params struct {
	fx.In

	Config    config.Provider
	Lifecycle fx.Lifecycle
	Logger    *zap.SugaredLogger
	Stats     tally.Scope
	Bootstrap bootstrap.Bootstrap
	Launcher  launcher.Launcher
	Health    health.Tracker
	Gate      commands.Gate
	Editor    editor.Gateway
	ServerLog serverlog.ServerLog
	Workspace watcher.Watcher
	Executor  executor.Executor
	Version   string `name:"hostVersion"`
}

type controller struct {
	cfg       entity.ServerConfig
	discovery entity.DiscoveryConfig
	version   string

	logger    *zap.SugaredLogger
	stats     tally.Scope
	bootstrap bootstrap.Bootstrap
	launcher  launcher.Launcher
	health    health.Tracker
	gate      commands.Gate
	editor    editor.Gateway
	serverLog serverlog.ServerLog
	source    watcher.Watcher
	executor  executor.Executor

	mu            sync.Mutex
	state         State
	handle        launcher.Handle
	workspace     entity.Workspace
	checkOnSave   bool
	serverVersion string
	discovered    []entity.ProjectDescriptor
}

// New creates a new Controller, binds the editor command set to it, and
// hooks it into the application lifecycle.
func New(p Params) (Controller, error) {
	cfg, err := mapper.ConfigToServerConfig(p.Config)
	if err != nil {
		return nil, err
	}
	discovery, err := mapper.ConfigToDiscoveryConfig(p.Config)
	if err != nil {
		return nil, err
	}

	c := &controller{
		cfg:         cfg,
		discovery:   discovery,
		version:     p.Version,
		logger:      p.Logger,
		stats:       p.Stats.SubScope(_nameKey),
		bootstrap:   p.Bootstrap,
		launcher:    p.Launcher,
		health:      p.Health,
		gate:        p.Gate,
		editor:      p.Editor,
		serverLog:   p.ServerLog,
		source:      p.Workspace,
		executor:    p.Executor,
		state:       StateStopped,
		checkOnSave: cfg.CheckOnSave,
	}

	if err := c.gate.RegisterActions(c.commandActions()); err != nil {
		return nil, err
	}
	c.source.RegisterListener(func(ctx context.Context, ws entity.Workspace) {
		if err := c.OnWorkspaceChange(ctx, ws); err != nil {
			c.logger.Warnw("reconciling workspace change", zap.Error(err))
		}
	})

	p.Lifecycle.Append(fx.Hook{
		OnStart: c.onStart,
		OnStop:  c.Dispose,
	})

	return c, nil
}

func (c *controller) onStart(ctx context.Context) error {
	ws, err := c.source.Current(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.workspace = ws
	c.mu.Unlock()

	if err := c.gate.UpdateCommands(ctx, false); err != nil {
		c.logger.Warnw("publishing initial command set", zap.Error(err))
	}

	// First launch happens off the startup path so a slow or broken
	// server binary cannot wedge daemon boot.
	if ws.Kind != entity.WorkspaceEmpty {
		go func() {
			if err := c.Start(context.Background()); err != nil {
				c.logger.Warnw("initial server start failed", zap.Error(err))
			}
		}()
	}
	return nil
}

func (c *controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startLocked(ctx)
}

func (c *controller) Stop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopLocked(ctx)
}

func (c *controller) Restart(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateDisposed {
		return errDisposed
	}
	if err := c.stopLocked(ctx); err != nil {
		c.logger.Warnw("stopping server during restart", zap.Error(err))
	}
	c.stats.Counter(_statsRestarts).Inc(1)
	return c.startLocked(ctx)
}

func (c *controller) Dispose(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateDisposed {
		return nil
	}
	err := c.stopLocked(ctx)
	c.state = StateDisposed
	return multierr.Append(err, c.gate.Dispose(ctx))
}

func (c *controller) OnWorkspaceChange(ctx context.Context, next entity.Workspace) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateDisposed {
		return errDisposed
	}

	action := Reconcile(c.workspace, next, c.state == StateRunning)
	c.workspace = next
	c.logger.Infow("workspace changed", "kind", next.Kind.String(), "action", action.String())

	switch action {
	case ActionStop:
		return c.stopLocked(ctx)
	case ActionRestart:
		if err := c.stopLocked(ctx); err != nil {
			c.logger.Warnw("stopping server for workspace change", zap.Error(err))
		}
		return c.startLocked(ctx)
	default:
		return nil
	}
}

func (c *controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

var errDisposed = errors.New("lifecycle controller is disposed")

func (c *controller) startLocked(ctx context.Context) error {
	switch c.state {
	case StateDisposed:
		return errDisposed
	case StateStarting, StateRunning:
		c.logger.Infow("start requested while server already up", "state", c.state.String())
		return nil
	}

	if c.workspace.Kind == entity.WorkspaceEmpty {
		c.logger.Infow("not starting server, workspace is empty")
		c.health.SetStopped(ctx)
		return nil
	}

	c.state = StateStarting
	if err := c.launchLocked(ctx); err != nil {
		c.state = StateStopped
		c.stats.Counter(_statsStartFailures).Inc(1)
		c.health.SetStopped(ctx)
		if showErr := c.editor.ShowError(ctx, fmt.Sprintf("failed to start %s: %v", c.cfg.Name, err)); showErr != nil {
			c.logger.Warnw("reporting start failure to editor", zap.Error(showErr))
		}
		if cmdErr := c.gate.UpdateCommands(ctx, false); cmdErr != nil {
			c.logger.Warnw("updating commands after failed start", zap.Error(cmdErr))
		}
		return err
	}

	c.state = StateRunning
	c.stats.Counter(_statsStarts).Inc(1)
	if err := c.gate.UpdateCommands(ctx, false); err != nil {
		c.logger.Warnw("updating commands after start", zap.Error(err))
	}
	return nil
}

func (c *controller) launchLocked(ctx context.Context) error {
	path, err := c.bootstrap.Resolve(ctx)
	if err != nil {
		return err
	}
	version, err := c.bootstrap.Probe(ctx, path)
	if err != nil {
		return err
	}

	initCfg := c.cfg
	initCfg.CheckOnSave = c.checkOnSave
	h, err := c.launcher.Launch(ctx, launcher.LaunchSpec{
		Path:        path,
		ExtraEnv:    c.cfg.ExtraEnv,
		Workspace:   c.workspace,
		InitOptions: mapper.NewInitializationOptions(initCfg, c.workspace, c.discovered),
		HostVersion: c.version,
	})
	if err != nil {
		return err
	}

	c.handle = h
	c.serverVersion = version
	c.health.Reset(ctx, h.Generation())
	c.bindSubscriptions(h)

	versions := entity.VersionInfo{Host: c.version, Server: version}
	c.health.SetVersions(ctx, versions)

	go c.watchExit(h)

	c.logger.Infow("server started", "path", path, "version", version, zap.Stringer("generation", h.Generation()))
	return nil
}

func (c *controller) stopLocked(ctx context.Context) error {
	switch c.state {
	case StateDisposed:
		return errDisposed
	case StateStopped:
		return nil
	}

	c.state = StateStopping
	h := c.handle
	c.handle = nil

	var err error
	if h != nil {
		h.ReleaseSubscriptions()
		err = h.Stop(ctx)
	}

	c.state = StateStopped
	c.stats.Counter(_statsStops).Inc(1)
	c.health.SetStopped(ctx)
	if cmdErr := c.gate.UpdateCommands(ctx, false); cmdErr != nil {
		c.logger.Warnw("updating commands after stop", zap.Error(cmdErr))
	}
	return err
}

// bindSubscriptions routes the server's push notifications. Each handler is
// pinned to the handle's generation so a replaced server cannot leak state
// into its successor.
func (c *controller) bindSubscriptions(h launcher.Handle) {
	generation := h.Generation()

	h.Subscribe(launcher.MethodServerStatus, func(ctx context.Context, params json.RawMessage) {
		status, err := mapper.RawToHealthStatus(params)
		if err != nil {
			c.logger.Warnw("parsing server status", zap.Error(err))
			return
		}
		c.health.OnStatus(ctx, generation, status)
	})

	h.Subscribe(launcher.MethodOpenServerLogs, func(ctx context.Context, _ json.RawMessage) {
		if err := c.editor.OpenServerLog(ctx, c.serverLog.Path()); err != nil {
			c.logger.Warnw("opening server log in editor", zap.Error(err))
		}
	})

	h.Subscribe(launcher.MethodUnindexedProject, func(_ context.Context, params json.RawMessage) {
		// Off the connection's read loop: discovery takes the controller
		// lock and runs an external command.
		go c.handleUnindexedProject(context.Background(), generation, params)
	})
}

// watchExit turns an unexpected process death into a stopped state with an
// explanation. Deliberate stops are recognized by the generation or state
// having moved on already.
func (c *controller) watchExit(h launcher.Handle) {
	<-h.Exited()
	ctx := context.Background()

	c.mu.Lock()
	if c.handle == nil || c.handle.Generation() != h.Generation() || c.state != StateRunning {
		c.mu.Unlock()
		return
	}
	c.handle = nil
	c.state = StateStopped
	c.mu.Unlock()

	c.stats.Counter(_statsCrashes).Inc(1)
	msg := fmt.Sprintf("%s server terminated unexpectedly", c.cfg.Name)
	if err := h.Err(); err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	c.logger.Warnw("server crashed", zap.Stringer("generation", h.Generation()), zap.Error(h.Err()))

	c.health.SetStopped(ctx)
	if err := c.editor.ShowError(ctx, msg+", check the server log for details"); err != nil {
		c.logger.Warnw("reporting crash to editor", zap.Error(err))
	}
	if err := c.gate.UpdateCommands(ctx, false); err != nil {
		c.logger.Warnw("updating commands after crash", zap.Error(err))
	}
}

func (c *controller) currentHandle() (launcher.Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateRunning || c.handle == nil {
		return nil, fmt.Errorf("%s server is not running", c.cfg.Name)
	}
	return c.handle, nil
}

// handleUnindexedProject runs the configured discovery runner for documents
// the server could not place in any project, then hands the server the
// enlarged project set.
func (c *controller) handleUnindexedProject(ctx context.Context, generation uuid.UUID, params json.RawMessage) {
	if c.discovery.Runner == "" {
		c.logger.Debugw("unindexed project reported but no discovery runner configured")
		return
	}

	var payload struct {
		TextDocuments []protocol.TextDocumentIdentifier `json:"textDocuments"`
	}
	if err := json.Unmarshal(params, &payload); err != nil {
		c.logger.Warnw("parsing unindexed project notification", zap.Error(err))
		return
	}

	var added bool
	var discoverErr error
	for _, doc := range payload.TextDocuments {
		descriptor, err := c.discoverProject(ctx, doc.URI.Filename())
		if err != nil {
			c.logger.Warnw("project discovery failed", "file", doc.URI.Filename(), zap.Error(err))
			discoverErr = err
			continue
		}
		if c.recordDiscovered(generation, descriptor) {
			added = true
		}
	}
	if !added {
		if discoverErr != nil {
			if showErr := c.editor.ShowError(ctx, fmt.Sprintf("project discovery failed: %v", discoverErr)); showErr != nil {
				c.logger.Warnw("showing discovery error", zap.Error(showErr))
			}
		}
		return
	}

	h, err := c.currentHandle()
	if err != nil || h.Generation() != generation {
		return
	}

	c.mu.Lock()
	discovered := make([]entity.ProjectDescriptor, len(c.discovered))
	copy(discovered, c.discovered)
	c.mu.Unlock()

	err = h.Server().DidChangeConfiguration(ctx, &protocol.DidChangeConfigurationParams{
		Settings: map[string]interface{}{_settingDiscoveredProjects: discovered},
	})
	if err != nil {
		c.logger.Warnw("pushing discovered projects to server", zap.Error(err))
	}
}

func (c *controller) discoverProject(ctx context.Context, file string) (entity.ProjectDescriptor, error) {
	cmd := exec.CommandContext(ctx, c.discovery.Runner, file)
	stdout, stderr, code, err := c.executor.Run(cmd, executor.MergeEnv(nil, c.cfg.ExtraEnv))
	if err != nil && code < 0 {
		return entity.ProjectDescriptor{}, err
	}
	if code != 0 {
		return entity.ProjectDescriptor{}, fmt.Errorf("discovery runner exited with code %d: %s", code, stderr)
	}

	var descriptor entity.ProjectDescriptor
	if err := json.Unmarshal([]byte(stdout), &descriptor); err != nil {
		return entity.ProjectDescriptor{}, fmt.Errorf("parsing discovery runner output: %w", err)
	}
	if descriptor.Root == "" {
		return entity.ProjectDescriptor{}, errors.New("discovery runner reported no project root")
	}
	return descriptor, nil
}

// recordDiscovered stores a descriptor unless an equal root is already known
// or the reporting server has been replaced.
func (c *controller) recordDiscovered(generation uuid.UUID, descriptor entity.ProjectDescriptor) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handle == nil || c.handle.Generation() != generation {
		return false
	}
	for _, existing := range c.discovered {
		if existing.Root == descriptor.Root {
			return false
		}
	}
	c.discovered = append(c.discovered, descriptor)
	return true
}
