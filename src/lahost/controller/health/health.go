// Package health tracks the reported health of the current server process
// and keeps the editor's status rendering in sync with it.
package health

import (
	"context"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/uber-go/tally"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polder-ide/lahost/src/lahost/entity"
	"github.com/polder-ide/lahost/src/lahost/gateway/editor"
	"github.com/polder-ide/lahost/src/lahost/mapper"
)

const (
	_nameKey = "health"

	_statsUpdates      = "status_updates"
	_statsStaleDropped = "stale_dropped"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Tracker records server health reports and derives the editor-facing
// status from the most recent one.
type Tracker interface {
	// Reset arms the tracker for a new server generation. The status
	// becomes healthy-but-busy until the server reports otherwise, and
	// reports from any other generation are dropped from now on.
	Reset(ctx context.Context, generation uuid.UUID)
	// OnStatus records a health report from the given generation.
	// Last write wins; stale generations are ignored.
	OnStatus(ctx context.Context, generation uuid.UUID, status entity.HealthStatus)
	// SetStopped records that no server is running.
	SetStopped(ctx context.Context)
	// SetVersions records the version info shown in the status tooltip.
	SetVersions(ctx context.Context, versions entity.VersionInfo)
	// Refresh re-renders the current status to the editor, for use when a
	// new editor connection attaches.
	Refresh(ctx context.Context)
	// Current returns the most recent status.
	Current() entity.HealthStatus
	// CommandsEnabled reports whether server-dependent commands should be
	// offered, which is the case whenever a server is running.
	CommandsEnabled() bool
}

// Params are the dependencies for a new Tracker.
type Params struct {
	fx.In

	Config config.Provider
	Logger *zap.SugaredLogger
	Stats  tally.Scope
	Editor editor.Gateway
}

type tracker struct {
	serverName string
	bar        entity.StatusBarConfig
	logger     *zap.SugaredLogger
	stats      tally.Scope
	editor     editor.Gateway

	mu         sync.Mutex
	generation uuid.UUID
	status     entity.HealthStatus
	versions   entity.VersionInfo
}

// New creates a new Tracker.
func New(p Params) (Tracker, error) {
	serverCfg, err := mapper.ConfigToServerConfig(p.Config)
	if err != nil {
		return nil, err
	}
	barCfg, err := mapper.ConfigToStatusBarConfig(p.Config)
	if err != nil {
		return nil, err
	}

	return &tracker{
		serverName: serverCfg.Name,
		bar:        barCfg,
		logger:     p.Logger,
		stats:      p.Stats.SubScope(_nameKey),
		editor:     p.Editor,
		status:     entity.StoppedStatus(),
	}, nil
}

func (t *tracker) Reset(ctx context.Context, generation uuid.UUID) {
	t.mu.Lock()
	t.generation = generation
	t.status = entity.HealthStatus{Health: entity.HealthOK, Quiescent: false}
	t.mu.Unlock()

	t.render(ctx)
}

func (t *tracker) OnStatus(ctx context.Context, generation uuid.UUID, status entity.HealthStatus) {
	t.mu.Lock()
	if generation != t.generation {
		t.mu.Unlock()
		t.stats.Counter(_statsStaleDropped).Inc(1)
		t.logger.Debugw("dropping status report from stale server", zap.Stringer("generation", generation))
		return
	}
	t.status = status
	t.mu.Unlock()

	t.stats.Counter(_statsUpdates).Inc(1)
	t.render(ctx)
}

func (t *tracker) SetStopped(ctx context.Context) {
	t.mu.Lock()
	t.generation = uuid.Nil
	t.status = entity.StoppedStatus()
	t.mu.Unlock()

	t.render(ctx)
}

func (t *tracker) SetVersions(ctx context.Context, versions entity.VersionInfo) {
	t.mu.Lock()
	t.versions = versions
	t.mu.Unlock()

	t.render(ctx)
}

func (t *tracker) Refresh(ctx context.Context) {
	t.render(ctx)
}

func (t *tracker) Current() entity.HealthStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

func (t *tracker) CommandsEnabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status.Health != entity.HealthStopped
}

func (t *tracker) render(ctx context.Context) {
	t.mu.Lock()
	render := mapper.StatusToRender(t.status, t.versions, t.bar, t.serverName)
	t.mu.Unlock()

	if err := t.editor.RenderStatus(ctx, render); err != nil {
		t.logger.Warnw("rendering status to editor", zap.Error(err))
	}
}
