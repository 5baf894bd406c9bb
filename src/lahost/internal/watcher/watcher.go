// Package watcher tracks the workspace descriptor file the editor front-end
// maintains, and republishes topology changes to interested listeners.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/uber-go/tally"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/polder-ide/lahost/src/lahost/entity"
	"github.com/polder-ide/lahost/src/lahost/internal/fs"
	"github.com/polder-ide/lahost/src/lahost/mapper"
)

const (
	_configKeyDescriptor = "workspace.descriptor"
	_debounceTimeout     = 50 * time.Millisecond

	_nameKey      = "workspace_watcher"
	_statsChanges = "changes"
	_statsErrors  = "descriptor_errors"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Listener receives the new workspace after a descriptor change.
type Listener func(ctx context.Context, ws entity.Workspace)

// Watcher exposes the current workspace topology and change notifications.
type Watcher interface {
	// Current loads the workspace from the descriptor file. A missing or
	// unconfigured descriptor yields the empty workspace.
	Current(ctx context.Context) (entity.Workspace, error)
	// RegisterListener adds a callback invoked on every topology change.
	RegisterListener(l Listener)
}

// Params are the dependencies for a new Watcher.
type Params struct {
	fx.In

	Config    config.Provider
	Lifecycle fx.Lifecycle
	Logger    *zap.SugaredLogger
	Stats     tally.Scope
	FS        fs.HostFS
}

type watcher struct {
	path   string
	logger *zap.SugaredLogger
	stats  tally.Scope
	fs     fs.HostFS

	fsw  *fsnotify.Watcher
	done chan struct{}

	mu        sync.Mutex
	listeners []Listener
	last      entity.Workspace
	debounce  *time.Timer
}

// New creates a new Watcher and hooks it into the application lifecycle.
func New(p Params) (Watcher, error) {
	var path string
	if err := p.Config.Get(_configKeyDescriptor).Populate(&path); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKeyDescriptor, err)
	}

	w := &watcher{
		path:   path,
		logger: p.Logger,
		stats:  p.Stats.SubScope(_nameKey),
		fs:     p.FS,
		done:   make(chan struct{}),
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: w.onStart,
		OnStop:  w.onStop,
	})

	return w, nil
}

func (w *watcher) Current(ctx context.Context) (entity.Workspace, error) {
	if w.path == "" {
		return entity.EmptyWorkspace(), nil
	}
	return w.load()
}

func (w *watcher) RegisterListener(l Listener) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, l)
}

func (w *watcher) onStart(ctx context.Context) error {
	if w.path == "" {
		w.logger.Infow("no workspace descriptor configured, topology changes disabled")
		return nil
	}

	ws, err := w.load()
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.last = ws
	w.mu.Unlock()

	// Watch the directory rather than the file: editors replace the
	// descriptor atomically via rename, which drops a file-level watch.
	w.fsw, err = fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.fsw.Add(filepath.Dir(w.path)); err != nil {
		w.fsw.Close()
		w.fsw = nil
		return err
	}

	go w.run()
	return nil
}

func (w *watcher) onStop(ctx context.Context) error {
	close(w.done)
	if w.fsw != nil {
		return w.fsw.Close()
	}
	return nil
}

func (w *watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warnw("workspace descriptor watch error", zap.Error(err))
		}
	}
}

// scheduleReload coalesces bursts of events into a single reload.
func (w *watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(_debounceTimeout, w.reload)
}

func (w *watcher) reload() {
	ws, err := w.load()
	if err != nil {
		w.stats.Counter(_statsErrors).Inc(1)
		w.logger.Warnw("reloading workspace descriptor", zap.Error(err))
		return
	}

	w.mu.Lock()
	if ws.Equal(w.last) {
		w.mu.Unlock()
		return
	}
	w.last = ws
	listeners := make([]Listener, len(w.listeners))
	copy(listeners, w.listeners)
	w.mu.Unlock()

	w.stats.Counter(_statsChanges).Inc(1)
	w.logger.Infow("workspace changed", "kind", ws.Kind.String())
	for _, l := range listeners {
		l(context.Background(), ws)
	}
}

func (w *watcher) load() (entity.Workspace, error) {
	exists, err := w.fs.FileExists(w.path)
	if err != nil {
		return entity.Workspace{}, err
	}
	if !exists {
		return entity.EmptyWorkspace(), nil
	}

	data, err := w.fs.ReadFile(w.path)
	if err != nil {
		return entity.Workspace{}, err
	}

	var params mapper.WorkspaceDidChangeParams
	if err := yaml.Unmarshal(data, &params); err != nil {
		return entity.Workspace{}, fmt.Errorf("parsing workspace descriptor %q: %w", w.path, err)
	}
	return mapper.ParamsToWorkspace(params)
}
