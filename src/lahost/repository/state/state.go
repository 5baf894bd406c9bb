// Package state persists the small set of durable host records that outlive
// any single server instance, such as the last patched server version.
package state

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	tally "github.com/uber-go/tally"
	"github.com/polder-ide/lahost/src/lahost/internal/fs"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	_stateDirName  = "lahost"
	_stateFileName = "state.yaml"

	// KeyLastPatchedVersion records the server version of the most recent
	// successful platform patch, so an unchanged version can reuse the
	// patched copy without re-copying.
	KeyLastPatchedVersion = "lastPatchedVersion"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Repository is a durable key/value record store.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

// Params are the dependencies for a new Repository.
type Params struct {
	fx.In

	FS     fs.HostFS
	Logger *zap.SugaredLogger
	Stats  tally.Scope
}

type repository struct {
	mu     sync.Mutex
	fs     fs.HostFS
	logger *zap.SugaredLogger
	stats  tally.Scope

	path   string
	loaded bool
	values map[string]string
}

// New returns a Repository backed by a YAML file in the user's cache dir.
func New(p Params) Repository {
	return &repository{
		fs:     p.FS,
		logger: p.Logger,
		stats:  p.Stats.SubScope("persistent_state"),
		values: make(map[string]string),
	}
}

// Get returns the value for key, or the empty string when unset.
func (r *repository) Get(ctx context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.loadLocked(); err != nil {
		return "", err
	}
	return r.values[key], nil
}

// Set stores the value for key and writes the whole record through to disk.
func (r *repository) Set(ctx context.Context, key string, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.loadLocked(); err != nil {
		return err
	}
	r.values[key] = value
	r.stats.Counter("writes").Inc(1)
	return r.flushLocked()
}

// Delete removes key from the record.
func (r *repository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.loadLocked(); err != nil {
		return err
	}
	delete(r.values, key)
	return r.flushLocked()
}

func (r *repository) loadLocked() error {
	if r.loaded {
		return nil
	}

	cacheDir, err := r.fs.UserCacheDir()
	if err != nil {
		return fmt.Errorf("locating cache dir for persistent state: %w", err)
	}
	dir := filepath.Join(cacheDir, _stateDirName)
	if err := r.fs.MkdirAll(dir); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	r.path = filepath.Join(dir, _stateFileName)

	exists, err := r.fs.FileExists(r.path)
	if err != nil {
		return err
	}
	if exists {
		data, err := r.fs.ReadFile(r.path)
		if err != nil {
			return fmt.Errorf("reading state file: %w", err)
		}
		if err := yaml.Unmarshal(data, &r.values); err != nil {
			// A corrupt state file is not worth failing a server start over.
			r.logger.Warnw("discarding unreadable state file", "path", r.path, "error", err)
			r.values = make(map[string]string)
		}
	}

	r.loaded = true
	return nil
}

func (r *repository) flushLocked() error {
	data, err := yaml.Marshal(r.values)
	if err != nil {
		return fmt.Errorf("marshalling state: %w", err)
	}
	if err := r.fs.WriteFile(r.path, data); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}
	return nil
}
