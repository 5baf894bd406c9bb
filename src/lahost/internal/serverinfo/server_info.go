// Package serverinfo maintains a small JSON info file advertising the
// daemon's connection details, written at launch for the editor front-end
// and other tools to discover.
package serverinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _configKeyInfoFile = "infoFilePath"

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// InfoFile manages the contents of the daemon info file.
type InfoFile interface {
	UpdateField(key string, value string) error
}

type infoFile struct {
	path     string
	logger   *zap.SugaredLogger
	contents map[string]string
	mu       sync.Mutex
}

// Params define values to be used by InfoFile.
type Params struct {
	fx.In

	Config    config.Provider
	Lifecycle fx.Lifecycle
	Logger    *zap.SugaredLogger
}

// New creates a new InfoFile. The file is removed at daemon shutdown.
func New(p Params) (InfoFile, error) {
	f := infoFile{
		logger:   p.Logger,
		contents: make(map[string]string),
	}

	if err := f.processConfig(p.Config); err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: f.OnStop,
	})

	return &f, nil
}

// OnStop removes the info file so tools never read stale connection details.
func (f *infoFile) OnStop(ctx context.Context) error {
	if f.path == "" {
		return nil
	}
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// UpdateField sets key to value and rewrites the whole file.
func (f *infoFile) UpdateField(key string, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.contents[key] = value
	jsonOutput, err := json.Marshal(f.contents)
	if err != nil {
		return fmt.Errorf("marshalling info file: %w", err)
	}

	if err := os.WriteFile(f.path, jsonOutput, 0644); err != nil {
		return fmt.Errorf("writing info file: %w", err)
	}
	f.logger.Infow("daemon info saved", zap.String("file", f.path), zap.String(key, value))
	return nil
}

func (f *infoFile) processConfig(cfg config.Provider) error {
	val := cfg.Get(_configKeyInfoFile)
	if err := val.Populate(&f.path); err != nil {
		return fmt.Errorf("reading %s from config: %w", _configKeyInfoFile, err)
	}
	if f.path == "" {
		return fmt.Errorf("config is missing %s", _configKeyInfoFile)
	}
	return nil
}
