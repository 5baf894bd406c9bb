// Package bootstrap locates a usable analysis-server executable for the
// current platform, patching the bundled binary where the host requires it.
package bootstrap

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polder-ide/lahost/src/lahost/entity"
	hosterr "github.com/polder-ide/lahost/src/lahost/internal/errors"
	"github.com/polder-ide/lahost/src/lahost/internal/executor"
	"github.com/polder-ide/lahost/src/lahost/internal/fs"
	"github.com/polder-ide/lahost/src/lahost/mapper"
	"github.com/polder-ide/lahost/src/lahost/repository/state"
)

const (
	// EnvServerPath is a debug override honored ahead of all configuration.
	EnvServerPath = "LAHOST_SERVER_PATH"

	_versionFlag   = "--version"
	_channelDev    = "dev"
	_osReleasePath = "/etc/os-release"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Bootstrap resolves and validates the server executable.
type Bootstrap interface {
	// Resolve produces a path to a server executable, or fails with a
	// ResolutionError (or PatchError when the platform patch step fails).
	// The returned path is not validated; callers run Probe before use.
	Resolve(ctx context.Context) (string, error)
	// Probe executes `<path> --version` with the configured extra
	// environment and returns the trimmed version output. A missing binary
	// or nonzero exit is reported as a ProbeError, distinct from Resolve's
	// not-found failure.
	Probe(ctx context.Context, path string) (string, error)
}

// Params are the dependencies for a new Bootstrap.
type Params struct {
	fx.In

	Config   config.Provider
	Logger   *zap.SugaredLogger
	FS       fs.HostFS
	Executor executor.Executor
	State    state.Repository
}

type bootstrap struct {
	cfg      entity.ServerConfig
	logger   *zap.SugaredLogger
	fs       fs.HostFS
	executor executor.Executor
	state    state.Repository

	// Overridable in tests.
	goos          string
	osReleasePath string
	lookupEnv     func(string) (string, bool)
}

// New creates a new Bootstrap from the daemon configuration.
func New(p Params) (Bootstrap, error) {
	cfg, err := mapper.ConfigToServerConfig(p.Config)
	if err != nil {
		return nil, err
	}

	return &bootstrap{
		cfg:           cfg,
		logger:        p.Logger,
		fs:            p.FS,
		executor:      p.Executor,
		state:         p.State,
		goos:          runtime.GOOS,
		osReleasePath: _osReleasePath,
		lookupEnv:     os.LookupEnv,
	}, nil
}

func (b *bootstrap) Resolve(ctx context.Context) (string, error) {
	// An explicit override is trusted verbatim: the operator pointed at a
	// local build and gets to keep both pieces if it is broken.
	if override, ok := b.explicitOverride(); ok {
		path, err := b.expandTilde(override)
		if err != nil {
			return "", err
		}
		b.logger.Infow("using explicit server path", "path", path)
		return path, nil
	}

	// Dev channel assumes a server is reachable on $PATH by bare name.
	if b.cfg.Channel == _channelDev {
		b.logger.Infow("dev channel, resolving server from PATH", "name", b.cfg.Name)
		return b.cfg.Name, nil
	}

	bundled := filepath.Join(b.cfg.BundledDir, b.cfg.Name+b.exeSuffix())
	exists, err := b.fs.FileExists(bundled)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", &hosterr.ResolutionError{Platform: b.goos + "/" + runtime.GOARCH}
	}

	if b.needsLinkerPatch() {
		return b.patchedCopy(ctx, bundled)
	}

	return bundled, nil
}

func (b *bootstrap) Probe(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, path, _versionFlag)
	env := executor.MergeEnv(os.Environ(), b.cfg.ExtraEnv)

	stdout, stderr, code, err := b.executor.Run(cmd, env)
	if err != nil && code < 0 {
		return "", &hosterr.ProbeError{Path: path, Err: err}
	}
	if code != 0 {
		b.logger.Warnw("server version probe failed", "path", path, "exitCode", code, "stderr", stderr)
		return "", &hosterr.ProbeError{Path: path, ExitCode: code}
	}

	return strings.TrimSpace(stdout), nil
}

func (b *bootstrap) explicitOverride() (string, bool) {
	if path, ok := b.lookupEnv(EnvServerPath); ok && path != "" {
		return path, true
	}
	if b.cfg.Path != "" {
		return b.cfg.Path, true
	}
	return "", false
}

func (b *bootstrap) expandTilde(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := b.fs.UserHomeDir()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

func (b *bootstrap) exeSuffix() string {
	if b.goos == "windows" {
		return ".exe"
	}
	return ""
}

// needsLinkerPatch reports whether the host's dynamic linker lives in a
// nonstandard location, making the bundled binary unrunnable as shipped.
func (b *bootstrap) needsLinkerPatch() bool {
	if b.goos != "linux" {
		return false
	}
	data, err := b.fs.ReadFile(b.osReleasePath)
	if err != nil {
		return false
	}
	return strings.Contains(string(data), "ID=nixos")
}
