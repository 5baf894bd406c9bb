// Package launcher starts analysis-server processes and wraps each one in a
// Handle that speaks LSP over the process's stdio.
package launcher

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/polder-ide/lahost/src/lahost/entity"
	"github.com/polder-ide/lahost/src/lahost/internal/clock"
	hosterr "github.com/polder-ide/lahost/src/lahost/internal/errors"
	"github.com/polder-ide/lahost/src/lahost/internal/executor"
	"github.com/polder-ide/lahost/src/lahost/internal/serverlog"
)

// Custom notification methods emitted by the analysis server.
const (
	MethodServerStatus     = "experimental/serverStatus"
	MethodOpenServerLogs   = "experimental/openServerLogs"
	MethodUnindexedProject = "experimental/unindexedProject"
)

const _hostClientName = "lahost"

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// LaunchSpec describes a single server process to be started.
type LaunchSpec struct {
	// Path is the executable to run, as produced by bootstrap.Resolve.
	Path string
	// ExtraEnv is appended to the host environment, overriding duplicates.
	ExtraEnv map[string]string
	// Workspace selects the working directory and the advertised folders.
	Workspace entity.Workspace
	// InitOptions is sent verbatim as LSP initializationOptions.
	InitOptions entity.InitializationOptions
	// HostVersion is advertised as the LSP clientInfo version.
	HostVersion string
}

// Launcher starts server processes.
type Launcher interface {
	// Launch spawns the process described by spec, completes the LSP
	// initialize handshake, and returns a live Handle. On handshake
	// failure the process is torn down before the error is returned.
	Launch(ctx context.Context, spec LaunchSpec) (Handle, error)
}

// Params are the dependencies for a new Launcher.
type Params struct {
	fx.In

	Logger    *zap.SugaredLogger
	ServerLog serverlog.ServerLog
	Clock     clock.Clock
}

type launcher struct {
	logger    *zap.SugaredLogger
	serverLog serverlog.ServerLog
	clock     clock.Clock

	// Overridable in tests.
	newGeneration func() (uuid.UUID, error)
}

// New creates a new Launcher.
func New(p Params) Launcher {
	return &launcher{
		logger:        p.Logger,
		serverLog:     p.ServerLog,
		clock:         p.Clock,
		newGeneration: uuid.NewV4,
	}
}

func (l *launcher) Launch(ctx context.Context, spec LaunchSpec) (Handle, error) {
	generation, err := l.newGeneration()
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(spec.Path)
	cmd.Env = executor.MergeEnv(os.Environ(), spec.ExtraEnv)
	if spec.Workspace.Kind == entity.WorkspaceFolder && len(spec.Workspace.Folders) > 0 {
		cmd.Dir = spec.Workspace.Folders[0]
	}
	cmd.Stderr = l.serverLog.Writer()

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, &hosterr.LaunchError{Path: spec.Path, Err: err}
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stdin.Close()
		return nil, &hosterr.LaunchError{Path: spec.Path, Err: err}
	}

	if err := cmd.Start(); err != nil {
		stdin.Close()
		stdout.Close()
		return nil, &hosterr.LaunchError{Path: spec.Path, Err: err}
	}
	l.logger.Infow("server process started", "path", spec.Path, "pid", cmd.Process.Pid, zap.Stringer("generation", generation))

	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(procStream{ReadCloser: stdout, WriteCloser: stdin}))
	h := newHandle(handleParams{
		generation: generation,
		cmd:        cmd,
		conn:       conn,
		logger:     l.logger,
		clock:      l.clock,
	})

	conn.Go(context.Background(), h.dispatch)
	go h.watch()

	if err := h.initialize(ctx, spec); err != nil {
		l.logger.Warnw("initialize handshake failed, tearing down server", "path", spec.Path, zap.Error(err))
		h.kill()
		return nil, &hosterr.LaunchError{Path: spec.Path, Err: err}
	}

	return h, nil
}

func workspaceFolders(ws entity.Workspace) []protocol.WorkspaceFolder {
	if ws.Kind != entity.WorkspaceFolder {
		return nil
	}
	folders := make([]protocol.WorkspaceFolder, 0, len(ws.Folders))
	for _, f := range ws.Folders {
		folders = append(folders, protocol.WorkspaceFolder{
			URI:  string(uri.File(f)),
			Name: filepath.Base(f),
		})
	}
	return folders
}

func clientCapabilities() protocol.ClientCapabilities {
	return protocol.ClientCapabilities{
		Workspace: &protocol.WorkspaceClientCapabilities{
			Configuration:          true,
			DidChangeConfiguration: &protocol.DidChangeConfigurationWorkspaceClientCapabilities{DynamicRegistration: true},
			WorkspaceFolders:       true,
		},
		Window: &protocol.WindowClientCapabilities{
			WorkDoneProgress: true,
		},
	}
}

func initializeParams(spec LaunchSpec) *protocol.InitializeParams {
	params := &protocol.InitializeParams{
		ProcessID: int32(os.Getpid()),
		ClientInfo: &protocol.ClientInfo{
			Name:    _hostClientName,
			Version: spec.HostVersion,
		},
		Capabilities:          clientCapabilities(),
		InitializationOptions: spec.InitOptions,
		WorkspaceFolders:      workspaceFolders(spec.Workspace),
	}
	if spec.Workspace.Kind == entity.WorkspaceFolder && len(spec.Workspace.Folders) > 0 {
		params.RootURI = uri.File(spec.Workspace.Folders[0])
	}
	return params
}

// procStream adapts a child process's stdout/stdin pair into the single
// ReadWriteCloser the jsonrpc2 stream wants.
type procStream struct {
	io.ReadCloser
	io.WriteCloser
}

func (s procStream) Close() error {
	return multierr.Append(s.WriteCloser.Close(), s.ReadCloser.Close())
}
