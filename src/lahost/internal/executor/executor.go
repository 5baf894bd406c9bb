// Package executor wraps the execution of "os/exec".Cmd's so each exec can be
// logged and substituted in tests.
package executor

import (
	"bytes"
	"os/exec"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides a module to inject using fx.
var Module = fx.Options(
	fx.Supply(
		fx.Annotate(NewExecutor(
			WithExecFunc(func(cmd *exec.Cmd) error { return cmd.Run() }),
		), fx.As(new(Executor))),
	),
)

// Executor runs external commands on behalf of the daemon: the server
// validity probe, the linker patch step, and the project-discovery runner.
type Executor interface {
	// RunCommand logs and executes the Cmd with the given environment.
	RunCommand(cmd *exec.Cmd, env []string) error
	// Run logs and executes the Cmd, overriding Stdout/Stderr to capture
	// and return their content along with the exit code.
	Run(cmd *exec.Cmd, env []string) (stdout string, stderr string, exitCode int, err error)
}

type executorImpl struct {
	Logger *zap.SugaredLogger
	// ExecFunc may be nil to use executorImpl in tests.
	ExecFunc func(cmd *exec.Cmd) error
}

// Option defines options to customize executorImpl's behavior.
type Option func(*executorImpl)

// WithLogger overrides the default noop logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(e *executorImpl) {
		e.Logger = logger
	}
}

// WithExecFunc provides customized exec behavior for executorImpl.
func WithExecFunc(execFunc func(cmd *exec.Cmd) error) Option {
	return func(e *executorImpl) {
		e.ExecFunc = execFunc
	}
}

// NewExecutor creates a new executorImpl with a default exec function.
func NewExecutor(opts ...Option) Executor {
	e := &executorImpl{
		Logger:   zap.NewNop().Sugar(),
		ExecFunc: func(cmd *exec.Cmd) error { return cmd.Run() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunCommand logs the Path/Args and calls ExecFunc if it is set.
func (e *executorImpl) RunCommand(cmd *exec.Cmd, env []string) error {
	e.logCommand(cmd)

	if e.ExecFunc == nil {
		e.Logger.Warn("missing ExecFunc - skipped execution")
		return nil
	}

	cmd.Env = env
	return e.ExecFunc(cmd)
}

// Run logs the Path/Args and calls ExecFunc if it is set, capturing output.
func (e *executorImpl) Run(cmd *exec.Cmd, env []string) (stdout string, stderr string, exitCode int, err error) {
	e.logCommand(cmd)

	if e.ExecFunc == nil {
		e.Logger.Warn("missing ExecFunc - skipped execution")
		return "", "", 0, nil
	}

	var stdoutB, stderrB bytes.Buffer
	cmd.Stdout = &stdoutB
	cmd.Stderr = &stderrB
	cmd.Env = env
	err = e.ExecFunc(cmd)

	code := -1
	if cmd.ProcessState != nil {
		code = cmd.ProcessState.ExitCode()
	}
	return stdoutB.String(), stderrB.String(), code, err
}

func (e *executorImpl) logCommand(cmd *exec.Cmd) {
	e.Logger.Infow("Exec",
		"Path", cmd.Path,
		"Dir", cmd.Dir,
		"Args", cmd.Args[1:], // First arg is always the command itself
	)
}
