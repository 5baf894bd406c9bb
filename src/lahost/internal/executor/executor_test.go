package executor

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// Instantiates the new Executor through fx provider.
func fxExecutor(t *testing.T, opts ...Option) (Executor, *observer.ObservedLogs) {
	var e Executor
	core, recorded := observer.New(zap.InfoLevel)
	logger := zap.New(core).Sugar()

	fxtest.New(t,
		fx.Provide(
			func() Executor {
				return NewExecutor(append([]Option{WithLogger(logger)}, opts...)...)
			},
		),
		fx.Populate(&e),
	).RequireStart().RequireStop()

	return e, recorded
}

func TestRunCommand(t *testing.T) {
	e, recorded := fxExecutor(t)

	binPath, err := exec.LookPath("true")
	if errors.Is(err, exec.ErrNotFound) {
		t.Skip("no true available")
	}
	require.NoError(t, err)

	cmd := exec.Command("true", "1", "2")
	cmd.Dir = "/"
	env := []string{"KEY1=VAL1"}
	err = e.RunCommand(cmd, env)
	assert.NoError(t, err)
	assert.Equal(t, env, cmd.Env)

	logs := recorded.TakeAll()
	require.Len(t, logs, 1)
	assert.Equal(t, map[string]interface{}{
		"Path": binPath,
		"Dir":  "/",
		"Args": []interface{}{"1", "2"},
	}, logs[0].ContextMap())
}

func TestRun(t *testing.T) {
	t.Run("captures output and exit code", func(t *testing.T) {
		e, _ := fxExecutor(t)
		if _, err := exec.LookPath("sh"); err != nil {
			t.Skip("no sh available")
		}

		cmd := exec.Command("sh", "-c", "echo out; echo err >&2")
		stdout, stderr, code, err := e.Run(cmd, nil)
		assert.NoError(t, err)
		assert.Equal(t, "out\n", stdout)
		assert.Equal(t, "err\n", stderr)
		assert.Equal(t, 0, code)
	})

	t.Run("nonzero exit", func(t *testing.T) {
		e, _ := fxExecutor(t)
		if _, err := exec.LookPath("sh"); err != nil {
			t.Skip("no sh available")
		}

		cmd := exec.Command("sh", "-c", "exit 3")
		_, _, code, err := e.Run(cmd, nil)
		assert.Error(t, err)
		assert.Equal(t, 3, code)
	})

	t.Run("spawn failure yields -1", func(t *testing.T) {
		e, _ := fxExecutor(t, WithExecFunc(func(cmd *exec.Cmd) error {
			return errors.New("fork failed")
		}))

		cmd := exec.Command("does-not-matter")
		_, _, code, err := e.Run(cmd, nil)
		assert.Error(t, err)
		assert.Equal(t, -1, code)
	})
}
