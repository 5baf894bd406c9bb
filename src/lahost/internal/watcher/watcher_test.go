package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/polder-ide/lahost/src/lahost/entity"
	"github.com/polder-ide/lahost/src/lahost/internal/fs"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestWatcher(t *testing.T, descriptorPath string) (Watcher, *fxtest.Lifecycle) {
	t.Helper()
	provider, err := config.NewStaticProvider(map[string]interface{}{
		"workspace": map[string]interface{}{
			"descriptor": descriptorPath,
		},
	})
	require.NoError(t, err)

	lc := fxtest.NewLifecycle(t)
	w, err := New(Params{
		Config:    provider,
		Lifecycle: lc,
		Logger:    zap.NewNop().Sugar(),
		Stats:     tally.NoopScope,
		FS:        fs.New(),
	})
	require.NoError(t, err)
	return w, lc
}

func TestCurrentWithoutDescriptor(t *testing.T) {
	w, _ := newTestWatcher(t, "")

	ws, err := w.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.WorkspaceEmpty, ws.Kind)
}

func TestCurrentMissingFile(t *testing.T) {
	w, _ := newTestWatcher(t, filepath.Join(t.TempDir(), "workspace.yaml"))

	ws, err := w.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.WorkspaceEmpty, ws.Kind)
}

func TestCurrentReadsDescriptor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workspace.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kind: folder\nfolders:\n  - /repo/a\n"), 0o644))

	w, _ := newTestWatcher(t, path)

	ws, err := w.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.WorkspaceFolder, ws.Kind)
	assert.Equal(t, []string{"/repo/a"}, ws.Folders)
}

func TestCurrentMalformedDescriptor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workspace.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kind: [not, a, scalar]\n"), 0o644))

	w, _ := newTestWatcher(t, path)

	_, err := w.Current(context.Background())
	assert.Error(t, err)
}

func TestListenerNotifiedOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "workspace.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kind: empty\n"), 0o644))

	w, lc := newTestWatcher(t, path)

	changes := make(chan entity.Workspace, 1)
	w.RegisterListener(func(_ context.Context, ws entity.Workspace) {
		changes <- ws
	})

	lc.RequireStart()
	defer lc.RequireStop()

	require.NoError(t, os.WriteFile(path, []byte("kind: folder\nfolders:\n  - /repo/b\n"), 0o644))

	select {
	case ws := <-changes:
		assert.Equal(t, entity.WorkspaceFolder, ws.Kind)
		assert.Equal(t, []string{"/repo/b"}, ws.Folders)
	case <-time.After(5 * time.Second):
		t.Fatal("no workspace change notification received")
	}
}

func TestUnconfiguredDescriptorSkipsWatch(t *testing.T) {
	_, lc := newTestWatcher(t, "")
	lc.RequireStart()
	lc.RequireStop()
}
