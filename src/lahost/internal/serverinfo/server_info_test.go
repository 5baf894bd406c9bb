package serverinfo

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
)

func newInfoFile(t *testing.T, path string) InfoFile {
	t.Helper()
	provider, err := config.NewStaticProvider(map[string]interface{}{
		_configKeyInfoFile: path,
	})
	require.NoError(t, err)

	lc := fxtest.NewLifecycle(t)
	f, err := New(Params{
		Config:    provider,
		Lifecycle: lc,
		Logger:    zap.NewNop().Sugar(),
	})
	require.NoError(t, err)
	return f
}

func TestUpdateField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lahost.json")
	f := newInfoFile(t, path)

	require.NoError(t, f.UpdateField("address", "127.0.0.1:27919"))
	require.NoError(t, f.UpdateField("version", "0.4.0"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var contents map[string]string
	require.NoError(t, json.Unmarshal(data, &contents))
	assert.Equal(t, "127.0.0.1:27919", contents["address"])
	assert.Equal(t, "0.4.0", contents["version"])
}

func TestOnStopRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lahost.json")
	f := newInfoFile(t, path)
	require.NoError(t, f.UpdateField("address", "127.0.0.1:27919"))

	require.NoError(t, f.(*infoFile).OnStop(context.Background()))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Stopping twice is harmless.
	assert.NoError(t, f.(*infoFile).OnStop(context.Background()))
}

func TestMissingConfig(t *testing.T) {
	provider, err := config.NewStaticProvider(map[string]interface{}{})
	require.NoError(t, err)

	_, err = New(Params{
		Config:    provider,
		Lifecycle: fxtest.NewLifecycle(t),
		Logger:    zap.NewNop().Sugar(),
	})
	assert.Error(t, err)
}
