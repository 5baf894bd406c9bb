package state

import (
	"context"
	"path/filepath"
	"testing"

	tally "github.com/uber-go/tally"
	"github.com/polder-ide/lahost/src/lahost/internal/fs"
	"github.com/polder-ide/lahost/src/lahost/internal/fs/fsmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newRepository(t *testing.T, hostFS fs.HostFS) Repository {
	t.Helper()
	return New(Params{
		FS:     hostFS,
		Logger: zap.NewNop().Sugar(),
		Stats:  tally.NewTestScope("testing", make(map[string]string, 0)),
	})
}

// realFS routes the repository at a temp dir via the real filesystem.
type realFS struct {
	fs.HostFS
	cacheDir string
}

func (r realFS) UserCacheDir() (string, error) { return r.cacheDir, nil }

func TestSetGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := newRepository(t, realFS{HostFS: fs.New(), cacheDir: t.TempDir()})

	v, err := r.Get(ctx, KeyLastPatchedVersion)
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, r.Set(ctx, KeyLastPatchedVersion, "1.2.0"))

	v, err = r.Get(ctx, KeyLastPatchedVersion)
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", v)
}

func TestStateSurvivesReload(t *testing.T) {
	ctx := context.Background()
	hostFS := realFS{HostFS: fs.New(), cacheDir: t.TempDir()}

	r := newRepository(t, hostFS)
	require.NoError(t, r.Set(ctx, KeyLastPatchedVersion, "1.2.0"))

	// A fresh repository instance reads the same record back from disk.
	r2 := newRepository(t, hostFS)
	v, err := r2.Get(ctx, KeyLastPatchedVersion)
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", v)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	r := newRepository(t, realFS{HostFS: fs.New(), cacheDir: t.TempDir()})

	require.NoError(t, r.Set(ctx, "k", "v"))
	require.NoError(t, r.Delete(ctx, "k"))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestCorruptStateFileDiscarded(t *testing.T) {
	ctx := context.Background()
	hostFS := realFS{HostFS: fs.New(), cacheDir: t.TempDir()}

	path := filepath.Join(hostFS.cacheDir, _stateDirName, _stateFileName)
	require.NoError(t, hostFS.MkdirAll(filepath.Dir(path)))
	require.NoError(t, hostFS.WriteFile(path, []byte("{not yaml")))

	r := newRepository(t, hostFS)
	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestCacheDirFailure(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockFS := fsmock.NewMockHostFS(ctrl)
	mockFS.EXPECT().UserCacheDir().Return("", assert.AnError)

	r := newRepository(t, mockFS)
	_, err := r.Get(ctx, "k")
	assert.Error(t, err)
}
