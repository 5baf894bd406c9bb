package bootstrap

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/polder-ide/lahost/src/lahost/entity"
	hosterr "github.com/polder-ide/lahost/src/lahost/internal/errors"
	"github.com/polder-ide/lahost/src/lahost/internal/executor/executormock"
	"github.com/polder-ide/lahost/src/lahost/internal/fs/fsmock"
	"github.com/polder-ide/lahost/src/lahost/repository/state"
)

const _nixosRelease = "NAME=NixOS\nID=nixos\n"

func nixosBootstrap(t *testing.T) (*bootstrap, *fsmock.MockHostFS, *executormock.MockExecutor) {
	ctrl := gomock.NewController(t)
	hostFS := fsmock.NewMockHostFS(ctrl)
	execMock := executormock.NewMockExecutor(ctrl)

	cfg := entity.ServerConfig{Name: "vela-analyzer", Version: "1.4.0", BundledDir: "/srv/bundle"}
	b := newTestBootstrap(cfg, hostFS, execMock)
	hostFS.EXPECT().ReadFile(b.osReleasePath).Return([]byte(_nixosRelease), nil)
	return b, hostFS, execMock
}

func TestPatchedCopyFreshPatch(t *testing.T) {
	b, hostFS, execMock := nixosBootstrap(t)

	bundled := filepath.Join("/srv/bundle", "vela-analyzer")
	dest := filepath.Join("/cache", "lahost", "vela-analyzer-1.4.0")
	tmp := dest + ".tmp"

	hostFS.EXPECT().FileExists(bundled).Return(true, nil)
	hostFS.EXPECT().UserCacheDir().Return("/cache", nil)
	hostFS.EXPECT().MkdirAll(filepath.Join("/cache", "lahost")).Return(nil)
	hostFS.EXPECT().FileExists(dest).Return(false, nil)
	hostFS.EXPECT().CopyFile(bundled, tmp).Return(nil)
	hostFS.EXPECT().Chmod(tmp, os.FileMode(0o755)).Return(nil)
	hostFS.EXPECT().Rename(tmp, dest).Return(nil)

	execMock.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(cmd *exec.Cmd, _ []string) (string, string, int, error) {
			assert.Equal(t, []string{"patchelf", "--print-interpreter", "/bin/sh"}, cmd.Args)
			return "/nix/store/abc-glibc/lib/ld-linux-x86-64.so.2\n", "", 0, nil
		})
	execMock.EXPECT().RunCommand(gomock.Any(), gomock.Any()).DoAndReturn(
		func(cmd *exec.Cmd, _ []string) error {
			assert.Equal(t, []string{"patchelf", "--set-interpreter", "/nix/store/abc-glibc/lib/ld-linux-x86-64.so.2", tmp}, cmd.Args)
			return nil
		})

	path, err := b.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dest, path)

	version, err := b.state.Get(context.Background(), state.KeyLastPatchedVersion)
	require.NoError(t, err)
	assert.Equal(t, "1.4.0", version)
}

func TestPatchedCopyReusesCurrentVersion(t *testing.T) {
	b, hostFS, _ := nixosBootstrap(t)
	require.NoError(t, b.state.Set(context.Background(), state.KeyLastPatchedVersion, "1.4.0"))

	bundled := filepath.Join("/srv/bundle", "vela-analyzer")
	dest := filepath.Join("/cache", "lahost", "vela-analyzer-1.4.0")

	hostFS.EXPECT().FileExists(bundled).Return(true, nil)
	hostFS.EXPECT().UserCacheDir().Return("/cache", nil)
	hostFS.EXPECT().MkdirAll(gomock.Any()).Return(nil)
	hostFS.EXPECT().FileExists(dest).Return(true, nil)

	path, err := b.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dest, path)
}

func TestPatchedCopyReplacesStaleVersion(t *testing.T) {
	b, hostFS, execMock := nixosBootstrap(t)
	require.NoError(t, b.state.Set(context.Background(), state.KeyLastPatchedVersion, "1.3.0"))

	bundled := filepath.Join("/srv/bundle", "vela-analyzer")
	dest := filepath.Join("/cache", "lahost", "vela-analyzer-1.4.0")
	tmp := dest + ".tmp"

	hostFS.EXPECT().FileExists(bundled).Return(true, nil)
	hostFS.EXPECT().UserCacheDir().Return("/cache", nil)
	hostFS.EXPECT().MkdirAll(gomock.Any()).Return(nil)
	hostFS.EXPECT().FileExists(dest).Return(true, nil)
	hostFS.EXPECT().Remove(dest).Return(nil)
	hostFS.EXPECT().CopyFile(bundled, tmp).Return(nil)
	hostFS.EXPECT().Chmod(tmp, os.FileMode(0o755)).Return(nil)
	hostFS.EXPECT().Rename(tmp, dest).Return(nil)

	execMock.EXPECT().Run(gomock.Any(), gomock.Any()).Return("/lib64/ld-linux-x86-64.so.2", "", 0, nil)
	execMock.EXPECT().RunCommand(gomock.Any(), gomock.Any()).Return(nil)

	path, err := b.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dest, path)
}

func TestPatchedCopyCleansUpOnPatchFailure(t *testing.T) {
	b, hostFS, execMock := nixosBootstrap(t)

	bundled := filepath.Join("/srv/bundle", "vela-analyzer")
	dest := filepath.Join("/cache", "lahost", "vela-analyzer-1.4.0")
	tmp := dest + ".tmp"

	hostFS.EXPECT().FileExists(bundled).Return(true, nil)
	hostFS.EXPECT().UserCacheDir().Return("/cache", nil)
	hostFS.EXPECT().MkdirAll(gomock.Any()).Return(nil)
	hostFS.EXPECT().FileExists(dest).Return(false, nil)
	hostFS.EXPECT().CopyFile(bundled, tmp).Return(nil)
	hostFS.EXPECT().Chmod(tmp, os.FileMode(0o755)).Return(nil)
	hostFS.EXPECT().Remove(tmp).Return(nil)

	execMock.EXPECT().Run(gomock.Any(), gomock.Any()).Return("/lib64/ld-linux-x86-64.so.2", "", 0, nil)
	execMock.EXPECT().RunCommand(gomock.Any(), gomock.Any()).Return(errors.New("patchelf: not an ELF executable"))

	_, err := b.Resolve(context.Background())
	var patchErr *hosterr.PatchError
	require.ErrorAs(t, err, &patchErr)
	assert.Equal(t, bundled, patchErr.Path)

	version, err := b.state.Get(context.Background(), state.KeyLastPatchedVersion)
	require.NoError(t, err)
	assert.Empty(t, version)
}

func TestPatchedCopyCacheDirFailure(t *testing.T) {
	b, hostFS, _ := nixosBootstrap(t)

	bundled := filepath.Join("/srv/bundle", "vela-analyzer")
	hostFS.EXPECT().FileExists(bundled).Return(true, nil)
	hostFS.EXPECT().UserCacheDir().Return("", errors.New("no cache dir"))

	_, err := b.Resolve(context.Background())
	var patchErr *hosterr.PatchError
	require.ErrorAs(t, err, &patchErr)
}
