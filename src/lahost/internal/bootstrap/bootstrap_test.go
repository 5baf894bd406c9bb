package bootstrap

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/polder-ide/lahost/src/lahost/entity"
	hosterr "github.com/polder-ide/lahost/src/lahost/internal/errors"
	"github.com/polder-ide/lahost/src/lahost/internal/executor/executormock"
	"github.com/polder-ide/lahost/src/lahost/internal/fs/fsmock"
)

type fakeState struct {
	values map[string]string
	getErr error
	setErr error
}

func (f *fakeState) Get(_ context.Context, key string) (string, error) {
	return f.values[key], f.getErr
}

func (f *fakeState) Set(_ context.Context, key string, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	if f.values == nil {
		f.values = map[string]string{}
	}
	f.values[key] = value
	return nil
}

func (f *fakeState) Delete(_ context.Context, key string) error {
	delete(f.values, key)
	return nil
}

func noEnv(string) (string, bool) { return "", false }

func newTestBootstrap(cfg entity.ServerConfig, hostFS *fsmock.MockHostFS, exec *executormock.MockExecutor) *bootstrap {
	return &bootstrap{
		cfg:           cfg,
		logger:        zap.NewNop().Sugar(),
		fs:            hostFS,
		executor:      exec,
		state:         &fakeState{},
		goos:          "linux",
		osReleasePath: "/nonexistent/os-release",
		lookupEnv:     noEnv,
	}
}

func TestResolveEnvOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBootstrap(entity.ServerConfig{Path: "/ignored"}, fsmock.NewMockHostFS(ctrl), executormock.NewMockExecutor(ctrl))
	b.lookupEnv = func(key string) (string, bool) {
		assert.Equal(t, EnvServerPath, key)
		return "/opt/vela-analyzer", true
	}

	path, err := b.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/opt/vela-analyzer", path)
}

func TestResolveConfiguredPathTildeExpansion(t *testing.T) {
	ctrl := gomock.NewController(t)
	hostFS := fsmock.NewMockHostFS(ctrl)
	hostFS.EXPECT().UserHomeDir().Return("/home/dev", nil)

	b := newTestBootstrap(entity.ServerConfig{Path: "~/bin/vela-analyzer"}, hostFS, executormock.NewMockExecutor(ctrl))

	path, err := b.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/dev", "bin", "vela-analyzer"), path)
}

func TestResolveDevChannelUsesBareName(t *testing.T) {
	ctrl := gomock.NewController(t)
	b := newTestBootstrap(entity.ServerConfig{Name: "vela-analyzer", Channel: "dev"}, fsmock.NewMockHostFS(ctrl), executormock.NewMockExecutor(ctrl))

	path, err := b.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "vela-analyzer", path)
}

func TestResolveBundled(t *testing.T) {
	ctrl := gomock.NewController(t)
	hostFS := fsmock.NewMockHostFS(ctrl)
	bundled := filepath.Join("/srv/bundle", "vela-analyzer")
	hostFS.EXPECT().FileExists(bundled).Return(true, nil)

	b := newTestBootstrap(entity.ServerConfig{Name: "vela-analyzer", Channel: "stable", BundledDir: "/srv/bundle"}, hostFS, executormock.NewMockExecutor(ctrl))
	hostFS.EXPECT().ReadFile(b.osReleasePath).Return(nil, errors.New("missing")).AnyTimes()

	path, err := b.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, bundled, path)
}

func TestResolveBundledWindowsSuffix(t *testing.T) {
	ctrl := gomock.NewController(t)
	hostFS := fsmock.NewMockHostFS(ctrl)
	bundled := filepath.Join("/srv/bundle", "vela-analyzer.exe")
	hostFS.EXPECT().FileExists(bundled).Return(true, nil)

	b := newTestBootstrap(entity.ServerConfig{Name: "vela-analyzer", BundledDir: "/srv/bundle"}, hostFS, executormock.NewMockExecutor(ctrl))
	b.goos = "windows"

	path, err := b.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, bundled, path)
}

func TestResolveMissingBundledBinary(t *testing.T) {
	ctrl := gomock.NewController(t)
	hostFS := fsmock.NewMockHostFS(ctrl)
	hostFS.EXPECT().FileExists(gomock.Any()).Return(false, nil)

	b := newTestBootstrap(entity.ServerConfig{Name: "vela-analyzer", BundledDir: "/srv/bundle"}, hostFS, executormock.NewMockExecutor(ctrl))

	_, err := b.Resolve(context.Background())
	var resErr *hosterr.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Contains(t, resErr.Platform, "linux/")
}

func TestNeedsLinkerPatch(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		release string
		readErr error
		want    bool
	}{
		{name: "nixos", goos: "linux", release: "NAME=NixOS\nID=nixos\n", want: true},
		{name: "ubuntu", goos: "linux", release: "NAME=Ubuntu\nID=ubuntu\n", want: false},
		{name: "darwin", goos: "darwin", want: false},
		{name: "unreadable os-release", goos: "linux", readErr: errors.New("denied"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			hostFS := fsmock.NewMockHostFS(ctrl)
			if tt.goos == "linux" {
				hostFS.EXPECT().ReadFile(gomock.Any()).Return([]byte(tt.release), tt.readErr)
			}

			b := newTestBootstrap(entity.ServerConfig{}, hostFS, executormock.NewMockExecutor(ctrl))
			b.goos = tt.goos
			assert.Equal(t, tt.want, b.needsLinkerPatch())
		})
	}
}

func TestProbeReturnsTrimmedVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	execMock := executormock.NewMockExecutor(ctrl)
	execMock.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(cmd *exec.Cmd, env []string) (string, string, int, error) {
			assert.Equal(t, []string{"/opt/vela-analyzer", "--version"}, cmd.Args)
			assert.Contains(t, env, "VELA_LOG=info")
			return "vela-analyzer 1.4.0\n", "", 0, nil
		})

	cfg := entity.ServerConfig{ExtraEnv: map[string]string{"VELA_LOG": "info"}}
	b := newTestBootstrap(cfg, fsmock.NewMockHostFS(ctrl), execMock)

	version, err := b.Probe(context.Background(), "/opt/vela-analyzer")
	require.NoError(t, err)
	assert.Equal(t, "vela-analyzer 1.4.0", version)
}

func TestProbeNonzeroExit(t *testing.T) {
	ctrl := gomock.NewController(t)
	execMock := executormock.NewMockExecutor(ctrl)
	execMock.EXPECT().Run(gomock.Any(), gomock.Any()).Return("", "bad flag", 2, errors.New("exit status 2"))

	b := newTestBootstrap(entity.ServerConfig{}, fsmock.NewMockHostFS(ctrl), execMock)

	_, err := b.Probe(context.Background(), "/opt/vela-analyzer")
	var probeErr *hosterr.ProbeError
	require.ErrorAs(t, err, &probeErr)
	assert.Equal(t, 2, probeErr.ExitCode)
	assert.Equal(t, "/opt/vela-analyzer", probeErr.Path)
}

func TestProbeLaunchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	execMock := executormock.NewMockExecutor(ctrl)
	launchErr := errors.New("no such file or directory")
	execMock.EXPECT().Run(gomock.Any(), gomock.Any()).Return("", "", -1, launchErr)

	b := newTestBootstrap(entity.ServerConfig{}, fsmock.NewMockHostFS(ctrl), execMock)

	_, err := b.Probe(context.Background(), "/missing")
	var probeErr *hosterr.ProbeError
	require.ErrorAs(t, err, &probeErr)
	assert.ErrorIs(t, err, launchErr)
}
