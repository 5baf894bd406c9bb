package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	hosterr "github.com/polder-ide/lahost/src/lahost/internal/errors"
	"github.com/polder-ide/lahost/src/lahost/repository/state"
)

const (
	_patchDirName = "lahost"
	_patchTool    = "patchelf"
	_tmpSuffix    = ".tmp"
)

// patchedCopy returns a dynamic-linker-patched copy of the bundled binary in
// a writable scratch location. The step is idempotent: an existing copy for
// the currently configured version is reused, a copy for any other version
// is deleted first. The temporary work file is removed on every failure path
// so a failed patch never leaves a renamed artifact behind.
func (b *bootstrap) patchedCopy(ctx context.Context, bundled string) (string, error) {
	cacheDir, err := b.fs.UserCacheDir()
	if err != nil {
		return "", &hosterr.PatchError{Path: bundled, Err: err}
	}
	dir := filepath.Join(cacheDir, _patchDirName)
	if err := b.fs.MkdirAll(dir); err != nil {
		return "", &hosterr.PatchError{Path: bundled, Err: err}
	}

	dest := filepath.Join(dir, fmt.Sprintf("%s-%s", b.cfg.Name, b.cfg.Version))

	exists, err := b.fs.FileExists(dest)
	if err != nil {
		return "", &hosterr.PatchError{Path: dest, Err: err}
	}
	lastPatched, err := b.state.Get(ctx, state.KeyLastPatchedVersion)
	if err != nil {
		return "", &hosterr.PatchError{Path: dest, Err: err}
	}

	if exists && lastPatched == b.cfg.Version {
		b.logger.Infow("reusing patched server binary", "path", dest)
		return dest, nil
	}
	if exists {
		// Version changed underneath the cached copy; start over.
		if err := b.fs.Remove(dest); err != nil {
			return "", &hosterr.PatchError{Path: dest, Err: err}
		}
	}

	tmp := dest + _tmpSuffix
	if err := b.patchInto(ctx, bundled, tmp); err != nil {
		b.fs.Remove(tmp)
		return "", &hosterr.PatchError{Path: bundled, Err: err}
	}

	if err := b.fs.Rename(tmp, dest); err != nil {
		b.fs.Remove(tmp)
		return "", &hosterr.PatchError{Path: dest, Err: err}
	}
	if err := b.state.Set(ctx, state.KeyLastPatchedVersion, b.cfg.Version); err != nil {
		return "", &hosterr.PatchError{Path: dest, Err: err}
	}

	b.logger.Infow("patched server binary", "path", dest, "version", b.cfg.Version)
	return dest, nil
}

func (b *bootstrap) patchInto(ctx context.Context, src, tmp string) error {
	if err := b.fs.CopyFile(src, tmp); err != nil {
		return fmt.Errorf("copying bundled binary: %w", err)
	}
	if err := b.fs.Chmod(tmp, 0o755); err != nil {
		return fmt.Errorf("marking copy executable: %w", err)
	}

	interp, err := b.hostInterpreter(ctx)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, _patchTool, "--set-interpreter", interp, tmp)
	if err := b.executor.RunCommand(cmd, os.Environ()); err != nil {
		return fmt.Errorf("running %s: %w", _patchTool, err)
	}
	return nil
}

// hostInterpreter asks patchelf for the dynamic linker used by a known-good
// host binary, which is the interpreter the patched copy must point at.
func (b *bootstrap) hostInterpreter(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, _patchTool, "--print-interpreter", "/bin/sh")
	stdout, stderr, code, err := b.executor.Run(cmd, os.Environ())
	if err != nil {
		return "", fmt.Errorf("probing host interpreter: %w", err)
	}
	if code != 0 {
		return "", fmt.Errorf("probing host interpreter: exit code %d: %s", code, stderr)
	}
	return strings.TrimSpace(stdout), nil
}
