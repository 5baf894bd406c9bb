// Package fs wraps the filesystem operations used by lahost behind an
// interface so the resolver and patch steps can be tested without a disk.
package fs

import (
	"io"
	"os"

	"go.uber.org/fx"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// HostFS wraps the filesystem operations used by lahost.
type HostFS interface {
	UserCacheDir() (string, error)
	UserHomeDir() (string, error)
	MkdirAll(path string) error
	FileExists(path string) (bool, error)
	DirExists(path string) (bool, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte) error
	CopyFile(src, dst string) error
	Rename(oldpath, newpath string) error
	Chmod(name string, mode os.FileMode) error
	Remove(name string) error
	TempFile(dir, pattern string) (*os.File, error)
	Create(name string) (*os.File, error)
}

type fsImpl struct{}

// New creates a new HostFS.
func New() HostFS {
	return fsImpl{}
}

// UserCacheDir returns the user's cache directory.
func (fsImpl) UserCacheDir() (string, error) { return os.UserCacheDir() }

// UserHomeDir returns the user's home directory.
func (fsImpl) UserHomeDir() (string, error) { return os.UserHomeDir() }

// MkdirAll creates a directory and all its parents.
func (fsImpl) MkdirAll(path string) error { return os.MkdirAll(path, os.ModePerm) }

func (fsImpl) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

func (fsImpl) DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

func (fsImpl) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (fsImpl) WriteFile(name string, data []byte) error {
	return os.WriteFile(name, data, 0644)
}

// CopyFile copies src to dst, preserving the source's mode bits.
func (fsImpl) CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func (fsImpl) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

func (fsImpl) Chmod(name string, mode os.FileMode) error {
	return os.Chmod(name, mode)
}

func (fsImpl) Remove(name string) error {
	return os.Remove(name)
}

func (fsImpl) TempFile(dir, pattern string) (*os.File, error) {
	return os.CreateTemp(dir, pattern)
}

func (fsImpl) Create(name string) (*os.File, error) {
	return os.Create(name)
}
