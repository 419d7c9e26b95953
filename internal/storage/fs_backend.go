package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	dirMode  = 0o755
	fileMode = 0o644
)

// FSBackend keeps each namespace as a directory under root and each object as
// a file in it.
type FSBackend struct {
	fs   afero.Fs
	root string
}

func NewFSBackend(fs afero.Fs, root string) (*FSBackend, error) {
	if err := fs.MkdirAll(root, dirMode); err != nil {
		return nil, fmt.Errorf("%w: create root %s: %w", ErrStorage, root, err)
	}
	return &FSBackend{fs: fs, root: root}, nil
}

// NewOSBackend stores documents on the local disk.
func NewOSBackend(root string) (*FSBackend, error) {
	return NewFSBackend(afero.NewOsFs(), root)
}

// NewMemoryBackend keeps everything in process memory.
func NewMemoryBackend() *FSBackend {
	b, _ := NewFSBackend(afero.NewMemMapFs(), "/")
	return b
}

func (b *FSBackend) Root() string { return b.root }

func (b *FSBackend) nsPath(ns string) string { return filepath.Join(b.root, ns) }

func (b *FSBackend) objPath(ns, name string) string {
	return filepath.Join(b.root, ns, name)
}

func (b *FSBackend) CreateNamespace(_ context.Context, ns string) error {
	if err := b.fs.MkdirAll(b.nsPath(ns), dirMode); err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrStorage, ns, err)
	}
	return nil
}

func (b *FSBackend) DropNamespace(_ context.Context, ns string) error {
	if err := b.fs.RemoveAll(b.nsPath(ns)); err != nil {
		return fmt.Errorf("%w: remove %s: %w", ErrStorage, ns, err)
	}
	return nil
}

func (b *FSBackend) NamespaceExists(_ context.Context, ns string) (bool, error) {
	ok, err := afero.DirExists(b.fs, b.nsPath(ns))
	if err != nil {
		return false, fmt.Errorf("%w: stat %s: %w", ErrStorage, ns, err)
	}
	return ok, nil
}

func (b *FSBackend) Get(_ context.Context, ns, name string) ([]byte, error) {
	p := b.objPath(ns, name)
	data, err := afero.ReadFile(b.fs, p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrStorage, p, err)
	}
	return data, nil
}

// Put writes to a sibling temp file and renames it over the target, so a
// reader never sees a partial document.
func (b *FSBackend) Put(_ context.Context, ns, name string, data []byte) error {
	p := b.objPath(ns, name)
	tmp := p + ".tmp"
	if err := afero.WriteFile(b.fs, tmp, data, fileMode); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrStorage, tmp, err)
	}
	if err := b.fs.Rename(tmp, p); err != nil {
		_ = b.fs.Remove(tmp)
		return fmt.Errorf("%w: rename %s: %w", ErrStorage, p, err)
	}
	return nil
}

func (b *FSBackend) Delete(_ context.Context, ns, name string) error {
	p := b.objPath(ns, name)
	if err := b.fs.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: remove %s: %w", ErrStorage, p, err)
	}
	return nil
}
