package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File stores each session key as one file under a session directory.
// This is what a CLI session uses between invocations; removing the
// directory ends the session.
type File struct {
	dir string
}

func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &File{dir: dir}, nil
}

// keyPath maps a storage key to a file name. Keys are simple
// identifiers ("shopping-store", "token", ...) but slashes are
// flattened so a key can never escape the session dir.
func (f *File) keyPath(key string) string {
	return filepath.Join(f.dir, strings.ReplaceAll(key, string(os.PathSeparator), "_")+".json")
}

func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.keyPath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read session key %q: %w", key, err)
	}
	return data, nil
}

func (f *File) Set(_ context.Context, key string, value []byte) error {
	if err := os.WriteFile(f.keyPath(key), value, 0o600); err != nil {
		return fmt.Errorf("write session key %q: %w", key, err)
	}
	return nil
}

func (f *File) Delete(_ context.Context, key string) error {
	err := os.Remove(f.keyPath(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete session key %q: %w", key, err)
	}
	return nil
}

func (f *File) Clear(_ context.Context) error {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return fmt.Errorf("list session dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(f.dir, e.Name())); err != nil {
			return fmt.Errorf("clear session dir: %w", err)
		}
	}
	return nil
}
