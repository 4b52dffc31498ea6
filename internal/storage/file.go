package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// FileStore keeps each slot as <dir>/<key>.json.
type FileStore struct {
	dir  string
	lock *flock.Flock
}

func OpenFile(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("slot directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	lock, err := acquire(filepath.Join(dir, ".lock"))
	if err != nil {
		return nil, err
	}
	return &FileStore{dir: dir, lock: lock}, nil
}

func (f *FileStore) Close() error {
	return f.lock.Unlock()
}

// ErrBadKey is returned for slot keys that would leave the slot directory.
var ErrBadKey = errors.New("slot key must be a plain file name")

func (f *FileStore) Read(key string) ([]byte, error) {
	if !plainKey(key) {
		return nil, fmt.Errorf("%w: %q", ErrBadKey, key)
	}
	b, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return b, err
}

// Write goes through a temp file and rename so readers never see a partial value.
func (f *FileStore) Write(key string, value []byte) error {
	if !plainKey(key) {
		return fmt.Errorf("%w: %q", ErrBadKey, key)
	}
	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path(key))
}

func plainKey(key string) bool {
	return key != "" && key != "." && key != ".." &&
		!strings.ContainsAny(key, `/\`) && !strings.Contains(key, "..")
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}
