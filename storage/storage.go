package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore is the opaque blob store applications are keyed into. The
// engine only ever holds the reference string; what sits behind it is
// not part of the lifecycle contract.
type FileStore interface {
	Save(ref string, r io.Reader) error
	Open(ref string) (io.ReadCloser, error)
	Remove(ref string) error
}

// Files is the process-wide store handlers upload into and serve from
var Files FileStore

// Init wires the default local store under dir
func Init(dir string) error {
	store, err := NewLocalStore(dir)
	if err != nil {
		return err
	}
	Files = store
	return nil
}

// NewRef generates a fresh opaque reference for an uploaded artifact
func NewRef() string {
	return uuid.NewString()
}

// LocalStore keeps artifacts as flat files under a base directory
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) path(ref string) string {
	// refs are uuids we generated; Base guards against traversal anyway
	return filepath.Join(s.dir, filepath.Base(ref))
}

func (s *LocalStore) Save(ref string, r io.Reader) error {
	f, err := os.Create(s.path(ref))
	if err != nil {
		return fmt.Errorf("failed to create artifact file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	return nil
}

func (s *LocalStore) Open(ref string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(ref))
	if err != nil {
		return nil, fmt.Errorf("artifact not found: %w", err)
	}
	return f, nil
}

func (s *LocalStore) Remove(ref string) error {
	if err := os.Remove(s.path(ref)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
