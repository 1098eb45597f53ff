package iostorage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/playlake/playlake/pkg/storage"
)

// fsStore serves a directory tree as an object store. Keys are
// slash-separated paths relative to root. Used for development runs
// and tests; semantics match the remote backends (recursive listing,
// sorted keys, prefix removal).
type fsStore struct {
	root string
}

// NewFS creates a filesystem-backed ObjectStore rooted at root.
func NewFS(root string) (storage.ObjectStore, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("fs storage: cannot resolve root %q: %w", root, err)
	}
	return &fsStore{root: abs}, nil
}

func (s *fsStore) path(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}

// List implements storage.ObjectStore.
func (s *fsStore) List(ctx context.Context, prefix string) ([]string, error) {
	base := s.path(prefix)
	info, err := os.Stat(base)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fs storage: list %q: %w", prefix, err)
	}
	if !info.IsDir() {
		return []string{prefix}, nil
	}

	var keys []string
	err = filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fs storage: list %q: %w", prefix, err)
	}
	sort.Strings(keys)
	return keys, nil
}

// Get implements storage.ObjectStore.
func (s *fsStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(key))
	if err != nil {
		return nil, fmt.Errorf("fs storage: get %q: %w", key, err)
	}
	return f, nil
}

// Put implements storage.ObjectStore.
func (s *fsStore) Put(ctx context.Context, key string, r io.Reader, size int64) error {
	p := s.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return fmt.Errorf("fs storage: put %q: %w", key, err)
	}
	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("fs storage: put %q: %w", key, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("fs storage: put %q: %w", key, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("fs storage: put %q: %w", key, err)
	}
	return nil
}

// Remove implements storage.ObjectStore.
func (s *fsStore) Remove(ctx context.Context, prefix string) error {
	p := s.path(prefix)
	if !strings.HasPrefix(p, s.root) {
		return fmt.Errorf("fs storage: remove %q escapes root", prefix)
	}
	if err := os.RemoveAll(p); err != nil {
		return fmt.Errorf("fs storage: remove %q: %w", prefix, err)
	}
	return nil
}
