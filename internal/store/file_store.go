package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"sync"

	"github.com/spf13/afero"
)

// FileStore keeps the whole collection as one JSON array on an afero.Fs.
// Links are addressed by their position in that array, so a delete shifts
// every later link down by one.
//
// Every mutation holds the write lock for the full load-modify-save cycle.
// Saves go through a temp file and a rename, so a reader never observes a
// partially written file.
type FileStore struct {
	mu   sync.RWMutex
	fs   afero.Fs
	path string
}

// NewFileStore returns a store persisting to path on fs. Call Init before
// serving requests.
func NewFileStore(fs afero.Fs, path string) *FileStore {
	return &FileStore{fs: fs, path: filepath.Clean(path)}
}

// Path returns the location of the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Init seeds the backing file with DefaultLinks when it does not exist yet.
// An existing file is left untouched, even when it holds an empty array.
func (s *FileStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return unavailable("stat links file", err)
	}
	if exists {
		return nil
	}
	return s.save(DefaultLinks())
}

// List returns every link in stored order.
func (s *FileStore) List(ctx context.Context) ([]*Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load()
}

// Create validates in, appends it to the collection, and returns the stored record.
func (s *FileStore) Create(ctx context.Context, in LinkInput) (*Link, error) {
	link, err := NewLink(in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	links, err := s.load()
	if err != nil {
		return nil, err
	}
	links = append(links, link)
	if err := s.save(links); err != nil {
		return nil, err
	}
	return link, nil
}

// Delete removes the link at the zero-based position ref and returns it.
// A ref that is not a decimal integer or is out of range yields ErrNotFound.
func (s *FileStore) Delete(ctx context.Context, ref string) (*Link, error) {
	index, err := strconv.Atoi(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: index %q", ErrNotFound, ref)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	links, err := s.load()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(links) {
		return nil, fmt.Errorf("%w: index %d", ErrNotFound, index)
	}
	removed := links[index]
	links = slices.Delete(links, index, index+1)
	if err := s.save(links); err != nil {
		return nil, err
	}
	return removed, nil
}

// Ping checks that the backing file can be read and decoded.
func (s *FileStore) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, err := s.load()
	return err
}

// load reads and decodes the whole file. Callers must hold s.mu.
func (s *FileStore) load() ([]*Link, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, unavailable("read links file", err)
	}
	var links []*Link
	if err := json.Unmarshal(data, &links); err != nil {
		return nil, unavailable("decode links file", err)
	}
	links = slices.DeleteFunc(links, func(l *Link) bool { return l == nil })
	for _, l := range links {
		l.normalize()
	}
	if links == nil {
		links = []*Link{}
	}
	return links, nil
}

// save replaces the file with links. Callers must hold the write lock.
func (s *FileStore) save(links []*Link) error {
	data, err := json.MarshalIndent(links, "", "  ")
	if err != nil {
		return unavailable("encode links", err)
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return unavailable("create data dir", err)
	}

	tmp, err := afero.TempFile(s.fs, dir, "."+filepath.Base(s.path)+"-*.tmp")
	if err != nil {
		return unavailable("create temp file", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = s.fs.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return unavailable("write temp file", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return unavailable("sync temp file", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return unavailable("close temp file", err)
	}
	if err := s.fs.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return unavailable("chmod temp file", err)
	}
	if err := s.fs.Rename(tmpName, s.path); err != nil {
		cleanup()
		return unavailable("replace links file", err)
	}
	return nil
}
