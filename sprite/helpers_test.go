package sprite

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func testLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
}

type fileInfo struct {
	name string
	size int64
	dir  bool
}

func (fi fileInfo) Name() string       { return fi.name }
func (fi fileInfo) Size() int64        { return fi.size }
func (fi fileInfo) Mode() fs.FileMode  { return 0644 }
func (fi fileInfo) ModTime() time.Time { return time.Time{} }
func (fi fileInfo) IsDir() bool        { return fi.dir }
func (fi fileInfo) Sys() any           { return nil }

// memFS is in-memory FileSystem, files map path to size.
type memFS struct {
	mu     sync.Mutex
	files  map[string]int64
	dirs   map[string]bool
	writes map[string][]byte
	nwrite int
}

func newMemFS(files map[string]int64) *memFS {
	return &memFS{files: files, dirs: map[string]bool{}, writes: map[string][]byte{}}
}

func (m *memFS) Stat(name string) (fs.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dirs[name] {
		return fileInfo{name: filepath.Base(name), dir: true}, nil
	}
	size, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return fileInfo{name: filepath.Base(name), size: size}, nil
}

func (m *memFS) WriteFile(name string, data []byte, _ fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes[name] = data
	m.nwrite++
	return nil
}

func (m *memFS) MkdirAll(path string, _ fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = true
	return nil
}

// fakePacker returns fixed result and records requests.
type fakePacker struct {
	mu       sync.Mutex
	result   *PackResult
	err      error
	requests []PackRequest
}

func (p *fakePacker) Pack(_ context.Context, req PackRequest) (*PackResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, req)
	if p.err != nil {
		return nil, p.err
	}
	return p.result, nil
}

// blockingPacker never returns until released, ignoring context.
type blockingPacker struct {
	release chan struct{}
}

func (p *blockingPacker) Pack(context.Context, PackRequest) (*PackResult, error) {
	<-p.release
	return nil, errors.New("released")
}

// recordingSink counts Put calls per name.
type recordingSink struct {
	mu   sync.Mutex
	puts map[string]int
	data map[string][]byte
	err  error
}

func newRecordingSink() *recordingSink {
	return &recordingSink{puts: map[string]int{}, data: map[string][]byte{}}
}

func (s *recordingSink) Put(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.puts[name]++
	s.data[name] = data
	return nil
}

func (s *recordingSink) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.puts {
		n += c
	}
	return n
}
