package sprite

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem is the set of filesystem primitives the transform needs.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
}

// OSFileSystem implements FileSystem on top of the os package. WriteFile
// writes to a temporary file in the target directory and renames it over the
// destination.
type OSFileSystem struct{}

func (OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (OSFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (OSFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	dir, base := filepath.Dir(name), filepath.Base(name)

	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return fmt.Errorf("unable to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("unable to write temporary file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("unable to set permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("unable to close temporary file: %w", err)
	}
	return os.Rename(tmpName, name)
}

// Sink accepts finished sprite images for inclusion in the build output.
type Sink interface {
	Put(name string, data []byte) error
}

// DirSink stores sprites as files in a single directory, created on first use.
type DirSink struct {
	Dir string
	FS  FileSystem
}

// NewDirSink returns sink writing into dir using OS filesystem when fsys is nil.
func NewDirSink(dir string, fsys FileSystem) *DirSink {
	if fsys == nil {
		fsys = OSFileSystem{}
	}
	return &DirSink{Dir: dir, FS: fsys}
}

func (s *DirSink) Put(name string, data []byte) error {
	if err := s.FS.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("unable to create output directory '%s': %w", s.Dir, err)
	}
	target := filepath.Join(s.Dir, filepath.FromSlash(name))
	if sub := filepath.Dir(target); sub != filepath.Clean(s.Dir) {
		if err := s.FS.MkdirAll(sub, 0755); err != nil {
			return fmt.Errorf("unable to create output directory '%s': %w", sub, err)
		}
	}
	if err := s.FS.WriteFile(target, data, 0644); err != nil {
		return fmt.Errorf("unable to write sprite '%s': %w", target, err)
	}
	return nil
}
