package tree

import (
	"io"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/agentic-research/nest/internal/natsort"
)

// Path is the minimal file-tree surface the lazy loader consumes. The
// billy adapter below covers both real directories (osfs) and in-memory
// fixtures (memfs); anything else that can name itself, list children
// and open content can back a Tree too.
type Path interface {
	// Name is the base name of this entry.
	Name() string
	// IsDir reports whether the entry can be listed.
	IsDir() bool
	// List returns the direct children of a directory in natural sort
	// order.
	List() ([]Path, error)
	// Open returns the content of a file entry.
	Open() (io.ReadCloser, error)
}

// FSPath adapts a billy.Filesystem node to Path.
type FSPath struct {
	fs    billy.Filesystem
	path  string
	isDir bool
}

// NewOSPath returns a Path rooted at a real directory on disk.
func NewOSPath(root string) *FSPath {
	return &FSPath{fs: osfs.New(root), path: ".", isDir: true}
}

// NewFSPath wraps an arbitrary billy filesystem entry. isDir must say
// whether path names a directory.
func NewFSPath(fs billy.Filesystem, path string, isDir bool) *FSPath {
	return &FSPath{fs: fs, path: path, isDir: isDir}
}

func (p *FSPath) Name() string {
	if p.path == "." || p.path == "/" || p.path == "" {
		return "."
	}
	return filepath.Base(p.path)
}

func (p *FSPath) IsDir() bool { return p.isDir }

func (p *FSPath) List() ([]Path, error) {
	infos, err := p.fs.ReadDir(p.path)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(infos))
	byName := make(map[string]bool, len(infos))
	for i, info := range infos {
		names[i] = info.Name()
		byName[info.Name()] = info.IsDir()
	}
	natsort.Strings(names)
	out := make([]Path, len(names))
	for i, name := range names {
		out[i] = &FSPath{
			fs:    p.fs,
			path:  p.fs.Join(p.path, name),
			isDir: byName[name],
		}
	}
	return out, nil
}

func (p *FSPath) Open() (io.ReadCloser, error) {
	return p.fs.Open(p.path)
}
