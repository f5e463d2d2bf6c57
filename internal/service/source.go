package service

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go-file-manager/internal/model"
	"go-file-manager/internal/util"
)

// Source is a selected file: its name, its size and a way to read it. Preview
// generation opens it on a background goroutine.
type Source interface {
	Name() string
	Size() int64
	Open() (io.ReadCloser, error)
}

type memorySource struct {
	name    string
	size    int64
	content []byte
}

// NewMemorySource wraps already buffered content. size may exceed
// len(content) when only a prefix was kept.
func NewMemorySource(name string, size int64, content []byte) Source {
	return &memorySource{name: name, size: size, content: content}
}

func (s *memorySource) Name() string { return s.name }
func (s *memorySource) Size() int64  { return s.size }

func (s *memorySource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.content)), nil
}

type pathSource struct {
	path string
	size int64
}

// NewPathSource selects a file from the local filesystem.
func NewPathSource(path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", model.ErrInvalidInput, path)
	}

	return &pathSource{path: path, size: info.Size()}, nil
}

func (s *pathSource) Name() string { return filepath.Base(s.path) }
func (s *pathSource) Size() int64  { return s.size }

func (s *pathSource) Open() (io.ReadCloser, error) {
	return os.Open(s.path)
}

// ReadUpload consumes a streamed upload body. Only images that can still get a
// preview keep their bytes; everything else is counted and discarded.
func ReadUpload(name string, r io.Reader) (Source, error) {
	if util.CategoryOf(name) != model.CategoryImage {
		size, err := io.Copy(io.Discard, r)
		if err != nil {
			return nil, err
		}
		return NewMemorySource(name, size, nil), nil
	}

	var buf bytes.Buffer
	kept, err := io.Copy(&buf, io.LimitReader(r, model.PreviewMaxBytes))
	if err != nil {
		return nil, err
	}

	rest, err := io.Copy(io.Discard, r)
	if err != nil {
		return nil, err
	}

	if rest > 0 {
		return NewMemorySource(name, kept+rest, nil), nil
	}

	return NewMemorySource(name, kept, buf.Bytes()), nil
}
