package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go-file-manager/internal/model"
)

// maxVariants bounds the "name (n).ext" search before Save gives up.
const maxVariants = 1000

// Downloads writes downloaded entry bytes into one local directory.
type Downloads struct {
	validator *PathValidator
}

func New(root string) (*Downloads, error) {
	validator, err := NewPathValidator(root)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(validator.RootAbs(), 0o755); err != nil {
		return nil, fmt.Errorf("create download root: %w", err)
	}

	return &Downloads{validator: validator}, nil
}

func (d *Downloads) RootAbs() string {
	return d.validator.RootAbs()
}

// Save writes data under name and returns the path it landed on. An existing
// file is never overwritten; the name gets a " (n)" suffix before the
// extension instead.
func (d *Downloads) Save(name string, data []byte) (string, error) {
	target, err := d.validator.ResolveName(name)
	if err != nil {
		return "", err
	}

	base, ext := model.SplitName(filepath.Base(target), false)
	for n := 1; n <= maxVariants; n++ {
		written, writeErr := writeExclusive(target, data)
		if writeErr == nil {
			return written, nil
		}
		if !errors.Is(writeErr, fs.ErrExist) {
			return "", writeErr
		}

		target, err = d.validator.ResolveName(fmt.Sprintf("%s (%d)%s", base, n, ext))
		if err != nil {
			return "", err
		}
	}

	return "", fmt.Errorf("save %q: too many files with the same name", name)
}

// writeExclusive fills a temp file and links it into place, so a reader
// never sees a partial download.
func writeExclusive(target string, data []byte) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(target), ".download-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write %q: %w", target, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %q: %w", target, err)
	}

	if err := os.Link(tmpName, target); err != nil {
		return "", err
	}

	return target, nil
}
