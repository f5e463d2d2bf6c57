package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"go-file-manager/pkg/apierror"
)

// PathValidator keeps file names inside a single directory.
type PathValidator struct {
	rootAbs string
}

func NewPathValidator(root string) (*PathValidator, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("root path cannot be empty")
	}

	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve download root: %w", err)
	}

	return &PathValidator{rootAbs: rootAbs}, nil
}

func (v *PathValidator) RootAbs() string {
	return v.rootAbs
}

// ResolveName maps a bare file name to an absolute path directly under the
// root. Names with separators or parent references are rejected.
func (v *PathValidator) ResolveName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || trimmed == "." || trimmed == ".." {
		return "", apierror.InvalidFilename("file name cannot be empty", name)
	}

	if strings.Contains(trimmed, "\x00") || hasControlCharacters(trimmed) {
		return "", apierror.InvalidFilename("file name contains invalid characters", name)
	}

	if strings.ContainsAny(trimmed, `/\`) {
		return "", apierror.PathTraversal("file name must not contain path separators", name)
	}

	resolved := filepath.Join(v.rootAbs, trimmed)
	if !isWithinRoot(v.rootAbs, resolved) || resolved == v.rootAbs {
		return "", apierror.PathTraversal("resolved path is outside download root", name)
	}

	return resolved, nil
}

func hasControlCharacters(value string) bool {
	for _, char := range value {
		if unicode.IsControl(char) {
			return true
		}
	}

	return false
}

func isWithinRoot(rootAbs string, candidateAbs string) bool {
	if candidateAbs == rootAbs {
		return true
	}

	rootWithSeparator := rootAbs + string(filepath.Separator)
	return strings.HasPrefix(candidateAbs, rootWithSeparator)
}
