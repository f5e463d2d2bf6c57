package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPathValidatorResolveName(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	validator, err := NewPathValidator(root)
	require.NoError(t, err)

	t.Run("plain name resolves inside root", func(t *testing.T) {
		resolved, resolveErr := validator.ResolveName("report.txt")
		require.NoError(t, resolveErr)
		require.Equal(t, filepath.Join(validator.RootAbs(), "report.txt"), resolved)
	})

	t.Run("surrounding space is trimmed", func(t *testing.T) {
		resolved, resolveErr := validator.ResolveName("  photo.jpg ")
		require.NoError(t, resolveErr)
		require.Equal(t, filepath.Join(validator.RootAbs(), "photo.jpg"), resolved)
	})

	for name, input := range map[string]string{
		"empty":              "  ",
		"parent reference":   "..",
		"nested path":        "docs/report.txt",
		"backslash":          `docs\report.txt`,
		"traversal":          "../secrets.txt",
		"control characters": "report\n.txt",
		"null byte":          "report\x00.txt",
	} {
		t.Run(name+" is rejected", func(t *testing.T) {
			_, resolveErr := validator.ResolveName(input)
			require.Error(t, resolveErr)
		})
	}

	t.Run("within root check is prefix safe", func(t *testing.T) {
		require.False(t, isWithinRoot("/tmp/root", "/tmp/rootkit/file.txt"))
		require.True(t, isWithinRoot("/tmp/root", "/tmp/root/file.txt"))
	})
}
