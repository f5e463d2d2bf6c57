package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-file-manager/internal/model"
)

func newTestStore(t *testing.T, previewCapacity int) *Store {
	t.Helper()

	s, err := New(previewCapacity)
	require.NoError(t, err)
	return s
}

func imageEntry(id string, size int64) model.Entry {
	return model.Entry{
		ID:        id,
		Name:      id + ".png",
		Size:      size,
		Category:  model.CategoryImage,
		CreatedAt: time.Now(),
		Preview:   &model.Preview{MIMEType: "image/png", Data: []byte("png-bytes")},
	}
}

func TestStoreAddEnforcesFolderInvariant(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, 4)
	s.Add(model.Entry{
		ID:       "dir",
		Name:     "Projects",
		Size:     999,
		IsFolder: true,
		Preview:  &model.Preview{Data: []byte("x")},
	})

	entry, ok := s.Get("dir")
	require.True(t, ok)
	require.Zero(t, entry.Size)
	require.Nil(t, entry.Preview)
	require.Equal(t, model.CategoryFolder, entry.Category)
}

func TestStoreAddDropsPreviewOutsideImageThreshold(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, 4)

	video := imageEntry("clip", 1024)
	video.Category = model.CategoryVideo
	s.Add(video)

	large := imageEntry("huge", model.PreviewMaxBytes)
	s.Add(large)

	small := imageEntry("small", 1024)
	s.Add(small)

	for _, entry := range s.Snapshot() {
		if entry.HasPreview() {
			require.Equal(t, model.CategoryImage, entry.Category)
			require.Less(t, entry.Size, model.PreviewMaxBytes)
		}
	}

	_, hasPreview := s.Preview("small")
	require.True(t, hasPreview)
	_, hasPreview = s.Preview("huge")
	require.False(t, hasPreview)
}

func TestStoreDeleteRestoreRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, 4)
	s.Add(imageEntry("a", 10))
	before, _ := s.Get("a")

	require.True(t, s.Delete("a"))
	deleted, _ := s.Get("a")
	require.True(t, deleted.IsDeleted)

	require.True(t, s.Delete("a"))
	require.True(t, s.Restore("a"))
	require.True(t, s.Restore("a"))

	after, _ := s.Get("a")
	require.Equal(t, before, after)
}

func TestStoreMissingIDsAreNoOps(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, 4)
	s.Add(imageEntry("a", 10))

	require.False(t, s.Delete("ghost"))
	require.False(t, s.Restore("ghost"))
	require.False(t, s.Purge("ghost"))
	_, renamed := s.Rename("ghost", "name")
	require.False(t, renamed)
	require.Equal(t, 1, s.Len())
}

func TestStorePurge(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, 4)
	s.Add(imageEntry("a", 10))
	s.Add(imageEntry("b", 10))
	s.Add(imageEntry("c", 10))

	require.True(t, s.Purge("b"))
	_, ok := s.Get("b")
	require.False(t, ok)

	snapshot := s.Snapshot()
	require.Len(t, snapshot, 2)
	require.Equal(t, "a", snapshot[0].ID)
	require.Equal(t, "c", snapshot[1].ID)
	require.Equal(t, 2, s.Stats().Previews)
	require.Zero(t, s.Stats().Evictions)
}

func TestStoreRename(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, 4)
	s.Add(model.Entry{ID: "doc", Name: "report.txt"})
	s.Add(model.Entry{ID: "archive", Name: "backup.tar.gz"})
	s.Add(model.Entry{ID: "plain", Name: "Makefile"})
	s.Add(model.Entry{ID: "dir", Name: "v1.2 drafts", IsFolder: true})

	renamed, ok := s.Rename("doc", "summary")
	require.True(t, ok)
	require.Equal(t, "summary.txt", renamed.Name)

	renamed, _ = s.Rename("archive", "  nightly ")
	require.Equal(t, "nightly.gz", renamed.Name)

	renamed, _ = s.Rename("plain", "GNUmakefile")
	require.Equal(t, "GNUmakefile", renamed.Name)

	renamed, _ = s.Rename("dir", "Drafts")
	require.Equal(t, "Drafts", renamed.Name)

	_, ok = s.Rename("doc", "   ")
	require.False(t, ok)
	entry, _ := s.Get("doc")
	require.Equal(t, "summary.txt", entry.Name)
}

func TestStorePreviewEviction(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, 2)
	s.Add(imageEntry("first", 10))
	s.Add(imageEntry("second", 10))

	// Touch first so second becomes the eviction candidate.
	_, ok := s.Preview("first")
	require.True(t, ok)

	s.Add(imageEntry("third", 10))

	second, _ := s.Get("second")
	require.Nil(t, second.Preview)
	first, _ := s.Get("first")
	require.NotNil(t, first.Preview)

	stats := s.Stats()
	require.Equal(t, 2, stats.Previews)
	require.Equal(t, 1, stats.Evictions)
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, 4)
	s.Add(model.Entry{ID: "a", Name: "a.txt"})

	snapshot := s.Snapshot()
	snapshot[0].Name = "mutated"

	entry, _ := s.Get("a")
	require.Equal(t, "a.txt", entry.Name)
}
