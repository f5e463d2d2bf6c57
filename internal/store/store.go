package store

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"go-file-manager/internal/model"
)

// Store holds the authoritative entry collection. It is not safe for
// concurrent use; all access goes through a Loop.
type Store struct {
	entries  []*model.Entry
	byID     map[string]*model.Entry
	previews *lru.Cache[string, struct{}]
	evicted  int
}

func New(previewCapacity int) (*Store, error) {
	if previewCapacity <= 0 {
		previewCapacity = 256
	}

	s := &Store{byID: make(map[string]*model.Entry)}

	cache, err := lru.NewWithEvict[string, struct{}](previewCapacity, s.dropPreview)
	if err != nil {
		return nil, fmt.Errorf("create preview cache: %w", err)
	}
	s.previews = cache

	return s, nil
}

// Add appends an entry. Folder and preview invariants are enforced here so no
// caller can store a folder with content or a preview on a non-image.
func (s *Store) Add(entry model.Entry) {
	if entry.IsFolder {
		entry.Size = 0
		entry.Category = model.CategoryFolder
		entry.Preview = nil
	}

	if entry.Preview != nil && (entry.Category != model.CategoryImage || entry.Size >= model.PreviewMaxBytes) {
		entry.Preview = nil
	}

	stored := &entry
	s.entries = append(s.entries, stored)
	s.byID[stored.ID] = stored

	if stored.Preview != nil {
		s.previews.Add(stored.ID, struct{}{})
	}
}

func (s *Store) Get(id string) (model.Entry, bool) {
	entry, ok := s.byID[id]
	if !ok {
		return model.Entry{}, false
	}
	return *entry, true
}

// Preview returns the preview of an entry and marks it recently used.
func (s *Store) Preview(id string) (*model.Preview, bool) {
	entry, ok := s.byID[id]
	if !ok || entry.Preview == nil {
		return nil, false
	}

	s.previews.Get(id)
	return entry.Preview, true
}

func (s *Store) Delete(id string) bool {
	return s.setDeleted(id, true)
}

func (s *Store) Restore(id string) bool {
	return s.setDeleted(id, false)
}

func (s *Store) setDeleted(id string, deleted bool) bool {
	entry, ok := s.byID[id]
	if !ok {
		return false
	}

	entry.IsDeleted = deleted
	return true
}

// Purge erases an entry from the collection.
func (s *Store) Purge(id string) bool {
	entry, ok := s.byID[id]
	if !ok {
		return false
	}

	delete(s.byID, id)
	for i, candidate := range s.entries {
		if candidate == entry {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}

	s.previews.Remove(id)
	return true
}

// Rename replaces the base of an entry name and keeps its extension. A blank
// base leaves the entry untouched.
func (s *Store) Rename(id string, newBase string) (model.Entry, bool) {
	base := strings.TrimSpace(newBase)
	if base == "" {
		return model.Entry{}, false
	}

	entry, ok := s.byID[id]
	if !ok {
		return model.Entry{}, false
	}

	_, ext := model.SplitName(entry.Name, entry.IsFolder)
	entry.Name = base + ext

	return *entry, true
}

// Snapshot copies the collection in insertion order.
func (s *Store) Snapshot() []model.Entry {
	out := make([]model.Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		out = append(out, *entry)
	}
	return out
}

func (s *Store) Len() int {
	return len(s.entries)
}

type Stats struct {
	Entries   int
	Deleted   int
	Previews  int
	Evictions int
}

func (s *Store) Stats() Stats {
	stats := Stats{Entries: len(s.entries), Previews: s.previews.Len(), Evictions: s.evicted}
	for _, entry := range s.entries {
		if entry.IsDeleted {
			stats.Deleted++
		}
	}
	return stats
}

func (s *Store) dropPreview(id string, _ struct{}) {
	entry, ok := s.byID[id]
	if !ok {
		return
	}

	entry.Preview = nil
	s.evicted++
}
