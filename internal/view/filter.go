package view

import (
	"strings"
	"time"

	"go-file-manager/internal/model"
)

// Filter selects the entries visible in a section and narrows them by a
// case-insensitive substring search on the name. The input is not modified.
func Filter(entries []model.Entry, section model.Section, search string, now time.Time) []model.Entry {
	out := make([]model.Entry, 0, len(entries))
	term := strings.ToLower(search)

	for _, entry := range entries {
		if !inSection(entry, section, now) {
			continue
		}

		if term != "" && !strings.Contains(strings.ToLower(entry.Name), term) {
			continue
		}

		out = append(out, entry)
	}

	return out
}

func inSection(entry model.Entry, section model.Section, now time.Time) bool {
	switch section {
	case model.SectionTrash:
		return entry.IsDeleted
	case model.SectionRecent:
		return !entry.IsDeleted && now.Sub(entry.CreatedAt) < model.RecentWindow
	default:
		return !entry.IsDeleted
	}
}
