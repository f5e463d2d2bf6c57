package view

import (
	"strings"
	"time"

	"go-file-manager/internal/model"
)

// Query is the display state a view is derived from.
type Query struct {
	Section model.Section
	Search  string
	Sort    model.SortKey
	Mode    model.ViewMode
}

// NewQuery normalises raw request values. An empty sort key means name; any
// other unknown key is kept so sorting leaves the order alone.
func NewQuery(section string, search string, sortKey string, mode string) Query {
	key := model.SortKey(strings.ToLower(strings.TrimSpace(sortKey)))
	if key == "" {
		key = model.SortByName
	}

	return Query{
		Section: model.ParseSection(section),
		Search:  search,
		Sort:    key,
		Mode:    model.ParseViewMode(mode),
	}
}

// Build runs the whole display pipeline over a store snapshot.
func Build(snapshot []model.Entry, query Query, now time.Time, thumbnailURL func(model.Entry) string) Page {
	filtered := Filter(snapshot, query.Section, query.Search, now)
	Sort(filtered, query.Sort)

	page := Render(filtered, Options{
		Section:      query.Section,
		Mode:         query.Mode,
		Now:          now,
		ThumbnailURL: thumbnailURL,
	})
	page.Sort = query.Sort
	page.Search = query.Search
	page.Usage = ComputeUsage(snapshot)

	return page
}
